package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// spacePrefix marks a batch input line as a space key rather than a page id.
const spacePrefix = "SPACE_"

// batchResult records the outcome of one batch item.
type batchResult struct {
	Item      string `json:"item"`
	Kind      string `json:"kind"`
	Pages     int    `json:"pages"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// batchReport is the full run written to batch_results.json.
type batchReport struct {
	RunID      string        `json:"run_id"`
	StartedAt  string        `json:"started_at"`
	FinishedAt string        `json:"finished_at"`
	Successful []batchResult `json:"successful"`
	Failed     []batchResult `json:"failed"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <input-file>",
	Short: "Extract a list of spaces and pages from an input file",
	Long: `Batch reads one item per line from the input file. Lines starting with
SPACE_ are treated as space keys (without the prefix); all other lines are
page ids. Blank lines and lines starting with # are skipped. Failures are
recorded and do not stop the run.

Example input:
  SPACE_ENG
  12345
  67890`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	items, err := readBatchFile(args[0])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("input file %s has no items", args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	report := batchReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	logger.Info().Str("run_id", report.RunID).Int("items", len(items)).Msg("starting batch run")

	for i, item := range items {
		fmt.Fprintf(os.Stdout, "[%d/%d] %s\n", i+1, len(items), item)
		res := a.runBatchItem(ctx, item)
		if res.Error != "" {
			logger.Error().Str("item", item).Str("error", res.Error).Msg("batch item failed")
			report.Failed = append(report.Failed, res)
		} else {
			report.Successful = append(report.Successful, res)
		}
	}
	report.FinishedAt = time.Now().UTC().Format(time.RFC3339)

	path, err := a.writer.WriteJSON("batch_results.json", report)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Done: %d succeeded, %d failed\n", len(report.Successful), len(report.Failed))
	fmt.Fprintf(os.Stdout, "  Written: %s\n", path)
	return nil
}

// runBatchItem processes a single space or page and never returns an error;
// failures are captured in the result so the run can continue.
func (a *app) runBatchItem(ctx context.Context, item string) batchResult {
	res := batchResult{
		Item:      item,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if key, ok := strings.CutPrefix(item, spacePrefix); ok {
		res.Kind = "space"
		pages, err := a.client.GetSpaceContent(ctx, key)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		if _, err := a.writer.WriteRawCSV(key, pages); err != nil {
			res.Error = err.Error()
			return res
		}
		if err := a.processSpace(ctx, key, pages); err != nil {
			res.Error = err.Error()
			return res
		}
		res.Pages = len(pages)
		return res
	}

	res.Kind = "page"
	page, err := a.client.GetPage(ctx, item)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	doc, err := a.processor.ProcessPage(ctx, page)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if _, err := a.writer.WritePageJSON(item, doc); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Pages = 1
	return res
}

// readBatchFile returns the non-empty, non-comment lines of the input file.
func readBatchFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch input %s: %w", path, err)
	}
	defer f.Close()

	var items []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading batch input %s: %w", path, err)
	}
	return items, nil
}
