package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikipipe/core"
	"github.com/gaurav-prasanna/wikipipe/core/render"
)

// Extraction flag variables.
var (
	flagFormat      string
	flagAttachments bool
	flagComments    bool
	flagJSON        bool
	flagPDF         bool
	flagHTML        bool
	flagMarkdown    bool
	flagEmbeddings  bool
	flagModel       string
	flagChunkSize   int
)

// Output format modes.
const (
	formatRaw       = "raw"
	formatProcessed = "processed"
	formatAll       = "all"
)

var extractSpaceCmd = &cobra.Command{
	Use:   "extract-space <space-key>",
	Short: "Extract and process all pages from a Confluence space",
	Long: `Extract-space fetches every page of a space, processes each one into the
flat document schema, and writes the results plus a corpus summary.

Examples:
  wikipipe extract-space ENG
  wikipipe extract-space ENG --format raw --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runExtractSpace,
}

var extractPageCmd = &cobra.Command{
	Use:   "extract-page <page-id>",
	Short: "Extract and process a single Confluence page",
	Long: `Extract-page fetches one page (optionally with attachments and comments),
processes it, and writes the raw and processed records. Export flags add
rendered outputs.

Examples:
  wikipipe extract-page 12345
  wikipipe extract-page 12345 --pdf --html
  wikipipe extract-page 12345 --markdown --comments=false`,
	Args: cobra.ExactArgs(1),
	RunE: runExtractPage,
}

func init() {
	rootCmd.AddCommand(extractSpaceCmd)
	rootCmd.AddCommand(extractPageCmd)

	extractSpaceCmd.Flags().StringVar(&flagFormat, "format", formatAll, "Output format (raw, processed, all)")

	extractPageCmd.Flags().StringVar(&flagFormat, "format", formatAll, "Output format (raw, processed, all)")
	extractPageCmd.Flags().BoolVar(&flagAttachments, "attachments", true, "Include page attachments")
	extractPageCmd.Flags().BoolVar(&flagComments, "comments", true, "Include page comments")

	// Export renderers.
	extractPageCmd.Flags().BoolVar(&flagJSON, "json", false, "Export the processed page as standalone indented JSON")
	extractPageCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Export the processed page as PDF")
	extractPageCmd.Flags().BoolVar(&flagHTML, "html", false, "Export the processed page as HTML")
	extractPageCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Export the original markup as Markdown")
	extractPageCmd.Flags().BoolVar(&flagEmbeddings, "embeddings", false, "Export content embeddings")
	extractPageCmd.Flags().StringVar(&flagModel, "model", "", "Embedding model (required with --embeddings)")
	extractPageCmd.Flags().IntVar(&flagChunkSize, "chunk_size", 512, "Word chunk size for embeddings")
}

func runExtractSpace(cmd *cobra.Command, args []string) error {
	spaceKey := args[0]
	if err := validateFormat(); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	fmt.Fprintf(os.Stdout, "Extracting space %s...\n", spaceKey)
	pages, err := a.client.GetSpaceContent(ctx, spaceKey)
	if err != nil {
		return fmt.Errorf("extracting space %s: %w", spaceKey, err)
	}
	fmt.Fprintf(os.Stdout, "Found %d pages\n", len(pages))

	if flagFormat == formatRaw || flagFormat == formatAll {
		path, err := a.writer.WriteRawCSV(spaceKey, pages)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  Written: %s\n", path)
	}

	if flagFormat == formatProcessed || flagFormat == formatAll {
		if err := a.processSpace(ctx, spaceKey, pages); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Done: %d pages from %s\n", len(pages), spaceKey)
	return nil
}

// processSpace processes pages into documents and writes the JSONL plus the
// corpus summary. A page that fails to process is logged and skipped; it
// must not abort the rest of the space.
func (a *app) processSpace(ctx context.Context, spaceKey string, pages []core.RawPage) error {
	docs := make([]core.ProcessedDocument, 0, len(pages))
	for i, page := range pages {
		fmt.Fprintf(os.Stdout, "[%d/%d] Processing %s\n", i+1, len(pages), page.ID)
		doc, err := a.processor.ProcessPage(ctx, page)
		if err != nil {
			logger.Error().Str("page_id", page.ID).Err(err).Msg("failed to process page")
			continue
		}
		docs = append(docs, *doc)
	}

	path, err := a.writer.WriteSpaceJSONL(spaceKey, docs)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "  Written: %s\n", path)

	summary, err := a.analyzer.Summarize(docs)
	if err != nil {
		return err
	}
	path, err = a.writer.WriteJSON(spaceKey+"_summary.json", summary)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "  Written: %s\n", path)
	return nil
}

func runExtractPage(cmd *cobra.Command, args []string) error {
	pageID := args[0]
	if err := validateFormat(); err != nil {
		return err
	}
	if flagEmbeddings && flagModel == "" {
		return fmt.Errorf("--model is required when using --embeddings")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	page, err := a.client.GetPage(ctx, pageID)
	if err != nil {
		return fmt.Errorf("extracting page %s: %w", pageID, err)
	}

	if flagAttachments {
		attachments, err := a.client.GetAttachments(ctx, pageID)
		if err != nil {
			return fmt.Errorf("fetching attachments for page %s: %w", pageID, err)
		}
		page.Attachments = attachments
	}
	if flagComments {
		comments, err := a.client.GetComments(ctx, pageID)
		if err != nil {
			return fmt.Errorf("fetching comments for page %s: %w", pageID, err)
		}
		page.Comments = comments
	}

	if flagFormat == formatRaw || flagFormat == formatAll {
		path, err := a.writer.WriteRawPage(pageID, page)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  Written: %s\n", path)
	}

	if flagFormat == formatProcessed || flagFormat == formatAll {
		doc, err := a.processor.ProcessPage(ctx, page)
		if err != nil {
			return err
		}

		path, err := a.writer.WritePageJSON(pageID, doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  Written: %s\n", path)

		if err := a.writeExports(pageID, page, doc); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "Done: page %s\n", pageID)
	return nil
}

// writeExports renders the processed document in each requested format.
func (a *app) writeExports(pageID string, page core.RawPage, doc *core.ProcessedDocument) error {
	renderers := []core.Renderer{}
	if flagJSON {
		renderers = append(renderers, render.NewJSONRenderer())
	}
	if flagPDF {
		renderers = append(renderers, render.NewPDFRenderer())
	}
	if flagHTML {
		renderers = append(renderers, render.NewHTMLRenderer())
	}
	if flagEmbeddings {
		renderers = append(renderers, render.NewEmbeddingsRenderer(flagModel, flagChunkSize))
	}

	for _, r := range renderers {
		data, err := r.Render(doc)
		if err != nil {
			return fmt.Errorf("rendering %s export: %w", r.Extension(), err)
		}
		path, err := a.writer.WriteRendered(pageID, data, r.Extension())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  Written: %s\n", path)
	}

	if flagMarkdown {
		md, err := render.Markdown(page.Content)
		if err != nil {
			return err
		}
		path, err := a.writer.WriteRendered(pageID, []byte(md), ".md")
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  Written: %s\n", path)
	}
	return nil
}

// validateFormat checks the --format flag.
func validateFormat() error {
	switch flagFormat {
	case formatRaw, formatProcessed, formatAll:
		return nil
	default:
		return fmt.Errorf("invalid --format %q (must be raw, processed, or all)", flagFormat)
	}
}
