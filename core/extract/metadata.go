package extract

import (
	"time"

	"github.com/gaurav-prasanna/wikipipe/core"
)

// Source identifies the platform every page comes from.
const Source = "confluence"

// Metadata projects page identity fields into the canonical record.
// Missing source fields stay at their zero values; processed_at is stamped
// with the current wall-clock time, not the extraction time.
func Metadata(page core.RawPage, now core.Clock) (core.Metadata, error) {
	if now == nil {
		now = time.Now
	}
	return core.Metadata{
		ID:           page.ID,
		Title:        page.Title,
		URL:          page.URL,
		Version:      page.Version,
		LastModified: page.LastModified,
		Source:       Source,
		ProcessedAt:  now().UTC().Format(time.RFC3339),
	}, nil
}
