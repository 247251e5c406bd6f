package ports

import (
	"context"

	"CompanyBrief/internal/domain"
)

// Message is a single role/content pair sent to the completion backend.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest describes one call to the completion backend. A nil
// Temperature leaves the backend default in place; the compile and normalize
// passes pin it to zero.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature *float64
}

// CompletionClient is the black-box text-completion backend. Complete runs a
// single-shot request; Stream delivers incremental fragments to onChunk until
// the backend signals stop.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Stream(ctx context.Context, req CompletionRequest, onChunk func(chunk string) error) error
}

// StatusNotifier publishes progress events on the channel identified by the
// job id. Delivery is fire-and-forget; implementations must treat an empty
// job id as a silent skip.
type StatusNotifier interface {
	SendStatusUpdate(ctx context.Context, jobID, status, message string, result map[string]any) error
}

// DatasetSource loads the curated per-category document sets for a job.
type DatasetSource interface {
	LoadDatasets(ctx context.Context, jobID string) (map[domain.Category]domain.CategoryDataset, error)
}

// ReferenceRenderer formats the collected references into a Markdown block.
type ReferenceRenderer interface {
	RenderReferences(ctx context.Context, refs []string, info map[string]domain.ReferenceInfo, titles map[string]string) string
}

// TitleResolver turns a bare URL into a descriptive page title for reference
// links.
type TitleResolver interface {
	ResolveTitle(ctx context.Context, url string) (string, error)
}
