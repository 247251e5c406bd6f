package usecase

import (
	"context"
	"log/slog"
	"strings"

	"CompanyBrief/internal/domain"
	"CompanyBrief/internal/ports"
	"CompanyBrief/internal/prompts"
)

// Normalizer re-derives the canonical-structure report from the compiled
// document, streaming partial text to the status channel as it arrives.
type Normalizer struct {
	client       ports.CompletionClient
	notifier     ports.StatusNotifier
	logger       *slog.Logger
	model        string
	chunkMinimum int
}

// NormalizerDeps wires the normalize stage.
type NormalizerDeps struct {
	Client         ports.CompletionClient
	Notifier       ports.StatusNotifier
	Logger         *slog.Logger
	Model          string
	ChunkMinLength int
}

// NewNormalizer constructs the normalize stage; the chunk flush threshold
// defaults to 10 characters.
func NewNormalizer(deps NormalizerDeps) *Normalizer {
	minimum := deps.ChunkMinLength
	if minimum <= 0 {
		minimum = 10
	}
	return &Normalizer{
		client:       deps.Client,
		notifier:     deps.Notifier,
		logger:       deps.Logger,
		model:        deps.Model,
		chunkMinimum: minimum,
	}
}

// Normalize runs the streaming cleanup pass over the compiled content.
// Buffered text is flushed as a report_chunk event once it contains
// sentence-ending punctuation or a line break and has grown past the minimum
// size; the remainder is flushed when the stream ends. On backend failure the
// input is returned unchanged apart from whitespace trimming.
func (n *Normalizer) Normalize(ctx context.Context, state *domain.PipelineState, content string) string {
	rc := state.Context()

	zero := 0.0
	req := ports.CompletionRequest{
		Model:       n.model,
		Temperature: &zero,
		Messages: []ports.Message{
			{Role: "system", Content: prompts.NormalizeSystemPrompt},
			{Role: "user", Content: prompts.NormalizePrompt(rc, content)},
		},
	}

	var accumulated strings.Builder
	buffer := ""

	err := n.client.Stream(ctx, req, func(chunk string) error {
		if chunk == "" {
			return nil
		}
		accumulated.WriteString(chunk)
		buffer += chunk

		if strings.ContainsAny(buffer, ".!?\n") && len(buffer) > n.chunkMinimum {
			n.flush(ctx, rc.JobID, buffer)
			buffer = ""
		}
		return nil
	})
	if err != nil {
		if n.logger != nil {
			n.logger.Error("report formatting failed", "error", err)
		}
		return strings.TrimSpace(content)
	}

	if buffer != "" {
		n.flush(ctx, rc.JobID, buffer)
	}

	return strings.TrimSpace(accumulated.String())
}

func (n *Normalizer) flush(ctx context.Context, jobID, chunk string) {
	sendStatus(ctx, n.notifier, n.logger, jobID, "report_chunk",
		"Formatting final report", map[string]any{
			"chunk": chunk,
			"step":  "Editor",
		})
}
