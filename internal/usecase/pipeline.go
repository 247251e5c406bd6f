package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"CompanyBrief/internal/domain"
	"CompanyBrief/internal/ports"
)

// PipelineDeps wires the stages and collaborators into the research pipeline.
type PipelineDeps struct {
	Source     ports.DatasetSource
	Briefings  *Briefings
	Compiler   *Compiler
	Normalizer *Normalizer
	Notifier   ports.StatusNotifier
	Logger     *slog.Logger
}

// Pipeline runs the full briefing → compile → normalize flow for one job.
type Pipeline struct {
	source     ports.DatasetSource
	briefings  *Briefings
	compiler   *Compiler
	normalizer *Normalizer
	notifier   ports.StatusNotifier
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:     deps.Source,
		briefings:  deps.Briefings,
		compiler:   deps.Compiler,
		normalizer: deps.Normalizer,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
	}
}

// Run executes the pipeline over the given state and always hands the state
// back, degraded rather than aborted: no stage failure escapes as an error.
// The report field is written at most once, right before the completion event.
func (p *Pipeline) Run(ctx context.Context, state *domain.PipelineState) *domain.PipelineState {
	rc := state.Context()

	p.loadDatasets(ctx, state)

	if p.briefings != nil {
		p.briefings.Run(ctx, state)
	}

	if p.compiler == nil || p.normalizer == nil {
		return state
	}

	compiled := p.compiler.Compile(ctx, state)
	if compiled == "" {
		return state
	}

	sendStatus(ctx, p.notifier, p.logger, rc.JobID, "processing",
		"Cleaning up and organizing report", map[string]any{
			"step":    "Editor",
			"substep": "cleanup",
		})
	sendStatus(ctx, p.notifier, p.logger, rc.JobID, "processing",
		"Formatting final report", map[string]any{
			"step":    "Editor",
			"substep": "format",
		})

	final := p.normalizer.Normalize(ctx, state, compiled)
	if final == "" {
		p.error("final report is empty")
		state.AppendMessage("Report compilation produced no content")
		return state
	}

	state.Report = final
	state.Status = "editor_complete"
	state.AppendMessage(fmt.Sprintf("Final report compiled (%d characters)", len(final)))
	p.info("final report compiled", "characters", len(final))

	sendStatus(ctx, p.notifier, p.logger, rc.JobID, "editor_complete",
		"Research report completed", map[string]any{
			"step":     "Editor",
			"report":   final,
			"company":  rc.Company,
			"is_final": true,
			"status":   "completed",
		})

	return state
}

// loadDatasets pulls the curated category datasets from the configured source
// when the state does not carry them already. A missing dataset is a
// recognized empty condition, not an error.
func (p *Pipeline) loadDatasets(ctx context.Context, state *domain.PipelineState) {
	if p.source == nil {
		return
	}

	for _, cat := range domain.Categories {
		if len(state.Dataset(cat)) > 0 {
			return
		}
	}

	datasets, err := p.source.LoadDatasets(ctx, state.JobID)
	if err != nil {
		p.error("loading curated datasets failed", "job_id", state.JobID, "error", err)
		state.AppendMessage(fmt.Sprintf("Could not load curated datasets: %v", err))
		return
	}

	for cat, docs := range datasets {
		state.SetDataset(cat, docs)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) error(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, args...)
	}
}
