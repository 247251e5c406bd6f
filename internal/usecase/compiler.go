package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"CompanyBrief/internal/domain"
	"CompanyBrief/internal/ports"
	"CompanyBrief/internal/prompts"
)

// Compiler merges the available category briefings and the rendered reference
// section into one raw report document.
type Compiler struct {
	client   ports.CompletionClient
	notifier ports.StatusNotifier
	renderer ports.ReferenceRenderer
	logger   *slog.Logger
	model    string
}

// CompilerDeps wires the compile stage.
type CompilerDeps struct {
	Client   ports.CompletionClient
	Notifier ports.StatusNotifier
	Renderer ports.ReferenceRenderer
	Logger   *slog.Logger
	Model    string
}

// NewCompiler constructs the compile stage.
func NewCompiler(deps CompilerDeps) *Compiler {
	return &Compiler{
		client:   deps.Client,
		notifier: deps.Notifier,
		renderer: deps.Renderer,
		logger:   deps.Logger,
		model:    deps.Model,
	}
}

// Compile collects the briefings from state in fixed category order and runs
// the single-shot merge pass. On backend failure it degrades to the raw
// concatenated briefings without the reference section. An empty return means
// no briefing section was available at all.
func (c *Compiler) Compile(ctx context.Context, state *domain.PipelineState) string {
	rc := state.Context()

	sendStatus(ctx, c.notifier, c.logger, rc.JobID, "processing",
		"Starting report compilation for "+rc.Company, map[string]any{
			"step":    "Editor",
			"substep": "initialization",
		})

	state.AppendMessage(fmt.Sprintf("Compiling final report for %s...", rc.Company))

	sendStatus(ctx, c.notifier, c.logger, rc.JobID, "processing",
		"Collecting section briefings", map[string]any{
			"step":    "Editor",
			"substep": "collecting_briefings",
		})

	var sections []string
	for _, cat := range domain.Categories {
		content := state.Briefing(cat)
		if content == "" {
			state.AppendMessage(fmt.Sprintf("No %s briefing available", cat))
			c.error("missing briefing", "category", string(cat))
			continue
		}
		state.AppendMessage(fmt.Sprintf("Found %s briefing (%d characters)", cat, len(content)))
		sections = append(sections, content)
	}

	if len(sections) == 0 {
		state.AppendMessage("No briefing sections available to compile")
		c.error("no briefings found in state")
		return ""
	}

	sendStatus(ctx, c.notifier, c.logger, rc.JobID, "processing",
		"Compiling initial research report", map[string]any{
			"step":    "Editor",
			"substep": "compilation",
		})

	combined := strings.Join(sections, "\n\n")

	referenceText := ""
	if len(state.References) > 0 && c.renderer != nil {
		c.info("rendering references", "count", len(state.References))
		referenceText = c.renderer.RenderReferences(ctx, state.References, state.ReferenceInfo, state.ReferenceTitles)
	}

	zero := 0.0
	report, err := c.client.Complete(ctx, ports.CompletionRequest{
		Model:       c.model,
		Temperature: &zero,
		Messages: []ports.Message{
			{Role: "system", Content: prompts.CompileSystemPrompt},
			{Role: "user", Content: prompts.CompilePrompt(rc, combined)},
		},
	})
	if err != nil {
		c.error("initial compilation failed", "error", err)
		return strings.TrimSpace(combined)
	}

	report = strings.TrimSpace(report)
	if referenceText != "" {
		report = report + "\n\n" + referenceText
	}

	c.info("compiled report", "characters", len(report))
	return report
}

func (c *Compiler) info(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Info(msg, args...)
	}
}

func (c *Compiler) error(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Error(msg, args...)
	}
}
