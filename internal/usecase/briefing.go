package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"CompanyBrief/internal/domain"
	"CompanyBrief/internal/ports"
	"CompanyBrief/internal/prompts"
)

// Briefings generates the per-category research briefings and writes them
// into the pipeline state.
type Briefings struct {
	client      ports.CompletionClient
	notifier    ports.StatusNotifier
	logger      *slog.Logger
	model       string
	concurrency int64
	limits      SelectorLimits
}

// BriefingsDeps wires the briefing stage.
type BriefingsDeps struct {
	Client      ports.CompletionClient
	Notifier    ports.StatusNotifier
	Logger      *slog.Logger
	Model       string
	Concurrency int
	Limits      SelectorLimits
}

// NewBriefings constructs the briefing stage; concurrency defaults to 2.
func NewBriefings(deps BriefingsDeps) *Briefings {
	concurrency := deps.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}
	return &Briefings{
		client:      deps.Client,
		notifier:    deps.Notifier,
		logger:      deps.Logger,
		model:       deps.Model,
		concurrency: int64(concurrency),
		limits:      deps.Limits,
	}
}

type briefingTask struct {
	category domain.Category
	docs     domain.CategoryDataset
}

// Run fans the generator out across the fixed categories under the
// concurrency cap and does not return until every enqueued task has finished
// or failed. Categories with an empty curated dataset get an empty briefing
// and no events. Each task writes only its own state field.
func (b *Briefings) Run(ctx context.Context, state *domain.PipelineState) {
	rc := state.Context()

	sendStatus(ctx, b.notifier, b.logger, rc.JobID, "processing",
		"Starting research briefings", map[string]any{"step": "Briefing"})

	b.info("creating section briefings", "company", rc.Company)

	var tasks []briefingTask
	for _, cat := range domain.Categories {
		docs := state.Dataset(cat)
		if len(docs) == 0 {
			b.info("no curated data for category", "category", string(cat))
			state.SetBriefing(cat, "")
			continue
		}
		b.info("queueing category", "category", string(cat), "documents", len(docs))
		tasks = append(tasks, briefingTask{category: cat, docs: docs})
	}

	if len(tasks) == 0 {
		state.Briefings = map[domain.Category]string{}
		return
	}

	sem := semaphore.NewWeighted(b.concurrency)
	contents := make([]string, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task briefingTask) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				state.SetBriefing(task.category, "")
				return
			}
			defer sem.Release(1)

			content := b.generate(ctx, task.docs, task.category, rc)
			contents[i] = content
			state.SetBriefing(task.category, content)
			if content == "" {
				b.error("briefing generation failed", "category", string(task.category))
			} else {
				b.info("briefing complete", "category", string(task.category), "characters", len(content))
			}
		}(i, task)
	}
	wg.Wait()

	briefings := make(map[domain.Category]string)
	successful := 0
	totalLength := 0
	for i, task := range tasks {
		if contents[i] == "" {
			continue
		}
		briefings[task.category] = contents[i]
		successful++
		totalLength += len(contents[i])
	}
	state.Briefings = briefings

	b.info("briefing fan-out done",
		"successful", successful, "enqueued", len(tasks), "total_length", totalLength)
}

// generate produces one category briefing. Failures are never propagated: a
// backend error or empty response yields empty text after the start event.
func (b *Briefings) generate(ctx context.Context, docs domain.CategoryDataset, cat domain.Category, rc domain.ResearchContext) string {
	b.info("generating briefing", "category", string(cat), "company", rc.Company, "documents", len(docs))

	sendStatus(ctx, b.notifier, b.logger, rc.JobID, "briefing_start",
		"Generating "+string(cat)+" briefing", map[string]any{
			"step":       "Briefing",
			"category":   string(cat),
			"total_docs": len(docs),
		})

	blocks := SelectDocuments(PairsFromDataset(docs), b.limits)
	prompt := prompts.BriefingPrompt(cat, rc, blocks)

	content, err := b.client.Complete(ctx, ports.CompletionRequest{
		Model:    b.model,
		Messages: []ports.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		b.error("briefing completion failed", "category", string(cat), "error", err)
		return ""
	}

	content = strings.TrimSpace(content)
	if content == "" {
		b.error("empty completion response", "category", string(cat))
		return ""
	}

	sendStatus(ctx, b.notifier, b.logger, rc.JobID, "briefing_complete",
		"Completed "+string(cat)+" briefing", map[string]any{
			"step":     "Briefing",
			"category": string(cat),
		})

	return content
}

func (b *Briefings) info(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Info(msg, args...)
	}
}

func (b *Briefings) error(msg string, args ...any) {
	if b.logger != nil {
		b.logger.Error(msg, args...)
	}
}
