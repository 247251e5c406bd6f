package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"CompanyBrief/internal/config"
	"CompanyBrief/internal/domain"
	"CompanyBrief/internal/infrastructure/datafile"
	"CompanyBrief/internal/infrastructure/llm"
	"CompanyBrief/internal/infrastructure/references"
	"CompanyBrief/internal/infrastructure/status"
	"CompanyBrief/internal/infrastructure/storage"
	"CompanyBrief/internal/logging"
	"CompanyBrief/internal/ports"
	"CompanyBrief/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline

	notifier   *status.PubSubNotifier
	repository *storage.PostgresRepository
}

// New builds a runnable application instance. Missing completion-backend
// credentials fail here, before any pipeline work starts.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("completion backend: %w", err)
	}

	application := &Application{cfg: cfg}

	var notifier ports.StatusNotifier
	if cfg.Status.ProjectID != "" {
		pubsubNotifier, err := status.NewPubSubNotifier(ctx, cfg.Status)
		if err != nil {
			return nil, fmt.Errorf("status channel: %w", err)
		}
		application.notifier = pubsubNotifier
		notifier = pubsubNotifier
	}

	var source ports.DatasetSource
	switch {
	case cfg.Database.DSN != "":
		repository, err := storage.Open(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("curated dataset store: %w", err)
		}
		application.repository = repository
		source = repository
	case cfg.Datasets.File != "":
		source = datafile.NewLoader(cfg.Datasets.File)
	}

	var resolver ports.TitleResolver
	if cfg.References.ResolveTitles {
		resolver = references.NewHTTPTitleResolver(nil)
	}
	renderer := references.NewRenderer(resolver, baseLogger.With("component", "references"))

	limits := usecase.SelectorLimits{
		MaxDocLength: cfg.Selector.MaxDocLength,
		TotalBudget:  cfg.Selector.TotalBudget,
	}

	briefings := usecase.NewBriefings(usecase.BriefingsDeps{
		Client:      client,
		Notifier:    notifier,
		Logger:      baseLogger.With("component", "briefing"),
		Model:       cfg.LLM.BriefingModel,
		Concurrency: cfg.Briefing.Concurrency,
		Limits:      limits,
	})

	compiler := usecase.NewCompiler(usecase.CompilerDeps{
		Client:   client,
		Notifier: notifier,
		Renderer: renderer,
		Logger:   baseLogger.With("component", "compiler"),
		Model:    cfg.LLM.EditorModel,
	})

	normalizer := usecase.NewNormalizer(usecase.NormalizerDeps{
		Client:         client,
		Notifier:       notifier,
		Logger:         baseLogger.With("component", "normalizer"),
		Model:          cfg.LLM.EditorModel,
		ChunkMinLength: cfg.Normalizer.ChunkMinLength,
	})

	application.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Briefings:  briefings,
		Compiler:   compiler,
		Normalizer: normalizer,
		Notifier:   notifier,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return application, nil
}

// Run executes one pipeline job and returns the resulting state. The state is
// always non-nil; a degraded run carries its message log instead of a report.
func (a *Application) Run(ctx context.Context, company, industry, hqLocation, jobID string) *domain.PipelineState {
	if jobID == "" {
		jobID = uuid.NewString()
	}

	state := &domain.PipelineState{
		Company:    company,
		Industry:   industry,
		HQLocation: hqLocation,
		JobID:      jobID,
	}

	return a.pipeline.Run(ctx, state)
}

// Close releases external clients.
func (a *Application) Close() error {
	var firstErr error
	if a.notifier != nil {
		if err := a.notifier.Close(); err != nil {
			firstErr = err
		}
	}
	if a.repository != nil {
		if err := a.repository.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
