package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"CompetitorScout/internal/config"
	"CompetitorScout/internal/infrastructure/email"
	"CompetitorScout/internal/infrastructure/llm"
	"CompetitorScout/internal/infrastructure/scheduler"
	"CompetitorScout/internal/infrastructure/search"
	"CompetitorScout/internal/infrastructure/storage"
	"CompetitorScout/internal/infrastructure/webprofile"
	"CompetitorScout/internal/logging"
	"CompetitorScout/internal/usecase"
)

// stopTimeout bounds automation teardown during shutdown.
const stopTimeout = 5 * time.Second

// Application wires configuration to adapters, use cases, and lifecycle.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	db         *sql.DB
	reasoner   *llm.GeminiReasoner
	discovery  *usecase.Discovery
	automation *usecase.Automation
}

// New builds a runnable application instance and dials external services.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	db, err := storage.Connect(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	repo := storage.NewRepository(db)

	provider, err := search.NewGoogleProvider(ctx, cfg.Search.APIKey, cfg.Search.EngineID)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create search provider: %w", err)
	}

	reasoner, err := llm.NewGeminiReasoner(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create reasoner: %w", err)
	}

	timeout := cfg.Pipeline.Timeout()

	resolver := usecase.NewContextResolver(repo, webprofile.NewFetcher(nil),
		baseLogger.With("component", "resolver"))
	agents := usecase.NewAgentPool(provider, timeout,
		baseLogger.With("component", "agents"))
	validator := usecase.NewValidator(reasoner, timeout,
		baseLogger.With("component", "validator"))
	scorer := usecase.NewScorer(reasoner, timeout,
		baseLogger.With("component", "scorer"))

	discovery := usecase.NewDiscovery(usecase.DiscoveryDeps{
		Resolver:    resolver,
		Agents:      agents,
		Validator:   validator,
		Scorer:      scorer,
		Competitors: repo,
		Jobs:        repo,
		Logger:      baseLogger.With("component", "discovery"),
	})

	sink := email.NewSink(cfg.Email.Host, cfg.Email.Port,
		cfg.Email.Username, cfg.Email.Password, cfg.Email.From)

	schedLogger := baseLogger.With("component", "scheduler")
	automation := usecase.NewAutomation(usecase.AutomationDeps{
		Websites:    repo,
		Competitors: repo,
		Jobs:        repo,
		Assessments: repo,
		Discovery:   discovery,
		Sink:        sink,
		Weekly:      scheduler.NewInterval("weekly-refresh", cfg.Automation.WeeklyInterval(), schedLogger),
		Monthly:     scheduler.NewInterval("monthly-reports", cfg.Automation.MonthlyInterval(), schedLogger),
		Daily:       scheduler.NewInterval("daily-reminders", cfg.Automation.DailyInterval(), schedLogger),
		Logger:      baseLogger.With("component", "automation"),
	})

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		db:         db,
		reasoner:   reasoner,
		discovery:  discovery,
		automation: automation,
	}, nil
}

// Run starts the recurring automation and blocks until the context ends.
func (a *Application) Run(ctx context.Context) error {
	if err := a.automation.Start(ctx); err != nil {
		return fmt.Errorf("start automation: %w", err)
	}
	a.logger.Info("automation started",
		"weekly", a.cfg.Automation.WeeklyInterval().String(),
		"monthly", a.cfg.Automation.MonthlyInterval().String(),
		"daily", a.cfg.Automation.DailyInterval().String(),
	)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := a.automation.Stop(stopCtx); err != nil {
		a.logger.Error("stop automation", "error", err)
	}
	return nil
}

// RunOnce executes a single on-demand discovery run for one website and
// appends a fresh threat assessment.
func (a *Application) RunOnce(ctx context.Context, websiteID string) error {
	job, err := a.discovery.Run(ctx, websiteID, usecase.MethodOnDemand)
	if err != nil {
		return err
	}

	if err := a.automation.ReassessWebsite(ctx, websiteID); err != nil {
		return err
	}

	a.logger.Info("discovery run finished",
		"job", job.ID, "website", websiteID, "found", job.CompetitorsFound)
	return nil
}

// Close releases database and API connections.
func (a *Application) Close() error {
	if a.reasoner != nil {
		_ = a.reasoner.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
