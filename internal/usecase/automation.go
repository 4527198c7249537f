package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"CompetitorScout/internal/domain"
	"CompetitorScout/internal/ports"
)

// staleDiscoveryAge is how long a website may go without a completed
// discovery before the daily scan nudges its owner.
const staleDiscoveryAge = 30 * 24 * time.Hour

// BatchResult reports aggregate counts for one batch run. Failures are
// recorded per item and naturally retried on the next scheduled occurrence.
type BatchResult struct {
	Succeeded int
	Failed    int
}

// AutomationDeps wires repositories, the discovery orchestrator, the report
// sink, and the three recurring drivers.
type AutomationDeps struct {
	Websites    ports.WebsiteRepository
	Competitors ports.CompetitorRepository
	Jobs        ports.DiscoveryJobRepository
	Assessments ports.AssessmentRepository
	Discovery   *Discovery
	Sink        ports.ReportSink
	Weekly      ports.Scheduler
	Monthly     ports.Scheduler
	Daily       ports.Scheduler
	Logger      *slog.Logger
}

// Automation owns every recurring job in one lifecycle object: the weekly
// refresh, the monthly report run, and the daily reminder scan. Start is
// idempotent and Stop tears all drivers down.
type Automation struct {
	websites    ports.WebsiteRepository
	competitors ports.CompetitorRepository
	jobs        ports.DiscoveryJobRepository
	assessments ports.AssessmentRepository
	discovery   *Discovery
	sink        ports.ReportSink
	weekly      ports.Scheduler
	monthly     ports.Scheduler
	daily       ports.Scheduler
	logger      *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewAutomation constructs the scheduler-facing batch component.
func NewAutomation(deps AutomationDeps) *Automation {
	return &Automation{
		websites:    deps.Websites,
		competitors: deps.Competitors,
		jobs:        deps.Jobs,
		assessments: deps.Assessments,
		discovery:   deps.Discovery,
		sink:        deps.Sink,
		weekly:      deps.Weekly,
		monthly:     deps.Monthly,
		daily:       deps.Daily,
		logger:      deps.Logger,
	}
}

// Start registers all recurring jobs with their drivers. Calling Start on a
// running automation is a no-op.
func (a *Automation) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return nil
	}

	if a.weekly != nil {
		if err := a.weekly.Start(ctx, func(time.Time) { a.WeeklyRefresh(ctx) }); err != nil {
			return fmt.Errorf("start weekly driver: %w", err)
		}
	}
	if a.monthly != nil {
		if err := a.monthly.Start(ctx, func(time.Time) { a.MonthlyReports(ctx) }); err != nil {
			return fmt.Errorf("start monthly driver: %w", err)
		}
	}
	if a.daily != nil {
		if err := a.daily.Start(ctx, func(time.Time) { a.DailyReminders(ctx) }); err != nil {
			return fmt.Errorf("start daily driver: %w", err)
		}
	}

	a.started = true
	return nil
}

// Stop halts all drivers.
func (a *Automation) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.started {
		return nil
	}

	for _, driver := range []ports.Scheduler{a.weekly, a.monthly, a.daily} {
		if driver == nil {
			continue
		}
		if err := driver.Stop(ctx); err != nil {
			return err
		}
	}

	a.started = false
	return nil
}

// WeeklyRefresh re-runs discovery and recomputes the aggregate threat for
// every active website. One item's failure is logged and counted without
// stopping iteration over the rest.
func (a *Automation) WeeklyRefresh(ctx context.Context) BatchResult {
	return a.runBatch(ctx, "weekly refresh", func(ctx context.Context, site domain.Website) error {
		if _, err := a.discovery.Run(ctx, site.ID, MethodScheduledWeekly); err != nil {
			return err
		}
		return a.reassess(ctx, site)
	})
}

// MonthlyReports compiles the latest assessment and top competitors per
// website and hands the report to the sink.
func (a *Automation) MonthlyReports(ctx context.Context) BatchResult {
	return a.runBatch(ctx, "monthly reports", a.reportWebsite)
}

// DailyReminders scans for websites whose discovery data has gone stale and
// nudges their owners.
func (a *Automation) DailyReminders(ctx context.Context) BatchResult {
	return a.runBatch(ctx, "daily reminders", a.remindWebsite)
}

func (a *Automation) runBatch(ctx context.Context, name string, item func(context.Context, domain.Website) error) BatchResult {
	sites, err := a.websites.ListActive(ctx)
	if err != nil {
		a.error("list active websites", "batch", name, "error", err)
		return BatchResult{}
	}

	var result BatchResult
	for _, site := range sites {
		if err := item(ctx, site); err != nil {
			a.error("batch item failed", "batch", name, "website", site.ID, "error", err)
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	a.info("batch finished", "batch", name, "succeeded", result.Succeeded, "failed", result.Failed)
	return result
}

// ReassessWebsite recomputes and appends the threat assessment for one
// website from its persisted competitor rows.
func (a *Automation) ReassessWebsite(ctx context.Context, websiteID string) error {
	site, err := a.websites.GetByID(ctx, websiteID)
	if err != nil {
		return fmt.Errorf("load website %s: %w", websiteID, err)
	}
	return a.reassess(ctx, site)
}

func (a *Automation) reassess(ctx context.Context, site domain.Website) error {
	competitors, err := a.competitors.ListByWebsite(ctx, site.ID)
	if err != nil {
		return fmt.Errorf("load competitors: %w", err)
	}

	assessment := CalculateThreat(competitors, len(site.Keywords))
	assessment.ID = uuid.NewString()
	assessment.WebsiteID = site.ID
	assessment.CreatedAt = time.Now().UTC()

	if err := a.assessments.Insert(ctx, assessment); err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

func (a *Automation) reportWebsite(ctx context.Context, site domain.Website) error {
	competitors, err := a.competitors.ListByWebsite(ctx, site.ID)
	if err != nil {
		return fmt.Errorf("load competitors: %w", err)
	}

	assessment, err := a.assessments.Latest(ctx, site.ID)
	if errors.Is(err, domain.ErrNotFound) {
		assessment = CalculateThreat(competitors, len(site.Keywords))
	} else if err != nil {
		return fmt.Errorf("load assessment: %w", err)
	}

	if site.Email == "" {
		a.info("no report recipient configured", "website", site.ID)
		return nil
	}

	subject := fmt.Sprintf("Monthly competitive report for %s", site.Name)
	return a.sink.Deliver(ctx, site.Email, subject, buildReportBody(site, assessment, competitors))
}

func (a *Automation) remindWebsite(ctx context.Context, site domain.Website) error {
	last, err := a.jobs.LatestCompleted(ctx, site.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Never discovered; stale by definition.
	case err != nil:
		return fmt.Errorf("load latest job: %w", err)
	case last.FinishedAt != nil && time.Since(*last.FinishedAt) < staleDiscoveryAge:
		return nil
	}

	if site.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Competitor data for %s is out of date", site.Name)
	body := fmt.Sprintf("Hi,\n\nThe competitor landscape for %s has not been refreshed in over 30 days.\nLog in to trigger a new discovery run, or wait for the next weekly refresh.\n", site.Name)
	return a.sink.Deliver(ctx, site.Email, subject, body)
}

// buildReportBody formats the plain-text monthly digest handed to the sink.
func buildReportBody(site domain.Website, assessment domain.ThreatAssessment, competitors []domain.Competitor) string {
	body := fmt.Sprintf("Competitive threat report for %s\n\nThreat level: %s\nThreat score: %d/100\nCompetitors tracked: %d\nMarket saturation: %s\nAI search visibility: %s\n",
		site.Name,
		assessment.ThreatLevel,
		assessment.ThreatScore,
		assessment.CompetitorCount,
		assessment.MarketSaturation,
		assessment.AISearchVisibility,
	)

	if len(competitors) == 0 {
		return body + "\nNo competitors on record yet.\n"
	}

	body += "\nTop competitors:\n"
	for _, c := range competitors {
		score := "n/a"
		if c.ThreatScore != nil {
			score = fmt.Sprintf("%d", *c.ThreatScore)
		}
		body += fmt.Sprintf("- %s (%s)\n  Threat: %s, score %s\n", c.Name, c.URL, c.ThreatLevel, score)
	}
	return body
}

func (a *Automation) info(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
	}
}

func (a *Automation) error(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Error(msg, args...)
	}
}
