package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"CompetitorScout/internal/domain"
	"CompetitorScout/internal/ports"
)

// Discovery method tags recorded on job rows.
const (
	MethodOnDemand        = "on_demand"
	MethodScheduledWeekly = "scheduled_weekly"
)

// DiscoveryDeps wires the pipeline stages and repositories into the
// orchestrator.
type DiscoveryDeps struct {
	Resolver    *ContextResolver
	Agents      *AgentPool
	Validator   *Validator
	Scorer      *Scorer
	Competitors ports.CompetitorRepository
	Jobs        ports.DiscoveryJobRepository
	Logger      *slog.Logger
}

// Discovery orchestrates one competitor-discovery run per website and owns
// the job lifecycle: PENDING -> IN_PROGRESS -> COMPLETED | FAILED.
type Discovery struct {
	resolver    *ContextResolver
	agents      *AgentPool
	validator   *Validator
	scorer      *Scorer
	competitors ports.CompetitorRepository
	jobs        ports.DiscoveryJobRepository
	logger      *slog.Logger
}

// NewDiscovery constructs the orchestration component.
func NewDiscovery(deps DiscoveryDeps) *Discovery {
	return &Discovery{
		resolver:    deps.Resolver,
		agents:      deps.Agents,
		validator:   deps.Validator,
		scorer:      deps.Scorer,
		competitors: deps.Competitors,
		jobs:        deps.Jobs,
		logger:      deps.Logger,
	}
}

// Run executes the full pipeline for one website: resolve context, fan out
// research agents, deduplicate, validate, score, and upsert competitor rows.
// Agent and validator failures degrade to fewer results; only context
// resolution and persistence failures mark the job FAILED. The returned job
// reflects the terminal state.
func (d *Discovery) Run(ctx context.Context, websiteID, method string) (domain.DiscoveryJob, error) {
	job := domain.DiscoveryJob{
		ID:        uuid.NewString(),
		WebsiteID: websiteID,
		Status:    domain.JobPending,
		Method:    method,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.jobs.Create(ctx, job); err != nil {
		return job, fmt.Errorf("create discovery job: %w", err)
	}

	bc, err := d.resolver.Resolve(ctx, websiteID)
	if err != nil {
		wrapped := fmt.Errorf("resolve context: %w", err)
		d.fail(ctx, &job, wrapped)
		return job, wrapped
	}

	if err := d.jobs.MarkInProgress(ctx, job.ID); err != nil {
		return job, fmt.Errorf("mark job in progress: %w", err)
	}
	job.Status = domain.JobInProgress

	candidates := MergeCandidates(d.agents.Discover(ctx, bc))
	d.info("candidates gathered", "website", websiteID, "count", len(candidates))

	validated := d.validator.Validate(ctx, bc, candidates)

	found := 0
	now := time.Now().UTC()
	for _, vc := range validated {
		scored := d.scorer.Score(ctx, bc, vc)
		if err := d.competitors.Upsert(ctx, competitorRow(websiteID, scored, now)); err != nil {
			wrapped := fmt.Errorf("persist competitor %s: %w", scored.URL, err)
			d.fail(ctx, &job, wrapped)
			return job, wrapped
		}
		found++
	}

	if err := d.jobs.MarkCompleted(ctx, job.ID, found); err != nil {
		return job, fmt.Errorf("complete discovery job: %w", err)
	}
	job.Status = domain.JobCompleted
	job.CompetitorsFound = found

	d.info("discovery completed", "website", websiteID, "found", found)
	return job, nil
}

// fail records the terminal FAILED state with the cause verbatim.
func (d *Discovery) fail(ctx context.Context, job *domain.DiscoveryJob, cause error) {
	job.Status = domain.JobFailed
	job.ErrorMessage = cause.Error()
	if err := d.jobs.MarkFailed(ctx, job.ID, cause.Error()); err != nil {
		d.error("record job failure", "job", job.ID, "error", err)
	}
}

func competitorRow(websiteID string, sc domain.ScoredCompetitor, now time.Time) domain.Competitor {
	score := sc.ThreatScore
	return domain.Competitor{
		ID:          uuid.NewString(),
		WebsiteID:   websiteID,
		Name:        sc.Name,
		URL:         sc.URL,
		Description: sc.Description,
		ThreatScore: &score,
		ThreatLevel: sc.ThreatLevel,
		Confidence:  sc.Confidence,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (d *Discovery) info(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Info(msg, args...)
	}
}

func (d *Discovery) error(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Error(msg, args...)
	}
}
