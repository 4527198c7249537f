package ports

import (
	"context"

	"CompetitorScout/internal/domain"
)

// WebsiteRepository reads client business records.
type WebsiteRepository interface {
	GetByID(ctx context.Context, id string) (domain.Website, error)
	ListActive(ctx context.Context) ([]domain.Website, error)
}

// CompetitorRepository persists discovered competitors. Upsert is keyed on
// (website_id, url) so repeated discovery runs stay idempotent.
type CompetitorRepository interface {
	Upsert(ctx context.Context, competitor domain.Competitor) error
	ListByWebsite(ctx context.Context, websiteID string) ([]domain.Competitor, error)
}

// DiscoveryJobRepository records the append-only discovery-job history.
type DiscoveryJobRepository interface {
	Create(ctx context.Context, job domain.DiscoveryJob) error
	MarkInProgress(ctx context.Context, jobID string) error
	MarkCompleted(ctx context.Context, jobID string, competitorsFound int) error
	MarkFailed(ctx context.Context, jobID string, message string) error
	LatestCompleted(ctx context.Context, websiteID string) (domain.DiscoveryJob, error)
}

// AssessmentRepository stores immutable threat-assessment snapshots.
type AssessmentRepository interface {
	Insert(ctx context.Context, assessment domain.ThreatAssessment) error
	Latest(ctx context.Context, websiteID string) (domain.ThreatAssessment, error)
}
