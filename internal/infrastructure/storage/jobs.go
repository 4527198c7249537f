package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"CompetitorScout/internal/domain"
)

// Create inserts a fresh PENDING job row. Job history is append-only.
func (r *Repository) Create(ctx context.Context, job domain.DiscoveryJob) error {
	_, err := r.builder.
		Insert("discovery_jobs").
		Columns("id", "website_id", "status", "method",
			"competitors_found", "error_message", "created_at").
		Values(job.ID, job.WebsiteID, string(job.Status), job.Method,
			job.CompetitorsFound, job.ErrorMessage, job.CreatedAt).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert discovery job: %w", err)
	}
	return nil
}

// MarkInProgress transitions the job to IN_PROGRESS and stamps its start.
func (r *Repository) MarkInProgress(ctx context.Context, jobID string) error {
	return r.updateJob(ctx, jobID, map[string]any{
		"status":     string(domain.JobInProgress),
		"started_at": sq.Expr("NOW()"),
	})
}

// MarkCompleted records the terminal COMPLETED state with the result count.
func (r *Repository) MarkCompleted(ctx context.Context, jobID string, competitorsFound int) error {
	return r.updateJob(ctx, jobID, map[string]any{
		"status":            string(domain.JobCompleted),
		"competitors_found": competitorsFound,
		"finished_at":       sq.Expr("NOW()"),
	})
}

// MarkFailed records the terminal FAILED state with the cause verbatim.
func (r *Repository) MarkFailed(ctx context.Context, jobID string, message string) error {
	return r.updateJob(ctx, jobID, map[string]any{
		"status":        string(domain.JobFailed),
		"error_message": message,
		"finished_at":   sq.Expr("NOW()"),
	})
}

func (r *Repository) updateJob(ctx context.Context, jobID string, set map[string]any) error {
	_, err := r.builder.
		Update("discovery_jobs").
		SetMap(set).
		Where(sq.Eq{"id": jobID}).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("update discovery job %s: %w", jobID, err)
	}
	return nil
}

// LatestCompleted returns the most recent COMPLETED job for a website, or
// domain.ErrNotFound if none exists.
func (r *Repository) LatestCompleted(ctx context.Context, websiteID string) (domain.DiscoveryJob, error) {
	row := r.builder.
		Select("id", "website_id", "status", "method", "competitors_found",
			"error_message", "started_at", "finished_at", "created_at").
		From("discovery_jobs").
		Where(sq.Eq{"website_id": websiteID, "status": string(domain.JobCompleted)}).
		OrderBy("finished_at DESC").
		Limit(1).
		RunWith(r.db).
		QueryRowContext(ctx)

	var job domain.DiscoveryJob
	err := row.Scan(
		&job.ID, &job.WebsiteID, &job.Status, &job.Method, &job.CompetitorsFound,
		&job.ErrorMessage, &job.StartedAt, &job.FinishedAt, &job.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DiscoveryJob{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.DiscoveryJob{}, fmt.Errorf("query latest job: %w", err)
	}
	return job, nil
}
