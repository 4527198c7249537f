package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"CompetitorScout/internal/domain"
)

// Insert appends an immutable assessment snapshot.
func (r *Repository) Insert(ctx context.Context, a domain.ThreatAssessment) error {
	_, err := r.builder.
		Insert("threat_assessments").
		Columns("id", "website_id", "threat_level", "threat_score",
			"competitor_count", "average_score", "market_saturation",
			"ai_search_visibility", "created_at").
		Values(a.ID, a.WebsiteID, string(a.ThreatLevel), a.ThreatScore,
			a.CompetitorCount, a.AverageScore, string(a.MarketSaturation),
			string(a.AISearchVisibility), a.CreatedAt).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// Latest returns the website's current threat view: the newest snapshot by
// creation time, or domain.ErrNotFound when none has been recorded.
func (r *Repository) Latest(ctx context.Context, websiteID string) (domain.ThreatAssessment, error) {
	row := r.builder.
		Select("id", "website_id", "threat_level", "threat_score",
			"competitor_count", "average_score", "market_saturation",
			"ai_search_visibility", "created_at").
		From("threat_assessments").
		Where(sq.Eq{"website_id": websiteID}).
		OrderBy("created_at DESC").
		Limit(1).
		RunWith(r.db).
		QueryRowContext(ctx)

	var a domain.ThreatAssessment
	err := row.Scan(
		&a.ID, &a.WebsiteID, &a.ThreatLevel, &a.ThreatScore,
		&a.CompetitorCount, &a.AverageScore, &a.MarketSaturation,
		&a.AISearchVisibility, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ThreatAssessment{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.ThreatAssessment{}, fmt.Errorf("query latest assessment: %w", err)
	}
	return a, nil
}
