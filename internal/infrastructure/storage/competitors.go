package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"CompetitorScout/internal/domain"
)

// Upsert inserts or refreshes a competitor row keyed by (website_id, url),
// which keeps repeated discovery runs idempotent. A previously soft-deleted
// row re-surfacing in discovery is revived.
func (r *Repository) Upsert(ctx context.Context, c domain.Competitor) error {
	_, err := r.builder.
		Insert("competitors").
		Columns("id", "website_id", "name", "url", "description",
			"threat_score", "threat_level", "confidence", "created_at", "updated_at").
		Values(c.ID, c.WebsiteID, c.Name, c.URL, c.Description,
			c.ThreatScore, string(c.ThreatLevel), c.Confidence, c.CreatedAt, c.UpdatedAt).
		Suffix(`ON CONFLICT (website_id, url) DO UPDATE
            SET name = EXCLUDED.name,
                description = EXCLUDED.description,
                threat_score = EXCLUDED.threat_score,
                threat_level = EXCLUDED.threat_level,
                confidence = EXCLUDED.confidence,
                updated_at = EXCLUDED.updated_at,
                deleted_at = NULL`).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert competitor: %w", err)
	}
	return nil
}

// ListByWebsite returns the website's competitors, soft-deleted excluded,
// strongest threat first.
func (r *Repository) ListByWebsite(ctx context.Context, websiteID string) ([]domain.Competitor, error) {
	rows, err := r.builder.
		Select("id", "website_id", "name", "url", "description",
			"threat_score", "threat_level", "confidence", "created_at", "updated_at", "deleted_at").
		From("competitors").
		Where(sq.Eq{"website_id": websiteID, "deleted_at": nil}).
		OrderBy("threat_score DESC NULLS LAST", "name").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query competitors: %w", err)
	}
	defer rows.Close()

	var competitors []domain.Competitor
	for rows.Next() {
		var c domain.Competitor
		err := rows.Scan(
			&c.ID, &c.WebsiteID, &c.Name, &c.URL, &c.Description,
			&c.ThreatScore, &c.ThreatLevel, &c.Confidence,
			&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan competitor: %w", err)
		}
		competitors = append(competitors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return competitors, nil
}
