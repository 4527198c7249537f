package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"CompetitorScout/internal/domain"
)

var websiteColumns = []string{
	"id", "name", "url", "email", "category", "location",
	"keywords", "competitor_hints", "created_at", "deleted_at",
}

// GetByID loads one website; soft-deleted rows are treated as absent.
func (r *Repository) GetByID(ctx context.Context, id string) (domain.Website, error) {
	row := r.builder.
		Select(websiteColumns...).
		From("websites").
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		RunWith(r.db).
		QueryRowContext(ctx)

	site, err := scanWebsite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Website{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Website{}, fmt.Errorf("query website: %w", err)
	}
	return site, nil
}

// ListActive returns all websites that have not been soft-deleted.
func (r *Repository) ListActive(ctx context.Context) ([]domain.Website, error) {
	rows, err := r.builder.
		Select(websiteColumns...).
		From("websites").
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("created_at").
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query active websites: %w", err)
	}
	defer rows.Close()

	var sites []domain.Website
	for rows.Next() {
		site, err := scanWebsite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return sites, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWebsite(row rowScanner) (domain.Website, error) {
	var (
		site     domain.Website
		keywords pq.StringArray
		hints    pq.StringArray
	)

	err := row.Scan(
		&site.ID, &site.Name, &site.URL, &site.Email, &site.Category,
		&site.Location, &keywords, &hints, &site.CreatedAt, &site.DeletedAt,
	)
	if err != nil {
		return domain.Website{}, err
	}

	site.Keywords = []string(keywords)
	site.CompetitorHints = []string(hints)
	return site, nil
}
