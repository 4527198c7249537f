package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"CompetitorScout/internal/ports"
)

// Repository implements all persistence ports on a shared Postgres handle.
// Queries are built with squirrel against $n placeholders.
type Repository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var (
	_ ports.WebsiteRepository      = (*Repository)(nil)
	_ ports.CompetitorRepository   = (*Repository)(nil)
	_ ports.DiscoveryJobRepository = (*Repository)(nil)
	_ ports.AssessmentRepository   = (*Repository)(nil)
)

// Connect opens and verifies a Postgres connection.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// NewRepository wires a sql.DB implementation.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}
