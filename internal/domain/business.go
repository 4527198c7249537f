package domain

import (
	"errors"
	"time"
)

// ErrNotFound signals that a requested record does not exist in storage.
var ErrNotFound = errors.New("not found")

// Website is the client business record that owns competitors, discovery
// jobs, and threat assessments. The core treats it as read-only.
type Website struct {
	ID              string
	Name            string
	URL             string
	Email           string
	Category        string
	Location        string
	Keywords        []string
	CompetitorHints []string
	CreatedAt       time.Time
	DeletedAt       *time.Time
}

// Active reports whether the website has not been soft-deleted.
func (w Website) Active() bool {
	return w.DeletedAt == nil
}

// BusinessContext is the per-run snapshot that parameterizes search queries
// and scoring prompts. Built fresh for every discovery run, never persisted.
type BusinessContext struct {
	WebsiteID       string
	Name            string
	URL             string
	Category        string
	Location        string
	Keywords        []string
	CompetitorHints []string
}

// SiteProfile holds hints scraped from a business homepage, used to backfill
// sparse website records before a discovery run.
type SiteProfile struct {
	Title       string
	Description string
	Keywords    []string
}
