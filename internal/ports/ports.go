package ports

import (
	"context"
	"time"

	"CompetitorScout/internal/domain"
)

// SearchResult is one hit returned by the external web-search provider.
type SearchResult struct {
	Title   string
	URL     string
	Content string
}

// SearchProvider executes one web query on behalf of a research agent.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// Reasoner sends a prompt to the external reasoning service and returns the
// raw response text. Responses may wrap JSON in prose or markdown fences;
// callers own the parse-or-degrade contract.
type Reasoner interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProfileFetcher scrapes a business homepage for context hints.
type ProfileFetcher interface {
	Fetch(ctx context.Context, siteURL string) (domain.SiteProfile, error)
}

// ReportSink delivers compiled reports and reminders out of the core.
type ReportSink interface {
	Deliver(ctx context.Context, recipient, subject, body string) error
}

// Scheduler drives a recurring job until stopped.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
