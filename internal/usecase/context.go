package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"CompetitorScout/internal/domain"
	"CompetitorScout/internal/ports"
)

// ContextResolver builds the per-run BusinessContext snapshot for a website.
type ContextResolver struct {
	websites ports.WebsiteRepository
	profiles ports.ProfileFetcher
	logger   *slog.Logger
}

// NewContextResolver wires the website repository with an optional homepage
// profile fetcher used to backfill keyword hints.
func NewContextResolver(websites ports.WebsiteRepository, profiles ports.ProfileFetcher, logger *slog.Logger) *ContextResolver {
	return &ContextResolver{websites: websites, profiles: profiles, logger: logger}
}

// Resolve loads the website record and derives the search/scoring context.
// A missing website is fatal to the run; missing taxonomy data defaults to
// empty sets, and a failed homepage scrape degrades silently.
func (r *ContextResolver) Resolve(ctx context.Context, websiteID string) (domain.BusinessContext, error) {
	site, err := r.websites.GetByID(ctx, websiteID)
	if err != nil {
		return domain.BusinessContext{}, fmt.Errorf("load website %s: %w", websiteID, err)
	}

	bc := domain.BusinessContext{
		WebsiteID:       site.ID,
		Name:            site.Name,
		URL:             site.URL,
		Category:        site.Category,
		Location:        site.Location,
		Keywords:        site.Keywords,
		CompetitorHints: site.CompetitorHints,
	}
	if bc.Keywords == nil {
		bc.Keywords = []string{}
	}
	if bc.CompetitorHints == nil {
		bc.CompetitorHints = []string{}
	}

	if len(bc.Keywords) == 0 && r.profiles != nil && site.URL != "" {
		profile, err := r.profiles.Fetch(ctx, site.URL)
		if err != nil {
			r.warn("homepage profile fetch failed", "website", site.ID, "error", err)
		} else {
			bc.Keywords = append(bc.Keywords, profile.Keywords...)
		}
	}

	return bc, nil
}

func (r *ContextResolver) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
