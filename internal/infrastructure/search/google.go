package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"CompetitorScout/internal/ports"
)

// resultsPerQuery matches the per-agent candidate bound upstream.
const resultsPerQuery = 5

// GoogleProvider implements ports.SearchProvider on Google Custom Search.
type GoogleProvider struct {
	svc *customsearch.Service
	cx  string
}

var _ ports.SearchProvider = (*GoogleProvider)(nil)

// NewGoogleProvider dials the Custom Search API.
func NewGoogleProvider(ctx context.Context, apiKey, engineID string) (*GoogleProvider, error) {
	if apiKey == "" || engineID == "" {
		return nil, fmt.Errorf("search provider misconfigured")
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create customsearch service: %w", err)
	}

	return &GoogleProvider{svc: svc, cx: engineID}, nil
}

// Search runs one query and maps the top hits to SearchResults.
func (p *GoogleProvider) Search(ctx context.Context, query string) ([]ports.SearchResult, error) {
	resp, err := p.svc.Cse.List().Cx(p.cx).Q(query).Num(resultsPerQuery).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]ports.SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, ports.SearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Content: item.Snippet,
		})
	}
	return results, nil
}
