package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"CompetitorScout/internal/domain"
	"CompetitorScout/internal/ports"
)

// maxCandidatesPerAgent bounds each research agent's output.
const maxCandidatesPerAgent = 5

type agentQuery struct {
	AgentID string
	Query   string
}

// agentQueries derives the three fixed query formulations from one business
// context. Each agent owns a distinct template.
func agentQueries(bc domain.BusinessContext) []agentQuery {
	return []agentQuery{
		{AgentID: "agent-competitors", Query: fmt.Sprintf("%s competitors %s", bc.Category, bc.Location)},
		{AgentID: "agent-best-of", Query: fmt.Sprintf("best %s in %s", bc.Category, bc.Location)},
		{AgentID: "agent-alternatives", Query: fmt.Sprintf("%s alternatives to %s", bc.Category, bc.Name)},
	}
}

// AgentPool fans research queries out to the search provider.
type AgentPool struct {
	provider ports.SearchProvider
	timeout  time.Duration
	logger   *slog.Logger
}

// NewAgentPool builds the pool; timeout bounds each provider call.
func NewAgentPool(provider ports.SearchProvider, timeout time.Duration, logger *slog.Logger) *AgentPool {
	return &AgentPool{provider: provider, timeout: timeout, logger: logger}
}

// Discover runs all research agents concurrently and joins their candidate
// lists in agent order. The agents share no mutable state, so run latency is
// bounded by the slowest provider call. A failed or timed-out call degrades
// that agent to an empty list; it never aborts the run.
func (p *AgentPool) Discover(ctx context.Context, bc domain.BusinessContext) []domain.Candidate {
	queries := agentQueries(bc)
	results := make([][]domain.Candidate, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			results[i] = p.runAgent(gctx, q)
			return nil
		})
	}
	_ = g.Wait()

	var joined []domain.Candidate
	for _, list := range results {
		joined = append(joined, list...)
	}
	return joined
}

func (p *AgentPool) runAgent(ctx context.Context, q agentQuery) []domain.Candidate {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	hits, err := p.provider.Search(callCtx, q.Query)
	if err != nil {
		p.warn("search agent degraded", "agent", q.AgentID, "error", err)
		return nil
	}

	candidates := make([]domain.Candidate, 0, maxCandidatesPerAgent)
	for _, hit := range hits {
		if hit.URL == "" {
			continue
		}
		candidates = append(candidates, domain.Candidate{
			Name:        hit.Title,
			URL:         hit.URL,
			Description: hit.Content,
			AgentID:     q.AgentID,
		})
		if len(candidates) == maxCandidatesPerAgent {
			break
		}
	}
	return candidates
}

func (p *AgentPool) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

// MergeCandidates deduplicates agent output by URL. The URL is the identity
// key; later entries overwrite earlier ones for the same URL while the
// first-seen position is kept.
func MergeCandidates(candidates []domain.Candidate) []domain.Candidate {
	index := make(map[string]int, len(candidates))
	merged := make([]domain.Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c.URL == "" {
			continue
		}
		if at, ok := index[c.URL]; ok {
			merged[at] = c
			continue
		}
		index[c.URL] = len(merged)
		merged = append(merged, c)
	}

	return merged
}
