package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"CompetitorScout/internal/domain"
	"CompetitorScout/internal/ports"
)

// maxSubScore bounds each weighted threat dimension.
const maxSubScore = 25

// neutralThreatScore is recorded when scoring fails; a competitor that fails
// scoring is still worth keeping with a conservative estimate.
const neutralThreatScore = 50

// Scorer requests a weighted threat breakdown per validated competitor.
type Scorer struct {
	reasoner ports.Reasoner
	timeout  time.Duration
	logger   *slog.Logger
}

// NewScorer builds the scorer; timeout bounds each reasoning call.
func NewScorer(reasoner ports.Reasoner, timeout time.Duration, logger *slog.Logger) *Scorer {
	return &Scorer{reasoner: reasoner, timeout: timeout, logger: logger}
}

type scoringResponse struct {
	CompanySize    int    `json:"company_size"`
	GrowthRate     int    `json:"growth_rate"`
	FeatureParity  int    `json:"feature_parity"`
	MarketPresence int    `json:"market_presence"`
	ThreatLevel    string `json:"threat_level"`
}

// Score issues one reasoning call for the competitor and derives the
// composite 0-100 threat score from the four clamped sub-scores. Provider
// or parse failures substitute the neutral default instead of dropping the
// competitor.
func (s *Scorer) Score(ctx context.Context, bc domain.BusinessContext, vc domain.ValidatedCompetitor) domain.ScoredCompetitor {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.reasoner.Complete(callCtx, buildScoringPrompt(bc, vc))
	if err != nil {
		s.warn("scoring call degraded", "competitor", vc.URL, "error", err)
		return neutralScore(vc)
	}

	var parsed scoringResponse
	if err := ExtractJSON(raw, &parsed); err != nil {
		s.warn("scoring response unparseable", "competitor", vc.URL, "error", err)
		return neutralScore(vc)
	}

	scored := domain.ScoredCompetitor{
		ValidatedCompetitor: vc,
		CompanySize:         clamp(parsed.CompanySize, 0, maxSubScore),
		GrowthRate:          clamp(parsed.GrowthRate, 0, maxSubScore),
		FeatureParity:       clamp(parsed.FeatureParity, 0, maxSubScore),
		MarketPresence:      clamp(parsed.MarketPresence, 0, maxSubScore),
	}
	scored.ThreatScore = clamp(scored.CompanySize+scored.GrowthRate+scored.FeatureParity+scored.MarketPresence, 0, 100)

	level := domain.ThreatLevel(strings.ToUpper(strings.TrimSpace(parsed.ThreatLevel)))
	if !domain.ValidThreatLevel(level) {
		level = levelForScore(scored.ThreatScore)
	}
	scored.ThreatLevel = level

	return scored
}

func neutralScore(vc domain.ValidatedCompetitor) domain.ScoredCompetitor {
	return domain.ScoredCompetitor{
		ValidatedCompetitor: vc,
		ThreatScore:         neutralThreatScore,
		ThreatLevel:         domain.ThreatMedium,
	}
}

func levelForScore(score int) domain.ThreatLevel {
	switch {
	case score >= 80:
		return domain.ThreatCritical
	case score >= 60:
		return domain.ThreatHigh
	case score >= 40:
		return domain.ThreatMedium
	default:
		return domain.ThreatLow
	}
}

func buildScoringPrompt(bc domain.BusinessContext, vc domain.ValidatedCompetitor) string {
	return fmt.Sprintf(`You are scoring how threatening one competitor is to a local business.

Business: %s (%s) in %s
Competitor: %s (%s)
Competitor description: %s

Rate the competitor on four weighted dimensions, each 0-25:
company_size, growth_rate, feature_parity, market_presence.
Also classify the overall threat_level as CRITICAL, HIGH, MEDIUM, or LOW.

Respond with JSON only:
{"company_size":0,"growth_rate":0,"feature_parity":0,"market_presence":0,"threat_level":"MEDIUM"}`,
		bc.Name, bc.Category, bc.Location, vc.Name, vc.URL, vc.Description)
}

func (s *Scorer) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
