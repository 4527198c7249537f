package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"CompetitorScout/internal/domain"
	"CompetitorScout/internal/ports"
)

// Policy constants of the validation stage; fixed by design, not per call.
const (
	minValidationConfidence = 80
	maxValidated            = 5
)

// Validator asks the reasoning service to judge deduplicated candidates
// against the business context.
type Validator struct {
	reasoner ports.Reasoner
	timeout  time.Duration
	logger   *slog.Logger
}

// NewValidator builds the validator; timeout bounds the reasoning call.
func NewValidator(reasoner ports.Reasoner, timeout time.Duration, logger *slog.Logger) *Validator {
	return &Validator{reasoner: reasoner, timeout: timeout, logger: logger}
}

type validationEntry struct {
	Name                string `json:"name"`
	URL                 string `json:"url"`
	IsCompetitor        bool   `json:"is_competitor"`
	BusinessModelMatch  int    `json:"business_model_match"`
	GeographicRelevance int    `json:"geographic_relevance"`
	MarketRelevance     int    `json:"market_relevance"`
	Confidence          int    `json:"confidence"`
}

type validationResponse struct {
	Competitors []validationEntry `json:"competitors"`
}

// Validate sends one structured judgment request for the whole candidate
// list and keeps confirmed competitors with confidence >= 80, ranked by
// confidence and capped at five. Provider or parse failures degrade to an
// empty list; a best-effort enrichment step must not take down the run.
func (v *Validator) Validate(ctx context.Context, bc domain.BusinessContext, candidates []domain.Candidate) []domain.ValidatedCompetitor {
	if len(candidates) == 0 {
		return nil
	}

	prompt, err := buildValidationPrompt(bc, candidates)
	if err != nil {
		v.warn("build validation prompt", "error", err)
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	raw, err := v.reasoner.Complete(callCtx, prompt)
	if err != nil {
		v.warn("validation call degraded", "error", err)
		return nil
	}

	var parsed validationResponse
	if err := ExtractJSON(raw, &parsed); err != nil {
		v.warn("validation response unparseable", "error", err)
		return nil
	}

	byURL := make(map[string]domain.Candidate, len(candidates))
	for _, c := range candidates {
		byURL[c.URL] = c
	}

	kept := make([]domain.ValidatedCompetitor, 0, len(parsed.Competitors))
	for _, entry := range parsed.Competitors {
		if !entry.IsCompetitor || entry.Confidence < minValidationConfidence {
			continue
		}

		candidate, ok := byURL[entry.URL]
		if !ok {
			candidate = domain.Candidate{Name: entry.Name, URL: entry.URL}
		}

		kept = append(kept, domain.ValidatedCompetitor{
			Candidate:           candidate,
			IsCompetitor:        true,
			BusinessModelMatch:  clamp(entry.BusinessModelMatch, 0, 100),
			GeographicRelevance: clamp(entry.GeographicRelevance, 0, 100),
			MarketRelevance:     clamp(entry.MarketRelevance, 0, 100),
			Confidence:          clamp(entry.Confidence, 0, 100),
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Confidence > kept[j].Confidence
	})

	if len(kept) > maxValidated {
		kept = kept[:maxValidated]
	}
	return kept
}

func buildValidationPrompt(bc domain.BusinessContext, candidates []domain.Candidate) (string, error) {
	type item struct {
		Name        string `json:"name"`
		URL         string `json:"url"`
		Description string `json:"description"`
	}

	payload := make([]item, 0, len(candidates))
	for _, c := range candidates {
		payload = append(payload, item{Name: c.Name, URL: c.URL, Description: c.Description})
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal candidates: %w", err)
	}

	return fmt.Sprintf(`You are validating potential competitors for a local business.

Business: %s
Category: %s
Location: %s
Website: %s

Judge each candidate below on business-model match, geographic relevance, and
market relevance (each 0-100), decide whether it is a real competitor, and
assign an overall confidence (0-100).

Candidates:
%s

Respond with JSON only, in this shape:
{"competitors":[{"name":"...","url":"...","is_competitor":true,"business_model_match":0,"geographic_relevance":0,"market_relevance":0,"confidence":0}]}`,
		bc.Name, bc.Category, bc.Location, bc.URL, encoded), nil
}

func (v *Validator) warn(msg string, args ...any) {
	if v.logger != nil {
		v.logger.Warn(msg, args...)
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
