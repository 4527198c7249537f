package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"CompetitorScout/internal/domain"
)

func validatedCompetitor() domain.ValidatedCompetitor {
	return domain.ValidatedCompetitor{
		Candidate: domain.Candidate{
			Name: "Petal Pushers",
			URL:  "https://petalpushers.example",
		},
		IsCompetitor: true,
		Confidence:   90,
	}
}

func TestScoreSumsClampedDimensions(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{responses: []string{
		`{"company_size":20,"growth_rate":15,"feature_parity":25,"market_presence":10,"threat_level":"HIGH"}`,
	}}
	scorer := NewScorer(reasoner, time.Second, nil)

	scored := scorer.Score(context.Background(), testContext(), validatedCompetitor())
	if scored.ThreatScore != 70 {
		t.Fatalf("expected composite 70, got %d", scored.ThreatScore)
	}
	if scored.ThreatLevel != domain.ThreatHigh {
		t.Fatalf("expected HIGH, got %s", scored.ThreatLevel)
	}
}

func TestScoreClampsOutOfRangeDimensions(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{responses: []string{
		`{"company_size":40,"growth_rate":-5,"feature_parity":25,"market_presence":30,"threat_level":"CRITICAL"}`,
	}}
	scorer := NewScorer(reasoner, time.Second, nil)

	scored := scorer.Score(context.Background(), testContext(), validatedCompetitor())
	if scored.CompanySize != maxSubScore || scored.GrowthRate != 0 {
		t.Fatalf("dimensions not clamped: size=%d growth=%d", scored.CompanySize, scored.GrowthRate)
	}
	// 25 + 0 + 25 + 25.
	if scored.ThreatScore != 75 {
		t.Fatalf("expected composite 75, got %d", scored.ThreatScore)
	}
}

func TestScoreDerivesLevelWhenResponseLevelInvalid(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{responses: []string{
		`{"company_size":25,"growth_rate":25,"feature_parity":20,"market_presence":15,"threat_level":"severe"}`,
	}}
	scorer := NewScorer(reasoner, time.Second, nil)

	scored := scorer.Score(context.Background(), testContext(), validatedCompetitor())
	if scored.ThreatScore != 85 {
		t.Fatalf("expected composite 85, got %d", scored.ThreatScore)
	}
	if scored.ThreatLevel != domain.ThreatCritical {
		t.Fatalf("expected derived CRITICAL, got %s", scored.ThreatLevel)
	}
}

func TestScoreNormalizesResponseLevelCase(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{responses: []string{
		`{"company_size":5,"growth_rate":5,"feature_parity":5,"market_presence":5,"threat_level":" high "}`,
	}}
	scorer := NewScorer(reasoner, time.Second, nil)

	scored := scorer.Score(context.Background(), testContext(), validatedCompetitor())
	if scored.ThreatLevel != domain.ThreatHigh {
		t.Fatalf("expected HIGH from normalized response, got %s", scored.ThreatLevel)
	}
}

func TestScoreNeutralDefaultOnProviderError(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{err: errors.New("model unavailable")}
	scorer := NewScorer(reasoner, time.Second, nil)

	scored := scorer.Score(context.Background(), testContext(), validatedCompetitor())
	if scored.ThreatScore != neutralThreatScore {
		t.Fatalf("expected neutral score %d, got %d", neutralThreatScore, scored.ThreatScore)
	}
	if scored.ThreatLevel != domain.ThreatMedium {
		t.Fatalf("expected MEDIUM, got %s", scored.ThreatLevel)
	}
	if scored.URL != "https://petalpushers.example" {
		t.Fatalf("competitor identity lost on degrade: %+v", scored)
	}
}

func TestScoreNeutralDefaultOnUnparseableResponse(t *testing.T) {
	t.Parallel()

	reasoner := &fakeReasoner{responses: []string{"they seem quite dangerous"}}
	scorer := NewScorer(reasoner, time.Second, nil)

	scored := scorer.Score(context.Background(), testContext(), validatedCompetitor())
	if scored.ThreatScore != neutralThreatScore || scored.ThreatLevel != domain.ThreatMedium {
		t.Fatalf("expected neutral default, got %d/%s", scored.ThreatScore, scored.ThreatLevel)
	}
}

func TestLevelForScoreBrackets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		want  domain.ThreatLevel
	}{
		{100, domain.ThreatCritical},
		{80, domain.ThreatCritical},
		{79, domain.ThreatHigh},
		{60, domain.ThreatHigh},
		{59, domain.ThreatMedium},
		{40, domain.ThreatMedium},
		{39, domain.ThreatLow},
		{0, domain.ThreatLow},
	}
	for _, tc := range cases {
		if got := levelForScore(tc.score); got != tc.want {
			t.Fatalf("levelForScore(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
