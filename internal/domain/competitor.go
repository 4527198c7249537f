package domain

import "time"

// ThreatLevel is the discrete competitive-danger classification shared by
// per-competitor scoring and site-level assessments.
type ThreatLevel string

const (
	ThreatCritical ThreatLevel = "CRITICAL"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatMedium   ThreatLevel = "MEDIUM"
	ThreatLow      ThreatLevel = "LOW"
)

// ValidThreatLevel reports whether the value is one of the known levels.
func ValidThreatLevel(v ThreatLevel) bool {
	switch v {
	case ThreatCritical, ThreatHigh, ThreatMedium, ThreatLow:
		return true
	}
	return false
}

// Candidate is an unvalidated search hit that might be a real competitor.
// The URL is the identity key; name text is not trusted for deduplication.
type Candidate struct {
	Name        string
	URL         string
	Description string
	AgentID     string
}

// ValidatedCompetitor is a candidate the reasoning service confirmed, with
// relevance sub-scores and a confidence, all on a 0-100 scale.
type ValidatedCompetitor struct {
	Candidate
	IsCompetitor        bool
	BusinessModelMatch  int
	GeographicRelevance int
	MarketRelevance     int
	Confidence          int
}

// ScoredCompetitor carries the weighted threat breakdown for one validated
// competitor. Sub-scores are bounded to [0,25] each; ThreatScore is their
// sum clamped to 100.
type ScoredCompetitor struct {
	ValidatedCompetitor
	CompanySize    int
	GrowthRate     int
	FeatureParity  int
	MarketPresence int
	ThreatScore    int
	ThreatLevel    ThreatLevel
}

// Competitor is the persisted row produced from a ScoredCompetitor, owned by
// a website and upserted on (website_id, url). ThreatScore is nullable to
// tolerate rows written before scoring existed.
type Competitor struct {
	ID          string
	WebsiteID   string
	Name        string
	URL         string
	Description string
	ThreatScore *int
	ThreatLevel ThreatLevel
	Confidence  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
