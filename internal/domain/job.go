package domain

import "time"

// JobStatus enumerates the discovery-job lifecycle. Terminal states are
// final; a fresh run always creates a new job row.
type JobStatus string

const (
	JobPending    JobStatus = "PENDING"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobCompleted  JobStatus = "COMPLETED"
	JobFailed     JobStatus = "FAILED"
)

// DiscoveryJob tracks one execution of the discovery pipeline for one
// website. History is append-only.
type DiscoveryJob struct {
	ID               string
	WebsiteID        string
	Status           JobStatus
	Method           string
	CompetitorsFound int
	ErrorMessage     string
	StartedAt        *time.Time
	FinishedAt       *time.Time
	CreatedAt        time.Time
}

// SaturationBucket describes how crowded a business's market looks based on
// discovered competitor count.
type SaturationBucket string

// VisibilityBucket describes keyword coverage for AI-driven search
// discoverability. Shares the value set with SaturationBucket but is an
// independent classification.
type VisibilityBucket string

const (
	BucketVeryLow  = "very_low"
	BucketLow      = "low"
	BucketMedium   = "medium"
	BucketHigh     = "high"
	BucketVeryHigh = "very_high"
)

// ThreatAssessment is an immutable point-in-time aggregate snapshot for a
// website. The latest row by CreatedAt is the website's current threat view.
type ThreatAssessment struct {
	ID                 string
	WebsiteID          string
	ThreatLevel        ThreatLevel
	ThreatScore        int
	CompetitorCount    int
	AverageScore       float64
	MarketSaturation   SaturationBucket
	AISearchVisibility VisibilityBucket
	CreatedAt          time.Time
}
