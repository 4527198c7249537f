package usecase

import "CompetitorScout/internal/domain"

// CalculateThreat derives a website-level assessment from its persisted
// competitor rows and keyword count. Pure and deterministic: identical
// inputs always produce identical numeric output. Rows with no recorded
// score count as 50.
//
// Saturation buckets and threat-level brackets intentionally use different
// count thresholds; the two mappings are independent classifications and
// must not be unified.
func CalculateThreat(competitors []domain.Competitor, keywordCount int) domain.ThreatAssessment {
	count := len(competitors)

	assessment := domain.ThreatAssessment{
		CompetitorCount:    count,
		MarketSaturation:   saturationBucket(count),
		AISearchVisibility: visibilityBucket(keywordCount),
	}

	if count == 0 {
		assessment.ThreatLevel = domain.ThreatLow
		assessment.ThreatScore = 20
		return assessment
	}

	var sum float64
	maxScore := 0
	for _, c := range competitors {
		score := 50
		if c.ThreatScore != nil {
			score = *c.ThreatScore
		}
		sum += float64(score)
		if score > maxScore {
			maxScore = score
		}
	}
	assessment.AverageScore = sum / float64(count)

	var (
		level domain.ThreatLevel
		score int
	)
	switch {
	case count >= 10:
		level, score = domain.ThreatCritical, 80+2*(count-10)
		if score > 100 {
			score = 100
		}
	case count >= 7:
		level, score = domain.ThreatHigh, 65+3*(count-7)
	case count >= 5:
		level, score = domain.ThreatMedium, 50+3*(count-5)
	case count >= 3:
		level, score = domain.ThreatMedium, 40+2*count
	default:
		level, score = domain.ThreatLow, 20+5*count
	}

	// A single dominant competitor escalates the site-level view even when
	// the count bracket alone would not.
	switch {
	case maxScore >= 90:
		level = domain.ThreatCritical
		if score < 85 {
			score = 85
		}
	case maxScore >= 75:
		level = escalateOneStep(level)
		if score < 70 {
			score = 70
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	assessment.ThreatLevel = level
	assessment.ThreatScore = score
	return assessment
}

func escalateOneStep(level domain.ThreatLevel) domain.ThreatLevel {
	switch level {
	case domain.ThreatLow:
		return domain.ThreatMedium
	case domain.ThreatMedium:
		return domain.ThreatHigh
	}
	return level
}

func saturationBucket(count int) domain.SaturationBucket {
	switch {
	case count >= 10:
		return domain.BucketVeryHigh
	case count >= 7:
		return domain.BucketHigh
	case count >= 3:
		return domain.BucketMedium
	default:
		return domain.BucketVeryLow
	}
}

func visibilityBucket(keywords int) domain.VisibilityBucket {
	switch {
	case keywords >= 20:
		return domain.BucketVeryHigh
	case keywords >= 15:
		return domain.BucketHigh
	case keywords >= 10:
		return domain.BucketMedium
	case keywords >= 5:
		return domain.BucketLow
	default:
		return domain.BucketVeryLow
	}
}
