package report

// Rating labels, from best to worst.
const (
	RatingExcellent        = "Excellent"
	RatingVeryGood         = "Very Good"
	RatingGood             = "Good"
	RatingAverage          = "Average"
	RatingNeedsImprovement = "Needs Improvement"
)

// Threshold percentages used to classify skills.
const (
	StrengthThreshold       = 80
	WeaknessThreshold       = 70
	RecommendationThreshold = 80
)

// Rating maps a percentage to its label. The same thresholds apply to skill
// and overall percentages.
func Rating(pct int) string {
	switch {
	case pct >= 90:
		return RatingExcellent
	case pct >= 80:
		return RatingVeryGood
	case pct >= 70:
		return RatingGood
	case pct >= 60:
		return RatingAverage
	default:
		return RatingNeedsImprovement
	}
}

// Percent returns round(100 * score / max) using integer arithmetic, with
// halves rounded up. A non-positive max yields 0.
func Percent(score, max int) int {
	if max <= 0 {
		return 0
	}
	if score < 0 {
		score = 0
	}
	if score > max {
		score = max
	}
	return (200*score + max) / (2 * max)
}
