package report

import "testing"

func TestRating(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, RatingExcellent},
		{90, RatingExcellent},
		{89, RatingVeryGood},
		{80, RatingVeryGood},
		{79, RatingGood},
		{70, RatingGood},
		{69, RatingAverage},
		{60, RatingAverage},
		{59, RatingNeedsImprovement},
		{0, RatingNeedsImprovement},
	}
	for _, tt := range tests {
		if got := Rating(tt.pct); got != tt.want {
			t.Errorf("Rating(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		score, max, want int
	}{
		{28, 40, 70},
		{0, 0, 0},
		{5, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds up
		{40, 40, 100},
		{50, 40, 100},
		{-3, 40, 0},
	}
	for _, tt := range tests {
		if got := Percent(tt.score, tt.max); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.score, tt.max, got, tt.want)
		}
	}
}
