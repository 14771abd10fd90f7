package analysis_test

import (
	"testing"

	"talenttrack/internal/domain/analysis"
	"talenttrack/internal/domain/challenge"
)

// TestProfile_Rate tests band boundaries for higher- and lower-is-better activities.
func TestProfile_Rate(t *testing.T) {
	jump, _ := analysis.ProfileFor(challenge.ActivityJump)
	shuttle, _ := analysis.ProfileFor(challenge.ActivityShuttle)

	tests := []struct {
		name string
		p    analysis.Profile
		m    float64
		want string
	}{
		{"jump excellent", jump, 55, analysis.RatingExcellent},
		{"jump good", jump, 45, analysis.RatingGood},
		{"jump average", jump, 35, analysis.RatingAverage},
		{"jump low", jump, 34.9, analysis.RatingNeedsImprovement},
		{"shuttle excellent", shuttle, 11.5, analysis.RatingExcellent},
		{"shuttle good", shuttle, 12, analysis.RatingGood},
		{"shuttle slow", shuttle, 14, analysis.RatingNeedsImprovement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Rate(tt.m); got != tt.want {
				t.Errorf("Rate(%v) = %q, want %q", tt.m, got, tt.want)
			}
		})
	}
}

// TestProfile_Measure tests the fraction is mapped and clamped onto the range.
func TestProfile_Measure(t *testing.T) {
	p, _ := analysis.ProfileFor(challenge.ActivityPushup)
	if got := p.Measure(0); got != p.Min {
		t.Errorf("Measure(0) = %v, want %v", got, p.Min)
	}
	if got := p.Measure(2); got != p.Max {
		t.Errorf("Measure(2) = %v, want %v", got, p.Max)
	}
}

// TestProfileFor_Unknown tests unknown activities are rejected.
func TestProfileFor_Unknown(t *testing.T) {
	if _, err := analysis.ProfileFor("swim"); err != analysis.ErrUnknownActivity {
		t.Errorf("got %v, want ErrUnknownActivity", err)
	}
}

// TestRewardFor tests better bands pay more.
func TestRewardFor(t *testing.T) {
	order := []string{analysis.RatingNeedsImprovement, analysis.RatingAverage, analysis.RatingGood, analysis.RatingExcellent}
	for i := 1; i < len(order); i++ {
		lo, hi := analysis.RewardFor(order[i-1]), analysis.RewardFor(order[i])
		if hi.XP <= lo.XP || hi.Coins <= lo.Coins {
			t.Errorf("%s does not pay more than %s", order[i], order[i-1])
		}
	}
}
