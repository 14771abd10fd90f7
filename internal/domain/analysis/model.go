package analysis

import (
	"errors"

	"talenttrack/internal/domain/challenge"
)

// Rating constants
const (
	RatingExcellent        = "excellent"
	RatingGood             = "good"
	RatingAverage          = "average"
	RatingNeedsImprovement = "needs_improvement"
)

// Domain errors
var (
	ErrUnknownActivity = errors.New("no measurement profile for activity type")
)

// Profile describes how a simulated measurement is drawn and graded for one activity.
type Profile struct {
	Activity string
	Unit     string
	Min      float64
	Max      float64
	// LowerIsBetter is true for timed activities.
	LowerIsBetter bool
	// Thresholds for excellent, good and average, in that order.
	Thresholds [3]float64
}

// Reward is what a rating band pays out.
type Reward struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

// Result is the outcome of one simulated analysis.
type Result struct {
	Activity    string  `json:"activity"`
	Measurement float64 `json:"measurement"`
	Unit        string  `json:"unit"`
	Rating      string  `json:"rating"`
	Reward      Reward  `json:"reward"`
}

var profiles = map[string]Profile{
	challenge.ActivityJump:      {Activity: challenge.ActivityJump, Unit: "cm", Min: 20, Max: 70, Thresholds: [3]float64{55, 45, 35}},
	challenge.ActivityShuttle:   {Activity: challenge.ActivityShuttle, Unit: "s", Min: 10, Max: 16, LowerIsBetter: true, Thresholds: [3]float64{11.5, 12.5, 13.5}},
	challenge.ActivityPushup:    {Activity: challenge.ActivityPushup, Unit: "reps", Min: 10, Max: 60, Thresholds: [3]float64{45, 30, 20}},
	challenge.ActivitySitup:     {Activity: challenge.ActivitySitup, Unit: "reps", Min: 15, Max: 70, Thresholds: [3]float64{55, 40, 28}},
	challenge.ActivityEndurance: {Activity: challenge.ActivityEndurance, Unit: "min", Min: 6, Max: 14, LowerIsBetter: true, Thresholds: [3]float64{7.5, 9, 11}},
	challenge.ActivityGeneral:   {Activity: challenge.ActivityGeneral, Unit: "score", Min: 40, Max: 100, Thresholds: [3]float64{90, 75, 60}},
}

var rewards = map[string]Reward{
	RatingExcellent:        {XP: 150, Coins: 40},
	RatingGood:             {XP: 100, Coins: 25},
	RatingAverage:          {XP: 60, Coins: 15},
	RatingNeedsImprovement: {XP: 30, Coins: 5},
}

// ProfileFor returns the measurement profile for an activity type.
func ProfileFor(activity string) (Profile, error) {
	p, ok := profiles[activity]
	if !ok {
		return Profile{}, ErrUnknownActivity
	}
	return p, nil
}

// Measure maps a unit fraction in [0,1) onto the profile's range.
func (p Profile) Measure(fraction float64) float64 {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return p.Min + fraction*(p.Max-p.Min)
}

// Rate maps a measurement to its rating band.
// INVARIANT: Profile fields are not mutated
func (p Profile) Rate(measurement float64) string {
	bands := []string{RatingExcellent, RatingGood, RatingAverage}
	for i, threshold := range p.Thresholds {
		if p.LowerIsBetter && measurement <= threshold {
			return bands[i]
		}
		if !p.LowerIsBetter && measurement >= threshold {
			return bands[i]
		}
	}
	return RatingNeedsImprovement
}

// RewardFor returns the payout for a rating band.
func RewardFor(rating string) Reward {
	return rewards[rating]
}
