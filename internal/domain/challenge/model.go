package challenge

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyID             = errors.New("challenge ID cannot be empty")
	ErrEmptyTitle          = errors.New("challenge title cannot be empty")
	ErrInvalidType         = errors.New("type must be one of: daily, weekly, team, seasonal")
	ErrInvalidActivityType = errors.New("activity type must be one of: jump, shuttle, pushup, situp, endurance, general")
	ErrZeroMaxProgress     = errors.New("max progress must be greater than zero")
	ErrProgressOverflow    = errors.New("progress cannot exceed max progress")
	ErrCompletedNotFull    = errors.New("a completed challenge must have progress equal to max progress")
	ErrNegativeReward      = errors.New("rewards cannot be negative")
)

// Type constants
const (
	TypeDaily    = "daily"
	TypeWeekly   = "weekly"
	TypeTeam     = "team"
	TypeSeasonal = "seasonal"
)

// ValidTypes contains all valid challenge types.
var ValidTypes = []string{TypeDaily, TypeWeekly, TypeTeam, TypeSeasonal}

// Activity type constants
const (
	ActivityJump      = "jump"
	ActivityShuttle   = "shuttle"
	ActivityPushup    = "pushup"
	ActivitySitup     = "situp"
	ActivityEndurance = "endurance"
	ActivityGeneral   = "general"
)

// ValidActivityTypes contains all valid activity types.
var ValidActivityTypes = []string{ActivityJump, ActivityShuttle, ActivityPushup, ActivitySitup, ActivityEndurance, ActivityGeneral}

// Challenge is a time-boxed task with a progress target, reward, and deadline.
type Challenge struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Type         string    `json:"type"`
	ActivityType string    `json:"activityType"`
	Progress     float64   `json:"progress"`
	MaxProgress  float64   `json:"maxProgress"`
	XPReward     int       `json:"xpReward"`
	CoinReward   int       `json:"coinReward"`
	Deadline     time.Time `json:"deadline"`
	Completed    bool      `json:"completed"`
	Difficulty   string    `json:"difficulty,omitempty"`
	Category     string    `json:"category,omitempty"`
}

// Validate checks if the Challenge has valid data.
// PRE: Challenge struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Challenge) Validate() error {
	if c.ID == "" {
		return ErrEmptyID
	}
	if c.Title == "" {
		return ErrEmptyTitle
	}
	if !IsValidType(c.Type) {
		return ErrInvalidType
	}
	if !IsValidActivityType(c.ActivityType) {
		return ErrInvalidActivityType
	}
	if c.MaxProgress <= 0 {
		return ErrZeroMaxProgress
	}
	if c.Progress > c.MaxProgress {
		return ErrProgressOverflow
	}
	if c.Completed && c.Progress != c.MaxProgress {
		return ErrCompletedNotFull
	}
	if c.XPReward < 0 || c.CoinReward < 0 {
		return ErrNegativeReward
	}
	return nil
}

// SetProgress sets progress to min(v, MaxProgress). Negative values clamp to zero.
// A completed challenge keeps full progress. Monotonicity is the caller's concern.
// POST: 0 <= Progress <= MaxProgress
// INVARIANT: Completed implies Progress == MaxProgress
func (c *Challenge) SetProgress(v float64) {
	if c.Completed {
		return
	}
	if v < 0 {
		v = 0
	}
	if v > c.MaxProgress {
		v = c.MaxProgress
	}
	c.Progress = v
}

// Complete marks the challenge done. Calling it again has no further effect.
// POST: Completed is true, Progress == MaxProgress
func (c *Challenge) Complete() {
	c.Completed = true
	c.Progress = c.MaxProgress
}

// IsFull returns true once progress has reached the target.
// INVARIANT: Challenge fields are not mutated
func (c *Challenge) IsFull() bool {
	return c.Progress >= c.MaxProgress
}

// IsExpired returns true if the deadline has passed.
// INVARIANT: Challenge fields are not mutated
func (c *Challenge) IsExpired(now time.Time) bool {
	return !c.Deadline.IsZero() && now.After(c.Deadline)
}

// IsValidType reports whether t is a known challenge type.
func IsValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsValidActivityType reports whether a is a known activity type.
func IsValidActivityType(a string) bool {
	for _, v := range ValidActivityTypes {
		if v == a {
			return true
		}
	}
	return false
}
