package badge

import (
	"errors"
)

// Domain errors
var (
	ErrEmptyID          = errors.New("badge ID cannot be empty")
	ErrEmptyName        = errors.New("badge name cannot be empty")
	ErrInvalidCategory  = errors.New("category must be one of: consistency, strength, endurance, speed, special")
	ErrZeroMaxProgress  = errors.New("max progress must be greater than zero")
	ErrProgressOverflow = errors.New("progress cannot exceed max progress")
	ErrNegativeReward   = errors.New("rewards cannot be negative")
)

// Category constants
const (
	CategoryConsistency = "consistency"
	CategoryStrength    = "strength"
	CategoryEndurance   = "endurance"
	CategorySpeed       = "speed"
	CategorySpecial     = "special"
)

// ValidCategories contains all valid badge categories.
var ValidCategories = []string{CategoryConsistency, CategoryStrength, CategoryEndurance, CategorySpeed, CategorySpecial}

// Badge is an achievement with unlock progress tracked against a target.
type Badge struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Icon            string  `json:"icon"`
	Unlocked        bool    `json:"unlocked"`
	Progress        float64 `json:"progress"`
	MaxProgress     float64 `json:"maxProgress"`
	XPReward        int     `json:"xpReward"`
	CoinReward      int     `json:"coinReward"`
	Requirements    string  `json:"requirements"`
	LinkedChallenge string  `json:"linkedChallenge,omitempty"`
}

// Validate checks if the Badge has valid data.
// PRE: Badge struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Badge) Validate() error {
	if b.ID == "" {
		return ErrEmptyID
	}
	if b.Name == "" {
		return ErrEmptyName
	}
	if !isValidCategory(b.Category) {
		return ErrInvalidCategory
	}
	if b.MaxProgress <= 0 {
		return ErrZeroMaxProgress
	}
	if b.Progress > b.MaxProgress {
		return ErrProgressOverflow
	}
	if b.XPReward < 0 || b.CoinReward < 0 {
		return ErrNegativeReward
	}
	return nil
}

// Unlock marks the badge earned.
// POST: Unlocked is true, Progress == MaxProgress
func (b *Badge) Unlock() {
	b.Unlocked = true
	b.Progress = b.MaxProgress
}

// SetProgress records progress towards the badge, clamped to [0, MaxProgress].
// The badge unlocks exactly when progress reaches MaxProgress.
// POST: 0 <= Progress <= MaxProgress
func (b *Badge) SetProgress(v float64) {
	if v < 0 {
		v = 0
	}
	if v >= b.MaxProgress {
		b.Unlock()
		return
	}
	b.Progress = v
}

// IsInProgress returns true if the badge has been started but not unlocked.
// INVARIANT: Badge fields are not mutated
func (b *Badge) IsInProgress() bool {
	return !b.Unlocked && b.Progress > 0
}

func isValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
