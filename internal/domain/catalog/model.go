package catalog

import (
	"errors"

	"talenttrack/internal/domain/badge"
	"talenttrack/internal/domain/challenge"
)

// Training video category constants
const (
	VideoStrength    = "strength"
	VideoEndurance   = "endurance"
	VideoFlexibility = "flexibility"
	VideoRecovery    = "recovery"
)

// ValidVideoCategories contains all valid training video categories.
var ValidVideoCategories = []string{VideoStrength, VideoEndurance, VideoFlexibility, VideoRecovery}

// Domain errors
var (
	ErrDuplicateBadge     = errors.New("duplicate badge ID in catalog")
	ErrDuplicateChallenge = errors.New("duplicate challenge ID in catalog")
	ErrInvalidVideo       = errors.New("category must be one of: strength, endurance, flexibility, recovery")
)

// LeaderboardEntry is a read-only ranking row.
type LeaderboardEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Score  int    `json:"score"`
	Rank   int    `json:"rank"`
	XP     int    `json:"xp"`
}

// TrainingVideo is a read-only library entry. Description is Markdown.
type TrainingVideo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Thumbnail   string `json:"thumbnail"`
	Duration    string `json:"duration"`
	Instructor  string `json:"instructor"`
}

// Catalog is the full set of seed values a gamification store starts from.
type Catalog struct {
	Badges         []badge.Badge
	Challenges     []challenge.Challenge
	Leaderboard    []LeaderboardEntry
	TrainingVideos []TrainingVideo
}

// Validate checks every entry and rejects duplicate IDs.
// PRE: Catalog is populated
// POST: Returns nil if valid, the first error otherwise
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Badges))
	for i := range c.Badges {
		if err := c.Badges[i].Validate(); err != nil {
			return err
		}
		if seen[c.Badges[i].ID] {
			return ErrDuplicateBadge
		}
		seen[c.Badges[i].ID] = true
	}
	seen = make(map[string]bool, len(c.Challenges))
	for i := range c.Challenges {
		if err := c.Challenges[i].Validate(); err != nil {
			return err
		}
		if seen[c.Challenges[i].ID] {
			return ErrDuplicateChallenge
		}
		seen[c.Challenges[i].ID] = true
	}
	for _, v := range c.TrainingVideos {
		if !IsValidVideoCategory(v.Category) {
			return ErrInvalidVideo
		}
	}
	return nil
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Badges:         append([]badge.Badge(nil), c.Badges...),
		Challenges:     append([]challenge.Challenge(nil), c.Challenges...),
		Leaderboard:    append([]LeaderboardEntry(nil), c.Leaderboard...),
		TrainingVideos: append([]TrainingVideo(nil), c.TrainingVideos...),
	}
}

// IsValidVideoCategory reports whether category is a known training video category.
func IsValidVideoCategory(category string) bool {
	for _, v := range ValidVideoCategories {
		if v == category {
			return true
		}
	}
	return false
}
