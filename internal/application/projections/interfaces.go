package projections

import (
	"talenttrack/internal/domain/badge"
	"talenttrack/internal/domain/catalog"
	"talenttrack/internal/domain/challenge"
	"talenttrack/internal/domain/profile"
)

// UserSource provides the active user.
type UserSource interface {
	Current() (profile.Profile, bool)
}

// BadgeSource provides the badge catalog.
type BadgeSource interface {
	Badges() []badge.Badge
}

// ChallengeSource provides the challenge board.
type ChallengeSource interface {
	Challenges() []challenge.Challenge
}

// VideoSource provides the training library.
type VideoSource interface {
	TrainingVideos() []catalog.TrainingVideo
}

// FilterAll selects every entry in type and category filters.
const FilterAll = "all"
