package projections

import (
	"talenttrack/internal/domain/badge"
	"talenttrack/internal/domain/profile"
)

// ProfileDeps holds dependencies for the profile projection.
type ProfileDeps struct {
	Users  UserSource
	Badges BadgeSource
}

// ProfileView is the profile page: level band and badge shelves.
type ProfileView struct {
	User             profile.Profile `json:"user"`
	Level            int             `json:"level"`
	XPIntoLevel      int             `json:"xpIntoLevel"`
	XPForNextLevel   int             `json:"xpForNextLevel"`
	UnlockedBadges   []badge.Badge   `json:"unlockedBadges"`
	InProgressBadges []badge.Badge   `json:"inProgressBadges"`
}

// QueryProfile builds the profile view for the active user.
// PRE: An active session exists
// POST: In-progress badges are locked with progress above zero
func QueryProfile(deps ProfileDeps) (ProfileView, error) {
	user, ok := deps.Users.Current()
	if !ok {
		return ProfileView{}, ErrNoUser
	}

	view := ProfileView{
		User:             user,
		Level:            profile.StartingLevel,
		XPIntoLevel:      user.XPIntoLevel(),
		XPForNextLevel:   user.XPForNextLevel(),
		UnlockedBadges:   []badge.Badge{},
		InProgressBadges: []badge.Badge{},
	}
	if user.Stats != nil {
		view.Level = user.Level
	}

	for _, b := range deps.Badges.Badges() {
		switch {
		case b.Unlocked:
			view.UnlockedBadges = append(view.UnlockedBadges, b)
		case b.IsInProgress():
			view.InProgressBadges = append(view.InProgressBadges, b)
		}
	}
	return view, nil
}
