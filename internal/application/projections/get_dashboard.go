package projections

import (
	"errors"

	"talenttrack/internal/domain/badge"
	"talenttrack/internal/domain/challenge"
	"talenttrack/internal/domain/profile"
)

// DashboardBadgePreview is how many unlocked badges the dashboard shows.
const DashboardBadgePreview = 3

// ErrNoUser is returned by projections that need an active user.
var ErrNoUser = errors.New("no active user")

// DashboardDeps holds dependencies for the dashboard projection.
type DashboardDeps struct {
	Users      UserSource
	Badges     BadgeSource
	Challenges ChallengeSource
}

// DashboardView is the athlete home screen.
type DashboardView struct {
	User                profile.Profile       `json:"user"`
	ActiveChallenges    []challenge.Challenge `json:"activeChallenges"`
	RecentBadges        []badge.Badge         `json:"recentBadges"`
	UnlockedBadges      int                   `json:"unlockedBadges"`
	TotalBadges         int                   `json:"totalBadges"`
	CompletedChallenges int                   `json:"completedChallenges"`
	Streak              int                   `json:"streak"`
}

// QueryDashboard builds the dashboard for the active user.
// PRE: An active session exists
// POST: Active challenges are those not completed; at most three unlocked badges are previewed
func QueryDashboard(deps DashboardDeps) (DashboardView, error) {
	user, ok := deps.Users.Current()
	if !ok {
		return DashboardView{}, ErrNoUser
	}

	view := DashboardView{
		User:             user,
		ActiveChallenges: []challenge.Challenge{},
		RecentBadges:     []badge.Badge{},
	}
	if user.Stats != nil {
		view.Streak = user.Streak
	}

	for _, c := range deps.Challenges.Challenges() {
		if c.Completed {
			view.CompletedChallenges++
			continue
		}
		view.ActiveChallenges = append(view.ActiveChallenges, c)
	}

	badges := deps.Badges.Badges()
	view.TotalBadges = len(badges)
	for _, b := range badges {
		if !b.Unlocked {
			continue
		}
		view.UnlockedBadges++
		if len(view.RecentBadges) < DashboardBadgePreview {
			view.RecentBadges = append(view.RecentBadges, b)
		}
	}
	return view, nil
}
