package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"talenttrack/internal/application/gamification"
	"talenttrack/internal/domain/challenge"
	"talenttrack/internal/domain/profile"
)

// The distance challenge is logged directly instead of through a video upload.
const (
	DistanceChallengeID = "weekly-run"
	DistanceRewardXP    = 30
	DistanceRewardCoins = 25
)

var (
	ErrAthleteOnly        = errors.New("only a logged-in athlete can do this")
	ErrChallengeCompleted = gamification.ErrChallengeCompleted
)

// ChallengeStore defines the gamification interface used by challenge orchestrators.
type ChallengeStore interface {
	Challenge(id string) (challenge.Challenge, error)
	AdvanceProgress(id string, delta float64, completeWhenFull bool) (challenge.Challenge, bool, error)
}

// RewardSession defines the session interface used to pay rewards.
type RewardSession interface {
	Current() (profile.Profile, bool)
	GrantRewards(ctx context.Context, xp, coins int) (profile.Profile, error)
}

// UploadRoute tells the caller where to record a challenge that needs a video.
type UploadRoute struct {
	Activity  string `json:"activity"`
	Challenge string `json:"challenge"`
}

// LogChallengeActivityInput carries input for LogChallengeActivity.
type LogChallengeActivityInput struct {
	ChallengeID string
}

// LogChallengeActivityDeps holds dependencies for LogChallengeActivity.
type LogChallengeActivityDeps struct {
	Challenges ChallengeStore
	Session    RewardSession
}

// LogChallengeActivityResult is either a logged distance entry or an upload route.
type LogChallengeActivityResult struct {
	Challenge challenge.Challenge `json:"challenge"`
	Profile   *profile.Profile    `json:"profile,omitempty"`
	Upload    *UploadRoute        `json:"upload,omitempty"`
}

// ExecuteLogChallengeActivity handles the "start" action on a challenge card.
// PRE: Active athlete session; challenge exists and is not completed
// POST: Distance challenge: rewards granted and progress advanced by one
// POST: Any other challenge: returns the upload route, no state change
func ExecuteLogChallengeActivity(ctx context.Context, input LogChallengeActivityInput, deps LogChallengeActivityDeps) (LogChallengeActivityResult, error) {
	c, err := deps.Challenges.Challenge(input.ChallengeID)
	if err != nil {
		return LogChallengeActivityResult{}, err
	}
	if c.Completed {
		return LogChallengeActivityResult{}, ErrChallengeCompleted
	}

	if c.ID != DistanceChallengeID {
		return LogChallengeActivityResult{
			Challenge: c,
			Upload:    &UploadRoute{Activity: c.ActivityType, Challenge: c.ID},
		}, nil
	}

	if err := requireAthlete(deps.Session); err != nil {
		return LogChallengeActivityResult{}, err
	}
	p, err := deps.Session.GrantRewards(ctx, DistanceRewardXP, DistanceRewardCoins)
	if err != nil {
		return LogChallengeActivityResult{}, err
	}
	c, _, err = deps.Challenges.AdvanceProgress(c.ID, 1, false)
	if err != nil {
		return LogChallengeActivityResult{}, err
	}
	slog.Info("game_event", "event", "distance_logged", "user_id", p.ID, "challenge_id", c.ID, "progress", c.Progress)
	return LogChallengeActivityResult{Challenge: c, Profile: &p}, nil
}

func requireAthlete(s RewardSession) error {
	p, ok := s.Current()
	if !ok || !p.IsAthlete() {
		return ErrAthleteOnly
	}
	return nil
}
