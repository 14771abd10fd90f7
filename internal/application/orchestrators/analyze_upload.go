package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"talenttrack/internal/domain/analysis"
	"talenttrack/internal/domain/challenge"
	"talenttrack/internal/domain/profile"
)

// Analyzer produces a graded result for one uploaded activity.
type Analyzer interface {
	Run(ctx context.Context, activity string) (analysis.Result, error)
}

// AnalyzeUploadInput carries input for AnalyzeUpload. ChallengeID is optional;
// when set and Activity is empty, the challenge's activity type is used.
type AnalyzeUploadInput struct {
	Activity    string
	ChallengeID string
}

// AnalyzeUploadDeps holds dependencies for AnalyzeUpload.
type AnalyzeUploadDeps struct {
	Analyzer   Analyzer
	Session    RewardSession
	Challenges ChallengeStore
}

// AnalyzeUploadResult carries the analysis and the state it changed.
type AnalyzeUploadResult struct {
	Analysis  analysis.Result      `json:"analysis"`
	Profile   profile.Profile      `json:"profile"`
	Challenge *challenge.Challenge `json:"challenge,omitempty"`
}

// ExecuteAnalyzeUpload runs the simulated analysis and applies its rewards.
// PRE: Active athlete session; the challenge, if given, exists and is open
// POST: Band rewards granted; the challenge advanced by one, and completed with its own
// rewards paid once it reaches its target
func ExecuteAnalyzeUpload(ctx context.Context, input AnalyzeUploadInput, deps AnalyzeUploadDeps) (AnalyzeUploadResult, error) {
	if err := requireAthlete(deps.Session); err != nil {
		return AnalyzeUploadResult{}, err
	}

	activity := input.Activity
	if input.ChallengeID != "" {
		c, err := deps.Challenges.Challenge(input.ChallengeID)
		if err != nil {
			return AnalyzeUploadResult{}, err
		}
		if c.Completed {
			return AnalyzeUploadResult{}, ErrChallengeCompleted
		}
		if activity == "" {
			activity = c.ActivityType
		}
	}
	if activity == "" {
		activity = challenge.ActivityGeneral
	}

	res, err := deps.Analyzer.Run(ctx, activity)
	if err != nil {
		return AnalyzeUploadResult{}, err
	}

	p, err := deps.Session.GrantRewards(ctx, res.Reward.XP, res.Reward.Coins)
	if err != nil {
		return AnalyzeUploadResult{}, err
	}
	out := AnalyzeUploadResult{Analysis: res, Profile: p}

	if input.ChallengeID == "" {
		return out, nil
	}

	c, completed, err := deps.Challenges.AdvanceProgress(input.ChallengeID, 1, true)
	if errors.Is(err, ErrChallengeCompleted) {
		// Finished by a concurrent upload; the band reward stands.
		out.Challenge = &c
		return out, nil
	}
	if err != nil {
		return out, err
	}
	if completed {
		p, err = deps.Session.GrantRewards(ctx, c.XPReward, c.CoinReward)
		if err != nil {
			return out, err
		}
		out.Profile = p
		slog.Info("game_event", "event", "challenge_completed_by_upload", "user_id", p.ID, "challenge_id", c.ID)
	}
	out.Challenge = &c
	return out, nil
}
