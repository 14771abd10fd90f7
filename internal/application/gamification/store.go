package gamification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"talenttrack/internal/domain/badge"
	"talenttrack/internal/domain/catalog"
	"talenttrack/internal/domain/challenge"
	"talenttrack/internal/domain/profile"
)

// Domain errors
var (
	ErrBadgeNotFound      = errors.New("badge not found")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrChallengeCompleted = errors.New("challenge is already completed")
)

// RewardGranter applies XP and coin rewards to the owning user.
type RewardGranter interface {
	GrantRewards(ctx context.Context, xp, coins int) (profile.Profile, error)
}

// Store holds one client's badges, challenges, leaderboard and training library.
// It is safe for concurrent use. Accessors return copies.
type Store struct {
	mu          sync.RWMutex
	badges      []badge.Badge
	challenges  []challenge.Challenge
	leaderboard []catalog.LeaderboardEntry
	videos      []catalog.TrainingVideo
	rewards     RewardGranter
}

// NewStore seeds a Store from seed. rewards may be nil, in which case EarnXP and
// EarnCoins only log.
// PRE: seed passes Validate
// POST: Store owns a private copy of seed
func NewStore(seed catalog.Catalog, rewards RewardGranter) (*Store, error) {
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	c := seed.Clone()
	return &Store{
		badges:      c.Badges,
		challenges:  c.Challenges,
		leaderboard: c.Leaderboard,
		videos:      c.TrainingVideos,
		rewards:     rewards,
	}, nil
}

// UnlockBadge marks a badge earned.
// POST: Badge is unlocked with full progress, or ErrBadgeNotFound with no change
func (s *Store) UnlockBadge(id string) (badge.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBadge(id)
	if b == nil {
		slog.Warn("game_event", "event", "unlock_badge_unknown", "badge_id", id)
		return badge.Badge{}, ErrBadgeNotFound
	}
	b.Unlock()
	slog.Info("game_event", "event", "badge_unlocked", "badge_id", id)
	return *b, nil
}

// UpdateProgress sets a challenge's progress to min(v, maxProgress).
// Badges linked to the challenge are raised to the same completion ratio.
// A completed challenge is returned unchanged.
// POST: 0 <= progress <= maxProgress, or ErrChallengeNotFound with no change
func (s *Store) UpdateProgress(challengeID string, v float64) (challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findChallenge(challengeID)
	if c == nil {
		slog.Warn("game_event", "event", "update_progress_unknown", "challenge_id", challengeID)
		return challenge.Challenge{}, ErrChallengeNotFound
	}
	c.SetProgress(v)
	s.mirrorLinkedBadges(c)
	slog.Debug("game_event", "event", "progress_updated", "challenge_id", challengeID, "progress", c.Progress, "max_progress", c.MaxProgress)
	return *c, nil
}

// AdvanceProgress adds delta to a challenge's progress. With completeWhenFull set, a
// challenge that reaches its target is completed in the same step and completed
// reports true exactly once.
// POST: Progress advanced and clamped, or ErrChallengeNotFound / ErrChallengeCompleted with no change
func (s *Store) AdvanceProgress(challengeID string, delta float64, completeWhenFull bool) (c challenge.Challenge, completed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := s.findChallenge(challengeID)
	if ch == nil {
		slog.Warn("game_event", "event", "advance_progress_unknown", "challenge_id", challengeID)
		return challenge.Challenge{}, false, ErrChallengeNotFound
	}
	if ch.Completed {
		return *ch, false, ErrChallengeCompleted
	}
	ch.SetProgress(ch.Progress + delta)
	if completeWhenFull && ch.IsFull() {
		ch.Complete()
		completed = true
		slog.Info("game_event", "event", "challenge_completed", "challenge_id", challengeID)
	}
	s.mirrorLinkedBadges(ch)
	slog.Debug("game_event", "event", "progress_advanced", "challenge_id", challengeID, "progress", ch.Progress, "max_progress", ch.MaxProgress)
	return *ch, completed, nil
}

// CompleteChallenge marks a challenge done. Repeated calls have no further effect.
// POST: completed is true and progress == maxProgress, or ErrChallengeNotFound with no change
func (s *Store) CompleteChallenge(id string) (challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findChallenge(id)
	if c == nil {
		slog.Warn("game_event", "event", "complete_challenge_unknown", "challenge_id", id)
		return challenge.Challenge{}, ErrChallengeNotFound
	}
	if !c.Completed {
		slog.Info("game_event", "event", "challenge_completed", "challenge_id", id)
	}
	c.Complete()
	s.mirrorLinkedBadges(c)
	return *c, nil
}

// EarnXP records an XP award and forwards it to the reward granter.
func (s *Store) EarnXP(ctx context.Context, amount int) error {
	slog.Info("game_event", "event", "xp_earned", "amount", amount)
	if s.rewards == nil {
		return nil
	}
	_, err := s.rewards.GrantRewards(ctx, amount, 0)
	return err
}

// EarnCoins records a coin award and forwards it to the reward granter.
func (s *Store) EarnCoins(ctx context.Context, amount int) error {
	slog.Info("game_event", "event", "coins_earned", "amount", amount)
	if s.rewards == nil {
		return nil
	}
	_, err := s.rewards.GrantRewards(ctx, 0, amount)
	return err
}

// Badges returns all badges in catalog order.
func (s *Store) Badges() []badge.Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]badge.Badge(nil), s.badges...)
}

// Badge returns one badge by id.
func (s *Store) Badge(id string) (badge.Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.badges {
		if b.ID == id {
			return b, nil
		}
	}
	return badge.Badge{}, ErrBadgeNotFound
}

// Challenges returns all challenges in catalog order.
func (s *Store) Challenges() []challenge.Challenge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]challenge.Challenge(nil), s.challenges...)
}

// Challenge returns one challenge by id.
func (s *Store) Challenge(id string) (challenge.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.challenges {
		if c.ID == id {
			return c, nil
		}
	}
	return challenge.Challenge{}, ErrChallengeNotFound
}

// Leaderboard returns the leaderboard rows.
func (s *Store) Leaderboard() []catalog.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.LeaderboardEntry(nil), s.leaderboard...)
}

// TrainingVideos returns the training library.
func (s *Store) TrainingVideos() []catalog.TrainingVideo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.TrainingVideo(nil), s.videos...)
}

func (s *Store) findBadge(id string) *badge.Badge {
	for i := range s.badges {
		if s.badges[i].ID == id {
			return &s.badges[i]
		}
	}
	return nil
}

func (s *Store) findChallenge(id string) *challenge.Challenge {
	for i := range s.challenges {
		if s.challenges[i].ID == id {
			return &s.challenges[i]
		}
	}
	return nil
}

// mirrorLinkedBadges must be called with mu held. Badge progress only rises.
func (s *Store) mirrorLinkedBadges(c *challenge.Challenge) {
	ratio := c.Progress / c.MaxProgress
	for i := range s.badges {
		b := &s.badges[i]
		if b.LinkedChallenge != c.ID || b.Unlocked {
			continue
		}
		target := ratio * b.MaxProgress
		if target <= b.Progress {
			continue
		}
		b.SetProgress(target)
		if b.Unlocked {
			slog.Info("game_event", "event", "badge_unlocked", "badge_id", b.ID, "via_challenge", c.ID)
		}
	}
}
