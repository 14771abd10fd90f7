package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talenttrack/internal/adapters/storage/account"
	"talenttrack/internal/application/analysis"
	"talenttrack/internal/application/gamification"
	"talenttrack/internal/application/session"
	"talenttrack/internal/domain/catalog"
)

// ErrEmptyClientID is returned when a client is requested without an id.
var ErrEmptyClientID = errors.New("client id cannot be empty")

// Client is the state owned by one browser or device: its session, its
// gamification progress and its analysis simulator.
type Client struct {
	ID       string
	Session  *session.Store
	Game     *gamification.Store
	Analyzer *analysis.Simulator
}

// Factory builds Clients that share the account registry.
type Factory struct {
	Accounts      account.Store
	Hasher        session.Hasher
	Catalog       catalog.Catalog
	UploadDelay   time.Duration
	AnalysisDelay time.Duration

	// Optional; zero values use the package defaults of session and analysis.
	GenerateID func() string
	Now        func() time.Time
	Rand       session.Rand
	Analysis   analysis.Rand
}

// New creates the Client for id and restores its persisted session.
// PRE: id is non-empty; f.Accounts is non-nil
// POST: Returns a Client whose gamification rewards flow into its own session
func (f Factory) New(ctx context.Context, id string) (*Client, error) {
	if id == "" {
		return nil, ErrEmptyClientID
	}

	sess := session.NewStore(id, session.Deps{
		Accounts:   f.Accounts,
		Hasher:     f.Hasher,
		GenerateID: f.GenerateID,
		Now:        f.Now,
		Rand:       f.Rand,
	})
	if _, err := sess.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore client %s: %w", id, err)
	}

	seed := f.Catalog
	if len(seed.Badges) == 0 && len(seed.Challenges) == 0 {
		seed = catalog.Default()
	}
	game, err := gamification.NewStore(seed, sess)
	if err != nil {
		return nil, err
	}

	return &Client{
		ID:       id,
		Session:  sess,
		Game:     game,
		Analyzer: analysis.NewSimulator(f.UploadDelay, f.AnalysisDelay, f.Analysis),
	}, nil
}
