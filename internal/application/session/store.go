package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"talenttrack/internal/adapters/storage/account"
	"talenttrack/internal/domain/profile"
)

// AvatarPool holds the placeholder avatars assigned at signup.
var AvatarPool = []string{
	"https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150",
	"https://images.pexels.com/photos/614810/pexels-photo-614810.jpeg?auto=compress&cs=tinysrgb&w=150",
}

// maxIDAttempts bounds regeneration when the id generator collides.
const maxIDAttempts = 5

var (
	errEmailTaken = errors.New("email already registered")
	errNoFreeID   = errors.New("id generator returned no unused id")
)

type invalidProfileError struct{ err error }

func (e *invalidProfileError) Error() string { return e.err.Error() }

// Rand is the random source used for avatar selection.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Deps holds dependencies for a Store.
type Deps struct {
	Accounts   account.Store
	Hasher     Hasher
	GenerateID func() string
	Now        func() time.Time
	Rand       Rand
	Validate   *validator.Validate
}

// Flags are transient UI hints owned by the session.
type Flags struct {
	ShowTutorial   bool `json:"showTutorial"`
	ShowOnboarding bool `json:"showOnboarding"`
}

// SignupInput carries input for Signup.
type SignupInput struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required"`
	Name     string `validate:"required,max=120"`
	Role     string `validate:"required,oneof=athlete coach"`
}

// LoginInput carries input for Login.
type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Role     string `validate:"required,oneof=athlete coach"`
}

// Store manages the single active session of one client and the durable account registry.
// It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	namespace string
	deps      Deps

	user    *profile.Profile
	lastErr *AuthError
	flags   Flags
}

// NewStore creates a Store for the given client namespace.
// Missing dependencies fall back to uuid ids, wall-clock time, bcrypt and the global random source.
// PRE: deps.Accounts is non-nil
// POST: Returns a logged-out Store
func NewStore(namespace string, deps Deps) *Store {
	if deps.Hasher == nil {
		deps.Hasher = BcryptHasher{}
	}
	if deps.GenerateID == nil {
		deps.GenerateID = uuid.NewString
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Rand == nil {
		deps.Rand = globalRand{}
	}
	if deps.Validate == nil {
		deps.Validate = validator.New()
	}
	return &Store{namespace: namespace, deps: deps}
}

// Namespace returns the client namespace this store persists under.
func (s *Store) Namespace() string {
	return s.namespace
}

// Login authenticates against the registry and makes the account the active session.
// PRE: email, password and role are provided
// POST: On success the account is the active and persisted current user and the last error is cleared
// POST: On failure the last error is recorded and the active session is unchanged
func (s *Store) Login(ctx context.Context, email, password, role string) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in := LoginInput{Email: profile.NormalizeEmail(email), Password: password, Role: role}
	if err := s.deps.Validate.Struct(in); err != nil {
		return profile.Profile{}, s.fail(KindGeneral, "email, password and a valid role are required")
	}

	users, err := s.deps.Accounts.ListUsers(ctx)
	if err != nil {
		slog.Error("auth_event", "event", "login_failed", "reason", "storage", "error", err)
		return profile.Profile{}, s.fail(KindGeneral, ErrGeneral.Message)
	}

	found, ok := findByEmail(users, in.Email)
	if !ok {
		slog.Info("auth_event", "event", "login_failed", "email", in.Email, "reason", "not_found")
		return profile.Profile{}, s.fail(KindAccountNotFound, ErrAccountNotFound.Message)
	}

	credential, err := s.deps.Accounts.GetCredential(ctx, found.ID)
	if err != nil && !errors.Is(err, account.ErrNotFound) {
		slog.Error("auth_event", "event", "login_failed", "reason", "storage", "error", err)
		return profile.Profile{}, s.fail(KindGeneral, ErrGeneral.Message)
	}
	if err != nil || s.deps.Hasher.Compare(credential, password) != nil {
		slog.Info("auth_event", "event", "login_failed", "email", in.Email, "reason", "wrong_password")
		return profile.Profile{}, s.fail(KindIncorrectPassword, ErrIncorrectPassword.Message)
	}

	if found.Role != in.Role {
		slog.Info("auth_event", "event", "login_failed", "email", in.Email, "reason", "role_mismatch", "stored_role", found.Role)
		return profile.Profile{}, s.fail(KindRoleMismatch, fmt.Sprintf("this account is registered as %s", found.Role))
	}

	if err := s.deps.Accounts.SetCurrent(ctx, s.namespace, found); err != nil {
		slog.Error("auth_event", "event", "login_failed", "reason", "storage", "error", err)
		return profile.Profile{}, s.fail(KindGeneral, ErrGeneral.Message)
	}

	s.user = &found
	s.lastErr = nil
	s.flags = Flags{ShowOnboarding: !found.OnboardingComplete}
	slog.Info("auth_event", "event", "login_success", "user_id", found.ID, "role", found.Role)
	return found.Clone(), nil
}

// Signup registers a new account and makes it the active session.
// PRE: in carries a valid email, non-empty password and name, and a known role
// POST: Registry grows by exactly one, the credential is stored and the account is the current user
// INVARIANT: Emails stay unique (case-insensitive)
func (s *Store) Signup(ctx context.Context, in SignupInput) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.Email = profile.NormalizeEmail(in.Email)
	if err := s.deps.Validate.Struct(in); err != nil {
		return profile.Profile{}, s.fail(KindGeneral, "a valid email, password, name and role are required")
	}

	users, err := s.deps.Accounts.ListUsers(ctx)
	if err != nil {
		slog.Error("auth_event", "event", "signup_failed", "reason", "storage", "error", err)
		return profile.Profile{}, s.fail(KindGeneral, ErrGeneral.Message)
	}
	if _, exists := findByEmail(users, in.Email); exists {
		slog.Info("auth_event", "event", "signup_failed", "email", in.Email, "reason", "exists")
		return profile.Profile{}, s.fail(KindAccountAlreadyExists, ErrAccountAlreadyExists.Message)
	}

	credential, err := s.deps.Hasher.Hash(in.Password)
	if err != nil {
		slog.Error("auth_event", "event", "signup_failed", "reason", "hash", "error", err)
		return profile.Profile{}, s.fail(KindGeneral, ErrGeneral.Message)
	}

	p := profile.Profile{
		Email:     in.Email,
		Name:      in.Name,
		Role:      in.Role,
		CreatedAt: s.deps.Now(),
		Avatar:    AvatarPool[s.deps.Rand.IntN(len(AvatarPool))],
	}
	if p.IsAthlete() {
		p.Stats = profile.NewAthleteStats()
	}

	// The email check is repeated under the registry lock; another client may have
	// registered the same address since the read above.
	err = s.deps.Accounts.UpdateUsers(ctx, func(users []profile.Profile) ([]profile.Profile, error) {
		if _, exists := findByEmail(users, in.Email); exists {
			return nil, errEmailTaken
		}
		id, err := s.uniqueID(users)
		if err != nil {
			return nil, err
		}
		p.ID = id
		if err := p.Validate(); err != nil {
			return nil, &invalidProfileError{err: err}
		}
		return append(users, p), nil
	})
	var invalid *invalidProfileError
	switch {
	case errors.Is(err, errEmailTaken):
		slog.Info("auth_event", "event", "signup_failed", "email", in.Email, "reason", "exists")
		return profile.Profile{}, s.fail(KindAccountAlreadyExists, ErrAccountAlreadyExists.Message)
	case errors.Is(err, errNoFreeID):
		slog.Error("auth_event", "event", "signup_failed", "reason", "id_collision")
		return profile.Profile{}, s.fail(KindGeneral, ErrGeneral.Message)
	case errors.As(err, &invalid):
		return profile.Profile{}, s.fail(KindGeneral, invalid.err.Error())
	case err != nil:
		slog.Error("auth_event", "event", "signup_failed", "reason", "storage", "error", err)
		return profile.Profile{}, s.fail(KindGeneral, ErrGeneral.Message)
	}

	if err := s.deps.Accounts.SetCredential(ctx, p.ID, credential); err != nil {
		slog.Error("auth_event", "event", "signup_failed", "reason", "storage", "error", err)
		s.dropUser(ctx, p.ID)
		return profile.Profile{}, s.fail(KindGeneral, ErrGeneral.Message)
	}
	if err := s.deps.Accounts.SetCurrent(ctx, s.namespace, p); err != nil {
		slog.Error("auth_event", "event", "signup_failed", "reason", "storage", "error", err)
		return profile.Profile{}, s.fail(KindGeneral, ErrGeneral.Message)
	}

	showTutorial := false
	if p.IsAthlete() {
		seen, err := s.deps.Accounts.TutorialSeen(ctx, s.namespace)
		if err != nil {
			slog.Warn("auth_event", "event", "tutorial_flag_unreadable", "error", err)
		}
		showTutorial = !seen
	}

	s.user = &p
	s.lastErr = nil
	s.flags = Flags{ShowTutorial: showTutorial, ShowOnboarding: true}
	slog.Info("auth_event", "event", "signup_success", "user_id", p.ID, "role", p.Role)
	return p.Clone(), nil
}

// Logout ends the active session. The durable account and credential remain.
// POST: No active user, no flags, no last error
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := ""
	if s.user != nil {
		userID = s.user.ID
	}
	s.user = nil
	s.lastErr = nil
	s.flags = Flags{}

	if err := s.deps.Accounts.ClearCurrent(ctx, s.namespace); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	slog.Info("auth_event", "event", "logout", "user_id", userID)
	return nil
}

// UpdateUser merges u into the active user and persists it in both the current-user
// key and the registry. Without an active session it does nothing.
// PRE: u passes Update.Validate
// POST: Active user and its registry entry are identical
func (s *Store) UpdateUser(ctx context.Context, u profile.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	if err := u.Validate(); err != nil {
		return err
	}
	_, err := s.persistLocked(ctx, func(p *profile.Profile) error {
		p.Apply(u)
		return nil
	})
	return err
}

// GrantRewards is the single path through which XP and coins change.
// PRE: Active user is an athlete; xp and coins are non-negative
// POST: XP and coins increased and level recomputed, persisted like UpdateUser
func (s *Store) GrantRewards(ctx context.Context, xp, coins int) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return profile.Profile{}, ErrNoActiveSession
	}
	next, err := s.persistLocked(ctx, func(p *profile.Profile) error {
		return p.GrantRewards(xp, coins)
	})
	if err != nil {
		return profile.Profile{}, err
	}
	slog.Info("game_event", "event", "rewards_granted", "user_id", next.ID, "xp", xp, "coins", coins, "level", next.Level)
	return next.Clone(), nil
}

// MarkTutorialSeen records that the tutorial was dismissed on this client.
// POST: Tutorial-seen flag persisted, ShowTutorial cleared
func (s *Store) MarkTutorialSeen(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deps.Accounts.SetTutorialSeen(ctx, s.namespace, true); err != nil {
		return fmt.Errorf("persist tutorial flag: %w", err)
	}
	s.flags.ShowTutorial = false
	return nil
}

// CompleteOnboarding merges the onboarding form and marks the profile complete.
// PRE: Active session exists
// POST: onboardingComplete and profileComplete are true, ShowOnboarding cleared
func (s *Store) CompleteOnboarding(ctx context.Context, u profile.Update) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return profile.Profile{}, ErrNoActiveSession
	}
	if err := u.Validate(); err != nil {
		return profile.Profile{}, err
	}
	done := true
	u.OnboardingComplete = &done
	u.ProfileComplete = &done

	next, err := s.persistLocked(ctx, func(p *profile.Profile) error {
		p.Apply(u)
		return nil
	})
	if err != nil {
		return profile.Profile{}, err
	}
	s.flags.ShowOnboarding = false
	slog.Info("auth_event", "event", "onboarding_complete", "user_id", next.ID)
	return next.Clone(), nil
}

// Restore reloads the persisted current user for this namespace.
// The registry entry wins when both exist, since it is written on every update.
// POST: Returns true if a session was restored
func (s *Store) Restore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.deps.Accounts.GetCurrent(ctx, s.namespace)
	if errors.Is(err, account.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load current user: %w", err)
	}

	users, err := s.deps.Accounts.ListUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("load user registry: %w", err)
	}
	for _, u := range users {
		if u.ID == current.ID {
			current = u
			break
		}
	}

	s.user = &current
	s.flags = Flags{ShowOnboarding: !current.OnboardingComplete}
	slog.Debug("auth_event", "event", "session_restored", "user_id", current.ID)
	return true, nil
}

// Current returns a copy of the active user.
func (s *Store) Current() (profile.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return profile.Profile{}, false
	}
	return s.user.Clone(), true
}

// Flags returns the transient UI flags.
func (s *Store) Flags() Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags
}

// LastError returns the structured error of the last failed call, or nil.
func (s *Store) LastError() *AuthError {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr == nil {
		return nil
	}
	e := *s.lastErr
	return &e
}

// ClearError dismisses the last error.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// fail records an error and returns it. Must be called with mu held.
func (s *Store) fail(kind ErrorKind, message string) *AuthError {
	s.lastErr = &AuthError{Kind: kind, Message: message}
	return &AuthError{Kind: kind, Message: message}
}

// persistLocked applies mutate to the registry entry of the active user under the
// registry lock, then writes the current-user key and adopts the result. The entry is
// reloaded first so changes made through other clients are kept.
// Must be called with mu held and an active user.
func (s *Store) persistLocked(ctx context.Context, mutate func(p *profile.Profile) error) (profile.Profile, error) {
	var next profile.Profile
	err := s.deps.Accounts.UpdateUsers(ctx, func(users []profile.Profile) ([]profile.Profile, error) {
		for i := range users {
			if users[i].ID != s.user.ID {
				continue
			}
			fresh := users[i].Clone()
			if err := mutate(&fresh); err != nil {
				return nil, err
			}
			users[i] = fresh
			next = fresh
			return users, nil
		}
		fresh := s.user.Clone()
		if err := mutate(&fresh); err != nil {
			return nil, err
		}
		next = fresh
		return append(users, fresh), nil
	})
	if err != nil {
		return profile.Profile{}, err
	}
	if err := s.deps.Accounts.SetCurrent(ctx, s.namespace, next); err != nil {
		return profile.Profile{}, fmt.Errorf("save current user: %w", err)
	}
	s.user = &next
	return next.Clone(), nil
}

// dropUser removes a half-created account from the registry.
func (s *Store) dropUser(ctx context.Context, id string) {
	err := s.deps.Accounts.UpdateUsers(ctx, func(users []profile.Profile) ([]profile.Profile, error) {
		kept := users[:0]
		for _, u := range users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		return kept, nil
	})
	if err != nil {
		slog.Error("auth_event", "event", "signup_rollback_failed", "user_id", id, "error", err)
	}
}

func (s *Store) uniqueID(users []profile.Profile) (string, error) {
	taken := make(map[string]bool, len(users))
	for _, u := range users {
		taken[u.ID] = true
	}
	for range maxIDAttempts {
		id := s.deps.GenerateID()
		if id != "" && !taken[id] {
			return id, nil
		}
	}
	return "", errNoFreeID
}

func findByEmail(users []profile.Profile, email string) (profile.Profile, bool) {
	for _, u := range users {
		if profile.NormalizeEmail(u.Email) == email {
			return u, true
		}
	}
	return profile.Profile{}, false
}
