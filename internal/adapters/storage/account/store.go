package account

import (
	"context"
	"errors"

	domain "talenttrack/internal/domain/profile"
)

// ErrNotFound is returned when no current user or credential is stored.
var ErrNotFound = errors.New("account record not found")

// UsersFunc receives the current registry and returns its replacement.
// Returning an error leaves the registry unchanged.
type UsersFunc func(users []domain.Profile) ([]domain.Profile, error)

// Store persists the account registry, credentials and per-client session keys.
// A namespace identifies one client; the empty namespace is the unscoped layout.
type Store interface {
	ListUsers(ctx context.Context) ([]domain.Profile, error)
	SaveUsers(ctx context.Context, users []domain.Profile) error
	UpdateUsers(ctx context.Context, fn UsersFunc) error
	GetCurrent(ctx context.Context, namespace string) (domain.Profile, error)
	SetCurrent(ctx context.Context, namespace string, p domain.Profile) error
	ClearCurrent(ctx context.Context, namespace string) error
	GetCredential(ctx context.Context, userID string) (string, error)
	SetCredential(ctx context.Context, userID, credential string) error
	TutorialSeen(ctx context.Context, namespace string) (bool, error)
	SetTutorialSeen(ctx context.Context, namespace string, seen bool) error
}
