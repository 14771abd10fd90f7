package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"talenttrack/internal/adapters/storage/kv"
	domain "talenttrack/internal/domain/profile"
)

// DefaultPrefix namespaces every key written by the account store.
const DefaultPrefix = "talenttrack_"

// KVStore implements Store as JSON values on a kv.Store.
// All registry read-modify-write cycles in the process go through UpdateUsers,
// so one KVStore must be shared by every client.
type KVStore struct {
	kv     kv.Store
	prefix string

	usersMu sync.Mutex
}

// NewKVStore creates a KVStore. An empty prefix falls back to DefaultPrefix.
func NewKVStore(store kv.Store, prefix string) *KVStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &KVStore{kv: store, prefix: prefix}
}

// UsersKey is the key of the all-users registry.
func (s *KVStore) UsersKey() string {
	return s.prefix + "users"
}

// UserKey is the key of the current user for a namespace.
func (s *KVStore) UserKey(namespace string) string {
	return s.scoped(namespace, "user")
}

// CredentialKey is the key of one user's credential.
func (s *KVStore) CredentialKey(userID string) string {
	return s.prefix + "password_" + userID
}

// TutorialKey is the key of the tutorial-seen flag for a namespace.
func (s *KVStore) TutorialKey(namespace string) string {
	return s.scoped(namespace, "tutorial_seen")
}

func (s *KVStore) scoped(namespace, name string) string {
	if namespace == "" {
		return s.prefix + name
	}
	return s.prefix + namespace + ":" + name
}

// ListUsers returns the registry in insertion order. A missing registry is empty.
// POST: Returns a non-nil slice on success
func (s *KVStore) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	raw, err := s.kv.Get(ctx, s.UsersKey())
	if errors.Is(err, kv.ErrNotFound) {
		return []domain.Profile{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeUsers(raw)
}

func decodeUsers(raw string) ([]domain.Profile, error) {
	var users []domain.Profile
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode user registry: %w", err)
	}
	if users == nil {
		users = []domain.Profile{}
	}
	return users, nil
}

// SaveUsers replaces the registry.
// PRE: ids and emails are unique
// POST: Registry is persisted in the given order
func (s *KVStore) SaveUsers(ctx context.Context, users []domain.Profile) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return s.saveUsers(ctx, users)
}

func (s *KVStore) saveUsers(ctx context.Context, users []domain.Profile) error {
	if users == nil {
		users = []domain.Profile{}
	}
	return s.putJSON(ctx, s.UsersKey(), users)
}

// UpdateUsers loads the registry, passes it to fn and saves the result while holding
// the registry lock. Backends implementing kv.Updater make the cycle atomic across
// processes as well, in which case fn may run more than once.
// POST: Either fn succeeded and its result is persisted, or the registry is unchanged
func (s *KVStore) UpdateUsers(ctx context.Context, fn UsersFunc) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if u, ok := s.kv.(kv.Updater); ok {
		return u.Update(ctx, s.UsersKey(), func(current string, found bool) (string, error) {
			users := []domain.Profile{}
			if found {
				var err error
				if users, err = decodeUsers(current); err != nil {
					return "", err
				}
			}
			next, err := fn(users)
			if err != nil {
				return "", err
			}
			if next == nil {
				next = []domain.Profile{}
			}
			data, err := json.Marshal(next)
			if err != nil {
				return "", fmt.Errorf("encode %s: %w", s.UsersKey(), err)
			}
			return string(data), nil
		})
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		return err
	}
	next, err := fn(users)
	if err != nil {
		return err
	}
	return s.saveUsers(ctx, next)
}

// GetCurrent returns the current user of a namespace or ErrNotFound.
func (s *KVStore) GetCurrent(ctx context.Context, namespace string) (domain.Profile, error) {
	raw, err := s.kv.Get(ctx, s.UserKey(namespace))
	if errors.Is(err, kv.ErrNotFound) {
		return domain.Profile{}, ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, err
	}
	var p domain.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.Profile{}, fmt.Errorf("decode current user: %w", err)
	}
	return p, nil
}

// SetCurrent persists p as the current user of a namespace.
func (s *KVStore) SetCurrent(ctx context.Context, namespace string, p domain.Profile) error {
	return s.putJSON(ctx, s.UserKey(namespace), p)
}

// ClearCurrent removes the current user of a namespace.
func (s *KVStore) ClearCurrent(ctx context.Context, namespace string) error {
	return s.kv.Delete(ctx, s.UserKey(namespace))
}

// GetCredential returns the stored credential for a user id or ErrNotFound.
func (s *KVStore) GetCredential(ctx context.Context, userID string) (string, error) {
	raw, err := s.kv.Get(ctx, s.CredentialKey(userID))
	if errors.Is(err, kv.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	var credential string
	if err := json.Unmarshal([]byte(raw), &credential); err != nil {
		return "", fmt.Errorf("decode credential: %w", err)
	}
	return credential, nil
}

// SetCredential stores the credential for a user id.
func (s *KVStore) SetCredential(ctx context.Context, userID, credential string) error {
	return s.putJSON(ctx, s.CredentialKey(userID), credential)
}

// TutorialSeen reports the tutorial-seen flag. A missing flag is false.
func (s *KVStore) TutorialSeen(ctx context.Context, namespace string) (bool, error) {
	raw, err := s.kv.Get(ctx, s.TutorialKey(namespace))
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var seen bool
	if err := json.Unmarshal([]byte(raw), &seen); err != nil {
		return false, fmt.Errorf("decode tutorial flag: %w", err)
	}
	return seen, nil
}

// SetTutorialSeen stores the tutorial-seen flag.
func (s *KVStore) SetTutorialSeen(ctx context.Context, namespace string, seen bool) error {
	return s.putJSON(ctx, s.TutorialKey(namespace), seen)
}

func (s *KVStore) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(data))
}
