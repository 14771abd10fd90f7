package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"talenttrack/internal/adapters/storage/account"
	"talenttrack/internal/adapters/storage/kv"
	"talenttrack/internal/application/session"
	"talenttrack/internal/domain/profile"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestFactory(c *clock) Factory {
	n := 0
	var mu sync.Mutex
	return Factory{
		Accounts: account.NewKVStore(kv.NewMemoryStore(), ""),
		Hasher:   session.BcryptHasher{Cost: bcrypt.MinCost},
		GenerateID: func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("test-id-%03d", n)
		},
		Now: c.Now,
	}
}

// TestFactory_New verifies a fresh client is logged out and seeded with the default catalog.
func TestFactory_New(t *testing.T) {
	f := newTestFactory(&clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)})
	c, err := f.New(context.Background(), "client-1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := c.Session.Current(); ok {
		t.Error("new client should be logged out")
	}
	if len(c.Game.Badges()) != 30 {
		t.Errorf("badges = %d, want 30", len(c.Game.Badges()))
	}
	if c.Session.Namespace() != "client-1" {
		t.Errorf("namespace = %q", c.Session.Namespace())
	}
}

// TestFactory_New_EmptyID rejects an empty client id.
func TestFactory_New_EmptyID(t *testing.T) {
	f := newTestFactory(&clock{})
	if _, err := f.New(context.Background(), ""); !errors.Is(err, ErrEmptyClientID) {
		t.Errorf("got %v, want ErrEmptyClientID", err)
	}
}

// TestFactory_RewardsReachSession verifies gamification rewards are applied to the client's user.
func TestFactory_RewardsReachSession(t *testing.T) {
	ctx := context.Background()
	f := newTestFactory(&clock{})
	c, err := f.New(ctx, "client-1")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Session.Signup(ctx, session.SignupInput{Email: "a@x.com", Password: "p1", Name: "Ann", Role: profile.RoleAthlete}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if err := c.Game.EarnXP(ctx, 120); err != nil {
		t.Fatalf("EarnXP: %v", err)
	}
	u, _ := c.Session.Current()
	if u.XP != 120 {
		t.Errorf("XP = %d, want 120", u.XP)
	}
}

// TestRegistry_GetRestoresPersistedSession verifies an evicted client comes back logged in.
func TestRegistry_GetRestoresPersistedSession(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	reg := NewRegistry(newTestFactory(clk), time.Hour)

	c, err := reg.Get(ctx, "client-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := c.Session.Signup(ctx, session.SignupInput{Email: "a@x.com", Password: "p1", Name: "Ann", Role: profile.RoleAthlete}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	again, _ := reg.Get(ctx, "client-1")
	if again != c {
		t.Error("Get should return the live client")
	}

	clk.Advance(2 * time.Hour)
	if n := reg.Sweep(); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if reg.Len() != 0 {
		t.Errorf("Len = %d, want 0", reg.Len())
	}

	restored, err := reg.Get(ctx, "client-1")
	if err != nil {
		t.Fatalf("Get after sweep: %v", err)
	}
	if restored == c {
		t.Error("expected a rebuilt client")
	}
	u, ok := restored.Session.Current()
	if !ok || u.Name != "Ann" {
		t.Errorf("restored user = %+v, %v", u, ok)
	}
}

// TestRegistry_ClientsAreIsolated verifies two clients keep separate sessions.
func TestRegistry_ClientsAreIsolated(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(newTestFactory(&clock{}), time.Hour)

	a, _ := reg.Get(ctx, "client-a")
	b, _ := reg.Get(ctx, "client-b")
	if _, err := a.Session.Signup(ctx, session.SignupInput{Email: "a@x.com", Password: "p1", Name: "Ann", Role: profile.RoleAthlete}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, ok := b.Session.Current(); ok {
		t.Error("client-b should not see client-a's session")
	}
	if _, err := b.Session.Login(ctx, "a@x.com", "p1", profile.RoleAthlete); err != nil {
		t.Errorf("client-b Login: %v", err)
	}
}

// TestRegistry_SweepKeepsActive verifies recently used clients survive a sweep.
func TestRegistry_SweepKeepsActive(t *testing.T) {
	ctx := context.Background()
	clk := &clock{}
	reg := NewRegistry(newTestFactory(clk), time.Hour)

	reg.Get(ctx, "old")
	clk.Advance(50 * time.Minute)
	reg.Get(ctx, "new")
	clk.Advance(20 * time.Minute)

	if n := reg.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
}

// TestRegistry_ConcurrentGet verifies concurrent first requests share one client.
func TestRegistry_ConcurrentGet(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(newTestFactory(&clock{}), time.Hour)

	var wg sync.WaitGroup
	got := make([]*Client, 10)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := reg.Get(ctx, "shared")
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			got[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range got[1:] {
		if c != got[0] {
			t.Fatal("concurrent Get returned different clients")
		}
	}
}

// TestRegistry_RunStopsOnCancel verifies Run returns when its context ends.
func TestRegistry_RunStopsOnCancel(t *testing.T) {
	reg := NewRegistry(newTestFactory(&clock{}), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reg.Run(ctx, time.Millisecond) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
