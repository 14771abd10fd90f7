package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing: got %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "talenttrack_user", `{"id":"u1"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "talenttrack_user")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"id":"u1"}` {
		t.Errorf("got %q, want %q", got, `{"id":"u1"}`)
	}

	if err := s.Set(ctx, "talenttrack_user", `{"id":"u2"}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _ = s.Get(ctx, "talenttrack_user")
	if got != `{"id":"u2"}` {
		t.Errorf("after overwrite got %q, want %q", got, `{"id":"u2"}`)
	}

	if err := s.Delete(ctx, "talenttrack_user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "talenttrack_user"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "talenttrack_user"); err != nil {
		t.Errorf("Delete missing key should succeed, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, err := Open(context.Background(), Options{Backend: BackendSQLite, SQLitePath: ":memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)

	u, ok := s.(Updater)
	if !ok {
		t.Fatalf("%T does not implement Updater", s)
	}
	ctx := context.Background()
	key := "talenttrack_test_counter"
	s.Delete(ctx, key)
	defer s.Delete(ctx, key)

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := u.Update(ctx, key, func(current string, found bool) (string, error) {
				n := 0
				if found {
					n, _ = strconv.Atoi(current)
				}
				return strconv.Itoa(n + 1), nil
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()
	if got, _ := s.Get(ctx, key); got != strconv.Itoa(writers) {
		t.Errorf("counter = %q, want %d", got, writers)
	}

	errStop := errors.New("stop")
	if err := u.Update(ctx, key, func(string, bool) (string, error) { return "0", errStop }); !errors.Is(err, errStop) {
		t.Errorf("got %v, want callback error", err)
	}
	if got, _ := s.Get(ctx, key); got != strconv.Itoa(writers) {
		t.Errorf("aborted update changed value to %q", got)
	}
}

// TestSQLiteStore_Persists verifies values survive reopening the database file.
func TestSQLiteStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := Open(ctx, Options{Backend: BackendSQLite, SQLitePath: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s, err = Open(ctx, Options{Backend: BackendSQLite, SQLitePath: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "v" {
		t.Errorf("got %q, want %q", got, "v")
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data", "kv.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	exerciseStore(t, s)
}

// TestFileStore_Persists verifies a second store reads what the first wrote.
func TestFileStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.json")

	first, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := first.Set(ctx, "talenttrack_users", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	second, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := second.Get(ctx, "talenttrack_users")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "[]" {
		t.Errorf("got %q, want %q", got, "[]")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

// TestFileStore_CorruptDocument verifies a garbled file is reported, not silently reset.
func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileStore(path); err == nil {
		t.Error("expected error for corrupt document")
	}
}

// TestRedisStore runs against a live server when TALENTTRACK_TEST_REDIS_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TALENTTRACK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TALENTTRACK_TEST_REDIS_ADDR not set")
	}
	s, err := Open(context.Background(), Options{Backend: BackendRedis, RedisAddr: addr, RedisDB: 15})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)

	u, ok := s.(Updater)
	if !ok {
		t.Fatalf("%T does not implement Updater", s)
	}
	ctx := context.Background()
	key := "talenttrack_test_counter"
	s.Delete(ctx, key)
	defer s.Delete(ctx, key)

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := u.Update(ctx, key, func(current string, found bool) (string, error) {
				n := 0
				if found {
					n, _ = strconv.Atoi(current)
				}
				return strconv.Itoa(n + 1), nil
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		}()
	}
	wg.Wait()
	if got, _ := s.Get(ctx, key); got != strconv.Itoa(writers) {
		t.Errorf("counter = %q, want %d", got, writers)
	}

	errStop := errors.New("stop")
	if err := u.Update(ctx, key, func(string, bool) (string, error) { return "0", errStop }); !errors.Is(err, errStop) {
		t.Errorf("got %v, want callback error", err)
	}
	if got, _ := s.Get(ctx, key); got != strconv.Itoa(writers) {
		t.Errorf("aborted update changed value to %q", got)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Options{Backend: "etcd"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), Options{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("got %T, want *MemoryStore", s)
	}
}
