package credstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// flakyBackend wraps Memory and fails the operations switched on.
type flakyBackend struct {
	*Memory

	mu         sync.Mutex
	failGet    bool
	failSet    bool
	failDel    bool
	panicOnGet bool
	setCalls   int
	delCalls   int
}

var errBackend = errors.New("backend unavailable")

func newFlaky() *flakyBackend {
	return &flakyBackend{Memory: NewMemory()}
}

func (f *flakyBackend) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	fail, boom := f.failGet, f.panicOnGet
	f.mu.Unlock()
	if boom {
		panic("keychain crashed")
	}
	if fail {
		return "", false, errBackend
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyBackend) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.setCalls++
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errBackend
	}
	return f.Memory.Set(ctx, key, value)
}

func (f *flakyBackend) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.delCalls++
	fail := f.failDel
	f.mu.Unlock()
	if fail {
		return errBackend
	}
	return f.Memory.Delete(ctx, key)
}

func (f *flakyBackend) set(fn func(*flakyBackend)) {
	f.mu.Lock()
	fn(f)
	f.mu.Unlock()
}

func newTestStore(t *testing.T, secure, fallback Backend) *Store {
	t.Helper()
	s, err := New(Options{Secure: secure, Fallback: fallback, SecureSizeLimit: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewRequiresFallback(t *testing.T) {
	if _, err := New(Options{Secure: NewMemory()}); !errors.Is(err, ErrNoFallback) {
		t.Fatalf("expected ErrNoFallback, got %v", err)
	}
}

func TestSetRoutesBySize(t *testing.T) {
	ctx := context.Background()
	secure, fallback := NewMemory(), NewMemory()
	s := newTestStore(t, secure, fallback)

	if err := s.Set(ctx, KeyAuthToken, "short"); err != nil {
		t.Fatalf("Set small: %v", err)
	}
	if _, ok, _ := secure.Get(ctx, string(KeyAuthToken)); !ok {
		t.Fatal("small value should land on the secure backend")
	}
	if fallback.Len() != 0 {
		t.Fatalf("fallback should be empty, has %d keys", fallback.Len())
	}

	big := strings.Repeat("x", 64)
	if err := s.Set(ctx, KeyUserData, big); err != nil {
		t.Fatalf("Set big: %v", err)
	}
	if _, ok, _ := fallback.Get(ctx, string(KeyUserData)); !ok {
		t.Fatal("value at the size limit should land on the fallback backend")
	}
	if got, ok := s.Get(ctx, KeyUserData); !ok || got != big {
		t.Fatal("store should read the large value back")
	}
}

func TestSetRemovesStaleCopyFromOtherBackend(t *testing.T) {
	ctx := context.Background()
	secure, fallback := NewMemory(), NewMemory()
	s := newTestStore(t, secure, fallback)

	if err := s.Set(ctx, KeyUserData, "small"); err != nil {
		t.Fatal(err)
	}
	big := strings.Repeat("y", 100)
	if err := s.Set(ctx, KeyUserData, big); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := secure.Get(ctx, string(KeyUserData)); ok {
		t.Fatal("stale secure copy must be removed")
	}
	if got, _ := s.Get(ctx, KeyUserData); got != big {
		t.Fatalf("expected the new value, got %q", got)
	}

	if err := s.Set(ctx, KeyUserData, "small-again"); err != nil {
		t.Fatal(err)
	}
	if fallback.Len() != 0 {
		t.Fatal("stale fallback copy must be removed")
	}
}

func TestSetFailsWhenStaleSecureCopyCannotBeRemoved(t *testing.T) {
	ctx := context.Background()
	secure, fallback := newFlaky(), NewMemory()
	s := newTestStore(t, secure, fallback)

	if err := s.Set(ctx, KeyUserData, "small"); err != nil {
		t.Fatal(err)
	}
	secure.set(func(f *flakyBackend) { f.failDel = true })

	err := s.Set(ctx, KeyUserData, strings.Repeat("z", 100))
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
}

func TestNoSecureBackendUsesFallbackOnly(t *testing.T) {
	ctx := context.Background()
	fallback := NewMemory()
	s := newTestStore(t, nil, fallback)

	if s.HasSecureBackend() {
		t.Fatal("expected no secure backend")
	}
	if err := s.SaveToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	if got, ok := s.Token(ctx); !ok || got != "tok" {
		t.Fatalf("token round trip failed: %q %v", got, ok)
	}
	if fallback.Len() != 1 {
		t.Fatalf("expected token in fallback, len=%d", fallback.Len())
	}
}

func TestGetTreatsBackendErrorAsAbsence(t *testing.T) {
	ctx := context.Background()
	secure, fallback := newFlaky(), NewMemory()
	s := newTestStore(t, secure, fallback)

	_ = fallback.Set(ctx, string(KeyAuthToken), "from-fallback")
	secure.set(func(f *flakyBackend) { f.failGet = true })

	got, ok := s.Get(ctx, KeyAuthToken)
	if !ok || got != "from-fallback" {
		t.Fatalf("expected fallback value, got %q %v", got, ok)
	}

	_ = fallback.Delete(ctx, string(KeyAuthToken))
	if _, ok := s.Get(ctx, KeyAuthToken); ok {
		t.Fatal("expected absence when every backend misses or fails")
	}
}

func TestSetPrimaryFailureReturnsWriteFailed(t *testing.T) {
	secure := newFlaky()
	secure.failSet = true
	s := newTestStore(t, secure, NewMemory())

	err := s.Set(context.Background(), KeyAuthToken, "tok")
	if !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
}

func TestDeleteFailureTombstonesKey(t *testing.T) {
	ctx := context.Background()
	secure, fallback := newFlaky(), NewMemory()
	s := newTestStore(t, secure, fallback)

	if err := s.SaveToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	secure.set(func(f *flakyBackend) { f.failDel = true })

	s.Delete(ctx, KeyAuthToken)
	if _, ok := s.Token(ctx); ok {
		t.Fatal("tombstoned key must read as absent")
	}

	secure.set(func(f *flakyBackend) { f.failDel = false })
	if _, ok := s.Token(ctx); ok {
		t.Fatal("key must stay absent after the retried delete")
	}
	if _, ok, _ := secure.Memory.Get(ctx, string(KeyAuthToken)); ok {
		t.Fatal("retried delete should have removed the secure copy")
	}

	if err := s.SaveToken(ctx, "fresh"); err != nil {
		t.Fatal(err)
	}
	if got, ok := s.Token(ctx); !ok || got != "fresh" {
		t.Fatalf("Set must clear the tombstone, got %q %v", got, ok)
	}
}

func TestConcurrentSetsAreLastWriterWins(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemory(), NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Set(ctx, KeyDeviceID, strings.Repeat("a", i%8+1))
		}(i)
	}
	wg.Wait()

	if _, ok := s.Get(ctx, KeyDeviceID); !ok {
		t.Fatal("expected one of the concurrent values to survive")
	}
}

func TestParseKey(t *testing.T) {
	for _, k := range Keys() {
		got, err := ParseKey(" " + strings.ToLower(string(k)) + " ")
		if err != nil || got != k {
			t.Fatalf("ParseKey(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKey("SESSION_SECRET"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
}
