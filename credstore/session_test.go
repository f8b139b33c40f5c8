package credstore

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MrEthical07/authcore/profile"
)

func testUser() *profile.User {
	return &profile.User{ID: "u-1", Username: "ana", Email: "ana@example.com", Name: "Ana"}
}

func TestSaveTokenRejectsEmpty(t *testing.T) {
	s := newTestStore(t, NewMemory(), NewMemory())
	if err := s.SaveToken(context.Background(), "  "); !errors.Is(err, ErrEmptyValue) {
		t.Fatalf("expected ErrEmptyValue, got %v", err)
	}
}

func TestUserRoundTripAndLargeProfileFallback(t *testing.T) {
	ctx := context.Background()
	secure, fallback := NewMemory(), NewMemory()
	s := newTestStore(t, secure, fallback)

	u := testUser()
	u.Avatar = "data:image/png;base64," + strings.Repeat("A", 500)
	if err := s.SaveUser(ctx, u); err != nil {
		t.Fatal(err)
	}
	if fallback.Len() != 1 {
		t.Fatal("large profile should be written to fallback")
	}
	got, ok := s.User(ctx)
	if !ok || got.ID != u.ID || got.Avatar != u.Avatar {
		t.Fatalf("profile round trip failed: %+v", got)
	}
}

func TestUserUnreadableReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemory(), NewMemory())
	if err := s.Set(ctx, KeyUserData, "{not json"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.User(ctx); ok {
		t.Fatal("garbage profile must read as absent")
	}
}

func TestBiometricFlagRequiresLiteralMarker(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemory(), NewMemory())

	for _, raw := range []string{"1", "TRUE", "yes", "false", ""} {
		_ = s.Set(ctx, KeyBiometricEnabled, raw)
		if s.BiometricEnabled(ctx) {
			t.Fatalf("value %q must not enable biometrics", raw)
		}
	}
	if err := s.SetBiometricEnabled(ctx, true); err != nil {
		t.Fatal(err)
	}
	if !s.BiometricEnabled(ctx) {
		t.Fatal("expected biometric enabled")
	}
	if err := s.SetBiometricEnabled(ctx, false); err != nil {
		t.Fatal(err)
	}
	if s.BiometricEnabled(ctx) {
		t.Fatal("expected biometric disabled")
	}
}

func TestRememberedUsername(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemory(), NewMemory())

	if _, ok := s.RememberedUsername(ctx); ok {
		t.Fatal("expected no remembered username")
	}
	if err := s.SetRememberedUsername(ctx, "ana"); err != nil {
		t.Fatal(err)
	}
	if got, ok := s.RememberedUsername(ctx); !ok || got != "ana" {
		t.Fatalf("got %q %v", got, ok)
	}
	if err := s.SetRememberedUsername(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.RememberedUsername(ctx); ok {
		t.Fatal("empty name should clear the remembered username")
	}
}

func TestOnboardingAndDeviceID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemory(), NewMemory())

	if s.OnboardingCompleted(ctx) {
		t.Fatal("fresh install must not be onboarded")
	}
	s.MarkOnboardingCompleted(ctx)
	if !s.OnboardingCompleted(ctx) {
		t.Fatal("expected onboarding completed")
	}

	id1, err := s.DeviceID(ctx)
	if err != nil || id1 == "" {
		t.Fatalf("DeviceID: %q %v", id1, err)
	}
	id2, _ := s.DeviceID(ctx)
	if id1 != id2 {
		t.Fatal("device id must be stable")
	}
}

func TestPendingDeviceIDWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemory(), NewMemory())

	id, stored := s.PendingDeviceID(ctx)
	if stored || id == "" {
		t.Fatalf("PendingDeviceID on fresh store = %q %v", id, stored)
	}
	if _, ok := s.Get(ctx, KeyDeviceID); ok {
		t.Fatal("pending id must not be persisted")
	}
	if err := s.SaveDeviceID(ctx, id); err != nil {
		t.Fatal(err)
	}
	if got, stored := s.PendingDeviceID(ctx); !stored || got != id {
		t.Fatalf("after save = %q %v", got, stored)
	}
	if err := s.SaveDeviceID(ctx, " "); err == nil {
		t.Fatal("empty device id must be rejected")
	}
}

func seedSession(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	if err := s.SaveToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveUser(ctx, testUser()); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBiometricEnabled(ctx, true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRememberedUsername(ctx, "ana"); err != nil {
		t.Fatal(err)
	}
	s.MarkOnboardingCompleted(ctx)
}

func TestEndSessionKeepsRememberedUsername(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, NewMemory(), NewMemory())
	seedSession(t, s)

	s.EndSession(ctx)

	if _, ok := s.Token(ctx); ok {
		t.Fatal("token must be gone")
	}
	if _, ok := s.User(ctx); ok {
		t.Fatal("profile must be gone")
	}
	if s.BiometricEnabled(ctx) {
		t.Fatal("biometric flag must be gone")
	}
	if got, _ := s.RememberedUsername(ctx); got != "ana" {
		t.Fatal("remembered username must survive EndSession")
	}
	if !s.OnboardingCompleted(ctx) {
		t.Fatal("onboarding flag must survive EndSession")
	}
}

func TestClearSessionWithFailingBackend(t *testing.T) {
	ctx := context.Background()
	secure := newFlaky()
	s := newTestStore(t, secure, NewMemory())
	seedSession(t, s)

	secure.set(func(f *flakyBackend) { f.failDel = true })
	s.ClearSession(ctx)

	if sess := s.LoadSession(ctx); sess.SignedIn() {
		t.Fatal("cleared session must not load")
	}
	if _, ok := s.RememberedUsername(ctx); ok {
		t.Fatal("ClearSession removes the remembered username")
	}
	if !s.OnboardingCompleted(ctx) {
		t.Fatal("onboarding flag is never cleared")
	}
}

func TestLoadSession(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		s := newTestStore(t, NewMemory(), NewMemory())
		if sess := s.LoadSession(ctx); sess.SignedIn() || sess.BiometricEnabled {
			t.Fatalf("expected zero session, got %+v", sess)
		}
	})

	t.Run("signed in", func(t *testing.T) {
		s := newTestStore(t, NewMemory(), NewMemory())
		seedSession(t, s)
		sess := s.LoadSession(ctx)
		if !sess.SignedIn() || sess.User.Username != "ana" || !sess.BiometricEnabled {
			t.Fatalf("unexpected session %+v", sess)
		}
	})

	t.Run("profile without token", func(t *testing.T) {
		s := newTestStore(t, NewMemory(), NewMemory())
		if err := s.SaveUser(ctx, testUser()); err != nil {
			t.Fatal(err)
		}
		if s.LoadSession(ctx).SignedIn() {
			t.Fatal("profile alone must not restore a session")
		}
	})

	t.Run("token without profile", func(t *testing.T) {
		s := newTestStore(t, NewMemory(), NewMemory())
		if err := s.SaveToken(ctx, "tok"); err != nil {
			t.Fatal(err)
		}
		if s.LoadSession(ctx).SignedIn() {
			t.Fatal("token alone must not restore a session")
		}
		if _, ok := s.Token(ctx); !ok {
			t.Fatal("LoadSession must not delete the token")
		}
	})

	t.Run("backend panics", func(t *testing.T) {
		secure := newFlaky()
		s := newTestStore(t, secure, NewMemory())
		seedSession(t, s)
		secure.set(func(f *flakyBackend) { f.panicOnGet = true })
		if s.LoadSession(ctx).SignedIn() {
			t.Fatal("panicking backend must yield the zero session")
		}
	})
}
