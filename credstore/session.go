package credstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrEthical07/authcore/profile"
)

// Session is what the app needs at startup. The zero value means signed out.
type Session struct {
	User             *profile.User
	BiometricEnabled bool
}

// SignedIn reports whether a user profile was restored.
func (s Session) SignedIn() bool {
	return s.User != nil
}

// SaveToken stores the auth token. Tokens are replaced, never edited.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyValue, KeyAuthToken)
	}
	return s.Set(ctx, KeyAuthToken, token)
}

func (s *Store) Token(ctx context.Context) (string, bool) {
	token, ok := s.Get(ctx, KeyAuthToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// SaveUser stores the encoded profile. Large profiles (inline avatars) end up
// on the fallback backend.
func (s *Store) SaveUser(ctx context.Context, user *profile.User) error {
	raw, err := profile.Encode(user)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, KeyUserData, err)
	}
	return s.Set(ctx, KeyUserData, raw)
}

// User returns the stored profile. Undecodable data reads as absent.
func (s *Store) User(ctx context.Context) (*profile.User, bool) {
	raw, ok := s.Get(ctx, KeyUserData)
	if !ok {
		return nil, false
	}
	user, err := profile.Decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("key", string(KeyUserData)).Msg("stored profile unreadable")
		return nil, false
	}
	return user, true
}

func (s *Store) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	value := flagDisabled
	if enabled {
		value = flagEnabled
	}
	return s.Set(ctx, KeyBiometricEnabled, value)
}

// BiometricEnabled is true only for the literal enabled marker.
func (s *Store) BiometricEnabled(ctx context.Context) bool {
	value, ok := s.Get(ctx, KeyBiometricEnabled)
	return ok && value == flagEnabled
}

// SetRememberedUsername stores name; an empty name clears it.
func (s *Store) SetRememberedUsername(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		s.ClearRememberedUsername(ctx)
		return nil
	}
	return s.Set(ctx, KeyUsernameRemembered, name)
}

func (s *Store) RememberedUsername(ctx context.Context) (string, bool) {
	name, ok := s.Get(ctx, KeyUsernameRemembered)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

func (s *Store) ClearRememberedUsername(ctx context.Context) {
	s.Delete(ctx, KeyUsernameRemembered)
}

// MarkOnboardingCompleted is best-effort: a failure is logged only.
func (s *Store) MarkOnboardingCompleted(ctx context.Context) {
	if err := s.Set(ctx, KeyOnboardingCompleted, flagEnabled); err != nil {
		s.log.Warn().Err(err).Msg("onboarding flag not persisted")
	}
}

func (s *Store) OnboardingCompleted(ctx context.Context) bool {
	value, ok := s.Get(ctx, KeyOnboardingCompleted)
	return ok && value == flagEnabled
}

// DeviceID returns the installation id, creating and persisting a random one
// on first use.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	id, stored := s.PendingDeviceID(ctx)
	if stored {
		return id, nil
	}
	if err := s.SaveDeviceID(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// PendingDeviceID returns the stored installation id, or a fresh random one
// that has not been written yet. stored reports which.
func (s *Store) PendingDeviceID(ctx context.Context) (id string, stored bool) {
	if id, ok := s.Get(ctx, KeyDeviceID); ok && id != "" {
		return id, true
	}
	return uuid.NewString(), false
}

// SaveDeviceID persists id as the installation id.
func (s *Store) SaveDeviceID(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: device id", ErrEmptyValue)
	}
	return s.Set(ctx, KeyDeviceID, id)
}

// EndSession removes the token, the profile and the biometric flag from
// every backend. The remembered username and onboarding flag are kept.
func (s *Store) EndSession(ctx context.Context) {
	for _, key := range authKeys {
		s.Delete(ctx, key)
	}
}

// ClearSession is EndSession plus the remembered username. It never fails.
func (s *Store) ClearSession(ctx context.Context) {
	s.EndSession(ctx)
	s.Delete(ctx, KeyUsernameRemembered)
}

// LoadSession restores the signed-in state at startup. Any failure yields the
// zero Session; this call must never block boot.
func (s *Store) LoadSession(ctx context.Context) (sess Session) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("load session failed")
			sess = Session{}
		}
	}()

	if _, ok := s.Token(ctx); !ok {
		return Session{}
	}
	user, ok := s.User(ctx)
	if !ok {
		s.log.Warn().Msg("token present without a readable profile")
		return Session{}
	}

	return Session{
		User:             user,
		BiometricEnabled: s.BiometricEnabled(ctx),
	}
}
