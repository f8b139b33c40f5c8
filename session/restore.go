package session

import (
	"context"

	"github.com/MrEthical07/authcore/apperr"
	"github.com/MrEthical07/authcore/credstore"
	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/profile"
)

// LoadSession returns the stored session, or the zero Session on any
// failure. It does not look at token expiry; CheckSession does.
func (m *Manager) LoadSession(ctx context.Context) credstore.Session {
	sess := m.store.LoadSession(ctx)
	if sess.SignedIn() {
		m.metrics.Inc(metrics.SessionRestored)
	}
	return sess
}

// CheckSession is LoadSession plus token validity. An expired token ends
// the session and yields SESSION_EXPIRED.
func (m *Manager) CheckSession(ctx context.Context) apperr.Result[credstore.Session] {
	token, ok := m.store.Token(ctx)
	if !ok {
		return apperr.Fail[credstore.Session](apperr.Unauthorized(""))
	}
	if m.inspector.Expired(token) {
		userID := m.userID(ctx)
		m.store.EndSession(ctx)
		failure := apperr.SessionExpired("")
		m.metrics.Inc(metrics.SessionExpired)
		m.emit(ctx, audit.EventSessionExpired, userID, failure, nil)
		return apperr.Fail[credstore.Session](failure)
	}

	sess := m.store.LoadSession(ctx)
	if !sess.SignedIn() {
		return apperr.Fail[credstore.Session](apperr.Unauthorized(""))
	}
	m.emit(ctx, audit.EventSessionRestored, sess.User.ID, nil, nil)
	return apperr.Ok(sess)
}

// RefreshProfile replaces the stored profile of the signed-in user. The
// new profile must belong to the same user id.
func (m *Manager) RefreshProfile(ctx context.Context, user *profile.User) error {
	if err := user.Validate(); err != nil {
		return apperr.InvalidInput("The profile is incomplete.").WithCause(err)
	}
	current, ok := m.store.User(ctx)
	if !ok {
		return apperr.Unauthorized("")
	}
	if _, ok := m.store.Token(ctx); !ok {
		return apperr.Unauthorized("")
	}
	if current.ID != user.ID {
		return apperr.OperationNotAllowed("The profile belongs to a different user.")
	}
	if err := m.store.SaveUser(ctx, user); err != nil {
		return m.storeFailure("Could not save your profile.", err)
	}
	m.emit(ctx, audit.EventProfileRefreshed, user.ID, nil, nil)
	return nil
}

// CompleteOnboarding records that onboarding finished. Best-effort.
func (m *Manager) CompleteOnboarding(ctx context.Context) {
	m.store.MarkOnboardingCompleted(ctx)
}

func (m *Manager) OnboardingCompleted(ctx context.Context) bool {
	return m.store.OnboardingCompleted(ctx)
}
