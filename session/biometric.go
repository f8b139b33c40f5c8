package session

import (
	"context"

	"github.com/MrEthical07/authcore/apperr"
	"github.com/MrEthical07/authcore/biometric"
	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/profile"
)

// EnableBiometric opts the signed-in user into biometric login. The user
// must pass one challenge first; the flag write must succeed.
func (m *Manager) EnableBiometric(ctx context.Context) error {
	if _, ok := m.store.Token(ctx); !ok {
		return apperr.Unauthorized("")
	}
	if !m.gate.CheckAvailability(ctx) {
		m.metrics.Inc(metrics.BiometricUnavailable)
		return apperr.BiometricNotAvailable("")
	}

	out := m.gate.Authenticate(ctx, m.prompt)
	if !out.Success {
		m.metrics.Inc(metrics.BiometricFailure)
		failure := out.AppError()
		m.emit(ctx, audit.EventBiometricEnabled, m.userID(ctx), failure, reasonMeta(out))
		return failure
	}

	if err := m.store.SetBiometricEnabled(ctx, true); err != nil {
		return m.storeFailure("Could not save your biometric preference.", err)
	}
	m.metrics.Inc(metrics.BiometricEnabled)
	m.emit(ctx, audit.EventBiometricEnabled, m.userID(ctx), nil, nil)
	return nil
}

// DisableBiometric opts out. The flag write must succeed.
func (m *Manager) DisableBiometric(ctx context.Context) error {
	if err := m.store.SetBiometricEnabled(ctx, false); err != nil {
		return m.storeFailure("Could not save your biometric preference.", err)
	}
	m.metrics.Inc(metrics.BiometricDisabled)
	m.emit(ctx, audit.EventBiometricDisabled, m.userID(ctx), nil, nil)
	return nil
}

// BiometricLogin unlocks the stored session with a biometric challenge.
// It never falls back to success: disabled opt-in, missing hardware, a
// failed challenge and an expired or missing session are all errors.
func (m *Manager) BiometricLogin(ctx context.Context) apperr.Result[*profile.User] {
	if !m.store.BiometricEnabled(ctx) {
		return apperr.Fail[*profile.User](apperr.BiometricNotAvailable("Biometric login is not enabled."))
	}

	checked := m.CheckSession(ctx)
	if checked.IsErr() {
		return apperr.Fail[*profile.User](checked.Err())
	}
	user := checked.Value().User

	if !m.gate.CheckAvailability(ctx) {
		m.metrics.Inc(metrics.BiometricUnavailable)
		return apperr.Fail[*profile.User](apperr.BiometricNotAvailable(""))
	}

	out := m.gate.Authenticate(ctx, m.prompt)
	if !out.Success {
		m.metrics.Inc(metrics.BiometricFailure)
		failure := out.AppError()
		m.emit(ctx, audit.EventBiometricLogin, user.ID, failure, reasonMeta(out))
		return apperr.Fail[*profile.User](failure)
	}

	m.metrics.Inc(metrics.BiometricSuccess)
	m.emit(ctx, audit.EventBiometricLogin, user.ID, nil, map[string]string{"method": "biometric"})
	return apperr.Ok(user)
}

func (m *Manager) userID(ctx context.Context) string {
	if u, ok := m.store.User(ctx); ok {
		return u.ID
	}
	return ""
}

func reasonMeta(out biometric.Outcome) map[string]string {
	return map[string]string{"reason": string(out.Reason)}
}
