package session

import (
	"context"
	"strings"

	"github.com/MrEthical07/authcore/apperr"
	"github.com/MrEthical07/authcore/credstore"
	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/profile"
	"github.com/MrEthical07/authcore/remote"
)

// Login authenticates against the remote service and persists the session.
// On failure the store is left as it was, except that a token written before
// a failed profile write is removed again.
func (m *Manager) Login(ctx context.Context, identifier, secret string, opts LoginOptions) apperr.Result[*profile.User] {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return apperr.Fail[*profile.User](apperr.Validation("Enter your username and password."))
	}

	// A first-time id is only written once the sign-in succeeds.
	deviceID, deviceStored := m.store.PendingDeviceID(ctx)

	start := m.now()
	resp, err := m.service.Login(ctx, remote.LoginRequest{
		Identifier: identifier,
		Secret:     secret,
		DeviceID:   deviceID,
	})
	m.metrics.Observe(metrics.LoginLatency, m.now().Sub(start))

	if err != nil {
		failure := apperr.From(err)
		if failure.Code() == apperr.CodeUnauthorized {
			failure = apperr.InvalidCredentials("").WithCause(err)
		}
		return m.loginFailed(ctx, failure)
	}
	if resp == nil || strings.TrimSpace(resp.Token) == "" || resp.User.Validate() != nil {
		return m.loginFailed(ctx, apperr.Server("The server returned an incomplete sign-in response."))
	}

	if err := m.store.SaveToken(ctx, resp.Token); err != nil {
		return m.loginFailed(ctx, m.storeFailure("Could not save your session.", err))
	}
	if err := m.store.SaveUser(ctx, resp.User); err != nil {
		m.store.Delete(ctx, credstore.KeyAuthToken)
		return m.loginFailed(ctx, m.storeFailure("Could not save your profile.", err))
	}

	if !deviceStored {
		if err := m.store.SaveDeviceID(ctx, deviceID); err != nil {
			m.log.Warn().Err(err).Msg("device id not persisted")
		}
	}

	if opts.RememberUser {
		if err := m.store.SetRememberedUsername(ctx, identifier); err != nil {
			m.log.Warn().Err(err).Msg("remembered username not persisted")
		}
	} else {
		m.store.ClearRememberedUsername(ctx)
	}

	m.metrics.Inc(metrics.LoginSuccess)
	m.emit(ctx, audit.EventLoginSuccess, resp.User.ID, nil, map[string]string{"method": "password"})
	return apperr.Ok(resp.User.Clone())
}

func (m *Manager) loginFailed(ctx context.Context, failure *apperr.Error) apperr.Result[*profile.User] {
	m.metrics.Inc(metrics.LoginFailure)
	if failure.Code() == apperr.CodeInvalidCredentials {
		m.metrics.Inc(metrics.LoginInvalidCredentials)
	}
	m.emit(ctx, audit.EventLoginFailure, "", failure, map[string]string{"method": "password"})
	return apperr.Fail[*profile.User](failure)
}

// Logout ends the session. The remembered username, the onboarding flag and
// the device id survive. It never fails.
func (m *Manager) Logout(ctx context.Context) {
	userID := m.userID(ctx)
	m.store.EndSession(ctx)
	m.gate.Reset()

	m.metrics.Inc(metrics.Logout)
	m.emit(ctx, audit.EventLogout, userID, nil, nil)
}

func (m *Manager) RememberUsername(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("Username must not be empty.")
	}
	if err := m.store.SetRememberedUsername(ctx, name); err != nil {
		return apperr.Unknown("Could not remember your username.").WithCause(err)
	}
	return nil
}

func (m *Manager) ClearRememberedUsername(ctx context.Context) {
	m.store.ClearRememberedUsername(ctx)
}

func (m *Manager) RememberedUsername(ctx context.Context) (string, bool) {
	return m.store.RememberedUsername(ctx)
}
