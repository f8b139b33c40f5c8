package authcore

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/authcore/apperr"
	"github.com/MrEthical07/authcore/biometric"
	"github.com/MrEthical07/authcore/credstore"
	"github.com/MrEthical07/authcore/flows"
	"github.com/MrEthical07/authcore/hooks"
	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/profile"
	"github.com/MrEthical07/authcore/remote"
	"github.com/MrEthical07/authcore/session"
)

// LoginOptions carries per-call login choices.
type LoginOptions = session.LoginOptions

// Engine is the composed authentication core of one app installation.
//
// Engine methods are safe for concurrent use after Build.
type Engine struct {
	config Config

	store        *credstore.Store
	secure       credstore.Backend
	fallbackName string

	service remote.AuthService
	session *session.Manager
	gate    *biometric.Gate

	metrics *metrics.Metrics
	audit   *audit.Dispatcher
	logger  zerolog.Logger
	now     func() time.Time
}

func (e *Engine) emitter() audit.Emitter {
	if e.audit == nil {
		return nil
	}
	return e.audit
}

// Config returns a copy of the configuration the Engine was built with.
func (e *Engine) Config() Config {
	return cloneConfig(e.config)
}

// Session returns the session lifecycle manager.
func (e *Engine) Session() *session.Manager {
	return e.session
}

// Store returns the credential store.
func (e *Engine) Store() *credstore.Store {
	return e.store
}

// Biometric returns the biometric gate shared by opt-in and biometric login.
func (e *Engine) Biometric() *biometric.Gate {
	return e.gate
}

// Login signs in with a username, email or account number and a secret.
func (e *Engine) Login(ctx context.Context, identifier, secret string, opts LoginOptions) apperr.Result[*profile.User] {
	return e.session.Login(ctx, identifier, secret, opts)
}

// Logout ends the session. The remembered username, onboarding flag and
// device id survive.
func (e *Engine) Logout(ctx context.Context) {
	e.session.Logout(ctx)
}

// LoadSession reads the persisted session without contacting the server.
func (e *Engine) LoadSession(ctx context.Context) credstore.Session {
	return e.session.LoadSession(ctx)
}

// CheckSession is LoadSession plus token expiry.
func (e *Engine) CheckSession(ctx context.Context) apperr.Result[credstore.Session] {
	return e.session.CheckSession(ctx)
}

func (e *Engine) EnableBiometric(ctx context.Context) error {
	return e.session.EnableBiometric(ctx)
}

func (e *Engine) DisableBiometric(ctx context.Context) error {
	return e.session.DisableBiometric(ctx)
}

func (e *Engine) BiometricLogin(ctx context.Context) apperr.Result[*profile.User] {
	return e.session.BiometricLogin(ctx)
}

// RegistrationHook returns a registration hook over the Engine's service.
// A nil logger in opts is replaced by the Engine logger.
func (e *Engine) RegistrationHook(opts hooks.Options) *hooks.Registration {
	return hooks.NewRegistration(e.service, e.hookOptions(opts))
}

// RecoveryHook returns a password recovery hook over the Engine's service.
func (e *Engine) RecoveryHook(opts hooks.Options) *hooks.Recovery {
	return hooks.NewRecovery(e.service, e.hookOptions(opts))
}

func (e *Engine) hookOptions(opts hooks.Options) hooks.Options {
	if opts.Logger == nil {
		l := e.logger
		opts.Logger = &l
	}
	return opts
}

// NewRecoveryFlow starts a password recovery wizard. onSuccess may be nil.
func (e *Engine) NewRecoveryFlow(onSuccess func()) *flows.Recovery {
	return flows.NewRecovery(e.RecoveryHook(hooks.Options{}), e.flowOptions(e.config.Recovery.Password, onSuccess))
}

// NewRegistrationFlow starts a sign-up wizard. onSuccess may be nil.
func (e *Engine) NewRegistrationFlow(onSuccess func()) *flows.Registration {
	return flows.NewRegistration(e.RegistrationHook(hooks.Options{}), e.flowOptions(e.config.Registration.Password, onSuccess))
}

func (e *Engine) flowOptions(p PasswordPolicyConfig, onSuccess func()) flows.Options {
	l := e.logger
	return flows.Options{
		Policy:    p.policy(),
		Metrics:   e.metrics,
		Audit:     e.emitter(),
		Logger:    &l,
		Now:       e.now,
		OnSuccess: onSuccess,
	}
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() metrics.Snapshot {
	if e == nil {
		return (*metrics.Metrics)(nil).Snapshot()
	}
	return e.metrics.Snapshot()
}

// AuditDropped returns how many audit events were dropped because the
// dispatcher queue was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// locker is implemented by secure backends that cache key material.
type locker interface {
	Lock()
}

// Close drains pending audit events and wipes cached key material of the
// secure backend. The Engine must not be used afterwards.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
	if l, ok := e.secure.(locker); ok {
		l.Lock()
	}
}
