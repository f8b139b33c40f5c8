package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/authcore/apperr"
	"github.com/MrEthical07/authcore/biometric"
	"github.com/MrEthical07/authcore/credstore"
	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/jwt"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/remote"
)

var (
	ErrMissingStore   = errors.New("session: credential store is required")
	ErrMissingService = errors.New("session: auth service is required")
)

const (
	defaultBiometricPrompt = "Confirm your identity"
	defaultTokenLeeway     = 30 * time.Second
)

// Options wires a Manager. Store and Service are required.
type Options struct {
	Store   *credstore.Store
	Service remote.AuthService
	Gate    *biometric.Gate

	// Inspector reads token expiry. Defaults to a 30s leeway.
	Inspector *jwt.Inspector

	Metrics *metrics.Metrics
	Audit   audit.Emitter
	Logger  *zerolog.Logger

	BiometricPrompt string
	Now             func() time.Time
}

// LoginOptions carries per-call login choices.
type LoginOptions struct {
	RememberUser bool
}

// Manager owns the signed-in state. It is safe for concurrent use.
type Manager struct {
	store     *credstore.Store
	service   remote.AuthService
	gate      *biometric.Gate
	inspector *jwt.Inspector
	metrics   *metrics.Metrics
	audit     audit.Emitter
	log       zerolog.Logger
	prompt    string
	now       func() time.Time
}

func New(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, ErrMissingStore
	}
	if opts.Service == nil {
		return nil, ErrMissingService
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Manager{
		store:     opts.Store,
		service:   opts.Service,
		gate:      opts.Gate,
		inspector: opts.Inspector,
		metrics:   opts.Metrics,
		audit:     opts.Audit,
		log:       logger.With().Str("component", "session").Logger(),
		prompt:    opts.BiometricPrompt,
		now:       now,
	}
	if m.gate == nil {
		m.gate = biometric.NewGate(nil, &logger)
	}
	if m.inspector == nil {
		m.inspector = jwt.NewInspector(defaultTokenLeeway, now)
	}
	if m.prompt == "" {
		m.prompt = defaultBiometricPrompt
	}
	return m, nil
}

// Gate returns the biometric gate used for opt-in and biometric login.
func (m *Manager) Gate() *biometric.Gate {
	return m.gate
}

func (m *Manager) emit(ctx context.Context, eventType, userID string, failure *apperr.Error, meta map[string]string) {
	if m.audit == nil {
		return
	}
	ev := audit.NewEvent(eventType, failure == nil)
	ev.UserID = userID
	if id, ok := m.store.Get(ctx, credstore.KeyDeviceID); ok {
		ev.DeviceID = id
	}
	if failure != nil {
		ev.ErrorCode = string(failure.Code())
	}
	ev.Metadata = meta
	m.audit.Emit(ctx, ev)
}

// storeFailure reports a must-succeed write that failed.
func (m *Manager) storeFailure(message string, err error) *apperr.Error {
	m.metrics.Inc(metrics.StoreWriteFailure)
	m.log.Error().Err(err).Msg(message)
	return apperr.Unknown(message).WithCause(err)
}
