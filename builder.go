package authcore

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/MrEthical07/authcore/biometric"
	"github.com/MrEthical07/authcore/credstore"
	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/jwt"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/remote"
	"github.com/MrEthical07/authcore/session"
)

// Builder collects the collaborators of an Engine.
//
// A Builder is configured during initialization and used for exactly one
// Build. It is not safe for concurrent use.
type Builder struct {
	config Config

	secure   credstore.Backend
	fallback credstore.Backend
	redis    redis.UniversalClient

	service   remote.AuthService
	hardware  biometric.Hardware
	auditSink AuditSink
	logger    *zerolog.Logger
	now       func() time.Time

	built bool
}

// New returns a Builder carrying the default Config.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithSecureBackend sets the backend for small values, typically a
// credstore.Vault or a platform keychain adapter. Without one every value is
// written to the fallback backend.
func (b *Builder) WithSecureBackend(backend credstore.Backend) *Builder {
	b.secure = backend
	return b
}

// WithFallbackBackend sets the plain backend. It takes precedence over
// WithRedis.
func (b *Builder) WithFallbackBackend(backend credstore.Backend) *Builder {
	b.fallback = backend
	return b
}

// WithRedis uses client as the fallback backend, namespaced by
// Config.Storage.RedisPrefix.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

func (b *Builder) WithAuthService(svc remote.AuthService) *Builder {
	b.service = svc
	return b
}

// WithBiometricHardware sets the platform biometric capability. Without it
// biometrics report as unavailable.
func (b *Builder) WithBiometricHardware(hw biometric.Hardware) *Builder {
	b.hardware = hw
	return b
}

func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = &logger
	return b
}

// WithAuditSink sets where audit events go. Events are only dispatched when
// Config.Audit.Enabled is set.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithClock replaces time.Now for token expiry and flow date checks.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build validates the configuration and wires the Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.service == nil {
		return nil, ErrMissingService
	}

	fallback := b.fallback
	fallbackName := "custom"
	if fallback == nil {
		if b.redis == nil {
			return nil, ErrMissingFallback
		}
		fallback = credstore.NewRedis(b.redis, cfg.Storage.RedisPrefix)
		fallbackName = "redis"
	}

	logger := zerolog.Nop()
	if b.logger != nil {
		logger = *b.logger
	}
	now := b.now
	if now == nil {
		now = time.Now
	}

	// -------- STORE --------
	store, err := credstore.New(credstore.Options{
		Secure:          b.secure,
		Fallback:        fallback,
		SecureSizeLimit: cfg.Storage.SecureSizeLimit,
		Logger:          &logger,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:       cloneConfig(cfg),
		store:        store,
		secure:       b.secure,
		fallbackName: fallbackName,
		service:      b.service,
		logger:       logger,
		now:          now,
	}

	// -------- OBSERVABILITY --------
	engine.metrics = metrics.New(metrics.Config{
		Enabled:                 cfg.Metrics.Enabled,
		EnableLatencyHistograms: cfg.Metrics.EnableLatencyHistograms,
	})
	engine.audit = audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
		Logger:     &logger,
	}, b.auditSink)

	// -------- SESSION --------
	engine.gate = biometric.NewGate(b.hardware, &logger)
	manager, err := session.New(session.Options{
		Store:           store,
		Service:         b.service,
		Gate:            engine.gate,
		Inspector:       jwt.NewInspector(cfg.Session.TokenLeeway, now),
		Metrics:         engine.metrics,
		Audit:           engine.emitter(),
		Logger:          &logger,
		BiometricPrompt: cfg.Biometric.PromptText,
		Now:             now,
	})
	if err != nil {
		engine.audit.Close()
		return nil, err
	}
	engine.session = manager

	b.built = true

	return engine, nil
}
