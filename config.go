package authcore

import (
	"errors"
	"time"

	"github.com/MrEthical07/authcore/credstore"
	"github.com/MrEthical07/authcore/password"
)

// Config holds every tunable of an Engine.
//
// Config values are copied by the Builder; mutating a Config after WithConfig
// has no effect on an Engine.
type Config struct {
	Storage      StorageConfig
	Session      SessionConfig
	Biometric    BiometricConfig
	Recovery     RecoveryConfig
	Registration RegistrationConfig
	Audit        AuditConfig
	Metrics      MetricsConfig
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig controls how credential values are routed.
type StorageConfig struct {
	// SecureSizeLimit is the value size, in bytes, from which values are
	// written to the fallback backend instead of the secure one.
	SecureSizeLimit int

	// RedisPrefix namespaces keys when the fallback backend is Redis.
	RedisPrefix string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls session restoration.
type SessionConfig struct {
	// TokenLeeway is subtracted from a token's expiry before it is
	// considered expired.
	TokenLeeway time.Duration
}

/*
====================================
BIOMETRIC CONFIG
====================================
*/

type BiometricConfig struct {
	PromptText string
}

/*
====================================
FLOW CONFIG
====================================
*/

// PasswordPolicyConfig is the client-side rule set applied when a flow asks
// the user for a new password.
type PasswordPolicyConfig struct {
	MinLength     int
	RequireLetter bool
	RequireDigit  bool
}

func (p PasswordPolicyConfig) policy() password.Policy {
	return password.Policy{
		MinLength:     p.MinLength,
		RequireLetter: p.RequireLetter,
		RequireDigit:  p.RequireDigit,
	}
}

type RecoveryConfig struct {
	Password PasswordPolicyConfig
}

type RegistrationConfig struct {
	Password PasswordPolicyConfig
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

const (
	defaultPromptText  = "Confirm your identity"
	defaultMinPassword = 8
	defaultAuditBuffer = 256
	defaultTokenLeeway = 30 * time.Second
	defaultRedisPrefix = "acs"

	maxTokenLeeway     = 10 * time.Minute
	maxPasswordLength  = 128
	maxAuditBufferSize = 1 << 20
	maxSecureSizeLimit = 1 << 20
)

func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			SecureSizeLimit: credstore.DefaultSecureSizeLimit,
			RedisPrefix:     defaultRedisPrefix,
		},
		Session: SessionConfig{
			TokenLeeway: defaultTokenLeeway,
		},
		Biometric: BiometricConfig{
			PromptText: defaultPromptText,
		},
		Recovery: RecoveryConfig{
			Password: PasswordPolicyConfig{MinLength: defaultMinPassword},
		},
		Registration: RegistrationConfig{
			Password: PasswordPolicyConfig{MinLength: defaultMinPassword},
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: defaultAuditBuffer,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig returns the configuration an Engine uses when WithConfig is
// never called.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	return cfg
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Storage.SecureSizeLimit <= 0 {
		return errors.New("Storage.SecureSizeLimit must be > 0")
	}
	if c.Storage.SecureSizeLimit > maxSecureSizeLimit {
		return errors.New("Storage.SecureSizeLimit must be <= 1MiB")
	}
	if c.Storage.RedisPrefix == "" {
		return errors.New("Storage.RedisPrefix must not be empty")
	}

	if c.Session.TokenLeeway < 0 {
		return errors.New("Session.TokenLeeway must be >= 0")
	}
	if c.Session.TokenLeeway > maxTokenLeeway {
		return errors.New("Session.TokenLeeway must be <= 10m")
	}

	if c.Biometric.PromptText == "" {
		return errors.New("Biometric.PromptText must not be empty")
	}

	if err := validatePolicy("Recovery.Password", c.Recovery.Password); err != nil {
		return err
	}
	if err := validatePolicy("Registration.Password", c.Registration.Password); err != nil {
		return err
	}

	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit.BufferSize must be > 0 when audit is enabled")
		}
		if c.Audit.BufferSize > maxAuditBufferSize {
			return errors.New("Audit.BufferSize is too large")
		}
	}

	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics.EnableLatencyHistograms requires Metrics.Enabled")
	}

	return nil
}

func validatePolicy(section string, p PasswordPolicyConfig) error {
	if p.MinLength <= 0 {
		return errors.New(section + ".MinLength must be > 0")
	}
	if p.MinLength > maxPasswordLength {
		return errors.New(section + ".MinLength must be <= 128")
	}
	return nil
}
