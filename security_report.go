package authcore

import (
	"context"
	"time"

	"github.com/MrEthical07/authcore/credstore"
)

// SecurityReport summarizes the storage and session posture of an Engine,
// for diagnostics screens and support tooling. It never contains stored
// values.
type SecurityReport struct {
	SecureBackend      bool
	VaultBackend       bool
	FallbackBackend    string
	SecureSizeLimit    int
	TokenLeeway        time.Duration
	BiometricCapable   bool
	BiometricEnrolled  bool
	AuditEnabled       bool
	MetricsEnabled     bool
	RecoveryPolicy     PasswordPolicyConfig
	RegistrationPolicy PasswordPolicyConfig
}

// SecurityReport probes biometric availability through the gate; the
// remaining fields come from configuration and stored flags.
func (e *Engine) SecurityReport(ctx context.Context) SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	_, vault := e.secure.(*credstore.Vault)

	return SecurityReport{
		SecureBackend:      e.store.HasSecureBackend(),
		VaultBackend:       vault,
		FallbackBackend:    e.fallbackName,
		SecureSizeLimit:    e.config.Storage.SecureSizeLimit,
		TokenLeeway:        e.config.Session.TokenLeeway,
		BiometricCapable:   e.gate.CheckAvailability(ctx),
		BiometricEnrolled:  e.store.BiometricEnabled(ctx),
		AuditEnabled:       e.audit != nil,
		MetricsEnabled:     e.metrics.Enabled(),
		RecoveryPolicy:     e.config.Recovery.Password,
		RegistrationPolicy: e.config.Registration.Password,
	}
}
