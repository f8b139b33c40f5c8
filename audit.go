package authcore

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/authcore/internal/audit"
)

// AuditEvent is one structured audit record emitted by the Engine.
type AuditEvent = audit.Event

// AuditSink receives audit events from the dispatcher goroutine. Emit must
// be safe for concurrent use when the sink is shared between engines.
type AuditSink = audit.Sink

// Audit event types.
const (
	AuditLoginSuccess         = audit.EventLoginSuccess
	AuditLoginFailure         = audit.EventLoginFailure
	AuditLogout               = audit.EventLogout
	AuditSessionRestored      = audit.EventSessionRestored
	AuditSessionExpired       = audit.EventSessionExpired
	AuditBiometricEnabled     = audit.EventBiometricEnabled
	AuditBiometricDisabled    = audit.EventBiometricDisabled
	AuditBiometricLogin       = audit.EventBiometricLogin
	AuditProfileRefreshed     = audit.EventProfileRefreshed
	AuditRecoveryStep         = audit.EventRecoveryStep
	AuditRecoveryCompleted    = audit.EventRecoveryCompleted
	AuditRegistrationStep     = audit.EventRegistrationStep
	AuditRegistrationComplete = audit.EventRegistrationComplete
)

type NoOpSink = audit.NoOpSink

type ChannelSink = audit.ChannelSink

func NewChannelSink(buffer int) *ChannelSink {
	return audit.NewChannelSink(buffer)
}

type JSONWriterSink = audit.JSONWriterSink

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

type ZerologSink = audit.ZerologSink

// NewZerologSink writes each event as one info-level log entry.
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return audit.NewZerologSink(logger)
}
