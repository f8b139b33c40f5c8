package internaldefs

import (
	"github.com/MrEthical07/authcore/metrics"
)

// CounterDef names one exported counter.
type CounterDef struct {
	ID   metrics.ID
	Name string
	Help string
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   metrics.ID
	Name string
	Help string
}

var CounterDefs = []CounterDef{
	{ID: metrics.LoginSuccess, Name: "authcore_login_success_total", Help: "Successful logins."},
	{ID: metrics.LoginFailure, Name: "authcore_login_failure_total", Help: "Failed logins."},
	{ID: metrics.LoginInvalidCredentials, Name: "authcore_login_invalid_credentials_total", Help: "Logins rejected for invalid credentials."},
	{ID: metrics.Logout, Name: "authcore_logout_total", Help: "Logouts."},
	{ID: metrics.SessionRestored, Name: "authcore_session_restored_total", Help: "Sessions restored at startup."},
	{ID: metrics.SessionExpired, Name: "authcore_session_expired_total", Help: "Stored sessions found expired."},
	{ID: metrics.BiometricEnabled, Name: "authcore_biometric_enabled_total", Help: "Biometric login opt-ins."},
	{ID: metrics.BiometricDisabled, Name: "authcore_biometric_disabled_total", Help: "Biometric login opt-outs."},
	{ID: metrics.BiometricSuccess, Name: "authcore_biometric_success_total", Help: "Successful biometric challenges."},
	{ID: metrics.BiometricFailure, Name: "authcore_biometric_failure_total", Help: "Failed or cancelled biometric challenges."},
	{ID: metrics.BiometricUnavailable, Name: "authcore_biometric_unavailable_total", Help: "Biometric requests on unavailable hardware."},
	{ID: metrics.RecoveryCodeSent, Name: "authcore_recovery_code_sent_total", Help: "Recovery codes requested."},
	{ID: metrics.RecoveryCodeVerified, Name: "authcore_recovery_code_verified_total", Help: "Recovery codes verified."},
	{ID: metrics.RecoveryPasswordReset, Name: "authcore_recovery_password_reset_total", Help: "Passwords reset through recovery."},
	{ID: metrics.RecoveryFailure, Name: "authcore_recovery_failure_total", Help: "Failed recovery steps."},
	{ID: metrics.RegistrationClientValidated, Name: "authcore_registration_client_validated_total", Help: "Client identifications accepted."},
	{ID: metrics.RegistrationCodeSent, Name: "authcore_registration_code_sent_total", Help: "Registration verification codes sent."},
	{ID: metrics.RegistrationAccountCreated, Name: "authcore_registration_account_created_total", Help: "Accounts created."},
	{ID: metrics.RegistrationEmailVerified, Name: "authcore_registration_email_verified_total", Help: "Registration emails verified."},
	{ID: metrics.RegistrationFailure, Name: "authcore_registration_failure_total", Help: "Failed registration steps."},
	{ID: metrics.StoreWriteFailure, Name: "authcore_store_write_failure_total", Help: "Must-succeed credential writes that failed."},
}

var HistogramDefs = []HistogramDef{
	{ID: metrics.LoginLatency, Name: "authcore_login_latency_seconds", Help: "Login round-trip latency."},
}

var HistogramBounds = []string{
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"1",
	"2.5",
	"5",
	"+Inf",
}

var HistogramBoundSuffix = []string{
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"1",
	"2_5",
	"5",
	"inf",
}

// NormalizeBuckets pads or truncates raw to the fixed bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets turns per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
