// Package biometric wraps platform biometric hardware behind a small state
// machine (Idle, Authenticating, Resolved) that never panics or returns
// errors to its caller.
//
// # Availability
//
// CheckAvailability is true only when the hardware reports both a sensor and
// at least one enrolled biometric. Any probe error or panic yields false.
// Callers must treat false as "biometric login is unavailable" and fall back
// to the password path.
//
// # Outcomes
//
// Authenticate always resolves to an Outcome. Cancellation by the user and
// cancellation by the system are reported with distinct reasons so screens
// can stay silent on them while showing an error for a failed match.
//
// # What this package must NOT do
//
//   - Succeed when the hardware is absent. Always-succeeding hardware for
//     emulators is compiled only with the biometricdev build tag.
//   - Read or write the credential store; the session package owns that.
package biometric
