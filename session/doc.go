// Package session is the only place that mutates the coupled token and
// profile pair.
//
// A [Manager] sequences the remote auth collaborator, the credential store
// and the biometric gate for login, logout, session restore and the
// biometric opt-in. Every public method either returns an apperr.Result, an
// error that is an *apperr.Error, or a value that cannot fail.
//
// # Ordering
//
// Login returns only after the token and the profile are written, so a
// LoadSession issued right after a successful Login observes them.
// Concurrent Login and Logout calls are last-writer-wins at the store; the
// manager does not serialize them.
//
// # What this package must NOT do
//
//   - Retry remote calls. Timeouts belong to the collaborator.
//   - Clear the remembered username or the onboarding flag on logout.
package session
