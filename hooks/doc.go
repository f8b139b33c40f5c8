// Package hooks wraps remote auth operations so each call reports a loading
// flag and at most one current error message, and never panics or returns a
// raw error.
//
// Every operation runs the same steps: clear the error, set loading, call
// the collaborator, then clear loading and either return Ok or classify the
// failure with apperr.From and keep its message as the current error.
// Loading is cleared in a deferred function, so a panicking collaborator
// cannot leave it set.
//
// There is no in-flight guard. Two overlapping calls are allowed and the one
// that resolves last decides the final state. Flow controllers disable their
// submit path while a call is running.
package hooks
