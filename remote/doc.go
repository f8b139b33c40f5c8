// Package remote declares the contract authcore expects from the remote auth
// service, together with its request and response shapes.
//
// # Architecture boundaries
//
// The transport (HTTP client, retries, backoff, timeouts) is owned by the
// implementer of [AuthService]. Implementations report failures as plain
// errors; [StatusError] is provided for transports that know the HTTP status,
// and apperr.From normalizes whatever is returned.
//
// # What this package must NOT do
//
//   - Perform I/O. This package only declares types.
//   - Import the root authcore package.
package remote
