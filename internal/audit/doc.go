// Package audit delivers session and flow events to a caller supplied sink
// without blocking the operation that produced them.
//
// # Components
//
//   - [Event]: one record with id, timestamp, type, user, device and outcome.
//   - [Sink]: event consumer (channel, JSON lines, zerolog, no-op).
//   - [Dispatcher]: buffered relay with drop-if-full or block-if-full behavior.
//
// # Architecture boundaries
//
// This package owns buffering and delivery. Which events are emitted is
// decided by the session manager and the flow controllers.
//
// # What this package must NOT do
//
//   - Record tokens, passwords, verification codes or other secrets.
//   - Import the root authcore package or any sibling internal package.
package audit
