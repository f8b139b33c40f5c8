// Package metrics holds the in-process counters for session, biometric,
// recovery and registration outcomes.
//
// Counters are fixed-size arrays of cache-line padded uint64 values updated
// with sync/atomic, so recording never allocates or locks. A nil *Metrics and
// a disabled *Metrics both accept every call and record nothing.
//
// Exporters under metrics/export read [Metrics.Snapshot]; they never write.
//
// # What this package must NOT do
//
//   - Import the root authcore package or any exporter.
//   - Perform I/O.
package metrics
