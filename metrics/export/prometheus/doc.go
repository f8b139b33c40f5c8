// Package prometheus renders authcore counters and the login latency
// histogram in Prometheus text exposition format.
//
// Counter names are authcore_*_total; the histogram is
// authcore_login_latency_seconds. Debug builds mount [Exporter.Handler] on a
// local listener; release builds usually call [Exporter.Render] and ship the
// text with their diagnostics bundle.
//
// # What this package must NOT do
//
//   - Register anything in a global registry.
//   - Mutate engine state.
package prometheus
