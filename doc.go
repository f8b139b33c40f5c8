// Package authcore is the authentication session core of a mobile banking
// client: credential persistence, session restore, biometric re-auth, and
// the password recovery and registration wizards.
//
// Engine methods are safe to call from multiple goroutines after
// initialization through [Builder.Build].
//
// # Architecture boundaries
//
// authcore is the composition root. It wires [credstore], [biometric],
// [session], [hooks] and [flows] around one remote.AuthService and exposes
// [Engine], [Builder] and [Config]. Audit dispatch lives under internal/ and
// is reached only through the aliases in this package.
//
// # What this package must NOT do
//
//   - Render UI, navigate, or own any transport; the remote service is an
//     injected interface.
//   - Log or report stored values (tokens, profiles, usernames).
//   - Import any sub-package that re-imports authcore (no import cycles).
//     Only the metrics exporters depend on the root package.
package authcore
