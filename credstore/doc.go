// Package credstore persists the client's credentials (auth token, user
// profile, biometric flag, remembered username, onboarding flag, device id)
// over two physical backends without exposing which one holds a value.
//
// # Routing
//
// A write goes to the secure backend when one is configured and the value is
// shorter than the secure size limit; otherwise it goes to the fallback
// backend. The decision is per write, so reads always probe both (secure
// first). After a successful write the copy in the other backend is removed
// so an older value can never shadow the new one.
//
// # Failure policy
//
//   - Reads never fail: a backend error is logged and treated as absence for
//     that backend only.
//   - Token, profile and biometric writes return errors; the caller decides
//     whether the failure is fatal.
//   - Deletes, session clears and the onboarding flag are best-effort. A key
//     whose delete failed is tombstoned in-process so it reads as absent.
//
// # Session coupling
//
// The token and the profile are only ever reported together: LoadSession
// yields a user only when both are present, and both clears remove the token
// first so a partial failure cannot leave a profile that looks signed in.
//
// # What this package must NOT do
//
//   - Log stored values.
//   - Make authentication decisions; the session package owns those.
package credstore
