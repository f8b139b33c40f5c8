// Package apperr defines the closed failure taxonomy used wherever an error
// crosses a public boundary of authcore.
//
// # Model
//
// Every failure is an [*Error] carrying exactly one [Code] from a fixed set and
// a non-empty human-readable message. Values are built only through the named
// factories, [FromHTTPStatus], or [From], so the code space stays closed and
// classification is total: anything that cannot be mapped becomes UNKNOWN.
//
// [Result] is the Ok/Err union returned by hook and session operations instead
// of a bare error when the caller needs the failure message for display.
//
// # What this package must NOT do
//
//   - Import any other authcore package.
//   - Localize messages. Locale-specific copy is a presentation concern; only
//     the code to default-message mapping lives here.
package apperr
