// Package flows implements the registration and password recovery wizards
// as finite state machines over explicit step enums.
//
// # Transition rule
//
// Each step owns a local validation over its form fields, exactly one bound
// auth operation, a success transition to the next step and a failure path
// that sets the step error and keeps the cursor where it is. Validation
// always runs before the operation, so invalid input never reaches the
// network. Step N+1's operation is never started before step N's resolved.
//
// Back is always available before the terminal step. It clears the current
// error; entered data is kept except the verification code on the code
// step. A result that arrives after Back or Dispose is ignored.
//
// The success step has no outbound transition. OnSuccess runs the caller's
// callback once; the controller never navigates by itself.
//
// # What this package must NOT do
//
//   - Persist anything. Successful registration does not sign the user in.
//   - Retry a failed operation on its own.
package flows
