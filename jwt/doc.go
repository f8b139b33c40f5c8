// Package jwt reads the registered claims of access tokens held by the client
// without verifying their signature.
//
// The client never holds the server's verification key, so nothing here is a
// trust decision: the expiry is only used to stop presenting a token the
// server will reject anyway. Opaque (non-JWT) tokens are reported as having
// no expiry.
package jwt
