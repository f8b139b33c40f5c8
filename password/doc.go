// Package password derives storage keys from passphrases with Argon2id and
// holds the password policy applied by the recovery and registration flows.
//
// # Architecture boundaries
//
// This package owns key derivation and policy checks only. Encrypting data
// with a derived key is the credential store's job.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords or passphrases.
//   - Import any other authcore package.
//   - Log plaintext passwords or derived keys.
package password
