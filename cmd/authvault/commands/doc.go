// Package commands defines the authvault CLI, a support tool that inspects
// and repairs the credential store of a development install.
//
// Commands
//
//   - keys           List the logical keys and whether each is set
//   - get KEY        Print one stored value
//   - set KEY VALUE  Write one value through the routing store
//   - delete KEY     Remove a key from every backend
//   - show-session   Summarize the restored session without printing the token
//   - clear-session  End the session (--all also forgets the username)
//
// # Configuration
//
// Flags override AUTHVAULT_HOME, AUTHVAULT_PASSPHRASE, AUTHVAULT_REDIS_ADDR,
// AUTHVAULT_REDIS_PREFIX and AUTHVAULT_LOG_LEVEL. A .env file in the working
// directory is loaded first when present. With a passphrase, small values
// live in an encrypted vault under the home directory; the fallback backend
// is Redis when an address is set and a JSON file otherwise.
package commands
