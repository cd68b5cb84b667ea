// Package keys manages the lifecycle of the store's master key.
//
// The key is 32 random bytes, generated once and never rotated. It lives
// either in a file restricted to its owner (the default) or in the OS
// keyring. Losing it makes the encrypted blob unrecoverable; there is no
// escrow.
package keys
