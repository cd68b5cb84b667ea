// Package crypto provides cryptographic operations for credvault.
//
// Encryption uses AES-256-GCM with:
//   - 32-byte key expanded from the master key via HKDF-SHA256
//   - 12-byte random nonce per encryption operation
//   - Authenticated encryption prevents tampering
//
// The master key is a 32-byte random secret produced by the keys package.
// It is never used directly as a cipher key; DeriveKey binds a subkey to
// its purpose through the HKDF info string.
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call Encryptor.Destroy() when done with encryption operations
package crypto
