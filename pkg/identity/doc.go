// Package identity manages the long-lived signing keypair of a RACP peer
// and the exchange keypair derived from it.
//
// # Key material
//
// Each peer holds a single Ed25519 signing keypair generated from a 32-byte
// seed. The companion X25519 exchange public key is a deterministic
// transform of the same seed: SHA-512(seed), truncated to 32 bytes and
// clamped per RFC 7748, used as the Montgomery-curve private scalar.
//
// The exchange private scalar is never stored. It is recomputed from the
// seed on demand (see ExchangePrivateScalar), which keeps the window in
// which duplicate secret material exists in memory as short as possible.
//
// # Byte-length contracts
//
//   - signing public key: 32 bytes
//   - signing private key: 64 bytes (32-byte seed followed by the public key)
//   - exchange public key: 32 bytes
//   - signature: 64 bytes
//
// Verify fails closed: malformed lengths, tampered messages, and corrupted
// signatures all return false rather than an error, so attacker-controlled
// input cannot reach a distinguishable failure path.
package identity
