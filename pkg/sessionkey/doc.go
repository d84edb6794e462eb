// Package sessionkey derives the shared symmetric session key that both
// peers compute independently after a successful pairing code exchange.
//
// Derivation is a pure function: the local X25519 private scalar is
// recomputed from the signing seed, combined with the remote exchange
// public key via X25519 Diffie-Hellman, and the resulting shared secret is
// stretched to 32 bytes with HKDF-SHA256 under a fixed protocol info
// string. Both directions yield the same key:
//
//	Derive(A.seed, B.exchangePub) == Derive(B.seed, A.exchangePub)
//
// The session key is never transmitted.
package sessionkey
