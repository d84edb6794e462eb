package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
)

// Key size constants.
const (
	// SeedSize is the size of the signing key seed in bytes.
	SeedSize = 32

	// SigningPublicKeySize is the size of an Ed25519 public key in bytes.
	SigningPublicKeySize = ed25519.PublicKeySize

	// SigningPrivateKeySize is the size of an Ed25519 private key in bytes
	// (seed followed by public key).
	SigningPrivateKeySize = ed25519.PrivateKeySize

	// ExchangePublicKeySize is the size of an X25519 public key in bytes.
	ExchangePublicKeySize = 32

	// SignatureSize is the size of an Ed25519 signature in bytes.
	SignatureSize = ed25519.SignatureSize
)

// Key errors.
var (
	ErrInvalidSeedLength       = errors.New("invalid seed length")
	ErrInvalidPrivateKeyLength = errors.New("invalid signing private key length")
)

// KeyPair holds a peer's signing keypair and the exchange public key
// derived from the same seed.
type KeyPair struct {
	// SigningPublicKey is the Ed25519 public key (32 bytes).
	SigningPublicKey []byte

	// SigningPrivateKey is the Ed25519 private key (64 bytes, seed || public).
	SigningPrivateKey []byte

	// ExchangePublicKey is the X25519 public key derived from the signing
	// seed (32 bytes).
	ExchangePublicKey []byte
}

// Seed returns the 32-byte seed half of the signing private key.
func (kp *KeyPair) Seed() []byte {
	return kp.SigningPrivateKey[:SeedSize]
}

// Generate creates a new keypair from a cryptographically secure random
// seed. If rng is nil, crypto/rand is used. A failed read from the random
// source is fatal and propagates as an error.
func Generate(rng io.Reader) (*KeyPair, error) {
	if rng == nil {
		rng = rand.Reader
	}

	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, fmt.Errorf("failed to read key seed: %w", err)
	}

	return GenerateFromSeed(seed)
}

// GenerateFromSeed derives a keypair from a 32-byte seed. The derivation is
// deterministic: the same seed always yields byte-identical output.
func GenerateFromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSeedLength, len(seed), SeedSize)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := make([]byte, SigningPublicKeySize)
	copy(pub, priv[SeedSize:])

	scalar, err := ExchangePrivateScalar(seed)
	if err != nil {
		return nil, err
	}
	defer Wipe(scalar)

	exchangePub, err := curve25519.X25519(scalar, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive exchange public key: %w", err)
	}

	return &KeyPair{
		SigningPublicKey:  pub,
		SigningPrivateKey: []byte(priv),
		ExchangePublicKey: exchangePub,
	}, nil
}

// ExchangePrivateScalar recomputes the X25519 private scalar from the
// signing seed: SHA-512(seed) truncated to 32 bytes and clamped per
// RFC 7748. The caller owns the returned buffer and should wipe it when
// done.
func ExchangePrivateScalar(seed []byte) ([]byte, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSeedLength, len(seed), SeedSize)
	}

	h := sha512.Sum512(seed)
	scalar := make([]byte, 32)
	copy(scalar, h[:32])

	// Clamp per RFC 7748.
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64

	Wipe(h[:])
	return scalar, nil
}

// Sign signs message with the given 64-byte signing private key and returns
// a 64-byte Ed25519 signature. A wrong private key length indicates
// programmer misuse and returns an error.
func Sign(message, signingPrivateKey []byte) ([]byte, error) {
	if len(signingPrivateKey) != SigningPrivateKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d",
			ErrInvalidPrivateKeyLength, len(signingPrivateKey), SigningPrivateKeySize)
	}
	return ed25519.Sign(ed25519.PrivateKey(signingPrivateKey), message), nil
}

// Verify reports whether signature is a valid Ed25519 signature of message
// under signingPublicKey. It returns false for malformed key or signature
// lengths and never panics on attacker-controlled input.
func Verify(message, signature, signingPublicKey []byte) bool {
	if len(signingPublicKey) != SigningPublicKeySize {
		return false
	}
	if len(signature) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(signingPublicKey), message, signature)
}
