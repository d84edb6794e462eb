package sessionkey

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"

	"github.com/racp-protocol/racp-go/pkg/identity"
)

// KeySize is the size of a derived session key in bytes.
const KeySize = 32

// kdfInfo binds derived keys to this protocol version. Changing it breaks
// interoperability with peers running the old derivation.
const kdfInfo = "racp-session-key-v1"

// Derivation errors.
var (
	ErrInvalidPeerKeyLength = errors.New("invalid peer exchange key length")
	ErrWeakPeerKey          = errors.New("peer exchange key produces a weak shared secret")
)

// Derive computes the 32-byte session key from the local signing seed and
// the remote peer's X25519 exchange public key.
//
// The local exchange scalar is recomputed from the seed on every call and
// wiped before returning; no long-lived copy of the scalar exists. Low-order
// peer points that would produce an all-zero shared secret are rejected with
// ErrWeakPeerKey.
func Derive(localSeed, remoteExchangePublicKey []byte) ([]byte, error) {
	if len(remoteExchangePublicKey) != identity.ExchangePublicKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d",
			ErrInvalidPeerKeyLength, len(remoteExchangePublicKey), identity.ExchangePublicKeySize)
	}

	scalar, err := identity.ExchangePrivateScalar(localSeed)
	if err != nil {
		return nil, err
	}
	defer identity.Wipe(scalar)

	shared, err := curve25519.X25519(scalar, remoteExchangePublicKey)
	if err != nil {
		// curve25519.X25519 errors only on an all-zero shared secret,
		// i.e. a low-order peer point.
		return nil, fmt.Errorf("%w: %v", ErrWeakPeerKey, err)
	}
	defer identity.Wipe(shared)

	r := hkdf.New(sha256.New, shared, nil, []byte(kdfInfo))
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to expand session key: %w", err)
	}

	return key, nil
}
