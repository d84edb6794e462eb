package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/racp-protocol/racp-go/pkg/identity"
	"github.com/racp-protocol/racp-go/pkg/log"
)

// Record errors.
var (
	ErrInvalidRecord = errors.New("invalid session record")
)

// Record describes one established pairing.
type Record struct {
	// ID uniquely identifies the pairing (UUID).
	ID string `json:"id"`

	// Role is this peer's role in the pairing.
	Role log.Role `json:"role"`

	// PeerSigningPublicKey is the peer's Ed25519 public key (32 bytes).
	PeerSigningPublicKey []byte `json:"peer_signing_public_key,omitempty"`

	// PeerExchangePublicKey is the peer's X25519 public key (32 bytes).
	PeerExchangePublicKey []byte `json:"peer_exchange_public_key"`

	// EstablishedAt is when the pairing reached PAIRED.
	EstablishedAt time.Time `json:"established_at"`
}

// NewRecord creates a record with a fresh UUID for a pairing established now.
func NewRecord(role log.Role, peerSigningKey, peerExchangeKey []byte, establishedAt time.Time) (*Record, error) {
	if len(peerExchangeKey) != identity.ExchangePublicKeySize {
		return nil, fmt.Errorf("%w: peer exchange key must be %d bytes",
			ErrInvalidRecord, identity.ExchangePublicKeySize)
	}
	if len(peerSigningKey) != 0 && len(peerSigningKey) != identity.SigningPublicKeySize {
		return nil, fmt.Errorf("%w: peer signing key must be %d bytes",
			ErrInvalidRecord, identity.SigningPublicKeySize)
	}

	return &Record{
		ID:                    uuid.NewString(),
		Role:                  role,
		PeerSigningPublicKey:  append([]byte(nil), peerSigningKey...),
		PeerExchangePublicKey: append([]byte(nil), peerExchangeKey...),
		EstablishedAt:         establishedAt,
	}, nil
}
