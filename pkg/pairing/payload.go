package pairing

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/racp-protocol/racp-go/pkg/identity"
)

// Payload constants.
const (
	// PayloadVersion is the current pairing payload format version.
	PayloadVersion = 1
)

// Payload errors.
var (
	ErrInvalidPayload     = errors.New("invalid pairing payload format")
	ErrUnsupportedVersion = errors.New("unsupported payload version")
)

// Payload is the machine-readable pairing payload a device displays,
// typically rendered as a QR code by the host UI. It carries the pairing
// code and the device's exchange public key so the controller can
// pre-validate the key it later receives in the handshake.
type Payload struct {
	// Version is the payload format version (currently 1).
	Version int

	// Code is the 6-digit pairing code.
	Code Code

	// ExchangePublicKey is the device's X25519 exchange public key.
	ExchangePublicKey []byte
}

// payloadRegex matches the RACP payload format. The key is 32 bytes of
// unpadded base64url, always 43 characters.
var payloadRegex = regexp.MustCompile(`^RACP:(\d+):(\d{6}):([A-Za-z0-9_-]{43})$`)

// ParsePayload parses a RACP pairing payload string.
// Format: RACP:<version>:<code>:<base64url exchange public key>
func ParsePayload(data string) (*Payload, error) {
	data = strings.TrimSpace(data)

	matches := payloadRegex.FindStringSubmatch(data)
	if matches == nil {
		return nil, fmt.Errorf("%w: expected RACP:<version>:<code>:<key>", ErrInvalidPayload)
	}

	version, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid version: %v", ErrInvalidPayload, err)
	}
	if version != PayloadVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}

	code, err := ParseCode(matches[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	key, err := base64.RawURLEncoding.DecodeString(matches[3])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid key encoding: %v", ErrInvalidPayload, err)
	}
	if len(key) != identity.ExchangePublicKeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes", ErrInvalidPayload, identity.ExchangePublicKeySize)
	}

	return &Payload{
		Version:           version,
		Code:              code,
		ExchangePublicKey: key,
	}, nil
}

// String returns the payload in wire form.
func (p *Payload) String() string {
	return fmt.Sprintf("RACP:%d:%s:%s",
		p.Version, p.Code, base64.RawURLEncoding.EncodeToString(p.ExchangePublicKey))
}
