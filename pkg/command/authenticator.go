package command

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/racp-protocol/racp-go/pkg/sessionkey"
)

// Authentication constants.
const (
	// MACSize is the size of the HMAC-SHA256 tag in bytes.
	MACSize = sha256.Size

	// DefaultMaxAge is the replay window: the maximum allowed distance,
	// in either direction, between a command's timestamp and local time.
	DefaultMaxAge = 30 * time.Second
)

// Authentication errors. These cover programmer misuse only; verification
// failures on attacker-controlled input are reported as a boolean false.
var (
	ErrInvalidSessionKeyLength = errors.New("invalid session key length")
)

// SignedCommand wraps a command with a timestamp and MAC for transport.
// CBOR: { 1: command, 2: timestamp, 3: mac }
type SignedCommand struct {
	// Command is the authenticated payload.
	Command Command `cbor:"1,keyasint" json:"command"`

	// Timestamp is milliseconds since the Unix epoch at signing time.
	Timestamp int64 `cbor:"2,keyasint" json:"timestamp"`

	// MAC is the base64 (std encoding) HMAC-SHA256 tag.
	MAC string `cbor:"3,keyasint" json:"mac"`
}

// Authenticator signs and verifies commands with a per-session symmetric
// key. It holds no key material itself: every call takes the session key,
// so one Authenticator can serve any number of sessions concurrently.
type Authenticator struct {
	// MaxAge is the replay window for Verify. Zero means DefaultMaxAge.
	MaxAge time.Duration

	// Now supplies the clock. Nil means time.Now.
	Now func() time.Time
}

// NewAuthenticator returns an authenticator with the default replay window
// and wall clock.
func NewAuthenticator() *Authenticator {
	return &Authenticator{MaxAge: DefaultMaxAge}
}

// Sign wraps cmd with the current timestamp and a MAC under sessionKey.
// A wrong session key length means the handshake was skipped; that is a
// programmer error and fails fast.
func (a *Authenticator) Sign(cmd Command, sessionKey []byte) (*SignedCommand, error) {
	return a.SignAt(cmd, sessionKey, a.now().UnixMilli())
}

// SignAt is Sign with a caller-supplied timestamp in milliseconds since the
// Unix epoch. Deterministic input for tests and offline signing.
func (a *Authenticator) SignAt(cmd Command, sessionKey []byte, timestampMs int64) (*SignedCommand, error) {
	if len(sessionKey) != sessionkey.KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d",
			ErrInvalidSessionKeyLength, len(sessionKey), sessionkey.KeySize)
	}

	mac, err := computeMAC(cmd, timestampMs, sessionKey)
	if err != nil {
		return nil, err
	}

	return &SignedCommand{
		Command:   cmd,
		Timestamp: timestampMs,
		MAC:       base64.StdEncoding.EncodeToString(mac),
	}, nil
}

// Verify reports whether signed carries a valid MAC under sessionKey and a
// timestamp within the replay window. It never returns an error: wrong key,
// tampered command, corrupted or truncated MAC, and out-of-window timestamps
// all produce the same clean false, leaving no oracle distinguishing the
// failure cause.
func (a *Authenticator) Verify(signed *SignedCommand, sessionKey []byte) bool {
	if signed == nil || len(sessionKey) != sessionkey.KeySize {
		return false
	}

	maxAge := a.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	// Reject both stale replays and timestamps from the future.
	age := a.now().UnixMilli() - signed.Timestamp
	if age < 0 {
		age = -age
	}
	if age > maxAge.Milliseconds() {
		return false
	}

	claimed, err := base64.StdEncoding.DecodeString(signed.MAC)
	if err != nil {
		return false
	}
	if len(claimed) != MACSize {
		return false
	}

	expected, err := computeMAC(signed.Command, signed.Timestamp, sessionKey)
	if err != nil {
		return false
	}

	return hmac.Equal(claimed, expected)
}

func (a *Authenticator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// computeMAC computes HMAC-SHA256(key, canonical(cmd) || "|" || timestamp).
func computeMAC(cmd Command, timestampMs int64, sessionKey []byte) ([]byte, error) {
	canonical, err := cmd.Canonical()
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, sessionKey)
	mac.Write(canonical)
	mac.Write([]byte("|"))
	mac.Write([]byte(strconv.FormatInt(timestampMs, 10)))
	return mac.Sum(nil), nil
}
