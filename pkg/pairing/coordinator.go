package pairing

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/racp-protocol/racp-go/pkg/identity"
	"github.com/racp-protocol/racp-go/pkg/log"
	"github.com/racp-protocol/racp-go/pkg/sessionkey"
)

// Coordinator defaults.
const (
	// DefaultCodeTTL is how long a generated pairing code stays valid.
	DefaultCodeTTL = 5 * time.Minute

	// DefaultMaxAttempts is the number of wrong code entries tolerated
	// before the coordinator locks out.
	DefaultMaxAttempts = 3
)

// State represents the pairing state machine state.
type State uint8

const (
	// StateIdle indicates no pairing attempt is in flight.
	StateIdle State = iota

	// StateAwaitingCode indicates a code has been generated and the
	// coordinator is waiting for the operator to enter it.
	StateAwaitingCode

	// StateExchangingKeys indicates the code was accepted and the
	// coordinator is waiting for the peer's exchange public key.
	StateExchangingKeys

	// StatePaired indicates a session key has been derived.
	StatePaired

	// StateLockedOut indicates too many wrong code entries. Terminal
	// until Reset.
	StateLockedOut
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateAwaitingCode:
		return "AWAITING_CODE"
	case StateExchangingKeys:
		return "EXCHANGING_KEYS"
	case StatePaired:
		return "PAIRED"
	case StateLockedOut:
		return "LOCKED_OUT"
	default:
		return "UNKNOWN"
	}
}

// Coordinator errors.
var (
	ErrInvalidState     = errors.New("operation not valid in current state")
	ErrInvalidKeyLength = errors.New("invalid peer exchange key length")
)

// Config holds the coordinator configuration. The zero value is usable:
// missing fields fall back to defaults.
type Config struct {
	// CodeTTL is how long a generated code stays valid. Values <= 0 are
	// clamped to DefaultCodeTTL.
	CodeTTL time.Duration

	// MaxAttempts is how many wrong code entries are tolerated before
	// lockout. Values <= 0 are clamped to DefaultMaxAttempts.
	MaxAttempts int

	// Rand is the randomness source for codes and key seeds.
	// Nil means crypto/rand.
	Rand io.Reader

	// Now supplies the clock. Nil means time.Now. Inject a fake in tests
	// to exercise expiry deterministically.
	Now func() time.Time

	// Logger receives state change events. Nil disables logging.
	Logger log.Logger

	// Role is reported in log events.
	Role log.Role
}

// DefaultConfig returns the default coordinator configuration.
func DefaultConfig() Config {
	return Config{
		CodeTTL:     DefaultCodeTTL,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Coordinator drives one pairing attempt: code generation, attempt-limited
// code verification, and key exchange completion. Methods are mutex-guarded;
// a Coordinator still represents exactly one in-flight pairing and must not
// be shared across sessions.
type Coordinator struct {
	mu sync.Mutex

	cfg       Config
	sessionID string

	state           State
	code            Code
	codeGeneratedAt time.Time
	failedAttempts  int

	localIdentity   *identity.KeyPair
	peerExchangeKey []byte
	sessionKey      []byte

	onStateChange func(oldState, newState State)
}

// NewCoordinator creates a coordinator in StateIdle with a fresh local
// identity keypair. Zero or negative CodeTTL/MaxAttempts are clamped to the
// defaults rather than accepted as given; a zero-attempt or zero-TTL
// coordinator could never pair.
func NewCoordinator(cfg Config) (*Coordinator, error) {
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = DefaultCodeTTL
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NoopLogger{}
	}

	kp, err := identity.Generate(cfg.Rand)
	if err != nil {
		return nil, fmt.Errorf("failed to generate identity keypair: %w", err)
	}

	return &Coordinator{
		cfg:           cfg,
		sessionID:     uuid.NewString(),
		state:         StateIdle,
		localIdentity: kp,
	}, nil
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the identifier of this pairing attempt.
func (c *Coordinator) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Identity returns the local identity keypair.
func (c *Coordinator) Identity() *identity.KeyPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.localIdentity
}

// FailedAttempts returns the number of wrong code entries so far.
func (c *Coordinator) FailedAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failedAttempts
}

// PairingCode returns the current code, or "" outside StateAwaitingCode.
func (c *Coordinator) PairingCode() Code {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code
}

// SessionKey returns the derived 32-byte session key, or nil before
// StatePaired.
func (c *Coordinator) SessionKey() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionKey
}

// PeerExchangeKey returns the peer's exchange public key, or nil before
// StatePaired.
func (c *Coordinator) PeerExchangeKey() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peerExchangeKey
}

// OnStateChange sets a callback invoked after every state transition.
// The callback runs with the coordinator lock held; it must not call back
// into the coordinator.
func (c *Coordinator) OnStateChange(fn func(oldState, newState State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStateChange = fn
}

// GeneratePairingCode draws a fresh 6-digit code and moves to
// StateAwaitingCode. Calling it again while already awaiting a code is
// idempotent: the existing code is returned and its generation time is not
// advanced, so duplicate UI triggers neither churn the code nor extend its
// life. Any other state returns ErrInvalidState.
func (c *Coordinator) GeneratePairingCode() (Code, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateAwaitingCode:
		return c.code, nil
	case StateIdle:
		// OK to proceed
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidState, c.state)
	}

	code, err := GenerateCode(c.cfg.Rand)
	if err != nil {
		return "", err
	}

	c.code = code
	c.codeGeneratedAt = c.cfg.Now()
	c.transition(StateAwaitingCode, "code generated")

	return code, nil
}

// IsPairingCodeValid reports whether a code exists and has not outlived its
// TTL. It is a query: expiry never transitions the state machine on its
// own, the caller decides to Reset or regenerate.
func (c *Coordinator) IsPairingCodeValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingCode || c.code == "" {
		return false
	}
	return c.cfg.Now().Sub(c.codeGeneratedAt) <= c.cfg.CodeTTL
}

// OnCodeEntered processes an operator-entered code. A match (constant-time
// comparison) moves to StateExchangingKeys and returns true. A mismatch
// burns one attempt and returns false; burning the last attempt moves to
// StateLockedOut, where every further entry returns false regardless of
// correctness. Expiry is not checked here; callers gate on
// IsPairingCodeValid first.
func (c *Coordinator) OnCodeEntered(entered string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingCode {
		return false
	}

	if c.code.Equal(entered) {
		c.code = ""
		c.transition(StateExchangingKeys, "code accepted")
		return true
	}

	c.failedAttempts++
	if c.failedAttempts >= c.cfg.MaxAttempts {
		c.code = ""
		c.transition(StateLockedOut, "attempt limit reached")
	}
	return false
}

// AttemptsRemaining returns how many wrong entries are left before lockout.
func (c *Coordinator) AttemptsRemaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	remaining := c.cfg.MaxAttempts - c.failedAttempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// OnKeyExchangeComplete accepts the peer's 32-byte exchange public key,
// derives the session key and moves to StatePaired. A wrong key length is a
// protocol bug upstream, not a guessable secret, so it returns an error
// rather than a clean rejection.
func (c *Coordinator) OnKeyExchangeComplete(peerExchangePublicKey []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateExchangingKeys {
		return fmt.Errorf("%w: %s", ErrInvalidState, c.state)
	}
	if len(peerExchangePublicKey) != identity.ExchangePublicKeySize {
		return fmt.Errorf("%w: got %d, want %d",
			ErrInvalidKeyLength, len(peerExchangePublicKey), identity.ExchangePublicKeySize)
	}

	key, err := sessionkey.Derive(c.localIdentity.Seed(), peerExchangePublicKey)
	if err != nil {
		return fmt.Errorf("failed to derive session key: %w", err)
	}

	c.peerExchangeKey = append([]byte(nil), peerExchangePublicKey...)
	c.sessionKey = key
	c.transition(StatePaired, "key exchange complete")

	return nil
}

// Reset clears the code, attempts, peer key and session key, regenerates
// the local identity keypair and returns to StateIdle. Regenerating the
// identity means a discarded pairing shares no key material with the next
// attempt.
func (c *Coordinator) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kp, err := identity.Generate(c.cfg.Rand)
	if err != nil {
		return fmt.Errorf("failed to regenerate identity keypair: %w", err)
	}

	identity.Wipe(c.sessionKey)

	c.localIdentity = kp
	c.sessionID = uuid.NewString()
	c.code = ""
	c.codeGeneratedAt = time.Time{}
	c.failedAttempts = 0
	c.peerExchangeKey = nil
	c.sessionKey = nil
	c.transition(StateIdle, "reset")

	return nil
}

// transition moves to newState and notifies observers.
// Callers must hold c.mu.
func (c *Coordinator) transition(newState State, reason string) {
	oldState := c.state
	c.state = newState

	c.cfg.Logger.Log(log.Event{
		Timestamp: c.cfg.Now(),
		SessionID: c.sessionID,
		Category:  log.CategoryStateChange,
		LocalRole: c.cfg.Role,
		StateChange: &log.StateChangeEvent{
			OldState: oldState.String(),
			NewState: newState.String(),
			Reason:   reason,
		},
	})

	if c.onStateChange != nil {
		c.onStateChange(oldState, newState)
	}
}
