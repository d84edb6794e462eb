package log

import (
	"time"
)

// Event represents a protocol event captured by the pairing or command
// authentication layer. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the pairing session or paired session (UUID).
	SessionID string `cbor:"2,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// LocalRole indicates whether this peer is the device agent or the
	// controller.
	LocalRole Role `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"5,keyasint,omitempty"`
	Command     *CommandEvent     `cbor:"6,keyasint,omitempty"`
	Error       *ErrorEvent       `cbor:"7,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryStateChange indicates a pairing state machine transition.
	CategoryStateChange Category = 0

	// CategoryCommand indicates a signed or verified command.
	CategoryCommand Category = 1

	// CategoryError indicates a failure at any layer.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryStateChange:
		return "STATE_CHANGE"
	case CategoryCommand:
		return "COMMAND"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Role indicates which side of the pairing this peer is.
type Role uint8

const (
	// RoleUnknown is used before the role is established.
	RoleUnknown Role = 0
	// RoleDevice is the managed device agent.
	RoleDevice Role = 1
	// RoleController is the controlling peer.
	RoleController Role = 2
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleDevice:
		return "DEVICE"
	case RoleController:
		return "CONTROLLER"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent records a pairing state machine transition.
type StateChangeEvent struct {
	// OldState is the state name before the transition.
	OldState string `cbor:"1,keyasint"`

	// NewState is the state name after the transition.
	NewState string `cbor:"2,keyasint"`

	// Reason optionally explains the transition.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// CommandEvent records a command signing or verification outcome.
type CommandEvent struct {
	// CommandType is the command's type discriminator.
	CommandType string `cbor:"1,keyasint"`

	// Outgoing is true for signed commands, false for verified ones.
	Outgoing bool `cbor:"2,keyasint"`

	// Accepted reports the verification verdict for incoming commands.
	Accepted bool `cbor:"3,keyasint,omitempty"`
}

// ErrorEvent records a failure.
type ErrorEvent struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes where the error occurred.
	Context string `cbor:"2,keyasint,omitempty"`
}
