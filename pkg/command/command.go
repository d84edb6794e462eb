package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/racp-protocol/racp-go/pkg/wire"
)

// Well-known command types. Hosts may define their own; the authenticator
// treats the type as an opaque discriminator.
const (
	TypeLock       = "LOCK"
	TypeUnlock     = "UNLOCK"
	TypeRestart    = "RESTART"
	TypeScreenshot = "SCREENSHOT"
	TypeMessage    = "MESSAGE"
)

// Command is an opaque structured control payload with a type discriminator.
// CBOR: { 1: id, 2: type, 3: params }
type Command struct {
	// ID uniquely identifies this command instance (UUID).
	ID string `cbor:"1,keyasint"`

	// Type is the command discriminator, e.g. "LOCK".
	Type string `cbor:"2,keyasint"`

	// Params carries command-specific arguments.
	Params map[string]any `cbor:"3,keyasint,omitempty"`
}

// New creates a command with a fresh UUID.
func New(cmdType string, params map[string]any) Command {
	return Command{
		ID:     uuid.NewString(),
		Type:   cmdType,
		Params: params,
	}
}

// Canonical returns the byte-deterministic serialization of the command.
// Identical logical content always yields identical bytes; this is the MAC
// input both peers recompute independently.
func (c Command) Canonical() ([]byte, error) {
	data, err := wire.Canonical(c)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize command: %w", err)
	}
	return data, nil
}
