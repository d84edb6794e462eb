package wire

import (
	"errors"
	"fmt"
)

// Pairing handshake message types.
const (
	// MsgPairingHello is sent by the controller to open a pairing attempt.
	MsgPairingHello uint8 = 1

	// MsgCodeEntry carries the human-entered pairing code.
	MsgCodeEntry uint8 = 2

	// MsgCodeResult reports whether the code was accepted.
	MsgCodeResult uint8 = 3

	// MsgKeyExchange carries a peer's X25519 exchange public key.
	MsgKeyExchange uint8 = 4

	// MsgPairingComplete confirms the handshake finished on the device side.
	MsgPairingComplete uint8 = 5

	// MsgPairingError indicates a protocol-level error.
	MsgPairingError uint8 = 255
)

// Pairing error codes.
const (
	ErrCodeSuccess          uint8 = 0
	ErrCodeInvalidKeyLength uint8 = 1
	ErrCodeLockedOut        uint8 = 2
	ErrCodeCodeExpired      uint8 = 3
	ErrCodeBadVersion       uint8 = 4
	ErrCodeInternalError    uint8 = 255
)

// Message errors.
var (
	ErrInvalidMessage = errors.New("invalid pairing message")
)

// PairingHello opens a pairing attempt and announces the controller's
// exchange public key and protocol version.
// CBOR: { 1: msgType, 2: exchangePublicKey, 3: version }
type PairingHello struct {
	MsgType           uint8  `cbor:"1,keyasint"`
	ExchangePublicKey []byte `cbor:"2,keyasint"`
	Version           string `cbor:"3,keyasint,omitempty"`
}

// CodeEntry carries the pairing code the operator typed on the controller.
// CBOR: { 1: msgType, 2: code }
type CodeEntry struct {
	MsgType uint8  `cbor:"1,keyasint"`
	Code    string `cbor:"2,keyasint"`
}

// CodeResult reports the device's verdict on a submitted code.
// CBOR: { 1: msgType, 2: accepted, 3: attemptsLeft, 4: lockedOut }
type CodeResult struct {
	MsgType      uint8 `cbor:"1,keyasint"`
	Accepted     bool  `cbor:"2,keyasint"`
	AttemptsLeft uint8 `cbor:"3,keyasint"`
	LockedOut    bool  `cbor:"4,keyasint"`
}

// KeyExchange carries a peer's X25519 exchange public key.
// CBOR: { 1: msgType, 2: exchangePublicKey }
type KeyExchange struct {
	MsgType           uint8  `cbor:"1,keyasint"`
	ExchangePublicKey []byte `cbor:"2,keyasint"`
}

// PairingComplete confirms the device derived its session key.
// CBOR: { 1: msgType, 2: errorCode }
type PairingComplete struct {
	MsgType   uint8 `cbor:"1,keyasint"`
	ErrorCode uint8 `cbor:"2,keyasint"`
}

// PairingError indicates a pairing protocol error.
// CBOR: { 1: msgType, 2: errorCode, 3: message }
type PairingError struct {
	MsgType   uint8  `cbor:"1,keyasint"`
	ErrorCode uint8  `cbor:"2,keyasint"`
	Message   string `cbor:"3,keyasint,omitempty"`
}

// DecodeMessage decodes CBOR bytes to the appropriate pairing message type.
func DecodeMessage(data []byte) (any, error) {
	// First, decode just to get the message type
	var header struct {
		MsgType uint8 `cbor:"1,keyasint"`
	}
	if err := Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	switch header.MsgType {
	case MsgPairingHello:
		var msg PairingHello
		if err := Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		return &msg, nil

	case MsgCodeEntry:
		var msg CodeEntry
		if err := Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		return &msg, nil

	case MsgCodeResult:
		var msg CodeResult
		if err := Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		return &msg, nil

	case MsgKeyExchange:
		var msg KeyExchange
		if err := Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		return &msg, nil

	case MsgPairingComplete:
		var msg PairingComplete
		if err := Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		return &msg, nil

	case MsgPairingError:
		var msg PairingError
		if err := Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		return &msg, nil

	default:
		return nil, fmt.Errorf("%w: unknown message type %d", ErrInvalidMessage, header.MsgType)
	}
}
