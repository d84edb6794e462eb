package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize is the maximum allowed frame payload size.
const MaxFrameSize = 65536

// Framing errors.
var (
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
)

// WriteFrame writes a length-prefixed CBOR message to w.
// The prefix is 4 bytes, big-endian.
func WriteFrame(w io.Writer, msg any) error {
	data, err := Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	if len(data) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(data))
	}

	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := w.Write(length); err != nil {
		return fmt.Errorf("failed to write length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	return nil
}

// ReadFrame reads a length-prefixed CBOR message from r and decodes it to
// the appropriate pairing message type.
func ReadFrame(r io.Reader) (any, error) {
	length := make([]byte, 4)
	if _, err := io.ReadFull(r, length); err != nil {
		return nil, fmt.Errorf("failed to read length: %w", err)
	}

	msgLen := binary.BigEndian.Uint32(length)
	if msgLen > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, msgLen)
	}

	data := make([]byte, msgLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	return DecodeMessage(data)
}
