package pairing

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
)

// Pairing code constants.
const (
	// CodeLength is the number of digits in a pairing code.
	CodeLength = 6
)

// Code errors.
var (
	ErrInvalidPairingCode = errors.New("invalid pairing code")
)

// Code is a 6-digit ASCII pairing code.
type Code string

// GenerateCode draws a pairing code from rng, one uniform digit at a time.
// If rng is nil, crypto/rand is used. Rejection sampling keeps each digit
// uniform over 0-9; a plain modulo over the full byte range would bias the
// low digits.
func GenerateCode(rng io.Reader) (Code, error) {
	if rng == nil {
		rng = rand.Reader
	}

	digits := make([]byte, 0, CodeLength)
	buf := make([]byte, 1)
	for len(digits) < CodeLength {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return "", fmt.Errorf("failed to generate pairing code: %w", err)
		}
		// 250 is the largest multiple of 10 that fits in a byte.
		if buf[0] >= 250 {
			continue
		}
		digits = append(digits, '0'+buf[0]%10)
	}

	return Code(digits), nil
}

// ParseCode validates a pairing code string.
func ParseCode(s string) (Code, error) {
	if len(s) != CodeLength {
		return "", fmt.Errorf("%w: must be %d digits", ErrInvalidPairingCode, CodeLength)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("%w: non-digit character", ErrInvalidPairingCode)
		}
	}
	return Code(s), nil
}

// String returns the code as a 6-digit string.
func (c Code) String() string {
	return string(c)
}

// Equal compares the code to a candidate in constant time over the full
// fixed-length string, so the running time does not reveal how long a
// matching prefix the candidate had. A length mismatch returns false.
func (c Code) Equal(candidate string) bool {
	if len(candidate) != len(c) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c), []byte(candidate)) == 1
}

// MustParseCode parses a pairing code string and panics on error.
// Use only in tests or when the code is known to be valid.
func MustParseCode(s string) Code {
	c, err := ParseCode(s)
	if err != nil {
		panic(err)
	}
	return c
}
