package pairing

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/racp-protocol/racp-go/pkg/identity"
)

func TestPayloadRoundTrip(t *testing.T) {
	kp, err := identity.Generate(nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	p := &Payload{
		Version:           PayloadVersion,
		Code:              MustParseCode("482913"),
		ExchangePublicKey: kp.ExchangePublicKey,
	}

	parsed, err := ParsePayload(p.String())
	if err != nil {
		t.Fatalf("ParsePayload() error = %v", err)
	}

	if parsed.Version != p.Version {
		t.Errorf("Version = %d, want %d", parsed.Version, p.Version)
	}
	if parsed.Code != p.Code {
		t.Errorf("Code = %q, want %q", parsed.Code, p.Code)
	}
	if !bytes.Equal(parsed.ExchangePublicKey, p.ExchangePublicKey) {
		t.Error("ExchangePublicKey mismatch after round trip")
	}
}

func TestParsePayloadWhitespace(t *testing.T) {
	key := base64.RawURLEncoding.EncodeToString(make([]byte, 32))
	if _, err := ParsePayload("  RACP:1:123456:" + key + "  \n"); err != nil {
		t.Errorf("ParsePayload() with surrounding whitespace error = %v", err)
	}
}

func TestParsePayloadInvalid(t *testing.T) {
	key := base64.RawURLEncoding.EncodeToString(make([]byte, 32))
	shortKey := base64.RawURLEncoding.EncodeToString(make([]byte, 16))

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrInvalidPayload},
		{"wrong prefix", "MASH:1:123456:" + key, ErrInvalidPayload},
		{"missing key", "RACP:1:123456", ErrInvalidPayload},
		{"short code", "RACP:1:12345:" + key, ErrInvalidPayload},
		{"alpha code", "RACP:1:12345a:" + key, ErrInvalidPayload},
		{"short key", "RACP:1:123456:" + shortKey, ErrInvalidPayload},
		{"future version", "RACP:2:123456:" + key, ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePayload(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParsePayload(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestPayloadStringFormat(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}

	p := &Payload{Version: 1, Code: "007123", ExchangePublicKey: key}
	want := fmt.Sprintf("RACP:1:007123:%s", base64.RawURLEncoding.EncodeToString(key))
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
