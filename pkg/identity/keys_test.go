package identity

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestGenerate(t *testing.T) {
	kp, err := Generate(nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(kp.SigningPublicKey) != SigningPublicKeySize {
		t.Errorf("SigningPublicKey length = %d, want %d", len(kp.SigningPublicKey), SigningPublicKeySize)
	}
	if len(kp.SigningPrivateKey) != SigningPrivateKeySize {
		t.Errorf("SigningPrivateKey length = %d, want %d", len(kp.SigningPrivateKey), SigningPrivateKeySize)
	}
	if len(kp.ExchangePublicKey) != ExchangePublicKeySize {
		t.Errorf("ExchangePublicKey length = %d, want %d", len(kp.ExchangePublicKey), ExchangePublicKeySize)
	}

	// The public half of the private key must match the public key.
	if !bytes.Equal(kp.SigningPrivateKey[SeedSize:], kp.SigningPublicKey) {
		t.Error("signing private key does not embed the public key")
	}
}

func TestGenerateUnique(t *testing.T) {
	a, err := Generate(nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if bytes.Equal(a.SigningPublicKey, b.SigningPublicKey) {
		t.Error("two generated keypairs share a signing public key")
	}
	if bytes.Equal(a.ExchangePublicKey, b.ExchangePublicKey) {
		t.Error("two generated keypairs share an exchange public key")
	}
}

func TestGenerateFromSeedDeterministic(t *testing.T) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		t.Fatalf("rand.Read error = %v", err)
	}

	a, err := GenerateFromSeed(seed)
	if err != nil {
		t.Fatalf("GenerateFromSeed() error = %v", err)
	}
	b, err := GenerateFromSeed(seed)
	if err != nil {
		t.Fatalf("GenerateFromSeed() error = %v", err)
	}

	if !bytes.Equal(a.SigningPublicKey, b.SigningPublicKey) {
		t.Error("signing public keys differ for the same seed")
	}
	if !bytes.Equal(a.SigningPrivateKey, b.SigningPrivateKey) {
		t.Error("signing private keys differ for the same seed")
	}
	if !bytes.Equal(a.ExchangePublicKey, b.ExchangePublicKey) {
		t.Error("exchange public keys differ for the same seed")
	}
}

func TestGenerateFromSeedInvalidLength(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		if _, err := GenerateFromSeed(make([]byte, n)); !errors.Is(err, ErrInvalidSeedLength) {
			t.Errorf("GenerateFromSeed(len %d) error = %v, want ErrInvalidSeedLength", n, err)
		}
	}
}

func TestExchangePrivateScalarClamped(t *testing.T) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		t.Fatalf("rand.Read error = %v", err)
	}

	scalar, err := ExchangePrivateScalar(seed)
	if err != nil {
		t.Fatalf("ExchangePrivateScalar() error = %v", err)
	}

	if scalar[0]&7 != 0 {
		t.Error("low 3 bits of byte 0 not cleared")
	}
	if scalar[31]&128 != 0 {
		t.Error("high bit of byte 31 not cleared")
	}
	if scalar[31]&64 == 0 {
		t.Error("second-highest bit of byte 31 not set")
	}

	// Deterministic for the same seed.
	again, err := ExchangePrivateScalar(seed)
	if err != nil {
		t.Fatalf("ExchangePrivateScalar() error = %v", err)
	}
	if !bytes.Equal(scalar, again) {
		t.Error("scalar differs across recomputations")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	kp, err := Generate(nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	messages := [][]byte{
		nil,
		[]byte(""),
		[]byte("hello"),
		bytes.Repeat([]byte{0xAB}, 1<<20), // 1 MiB
	}

	for _, msg := range messages {
		sig, err := Sign(msg, kp.SigningPrivateKey)
		if err != nil {
			t.Fatalf("Sign() error = %v", err)
		}
		if len(sig) != SignatureSize {
			t.Errorf("signature length = %d, want %d", len(sig), SignatureSize)
		}
		if !Verify(msg, sig, kp.SigningPublicKey) {
			t.Errorf("Verify() = false for valid signature over %d-byte message", len(msg))
		}
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	kp, err := Generate(nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	msg := []byte("lock the workstation")
	sig, err := Sign(msg, kp.SigningPrivateKey)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	t.Run("FlippedMessageBit", func(t *testing.T) {
		tampered := append([]byte(nil), msg...)
		tampered[0] ^= 0x01
		if Verify(tampered, sig, kp.SigningPublicKey) {
			t.Error("Verify() = true for tampered message")
		}
	})

	t.Run("FlippedSignatureBit", func(t *testing.T) {
		for i := range sig {
			bad := append([]byte(nil), sig...)
			bad[i] ^= 0x80
			if Verify(msg, bad, kp.SigningPublicKey) {
				t.Errorf("Verify() = true with signature byte %d corrupted", i)
			}
		}
	})

	t.Run("WrongPublicKey", func(t *testing.T) {
		other, err := Generate(nil)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if Verify(msg, sig, other.SigningPublicKey) {
			t.Error("Verify() = true with wrong public key")
		}
	})
}

func TestVerifyFailsClosedOnMalformedInput(t *testing.T) {
	kp, err := Generate(nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	msg := []byte("message")
	sig, err := Sign(msg, kp.SigningPrivateKey)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	tests := []struct {
		name string
		sig  []byte
		pub  []byte
	}{
		{"nil signature", nil, kp.SigningPublicKey},
		{"short signature", sig[:63], kp.SigningPublicKey},
		{"long signature", append(append([]byte(nil), sig...), 0), kp.SigningPublicKey},
		{"nil public key", sig, nil},
		{"short public key", sig, kp.SigningPublicKey[:31]},
		{"long public key", sig, append(append([]byte(nil), kp.SigningPublicKey...), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Verify(msg, tt.sig, tt.pub) {
				t.Error("Verify() = true, want false")
			}
		})
	}
}

func TestSignInvalidPrivateKeyLength(t *testing.T) {
	if _, err := Sign([]byte("m"), make([]byte, 32)); !errors.Is(err, ErrInvalidPrivateKeyLength) {
		t.Errorf("Sign() error = %v, want ErrInvalidPrivateKeyLength", err)
	}
}

func TestGenerateRNGFailure(t *testing.T) {
	if _, err := Generate(failingReader{}); err == nil {
		t.Error("Generate() with failing RNG returned nil error")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("rng exhausted")
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Wipe(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("byte %d = %d after Wipe, want 0", i, v)
		}
	}
}
