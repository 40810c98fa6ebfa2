package utils

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestGenerateConfirmationToken(t *testing.T) {
	TokenRand = bytes.NewReader([]byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09,
		0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0xde, 0xad, 0xbe, 0xef,
	})
	t.Cleanup(func() { TokenRand = rand.Reader })

	token := GenerateConfirmationToken()
	want := "000102030405060708090a0b0c0d0e0fdeadbeef"
	if token != want {
		t.Fatalf("GenerateConfirmationToken() = %q, want %q", token, want)
	}
}

func TestGenerateConfirmationTokenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		token := GenerateConfirmationToken()
		if len(token) != 40 {
			t.Fatalf("expected 40-character token, got %d", len(token))
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}

func TestGenerateOTP(t *testing.T) {
	TokenRand = bytes.NewReader([]byte{0, 11, 22, 33, 44, 55})
	t.Cleanup(func() { TokenRand = rand.Reader })

	otp := GenerateOTP()
	if otp != "012345" {
		t.Fatalf("GenerateOTP() = %q, want %q", otp, "012345")
	}
}

func TestGenerateOTPDigitsOnly(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateOTP()
		if len(otp) != 6 {
			t.Fatalf("expected 6-digit OTP, got %q", otp)
		}
		for _, c := range otp {
			if c < '0' || c > '9' {
				t.Fatalf("OTP %q contains non-digit %q", otp, c)
			}
		}
	}
}
