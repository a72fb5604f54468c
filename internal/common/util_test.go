package common

import (
	"encoding/base64"
	"strconv"
	"testing"
)

// ---------- MakeRandURLSafeString ----------

func TestMakeRandURLSafeString_LengthAndAlphabet(t *testing.T) {
	const n = 32
	s, err := MakeRandURLSafeString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != base64.RawURLEncoding.EncodedLen(n) {
		t.Fatalf("expected length %d, got %d", base64.RawURLEncoding.EncodedLen(n), len(s))
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("string is not raw url base64: %v", err)
	}
	if len(b) != n {
		t.Fatalf("expected %d decoded bytes, got %d", n, len(b))
	}
}

func TestMakeRandURLSafeString_ZeroSize(t *testing.T) {
	s, err := MakeRandURLSafeString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandURLSafeString_Unique(t *testing.T) {
	const trials = 10000
	seen := make(map[string]struct{}, trials)
	for i := 0; i < trials; i++ {
		s, err := MakeRandURLSafeString(32)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[s] = struct{}{}
	}
}

// ---------- MakeNumericCode ----------

func TestMakeNumericCode_SixDigits(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := MakeNumericCode(6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		if _, err := strconv.Atoi(code); err != nil {
			t.Fatalf("code is not numeric: %q", code)
		}
	}
}

func TestMakeNumericCode_KeepsLeadingZeros(t *testing.T) {
	code, err := MakeNumericCode(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 1 {
		t.Fatalf("expected a single digit, got %q", code)
	}
}

func TestMakeNumericCode_InvalidLength(t *testing.T) {
	if _, err := MakeNumericCode(0); err == nil {
		t.Fatalf("expected error for zero digits")
	}
}
