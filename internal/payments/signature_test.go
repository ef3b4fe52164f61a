package payments

import (
	"encoding/hex"
	"testing"
)

const testSecret = "test_key_secret"

func TestSignature_Deterministic(t *testing.T) {
	a := Signature(testSecret, "order_N5liM0uZwhYRAs", "pay_N5ljOQ8qQwWmbx")
	b := Signature(testSecret, "order_N5liM0uZwhYRAs", "pay_N5ljOQ8qQwWmbx")
	if a != b {
		t.Fatalf("same inputs produced different signatures: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("signature length = %d, want 64 hex chars", len(a))
	}
	if _, err := hex.DecodeString(a); err != nil {
		t.Fatalf("signature is not hex: %v", err)
	}
}

func TestSignature_InputsChangeOutput(t *testing.T) {
	base := Signature(testSecret, "order_1", "pay_1")
	if Signature(testSecret, "order_2", "pay_1") == base {
		t.Fatalf("different order id produced same signature")
	}
	if Signature(testSecret, "order_1", "pay_2") == base {
		t.Fatalf("different payment id produced same signature")
	}
	if Signature("other_secret", "order_1", "pay_1") == base {
		t.Fatalf("different secret produced same signature")
	}
}

func TestVerifySignature_ExactMatchOnly(t *testing.T) {
	sig := Signature(testSecret, "order_1", "pay_1")

	if !VerifySignature(testSecret, "order_1", "pay_1", sig) {
		t.Fatalf("valid signature rejected")
	}

	// Every single-character mutation must be rejected.
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		if VerifySignature(testSecret, "order_1", "pay_1", string(mutated)) {
			t.Fatalf("mutation at index %d accepted", i)
		}
	}

	// Truncation and empty signatures fail too.
	if VerifySignature(testSecret, "order_1", "pay_1", sig[:63]) {
		t.Fatalf("truncated signature accepted")
	}
	if VerifySignature(testSecret, "order_1", "pay_1", "") {
		t.Fatalf("empty signature accepted")
	}
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		major float64
		minor int64
	}{
		{15000, 1500000},
		{8000, 800000},
		{99.99, 9999},
		{0.01, 1},
		{0.999, 100}, // rounds, not truncates
	}
	for _, tc := range cases {
		if got := MinorUnits(tc.major); got != tc.minor {
			t.Errorf("MinorUnits(%v) = %d, want %d", tc.major, got, tc.minor)
		}
	}
}

func TestDedupKey(t *testing.T) {
	if got := DedupKey("order_1", "pay_1"); got != "order_1#pay_1" {
		t.Fatalf("DedupKey = %q", got)
	}
}
