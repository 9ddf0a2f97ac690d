package value

import "testing"

func TestStableIDOf_Deterministic(t *testing.T) {
	a, err := StableIDOf("User-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := StableIDOf("user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Hex() != b.Hex() {
		t.Errorf("expected case-insensitive canonicalization: %q != %q", a.Hex(), b.Hex())
	}
}

func TestStableIDOf_RejectsBlank(t *testing.T) {
	if _, err := StableIDOf("   "); err == nil {
		t.Error("expected error for blank input")
	}
}

func TestStableIDFromHex_Lowercases(t *testing.T) {
	id, err := StableIDFromHex("ABCDEF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Hex() != "abcdef" {
		t.Errorf("got %q, want abcdef", id.Hex())
	}
}

func TestStableIDFromHex_RejectsBlankAndNonHex(t *testing.T) {
	if _, err := StableIDFromHex(""); err == nil {
		t.Error("expected error for blank input")
	}
	if _, err := StableIDFromHex("not-hex!!"); err == nil {
		t.Error("expected error for non-hex input")
	}
}
