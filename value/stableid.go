package value

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStableID is the sentinel wrapped by StableId parse failures.
var ErrInvalidStableID = errors.New("invalid stable id")

// StableId is an opaque, canonical-lowercase-hex bucketing identifier.
type StableId struct {
	hex string
}

// StableIDOf builds a StableId from arbitrary UTF-8 by lowercasing it
// (ROOT locale — no per-locale folding) and hex-encoding the raw bytes.
func StableIDOf(utf8 string) (StableId, error) {
	if strings.TrimSpace(utf8) == "" {
		return StableId{}, fmt.Errorf("%w: blank input", ErrInvalidStableID)
	}
	lowered := strings.ToLower(utf8)
	return StableId{hex: hex.EncodeToString([]byte(lowered))}, nil
}

// StableIDFromHex builds a StableId from a pre-canonical hex string,
// lowercasing it. Blank input is rejected.
func StableIDFromHex(h string) (StableId, error) {
	if strings.TrimSpace(h) == "" {
		return StableId{}, fmt.Errorf("%w: blank input", ErrInvalidStableID)
	}
	lowered := strings.ToLower(h)
	if _, err := hex.DecodeString(lowered); err != nil {
		return StableId{}, fmt.Errorf("%w: %q is not valid hex: %v", ErrInvalidStableID, h, err)
	}
	return StableId{hex: lowered}, nil
}

// Hex returns the canonical lowercase hex form.
func (s StableId) Hex() string { return s.hex }

// IsZero reports whether this StableId was never constructed.
func (s StableId) IsZero() bool { return s.hex == "" }

func (s StableId) String() string { return s.hex }
