package wire

import (
	"errors"
	"fmt"

	"github.com/konditional-dev/konditional/value"
)

// ErrorKind is the closed set of ways a decode or patch can fail
// (spec §4.5). ParseError never escapes as a panic; every boundary
// operation returns one explicitly.
type ErrorKind string

const (
	KindInvalidJSON     ErrorKind = "INVALID_JSON"
	KindInvalidSnapshot ErrorKind = "INVALID_SNAPSHOT"
	KindFlagNotFound    ErrorKind = "FLAG_NOT_FOUND"
	KindTypeMismatch    ErrorKind = "TYPE_MISMATCH"
	KindInvalidVersion  ErrorKind = "INVALID_VERSION"
	KindInvalidRampUp   ErrorKind = "INVALID_RAMP_UP"
	KindInvalidStableID ErrorKind = "INVALID_STABLE_ID"
	KindSchemaViolation ErrorKind = "SCHEMA_VIOLATION"
)

// errSentinel is what every ParseError unwraps to, whatever its Kind. It
// is unexported, so callers outside this package tell kinds apart with
// errors.As and the Kind field.
var errSentinel = errors.New("konditional/wire: parse error")

// ParseError is the single typed failure every C5 operation returns
// instead of panicking. Exactly the fields relevant to Kind are set.
type ParseError struct {
	Kind     ErrorKind
	Reason   string
	FlagID   value.FlagId
	Field    string
	Expected string
	Got      string
}

func (e *ParseError) Error() string {
	base := fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	switch e.Kind {
	case KindFlagNotFound:
		return fmt.Sprintf("%s: flag %q not found", e.Kind, e.FlagID.Render())
	case KindTypeMismatch:
		return fmt.Sprintf("%s: flag %q: expected %s, got %s", e.Kind, e.FlagID.Render(), e.Expected, e.Got)
	case KindSchemaViolation:
		return fmt.Sprintf("%s: flag %q: field %q: %s", e.Kind, e.FlagID.Render(), e.Field, e.Reason)
	default:
		return base
	}
}

func (e *ParseError) Unwrap() error { return errSentinel }

// WithContainer prefixes e's reason with the owning container's identity,
// without changing its Kind (spec §4.5: "InvalidJson / InvalidSnapshot
// gain a container='X': prefix").
func (e *ParseError) WithContainer(container string) *ParseError {
	if e.Kind != KindInvalidJSON && e.Kind != KindInvalidSnapshot {
		return e
	}
	clone := *e
	clone.Reason = fmt.Sprintf("container='%s': %s", container, e.Reason)
	return &clone
}

func errInvalidJSON(reason string) *ParseError {
	return &ParseError{Kind: KindInvalidJSON, Reason: reason}
}

func errInvalidSnapshot(reason string) *ParseError {
	return &ParseError{Kind: KindInvalidSnapshot, Reason: reason}
}

func errFlagNotFound(id value.FlagId) *ParseError {
	return &ParseError{Kind: KindFlagNotFound, Reason: "unknown flag key", FlagID: id}
}

func errTypeMismatch(id value.FlagId, expected, got value.Kind) *ParseError {
	return &ParseError{Kind: KindTypeMismatch, FlagID: id, Expected: string(expected), Got: string(got)}
}

func errInvalidVersion(raw, reason string) *ParseError {
	return &ParseError{Kind: KindInvalidVersion, Reason: reason, Field: raw}
}

func errInvalidRampUp(value string) *ParseError {
	return &ParseError{Kind: KindInvalidRampUp, Reason: "ramp_up out of [0,100]", Field: value}
}

func errInvalidStableID(reason string) *ParseError {
	return &ParseError{Kind: KindInvalidStableID, Reason: reason}
}

func errSchemaViolation(id value.FlagId, field, reason string) *ParseError {
	return &ParseError{Kind: KindSchemaViolation, FlagID: id, Field: field, Reason: reason}
}
