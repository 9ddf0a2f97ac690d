// Package value implements Konditional's primitive layer: typed flag
// values, flag and container identifiers, semantic versions, stable ids,
// and the bounded ramp-up fraction. Every constructor here except
// MustParseFlagID is total — bad input produces an error wrapping one of
// the package's sentinels (ErrInvalidFlagID, ErrInvalidVersion, ...),
// never a panic.
package value

import (
	"errors"
	"fmt"
	"strings"
)

// separator divides the three parts of a FlagId.
const separator = "::"

// ErrInvalidFlagID is the sentinel wrapped by every FlagId parse failure.
var ErrInvalidFlagID = errors.New("invalid flag id")

// FlagId canonically identifies a flag as feature::<container>::<name>.
type FlagId struct {
	Container string
	Name      string
}

// ParseFlagID splits s on "::" and validates both parts are non-empty and
// separator-free. The leading "feature" literal is required and fixed.
func ParseFlagID(s string) (FlagId, error) {
	parts := strings.Split(s, separator)
	if len(parts) != 3 {
		return FlagId{}, fmt.Errorf("%w: %q: want exactly 3 parts separated by %q, got %d", ErrInvalidFlagID, s, separator, len(parts))
	}
	if parts[0] != "feature" {
		return FlagId{}, fmt.Errorf("%w: %q: first segment must be %q", ErrInvalidFlagID, s, "feature")
	}
	container, name := parts[1], parts[2]
	if err := validateSegment(container); err != nil {
		return FlagId{}, fmt.Errorf("%w: %q: container segment: %v", ErrInvalidFlagID, s, err)
	}
	if err := validateSegment(name); err != nil {
		return FlagId{}, fmt.Errorf("%w: %q: name segment: %v", ErrInvalidFlagID, s, err)
	}
	return FlagId{Container: container, Name: name}, nil
}

// MustParseFlagID is a convenience for source-declared flag keys whose
// correctness is guaranteed at compile time by construction (literal
// string, unit-tested). It panics on failure, same as regexp.MustCompile.
func MustParseFlagID(s string) FlagId {
	id, err := ParseFlagID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NewFlagID builds a FlagId from an already-split container and name,
// validating each segment independently.
func NewFlagID(container, name string) (FlagId, error) {
	if err := validateSegment(container); err != nil {
		return FlagId{}, fmt.Errorf("%w: container: %v", ErrInvalidFlagID, err)
	}
	if err := validateSegment(name); err != nil {
		return FlagId{}, fmt.Errorf("%w: name: %v", ErrInvalidFlagID, err)
	}
	return FlagId{Container: container, Name: name}, nil
}

// Render returns the canonical feature::<container>::<name> form.
func (id FlagId) Render() string {
	return "feature" + separator + id.Container + separator + id.Name
}

func (id FlagId) String() string { return id.Render() }

func validateSegment(s string) error {
	if s == "" {
		return errors.New("must not be empty")
	}
	if strings.Contains(s, separator) {
		return fmt.Errorf("must not contain %q", separator)
	}
	return nil
}

// ValidateContainerID checks a standalone container identifier (non-empty,
// separator-free) without requiring a full FlagId.
func ValidateContainerID(container string) error {
	if err := validateSegment(container); err != nil {
		return fmt.Errorf("invalid container id %q: %w", container, err)
	}
	return nil
}
