package value

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidVersion is the sentinel wrapped by Version parse failures.
var ErrInvalidVersion = errors.New("invalid version")

// Version is a (major, minor, patch) triple, all non-negative.
type Version struct {
	Major, Minor, Patch uint64
}

// ParseVersion accepts up to three dot-separated non-negative integers;
// missing tail elements default to 0. Empty components are rejected.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, fmt.Errorf("%w: %q: expected 1 to 3 dot-separated components", ErrInvalidVersion, s)
	}
	var nums [3]uint64
	for i, p := range parts {
		if p == "" {
			return Version{}, fmt.Errorf("%w: %q: empty component", ErrInvalidVersion, s)
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: component %q is not a non-negative integer", ErrInvalidVersion, s, p)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater than
// other. Comparison delegates to semver.Version so that VersionRange
// matching follows the same precedence rules (including build-metadata
// handling) as the rest of the ecosystem, rather than a hand-rolled
// field-by-field ordering.
func (v Version) Compare(other Version) int {
	vs, vErr := v.Semver()
	os, oErr := other.Semver()
	if vErr != nil || oErr != nil {
		// v.String() and other.String() always render a valid
		// "major.minor.patch" token, so semver.NewVersion cannot fail
		// here; this is an unreachable fallback, not a live code path.
		return v.compareFields(other)
	}
	return vs.Compare(os)
}

func (v Version) compareFields(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpUint(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpUint(v.Minor, other.Minor)
	default:
		return cmpUint(v.Patch, other.Patch)
	}
}

func (v Version) LessThan(other Version) bool    { return v.Compare(other) < 0 }
func (v Version) GreaterThan(other Version) bool { return v.Compare(other) > 0 }
func (v Version) Equal(other Version) bool       { return v.Compare(other) == 0 }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Semver renders v as a semver.Version, the representation Compare
// delegates to for range comparisons.
func (v Version) Semver() (*semver.Version, error) {
	return semver.NewVersion(v.String())
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
