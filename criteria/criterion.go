// Package criteria implements Konditional's targeting-criteria model:
// the five criterion variants a Rule can carry, and the ordered Rule type
// they compose into. Matching is pure and total over a Context.
package criteria

import (
	"github.com/konditional-dev/konditional/value"
)

// Context is the evaluation input consulted by criteria. Hosts may embed
// this alongside domain-specific fields accessed only by Custom predicates
// (spec §3: "implementations may extend this with domain fields").
type Context struct {
	LocaleTag   string
	PlatformTag string
	AppVersion  value.Version
	StableID    value.StableId
	// StableIDFallback marks a context whose StableID was not genuinely
	// supplied by the caller (spec §4.3: such contexts bucket to 9999).
	StableIDFallback bool
	Axes             map[string]string
}

// AxisValue returns the value assigned to an axis id and whether it is set.
func (c Context) AxisValue(axisID string) (string, bool) {
	if c.Axes == nil {
		return "", false
	}
	v, ok := c.Axes[axisID]
	return v, ok
}

// Criterion is the uniform capability every targeting predicate exposes.
type Criterion interface {
	Matches(ctx Context) bool
	Specificity() int
	TypeTag() string
}

// Platforms matches when ctx.PlatformTag is a member of a non-empty set.
type Platforms struct{ IDs map[string]struct{} }

func NewPlatforms(ids ...string) Platforms { return Platforms{IDs: toSet(ids)} }

func (p Platforms) Matches(ctx Context) bool {
	return len(p.IDs) > 0 && containsID(p.IDs, ctx.PlatformTag)
}
func (p Platforms) Specificity() int { return boolToInt(len(p.IDs) > 0) }
func (p Platforms) TypeTag() string  { return "platforms" }

// Locales matches when ctx.LocaleTag is a member of a non-empty set.
type Locales struct{ IDs map[string]struct{} }

func NewLocales(ids ...string) Locales { return Locales{IDs: toSet(ids)} }

func (l Locales) Matches(ctx Context) bool {
	return len(l.IDs) > 0 && containsID(l.IDs, ctx.LocaleTag)
}
func (l Locales) Specificity() int { return boolToInt(len(l.IDs) > 0) }
func (l Locales) TypeTag() string  { return "locales" }

// VersionRange matches when ctx.AppVersion falls within [Min, Max]
// (either bound may be absent).
type VersionRange struct {
	Min, Max       value.Version
	HasMin, HasMax bool
}

func (r VersionRange) Matches(ctx Context) bool {
	if r.HasMin && ctx.AppVersion.Compare(r.Min) < 0 {
		return false
	}
	if r.HasMax && ctx.AppVersion.Compare(r.Max) > 0 {
		return false
	}
	return true
}
func (r VersionRange) Specificity() int { return boolToInt(r.HasMin || r.HasMax) }
func (r VersionRange) TypeTag() string  { return "versionRange" }

// Axis matches when ctx's value for AxisID is a member of a non-empty set.
type Axis struct {
	AxisID string
	IDs    map[string]struct{}
}

func NewAxis(axisID string, ids ...string) Axis {
	return Axis{AxisID: axisID, IDs: toSet(ids)}
}

func (a Axis) Matches(ctx Context) bool {
	v, ok := ctx.AxisValue(a.AxisID)
	return ok && containsID(a.IDs, v)
}
func (a Axis) Specificity() int { return 1 }
func (a Axis) TypeTag() string  { return "axis" }

// Predicate is a pure, opaque function over Context. Implementations must
// not mutate ctx or have side effects (spec §4.3: "custom predicates must
// be pure over inputs; non-determinism breaks the contract").
type Predicate func(ctx Context) bool

// Custom wraps an opaque predicate handle plus its declared specificity.
// Custom criteria are never serialized into a snapshot (spec §9); they
// exist only in source-declared rules, and wire.Decode reattaches them to
// decoded rules by rule position from the schema's source definition.
type Custom struct {
	Name               string
	Pred               Predicate
	DeclaredSpecificity int
}

func (c Custom) Matches(ctx Context) bool {
	if c.Pred == nil {
		return false
	}
	return c.Pred(ctx)
}
func (c Custom) Specificity() int { return c.DeclaredSpecificity }
func (c Custom) TypeTag() string  { return "custom:" + c.Name }

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func containsID(set map[string]struct{}, id string) bool {
	if id == "" {
		return false
	}
	_, ok := set[id]
	return ok
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
