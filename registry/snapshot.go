// Package registry implements Konditional's atomic publication and
// bounded-history engine (spec §4.4): lock-free reads via an atomic
// pointer, a single-writer-mutex-serialized write path, rollback over a
// bounded in-process history ring, the kill switch, and test overrides.
package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/value"
)

// Metadata carries a snapshot's opaque version token and publish time.
type Metadata struct {
	Version                string
	GeneratedAtEpochMillis int64
}

// Snapshot is a deeply immutable, point-in-time set of flag definitions
// for one container. Once published, a Snapshot is never mutated —
// any change is a fresh Snapshot (spec §4.4).
type Snapshot struct {
	Metadata Metadata
	Flags    map[string]flag.Definition // keyed by FlagId.Render()
}

// NewSnapshot copies flags into a fresh, independently-owned Snapshot.
func NewSnapshot(metadata Metadata, flags map[string]flag.Definition) Snapshot {
	copied := make(map[string]flag.Definition, len(flags))
	for k, v := range flags {
		copied[k] = v
	}
	return Snapshot{Metadata: metadata, Flags: copied}
}

// Get returns the definition for id, if present.
func (s Snapshot) Get(id value.FlagId) (flag.Definition, bool) {
	def, ok := s.Flags[id.Render()]
	return def, ok
}

// WithDefinition returns a copy of s with def upserted by its own id.
// Used by update_definition (spec §4.4), which must not disturb any
// other flag or reuse the receiver's backing map.
func (s Snapshot) WithDefinition(def flag.Definition) Snapshot {
	out := NewSnapshot(s.Metadata, s.Flags)
	out.Flags[def.ID.Render()] = def
	return out
}

// WithoutKeys returns a copy of s with the given FlagIds removed.
func (s Snapshot) WithoutKeys(ids []value.FlagId) Snapshot {
	out := NewSnapshot(s.Metadata, s.Flags)
	for _, id := range ids {
		delete(out.Flags, id.Render())
	}
	return out
}

// Equal reports deep equality of two snapshots by flags map and
// metadata, the comparison rollback's test-fixtures rely on (spec §8.7).
func (s Snapshot) Equal(other Snapshot) bool {
	if s.Metadata != other.Metadata {
		return false
	}
	if len(s.Flags) != len(other.Flags) {
		return false
	}
	for k, def := range s.Flags {
		otherDef, ok := other.Flags[k]
		if !ok || !definitionEqual(def, otherDef) {
			return false
		}
	}
	return true
}

func definitionEqual(a, b flag.Definition) bool {
	if a.ID != b.ID || a.DeclaredKind != b.DeclaredKind || a.Active != b.Active || a.Salt != b.Salt {
		return false
	}
	if !a.Default.Equal(b.Default) {
		return false
	}
	if len(a.Rules) != len(b.Rules) {
		return false
	}
	for i := range a.Rules {
		if !a.Rules[i].Equal(b.Rules[i]) {
			return false
		}
	}
	return true
}

// keys returns a sorted slice of a Snapshot's flag keys, used wherever a
// deterministic iteration order is required (e.g. deterministic encode).
func (s Snapshot) keys() []string {
	out := make([]string, 0, len(s.Flags))
	for k := range s.Flags {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SortedFlags returns s's definitions ordered by FlagId key, for callers
// that need deterministic iteration (e.g. wire.Encode).
func (s Snapshot) SortedFlags() []flag.Definition {
	keys := s.keys()
	out := make([]flag.Definition, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.Flags[k])
	}
	return out
}

// Fingerprint is a deterministic SHA-256 digest of s's flag content
// (not its Metadata.Version, which a producer may set independently of
// content). Two snapshots built from the same flags fingerprint
// identically regardless of map iteration order, following the
// teacher's computeETag pattern of hashing a canonical serialization.
func (s Snapshot) Fingerprint() string {
	h := sha256.New()
	for _, key := range s.keys() {
		def := s.Flags[key]
		fmt.Fprintf(h, "%s|%t|%s|%+v|", def.ID.Render(), def.Active, def.Salt, def.Default)
		for _, r := range def.Rules {
			fmt.Fprintf(h, "%+v;", r)
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
