package wire

import (
	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/value"
)

// StructValidator checks a decoded STRUCT value against a flag's
// declared shape constraint. Returning a non-nil error fails decode with
// a SchemaViolation (spec §4.5).
type StructValidator func(map[string]any) error

// FlagSchema is one flag's compiled, declaration-time-known shape: its
// declared kind, a struct shape validator (STRUCT flags only), and the
// source-declared definition used both to fill missing flags
// (missing_declared_flag_strategy = UseSourceDeclared) and to
// reattach custom criteria a decoded snapshot can never carry on the
// wire (spec §9).
type FlagSchema struct {
	DeclaredKind  value.Kind
	Validator     StructValidator
	SourceDefault flag.Definition
}

// Schema is a container's compiled set of FlagSchemas, built once at
// declaration time (spec §4.5: "a compiled schema is produced once per
// container at declaration time").
type Schema struct {
	entries map[string]FlagSchema
}

// NewSchema returns an empty, ready-to-populate Schema.
func NewSchema() *Schema {
	return &Schema{entries: make(map[string]FlagSchema)}
}

// Register compiles def into the schema, keyed by its FlagId.
func (s *Schema) Register(def flag.Definition, validator StructValidator) {
	s.entries[def.ID.Render()] = FlagSchema{
		DeclaredKind:  def.DeclaredKind,
		Validator:     validator,
		SourceDefault: def,
	}
}

// Lookup returns the compiled schema for a rendered FlagId key.
func (s *Schema) Lookup(key string) (FlagSchema, bool) {
	entry, ok := s.entries[key]
	return entry, ok
}

// Keys returns every FlagId this schema declares, rendered.
func (s *Schema) Keys() []string {
	out := make([]string, 0, len(s.entries))
	for k := range s.entries {
		out = append(out, k)
	}
	return out
}
