package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Kind is the closed set of value variants a flag may declare.
type Kind string

const (
	KindBoolean Kind = "BOOLEAN"
	KindInteger Kind = "INTEGER"
	KindDouble  Kind = "DOUBLE"
	KindString  Kind = "STRING"
	KindEnum    Kind = "ENUM"
	KindStruct  Kind = "STRUCT"
)

// ErrTypeMismatch is returned when a runtime value's tag disagrees with a
// flag's declared type.
var ErrTypeMismatch = errors.New("value type mismatch")

// Enum is the (qualified type name, variant name) pair for an ENUM value.
type Enum struct {
	Name    string
	Variant string
}

// Value is the closed tagged variant every flag default/rule value carries.
// Exactly one of the typed fields is meaningful, selected by Kind.
type Value struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Double float64
	Str    string
	Enum   Enum
	Struct map[string]any
}

func Bool(b bool) Value             { return Value{Kind: KindBoolean, Bool: b} }
func Int(i int64) Value             { return Value{Kind: KindInteger, Int: i} }
func Double(d float64) Value        { return Value{Kind: KindDouble, Double: d} }
func String(s string) Value         { return Value{Kind: KindString, Str: s} }
func EnumValue(name, variant string) Value {
	return Value{Kind: KindEnum, Enum: Enum{Name: name, Variant: variant}}
}
func Struct(m map[string]any) Value { return Value{Kind: KindStruct, Struct: m} }

// SameKind reports whether v and other declare the same variant.
func (v Value) SameKind(other Value) bool { return v.Kind == other.Kind }

// CheckKind returns ErrTypeMismatch if v is not of the expected kind.
func (v Value) CheckKind(expected Kind) error {
	if v.Kind != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, expected, v.Kind)
	}
	return nil
}

// Equal reports deep equality between two values of the same kind.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindBoolean:
		return v.Bool == other.Bool
	case KindInteger:
		return v.Int == other.Int
	case KindDouble:
		return v.Double == other.Double
	case KindString:
		return v.Str == other.Str
	case KindEnum:
		return v.Enum == other.Enum
	case KindStruct:
		return structEqual(v.Struct, other.Struct)
	default:
		return false
	}
}

func structEqual(a, b map[string]any) bool {
	aj, errA := json.Marshal(sortedMap(a))
	bj, errB := json.Marshal(sortedMap(b))
	if errA != nil || errB != nil {
		return false
	}
	return string(aj) == string(bj)
}

// sortedMap returns a representation whose JSON encoding is key-ordered,
// used only for comparison (encoding/json already sorts map[string]any
// keys, this exists to make that explicit and future-proof).
func sortedMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out[k] = m[k]
	}
	return out
}

// typedValueWire is the TypedValue wire shape from spec §6.1.
type typedValueWire struct {
	Type  Kind            `json:"type"`
	Value json.RawMessage `json:"value"`
}

type enumWire struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
}

// MarshalJSON renders v as the tagged {"type":...,"value":...} wire shape.
func (v Value) MarshalJSON() ([]byte, error) {
	var raw any
	switch v.Kind {
	case KindBoolean:
		raw = v.Bool
	case KindInteger:
		raw = v.Int
	case KindDouble:
		raw = v.Double
	case KindString:
		raw = v.Str
	case KindEnum:
		raw = enumWire{Name: v.Enum.Name, Variant: v.Enum.Variant}
	case KindStruct:
		raw = sortedMap(v.Struct)
	default:
		return nil, fmt.Errorf("cannot marshal value with unknown kind %q", v.Kind)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(typedValueWire{Type: v.Kind, Value: encoded})
}

// UnmarshalJSON parses the {"type":...,"value":...} wire shape. It does not
// validate a STRUCT value against a declared shape; wire.Decode applies the
// flag's wire.StructValidator after unmarshaling.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w typedValueWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("invalid TypedValue: %w", err)
	}
	switch w.Type {
	case KindBoolean:
		var b bool
		if err := json.Unmarshal(w.Value, &b); err != nil {
			return fmt.Errorf("invalid BOOLEAN value: %w", err)
		}
		*v = Bool(b)
	case KindInteger:
		var i int64
		if err := json.Unmarshal(w.Value, &i); err != nil {
			return fmt.Errorf("invalid INTEGER value: %w", err)
		}
		*v = Int(i)
	case KindDouble:
		var d float64
		if err := json.Unmarshal(w.Value, &d); err != nil {
			return fmt.Errorf("invalid DOUBLE value: %w", err)
		}
		*v = Double(d)
	case KindString:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return fmt.Errorf("invalid STRING value: %w", err)
		}
		*v = String(s)
	case KindEnum:
		var e enumWire
		if err := json.Unmarshal(w.Value, &e); err != nil {
			return fmt.Errorf("invalid ENUM value: %w", err)
		}
		*v = EnumValue(e.Name, e.Variant)
	case KindStruct:
		var m map[string]any
		if err := json.Unmarshal(w.Value, &m); err != nil {
			return fmt.Errorf("invalid STRUCT value: %w", err)
		}
		*v = Struct(m)
	default:
		return fmt.Errorf("unknown TypedValue type %q", w.Type)
	}
	return nil
}
