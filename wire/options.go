package wire

// UnknownFlagKeyStrategy controls what decode does with an incoming
// flag key the schema doesn't declare (spec §6.3).
type UnknownFlagKeyStrategy int

const (
	// RejectUnknownFlagKey fails decode with FlagNotFound (the default).
	RejectUnknownFlagKey UnknownFlagKeyStrategy = iota
	// SkipUnknownFlagKey drops the entry and reports it via OnWarning.
	SkipUnknownFlagKey
)

// MissingDeclaredFlagStrategy controls what decode does when the schema
// declares a flag the incoming JSON doesn't mention (spec §6.3).
type MissingDeclaredFlagStrategy int

const (
	// UseSourceDeclared fills the gap from the compile-time definition
	// (the default).
	UseSourceDeclared MissingDeclaredFlagStrategy = iota
	// RejectMissingDeclaredFlag fails decode with FlagNotFound.
	RejectMissingDeclaredFlag
)

// Warning describes a non-fatal divergence decode tolerated under a
// lenient option (spec §7: "these do not poison the snapshot").
// DecodeID is the same request-scoped uuid for every warning raised by
// one Decode call, so a host's log aggregator can group warnings from a
// single payload without decode having to return a batch value.
type Warning struct {
	FlagKey  string
	Reason   string
	DecodeID string
}

// Options configures a single decode or apply_patch call.
type Options struct {
	UnknownFlagKeyStrategy      UnknownFlagKeyStrategy
	MissingDeclaredFlagStrategy MissingDeclaredFlagStrategy
	OnWarning                   func(Warning)
}

// DefaultOptions is Reject / UseSourceDeclared with no warning callback,
// matching spec §6.3's stated defaults.
func DefaultOptions() Options {
	return Options{
		UnknownFlagKeyStrategy:      RejectUnknownFlagKey,
		MissingDeclaredFlagStrategy: UseSourceDeclared,
	}
}

func (o Options) warn(flagKey, reason, decodeID string) {
	if o.OnWarning != nil {
		o.OnWarning(Warning{FlagKey: flagKey, Reason: reason, DecodeID: decodeID})
	}
}
