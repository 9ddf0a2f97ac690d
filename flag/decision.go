package flag

// DecisionKind is the closed set of reasons an evaluation can produce
// (spec §4.3).
type DecisionKind string

const (
	DecisionContainerDisabled DecisionKind = "CONTAINER_DISABLED"
	DecisionFlagInactive      DecisionKind = "FLAG_INACTIVE"
	DecisionOverride          DecisionKind = "OVERRIDE"
	DecisionRuleMatched       DecisionKind = "RULE_MATCHED"
	DecisionDefaultReturned   DecisionKind = "DEFAULT_RETURNED"
)

// SkippedByRampUp records the first rule skipped because it failed its
// ramp-up gate (spec §4.3 step 2c bounds trace cost to just the first).
type SkippedByRampUp struct {
	RuleIndex int
	Bucket    int
	RampUp    float64
}

// Decision is the tagged outcome of an evaluation. Exactly the fields
// relevant to Kind are meaningful.
type Decision struct {
	Kind      DecisionKind
	RuleIndex int     // set for RuleMatched
	Bucket    int     // set for RuleMatched
	RampUp    float64 // set for RuleMatched
	// SkippedRampUp is set only for DecisionDefaultReturned when at least
	// one rule matched its criteria but failed the ramp-up gate.
	SkippedRampUp *SkippedByRampUp
}
