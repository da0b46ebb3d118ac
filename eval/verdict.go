package eval

// VerdictKind is the outcome class of a constraint evaluation
type VerdictKind string

const (
	// VerdictSatisfied means the constraint holds of the subject
	VerdictSatisfied VerdictKind = "satisfied"
	// VerdictViolated means the constraint evaluated to false
	VerdictViolated VerdictKind = "violated"
	// VerdictIndeterminate means the constraint cannot yet be decided,
	// e.g. a referenced attribute is unset or the subject does not
	// resolve. Not an error: partially specified models are legal.
	VerdictIndeterminate VerdictKind = "indeterminate"
)

// Verdict is the result of evaluating one requirement
type Verdict struct {
	Kind   VerdictKind `json:"kind"`
	Reason string      `json:"reason,omitempty"`
}

// Satisfied builds a satisfied verdict
func Satisfied() Verdict {
	return Verdict{Kind: VerdictSatisfied}
}

// Violated builds a violated verdict with an explanation
func Violated(reason string) Verdict {
	return Verdict{Kind: VerdictViolated, Reason: reason}
}

// Indeterminate builds an indeterminate verdict with the blocking reason
func Indeterminate(reason string) Verdict {
	return Verdict{Kind: VerdictIndeterminate, Reason: reason}
}

func (v Verdict) String() string {
	if v.Reason == "" {
		return string(v.Kind)
	}
	return string(v.Kind) + ": " + v.Reason
}
