package model

// TerminalStep is the reserved successor name marking the end of an
// action flow. A step whose successor is TerminalStep transitions the
// walk into the implicit Done state.
const TerminalStep = "done"

// ActionStep is one named step of an action's declared flow. Exactly one
// step per action carries First; Successors holds the declared `then`
// targets by step name. The sequential core permits at most one
// successor; more than one is flagged as unsupported branching.
type ActionStep struct {
	Action     string   `json:"action"`
	Name       string   `json:"name"`
	First      bool     `json:"first,omitempty"`
	Successors []string `json:"successors,omitempty"`
}

// Terminal reports whether the step transitions directly to Done
func (s ActionStep) Terminal() bool {
	for _, succ := range s.Successors {
		if succ == TerminalStep {
			return true
		}
	}
	return false
}
