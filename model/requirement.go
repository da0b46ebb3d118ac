package model

// RequirementSpec pairs a requirement element with its subject, its
// stakeholders, and the constraint that must hold of the subject.
// Stakeholder order is the declaration order from the source model.
type RequirementSpec struct {
	Element      string          `json:"element"`
	Subject      string          `json:"subject"`
	Stakeholders []string        `json:"stakeholders,omitempty"`
	Constraint   *ConstraintExpr `json:"constraint,omitempty"`
}
