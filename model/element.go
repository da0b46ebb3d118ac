// Package model defines the typed model elements and relationship edges
// that the sysmod engine operates on: parts, requirements, attributes,
// actions, and stakeholders, connected by composition and specialization.
//
// The package is pure data. Loading is done by the loader package,
// traversal and merging by resolve, constraint checking by eval.
package model

// Kind classifies a model element
type Kind string

const (
	KindPart        Kind = "part"
	KindRequirement Kind = "requirement"
	KindAttribute   Kind = "attribute"
	KindAction      Kind = "action"
	KindStakeholder Kind = "stakeholder"
)

// ValidKind reports whether k is one of the element kinds this engine models
func ValidKind(k Kind) bool {
	switch k {
	case KindPart, KindRequirement, KindAttribute, KindAction, KindStakeholder:
		return true
	}
	return false
}

// Element is a single model element. Identity is the ID; ShortName and
// Name are optional labels carried through from the source notation.
// An element is exclusively owned by at most one composing parent;
// Owner is empty for root elements, which are owned by the store itself.
type Element struct {
	ID        string `json:"id"`
	ShortName string `json:"short_name,omitempty"`
	Name      string `json:"name,omitempty"`
	Kind      Kind   `json:"kind"`
	Owner     string `json:"owner,omitempty"`
	Abstract  bool   `json:"abstract,omitempty"`
}

// Label returns the most specific human-readable identifier available
func (e *Element) Label() string {
	if e.Name != "" {
		return e.Name
	}
	if e.ShortName != "" {
		return e.ShortName
	}
	return e.ID
}

// SpecializationKind distinguishes plain subtyping from redefinition edges
type SpecializationKind string

const (
	SpecSubtype      SpecializationKind = "subtype"
	SpecRedefinition SpecializationKind = "redefinition"
)

// SpecializationEdge is a directed "is a more specific kind of" edge from
// Child to Parent. The specialization graph must be acyclic; multiple
// inheritance is permitted.
type SpecializationEdge struct {
	Child  string             `json:"child"`
	Parent string             `json:"parent"`
	Kind   SpecializationKind `json:"kind"`
}
