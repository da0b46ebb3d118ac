package model

// SlotOp tags how an attribute slot relates to inherited slots of the
// same name. Redefinition-as-override is an explicit tagged operation,
// not implicit shadowing, so conflicts are detectable statically.
type SlotOp string

const (
	// SlotDeclare introduces a new attribute name on the owning element
	SlotDeclare SlotOp = "declare"
	// SlotRedefine overrides an inherited slot of the same name
	SlotRedefine SlotOp = "redefine"
)

// AttributeSlot is an attribute declaration on an element. A redefinition
// slot must have an inherited slot of the same name reachable via some
// specialization edge, with a compatible declared type.
type AttributeSlot struct {
	Owner        string `json:"owner"`
	Name         string `json:"name"`
	DeclaredType string `json:"declared_type,omitempty"`
	Value        Value  `json:"value"`
	Op           SlotOp `json:"op"`
}

// TypeCompatibleWith reports whether a redefinition with this slot's
// declared type may override a slot declared as inheritedType. An empty
// declared type inherits the original declaration.
func (s AttributeSlot) TypeCompatibleWith(inheritedType string) bool {
	return s.DeclaredType == "" || inheritedType == "" || s.DeclaredType == inheritedType
}
