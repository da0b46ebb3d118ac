package model

import "fmt"

// ExprKind tags a node in a constraint expression tree
type ExprKind string

const (
	// ExprLiteral is a literal value (possibly a quantity with unit)
	ExprLiteral ExprKind = "literal"
	// ExprAttributeRef references an attribute by name on the
	// requirement's subject, read from the subject's resolved view
	ExprAttributeRef ExprKind = "attribute"
	// ExprCompare applies a comparison operator to two sub-expressions
	ExprCompare ExprKind = "compare"
	// ExprSizeOf counts a relationship collection of the requirement
	// (e.g. its stakeholders)
	ExprSizeOf ExprKind = "size_of"
)

// CompareOp is a comparison operator
type CompareOp string

const (
	OpEq CompareOp = "=="
	OpNe CompareOp = "!="
	OpLt CompareOp = "<"
	OpLe CompareOp = "<="
	OpGt CompareOp = ">"
	OpGe CompareOp = ">="
)

// ValidCompareOp reports whether op is a known comparison operator
func ValidCompareOp(op CompareOp) bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// Collection names a relationship collection a size query can count
type Collection string

const (
	CollectionStakeholders Collection = "stakeholders"
	CollectionChildren     Collection = "children"
)

// ConstraintExpr is a node in a small boolean expression tree over
// literals, attribute references, comparisons, and collection size
// queries. The top-level expression of a requirement must evaluate
// to a boolean.
type ConstraintExpr struct {
	Kind ExprKind `json:"kind"`

	// ExprLiteral
	Literal Value `json:"literal,omitempty"`

	// ExprAttributeRef
	Attribute string `json:"attribute,omitempty"`

	// ExprCompare
	Op    CompareOp       `json:"op,omitempty"`
	Left  *ConstraintExpr `json:"left,omitempty"`
	Right *ConstraintExpr `json:"right,omitempty"`

	// ExprSizeOf
	Collection Collection `json:"collection,omitempty"`
}

// LiteralExpr builds a literal node
func LiteralExpr(v Value) *ConstraintExpr {
	return &ConstraintExpr{Kind: ExprLiteral, Literal: v}
}

// AttributeRefExpr builds an attribute reference node
func AttributeRefExpr(name string) *ConstraintExpr {
	return &ConstraintExpr{Kind: ExprAttributeRef, Attribute: name}
}

// CompareExpr builds a comparison node
func CompareExpr(op CompareOp, left, right *ConstraintExpr) *ConstraintExpr {
	return &ConstraintExpr{Kind: ExprCompare, Op: op, Left: left, Right: right}
}

// SizeOfExpr builds a collection size node
func SizeOfExpr(c Collection) *ConstraintExpr {
	return &ConstraintExpr{Kind: ExprSizeOf, Collection: c}
}

func (e *ConstraintExpr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ExprLiteral:
		return e.Literal.String()
	case ExprAttributeRef:
		return "subject." + e.Attribute
	case ExprCompare:
		return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
	case ExprSizeOf:
		return fmt.Sprintf("size(%s)", e.Collection)
	}
	return string(e.Kind)
}
