package model

import "fmt"

// ValueKind tags the runtime type of an attribute value
type ValueKind string

const (
	ValueUnset    ValueKind = "unset"
	ValueQuantity ValueKind = "quantity"
	ValueString   ValueKind = "string"
	ValueBool     ValueKind = "bool"
)

// Value is an attribute value. Unset is a first-class state: partially
// specified models are legal during incremental authoring, and constraint
// evaluation over an unset value yields Indeterminate rather than an error.
type Value struct {
	Kind     ValueKind `json:"kind"`
	Quantity Quantity  `json:"quantity,omitempty"`
	Str      string    `json:"str,omitempty"`
	Bool     bool      `json:"bool,omitempty"`
}

// Unset returns the unset value
func Unset() Value {
	return Value{Kind: ValueUnset}
}

// QuantityValue wraps a quantity as a value
func QuantityValue(q Quantity) Value {
	return Value{Kind: ValueQuantity, Quantity: q}
}

// StringValue wraps a string (or enumerated literal) as a value
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// BoolValue wraps a boolean as a value
func BoolValue(b bool) Value {
	return Value{Kind: ValueBool, Bool: b}
}

// IsSet reports whether the value holds anything
func (v Value) IsSet() bool {
	return v.Kind != ValueUnset
}

func (v Value) String() string {
	switch v.Kind {
	case ValueQuantity:
		return v.Quantity.String()
	case ValueString:
		return v.Str
	case ValueBool:
		return fmt.Sprintf("%t", v.Bool)
	}
	return "<unset>"
}
