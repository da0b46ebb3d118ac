// Package errors provides error handling for sysmod.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Structured sentinel errors for model diagnostics
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := resolver.Resolve(id); err != nil {
//	    return errors.Wrap(err, "failed to resolve element")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrSpecializationCycle) {
//	    // handle cycle
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for model diagnostics.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add the offending element ids
// while preserving the type.
var (
	// ErrDuplicateID indicates an element id was declared more than once
	ErrDuplicateID = New("duplicate element id")

	// ErrDanglingReference indicates an edge references an element id
	// that does not exist in the store. Detected lazily at resolution
	// time so that out-of-order loading still works.
	ErrDanglingReference = New("dangling element reference")

	// ErrSpecializationCycle indicates the specialization graph contains
	// a cycle
	ErrSpecializationCycle = New("specialization cycle")

	// ErrAttributeConflict indicates two incompatible declarations of the
	// same attribute name met during specialization merging
	ErrAttributeConflict = New("attribute conflict")

	// ErrUnitMismatch indicates a comparison between quantities of
	// incompatible physical dimensions
	ErrUnitMismatch = New("unit dimension mismatch")

	// ErrUnsupportedBranching indicates an action step declares more than
	// one successor; this engine models strictly sequential flows
	ErrUnsupportedBranching = New("unsupported branching in action flow")

	// ErrNotFound indicates the requested element does not exist
	ErrNotFound = New("element not found")

	// ErrStoreFrozen indicates a mutation was attempted after resolution
	// began
	ErrStoreFrozen = New("store is frozen")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}
