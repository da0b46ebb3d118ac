// Package eval evaluates requirement constraints against resolved
// attribute values, producing Satisfied, Violated, or Indeterminate
// verdicts. Units are first-class: comparing quantities of incompatible
// physical dimensions is an ErrUnitMismatch, never a raw magnitude
// comparison.
package eval

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mbsekit/sysmod/errors"
	"github.com/mbsekit/sysmod/model"
	"github.com/mbsekit/sysmod/resolve"
	"github.com/mbsekit/sysmod/store"
)

// Evaluator checks requirement constraints over a frozen store
type Evaluator struct {
	store    *store.Store
	resolver *resolve.Resolver
	log      *zap.SugaredLogger
}

// New creates an evaluator sharing the given resolver's memoized views
func New(st *store.Store, resolver *resolve.Resolver, log *zap.SugaredLogger) *Evaluator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Evaluator{store: st, resolver: resolver, log: log}
}

// indeterminate is an internal signal carrying the reason a constraint
// cannot be decided. It never escapes Evaluate.
type indeterminate struct {
	reason string
}

func (e *indeterminate) Error() string {
	return "indeterminate: " + e.reason
}

// Evaluate resolves the requirement's subject, substitutes attribute
// references with resolved values, and evaluates the constraint tree.
//
// A missing requirement spec, a subject that is not a concrete part, a
// type-check failure, or a unit mismatch is an error. An unset attribute
// or an unresolvable subject yields an Indeterminate verdict instead.
func (e *Evaluator) Evaluate(requirementID string) (Verdict, error) {
	spec, err := e.store.Requirement(requirementID)
	if err != nil {
		return Verdict{}, err
	}
	if spec.Subject == "" {
		return Verdict{}, errors.Wrapf(errors.ErrDanglingReference,
			"requirement %q has no subject", requirementID)
	}

	view, err := e.resolver.Resolve(spec.Subject)
	if err != nil {
		// Incremental authoring: an unresolvable subject defers the
		// verdict, it does not fail the requirement.
		return Indeterminate(fmt.Sprintf("subject %q does not resolve: %v", spec.Subject, err)), nil
	}
	if view.Element.Kind != model.KindPart {
		return Verdict{}, errors.Newf(
			"requirement %q subject %q is a %s; the subject must be a concrete part usage",
			requirementID, spec.Subject, view.Element.Kind)
	}
	if view.Element.Abstract {
		return Verdict{}, errors.Newf(
			"requirement %q subject %q is abstract; the subject must be a concrete part usage",
			requirementID, spec.Subject)
	}

	if spec.Constraint == nil {
		return Indeterminate("requirement declares no constraint expression"), nil
	}

	result, err := e.evalExpr(spec, view, spec.Constraint)
	if err != nil {
		var ind *indeterminate
		if errors.As(err, &ind) {
			return Indeterminate(ind.reason), nil
		}
		return Verdict{}, errors.Wrapf(err, "requirement %q", requirementID)
	}
	if result.Kind != model.ValueBool {
		return Verdict{}, errors.Newf(
			"requirement %q: constraint %s does not type-check to boolean",
			requirementID, spec.Constraint)
	}

	e.log.Debugw("evaluated requirement",
		"requirement", requirementID,
		"subject", spec.Subject,
		"constraint", spec.Constraint.String(),
		"holds", result.Bool,
	)

	if result.Bool {
		return Satisfied(), nil
	}
	return Violated(spec.Constraint.String()), nil
}

func (e *Evaluator) evalExpr(spec *model.RequirementSpec, view *resolve.View, expr *model.ConstraintExpr) (model.Value, error) {
	switch expr.Kind {
	case model.ExprLiteral:
		return expr.Literal, nil

	case model.ExprAttributeRef:
		slot, ok := view.Slot(expr.Attribute)
		if !ok {
			return model.Value{}, &indeterminate{
				reason: fmt.Sprintf("attribute %q is not present on subject %q", expr.Attribute, view.Element.ID),
			}
		}
		if !slot.Value.IsSet() {
			return model.Value{}, &indeterminate{
				reason: fmt.Sprintf("attribute %q on subject %q is unset", expr.Attribute, view.Element.ID),
			}
		}
		return slot.Value, nil

	case model.ExprSizeOf:
		switch expr.Collection {
		case model.CollectionStakeholders:
			return model.QuantityValue(model.Dimensionless(float64(len(spec.Stakeholders)))), nil
		case model.CollectionChildren:
			return model.QuantityValue(model.Dimensionless(float64(len(view.Children)))), nil
		}
		return model.Value{}, errors.Newf("unknown collection %q in size query", expr.Collection)

	case model.ExprCompare:
		if expr.Left == nil || expr.Right == nil {
			return model.Value{}, errors.Newf("comparison %q is missing an operand", expr.Op)
		}
		left, err := e.evalExpr(spec, view, expr.Left)
		if err != nil {
			return model.Value{}, err
		}
		right, err := e.evalExpr(spec, view, expr.Right)
		if err != nil {
			return model.Value{}, err
		}
		holds, err := compare(expr.Op, left, right)
		if err != nil {
			return model.Value{}, err
		}
		return model.BoolValue(holds), nil
	}

	return model.Value{}, errors.Newf("unknown expression kind %q", expr.Kind)
}

// compare applies a comparison operator to two evaluated values.
// Quantities are normalized to their canonical base unit first; ordering
// operators are only defined for quantities.
func compare(op model.CompareOp, left, right model.Value) (bool, error) {
	if !model.ValidCompareOp(op) {
		return false, errors.Newf("unknown comparison operator %q", op)
	}
	if left.Kind != right.Kind {
		return false, errors.Newf("cannot compare %s value with %s value", left.Kind, right.Kind)
	}

	switch left.Kind {
	case model.ValueQuantity:
		ord, err := left.Quantity.Compare(right.Quantity)
		if err != nil {
			return false, err
		}
		switch op {
		case model.OpEq:
			return ord == 0, nil
		case model.OpNe:
			return ord != 0, nil
		case model.OpLt:
			return ord < 0, nil
		case model.OpLe:
			return ord <= 0, nil
		case model.OpGt:
			return ord > 0, nil
		case model.OpGe:
			return ord >= 0, nil
		}

	case model.ValueString:
		switch op {
		case model.OpEq:
			return left.Str == right.Str, nil
		case model.OpNe:
			return left.Str != right.Str, nil
		}
		return false, errors.Newf("operator %q is not defined for string values", op)

	case model.ValueBool:
		switch op {
		case model.OpEq:
			return left.Bool == right.Bool, nil
		case model.OpNe:
			return left.Bool != right.Bool, nil
		}
		return false, errors.Newf("operator %q is not defined for boolean values", op)
	}

	return false, errors.Newf("cannot compare %s values", left.Kind)
}
