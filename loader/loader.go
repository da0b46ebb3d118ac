// Package loader turns model documents into a populated element store.
//
// The loader owns every concern the core graph deliberately avoids:
// parsing, id assignment, and name-to-id wiring. The core packages only
// ever see resolved element ids. Structural problems (duplicate ids,
// malformed values) abort the affected element, not the whole store, so
// a partially broken document still yields a checkable model.
package loader

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mbsekit/sysmod/errors"
	"github.com/mbsekit/sysmod/model"
	"github.com/mbsekit/sysmod/store"
)

// Issue is a per-element load problem. The element it names was loaded
// partially or not at all; the rest of the store is unaffected.
type Issue struct {
	ElementID string
	Err       error
}

// Result is a loaded store plus the issues encountered on the way
type Result struct {
	Store  *store.Store
	Issues []Issue
}

// LoadFile reads and loads a YAML model document from disk
func LoadFile(path string, log *zap.SugaredLogger) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model file %s", path)
	}
	return Load(data, log)
}

// Load parses a YAML model document and populates a fresh store.
// The returned store is still unfrozen; resolution freezes it.
func Load(data []byte, log *zap.SugaredLogger) (*Result, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse model document")
	}

	result := &Result{Store: store.New()}

	// First pass: register elements so edges and slots can reference
	// ids declared later in the document.
	loaded := make([]bool, len(doc.Elements))
	for i := range doc.Elements {
		decl := &doc.Elements[i]
		if decl.ID == "" {
			decl.ID = uuid.NewString()
		}
		kind := model.Kind(strings.ToLower(decl.Kind))
		err := result.Store.AddElement(model.Element{
			ID:        decl.ID,
			ShortName: decl.ShortName,
			Name:      decl.Name,
			Kind:      kind,
			Owner:     decl.Owner,
			Abstract:  decl.Abstract,
		})
		if err != nil {
			result.Issues = append(result.Issues, Issue{ElementID: decl.ID, Err: err})
			continue
		}
		loaded[i] = true
	}

	// Second pass: edges, slots, requirement specs, step chains.
	for i := range doc.Elements {
		if !loaded[i] {
			continue
		}
		decl := &doc.Elements[i]
		if err := wireElement(result.Store, decl); err != nil {
			result.Issues = append(result.Issues, Issue{ElementID: decl.ID, Err: err})
		}
	}

	log.Infow("model document loaded",
		"elements", result.Store.Len(),
		"issues", len(result.Issues),
	)
	return result, nil
}

func wireElement(st *store.Store, decl *ElementDecl) error {
	for _, spec := range decl.Specializes {
		kind := model.SpecializationKind(spec.Kind)
		if kind == "" {
			kind = model.SpecSubtype
		}
		if kind != model.SpecSubtype && kind != model.SpecRedefinition {
			return errors.Newf("element %q: unknown specialization kind %q", decl.ID, spec.Kind)
		}
		err := st.AddEdge(model.SpecializationEdge{Child: decl.ID, Parent: spec.Target, Kind: kind})
		if err != nil {
			return err
		}
	}

	for _, attr := range decl.Attributes {
		value, err := buildValue(attr.Value, attr.Unit)
		if err != nil {
			return errors.Wrapf(err, "element %q attribute %q", decl.ID, attr.Name)
		}
		op := model.SlotDeclare
		if attr.Redefines {
			op = model.SlotRedefine
		}
		err = st.AddSlot(model.AttributeSlot{
			Owner:        decl.ID,
			Name:         attr.Name,
			DeclaredType: attr.Type,
			Value:        value,
			Op:           op,
		})
		if err != nil {
			return err
		}
	}

	if decl.Requirement != nil {
		if model.Kind(strings.ToLower(decl.Kind)) != model.KindRequirement {
			return errors.Newf("element %q declares a requirement spec but has kind %q", decl.ID, decl.Kind)
		}
		constraint, err := buildExpr(decl.Requirement.Constraint)
		if err != nil {
			return errors.Wrapf(err, "element %q constraint", decl.ID)
		}
		err = st.SetRequirement(model.RequirementSpec{
			Element:      decl.ID,
			Subject:      decl.Requirement.Subject,
			Stakeholders: decl.Requirement.Stakeholders,
			Constraint:   constraint,
		})
		if err != nil {
			return err
		}
	}

	if len(decl.Steps) > 0 {
		if model.Kind(strings.ToLower(decl.Kind)) != model.KindAction {
			return errors.Newf("element %q declares steps but has kind %q", decl.ID, decl.Kind)
		}
		for _, step := range decl.Steps {
			var successors []string
			if step.Then != "" {
				successors = append(successors, step.Then)
			}
			if step.Done {
				successors = append(successors, model.TerminalStep)
			}
			err := st.AddStep(model.ActionStep{
				Action:     decl.ID,
				Name:       step.Name,
				First:      step.First,
				Successors: successors,
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// buildValue converts a raw YAML scalar plus optional unit symbol into a
// typed value. A unit requires a numeric magnitude.
func buildValue(raw interface{}, unit string) (model.Value, error) {
	if raw == nil {
		if unit != "" {
			return model.Value{}, errors.Newf("unit %q given without a value", unit)
		}
		return model.Unset(), nil
	}

	switch v := raw.(type) {
	case int:
		return quantityValue(float64(v), unit)
	case int64:
		return quantityValue(float64(v), unit)
	case float64:
		return quantityValue(v, unit)
	case bool:
		if unit != "" {
			return model.Value{}, errors.Newf("boolean value cannot carry unit %q", unit)
		}
		return model.BoolValue(v), nil
	case string:
		if unit != "" {
			return model.Value{}, errors.Newf("string value cannot carry unit %q", unit)
		}
		return model.StringValue(v), nil
	}
	return model.Value{}, errors.Newf("unsupported value type %T", raw)
}

func quantityValue(magnitude float64, unit string) (model.Value, error) {
	q, err := model.NewQuantity(magnitude, unit)
	if err != nil {
		return model.Value{}, err
	}
	return model.QuantityValue(q), nil
}

// buildExpr converts a declared expression node into the core tree
func buildExpr(decl *ExprDecl) (*model.ConstraintExpr, error) {
	if decl == nil {
		return nil, nil
	}

	switch {
	case decl.Op != "":
		op := model.CompareOp(decl.Op)
		if !model.ValidCompareOp(op) {
			return nil, errors.Newf("unknown comparison operator %q", decl.Op)
		}
		if decl.Left == nil || decl.Right == nil {
			return nil, errors.Newf("operator %q needs both operands", decl.Op)
		}
		left, err := buildExpr(decl.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildExpr(decl.Right)
		if err != nil {
			return nil, err
		}
		return model.CompareExpr(op, left, right), nil

	case decl.Attribute != "":
		return model.AttributeRefExpr(decl.Attribute), nil

	case decl.SizeOf != "":
		collection := model.Collection(decl.SizeOf)
		if collection != model.CollectionStakeholders && collection != model.CollectionChildren {
			return nil, errors.Newf("unknown collection %q in size query", decl.SizeOf)
		}
		return model.SizeOfExpr(collection), nil

	default:
		value, err := buildValue(decl.Value, decl.Unit)
		if err != nil {
			return nil, err
		}
		if !value.IsSet() {
			return nil, errors.New("expression node declares no operator, attribute, size query, or literal")
		}
		return model.LiteralExpr(value), nil
	}
}
