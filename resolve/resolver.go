// Package resolve computes effective attribute and feature sets by
// walking specialization edges and applying redefinition overrides.
//
// For a target element the resolver visits its ancestors in topological
// order (most general first, ties broken by declaration order) and merges
// each ancestor's declared slots into an accumulating map keyed by
// attribute name. Only a slot tagged as a redefinition may override an
// inherited name; a plain re-declaration is a modeling error. The merge
// order makes override precedence fully deterministic, so multiple
// inheritance needs no language-level resolution rules.
package resolve

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mbsekit/sysmod/errors"
	"github.com/mbsekit/sysmod/model"
	"github.com/mbsekit/sysmod/store"
)

// View is the resolved, flattened feature set of one element: every
// ancestor's non-overridden slots plus the element's own, with
// redefinitions applied. Views are derived data and never mutated after
// construction.
type View struct {
	Element *model.Element

	// Ancestors in merge order, most general first. Excludes the
	// element itself.
	Ancestors []string

	// Children ids visible on the element, inherited ones first,
	// deduplicated.
	Children []string

	slots     map[string]model.AttributeSlot
	slotOrder []string
}

// Slot returns the effective slot for an attribute name
func (v *View) Slot(name string) (model.AttributeSlot, bool) {
	s, ok := v.slots[name]
	return s, ok
}

// Slots returns the effective slots in first-seen merge order
func (v *View) Slots() []model.AttributeSlot {
	out := make([]model.AttributeSlot, 0, len(v.slotOrder))
	for _, name := range v.slotOrder {
		out = append(out, v.slots[name])
	}
	return out
}

// Resolver resolves elements against a frozen store. Views are memoized;
// resolving the same element twice yields the identical view. Safe for
// concurrent use once the store is frozen.
type Resolver struct {
	store *store.Store
	log   *zap.SugaredLogger

	mu   sync.Mutex
	memo map[string]*View
}

// New creates a resolver over st and freezes it: resolution marks the
// end of the load phase.
func New(st *store.Store, log *zap.SugaredLogger) *Resolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	st.Freeze()
	return &Resolver{
		store: st,
		log:   log,
		memo:  make(map[string]*View),
	}
}

// Resolve computes the resolved view of an element.
//
// Errors: ErrNotFound for an unknown id, ErrDanglingReference for a
// specialization edge to an unknown id, ErrSpecializationCycle naming the
// cycle, ErrAttributeConflict for illegal re-declaration, redefinition of
// nothing, or type-incompatible redefinition.
func (r *Resolver) Resolve(id string) (*View, error) {
	r.mu.Lock()
	if v, ok := r.memo[id]; ok {
		r.mu.Unlock()
		return v, nil
	}
	r.mu.Unlock()

	el, err := r.store.Element(id)
	if err != nil {
		return nil, err
	}

	order, ancestorSets, err := r.ancestry(id)
	if err != nil {
		return nil, err
	}

	view := &View{
		Element:   el,
		Ancestors: order[:len(order)-1],
		slots:     make(map[string]model.AttributeSlot),
	}

	for _, ancestor := range order {
		for _, slot := range r.store.SlotsOf(ancestor) {
			if err := mergeSlot(view, slot, ancestorSets); err != nil {
				return nil, err
			}
		}
	}

	seen := make(map[string]bool)
	for _, ancestor := range order {
		for _, child := range r.store.ChildrenOf(ancestor) {
			if !seen[child] {
				seen[child] = true
				view.Children = append(view.Children, child)
			}
		}
	}

	r.log.Debugw("resolved element",
		"element", id,
		"ancestors", len(view.Ancestors),
		"slots", len(view.slotOrder),
	)

	r.mu.Lock()
	r.memo[id] = view
	r.mu.Unlock()
	return view, nil
}

// mergeSlot folds one declared slot into the accumulating view.
// ancestorSets tells, for every element already ordered, which elements
// it inherits from; a redefinition must actually inherit the slot it
// overrides, not merely share a merge order with it.
func mergeSlot(view *View, slot model.AttributeSlot, ancestorSets map[string]map[string]bool) error {
	existing, present := view.slots[slot.Name]

	if !present {
		if slot.Op == model.SlotRedefine {
			return errors.Wrapf(errors.ErrAttributeConflict,
				"attribute %q on %q redefines nothing: no inherited slot of that name",
				slot.Name, slot.Owner)
		}
		view.slots[slot.Name] = slot
		view.slotOrder = append(view.slotOrder, slot.Name)
		return nil
	}

	if slot.Op != model.SlotRedefine {
		return errors.Wrapf(errors.ErrAttributeConflict,
			"attribute %q declared on both %q and %q without redefinition",
			slot.Name, existing.Owner, slot.Owner)
	}
	if !ancestorSets[slot.Owner][existing.Owner] {
		return errors.Wrapf(errors.ErrAttributeConflict,
			"attribute %q on %q redefines a slot of %q it does not inherit",
			slot.Name, slot.Owner, existing.Owner)
	}
	if !slot.TypeCompatibleWith(existing.DeclaredType) {
		return errors.Wrapf(errors.ErrAttributeConflict,
			"attribute %q on %q: redefinition type %q incompatible with inherited type %q",
			slot.Name, slot.Owner, slot.DeclaredType, existing.DeclaredType)
	}
	if slot.DeclaredType == "" {
		slot.DeclaredType = existing.DeclaredType
	}
	view.slots[slot.Name] = slot
	return nil
}

// ancestry returns the target's ancestors plus the target itself in
// merge order, and for every ordered element the set of elements it
// (transitively) specializes.
func (r *Resolver) ancestry(id string) ([]string, map[string]map[string]bool, error) {
	var order []string
	visited := make(map[string]bool)
	onPath := make(map[string]bool)
	var path []string
	ancestorSets := make(map[string]map[string]bool)

	var visit func(cur string) error
	visit = func(cur string) error {
		if onPath[cur] {
			return errors.Wrapf(errors.ErrSpecializationCycle,
				"cycle through %s", formatCycle(path, cur))
		}
		if visited[cur] {
			return nil
		}
		if !r.store.Has(cur) {
			return errors.Wrapf(errors.ErrDanglingReference,
				"specialization target %q does not exist", cur)
		}

		onPath[cur] = true
		path = append(path, cur)

		ancestors := make(map[string]bool)
		for _, edge := range r.store.SpecializationsOf(cur) {
			if err := visit(edge.Parent); err != nil {
				return err
			}
			ancestors[edge.Parent] = true
			for a := range ancestorSets[edge.Parent] {
				ancestors[a] = true
			}
		}

		onPath[cur] = false
		path = path[:len(path)-1]
		visited[cur] = true
		ancestorSets[cur] = ancestors
		order = append(order, cur)
		return nil
	}

	if err := visit(id); err != nil {
		return nil, nil, err
	}
	return order, ancestorSets, nil
}

// formatCycle renders the offending part of the path, closing the loop
// on the revisited element
func formatCycle(path []string, repeat string) string {
	start := 0
	for i, id := range path {
		if id == repeat {
			start = i
			break
		}
	}
	return strings.Join(append(append([]string(nil), path[start:]...), repeat), " -> ")
}
