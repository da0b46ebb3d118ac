// Package store holds all model elements and raw relationship edges in
// memory for one validation pass. The store is populated once by the
// loader, then frozen before resolution begins; after Freeze all reads
// see a consistent, fully-loaded snapshot and are safe to run
// concurrently.
package store

import (
	"sync"

	"github.com/mbsekit/sysmod/errors"
	"github.com/mbsekit/sysmod/model"
)

// Store is the in-memory element repository. Mutation is only legal
// during the load phase; Freeze makes it permanently read-only.
//
// Edge targets are deliberately NOT checked at insertion time, so the
// loader can declare elements and edges in any order. Dangling
// references surface at resolution time instead.
type Store struct {
	mu     sync.RWMutex
	frozen bool

	elements map[string]*model.Element
	order    []string // element ids in declaration order

	children     map[string][]string
	specsByChild map[string][]model.SpecializationEdge
	slots        map[string][]model.AttributeSlot
	requirements map[string]*model.RequirementSpec
	steps        map[string][]model.ActionStep
}

// New creates an empty store ready for one load phase
func New() *Store {
	return &Store{
		elements:     make(map[string]*model.Element),
		children:     make(map[string][]string),
		specsByChild: make(map[string][]model.SpecializationEdge),
		slots:        make(map[string][]model.AttributeSlot),
		requirements: make(map[string]*model.RequirementSpec),
		steps:        make(map[string][]model.ActionStep),
	}
}

// AddElement registers an element. Reusing an id is ErrDuplicateID; the
// duplicate is rejected, the existing element stays.
func (s *Store) AddElement(el model.Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return errors.Wrapf(errors.ErrStoreFrozen, "cannot add element %q", el.ID)
	}
	if el.ID == "" {
		return errors.New("element id must not be empty")
	}
	if !model.ValidKind(el.Kind) {
		return errors.Newf("element %q has unknown kind %q", el.ID, el.Kind)
	}
	if _, exists := s.elements[el.ID]; exists {
		return errors.Wrapf(errors.ErrDuplicateID, "element %q", el.ID)
	}

	stored := el
	s.elements[el.ID] = &stored
	s.order = append(s.order, el.ID)
	if el.Owner != "" {
		s.children[el.Owner] = append(s.children[el.Owner], el.ID)
	}
	return nil
}

// AddEdge registers a specialization edge. Unknown endpoints are
// tolerated here and reported as ErrDanglingReference at resolution.
func (s *Store) AddEdge(edge model.SpecializationEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return errors.Wrapf(errors.ErrStoreFrozen, "cannot add edge %q -> %q", edge.Child, edge.Parent)
	}
	if edge.Child == "" || edge.Parent == "" {
		return errors.New("specialization edge endpoints must not be empty")
	}
	s.specsByChild[edge.Child] = append(s.specsByChild[edge.Child], edge)
	return nil
}

// AddSlot registers an attribute slot on its owning element
func (s *Store) AddSlot(slot model.AttributeSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return errors.Wrapf(errors.ErrStoreFrozen, "cannot add slot %q on %q", slot.Name, slot.Owner)
	}
	if slot.Owner == "" || slot.Name == "" {
		return errors.New("attribute slot needs an owner and a name")
	}
	for _, existing := range s.slots[slot.Owner] {
		if existing.Name == slot.Name {
			return errors.Wrapf(errors.ErrDuplicateID,
				"attribute %q declared twice on element %q", slot.Name, slot.Owner)
		}
	}
	s.slots[slot.Owner] = append(s.slots[slot.Owner], slot)
	return nil
}

// SetRequirement attaches a requirement spec to its element
func (s *Store) SetRequirement(spec model.RequirementSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return errors.Wrapf(errors.ErrStoreFrozen, "cannot set requirement %q", spec.Element)
	}
	if spec.Element == "" {
		return errors.New("requirement spec needs an element id")
	}
	if _, exists := s.requirements[spec.Element]; exists {
		return errors.Wrapf(errors.ErrDuplicateID, "requirement spec for %q", spec.Element)
	}
	stored := spec
	s.requirements[spec.Element] = &stored
	return nil
}

// AddStep appends an action step to its owning action's declared chain
func (s *Store) AddStep(step model.ActionStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return errors.Wrapf(errors.ErrStoreFrozen, "cannot add step %q to %q", step.Name, step.Action)
	}
	if step.Action == "" || step.Name == "" {
		return errors.New("action step needs an owning action and a name")
	}
	s.steps[step.Action] = append(s.steps[step.Action], step)
	return nil
}

// Freeze makes the store read-only. Resolution must not begin before
// Freeze; once frozen the store never mutates again.
func (s *Store) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Frozen reports whether the load phase has ended
func (s *Store) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozen
}

// Element looks up an element by id
func (s *Store) Element(id string) (*model.Element, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	el, ok := s.elements[id]
	if !ok {
		return nil, errors.NewNotFoundError("element %q", id)
	}
	return el, nil
}

// Has reports whether an element id exists
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.elements[id]
	return ok
}

// ChildrenOf returns the ids of elements composed into id, in
// declaration order
func (s *Store) ChildrenOf(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.children[id]...)
}

// EdgesFrom returns the specialization edges leaving id with the given
// kind, in declaration order
func (s *Store) EdgesFrom(id string, kind model.SpecializationKind) []model.SpecializationEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.SpecializationEdge
	for _, e := range s.specsByChild[id] {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// SpecializationsOf returns every specialization edge leaving id,
// whatever its kind, in declaration order
func (s *Store) SpecializationsOf(id string) []model.SpecializationEdge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SpecializationEdge(nil), s.specsByChild[id]...)
}

// SlotsOf returns the attribute slots declared directly on id, in
// declaration order. Inherited slots are the resolver's business.
func (s *Store) SlotsOf(id string) []model.AttributeSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.AttributeSlot(nil), s.slots[id]...)
}

// Requirement returns the requirement spec attached to id
func (s *Store) Requirement(id string) (*model.RequirementSpec, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	spec, ok := s.requirements[id]
	if !ok {
		return nil, errors.NewNotFoundError("requirement spec for %q", id)
	}
	return spec, nil
}

// StepsOf returns the declared steps of an action, in declaration order
func (s *Store) StepsOf(actionID string) []model.ActionStep {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ActionStep(nil), s.steps[actionID]...)
}

// Elements returns all elements in declaration order
func (s *Store) Elements() []*model.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.elements[id])
	}
	return out
}

// ElementsOfKind returns the ids of all elements of the given kind, in
// declaration order
func (s *Store) ElementsOfKind(kind model.Kind) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for _, id := range s.order {
		if s.elements[id].Kind == kind {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of stored elements
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}
