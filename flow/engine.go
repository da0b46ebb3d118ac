// Package flow executes declared action step chains as deterministic
// finite state machines. States are the declared steps plus the implicit
// Start and Done states; the transition table comes straight from the
// first/then/done chain.
//
// Only strictly sequential flows are modeled. A step with more than one
// distinct successor is flagged as unsupported branching rather than
// guessing a fork/join semantics.
package flow

import (
	"context"

	"go.uber.org/zap"

	"github.com/mbsekit/sysmod/errors"
	"github.com/mbsekit/sysmod/model"
	"github.com/mbsekit/sysmod/store"
)

// StepObserver is invoked once per step, in declared order, during a run
type StepObserver func(step string)

// ValidationResult collects the structural issues of one action's flow
type ValidationResult struct {
	ActionID string
	Issues   []error
}

// Valid reports whether the flow can be run
func (r *ValidationResult) Valid() bool {
	return len(r.Issues) == 0
}

// Engine validates and walks action flows over a frozen store
type Engine struct {
	store *store.Store
	log   *zap.SugaredLogger
}

// New creates a flow engine
func New(st *store.Store, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{store: st, log: log}
}

// Validate checks an action's declared flow: exactly one first step, at
// most one successor per step, no dangling successors, every step
// reachable from Start, and a single terminal path to Done.
//
// An unknown or non-action element is an error; structural problems in
// the flow itself are recorded as issues on the result.
func (e *Engine) Validate(actionID string) (*ValidationResult, error) {
	el, err := e.store.Element(actionID)
	if err != nil {
		return nil, err
	}
	if el.Kind != model.KindAction {
		return nil, errors.Newf("element %q is a %s, not an action", actionID, el.Kind)
	}

	result := &ValidationResult{ActionID: actionID}
	steps := e.store.StepsOf(actionID)

	byName := make(map[string]model.ActionStep, len(steps))
	var first *model.ActionStep
	firstCount := 0
	terminalCount := 0

	for i := range steps {
		step := steps[i]
		if step.Name == model.TerminalStep {
			result.Issues = append(result.Issues, errors.Newf(
				"step name %q is reserved for the terminal marker", model.TerminalStep))
			continue
		}
		if _, dup := byName[step.Name]; dup {
			result.Issues = append(result.Issues, errors.Wrapf(errors.ErrDuplicateID,
				"step %q declared twice in action %q", step.Name, actionID))
			continue
		}
		byName[step.Name] = step

		if step.First {
			firstCount++
			if first == nil {
				first = &steps[i]
			}
		}
		if step.Terminal() {
			terminalCount++
		}

		if len(step.Successors) > 1 {
			result.Issues = append(result.Issues, errors.Wrapf(errors.ErrUnsupportedBranching,
				"step %q declares %d successors", step.Name, len(step.Successors)))
			continue
		}
		for _, succ := range step.Successors {
			if succ == model.TerminalStep {
				continue
			}
			if !stepDeclared(steps, succ) {
				result.Issues = append(result.Issues, errors.Wrapf(errors.ErrDanglingReference,
					"step %q continues to undeclared step %q", step.Name, succ))
			}
		}
	}

	switch {
	case firstCount == 0:
		result.Issues = append(result.Issues, errors.Newf(
			"action %q has no first step: nothing is reachable from Start", actionID))
	case firstCount > 1:
		result.Issues = append(result.Issues, errors.Newf(
			"action %q declares %d first steps, want exactly one", actionID, firstCount))
	}
	if len(steps) > 0 && terminalCount == 0 {
		result.Issues = append(result.Issues, errors.Newf(
			"action %q has no terminal path: no step is marked done", actionID))
	}
	if terminalCount > 1 {
		result.Issues = append(result.Issues, errors.Newf(
			"action %q has %d terminal steps, want exactly one", actionID, terminalCount))
	}

	// Walk the chain from Start. In a well-formed sequential flow this
	// visits every declared step exactly once and ends at Done.
	if first != nil {
		visited := make(map[string]bool)
		cur := first.Name
		for cur != model.TerminalStep {
			if visited[cur] {
				result.Issues = append(result.Issues, errors.Newf(
					"action %q revisits step %q: Done is unreachable", actionID, cur))
				break
			}
			visited[cur] = true
			step, ok := byName[cur]
			if !ok || len(step.Successors) != 1 {
				if ok && len(step.Successors) == 0 {
					result.Issues = append(result.Issues, errors.Newf(
						"step %q has no successor and no terminal marker", cur))
				}
				break
			}
			cur = step.Successors[0]
		}
		for _, step := range steps {
			if step.Name != model.TerminalStep && !visited[step.Name] {
				result.Issues = append(result.Issues, errors.Newf(
					"step %q is unreachable from Start", step.Name))
			}
		}
	}

	return result, nil
}

// Run deterministically walks Start -> steps -> Done, invoking observer
// once per step in declared order. The walk is synchronous and
// single-threaded with no suspension; it simulates the modeled
// procedure, it does not execute real-world effects.
func (e *Engine) Run(ctx context.Context, actionID string, observer StepObserver) error {
	result, err := e.Validate(actionID)
	if err != nil {
		return err
	}
	if !result.Valid() {
		return errors.Wrapf(result.Issues[0], "action %q is not runnable", actionID)
	}

	steps := e.store.StepsOf(actionID)
	byName := make(map[string]model.ActionStep, len(steps))
	var cur string
	for _, step := range steps {
		byName[step.Name] = step
		if step.First {
			cur = step.Name
		}
	}

	e.log.Debugw("starting action walk", "action", actionID, "steps", len(steps))

	for cur != model.TerminalStep {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "action %q interrupted at step %q", actionID, cur)
		}
		if observer != nil {
			observer(cur)
		}
		cur = byName[cur].Successors[0]
	}
	return nil
}

func stepDeclared(steps []model.ActionStep, name string) bool {
	for _, s := range steps {
		if s.Name == name {
			return true
		}
	}
	return false
}
