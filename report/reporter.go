// Package report aggregates resolver, evaluator, and flow diagnostics
// into one structured result. A validation pass never aborts on the
// first error: local failures are caught, recorded with the offending
// element id, and skipped so the rest of the model is still checked.
package report

import (
	"go.uber.org/zap"

	"github.com/mbsekit/sysmod/errors"
	"github.com/mbsekit/sysmod/eval"
	"github.com/mbsekit/sysmod/flow"
	"github.com/mbsekit/sysmod/model"
	"github.com/mbsekit/sysmod/resolve"
	"github.com/mbsekit/sysmod/store"
)

// Reporter runs the full validation pass over one frozen store
type Reporter struct {
	store     *store.Store
	resolver  *resolve.Resolver
	evaluator *eval.Evaluator
	engine    *flow.Engine
	log       *zap.SugaredLogger
}

// New wires a reporter over st. Construction freezes the store.
func New(st *store.Store, log *zap.SugaredLogger) *Reporter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	resolver := resolve.New(st, log)
	return &Reporter{
		store:     st,
		resolver:  resolver,
		evaluator: eval.New(st, resolver, log),
		engine:    flow.New(st, log),
		log:       log,
	}
}

// Resolver exposes the shared resolver for callers that want resolved
// views alongside the report
func (r *Reporter) Resolver() *resolve.Resolver {
	return r.resolver
}

// ValidateModel resolves every element, evaluates every requirement, and
// validates every action flow, collecting all diagnostics. It always
// returns a complete report, even over a malformed sub-graph.
func (r *Reporter) ValidateModel() *Report {
	rep := NewReport()

	for _, el := range r.store.Elements() {
		if _, err := r.resolver.Resolve(el.ID); err != nil {
			rep.Add(Diagnostic{
				ElementID: el.ID,
				Severity:  SeverityError,
				Message:   err.Error(),
			})
		}
	}

	for _, id := range r.store.ElementsOfKind(model.KindRequirement) {
		verdict, err := r.evaluator.Evaluate(id)
		if err != nil {
			severity := SeverityError
			message := err.Error()
			if errors.IsNotFoundError(err) {
				// A requirement element with no attached spec is
				// incomplete rather than broken.
				severity = SeverityWarning
				message = "requirement has no specification attached"
			}
			rep.Add(Diagnostic{ElementID: id, Severity: severity, Message: message})
			continue
		}
		rep.Verdicts[id] = verdict
		switch verdict.Kind {
		case eval.VerdictViolated:
			rep.Add(Diagnostic{
				ElementID: id,
				Severity:  SeverityError,
				Message:   "requirement violated: " + verdict.Reason,
			})
		case eval.VerdictIndeterminate:
			rep.Add(Diagnostic{
				ElementID: id,
				Severity:  SeverityWarning,
				Message:   "requirement indeterminate: " + verdict.Reason,
			})
		}
	}

	for _, id := range r.store.ElementsOfKind(model.KindAction) {
		result, err := r.engine.Validate(id)
		if err != nil {
			rep.Add(Diagnostic{ElementID: id, Severity: SeverityError, Message: err.Error()})
			continue
		}
		for _, issue := range result.Issues {
			rep.Add(Diagnostic{ElementID: id, Severity: SeverityError, Message: issue.Error()})
		}
	}

	r.log.Infow("model validation complete",
		"elements", r.store.Len(),
		"diagnostics", rep.Total(),
	)
	return rep
}

// ValidateModel is the one-call entry point: freeze, resolve, evaluate,
// and collect diagnostics for an entire store.
func ValidateModel(st *store.Store, log *zap.SugaredLogger) *Report {
	return New(st, log).ValidateModel()
}
