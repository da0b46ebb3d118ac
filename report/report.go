package report

import "github.com/mbsekit/sysmod/eval"

// Severity grades a diagnostic
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one recorded finding against one element
type Diagnostic struct {
	ElementID string   `json:"element_id"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
}

// Report maps element ids to their ordered diagnostics. An empty report
// means a fully consistent model. Verdicts additionally carries the
// evaluation outcome of every requirement, satisfied ones included.
type Report struct {
	byElement map[string][]Diagnostic
	order     []string

	Verdicts map[string]eval.Verdict `json:"verdicts"`
}

// NewReport creates an empty report
func NewReport() *Report {
	return &Report{
		byElement: make(map[string][]Diagnostic),
		Verdicts:  make(map[string]eval.Verdict),
	}
}

// Add records a diagnostic, preserving per-element insertion order
func (r *Report) Add(d Diagnostic) {
	if _, seen := r.byElement[d.ElementID]; !seen {
		r.order = append(r.order, d.ElementID)
	}
	r.byElement[d.ElementID] = append(r.byElement[d.ElementID], d)
}

// Empty reports whether the model produced no diagnostics
func (r *Report) Empty() bool {
	return len(r.byElement) == 0
}

// Total returns the number of recorded diagnostics
func (r *Report) Total() int {
	n := 0
	for _, ds := range r.byElement {
		n += len(ds)
	}
	return n
}

// ElementIDs returns the ids with diagnostics, in first-recorded order
func (r *Report) ElementIDs() []string {
	return append([]string(nil), r.order...)
}

// Diagnostics returns the ordered diagnostics for one element
func (r *Report) Diagnostics(elementID string) []Diagnostic {
	return append([]Diagnostic(nil), r.byElement[elementID]...)
}

// All returns every diagnostic, grouped by element in first-recorded order
func (r *Report) All() []Diagnostic {
	var out []Diagnostic
	for _, id := range r.order {
		out = append(out, r.byElement[id]...)
	}
	return out
}
