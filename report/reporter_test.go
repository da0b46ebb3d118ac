package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsekit/sysmod/eval"
	"github.com/mbsekit/sysmod/model"
	"github.com/mbsekit/sysmod/store"
)

func mustQuantity(t *testing.T, magnitude float64, unit string) model.Value {
	t.Helper()
	q, err := model.NewQuantity(magnitude, unit)
	require.NoError(t, err)
	return model.QuantityValue(q)
}

// buildConsistentModel is the forest observation example in a fully
// consistent state: satisfied coverage requirement, well-formed mission.
func buildConsistentModel(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()

	for _, el := range []model.Element{
		{ID: "drone", Kind: model.KindPart, Name: "Drone"},
		{ID: "forestOwner", Kind: model.KindStakeholder},
		{ID: "operator", Kind: model.KindStakeholder},
		{ID: "reqCoverage", Kind: model.KindRequirement},
		{ID: "mission", Kind: model.KindAction},
	} {
		require.NoError(t, s.AddElement(el))
	}

	require.NoError(t, s.AddSlot(model.AttributeSlot{
		Owner: "drone", Name: "maxForestAreaCovered", DeclaredType: "AreaValue",
		Value: mustQuantity(t, 2500000, "m²"), Op: model.SlotDeclare,
	}))
	require.NoError(t, s.SetRequirement(model.RequirementSpec{
		Element:      "reqCoverage",
		Subject:      "drone",
		Stakeholders: []string{"forestOwner", "operator"},
		Constraint: model.CompareExpr(model.OpGe,
			model.AttributeRefExpr("maxForestAreaCovered"),
			model.LiteralExpr(mustQuantity(t, 2500000, "m²")),
		),
	}))
	for _, step := range []model.ActionStep{
		{Action: "mission", Name: "defineObservationArea", First: true, Successors: []string{"approachArea"}},
		{Action: "mission", Name: "approachArea", Successors: []string{"flyObservationPatterns"}},
		{Action: "mission", Name: "flyObservationPatterns", Successors: []string{"returnToBaseStation"}},
		{Action: "mission", Name: "returnToBaseStation", Successors: []string{model.TerminalStep}},
	} {
		require.NoError(t, s.AddStep(step))
	}

	return s
}

func TestConsistentModelYieldsEmptyReport(t *testing.T) {
	s := buildConsistentModel(t)
	rep := ValidateModel(s, nil)

	assert.True(t, rep.Empty(), "diagnostics: %v", rep.All())
	assert.Equal(t, eval.VerdictSatisfied, rep.Verdicts["reqCoverage"].Kind)
}

func TestBrokenSubgraphDoesNotAbortThePass(t *testing.T) {
	s := buildConsistentModel(t)

	// A specialization cycle in one corner of the model
	require.NoError(t, s.AddElement(model.Element{ID: "a", Kind: model.KindPart}))
	require.NoError(t, s.AddElement(model.Element{ID: "b", Kind: model.KindPart}))
	require.NoError(t, s.AddEdge(model.SpecializationEdge{Child: "a", Parent: "b", Kind: model.SpecSubtype}))
	require.NoError(t, s.AddEdge(model.SpecializationEdge{Child: "b", Parent: "a", Kind: model.SpecSubtype}))

	// A broken action flow in another
	require.NoError(t, s.AddElement(model.Element{ID: "badMission", Kind: model.KindAction}))
	require.NoError(t, s.AddStep(model.ActionStep{Action: "badMission", Name: "drift"}))

	rep := ValidateModel(s, nil)

	// Local failures are recorded against their elements...
	assert.NotEmpty(t, rep.Diagnostics("a"))
	assert.NotEmpty(t, rep.Diagnostics("b"))
	assert.NotEmpty(t, rep.Diagnostics("badMission"))

	// ...while the healthy requirement still evaluated
	assert.Equal(t, eval.VerdictSatisfied, rep.Verdicts["reqCoverage"].Kind)
}

func TestViolatedRequirementRecorded(t *testing.T) {
	s := buildConsistentModel(t)

	require.NoError(t, s.AddElement(model.Element{ID: "tightDrone", Kind: model.KindPart}))
	require.NoError(t, s.AddSlot(model.AttributeSlot{
		Owner: "tightDrone", Name: "maxForestAreaCovered", DeclaredType: "AreaValue",
		Value: mustQuantity(t, 2000000, "m²"), Op: model.SlotDeclare,
	}))
	require.NoError(t, s.AddElement(model.Element{ID: "reqTight", Kind: model.KindRequirement}))
	require.NoError(t, s.SetRequirement(model.RequirementSpec{
		Element: "reqTight",
		Subject: "tightDrone",
		Constraint: model.CompareExpr(model.OpGe,
			model.AttributeRefExpr("maxForestAreaCovered"),
			model.LiteralExpr(mustQuantity(t, 2500000, "m²")),
		),
	}))

	rep := ValidateModel(s, nil)

	diags := rep.Diagnostics("reqTight")
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.True(t, strings.Contains(diags[0].Message, "violated"), "got %q", diags[0].Message)
	assert.Equal(t, eval.VerdictViolated, rep.Verdicts["reqTight"].Kind)
}

func TestIndeterminateRequirementIsAWarning(t *testing.T) {
	s := buildConsistentModel(t)

	require.NoError(t, s.AddElement(model.Element{ID: "vagueDrone", Kind: model.KindPart}))
	require.NoError(t, s.AddSlot(model.AttributeSlot{
		Owner: "vagueDrone", Name: "maxForestAreaCovered", DeclaredType: "AreaValue",
		Value: model.Unset(), Op: model.SlotDeclare,
	}))
	require.NoError(t, s.AddElement(model.Element{ID: "reqVague", Kind: model.KindRequirement}))
	require.NoError(t, s.SetRequirement(model.RequirementSpec{
		Element: "reqVague",
		Subject: "vagueDrone",
		Constraint: model.CompareExpr(model.OpGe,
			model.AttributeRefExpr("maxForestAreaCovered"),
			model.LiteralExpr(mustQuantity(t, 2500000, "m²")),
		),
	}))

	rep := ValidateModel(s, nil)

	diags := rep.Diagnostics("reqVague")
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
}

func TestRequirementWithoutSpecIsAWarning(t *testing.T) {
	s := buildConsistentModel(t)
	require.NoError(t, s.AddElement(model.Element{ID: "reqEmpty", Kind: model.KindRequirement}))

	rep := ValidateModel(s, nil)

	diags := rep.Diagnostics("reqEmpty")
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "no specification")
}

func TestReportOrdering(t *testing.T) {
	rep := NewReport()
	rep.Add(Diagnostic{ElementID: "b", Severity: SeverityError, Message: "one"})
	rep.Add(Diagnostic{ElementID: "a", Severity: SeverityError, Message: "two"})
	rep.Add(Diagnostic{ElementID: "b", Severity: SeverityWarning, Message: "three"})

	assert.Equal(t, []string{"b", "a"}, rep.ElementIDs())
	assert.Equal(t, 3, rep.Total())

	bDiags := rep.Diagnostics("b")
	require.Len(t, bDiags, 2)
	assert.Equal(t, "one", bDiags[0].Message)
	assert.Equal(t, "three", bDiags[1].Message)
}
