package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsekit/sysmod/errors"
	"github.com/mbsekit/sysmod/eval"
	"github.com/mbsekit/sysmod/model"
	"github.com/mbsekit/sysmod/report"
)

const observationDoc = `
elements:
  - id: forestObservationSystem
    name: Forest Observation System
    kind: part

  - id: observationDrone
    name: Observation Drone
    kind: part
    abstract: true
    attributes:
      - name: maxForestAreaCovered
        type: AreaValue

  - id: drone
    name: Drone
    kind: part
    owner: forestObservationSystem
    specializes:
      - target: observationDrone
    attributes:
      - name: maxForestAreaCovered
        type: AreaValue
        value: 2500000
        unit: m2
        redefines: true

  - id: forestOwner
    name: Forest Owner
    kind: stakeholder

  - id: operator
    name: Operator
    kind: stakeholder

  - id: reqCoverage
    name: Forest Area Coverage
    kind: requirement
    requirement:
      subject: drone
      stakeholders: [forestOwner, operator]
      constraint:
        op: ">="
        left: { attribute: maxForestAreaCovered }
        right: { value: 2500000, unit: m2 }

  - id: reqStakeholders
    kind: requirement
    requirement:
      subject: drone
      stakeholders: [forestOwner, operator]
      constraint:
        op: ">"
        left: { size_of: stakeholders }
        right: { value: 0 }

  - id: mission
    name: Observation Mission
    kind: action
    owner: drone
    steps:
      - name: defineObservationArea
        first: true
        then: approachArea
      - name: approachArea
        then: flyObservationPatterns
      - name: flyObservationPatterns
        then: returnToBaseStation
      - name: returnToBaseStation
        done: true
`

func TestLoadObservationModel(t *testing.T) {
	result, err := Load([]byte(observationDoc), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 8, result.Store.Len())

	drone, err := result.Store.Element("drone")
	require.NoError(t, err)
	assert.Equal(t, model.KindPart, drone.Kind)
	assert.Equal(t, "forestObservationSystem", drone.Owner)

	slots := result.Store.SlotsOf("drone")
	require.Len(t, slots, 1)
	assert.Equal(t, model.SlotRedefine, slots[0].Op)
	assert.Equal(t, model.ValueQuantity, slots[0].Value.Kind)

	spec, err := result.Store.Requirement("reqCoverage")
	require.NoError(t, err)
	assert.Equal(t, "drone", spec.Subject)
	assert.Equal(t, []string{"forestOwner", "operator"}, spec.Stakeholders)
	require.NotNil(t, spec.Constraint)
	assert.Equal(t, model.ExprCompare, spec.Constraint.Kind)

	steps := result.Store.StepsOf("mission")
	require.Len(t, steps, 4)
	assert.True(t, steps[0].First)
	assert.True(t, steps[3].Terminal())
}

func TestLoadedModelValidatesCleanly(t *testing.T) {
	result, err := Load([]byte(observationDoc), nil)
	require.NoError(t, err)

	rep := report.ValidateModel(result.Store, nil)
	assert.True(t, rep.Empty(), "diagnostics: %v", rep.All())
	assert.Equal(t, eval.VerdictSatisfied, rep.Verdicts["reqCoverage"].Kind)
	assert.Equal(t, eval.VerdictSatisfied, rep.Verdicts["reqStakeholders"].Kind)
}

func TestDuplicateIDAbortsElementNotStore(t *testing.T) {
	doc := `
elements:
  - id: drone
    kind: part
  - id: drone
    kind: part
  - id: base
    kind: part
`
	result, err := Load([]byte(doc), nil)
	require.NoError(t, err)

	require.Len(t, result.Issues, 1)
	assert.True(t, errors.Is(result.Issues[0].Err, errors.ErrDuplicateID), "got %v", result.Issues[0].Err)
	assert.Equal(t, 2, result.Store.Len())
	assert.True(t, result.Store.Has("base"))
}

func TestMissingIDGetsGenerated(t *testing.T) {
	doc := `
elements:
  - name: Anonymous Part
    kind: part
`
	result, err := Load([]byte(doc), nil)
	require.NoError(t, err)
	require.Empty(t, result.Issues)

	elements := result.Store.Elements()
	require.Len(t, elements, 1)
	assert.NotEmpty(t, elements[0].ID)
	assert.Equal(t, "Anonymous Part", elements[0].Name)
}

func TestBadUnitAbortsOnlyThatElement(t *testing.T) {
	doc := `
elements:
  - id: drone
    kind: part
    attributes:
      - name: range
        value: 12
        unit: furlong
  - id: base
    kind: part
`
	result, err := Load([]byte(doc), nil)
	require.NoError(t, err)

	require.Len(t, result.Issues, 1)
	assert.Equal(t, "drone", result.Issues[0].ElementID)
	assert.True(t, result.Store.Has("base"))
	// The element itself loaded; its attribute wiring was aborted
	assert.Empty(t, result.Store.SlotsOf("drone"))
}

func TestStepsOnNonActionIsAnIssue(t *testing.T) {
	doc := `
elements:
  - id: drone
    kind: part
    steps:
      - name: hover
        first: true
        done: true
`
	result, err := Load([]byte(doc), nil)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0].Err.Error(), "steps")
}

func TestUnknownOperatorIsAnIssue(t *testing.T) {
	doc := `
elements:
  - id: req
    kind: requirement
    requirement:
      subject: req
      constraint:
        op: "~="
        left: { value: 1 }
        right: { value: 2 }
`
	result, err := Load([]byte(doc), nil)
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0].Err.Error(), "operator")
}

func TestMalformedDocumentFails(t *testing.T) {
	_, err := Load([]byte("elements: {not: a list}"), nil)
	require.Error(t, err)
}

func TestEdgeToLaterDeclaration(t *testing.T) {
	// Specialization targets may be declared after their children
	doc := `
elements:
  - id: drone
    kind: part
    specializes:
      - target: vehicle
  - id: vehicle
    kind: part
`
	result, err := Load([]byte(doc), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Issues)

	edges := result.Store.SpecializationsOf("drone")
	require.Len(t, edges, 1)
	assert.Equal(t, "vehicle", edges[0].Parent)
}
