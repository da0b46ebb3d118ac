package flow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsekit/sysmod/errors"
	"github.com/mbsekit/sysmod/model"
	"github.com/mbsekit/sysmod/store"
)

// missionSteps is the observation mission chain:
// Start -> defineObservationArea -> approachArea -> flyObservationPatterns
// -> returnToBaseStation -> Done
var missionSteps = []model.ActionStep{
	{Action: "mission", Name: "defineObservationArea", First: true, Successors: []string{"approachArea"}},
	{Action: "mission", Name: "approachArea", Successors: []string{"flyObservationPatterns"}},
	{Action: "mission", Name: "flyObservationPatterns", Successors: []string{"returnToBaseStation"}},
	{Action: "mission", Name: "returnToBaseStation", Successors: []string{model.TerminalStep}},
}

func buildMission(t *testing.T, steps []model.ActionStep) *store.Store {
	t.Helper()
	s := store.New()
	require.NoError(t, s.AddElement(model.Element{ID: "mission", Kind: model.KindAction, Name: "Observation Mission"}))
	for _, step := range steps {
		require.NoError(t, s.AddStep(step))
	}
	s.Freeze()
	return s
}

func TestValidateWellFormedMission(t *testing.T) {
	s := buildMission(t, missionSteps)
	e := New(s, nil)

	result, err := e.Validate("mission")
	require.NoError(t, err)
	assert.True(t, result.Valid(), "issues: %v", result.Issues)
}

func TestRunInvokesObserverInDeclaredOrder(t *testing.T) {
	s := buildMission(t, missionSteps)
	e := New(s, nil)

	var walked []string
	err := e.Run(context.Background(), "mission", func(step string) {
		walked = append(walked, step)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"defineObservationArea",
		"approachArea",
		"flyObservationPatterns",
		"returnToBaseStation",
	}, walked)
}

func TestMissingFirstStep(t *testing.T) {
	steps := make([]model.ActionStep, len(missionSteps))
	copy(steps, missionSteps)
	steps[0].First = false

	s := buildMission(t, steps)
	e := New(s, nil)

	result, err := e.Validate("mission")
	require.NoError(t, err)
	require.False(t, result.Valid())
	assert.Contains(t, result.Issues[0].Error(), "no first step")
}

func TestMultipleFirstSteps(t *testing.T) {
	steps := make([]model.ActionStep, len(missionSteps))
	copy(steps, missionSteps)
	steps[1].First = true

	s := buildMission(t, steps)
	e := New(s, nil)

	result, err := e.Validate("mission")
	require.NoError(t, err)
	require.False(t, result.Valid())
	assertHasIssue(t, result, "first steps")
}

func TestBranchingIsUnsupported(t *testing.T) {
	s := buildMission(t, []model.ActionStep{
		{Action: "mission", Name: "scan", First: true, Successors: []string{"approach", "retreat"}},
		{Action: "mission", Name: "approach", Successors: []string{model.TerminalStep}},
		{Action: "mission", Name: "retreat", Successors: []string{model.TerminalStep}},
	})
	e := New(s, nil)

	result, err := e.Validate("mission")
	require.NoError(t, err)
	require.False(t, result.Valid())

	found := false
	for _, issue := range result.Issues {
		if errors.Is(issue, errors.ErrUnsupportedBranching) {
			found = true
		}
	}
	assert.True(t, found, "expected ErrUnsupportedBranching, got %v", result.Issues)
}

func TestOrphanStepDetected(t *testing.T) {
	s := buildMission(t, []model.ActionStep{
		{Action: "mission", Name: "scan", First: true, Successors: []string{model.TerminalStep}},
		{Action: "mission", Name: "lonely", Successors: []string{model.TerminalStep}},
	})
	e := New(s, nil)

	result, err := e.Validate("mission")
	require.NoError(t, err)
	require.False(t, result.Valid())
	assertHasIssue(t, result, "unreachable")
}

func TestDanglingSuccessor(t *testing.T) {
	s := buildMission(t, []model.ActionStep{
		{Action: "mission", Name: "scan", First: true, Successors: []string{"ghost"}},
	})
	e := New(s, nil)

	result, err := e.Validate("mission")
	require.NoError(t, err)
	require.False(t, result.Valid())

	found := false
	for _, issue := range result.Issues {
		if errors.Is(issue, errors.ErrDanglingReference) {
			found = true
		}
	}
	assert.True(t, found, "expected ErrDanglingReference, got %v", result.Issues)
}

func TestCycleMakesDoneUnreachable(t *testing.T) {
	s := buildMission(t, []model.ActionStep{
		{Action: "mission", Name: "a", First: true, Successors: []string{"b"}},
		{Action: "mission", Name: "b", Successors: []string{"a"}},
	})
	e := New(s, nil)

	result, err := e.Validate("mission")
	require.NoError(t, err)
	require.False(t, result.Valid())
	assertHasIssue(t, result, "revisits")
}

func TestRunRefusesInvalidFlow(t *testing.T) {
	steps := make([]model.ActionStep, len(missionSteps))
	copy(steps, missionSteps)
	steps[0].First = false

	s := buildMission(t, steps)
	e := New(s, nil)

	err := e.Run(context.Background(), "mission", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not runnable")
}

func TestValidateNonAction(t *testing.T) {
	s := store.New()
	require.NoError(t, s.AddElement(model.Element{ID: "drone", Kind: model.KindPart}))
	s.Freeze()

	e := New(s, nil)
	_, err := e.Validate("drone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an action")
}

func TestRunHonorsContextCancellation(t *testing.T) {
	s := buildMission(t, missionSteps)
	e := New(s, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Run(ctx, "mission", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func assertHasIssue(t *testing.T, result *ValidationResult, fragment string) {
	t.Helper()
	for _, issue := range result.Issues {
		if strings.Contains(issue.Error(), fragment) {
			return
		}
	}
	t.Errorf("no issue containing %q in %v", fragment, result.Issues)
}
