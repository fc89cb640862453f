package ata

import (
	"testing"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/stretchr/testify/assert"
)

func TestMinimalModels_Atoms(t *testing.T) {
	assert.Equal(t, []Configuration{nil}, TrueFormula{}.MinimalModels(1.5),
		"⊤ has the empty model")
	assert.Empty(t, FalseFormula{}.MinimalModels(1.5), "⊥ has no model")

	models := LocationFormula{Location: "s0"}.MinimalModels(0.5)
	assert.Equal(t, []Configuration{
		NewConfiguration(State{Location: "s0", ClockValuation: 0.5}),
	}, models)

	holds := ClockConstraintFormula{Constraint: automata.ClockConstraint{Comparison: automata.Less, Comparand: 2}}
	assert.Equal(t, []Configuration{nil}, holds.MinimalModels(1.5))
	assert.Empty(t, holds.MinimalModels(2.5))
}

func TestMinimalModels_ResetEvaluatesAtZero(t *testing.T) {
	constraint := ClockConstraintFormula{Constraint: automata.ClockConstraint{Comparison: automata.Less, Comparand: 1}}
	reset := ResetClockFormula{Formula: constraint}
	assert.Equal(t, []Configuration{nil}, reset.MinimalModels(5),
		"the constraint is checked against the reset clock")

	resetLocation := ResetClockFormula{Formula: LocationFormula{Location: "s0"}}
	assert.Equal(t, []Configuration{
		NewConfiguration(State{Location: "s0", ClockValuation: 0}),
	}, resetLocation.MinimalModels(5))
}

func TestMinimalModels_ConjunctionFiltersSupersets(t *testing.T) {
	formula := ConjunctionFormula{
		Left:  DisjunctionFormula{Left: LocationFormula{Location: "a"}, Right: LocationFormula{Location: "b"}},
		Right: LocationFormula{Location: "a"},
	}
	models := formula.MinimalModels(1)
	assert.Equal(t, []Configuration{
		NewConfiguration(State{Location: "a", ClockValuation: 1}),
	}, models, "the model {a, b} is a strict superset of {a} and must be dropped")
}

func TestMinimalModels_ConjunctionCombinesByUnion(t *testing.T) {
	formula := ConjunctionFormula{
		Left:  LocationFormula{Location: "a"},
		Right: LocationFormula{Location: "b"},
	}
	models := formula.MinimalModels(0.5)
	assert.Equal(t, []Configuration{
		NewConfiguration(
			State{Location: "a", ClockValuation: 0.5},
			State{Location: "b", ClockValuation: 0.5},
		),
	}, models)
}

func TestMinimalModels_DisjunctionFiltersSupersets(t *testing.T) {
	formula := DisjunctionFormula{Left: TrueFormula{}, Right: LocationFormula{Location: "a"}}
	assert.Equal(t, []Configuration{nil}, formula.MinimalModels(1),
		"the empty model subsumes {a}")

	deadLeft := DisjunctionFormula{Left: FalseFormula{}, Right: LocationFormula{Location: "a"}}
	assert.Equal(t, []Configuration{
		NewConfiguration(State{Location: "a", ClockValuation: 1}),
	}, deadLeft.MinimalModels(1))
}

func TestIsSatisfied(t *testing.T) {
	states := NewConfiguration(
		State{Location: "a", ClockValuation: 0.5},
		State{Location: "b", ClockValuation: 1},
	)

	assert.True(t, TrueFormula{}.IsSatisfied(states, 0.5))
	assert.False(t, FalseFormula{}.IsSatisfied(states, 0.5))
	assert.True(t, LocationFormula{Location: "a"}.IsSatisfied(states, 0.5))
	assert.False(t, LocationFormula{Location: "a"}.IsSatisfied(states, 1),
		"the location must be present with the evaluation clock value")

	conjunction := ConjunctionFormula{
		Left:  LocationFormula{Location: "a"},
		Right: ClockConstraintFormula{Constraint: automata.ClockConstraint{Comparison: automata.Less, Comparand: 1}},
	}
	assert.True(t, conjunction.IsSatisfied(states, 0.5))
	assert.False(t, conjunction.IsSatisfied(states, 1))

	reset := ResetClockFormula{Formula: ClockConstraintFormula{
		Constraint: automata.ClockConstraint{Comparison: automata.Less, Comparand: 1},
	}}
	assert.True(t, reset.IsSatisfied(states, 10))
}

func TestConfigurationOrderAndDeduplication(t *testing.T) {
	c := NewConfiguration(
		State{Location: "b", ClockValuation: 1},
		State{Location: "a", ClockValuation: 2},
		State{Location: "a", ClockValuation: 1},
		State{Location: "a", ClockValuation: 1},
	)
	assert.Equal(t, Configuration{
		{Location: "a", ClockValuation: 1},
		{Location: "a", ClockValuation: 2},
		{Location: "b", ClockValuation: 1},
	}, c)
}
