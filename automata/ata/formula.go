// Package ata implements alternating timed automata with a single implicit
// clock per state, as used by the MTL translation.
package ata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// State is a single location of an ATA together with its clock valuation.
type State struct {
	Location       string
	ClockValuation automata.ClockValuation
}

func (s State) String() string {
	return fmt.Sprintf("(%s, %g)", s.Location, s.ClockValuation)
}

// Configuration is a set of states, kept sorted and free of duplicates.
type Configuration []State

func (c Configuration) String() string {
	parts := make([]string, 0, len(c))
	for _, state := range c {
		parts = append(parts, state.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Contains reports whether the configuration holds the given state.
func (c Configuration) Contains(s State) bool {
	for _, state := range c {
		if state == s {
			return true
		}
	}
	return false
}

func stateLess(a, b State) bool {
	if a.Location != b.Location {
		return a.Location < b.Location
	}
	return a.ClockValuation < b.ClockValuation
}

// NewConfiguration returns the sorted, deduplicated configuration holding
// the given states.
func NewConfiguration(states ...State) Configuration {
	c := make(Configuration, len(states))
	copy(c, states)
	sort.Slice(c, func(i, j int) bool { return stateLess(c[i], c[j]) })
	deduped := c[:0]
	for i, state := range c {
		if i == 0 || state != c[i-1] {
			deduped = append(deduped, state)
		}
	}
	return deduped
}

func unionOf(a, b Configuration) Configuration {
	merged := make([]State, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return NewConfiguration(merged...)
}

// isSubsetOf reports whether every state of a occurs in b. Both
// configurations must be sorted.
func isSubsetOf(a, b Configuration) bool {
	j := 0
	for _, state := range a {
		for j < len(b) && stateLess(b[j], state) {
			j++
		}
		if j >= len(b) || b[j] != state {
			return false
		}
		j++
	}
	return true
}

// minimalConfigurations drops duplicates and every configuration that is a
// strict superset of another one, returning the ⊆-minimal models sorted by
// their rendering.
func minimalConfigurations(models []Configuration) []Configuration {
	unique := make(map[string]Configuration, len(models))
	for _, model := range models {
		unique[model.String()] = model
	}
	var minimal []Configuration
	for key, model := range unique {
		dominated := false
		for otherKey, other := range unique {
			if key == otherKey {
				continue
			}
			if isSubsetOf(other, model) {
				dominated = true
				break
			}
		}
		if !dominated {
			minimal = append(minimal, model)
		}
	}
	sort.Slice(minimal, func(i, j int) bool { return minimal[i].String() < minimal[j].String() })
	return minimal
}

// Formula is a positive boolean transition formula over ATA locations and
// the implicit clock.
type Formula interface {
	// IsSatisfied reports whether the formula holds for the given states
	// under the clock valuation v.
	IsSatisfied(states Configuration, v automata.ClockValuation) bool
	// MinimalModels returns the ⊆-minimal sets of states that satisfy the
	// formula under the clock valuation v.
	MinimalModels(v automata.ClockValuation) []Configuration
	String() string
}

// TrueFormula is satisfied by anything.
type TrueFormula struct{}

func (TrueFormula) IsSatisfied(Configuration, automata.ClockValuation) bool {
	return true
}

func (TrueFormula) MinimalModels(automata.ClockValuation) []Configuration {
	return []Configuration{nil}
}

func (TrueFormula) String() string {
	return "⊤"
}

// FalseFormula is satisfied by nothing.
type FalseFormula struct{}

func (FalseFormula) IsSatisfied(Configuration, automata.ClockValuation) bool {
	return false
}

func (FalseFormula) MinimalModels(automata.ClockValuation) []Configuration {
	return nil
}

func (FalseFormula) String() string {
	return "⊥"
}

// LocationFormula requires the state (location, v) to be present.
type LocationFormula struct {
	Location string
}

func (f LocationFormula) IsSatisfied(states Configuration, v automata.ClockValuation) bool {
	return states.Contains(State{Location: f.Location, ClockValuation: v})
}

func (f LocationFormula) MinimalModels(v automata.ClockValuation) []Configuration {
	return []Configuration{NewConfiguration(State{Location: f.Location, ClockValuation: v})}
}

func (f LocationFormula) String() string {
	return f.Location
}

// ClockConstraintFormula compares the implicit clock against a constant.
type ClockConstraintFormula struct {
	Constraint automata.ClockConstraint
}

func (f ClockConstraintFormula) IsSatisfied(_ Configuration, v automata.ClockValuation) bool {
	return f.Constraint.IsSatisfied(v)
}

func (f ClockConstraintFormula) MinimalModels(v automata.ClockValuation) []Configuration {
	if f.Constraint.IsSatisfied(v) {
		return []Configuration{nil}
	}
	return nil
}

func (f ClockConstraintFormula) String() string {
	return "x " + f.Constraint.String()
}

// ConjunctionFormula requires both subformulas to hold.
type ConjunctionFormula struct {
	Left  Formula
	Right Formula
}

func (f ConjunctionFormula) IsSatisfied(states Configuration, v automata.ClockValuation) bool {
	return f.Left.IsSatisfied(states, v) && f.Right.IsSatisfied(states, v)
}

func (f ConjunctionFormula) MinimalModels(v automata.ClockValuation) []Configuration {
	left := f.Left.MinimalModels(v)
	right := f.Right.MinimalModels(v)
	var models []Configuration
	for _, l := range left {
		for _, r := range right {
			models = append(models, unionOf(l, r))
		}
	}
	return minimalConfigurations(models)
}

func (f ConjunctionFormula) String() string {
	return "(" + f.Left.String() + " ∧ " + f.Right.String() + ")"
}

// DisjunctionFormula requires one of the subformulas to hold.
type DisjunctionFormula struct {
	Left  Formula
	Right Formula
}

func (f DisjunctionFormula) IsSatisfied(states Configuration, v automata.ClockValuation) bool {
	return f.Left.IsSatisfied(states, v) || f.Right.IsSatisfied(states, v)
}

func (f DisjunctionFormula) MinimalModels(v automata.ClockValuation) []Configuration {
	models := append(f.Left.MinimalModels(v), f.Right.MinimalModels(v)...)
	return minimalConfigurations(models)
}

func (f DisjunctionFormula) String() string {
	return "(" + f.Left.String() + " ∨ " + f.Right.String() + ")"
}

// ResetClockFormula evaluates its subformula with the clock reset to zero.
type ResetClockFormula struct {
	Formula Formula
}

func (f ResetClockFormula) IsSatisfied(states Configuration, _ automata.ClockValuation) bool {
	return f.Formula.IsSatisfied(states, 0)
}

func (f ResetClockFormula) MinimalModels(automata.ClockValuation) []Configuration {
	return f.Formula.MinimalModels(0)
}

func (f ResetClockFormula) String() string {
	return "x." + f.Formula.String()
}

// NewConjunction folds the formulas into a conjunction. The empty conjunction
// is TrueFormula.
func NewConjunction(formulas ...Formula) Formula {
	if len(formulas) == 0 {
		return TrueFormula{}
	}
	conjunction := formulas[0]
	for _, f := range formulas[1:] {
		conjunction = ConjunctionFormula{Left: conjunction, Right: f}
	}
	return conjunction
}

// NewDisjunction folds the formulas into a disjunction. The empty disjunction
// is FalseFormula.
func NewDisjunction(formulas ...Formula) Formula {
	if len(formulas) == 0 {
		return FalseFormula{}
	}
	disjunction := formulas[0]
	for _, f := range formulas[1:] {
		disjunction = DisjunctionFormula{Left: disjunction, Right: f}
	}
	return disjunction
}
