package ata

import (
	"fmt"
	"sort"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// WrongTransitionTypeError is returned when symbol and time transitions do
// not alternate along a run.
type WrongTransitionTypeError struct {
	Message string
}

func (e *WrongTransitionTypeError) Error() string {
	return e.Message
}

// Transition maps a (source location, symbol) pair to a transition formula.
type Transition struct {
	Source  string
	Symbol  string
	Formula Formula
}

type transitionKey struct {
	source string
	symbol string
}

// AlternatingTimedAutomaton is an ATA over string locations with one clock
// per state.
type AlternatingTimedAutomaton struct {
	alphabet    map[string]bool
	initial     string
	final       map[string]bool
	transitions map[transitionKey]Formula
}

// NewAlternatingTimedAutomaton returns an ATA with the given alphabet,
// initial location, final locations, and transitions. The first transition
// for a (source, symbol) pair wins.
func NewAlternatingTimedAutomaton(alphabet []string, initial string, final []string, transitions []Transition) *AlternatingTimedAutomaton {
	a := &AlternatingTimedAutomaton{
		alphabet:    make(map[string]bool, len(alphabet)),
		initial:     initial,
		final:       make(map[string]bool, len(final)),
		transitions: make(map[transitionKey]Formula, len(transitions)),
	}
	for _, symbol := range alphabet {
		a.alphabet[symbol] = true
	}
	for _, location := range final {
		a.final[location] = true
	}
	for _, transition := range transitions {
		key := transitionKey{source: transition.Source, symbol: transition.Symbol}
		if _, ok := a.transitions[key]; !ok {
			a.transitions[key] = transition.Formula
		}
	}
	return a
}

// Alphabet returns the automaton's symbols in sorted order.
func (a *AlternatingTimedAutomaton) Alphabet() []string {
	symbols := make([]string, 0, len(a.alphabet))
	for symbol := range a.alphabet {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Locations returns the automaton's locations in sorted order: every
// transition source together with the initial and final locations.
func (a *AlternatingTimedAutomaton) Locations() []string {
	set := make(map[string]bool, len(a.transitions)+1)
	set[a.initial] = true
	for location := range a.final {
		set[location] = true
	}
	for key := range a.transitions {
		set[key.source] = true
	}
	locations := make([]string, 0, len(set))
	for location := range set {
		locations = append(locations, location)
	}
	sort.Strings(locations)
	return locations
}

// InitialLocation returns the initial location.
func (a *AlternatingTimedAutomaton) InitialLocation() string {
	return a.initial
}

// FinalLocations returns the accepting locations in sorted order.
func (a *AlternatingTimedAutomaton) FinalLocations() []string {
	locations := make([]string, 0, len(a.final))
	for location := range a.final {
		locations = append(locations, location)
	}
	sort.Strings(locations)
	return locations
}

// InitialConfiguration returns the configuration holding the initial
// location with a fresh clock.
func (a *AlternatingTimedAutomaton) InitialConfiguration() Configuration {
	return NewConfiguration(State{Location: a.initial, ClockValuation: 0})
}

// IsAcceptingConfiguration reports whether every location of the
// configuration is final. The empty configuration accepts.
func (a *AlternatingTimedAutomaton) IsAcceptingConfiguration(c Configuration) bool {
	for _, state := range c {
		if !a.final[state.Location] {
			return false
		}
	}
	return true
}

// MakeSymbolStep returns all successor configurations for reading the given
// symbol. Every state must satisfy its transition formula with one of its
// minimal models; the models combine by union. States without a transition
// for the symbol vanish. A state whose formula has no model kills the step.
func (a *AlternatingTimedAutomaton) MakeSymbolStep(c Configuration, symbol string) []Configuration {
	perState := make([][]Configuration, 0, len(c))
	for _, state := range c {
		formula, ok := a.transitions[transitionKey{source: state.Location, symbol: symbol}]
		if !ok {
			continue
		}
		models := formula.MinimalModels(state.ClockValuation)
		if len(models) == 0 {
			return nil
		}
		perState = append(perState, models)
	}
	successors := []Configuration{nil}
	for _, models := range perState {
		var extended []Configuration
		for _, successor := range successors {
			for _, model := range models {
				extended = append(extended, unionOf(successor, model))
			}
		}
		successors = extended
	}
	unique := make(map[string]Configuration, len(successors))
	for _, successor := range successors {
		unique[successor.String()] = successor
	}
	keys := make([]string, 0, len(unique))
	for key := range unique {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	result := make([]Configuration, 0, len(keys))
	for _, key := range keys {
		result = append(result, unique[key])
	}
	return result
}

// MakeTimeStep advances all clocks of the configuration by d.
func (a *AlternatingTimedAutomaton) MakeTimeStep(c Configuration, d automata.Time) (Configuration, error) {
	if d < 0 {
		return nil, &automata.NegativeTimeDeltaError{Delta: d}
	}
	advanced := make([]State, 0, len(c))
	for _, state := range c {
		advanced = append(advanced, State{
			Location:       state.Location,
			ClockValuation: state.ClockValuation + d,
		})
	}
	return NewConfiguration(advanced...), nil
}

// RunStep is one step of a run: the symbol read or the time passed, and the
// configuration reached.
type RunStep struct {
	Symbol        string
	Delta         automata.Time
	IsTimeStep    bool
	Configuration Configuration
}

// Run is an alternating sequence of symbol and time steps, starting with a
// symbol step from the initial configuration.
type Run []RunStep

// MakeSymbolTransition extends every run by one symbol step. Runs whose
// configuration has no successor are dropped.
func (a *AlternatingTimedAutomaton) MakeSymbolTransition(runs []Run, symbol string) ([]Run, error) {
	var extended []Run
	for _, run := range runs {
		if len(run) > 0 && !run[len(run)-1].IsTimeStep {
			return nil, &WrongTransitionTypeError{
				Message: "cannot do two subsequent symbol transitions, transitions must alternate",
			}
		}
		current := a.InitialConfiguration()
		if len(run) > 0 {
			current = run[len(run)-1].Configuration
		}
		for _, successor := range a.MakeSymbolStep(current, symbol) {
			next := make(Run, len(run), len(run)+1)
			copy(next, run)
			next = append(next, RunStep{Symbol: symbol, Configuration: successor})
			extended = append(extended, next)
		}
	}
	return extended, nil
}

// MakeTimeTransition extends every run by one time step.
func (a *AlternatingTimedAutomaton) MakeTimeTransition(runs []Run, d automata.Time) ([]Run, error) {
	if d < 0 {
		return nil, &automata.NegativeTimeDeltaError{Delta: d}
	}
	extended := make([]Run, 0, len(runs))
	for _, run := range runs {
		if len(run) == 0 {
			return nil, &WrongTransitionTypeError{
				Message: "cannot start a run with a time transition",
			}
		}
		if run[len(run)-1].IsTimeStep {
			return nil, &WrongTransitionTypeError{
				Message: "cannot do two subsequent time transitions, transitions must alternate",
			}
		}
		advanced, err := a.MakeTimeStep(run[len(run)-1].Configuration, d)
		if err != nil {
			return nil, err
		}
		next := make(Run, len(run), len(run)+1)
		copy(next, run)
		next = append(next, RunStep{Delta: d, IsTimeStep: true, Configuration: advanced})
		extended = append(extended, next)
	}
	return extended, nil
}

// AcceptsWord reports whether some run over the timed word ends in an
// accepting configuration. The first symbol must occur at time zero.
func (a *AlternatingTimedAutomaton) AcceptsWord(word automata.TimedWord) (bool, error) {
	if len(word) == 0 {
		return a.IsAcceptingConfiguration(a.InitialConfiguration()), nil
	}
	if word[0].Time != 0 {
		return false, &automata.InvalidTimedWordError{
			Message: fmt.Sprintf("first symbol of a timed word must be at time 0, got %g", word[0].Time),
		}
	}
	runs := []Run{{}}
	previous := automata.Time(0)
	for i, letter := range word {
		if letter.Time < previous {
			return false, &automata.InvalidTimedWordError{
				Message: fmt.Sprintf("timestamp %g is earlier than %g", letter.Time, previous),
			}
		}
		if i > 0 {
			var err error
			runs, err = a.MakeTimeTransition(runs, letter.Time-previous)
			if err != nil {
				return false, err
			}
		}
		var err error
		runs, err = a.MakeSymbolTransition(runs, letter.Symbol)
		if err != nil {
			return false, err
		}
		previous = letter.Time
	}
	for _, run := range runs {
		if a.IsAcceptingConfiguration(run[len(run)-1].Configuration) {
			return true, nil
		}
	}
	return false, nil
}
