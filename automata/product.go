package automata

import (
	"fmt"
	"strings"
)

// GetProduct returns the interleaving composition of the given automata. The
// components must have pairwise disjoint clock sets. Synchronized actions are
// not supported and yield ErrUnsupported.
func GetProduct(components []*TimedAutomaton, synchronizedActions []string) (*TimedAutomaton, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("product of zero automata")
	}
	if len(synchronizedActions) > 0 {
		return nil, fmt.Errorf("synchronized product over %v: %w", synchronizedActions, ErrUnsupported)
	}
	alphabet := make(map[string]bool)
	clocks := make(map[string]bool)
	for _, component := range components {
		for _, symbol := range component.Alphabet() {
			alphabet[symbol] = true
		}
		for _, clock := range component.Clocks() {
			if clocks[clock] {
				return nil, &InvalidClockError{Clock: clock}
			}
			clocks[clock] = true
		}
	}

	locationTuples := cartesianLocations(components)
	locations := make([]string, 0, len(locationTuples))
	for _, tuple := range locationTuples {
		locations = append(locations, productLocation(tuple))
	}

	initialTuple := make([]string, len(components))
	for i, component := range components {
		initialTuple[i] = component.InitialLocation()
	}

	finalTuples := cartesianFinalLocations(components)
	final := make([]string, 0, len(finalTuples))
	for _, tuple := range finalTuples {
		final = append(final, productLocation(tuple))
	}

	var transitions []Transition
	for i, component := range components {
		otherTuples := cartesianLocationsExcept(components, i)
		for _, transition := range component.Transitions() {
			for _, others := range otherTuples {
				source := insertAt(others, i, transition.Source)
				target := insertAt(others, i, transition.Target)
				transitions = append(transitions, NewTransition(
					productLocation(source),
					transition.Symbol,
					productLocation(target),
					transition.Guards,
					transition.Resets,
				))
			}
		}
	}

	return NewTimedAutomaton(
		sortedKeys(alphabet),
		locations,
		productLocation(initialTuple),
		final,
		sortedKeys(clocks),
		transitions,
	)
}

func productLocation(tuple []string) string {
	return "(" + strings.Join(tuple, ",") + ")"
}

func cartesianLocations(components []*TimedAutomaton) [][]string {
	sets := make([][]string, len(components))
	for i, component := range components {
		sets[i] = component.Locations()
	}
	return cartesian(sets)
}

func cartesianFinalLocations(components []*TimedAutomaton) [][]string {
	sets := make([][]string, len(components))
	for i, component := range components {
		sets[i] = component.FinalLocations()
	}
	return cartesian(sets)
}

// cartesianLocationsExcept enumerates location tuples of all components but
// the i-th, leaving a gap at index i for insertAt to fill.
func cartesianLocationsExcept(components []*TimedAutomaton, skip int) [][]string {
	sets := make([][]string, 0, len(components)-1)
	for i, component := range components {
		if i == skip {
			continue
		}
		sets = append(sets, component.Locations())
	}
	return cartesian(sets)
}

func cartesian(sets [][]string) [][]string {
	result := [][]string{nil}
	for _, set := range sets {
		var extended [][]string
		for _, prefix := range result {
			for _, element := range set {
				tuple := make([]string, len(prefix), len(prefix)+1)
				copy(tuple, prefix)
				extended = append(extended, append(tuple, element))
			}
		}
		result = extended
		if len(result) == 0 {
			return nil
		}
	}
	return result
}

func insertAt(tuple []string, index int, element string) []string {
	result := make([]string, 0, len(tuple)+1)
	result = append(result, tuple[:index]...)
	result = append(result, element)
	result = append(result, tuple[index:]...)
	return result
}
