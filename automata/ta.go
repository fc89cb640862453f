package automata

import (
	"fmt"
	"sort"
	"strings"
)

// Configuration is a state of a timed automaton: a location together with a
// valuation for every clock.
type Configuration struct {
	Location        string
	ClockValuations ClockSetValuation
}

// Copy returns a deep copy of the configuration.
func (c Configuration) Copy() Configuration {
	valuations := make(ClockSetValuation, len(c.ClockValuations))
	for name, clock := range c.ClockValuations {
		valuations[name] = clock
	}
	return Configuration{Location: c.Location, ClockValuations: valuations}
}

func (c Configuration) String() string {
	names := make([]string, 0, len(c.ClockValuations))
	for name := range c.ClockValuations {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %g", name, c.ClockValuations[name].Valuation()))
	}
	return fmt.Sprintf("(%s, {%s})", c.Location, strings.Join(parts, ", "))
}

// ClockGuard constrains a single clock on a transition. Multiple guards on
// the same clock conjoin.
type ClockGuard struct {
	Clock      string
	Constraint ClockConstraint
}

func (g ClockGuard) String() string {
	return g.Clock + " " + g.Constraint.String()
}

// Transition is a guarded, labeled edge between two locations.
type Transition struct {
	Source string
	Target string
	Symbol string
	Guards []ClockGuard
	Resets []string
}

// NewTransition returns a transition from source to target, labeled with the
// given symbol, enabled under the given guards, resetting the given clocks.
func NewTransition(source, symbol, target string, guards []ClockGuard, resets []string) Transition {
	return Transition{
		Source: source,
		Target: target,
		Symbol: symbol,
		Guards: guards,
		Resets: resets,
	}
}

// IsEnabled reports whether the transition fires for the given symbol under
// the given clock valuations.
func (t Transition) IsEnabled(symbol string, valuations ClockSetValuation) bool {
	if symbol != t.Symbol {
		return false
	}
	for _, guard := range t.Guards {
		clock, ok := valuations[guard.Clock]
		if !ok {
			return false
		}
		if !guard.Constraint.IsSatisfied(clock.Valuation()) {
			return false
		}
	}
	return true
}

func (t Transition) String() string {
	guards := make([]string, 0, len(t.Guards))
	for _, guard := range t.Guards {
		guards = append(guards, guard.String())
	}
	return fmt.Sprintf("%s -> %s: %s [%s] reset %v",
		t.Source, t.Target, t.Symbol, strings.Join(guards, ", "), t.Resets)
}

// TimedAutomaton is a nondeterministic timed automaton over string locations
// and symbols.
type TimedAutomaton struct {
	alphabet    map[string]bool
	locations   map[string]bool
	initial     string
	final       map[string]bool
	clocks      map[string]bool
	transitions []Transition
}

// NewTimedAutomaton validates and returns a timed automaton. Transitions may
// only use declared locations, symbols, and clocks.
func NewTimedAutomaton(alphabet, locations []string, initial string, final, clocks []string, transitions []Transition) (*TimedAutomaton, error) {
	ta := &TimedAutomaton{
		alphabet:  make(map[string]bool, len(alphabet)),
		locations: make(map[string]bool, len(locations)),
		initial:   initial,
		final:     make(map[string]bool, len(final)),
		clocks:    make(map[string]bool, len(clocks)),
	}
	for _, symbol := range alphabet {
		ta.alphabet[symbol] = true
	}
	for _, location := range locations {
		ta.locations[location] = true
	}
	for _, location := range final {
		if !ta.locations[location] {
			return nil, &InvalidLocationError{Location: location}
		}
		ta.final[location] = true
	}
	for _, clock := range clocks {
		ta.clocks[clock] = true
	}
	if !ta.locations[initial] {
		return nil, &InvalidLocationError{Location: initial}
	}
	for _, transition := range transitions {
		if !ta.locations[transition.Source] {
			return nil, &InvalidLocationError{Location: transition.Source}
		}
		if !ta.locations[transition.Target] {
			return nil, &InvalidLocationError{Location: transition.Target}
		}
		if !ta.alphabet[transition.Symbol] {
			return nil, &InvalidSymbolError{Symbol: transition.Symbol}
		}
		for _, guard := range transition.Guards {
			if !ta.clocks[guard.Clock] {
				return nil, &InvalidClockError{Clock: guard.Clock}
			}
		}
		for _, clock := range transition.Resets {
			if !ta.clocks[clock] {
				return nil, &InvalidClockError{Clock: clock}
			}
		}
		ta.transitions = append(ta.transitions, transition)
	}
	return ta, nil
}

// Alphabet returns the automaton's symbols in sorted order.
func (ta *TimedAutomaton) Alphabet() []string {
	return sortedKeys(ta.alphabet)
}

// Locations returns the automaton's locations in sorted order.
func (ta *TimedAutomaton) Locations() []string {
	return sortedKeys(ta.locations)
}

// InitialLocation returns the initial location.
func (ta *TimedAutomaton) InitialLocation() string {
	return ta.initial
}

// FinalLocations returns the accepting locations in sorted order.
func (ta *TimedAutomaton) FinalLocations() []string {
	return sortedKeys(ta.final)
}

// IsFinalLocation reports whether the given location is accepting.
func (ta *TimedAutomaton) IsFinalLocation(location string) bool {
	return ta.final[location]
}

// Clocks returns the clock names in sorted order.
func (ta *TimedAutomaton) Clocks() []string {
	return sortedKeys(ta.clocks)
}

// Transitions returns all transitions of the automaton.
func (ta *TimedAutomaton) Transitions() []Transition {
	return ta.transitions
}

// InitialConfiguration returns the initial location with all clocks at zero.
func (ta *TimedAutomaton) InitialConfiguration() Configuration {
	valuations := make(ClockSetValuation, len(ta.clocks))
	for clock := range ta.clocks {
		valuations[clock] = NewClock(0)
	}
	return Configuration{Location: ta.initial, ClockValuations: valuations}
}

// IsAcceptingConfiguration reports whether the configuration's location is
// accepting.
func (ta *TimedAutomaton) IsAcceptingConfiguration(c Configuration) bool {
	return ta.final[c.Location]
}

// MakeSymbolStep returns every configuration reachable by firing one enabled
// transition for the given symbol, with resets applied.
func (ta *TimedAutomaton) MakeSymbolStep(c Configuration, symbol string) []Configuration {
	successors := make(map[string]Configuration)
	for _, transition := range ta.transitions {
		if transition.Source != c.Location || !transition.IsEnabled(symbol, c.ClockValuations) {
			continue
		}
		next := c.Copy()
		next.Location = transition.Target
		for _, clock := range transition.Resets {
			reset := next.ClockValuations[clock]
			reset.Reset()
			next.ClockValuations[clock] = reset
		}
		successors[next.String()] = next
	}
	keys := make([]string, 0, len(successors))
	for key := range successors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	result := make([]Configuration, 0, len(keys))
	for _, key := range keys {
		result = append(result, successors[key])
	}
	return result
}

// MakeTimeStep advances all clocks of the configuration by d.
func (ta *TimedAutomaton) MakeTimeStep(c Configuration, d Time) (Configuration, error) {
	if d < 0 {
		return Configuration{}, &NegativeTimeDeltaError{Delta: d}
	}
	next := c.Copy()
	for name, clock := range next.ClockValuations {
		clock.Tick(d)
		next.ClockValuations[name] = clock
	}
	return next, nil
}

// AcceptsWord reports whether some run over the timed word ends in a final
// location. Timestamps must be monotonically non-decreasing.
func (ta *TimedAutomaton) AcceptsWord(word TimedWord) (bool, error) {
	type timedConfiguration struct {
		configuration Configuration
		time          Time
	}
	configurations := []timedConfiguration{{ta.InitialConfiguration(), 0}}
	for _, letter := range word {
		next := make(map[string]timedConfiguration)
		for _, tc := range configurations {
			if letter.Time < tc.time {
				return false, &InvalidTimedWordError{
					Message: fmt.Sprintf("timestamp %g is earlier than %g", letter.Time, tc.time),
				}
			}
			advanced, err := ta.MakeTimeStep(tc.configuration, letter.Time-tc.time)
			if err != nil {
				return false, err
			}
			for _, successor := range ta.MakeSymbolStep(advanced, letter.Symbol) {
				next[successor.String()] = timedConfiguration{successor, letter.Time}
			}
		}
		if len(next) == 0 {
			return false, nil
		}
		configurations = configurations[:0]
		for _, tc := range next {
			configurations = append(configurations, tc)
		}
	}
	for _, tc := range configurations {
		if ta.final[tc.configuration.Location] {
			return true, nil
		}
	}
	return false, nil
}

// LargestConstant returns the largest comparand appearing in any guard.
func (ta *TimedAutomaton) LargestConstant() Endpoint {
	var largest Endpoint
	for _, transition := range ta.transitions {
		for _, guard := range transition.Guards {
			if guard.Constraint.Comparand > largest {
				largest = guard.Constraint.Comparand
			}
		}
	}
	return largest
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
