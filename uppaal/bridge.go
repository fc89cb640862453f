package uppaal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// FromTimedAutomaton builds a single-process system for the given timed
// automaton. Locations become states on a grid layout, alphabet symbols
// become global channels synchronised on each transition, and clock resets
// become assignments. Location names that are no valid identifiers are
// replaced with generated ones; the original name is kept as the state
// comment. Final locations are not representable in UPPAAL and must be
// re-supplied when converting back.
func FromTimedAutomaton(ta *automata.TimedAutomaton, name string) *System {
	s := NewSystem()
	for _, symbol := range ta.Alphabet() {
		s.Declarations().AddChannel(symbol)
	}
	p := s.AddProcess(sanitizeIdentifier(name))
	for _, clock := range ta.Clocks() {
		p.Declarations().AddClock(clock)
	}

	states := make(map[string]*State, len(ta.Locations()))
	for i, location := range ta.Locations() {
		candidate := sanitizeIdentifier(location)
		var state *State
		if candidate == location && p.GetStateWithName(candidate) == nil {
			state = p.AddState(candidate, NoRenaming)
		} else {
			state = p.AddState("L", Renaming)
			state.SetComment(location)
		}
		state.SetLocationAndResetNameLocation(Location{200 * (i % 4), 150 * (i / 4)})
		states[location] = state
	}
	p.SetInitialState(states[ta.InitialLocation()])

	for _, transition := range ta.Transitions() {
		start := states[transition.Source]
		end := states[transition.Target]
		t := p.AddTrans(start, end)
		for _, guard := range transition.Guards {
			t.AddGuard(fmt.Sprintf("%s %s", guard.Clock, guard.Constraint))
		}
		t.SetSync(transition.Symbol + "!")
		for _, clock := range transition.Resets {
			t.AddUpdate(clock + " = 0")
		}
		mid := Mid(start.Location(), end.Location())
		t.SetGuardLocation(mid.Add(Location{4, -34}))
		t.SetSyncLocation(mid.Add(Location{4, -17}))
		t.SetUpdateLocation(mid.Add(Location{4, 0}))
	}

	s.AddProcessInstance(p, p.Name())
	return s
}

// ToTimedAutomaton converts a system with exactly one template into a timed
// automaton.
func (s *System) ToTimedAutomaton(finalLocations []string) (*automata.TimedAutomaton, error) {
	processes := s.Processes()
	if len(processes) != 1 {
		return nil, fmt.Errorf("system has %d templates, need exactly one: %w",
			len(processes), automata.ErrUnsupported)
	}
	return processes[0].ToTimedAutomaton(finalLocations)
}

// ToTimedAutomaton converts the process into a timed automaton. UPPAAL has
// no notion of accepting locations, so the final locations are supplied by
// the caller; with none given, the initial location is final. Guard and
// assignment texts must stay within single clock comparisons against integer
// constants and resets to zero.
func (p *Process) ToTimedAutomaton(finalLocations []string) (*automata.TimedAutomaton, error) {
	if p.init == "" {
		return nil, fmt.Errorf("process %q has no initial location", p.name)
	}
	locations := make([]string, 0, len(p.states))
	for _, state := range p.States() {
		locations = append(locations, state.Name())
	}
	if len(finalLocations) == 0 {
		finalLocations = []string{p.init}
	}

	alphabetSet := make(map[string]bool)
	transitions := make([]automata.Transition, 0, len(p.transitions))
	for _, t := range p.transitions {
		symbol := strings.TrimRight(strings.TrimSpace(t.Sync()), "!?")
		if symbol == "" {
			return nil, fmt.Errorf("transition %s -> %s has no synchronisation label",
				t.Start().Name(), t.End().Name())
		}
		alphabetSet[symbol] = true
		guards, err := p.parseGuard(t.Guard())
		if err != nil {
			return nil, fmt.Errorf("transition %s -> %s: %w", t.Start().Name(), t.End().Name(), err)
		}
		resets, err := p.parseUpdate(t.Update())
		if err != nil {
			return nil, fmt.Errorf("transition %s -> %s: %w", t.Start().Name(), t.End().Name(), err)
		}
		transitions = append(transitions,
			automata.NewTransition(t.Start().Name(), symbol, t.End().Name(), guards, resets))
	}
	alphabet := make([]string, 0, len(alphabetSet))
	for symbol := range alphabetSet {
		alphabet = append(alphabet, symbol)
	}
	sort.Strings(alphabet)

	return automata.NewTimedAutomaton(alphabet, locations, p.init, finalLocations, p.decls.Clocks(), transitions)
}

func (p *Process) parseGuard(expr string) ([]automata.ClockGuard, error) {
	var guards []automata.ClockGuard
	for _, part := range strings.Split(expr, "&&") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clock, comparison, value, err := splitComparison(part)
		if err != nil {
			return nil, err
		}
		if !p.decls.HasClock(clock) {
			return nil, fmt.Errorf("guard %q references undeclared clock %q", part, clock)
		}
		guards = append(guards, automata.ClockGuard{
			Clock:      clock,
			Constraint: automata.ClockConstraint{Comparison: comparison, Comparand: value},
		})
	}
	return guards, nil
}

func (p *Process) parseUpdate(stmts string) ([]string, error) {
	var resets []string
	for _, part := range strings.Split(stmts, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.Replace(part, ":=", "=", 1)
		sides := strings.SplitN(part, "=", 2)
		if len(sides) != 2 {
			return nil, fmt.Errorf("could not parse assignment %q", part)
		}
		clock := strings.TrimSpace(sides[0])
		value := strings.TrimSpace(sides[1])
		if clock == "" || value == "" {
			return nil, fmt.Errorf("could not parse assignment %q", part)
		}
		if !p.decls.HasClock(clock) {
			return nil, fmt.Errorf("assignment %q references undeclared clock %q", part, clock)
		}
		if value != "0" {
			return nil, fmt.Errorf("assignment %q: clocks can only be reset to zero: %w",
				part, automata.ErrUnsupported)
		}
		resets = append(resets, clock)
	}
	return resets, nil
}

type comparisonToken struct {
	token      string
	comparison automata.Comparison
}

// longer tokens first, so that "<=" is not read as "<"
var comparisonTokens = []comparisonToken{
	{"<=", automata.LessEqual},
	{">=", automata.GreaterEqual},
	{"==", automata.Equal},
	{"<", automata.Less},
	{">", automata.Greater},
	{"=", automata.Equal},
}

func splitComparison(text string) (string, automata.Comparison, automata.Endpoint, error) {
	for _, op := range comparisonTokens {
		i := strings.Index(text, op.token)
		if i < 0 {
			continue
		}
		clock := strings.TrimSpace(text[:i])
		value, err := strconv.ParseUint(strings.TrimSpace(text[i+len(op.token):]), 10, 64)
		if err != nil || clock == "" {
			return "", 0, 0, fmt.Errorf("could not parse comparison %q", text)
		}
		return clock, op.comparison, automata.Endpoint(value), nil
	}
	return "", 0, 0, fmt.Errorf("could not parse comparison %q", text)
}

// sanitizeIdentifier maps a name to a valid UPPAAL identifier by replacing
// every illegal character with an underscore.
func sanitizeIdentifier(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
