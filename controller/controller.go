// Package controller turns a won search into an executable strategy: a
// timed automaton whose locations are the word sets of the winning nodes
// and whose guards reproduce the time windows in which the chosen actions
// win.
package controller

import (
	"fmt"
	"sort"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/search"
)

// Create extracts a controller from a labeled search tree. The root must be
// labeled TOP; k is the largest constant the search ran with. At nodes
// where the controller moves, one winning action is kept, preferring
// controller-owned actions; at nodes where the environment moves, every
// environment action is answered. Since winning only requires reaching an
// accepting configuration, every location of the result is final.
func Create(root *search.Node, k automata.Endpoint, controllerActions []string) (*automata.TimedAutomaton, error) {
	if root.Label() != search.LabelTop {
		return nil, fmt.Errorf("cannot build a controller from a %s root", root.Label())
	}
	b := &builder{
		k:                 k,
		maxRegion:         automata.GetMaxRegionIndex(k),
		controllerActions: make(map[string]bool, len(controllerActions)),
		alphabet:          make(map[string]bool),
		locations:         make(map[string]bool),
		clocks:            make(map[string]bool),
		visited:           make(map[string]bool),
	}
	for _, a := range controllerActions {
		b.controllerActions[a] = true
	}
	if err := b.visit(root); err != nil {
		return nil, err
	}
	return automata.NewTimedAutomaton(
		sortedKeys(b.alphabet),
		sortedKeys(b.locations),
		root.WordsKey(),
		sortedKeys(b.locations),
		sortedKeys(b.clocks),
		b.transitions,
	)
}

type builder struct {
	k                 automata.Endpoint
	maxRegion         automata.RegionIndex
	controllerActions map[string]bool
	alphabet          map[string]bool
	locations         map[string]bool
	clocks            map[string]bool
	transitions       []automata.Transition
	visited           map[string]bool
}

// move groups the children reached from one node under one action and one
// target position, collecting all region increments that lead there.
type move struct {
	action     string
	target     *search.Node
	effective  search.Label
	increments []automata.RegionIndex
}

func (b *builder) visit(n *search.Node) error {
	if b.visited[n.WordsKey()] {
		return nil
	}
	b.visited[n.WordsKey()] = true
	b.locations[n.WordsKey()] = true
	for _, w := range n.Words() {
		for _, p := range search.RegionalProjection(w) {
			for _, s := range p {
				if s.Kind == search.PlantSymbol {
					b.clocks[s.Clock] = true
				}
			}
		}
	}
	if len(n.Children()) == 0 {
		return nil
	}
	moves, err := groupMoves(n)
	if err != nil {
		return err
	}
	switch n.Kind() {
	case search.OrNode:
		chosen := chooseWinningMove(moves, b.controllerActions)
		if chosen == nil {
			return fmt.Errorf("no winning move at %s", n.WordsKey())
		}
		return b.emit(n, chosen)
	case search.AndNode:
		for _, m := range moves {
			if b.controllerActions[m.action] {
				continue
			}
			if m.effective != search.LabelTop {
				return fmt.Errorf("environment action %q escapes the strategy at %s", m.action, n.WordsKey())
			}
			if err := b.emit(n, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// emit adds the transitions for one move and recurses into the target.
// Every word of the source contributes its own guard set per consecutive
// run of increments: the words of a location may place the plant clocks in
// different regions, and the guard windows must cover each of them. Words
// that agree on the guards collapse into one transition.
func (b *builder) emit(source *search.Node, m *move) error {
	seen := make(map[string]bool)
	for _, w := range source.Words() {
		base := search.RegionalProjection(w)
		for _, run := range consecutiveRuns(m.increments) {
			var guards []automata.ClockGuard
			lower := search.NthTimeSuccessor(base, run[0], b.k)
			for _, p := range lower {
				for _, s := range p {
					if s.Kind != search.PlantSymbol {
						continue
					}
					for _, c := range automata.GetClockConstraintsFromRegionIndex(s.Region, b.maxRegion, automata.ConstraintBoundLower) {
						guards = append(guards, automata.ClockGuard{Clock: s.Clock, Constraint: c})
					}
				}
			}
			upper := search.NthTimeSuccessor(base, run[1], b.k)
			for _, p := range upper {
				for _, s := range p {
					if s.Kind != search.PlantSymbol {
						continue
					}
					for _, c := range automata.GetClockConstraintsFromRegionIndex(s.Region, b.maxRegion, automata.ConstraintBoundUpper) {
						guards = append(guards, automata.ClockGuard{Clock: s.Clock, Constraint: c})
					}
				}
			}
			key := fmt.Sprint(guards)
			if seen[key] {
				continue
			}
			seen[key] = true
			b.transitions = append(b.transitions,
				automata.NewTransition(source.WordsKey(), m.action, m.target.WordsKey(), guards, nil))
		}
	}
	b.alphabet[m.action] = true
	return b.visit(m.target)
}

// groupMoves buckets a node's children by action and target position,
// dereferencing CANCELED children to their dominating ancestor.
func groupMoves(n *search.Node) ([]*move, error) {
	byKey := make(map[string]*move)
	var order []string
	for _, child := range n.Children() {
		target := child
		if child.Label() == search.LabelCanceled {
			target = child.Dominator()
			if target == nil {
				return nil, fmt.Errorf("canceled node %s has no dominator", child.WordsKey())
			}
		}
		key := child.Incoming().Action + "\x00" + target.WordsKey()
		m, ok := byKey[key]
		if !ok {
			m = &move{action: child.Incoming().Action, target: target, effective: child.EffectiveLabel()}
			byKey[key] = m
			order = append(order, key)
		}
		m.increments = append(m.increments, child.Incoming().Increment)
	}
	moves := make([]*move, 0, len(order))
	for _, key := range order {
		m := byKey[key]
		sort.Slice(m.increments, func(i, j int) bool { return m.increments[i] < m.increments[j] })
		moves = append(moves, m)
	}
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].increments[0] != moves[j].increments[0] {
			return moves[i].increments[0] < moves[j].increments[0]
		}
		return moves[i].action < moves[j].action
	})
	return moves, nil
}

// chooseWinningMove picks the move the controller commits to: the first
// winning move by (increment, action) order, preferring controller-owned
// actions over waiting for the environment.
func chooseWinningMove(moves []*move, controllerActions map[string]bool) *move {
	var fallback *move
	for _, m := range moves {
		if m.effective != search.LabelTop {
			continue
		}
		if controllerActions[m.action] {
			return m
		}
		if fallback == nil {
			fallback = m
		}
	}
	return fallback
}

// consecutiveRuns splits a sorted increment list into maximal runs of
// adjacent region indices.
func consecutiveRuns(increments []automata.RegionIndex) [][2]automata.RegionIndex {
	var runs [][2]automata.RegionIndex
	for _, inc := range increments {
		if len(runs) > 0 && runs[len(runs)-1][1]+1 == inc {
			runs[len(runs)-1][1] = inc
			continue
		}
		if len(runs) > 0 && runs[len(runs)-1][1] == inc {
			continue
		}
		runs = append(runs, [2]automata.RegionIndex{inc, inc})
	}
	return runs
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
