package search

import (
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// TimeSuccessorStep pairs a canonical word with the number of region
// increments taken from the original word to reach it.
type TimeSuccessorStep struct {
	Increment automata.RegionIndex
	Word      Word
}

func isMaxedPartition(p Partition, max automata.RegionIndex) bool {
	for _, s := range p {
		if s.Region != max {
			return false
		}
	}
	return true
}

// incrementSymbols raises every region of the partition by one and splits
// the result into symbols still below the maximal region and symbols that
// just reached it.
func incrementSymbols(p Partition, max automata.RegionIndex) (below, maxed []RegionSymbol) {
	for _, s := range p {
		s.Region++
		if s.Region == max {
			maxed = append(maxed, s)
		} else {
			below = append(below, s)
		}
	}
	return below, maxed
}

// TimeSuccessor returns the canonical word reached by the smallest time
// advance that changes the region abstraction. The partition closest to the
// next integer value crosses it first; if its symbols were already at an
// integer, every fractional part grows instead and the integer partition
// turns fractional. A word whose regions are all maximal is its own
// successor.
func TimeSuccessor(w Word, k automata.Endpoint) Word {
	if len(w) == 0 {
		return w
	}
	max := automata.GetMaxRegionIndex(k)
	last := len(w) - 1
	var maxed []RegionSymbol
	if isMaxedPartition(w[last], max) {
		maxed = append(maxed, w[last]...)
		last--
	}
	if last < 0 {
		return w
	}
	var successor Word
	below, nowMaxed := incrementSymbols(w[last], max)
	maxed = append(maxed, nowMaxed...)
	if len(below) > 0 {
		successor = append(successor, newPartition(below))
	}
	if last > 0 {
		if w[0][0].Region%2 == 0 {
			firstBelow, firstMaxed := incrementSymbols(w[0], max)
			maxed = append(maxed, firstMaxed...)
			if len(firstBelow) > 0 {
				successor = append(successor, newPartition(firstBelow))
			}
		} else {
			successor = append(successor, w[0])
		}
		successor = append(successor, w[1:last]...)
	}
	if len(maxed) > 0 {
		successor = append(successor, newPartition(maxed))
	}
	return successor
}

// NthTimeSuccessor applies TimeSuccessor n times.
func NthTimeSuccessor(w Word, n automata.RegionIndex, k automata.Endpoint) Word {
	for i := automata.RegionIndex(0); i < n; i++ {
		w = TimeSuccessor(w, k)
	}
	return w
}

// TimeSuccessors enumerates the word and all its distinct time successors,
// annotated with the increment needed to reach each. The enumeration stops
// once the successor chain reaches its fixed point.
func TimeSuccessors(w Word, k automata.Endpoint) []TimeSuccessorStep {
	steps := []TimeSuccessorStep{{Increment: 0, Word: w}}
	for {
		previous := steps[len(steps)-1].Word
		next := TimeSuccessor(previous, k)
		if next.Equal(previous) {
			return steps
		}
		steps = append(steps, TimeSuccessorStep{Increment: automata.RegionIndex(len(steps)), Word: next})
	}
}
