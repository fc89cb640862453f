package mtl

import (
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// Letter is one position of a timed word, the set of atomic propositions
// holding at a point in time.
type Letter struct {
	Symbols []string
	Time    automata.Time
}

// Contains reports whether the letter carries the given proposition.
func (l Letter) Contains(symbol string) bool {
	for _, s := range l.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// Word is a finite timed word over sets of atomic propositions.
type Word []Letter

// Satisfies reports whether the word satisfies the formula at its first
// position.
func (w Word) Satisfies(f Formula) bool {
	return w.SatisfiesAt(f, 0)
}

// SatisfiesAt reports whether the word satisfies the formula at position i.
// Until operators range over strictly later positions, and the first position
// satisfying the right operand decides the timing bound.
func (w Word) SatisfiesAt(f Formula, i int) bool {
	if i >= len(w) {
		return false
	}
	switch f.op {
	case OpTrue:
		return true
	case OpFalse:
		return false
	case OpAP:
		return w[i].Contains(f.atom)
	case OpAnd:
		for _, o := range f.operands {
			if !w.SatisfiesAt(o, i) {
				return false
			}
		}
		return true
	case OpOr:
		for _, o := range f.operands {
			if w.SatisfiesAt(o, i) {
				return true
			}
		}
		return false
	case OpNot:
		for _, o := range f.operands {
			if w.SatisfiesAt(o, i) {
				return false
			}
		}
		return true
	case OpUntil:
		for j := i + 1; j < len(w); j++ {
			if w.SatisfiesAt(f.operands[1], j) {
				return f.interval.Contains(w[j].Time - w[i].Time)
			}
			if !w.SatisfiesAt(f.operands[0], j) {
				return false
			}
		}
		return false
	case OpDualUntil:
		for j := i + 1; j < len(w); j++ {
			if w.SatisfiesAt(f.operands[0], j) && w.SatisfiesAt(f.operands[1], j) {
				return f.interval.Contains(w[j].Time - w[i].Time)
			}
			if !w.SatisfiesAt(f.operands[1], j) {
				return false
			}
		}
		return true
	}
	return false
}
