package mtl

import (
	"testing"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/stretchr/testify/assert"
)

func letter(time automata.Time, symbols ...string) Letter {
	return Letter{Symbols: symbols, Time: time}
}

func TestSatisfiesAt_Propositional(t *testing.T) {
	w := Word{letter(0, "a", "b"), letter(1, "b")}
	assert.True(t, w.SatisfiesAt(AP("a"), 0))
	assert.False(t, w.SatisfiesAt(AP("a"), 1))
	assert.True(t, w.SatisfiesAt(And(AP("a"), AP("b")), 0))
	assert.False(t, w.SatisfiesAt(And(AP("a"), AP("b")), 1))
	assert.True(t, w.SatisfiesAt(Or(AP("a"), AP("c")), 0))
	assert.True(t, w.SatisfiesAt(Not(AP("c")), 0))
	assert.True(t, w.SatisfiesAt(True(), 1))
	assert.False(t, w.SatisfiesAt(False(), 1))
	assert.False(t, w.SatisfiesAt(True(), 2), "positions past the end satisfy nothing")
}

func TestSatisfies_Until(t *testing.T) {
	f := Until(AP("a"), AP("b"), ClosedInterval(1, 2))

	assert.True(t, Word{letter(0, "a"), letter(0.5, "a"), letter(1.5, "b")}.Satisfies(f))
	assert.False(t, Word{letter(0, "a"), letter(0.5, "b"), letter(1.5, "b")}.Satisfies(f),
		"the first position satisfying the right operand decides the timing bound")
	assert.False(t, Word{letter(0, "a"), letter(0.5, "c"), letter(1, "b")}.Satisfies(Until(AP("a"), AP("b"), Interval{})),
		"the left operand must hold at intermediate positions")
	assert.False(t, Word{letter(0, "a"), letter(1, "a")}.Satisfies(f), "the right operand never holds")
	assert.False(t, Word{letter(0, "a")}.Satisfies(f), "until needs a strictly later position")
}

func TestSatisfies_DualUntil(t *testing.T) {
	g := Globally(AP("a"), Interval{})
	assert.True(t, Word{letter(0, "a"), letter(1, "a"), letter(2.5, "a")}.Satisfies(g))
	assert.False(t, Word{letter(0, "a"), letter(1, "b")}.Satisfies(g))

	f := DualUntil(AP("p"), AP("q"), ClosedInterval(0, 1))
	assert.True(t, Word{letter(0, "q"), letter(0.5, "p", "q")}.Satisfies(f),
		"a position satisfying both operands decides via the timing bound")
	assert.False(t, Word{letter(0, "q"), letter(1.5, "p", "q")}.Satisfies(f))
	assert.True(t, Word{letter(0, "x"), letter(0.5, "q")}.Satisfies(f),
		"the word may end without a deciding position")
}
