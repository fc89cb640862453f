// Package translator builds alternating timed automata from metric temporal
// logic formulas such that an automaton accepts exactly the words satisfying
// its formula.
package translator

import (
	"fmt"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata/ata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/mtl"
)

// sentinelLocation is the dedicated initial location of every translated
// automaton. It must not occur in the alphabet or in the formula.
const sentinelLocation = "phi_i"

// Translate builds an alternating timed automaton accepting exactly the timed
// words satisfying the formula. The automaton is total over the given
// alphabet; if the alphabet is empty, the formula's own propositions are
// used. The formula is brought into positive normal form first.
func Translate(f mtl.Formula, alphabet []string) (*ata.AlternatingTimedAutomaton, error) {
	if len(alphabet) == 0 {
		alphabet = f.Alphabet()
	}
	for _, symbol := range alphabet {
		if symbol == sentinelLocation {
			return nil, fmt.Errorf("the symbol %q is reserved for the initial location", sentinelLocation)
		}
	}
	for _, atom := range f.Alphabet() {
		if atom == sentinelLocation {
			return nil, fmt.Errorf("the proposition %q is reserved for the initial location", sentinelLocation)
		}
	}
	normalized := f.ToPositiveNormalForm()
	untils := normalized.Subformulas(mtl.OpUntil)
	dualUntils := normalized.Subformulas(mtl.OpDualUntil)

	final := make([]string, 0, len(dualUntils))
	for _, d := range dualUntils {
		final = append(final, d.String())
	}

	var transitions []ata.Transition
	for _, symbol := range alphabet {
		transitions = append(transitions, ata.Transition{
			Source:  sentinelLocation,
			Symbol:  symbol,
			Formula: initialFormula(normalized, symbol),
		})
		for _, u := range untils {
			transitions = append(transitions, ata.Transition{
				Source: u.String(),
				Symbol: symbol,
				Formula: ata.NewDisjunction(
					ata.NewConjunction(initialFormula(u.Operands()[1], symbol), containsFormula(u.Interval())),
					ata.NewConjunction(initialFormula(u.Operands()[0], symbol), ata.LocationFormula{Location: u.String()}),
				),
			})
		}
		for _, d := range dualUntils {
			transitions = append(transitions, ata.Transition{
				Source: d.String(),
				Symbol: symbol,
				Formula: ata.NewConjunction(
					ata.NewDisjunction(initialFormula(d.Operands()[1], symbol), excludesFormula(d.Interval())),
					ata.NewDisjunction(initialFormula(d.Operands()[0], symbol), ata.LocationFormula{Location: d.String()}),
				),
			})
		}
	}
	return ata.NewAlternatingTimedAutomaton(alphabet, sentinelLocation, final, transitions), nil
}

// initialFormula is the transition formula induced by reading the symbol in a
// configuration that still owes the whole formula.
func initialFormula(f mtl.Formula, symbol string) ata.Formula {
	switch f.Op() {
	case mtl.OpTrue:
		return ata.TrueFormula{}
	case mtl.OpFalse:
		return ata.FalseFormula{}
	case mtl.OpAP:
		if f.Atom() == symbol {
			return ata.TrueFormula{}
		}
		return ata.FalseFormula{}
	case mtl.OpNot:
		// in positive normal form only atoms are negated
		if f.Operands()[0].Atom() == symbol {
			return ata.FalseFormula{}
		}
		return ata.TrueFormula{}
	case mtl.OpAnd:
		operands := make([]ata.Formula, len(f.Operands()))
		for i, o := range f.Operands() {
			operands[i] = initialFormula(o, symbol)
		}
		return ata.NewConjunction(operands...)
	case mtl.OpOr:
		operands := make([]ata.Formula, len(f.Operands()))
		for i, o := range f.Operands() {
			operands[i] = initialFormula(o, symbol)
		}
		return ata.NewDisjunction(operands...)
	case mtl.OpUntil, mtl.OpDualUntil:
		// the clock measuring the temporal bound starts fresh
		return ata.ResetClockFormula{Formula: ata.LocationFormula{Location: f.String()}}
	}
	return ata.FalseFormula{}
}

// containsFormula constrains the clock to lie within the interval.
func containsFormula(within mtl.Interval) ata.Formula {
	var constraints []ata.Formula
	switch within.LowerBound {
	case mtl.WeakBound:
		constraints = append(constraints, ata.ClockConstraintFormula{
			Constraint: automata.ClockConstraint{Comparison: automata.GreaterEqual, Comparand: within.Lower},
		})
	case mtl.StrictBound:
		constraints = append(constraints, ata.ClockConstraintFormula{
			Constraint: automata.ClockConstraint{Comparison: automata.Greater, Comparand: within.Lower},
		})
	}
	switch within.UpperBound {
	case mtl.WeakBound:
		constraints = append(constraints, ata.ClockConstraintFormula{
			Constraint: automata.ClockConstraint{Comparison: automata.LessEqual, Comparand: within.Upper},
		})
	case mtl.StrictBound:
		constraints = append(constraints, ata.ClockConstraintFormula{
			Constraint: automata.ClockConstraint{Comparison: automata.Less, Comparand: within.Upper},
		})
	}
	return ata.NewConjunction(constraints...)
}

// excludesFormula constrains the clock to lie outside the interval.
func excludesFormula(within mtl.Interval) ata.Formula {
	var constraints []ata.Formula
	switch within.LowerBound {
	case mtl.WeakBound:
		constraints = append(constraints, ata.ClockConstraintFormula{
			Constraint: automata.ClockConstraint{Comparison: automata.Less, Comparand: within.Lower},
		})
	case mtl.StrictBound:
		constraints = append(constraints, ata.ClockConstraintFormula{
			Constraint: automata.ClockConstraint{Comparison: automata.LessEqual, Comparand: within.Lower},
		})
	}
	switch within.UpperBound {
	case mtl.WeakBound:
		constraints = append(constraints, ata.ClockConstraintFormula{
			Constraint: automata.ClockConstraint{Comparison: automata.Greater, Comparand: within.Upper},
		})
	case mtl.StrictBound:
		constraints = append(constraints, ata.ClockConstraintFormula{
			Constraint: automata.ClockConstraint{Comparison: automata.GreaterEqual, Comparand: within.Upper},
		})
	}
	return ata.NewDisjunction(constraints...)
}
