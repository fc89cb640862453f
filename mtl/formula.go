// Package mtl implements metric temporal logic over finite timed words with
// pointwise semantics.
package mtl

import (
	"sort"
	"strings"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// Operator identifies the outermost connective of a formula.
type Operator int

const (
	OpTrue Operator = iota
	OpFalse
	OpAP
	OpAnd
	OpOr
	OpNot
	OpUntil
	OpDualUntil
)

// Formula is a metric temporal logic formula. Formulas are immutable values,
// and two formulas are the same exactly if their String renderings match.
type Formula struct {
	op       Operator
	atom     string
	interval Interval
	operands []Formula
}

// True returns the formula ⊤.
func True() Formula {
	return Formula{op: OpTrue}
}

// False returns the formula ⊥.
func False() Formula {
	return Formula{op: OpFalse}
}

// AP returns the atomic proposition with the given name. The names "true" and
// "false" fold into the corresponding constants.
func AP(name string) Formula {
	switch name {
	case "true":
		return True()
	case "false":
		return False()
	}
	return Formula{op: OpAP, atom: name}
}

// And returns the conjunction of the given formulas.
func And(operands ...Formula) Formula {
	if len(operands) == 0 {
		return True()
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return Formula{op: OpAnd, operands: operands}
}

// Or returns the disjunction of the given formulas.
func Or(operands ...Formula) Formula {
	if len(operands) == 0 {
		return False()
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return Formula{op: OpOr, operands: operands}
}

// Not returns the negation of the operand.
func Not(operand Formula) Formula {
	return Formula{op: OpNot, operands: []Formula{operand}}
}

// Until returns the until formula bounded by the given interval. Pass the
// zero Interval for an unbounded until.
func Until(left, right Formula, within Interval) Formula {
	return Formula{op: OpUntil, interval: within, operands: []Formula{left, right}}
}

// DualUntil returns the dual until formula bounded by the given interval.
func DualUntil(left, right Formula, within Interval) Formula {
	return Formula{op: OpDualUntil, interval: within, operands: []Formula{left, right}}
}

// Finally returns the eventuality ⊤ U operand.
func Finally(operand Formula, within Interval) Formula {
	return Until(True(), operand, within)
}

// Globally returns the invariance ⊥ ~U operand.
func Globally(operand Formula, within Interval) Formula {
	return DualUntil(False(), operand, within)
}

// Op returns the outermost operator.
func (f Formula) Op() Operator {
	return f.op
}

// Atom returns the proposition name of an atomic formula.
func (f Formula) Atom() string {
	return f.atom
}

// Interval returns the timing bound of an until or dual until.
func (f Formula) Interval() Interval {
	return f.interval
}

// Operands returns the direct subformulas.
func (f Formula) Operands() []Formula {
	return f.operands
}

func (f Formula) String() string {
	switch f.op {
	case OpTrue:
		return "⊤"
	case OpFalse:
		return "⊥"
	case OpAP:
		return f.atom
	case OpAnd:
		return "(" + joinOperands(f.operands, " && ") + ")"
	case OpOr:
		return "(" + joinOperands(f.operands, " || ") + ")"
	case OpNot:
		return "!(" + f.operands[0].String() + ")"
	case OpUntil:
		return "(" + f.operands[0].String() + " U" + f.interval.String() + " " + f.operands[1].String() + ")"
	case OpDualUntil:
		return "(" + f.operands[0].String() + " ~U" + f.interval.String() + " " + f.operands[1].String() + ")"
	}
	return ""
}

func joinOperands(operands []Formula, separator string) string {
	parts := make([]string, len(operands))
	for i, o := range operands {
		parts[i] = o.String()
	}
	return strings.Join(parts, separator)
}

// ToPositiveNormalForm pushes negations inward until they apply only to
// atomic propositions, dualizing operators along the way.
func (f Formula) ToPositiveNormalForm() Formula {
	switch f.op {
	case OpTrue, OpFalse, OpAP:
		return f
	case OpAnd, OpOr:
		operands := make([]Formula, len(f.operands))
		for i, o := range f.operands {
			operands[i] = o.ToPositiveNormalForm()
		}
		return Formula{op: f.op, operands: operands}
	case OpUntil, OpDualUntil:
		return Formula{
			op:       f.op,
			interval: f.interval,
			operands: []Formula{
				f.operands[0].ToPositiveNormalForm(),
				f.operands[1].ToPositiveNormalForm(),
			},
		}
	case OpNot:
		inner := f.operands[0]
		switch inner.op {
		case OpTrue:
			return False()
		case OpFalse:
			return True()
		case OpAP:
			return f
		case OpNot:
			return inner.operands[0].ToPositiveNormalForm()
		case OpAnd, OpOr:
			dual := OpOr
			if inner.op == OpOr {
				dual = OpAnd
			}
			operands := make([]Formula, len(inner.operands))
			for i, o := range inner.operands {
				operands[i] = Not(o).ToPositiveNormalForm()
			}
			return Formula{op: dual, operands: operands}
		case OpUntil, OpDualUntil:
			dual := OpDualUntil
			if inner.op == OpDualUntil {
				dual = OpUntil
			}
			return Formula{
				op:       dual,
				interval: inner.interval,
				operands: []Formula{
					Not(inner.operands[0]).ToPositiveNormalForm(),
					Not(inner.operands[1]).ToPositiveNormalForm(),
				},
			}
		}
	}
	return f
}

// Alphabet returns the sorted atomic propositions occurring in the formula.
func (f Formula) Alphabet() []string {
	symbols := map[string]bool{}
	f.collectAlphabet(symbols)
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f Formula) collectAlphabet(symbols map[string]bool) {
	if f.op == OpAP {
		symbols[f.atom] = true
	}
	for _, o := range f.operands {
		o.collectAlphabet(symbols)
	}
}

// Subformulas returns the distinct subformulas with the given outermost
// operator, including the formula itself, ordered by their String renderings.
func (f Formula) Subformulas(op Operator) []Formula {
	found := map[string]Formula{}
	f.collectSubformulas(op, found)
	keys := make([]string, 0, len(found))
	for key := range found {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	formulas := make([]Formula, len(keys))
	for i, key := range keys {
		formulas[i] = found[key]
	}
	return formulas
}

func (f Formula) collectSubformulas(op Operator, found map[string]Formula) {
	if f.op == op {
		found[f.String()] = f
	}
	for _, o := range f.operands {
		o.collectSubformulas(op, found)
	}
}

// LargestConstant returns the largest finite interval endpoint occurring in
// the formula.
func (f Formula) LargestConstant() automata.Endpoint {
	var largest automata.Endpoint
	if f.op == OpUntil || f.op == OpDualUntil {
		if f.interval.LowerBound != InftyBound && f.interval.Lower > largest {
			largest = f.interval.Lower
		}
		if f.interval.UpperBound != InftyBound && f.interval.Upper > largest {
			largest = f.interval.Upper
		}
	}
	for _, o := range f.operands {
		if k := o.LargestConstant(); k > largest {
			largest = k
		}
	}
	return largest
}
