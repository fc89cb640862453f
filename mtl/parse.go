package mtl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// ParseError reports a syntax error in a formula string.
type ParseError struct {
	Position int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Position, e.Message)
}

// Parse parses a metric temporal logic formula.
//
// From loosest to tightest binding, the connectives are the disjunction ||,
// the conjunction &&, the right-associative until operators U and ~U, and the
// unary operators !, F, and G. The temporal operators take an optional
// interval such as [0, 2] or (1, ∞), where inf is accepted for ∞. The words
// true, false, U, F, and G are reserved.
func Parse(input string) (Formula, error) {
	p := &parser{input: input}
	f, err := p.parseDisjunction()
	if err != nil {
		return Formula{}, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return Formula{}, p.errorf("unexpected input %q", p.input[p.pos:])
	}
	return f, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Position: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

// consume advances over the literal if it is next in the input.
func (p *parser) consume(literal string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], literal) {
		p.pos += len(literal)
		return true
	}
	return false
}

// scanWord reads an identifier or keyword, returning "" if none is next.
func (p *parser) scanWord() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if r == '_' || unicode.IsLetter(r) || (p.pos > start && unicode.IsDigit(r)) {
			p.pos += size
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

func (p *parser) scanNumber() (automata.Endpoint, bool) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, false
	}
	n, err := strconv.ParseUint(p.input[start:p.pos], 10, 64)
	if err != nil {
		return 0, false
	}
	return automata.Endpoint(n), true
}

func (p *parser) parseDisjunction() (Formula, error) {
	f, err := p.parseConjunction()
	if err != nil {
		return Formula{}, err
	}
	for p.consume("||") {
		right, err := p.parseConjunction()
		if err != nil {
			return Formula{}, err
		}
		f = Or(f, right)
	}
	return f, nil
}

func (p *parser) parseConjunction() (Formula, error) {
	f, err := p.parseUntil()
	if err != nil {
		return Formula{}, err
	}
	for p.consume("&&") {
		right, err := p.parseUntil()
		if err != nil {
			return Formula{}, err
		}
		f = And(f, right)
	}
	return f, nil
}

func (p *parser) parseUntil() (Formula, error) {
	left, err := p.parseUnary()
	if err != nil {
		return Formula{}, err
	}
	dual, ok, err := p.consumeUntilOperator()
	if err != nil {
		return Formula{}, err
	}
	if !ok {
		return left, nil
	}
	within, err := p.parseOptionalInterval()
	if err != nil {
		return Formula{}, err
	}
	right, err := p.parseUntil()
	if err != nil {
		return Formula{}, err
	}
	if dual {
		return DualUntil(left, right, within), nil
	}
	return Until(left, right, within), nil
}

func (p *parser) consumeUntilOperator() (dual bool, ok bool, err error) {
	p.skipSpace()
	save := p.pos
	if p.consume("~") {
		if p.scanWord() != "U" {
			return false, false, p.errorf("expected U after ~")
		}
		return true, true, nil
	}
	if p.scanWord() == "U" {
		return false, true, nil
	}
	p.pos = save
	return false, false, nil
}

func (p *parser) parseUnary() (Formula, error) {
	if p.consume("!") {
		operand, err := p.parseUnary()
		if err != nil {
			return Formula{}, err
		}
		return Not(operand), nil
	}
	save := p.pos
	switch p.scanWord() {
	case "F":
		within, err := p.parseOptionalInterval()
		if err != nil {
			return Formula{}, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return Formula{}, err
		}
		return Finally(operand, within), nil
	case "G":
		within, err := p.parseOptionalInterval()
		if err != nil {
			return Formula{}, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return Formula{}, err
		}
		return Globally(operand, within), nil
	}
	p.pos = save
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Formula, error) {
	if p.consume("(") {
		f, err := p.parseDisjunction()
		if err != nil {
			return Formula{}, err
		}
		if !p.consume(")") {
			return Formula{}, p.errorf("expected )")
		}
		return f, nil
	}
	word := p.scanWord()
	switch word {
	case "":
		return Formula{}, p.errorf("expected a formula")
	case "true":
		return True(), nil
	case "false":
		return False(), nil
	case "U":
		return Formula{}, p.errorf("U is reserved")
	}
	return AP(word), nil
}

func (p *parser) parseOptionalInterval() (Interval, error) {
	p.skipSpace()
	save := p.pos
	var lowerBound BoundType
	if p.consume("[") {
		lowerBound = WeakBound
	} else if p.consume("(") {
		lowerBound = StrictBound
	} else {
		return Interval{}, nil
	}
	lower, ok := p.scanNumber()
	if !ok {
		if lowerBound == StrictBound {
			// the ( opened a subformula, not an interval
			p.pos = save
			return Interval{}, nil
		}
		return Interval{}, p.errorf("expected a number")
	}
	if !p.consume(",") {
		if lowerBound == StrictBound {
			p.pos = save
			return Interval{}, nil
		}
		return Interval{}, p.errorf("expected , in interval")
	}
	var upper automata.Endpoint
	upperBound := InftyBound
	if n, ok := p.scanNumber(); ok {
		upper = n
		upperBound = WeakBound
	} else if p.consume("∞") || p.scanWord() == "inf" {
		upperBound = InftyBound
	} else {
		return Interval{}, p.errorf("expected a number or ∞")
	}
	if p.consume("]") {
		if upperBound != InftyBound {
			upperBound = WeakBound
		}
	} else if p.consume(")") {
		if upperBound != InftyBound {
			upperBound = StrictBound
		}
	} else {
		return Interval{}, p.errorf("expected ] or ) to close the interval")
	}
	return Interval{Lower: lower, LowerBound: lowerBound, Upper: upper, UpperBound: upperBound}, nil
}
