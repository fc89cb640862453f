package automata

import (
	"errors"
	"fmt"
	"math"
)

// Time is the continuous time domain shared by all automata in this package.
type Time = float64

// ClockValuation is the current value of a single clock.
type ClockValuation = Time

// Endpoint is an integer comparand of a clock constraint.
type Endpoint = uint

// RegionIndex identifies a clock region in the region abstraction.
type RegionIndex = uint

// ErrUnsupported marks functionality with deliberately open semantics, such
// as synchronized products. Callers should detect it with errors.Is.
var ErrUnsupported = errors.New("unsupported feature")

// epsilon is the tolerance below which a fractional part counts as zero.
const epsilon = 1e-6

// IsNearZero reports whether v is zero up to the float tolerance.
func IsNearZero(v Time) bool {
	return math.Abs(v) < epsilon
}

// GetIntegerPart returns the integer part of the given valuation.
func GetIntegerPart(v ClockValuation) Endpoint {
	return Endpoint(math.Trunc(v + epsilon))
}

// GetFractionalPart returns the fractional part of the given valuation. A
// fractional part within the float tolerance of an integer snaps to zero.
func GetFractionalPart(v ClockValuation) Time {
	frac := v - math.Trunc(v+epsilon)
	if IsNearZero(frac) {
		return 0
	}
	return frac
}

// Clock is a single clock of a timed automaton.
type Clock struct {
	valuation ClockValuation
}

// NewClock returns a clock with the given initial valuation.
func NewClock(v ClockValuation) Clock {
	return Clock{valuation: v}
}

// Tick advances the clock by d time units.
func (c *Clock) Tick(d Time) {
	c.valuation += d
}

// Reset sets the clock back to zero.
func (c *Clock) Reset() {
	c.valuation = 0
}

// Valuation returns the current value of the clock.
func (c Clock) Valuation() ClockValuation {
	return c.valuation
}

// ClockSetValuation maps clock names to clocks.
type ClockSetValuation = map[string]Clock

// Comparison is the relation of a clock constraint.
type Comparison int

const (
	Less Comparison = iota
	LessEqual
	Equal
	GreaterEqual
	Greater
)

func (c Comparison) String() string {
	switch c {
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Equal:
		return "=="
	case GreaterEqual:
		return ">="
	case Greater:
		return ">"
	}
	return fmt.Sprintf("Comparison(%d)", int(c))
}

// ClockConstraint compares a clock against an integer constant.
type ClockConstraint struct {
	Comparison Comparison
	Comparand  Endpoint
}

// IsSatisfied reports whether the valuation satisfies the constraint.
func (cc ClockConstraint) IsSatisfied(v ClockValuation) bool {
	comparand := Time(cc.Comparand)
	switch cc.Comparison {
	case Less:
		return v < comparand
	case LessEqual:
		return v <= comparand
	case Equal:
		return v == comparand
	case GreaterEqual:
		return v >= comparand
	case Greater:
		return v > comparand
	}
	return false
}

func (cc ClockConstraint) String() string {
	return fmt.Sprintf("%s %d", cc.Comparison, cc.Comparand)
}

// TimedSymbol is one letter of a timed word: a symbol and its absolute time.
type TimedSymbol struct {
	Symbol string
	Time   Time
}

// TimedWord is a finite sequence of symbols with monotone timestamps.
type TimedWord []TimedSymbol

// InvalidClockError is returned when an automaton refers to an undeclared
// clock, or when a product's components share a clock.
type InvalidClockError struct {
	Clock string
}

func (e *InvalidClockError) Error() string {
	return fmt.Sprintf("invalid clock %q", e.Clock)
}

// InvalidLocationError is returned when a transition refers to an undeclared
// location.
type InvalidLocationError struct {
	Location string
}

func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("invalid location %q", e.Location)
}

// InvalidSymbolError is returned when a transition refers to a symbol outside
// the alphabet.
type InvalidSymbolError struct {
	Symbol string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q", e.Symbol)
}

// InvalidTimedWordError is returned when a timed word violates the time
// monotonicity requirements of a run.
type InvalidTimedWordError struct {
	Message string
}

func (e *InvalidTimedWordError) Error() string {
	return "invalid timed word: " + e.Message
}

// NegativeTimeDeltaError is returned when a time step goes backwards.
type NegativeTimeDeltaError struct {
	Delta Time
}

func (e *NegativeTimeDeltaError) Error() string {
	return fmt.Sprintf("cannot do a time transition with negative time delta %g", e.Delta)
}
