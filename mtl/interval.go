package mtl

import (
	"fmt"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// BoundType classifies one endpoint of an interval.
type BoundType int

const (
	// InftyBound marks an endpoint as unbounded.
	InftyBound BoundType = iota
	// WeakBound includes the endpoint.
	WeakBound
	// StrictBound excludes the endpoint.
	StrictBound
)

// Interval is a time interval with natural endpoints. The zero value is the
// unbounded interval containing every time.
type Interval struct {
	Lower      automata.Endpoint
	Upper      automata.Endpoint
	LowerBound BoundType
	UpperBound BoundType
}

// ClosedInterval returns the interval [lower, upper].
func ClosedInterval(lower, upper automata.Endpoint) Interval {
	return Interval{Lower: lower, Upper: upper, LowerBound: WeakBound, UpperBound: WeakBound}
}

// NewInterval returns the interval with the given endpoints and bound types.
func NewInterval(lower automata.Endpoint, lowerBound BoundType, upper automata.Endpoint, upperBound BoundType) Interval {
	return Interval{Lower: lower, Upper: upper, LowerBound: lowerBound, UpperBound: upperBound}
}

// Contains reports whether t lies within the interval.
func (i Interval) Contains(t automata.Time) bool {
	switch i.LowerBound {
	case WeakBound:
		if t < automata.Time(i.Lower) {
			return false
		}
	case StrictBound:
		if t <= automata.Time(i.Lower) {
			return false
		}
	}
	switch i.UpperBound {
	case WeakBound:
		if t > automata.Time(i.Upper) {
			return false
		}
	case StrictBound:
		if t >= automata.Time(i.Upper) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no time lies within the interval.
func (i Interval) IsEmpty() bool {
	if i.LowerBound == InftyBound || i.UpperBound == InftyBound {
		return false
	}
	if i.Lower > i.Upper {
		return true
	}
	return i.Lower == i.Upper && (i.LowerBound == StrictBound || i.UpperBound == StrictBound)
}

// String renders the interval with square brackets around included endpoints,
// such as [0, 2] or (1, ∞). The unbounded interval renders as the empty
// string.
func (i Interval) String() string {
	if i.LowerBound == InftyBound && i.UpperBound == InftyBound {
		return ""
	}
	s := "("
	if i.LowerBound == WeakBound {
		s = "["
	}
	if i.LowerBound == InftyBound {
		s += "∞"
	} else {
		s += fmt.Sprintf("%d", i.Lower)
	}
	s += ", "
	if i.UpperBound == InftyBound {
		s += "∞"
	} else {
		s += fmt.Sprintf("%d", i.Upper)
	}
	if i.UpperBound == WeakBound {
		s += "]"
	} else {
		s += ")"
	}
	return s
}
