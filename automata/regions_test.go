package automata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRegionIndex(t *testing.T) {
	tests := []struct {
		valuation ClockValuation
		largest   Endpoint
		want      RegionIndex
	}{
		{0, 2, 0},
		{1, 2, 2},
		{0.3, 2, 1},
		{2.5, 2, 5},
		{3.0, 2, 5},
		{1.5, 2, 3},
		{2, 2, 4},
		{0.5, 0, 1},
		{4.2, 3, 7},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, GetRegionIndex(test.valuation, test.largest),
			"region of %g with K=%d", test.valuation, test.largest)
	}
}

func TestGetMaxRegionIndex(t *testing.T) {
	assert.Equal(t, RegionIndex(5), GetMaxRegionIndex(2))
	assert.Equal(t, RegionIndex(1), GetMaxRegionIndex(0))
}

func TestGetClockConstraintsFromRegionIndex(t *testing.T) {
	// Even region 4 with K=3 corresponds to the point x = 2.
	constraints := GetClockConstraintsFromRegionIndex(4, GetMaxRegionIndex(3), ConstraintBoundBoth)
	assert.ElementsMatch(t, []ClockConstraint{
		{Comparison: LessEqual, Comparand: 2},
		{Comparison: GreaterEqual, Comparand: 2},
	}, constraints)

	// Odd region 3 corresponds to the open interval (1, 2).
	constraints = GetClockConstraintsFromRegionIndex(3, GetMaxRegionIndex(3), ConstraintBoundBoth)
	assert.ElementsMatch(t, []ClockConstraint{
		{Comparison: Less, Comparand: 2},
		{Comparison: Greater, Comparand: 1},
	}, constraints)

	// The maximal region has no upper bound.
	constraints = GetClockConstraintsFromRegionIndex(7, GetMaxRegionIndex(3), ConstraintBoundBoth)
	assert.ElementsMatch(t, []ClockConstraint{
		{Comparison: Greater, Comparand: 3},
	}, constraints)

	// Region zero has no lower bound.
	constraints = GetClockConstraintsFromRegionIndex(0, GetMaxRegionIndex(3), ConstraintBoundBoth)
	assert.ElementsMatch(t, []ClockConstraint{
		{Comparison: LessEqual, Comparand: 0},
	}, constraints)

	// Bound type selection.
	constraints = GetClockConstraintsFromRegionIndex(3, GetMaxRegionIndex(3), ConstraintBoundLower)
	assert.ElementsMatch(t, []ClockConstraint{
		{Comparison: Greater, Comparand: 1},
	}, constraints)
	constraints = GetClockConstraintsFromRegionIndex(3, GetMaxRegionIndex(3), ConstraintBoundUpper)
	assert.ElementsMatch(t, []ClockConstraint{
		{Comparison: Less, Comparand: 2},
	}, constraints)
}

func TestFractionalAndIntegerParts(t *testing.T) {
	assert.Equal(t, Endpoint(2), GetIntegerPart(2.5))
	assert.InDelta(t, 0.5, GetFractionalPart(2.5), 1e-9)
	assert.Equal(t, Time(0), GetFractionalPart(3.0))
	assert.True(t, IsNearZero(0))
	assert.True(t, IsNearZero(1e-9))
	assert.False(t, IsNearZero(0.1))
}
