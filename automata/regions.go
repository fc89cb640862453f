package automata

// ConstraintBoundType selects which bounds to derive from a region index.
type ConstraintBoundType int

const (
	ConstraintBoundBoth ConstraintBoundType = iota
	ConstraintBoundLower
	ConstraintBoundUpper
)

// GetRegionIndex returns the region of a valuation with respect to the
// largest constant K. Valuations above K share the maximal region 2K+1,
// integer valuations n have region 2n, and valuations strictly between n and
// n+1 have region 2n+1.
func GetRegionIndex(v ClockValuation, largestConstant Endpoint) RegionIndex {
	if v > Time(largestConstant) {
		return 2*largestConstant + 1
	}
	integerPart := GetIntegerPart(v)
	if IsNearZero(GetFractionalPart(v)) {
		return 2 * integerPart
	}
	return 2*integerPart + 1
}

// GetMaxRegionIndex returns the maximal region index for the largest
// constant K, which is 2K+1.
func GetMaxRegionIndex(largestConstant Endpoint) RegionIndex {
	return 2*largestConstant + 1
}

// GetClockConstraintsFromRegionIndex returns the constraints a clock must
// satisfy to lie within the given region. The maximal region has no upper
// bound and region zero has no lower bound.
func GetClockConstraintsFromRegionIndex(regionIndex, maxRegionIndex RegionIndex, boundType ConstraintBoundType) []ClockConstraint {
	lower := boundType == ConstraintBoundBoth || boundType == ConstraintBoundLower
	upper := boundType == ConstraintBoundBoth || boundType == ConstraintBoundUpper
	var constraints []ClockConstraint
	if upper && regionIndex < maxRegionIndex {
		if regionIndex%2 == 0 {
			constraints = append(constraints, ClockConstraint{Comparison: LessEqual, Comparand: regionIndex / 2})
		} else {
			constraints = append(constraints, ClockConstraint{Comparison: Less, Comparand: (regionIndex + 1) / 2})
		}
	}
	if lower && regionIndex > 0 {
		if regionIndex%2 == 0 {
			constraints = append(constraints, ClockConstraint{Comparison: GreaterEqual, Comparand: regionIndex / 2})
		} else {
			constraints = append(constraints, ClockConstraint{Comparison: Greater, Comparand: regionIndex / 2})
		}
	}
	return constraints
}
