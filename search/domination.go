package search

// isSubsetPartition reports whether every symbol of p occurs in q. Both
// partitions are sorted, so a single merge pass suffices.
func isSubsetPartition(p, q Partition) bool {
	j := 0
	for _, s := range p {
		for j < len(q) && symbolLess(q[j], s) {
			j++
		}
		if j == len(q) || q[j] != s {
			return false
		}
		j++
	}
	return true
}

// IsDominatedBy reports whether w is monotonically dominated by other:
// every partition of w embeds into a partition of other, in order, by set
// inclusion. A dominated word describes a weaker position for the
// specification automaton, so exploring it again cannot change the verdict.
func IsDominatedBy(w, other Word) bool {
	j := 0
	for _, p := range w {
		found := false
		for ; j < len(other); j++ {
			if isSubsetPartition(p, other[j]) {
				j++
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsSetDominatedBy reports whether every word in words is dominated by some
// word in others.
func IsSetDominatedBy(words, others []Word) bool {
	for _, w := range words {
		dominated := false
		for _, other := range others {
			if IsDominatedBy(w, other) {
				dominated = true
				break
			}
		}
		if !dominated {
			return false
		}
	}
	return true
}
