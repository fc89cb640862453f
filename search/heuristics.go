package search

import (
	"math/rand"
	"sync"
	"sync/atomic"
)

// Heuristic ranks a node for the search worklist. Nodes with higher ranks
// are expanded first; ties fall back to insertion order.
type Heuristic interface {
	Rank(n *Node) int64
}

// BFSHeuristic expands nodes in creation order.
type BFSHeuristic struct {
	counter atomic.Int64
}

func (h *BFSHeuristic) Rank(*Node) int64 {
	return -h.counter.Add(1)
}

// DFSHeuristic expands the most recently created node first.
type DFSHeuristic struct {
	counter atomic.Int64
}

func (h *DFSHeuristic) Rank(*Node) int64 {
	return h.counter.Add(1)
}

// TimeHeuristic prefers nodes close to the root, where little time has
// passed.
type TimeHeuristic struct{}

func (TimeHeuristic) Rank(n *Node) int64 {
	return -int64(n.Depth())
}

// NumWordsHeuristic prefers nodes with few canonical words: small word sets
// mean less nondeterminism to resolve below the node.
type NumWordsHeuristic struct{}

func (NumWordsHeuristic) Rank(n *Node) int64 {
	return -int64(len(n.Words()))
}

// PreferEnvironmentActionHeuristic ranks nodes reached by an environment
// action above nodes reached by a controller action, so threats are
// examined before opportunities.
type PreferEnvironmentActionHeuristic struct {
	environmentActions map[string]bool
}

func NewPreferEnvironmentActionHeuristic(environmentActions []string) *PreferEnvironmentActionHeuristic {
	actions := make(map[string]bool, len(environmentActions))
	for _, a := range environmentActions {
		actions[a] = true
	}
	return &PreferEnvironmentActionHeuristic{environmentActions: actions}
}

func (h *PreferEnvironmentActionHeuristic) Rank(n *Node) int64 {
	if n.Parent() != nil && h.environmentActions[n.Incoming().Action] {
		return 1
	}
	return 0
}

// RandomHeuristic ranks nodes pseudo-randomly. The same seed reproduces the
// same ranking sequence.
type RandomHeuristic struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomHeuristic(seed int64) *RandomHeuristic {
	return &RandomHeuristic{rng: rand.New(rand.NewSource(seed))}
}

func (h *RandomHeuristic) Rank(*Node) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int64(h.rng.Int31())
}

// WeightedHeuristic scales a heuristic's rank inside a composite.
type WeightedHeuristic struct {
	Weight    int64
	Heuristic Heuristic
}

// CompositeHeuristic ranks a node by the weighted sum of its components.
type CompositeHeuristic struct {
	components []WeightedHeuristic
}

func NewCompositeHeuristic(components ...WeightedHeuristic) *CompositeHeuristic {
	return &CompositeHeuristic{components: components}
}

func (h *CompositeHeuristic) Rank(n *Node) int64 {
	var rank int64
	for _, c := range h.components {
		rank += c.Weight * c.Heuristic.Rank(n)
	}
	return rank
}
