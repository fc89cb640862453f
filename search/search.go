// Package search builds and labels the two-player game tree underlying
// controller synthesis. Nodes hold canonical words abstracting the joint
// configurations of a plant and a specification automaton; the controller
// picks moves at OR nodes, the environment at AND nodes, and the search
// labels the root TOP exactly when the controller has a winning strategy.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata/ata"
)

// TreeSearch explores the game tree of a plant against a specification
// automaton. Expansion order is driven by a heuristic and may run on
// several workers; tree mutation and labeling serialize on one lock.
type TreeSearch struct {
	plant              Plant
	spec               *ata.AlternatingTimedAutomaton
	controllerActions  map[string]bool
	environmentActions map[string]bool
	k                  automata.Endpoint
	heuristic          Heuristic
	expander           expander

	mu       sync.Mutex
	root     *Node
	cache    *wordCache
	queue    *worklist
	inflight atomic.Int64
	ready    chan struct{}
}

// NewTreeSearch prepares a search for the given plant and specification
// automaton. The controller and environment action sets must be disjoint
// and together cover the plant's alphabet; k is the largest constant of
// plant and specification. A nil heuristic defaults to breadth-first order.
func NewTreeSearch(plant Plant, spec *ata.AlternatingTimedAutomaton, controllerActions, environmentActions []string, k automata.Endpoint, heuristic Heuristic) (*TreeSearch, error) {
	ctrl := make(map[string]bool, len(controllerActions))
	for _, a := range controllerActions {
		ctrl[a] = true
	}
	env := make(map[string]bool, len(environmentActions))
	for _, a := range environmentActions {
		if ctrl[a] {
			return nil, fmt.Errorf("action %q is owned by both players", a)
		}
		env[a] = true
	}
	for _, a := range plant.Actions() {
		if !ctrl[a] && !env[a] {
			return nil, fmt.Errorf("plant action %q belongs to neither player", a)
		}
	}
	if heuristic == nil {
		heuristic = &BFSHeuristic{}
	}
	s := &TreeSearch{
		plant:              plant,
		spec:               spec,
		controllerActions:  ctrl,
		environmentActions: env,
		k:                  k,
		heuristic:          heuristic,
		cache:              newWordCache(),
		queue:              newWorklist(),
		ready:              make(chan struct{}, 1),
	}
	s.expander = expander{plant: plant, spec: spec, k: k, cache: s.cache}
	rootWord, err := NewCanonicalWord(plant.InitialConfiguration(), spec.InitialConfiguration(), k)
	if err != nil {
		return nil, err
	}
	s.root = newNode(nil, SuccessorKey{}, []Word{s.cache.intern(rootWord)})
	accepting, err := s.hasAcceptingCandidate(s.root.words)
	if err != nil {
		return nil, err
	}
	if accepting {
		s.root.label = LabelTop
	} else {
		s.queue.push(s.root, s.heuristic.Rank(s.root))
	}
	return s, nil
}

// Root returns the root of the game tree.
func (s *TreeSearch) Root() *Node {
	return s.root
}

// Step pops and expands the highest-ranked pending node. It reports false
// once no expandable node remains.
func (s *TreeSearch) Step() (bool, error) {
	for {
		item := s.queue.pop()
		if item == nil {
			return false, nil
		}
		s.mu.Lock()
		skip := s.shouldSkip(item.node)
		s.mu.Unlock()
		if skip {
			continue
		}
		if err := s.expandNode(item.node); err != nil {
			return false, err
		}
		return true, nil
	}
}

// BuildTree expands nodes until the root is decided or no expandable node
// remains, running up to workers expansions concurrently. On cancellation
// the search stops early but keeps a consistent partial tree, so a later
// call resumes where it left off.
func (s *TreeSearch) BuildTree(ctx context.Context, workers int) error {
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for gctx.Err() == nil && !s.rootDecided() {
		item := s.queue.pop()
		if item == nil {
			if s.inflight.Load() == 0 {
				if s.queue.len() == 0 {
					break
				}
				continue
			}
			select {
			case <-s.ready:
			case <-gctx.Done():
			}
			continue
		}
		s.mu.Lock()
		skip := s.shouldSkip(item.node)
		s.mu.Unlock()
		if skip {
			continue
		}
		s.inflight.Add(1)
		g.Go(func() error {
			defer func() {
				s.inflight.Add(-1)
				s.signalReady()
			}()
			if gctx.Err() != nil {
				s.queue.pushItem(item)
				return nil
			}
			return s.expandNode(item.node)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Verdict returns the verdict for the root. While expandable nodes remain
// it reports UNKNOWN; once the worklist has drained, nodes the early rules
// left open are resolved bottom-up: a CANCELED node with an undecided
// dominator yields nothing to the player who must make progress.
func (s *TreeSearch) Verdict() Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root.label == LabelTop || s.root.label == LabelBottom {
		return s.root.label
	}
	if s.queue.len() > 0 || s.inflight.Load() > 0 {
		return LabelUnknown
	}
	s.resolve(s.root)
	return s.root.label
}

// Statistics summarizes the current tree by label counts.
type Statistics struct {
	Nodes    int
	Top      int
	Bottom   int
	Canceled int
	Unknown  int
	Words    int
}

func (s *TreeSearch) Statistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := Statistics{Words: s.cache.size()}
	s.root.Walk(func(n *Node) {
		stats.Nodes++
		switch n.label {
		case LabelTop:
			stats.Top++
		case LabelBottom:
			stats.Bottom++
		case LabelCanceled:
			stats.Canceled++
		default:
			stats.Unknown++
		}
	})
	return stats
}

func (s *TreeSearch) rootDecided() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.label == LabelTop || s.root.label == LabelBottom
}

// shouldSkip reports whether expanding the node cannot influence the
// verdict anymore. The caller holds the tree lock.
func (s *TreeSearch) shouldSkip(n *Node) bool {
	if n.label != LabelUnknown {
		return true
	}
	for a := n.parent; a != nil; a = a.parent {
		if a.label == LabelTop || a.label == LabelBottom {
			return true
		}
	}
	return false
}

// expandNode materializes all children of n, assigns creation labels, and
// propagates any decided labels upward. The successor computation runs
// outside the tree lock.
func (s *TreeSearch) expandNode(n *Node) error {
	classes, err := s.expander.nextClasses(n.words)
	if err != nil {
		return err
	}
	children := make([]*Node, 0, len(classes))
	var pending []*Node
	for _, key := range sortedKeys(classes) {
		class := classes[key]
		child := newNode(n, key, sortWords(class.words))
		switch {
		case len(class.words) == 0:
			// The plant can move, but the specification automaton cannot
			// follow on any word.
			child.label = LabelBottom
		default:
			accepting, err := s.hasAcceptingCandidate(child.words)
			if err != nil {
				return err
			}
			if accepting {
				child.label = LabelTop
			} else if dominator := dominatingAncestor(n, child.words); dominator != nil {
				child.label = LabelCanceled
				child.dominator = dominator
			} else {
				pending = append(pending, child)
			}
		}
		children = append(children, child)
	}
	s.mu.Lock()
	n.children = children
	n.expanded = true
	for _, c := range children {
		if c.label == LabelCanceled {
			c.dominator.dependents = append(c.dominator.dependents, c)
		}
	}
	s.updateLabels(n)
	s.mu.Unlock()
	slog.Debug("expanded node", "kind", n.kind.String(), "depth", n.depth, "children", len(children))
	for _, c := range pending {
		s.queue.push(c, s.heuristic.Rank(c))
	}
	return nil
}

// hasAcceptingCandidate reports whether some word's candidate is accepting
// for the plant and the specification automaton at once.
func (s *TreeSearch) hasAcceptingCandidate(words []Word) (bool, error) {
	for _, w := range words {
		plantCfg, specCfg := Candidate(w)
		accepted, err := s.plant.IsAccepting(plantCfg)
		if err != nil {
			return false, err
		}
		if accepted && s.spec.IsAcceptingConfiguration(specCfg) {
			return true, nil
		}
	}
	return false, nil
}

// dominatingAncestor returns the closest strict ancestor whose word set
// monotonically dominates words, or nil.
func dominatingAncestor(parent *Node, words []Word) *Node {
	for a := parent; a != nil; a = a.parent {
		if IsSetDominatedBy(words, a.words) {
			return a
		}
	}
	return nil
}

// updateLabels applies the early propagation rules from n upward while
// labels keep resolving. The caller holds the tree lock.
func (s *TreeSearch) updateLabels(n *Node) {
	for n != nil && n.label == LabelUnknown && n.expanded {
		label := s.earlyLabel(n)
		if label == LabelUnknown {
			return
		}
		s.setLabel(n, label)
		n = n.parent
	}
}

// earlyLabel derives a node's label from its children where that is
// already sound: an OR node wins as soon as one child is decidedly TOP and
// loses once every child is decidedly BOTTOM; an AND node loses as soon as
// the environment owns a decidedly BOTTOM child and wins once every child
// is decidedly TOP.
func (s *TreeSearch) earlyLabel(n *Node) Label {
	switch n.kind {
	case OrNode:
		allBottom := true
		for _, c := range n.children {
			switch c.decidedLabel() {
			case LabelTop:
				return LabelTop
			case LabelBottom:
			default:
				allBottom = false
			}
		}
		if allBottom {
			return LabelBottom
		}
	case AndNode:
		allTop := true
		for _, c := range n.children {
			decided := c.decidedLabel()
			if decided == LabelBottom && s.environmentActions[c.incoming.Action] {
				return LabelBottom
			}
			if decided != LabelTop {
				allTop = false
			}
		}
		if allTop {
			return LabelTop
		}
	}
	return LabelUnknown
}

// setLabel records a decided label and wakes the parents of every CANCELED
// node deferring to n. The caller holds the tree lock.
func (s *TreeSearch) setLabel(n *Node, label Label) {
	n.label = label
	slog.Debug("labeled node", "label", label.String(), "kind", n.kind.String(), "depth", n.depth)
	dependents := n.dependents
	n.dependents = nil
	for _, dep := range dependents {
		if dep.parent != nil {
			s.updateLabels(dep.parent)
		}
	}
}

// resolve decides every remaining UNKNOWN node below n bottom-up once the
// worklist has drained. CANCELED nodes keep their label; their effective
// label falls back to the parent's losing side while the dominator is
// open. Decided subtrees are left untouched, so nodes skipped beneath them
// never influence the verdict.
func (s *TreeSearch) resolve(n *Node) {
	if n.label != LabelUnknown {
		return
	}
	for _, c := range n.children {
		s.resolve(c)
	}
	switch n.kind {
	case OrNode:
		n.label = LabelBottom
		for _, c := range n.children {
			if c.EffectiveLabel() == LabelTop {
				n.label = LabelTop
				break
			}
		}
	case AndNode:
		n.label = LabelTop
		for _, c := range n.children {
			if c.EffectiveLabel() == LabelBottom && s.environmentActions[c.incoming.Action] {
				n.label = LabelBottom
				break
			}
		}
	}
}

func (s *TreeSearch) signalReady() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}
