package search

import (
	"fmt"
)

// NodeKind says which player picks the move leaving a node. The controller
// moves at OR nodes, the environment at AND nodes; the two alternate along
// every path starting from the OR root.
type NodeKind int

const (
	OrNode NodeKind = iota
	AndNode
)

func (k NodeKind) String() string {
	switch k {
	case OrNode:
		return "OR"
	case AndNode:
		return "AND"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Label is the verdict attached to a tree node.
type Label int

const (
	// LabelUnknown marks a node that is not decided yet.
	LabelUnknown Label = iota
	// LabelTop marks a node from which the controller wins.
	LabelTop
	// LabelBottom marks a node from which the environment wins.
	LabelBottom
	// LabelCanceled marks a node dominated by an ancestor; it defers to
	// that ancestor's verdict.
	LabelCanceled
)

func (l Label) String() string {
	switch l {
	case LabelUnknown:
		return "UNKNOWN"
	case LabelTop:
		return "TOP"
	case LabelBottom:
		return "BOTTOM"
	case LabelCanceled:
		return "CANCELED"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// Node is one node of the game tree. Its canonical words capture every
// joint configuration of plant and specification automaton reachable under
// the incoming move; the label records who wins the subgame below it.
type Node struct {
	words      []Word
	wordsKey   string
	kind       NodeKind
	depth      int
	incoming   SuccessorKey
	parent     *Node
	children   []*Node
	expanded   bool
	label      Label
	dominator  *Node
	dependents []*Node
}

func newNode(parent *Node, incoming SuccessorKey, words []Word) *Node {
	n := &Node{
		words:    words,
		wordsKey: renderWords(words),
		incoming: incoming,
		parent:   parent,
	}
	if parent != nil {
		n.depth = parent.depth + 1
		if parent.kind == OrNode {
			n.kind = AndNode
		} else {
			n.kind = OrNode
		}
	}
	return n
}

// Words returns the node's canonical words, sorted by rendering.
func (n *Node) Words() []Word {
	return n.words
}

// WordsKey returns a stable rendering of the node's word set. Nodes with
// equal keys describe the same game position.
func (n *Node) WordsKey() string {
	return n.wordsKey
}

// Kind returns which player moves at this node.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Depth returns the node's distance from the root.
func (n *Node) Depth() int {
	return n.depth
}

// Incoming returns the (increment, action) pair that led here. The root's
// key is the zero value.
func (n *Node) Incoming() SuccessorKey {
	return n.incoming
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children ordered by (increment, action).
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns the child reached under the given key, or nil.
func (n *Node) Child(key SuccessorKey) *Node {
	for _, c := range n.children {
		if c.incoming == key {
			return c
		}
	}
	return nil
}

// IsExpanded reports whether the node's children have been materialized.
func (n *Node) IsExpanded() bool {
	return n.expanded
}

// Label returns the node's verdict.
func (n *Node) Label() Label {
	return n.label
}

// Dominator returns the ancestor a CANCELED node defers to, or nil.
func (n *Node) Dominator() *Node {
	return n.dominator
}

// EffectiveLabel resolves the node's verdict for its parent. A CANCELED
// node borrows its dominator's label; if the dominator is still undecided
// once the search has drained, the cancellation loop gives the player who
// needs progress nothing, so the node counts BOTTOM under an OR parent and
// TOP under an AND parent.
func (n *Node) EffectiveLabel() Label {
	if n.label != LabelCanceled {
		return n.label
	}
	if n.dominator != nil {
		if l := n.dominator.label; l == LabelTop || l == LabelBottom {
			return l
		}
	}
	if n.parent != nil && n.parent.kind == OrNode {
		return LabelBottom
	}
	return LabelTop
}

// decidedLabel returns TOP or BOTTOM if the node already has a definite
// verdict for early propagation, and UNKNOWN otherwise. Unlike
// EffectiveLabel it never guesses for a CANCELED node whose dominator is
// open.
func (n *Node) decidedLabel() Label {
	switch n.label {
	case LabelTop, LabelBottom:
		return n.label
	case LabelCanceled:
		if d := n.dominator; d != nil && (d.label == LabelTop || d.label == LabelBottom) {
			return d.label
		}
	}
	return LabelUnknown
}

// Walk visits the node and all its descendants in preorder.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.children {
		c.Walk(visit)
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %s node %s", n.label, n.kind, n.wordsKey)
}
