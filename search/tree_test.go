package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKindsAlternate(t *testing.T) {
	root := newNode(nil, SuccessorKey{}, nil)
	child := newNode(root, SuccessorKey{Action: "a"}, nil)
	grandchild := newNode(child, SuccessorKey{Action: "b"}, nil)

	assert.Equal(t, OrNode, root.Kind())
	assert.Equal(t, AndNode, child.Kind())
	assert.Equal(t, OrNode, grandchild.Kind())
	assert.Equal(t, 0, root.Depth())
	assert.Equal(t, 2, grandchild.Depth())
}

func TestNodeEffectiveLabel(t *testing.T) {
	or := newNode(nil, SuccessorKey{}, nil)
	and := newNode(or, SuccessorKey{Action: "e"}, nil)

	decided := newNode(nil, SuccessorKey{}, nil)
	decided.label = LabelBottom

	canceledWithDecidedDominator := newNode(or, SuccessorKey{Action: "a"}, nil)
	canceledWithDecidedDominator.label = LabelCanceled
	canceledWithDecidedDominator.dominator = decided
	assert.Equal(t, LabelBottom, canceledWithDecidedDominator.EffectiveLabel())

	open := newNode(nil, SuccessorKey{}, nil)
	canceledUnderOr := newNode(or, SuccessorKey{Action: "a"}, nil)
	canceledUnderOr.label = LabelCanceled
	canceledUnderOr.dominator = open
	assert.Equal(t, LabelBottom, canceledUnderOr.EffectiveLabel())

	canceledUnderAnd := newNode(and, SuccessorKey{Action: "a"}, nil)
	canceledUnderAnd.label = LabelCanceled
	canceledUnderAnd.dominator = open
	assert.Equal(t, LabelTop, canceledUnderAnd.EffectiveLabel())

	plain := newNode(or, SuccessorKey{Action: "a"}, nil)
	plain.label = LabelTop
	assert.Equal(t, LabelTop, plain.EffectiveLabel())
}

func TestNodeChildLookup(t *testing.T) {
	root := newNode(nil, SuccessorKey{}, nil)
	first := newNode(root, SuccessorKey{Increment: 0, Action: "a"}, nil)
	second := newNode(root, SuccessorKey{Increment: 1, Action: "a"}, nil)
	root.children = []*Node{first, second}

	assert.Same(t, second, root.Child(SuccessorKey{Increment: 1, Action: "a"}))
	assert.Nil(t, root.Child(SuccessorKey{Increment: 2, Action: "a"}))
}

func TestNodeWalkVisitsPreorder(t *testing.T) {
	words := []Word{{{PlantRegionSymbol("l", "x", 0)}}}
	root := newNode(nil, SuccessorKey{}, words)
	child := newNode(root, SuccessorKey{Action: "a"}, nil)
	grandchild := newNode(child, SuccessorKey{Action: "b"}, nil)
	root.children = []*Node{child}
	child.children = []*Node{grandchild}

	var visited []*Node
	root.Walk(func(n *Node) { visited = append(visited, n) })

	require.Len(t, visited, 3)
	assert.Same(t, root, visited[0])
	assert.Same(t, child, visited[1])
	assert.Same(t, grandchild, visited[2])
}

func TestLabelAndKindStrings(t *testing.T) {
	assert.Equal(t, "UNKNOWN", LabelUnknown.String())
	assert.Equal(t, "TOP", LabelTop.String())
	assert.Equal(t, "BOTTOM", LabelBottom.String())
	assert.Equal(t, "CANCELED", LabelCanceled.String())
	assert.Equal(t, "OR", OrNode.String())
	assert.Equal(t, "AND", AndNode.String())
}
