package visualization

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/mtl"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/scenarios"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/search"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/translator"
)

func builtSearch(t *testing.T) *search.TreeSearch {
	t.Helper()
	ta, err := automata.NewTimedAutomaton(
		[]string{"c", "e"},
		[]string{"s0", "s1"},
		"s0",
		[]string{"s1"},
		[]string{"x"},
		[]automata.Transition{automata.NewTransition("s0", "c", "s0", nil, nil)},
	)
	require.NoError(t, err)
	spec, err := translator.Translate(mtl.Globally(mtl.Not(mtl.AP("e")), mtl.Interval{}), ta.Alphabet())
	require.NoError(t, err)
	s, err := search.NewTreeSearch(search.NewTAPlant(ta), spec,
		[]string{"c"}, []string{"e"}, 0, nil)
	require.NoError(t, err)
	require.NoError(t, s.BuildTree(context.Background(), 1))
	return s
}

func TestSearchTreeToGraphviz(t *testing.T) {
	s := builtSearch(t)

	g, err := SearchTreeToGraphviz(s.Root())

	require.NoError(t, err)
	dot := g.String()
	assert.Contains(t, dot, "digraph searchtree")
	assert.Len(t, g.Nodes.Nodes, s.Statistics().Nodes)
	assert.Contains(t, dot, `(c, 0)`)
	// the dominated loop shows up as a dashed back edge
	assert.Contains(t, dot, "dashed")
}

func TestTAToGraphviz(t *testing.T) {
	belt, err := scenarios.ConveyorBelt()
	require.NoError(t, err)

	g, err := TAToGraphviz(belt.Plant)

	require.NoError(t, err)
	dot := g.String()
	assert.Contains(t, dot, "digraph ta")
	// locations plus the initial marker
	assert.Len(t, g.Nodes.Nodes, len(belt.Plant.Locations())+1)
	assert.Contains(t, dot, "doublecircle")
	assert.Contains(t, dot, "move_timer >= 1")
	assert.Contains(t, dot, "move_timer := 0")
}

func TestWriteDOT(t *testing.T) {
	belt, err := scenarios.ConveyorBelt()
	require.NoError(t, err)
	g, err := TAToGraphviz(belt.Plant)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ta.dot")
	require.NoError(t, WriteDOT(g, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph ta")
}