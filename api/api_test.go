package api

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/config"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/scenarios"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/search"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/uppaal"
)

func writePlantXML(t *testing.T, ta *automata.TimedAutomaton, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".xml")
	require.NoError(t, os.WriteFile(path, []byte(uppaal.FromTimedAutomaton(ta, name).AsXML()), 0666))
	return path
}

func beltConfig(t *testing.T) config.Config {
	t.Helper()
	scenario, err := scenarios.ConveyorBelt()
	require.NoError(t, err)

	c := config.Default()
	c.Plant = writePlantXML(t, scenario.Plant, "belt")
	c.Specification = "move ~U[0, 2] ! release"
	c.ControllerActions = scenario.ControllerActions
	c.FinalLocations = []string{"NO"}
	c.Workers = 2
	return c
}

func TestRunConveyorBelt(t *testing.T) {
	outDir := t.TempDir()
	c := beltConfig(t)
	c.ControllerXML = filepath.Join(outDir, "controller.xml")
	c.ControllerXTA = filepath.Join(outDir, "controller.xta")
	c.ControllerDOT = filepath.Join(outDir, "controller.dot")
	c.TreeDOT = filepath.Join(outDir, "tree.dot")
	c.PlantDOT = filepath.Join(outDir, "plant.dot")

	result, err := Run(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, search.LabelTop, result.Verdict)
	assert.Equal(t, ExitTop, ExitCode(result, nil))
	assert.Positive(t, result.Statistics.Nodes)
	require.NotNil(t, result.Controller)

	data, err := os.ReadFile(c.ControllerXML)
	require.NoError(t, err)
	system, err := uppaal.ReadSystem(data)
	require.NoError(t, err)
	written, err := system.ToTimedAutomaton(nil)
	require.NoError(t, err)
	assert.Equal(t, result.Controller.Alphabet(), written.Alphabet())
	assert.Len(t, written.Locations(), len(result.Controller.Locations()))
	assert.Len(t, written.Transitions(), len(result.Controller.Transitions()))

	xta, err := os.ReadFile(c.ControllerXTA)
	require.NoError(t, err)
	assert.Contains(t, string(xta), "process controller()")

	for _, path := range []string{c.ControllerDOT, c.TreeDOT, c.PlantDOT} {
		dot, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(dot), "digraph")
	}
}

func TestRunHeuristics(t *testing.T) {
	for _, heuristic := range []string{
		config.HeuristicBFS, config.HeuristicDFS, config.HeuristicTime,
		config.HeuristicNumWords, config.HeuristicPreferEnvironment,
		config.HeuristicRandom, config.HeuristicComposite,
	} {
		t.Run(heuristic, func(t *testing.T) {
			c := beltConfig(t)
			c.Heuristic = heuristic

			result, err := Run(context.Background(), c)
			require.NoError(t, err)
			assert.Equal(t, search.LabelTop, result.Verdict)
		})
	}
}

func TestRunVerdictBottom(t *testing.T) {
	// the plant loops outside its only accepting location, so no strategy
	// can win
	ta, err := automata.NewTimedAutomaton(
		[]string{"e"}, []string{"s0", "s1"}, "s0", []string{"s1"}, []string{"x"},
		[]automata.Transition{automata.NewTransition("s0", "e", "s0", nil, nil)})
	require.NoError(t, err)

	c := config.Default()
	c.Plant = writePlantXML(t, ta, "hostile")
	c.Specification = "G ! e"
	c.FinalLocations = []string{"s1"}
	c.TreeDOT = filepath.Join(t.TempDir(), "tree.dot")

	result, err := Run(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, search.LabelBottom, result.Verdict)
	assert.Equal(t, ExitBottom, ExitCode(result, nil))
	assert.Nil(t, result.Controller)

	// the tree rendering is written regardless of the verdict
	dot, err := os.ReadFile(c.TreeDOT)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph")
}

func TestRunInputErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"missing plant file", func(c *config.Config) { c.Plant = filepath.Join(t.TempDir(), "missing.xml") }},
		{"garbled plant", func(c *config.Config) {
			path := filepath.Join(t.TempDir(), "garbled.xml")
			require.NoError(t, os.WriteFile(path, []byte("not xml"), 0666))
			c.Plant = path
		}},
		{"garbled specification", func(c *config.Config) { c.Specification = "move U U" }},
		{"foreign controller action", func(c *config.Config) { c.ControllerActions = []string{"warp"} }},
		{"unknown heuristic", func(c *config.Config) { c.Heuristic = "astar" }},
		{"unknown final location", func(c *config.Config) { c.FinalLocations = []string{"NOWHERE"} }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := beltConfig(t)
			tc.mutate(&c)

			result, err := Run(context.Background(), c)
			require.Error(t, err)
			assert.Equal(t, ExitInputError, ExitCode(result, err))
		})
	}
}

func TestRunUnsupportedPlant(t *testing.T) {
	system := uppaal.NewSystem()
	for _, name := range []string{"A", "B"} {
		p := system.AddProcess(name)
		p.SetInitialState(p.AddState("a", uppaal.NoRenaming))
		system.AddProcessInstance(p, name)
	}
	path := filepath.Join(t.TempDir(), "product.xml")
	require.NoError(t, os.WriteFile(path, []byte(system.AsXML()), 0666))

	c := config.Default()
	c.Plant = path
	c.Specification = "G ! e"

	result, err := Run(context.Background(), c)
	require.ErrorIs(t, err, automata.ErrUnsupported)
	assert.Equal(t, ExitUnsupported, ExitCode(result, err))
}
