// Package api runs the synthesis pipeline end to end: read the plant,
// translate the specification, search for a winning strategy, and write
// the controller and any requested renderings.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/config"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/controller"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/mtl"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/search"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/translator"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/uppaal"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/visualization"
)

// Exit codes of the command-line tool.
const (
	ExitTop         = 0
	ExitBottom      = 1
	ExitInputError  = 2
	ExitUnsupported = 3
)

// Result carries the outcome of a synthesis run.
type Result struct {
	// Verdict is the root label after the search: TOP when a controller
	// exists, BOTTOM when none does.
	Verdict search.Label
	// Statistics summarizes the explored tree.
	Statistics search.Statistics
	// Controller realizes the winning strategy; nil unless Verdict is TOP.
	Controller *automata.TimedAutomaton
}

// ExitCode maps a run outcome to the tool's exit code.
func ExitCode(r Result, err error) int {
	if err != nil {
		if errors.Is(err, automata.ErrUnsupported) {
			return ExitUnsupported
		}
		return ExitInputError
	}
	if r.Verdict == search.LabelTop {
		return ExitTop
	}
	return ExitBottom
}

// Run synthesizes a controller according to the configuration.
func Run(ctx context.Context, c config.Config) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	slog.Info("reading plant", "path", c.Plant)
	plant, err := readPlant(c.Plant, c.FinalLocations)
	if err != nil {
		return Result{}, err
	}
	formula, err := mtl.Parse(c.Specification)
	if err != nil {
		return Result{}, fmt.Errorf("could not parse specification: %w", err)
	}
	spec, err := translator.Translate(formula, plant.Alphabet())
	if err != nil {
		return Result{}, fmt.Errorf("could not translate specification: %w", err)
	}

	for _, action := range c.ControllerActions {
		if !contains(plant.Alphabet(), action) {
			return Result{}, fmt.Errorf("controller action %q is not a plant action", action)
		}
	}
	environmentActions := subtract(plant.Alphabet(), c.ControllerActions)
	slog.Info("partitioned actions",
		"controller", c.ControllerActions, "environment", environmentActions)

	k := plant.LargestConstant()
	if fk := formula.LargestConstant(); fk > k {
		k = fk
	}
	heuristic, err := newHeuristic(c, environmentActions)
	if err != nil {
		return Result{}, err
	}
	s, err := search.NewTreeSearch(search.NewTAPlant(plant), spec,
		c.ControllerActions, environmentActions, k, heuristic)
	if err != nil {
		return Result{}, err
	}

	slog.Info("running search", "k", k, "workers", c.Workers)
	if err := s.BuildTree(ctx, c.Workers); err != nil {
		return Result{}, err
	}
	result := Result{Verdict: s.Verdict(), Statistics: s.Statistics()}
	slog.Info("search complete",
		"verdict", result.Verdict.String(), "nodes", result.Statistics.Nodes)

	if c.TreeDOT != "" {
		graph, err := visualization.SearchTreeToGraphviz(s.Root())
		if err != nil {
			return result, err
		}
		if err := visualization.WriteDOT(graph, c.TreeDOT); err != nil {
			return result, err
		}
	}
	if c.PlantDOT != "" {
		graph, err := visualization.TAToGraphviz(plant)
		if err != nil {
			return result, err
		}
		if err := visualization.WriteDOT(graph, c.PlantDOT); err != nil {
			return result, err
		}
	}
	if result.Verdict != search.LabelTop {
		return result, nil
	}

	slog.Info("creating controller")
	ctrl, err := controller.Create(s.Root(), k, c.ControllerActions)
	if err != nil {
		return result, err
	}
	result.Controller = ctrl
	if err := writeController(ctrl, c); err != nil {
		return result, err
	}
	return result, nil
}

func readPlant(path string, finalLocations []string) (*automata.TimedAutomaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read plant: %w", err)
	}
	system, err := uppaal.ReadSystem(data)
	if err != nil {
		return nil, fmt.Errorf("could not read plant %q: %w", path, err)
	}
	plant, err := system.ToTimedAutomaton(finalLocations)
	if err != nil {
		return nil, fmt.Errorf("could not read plant %q: %w", path, err)
	}
	return plant, nil
}

func newHeuristic(c config.Config, environmentActions []string) (search.Heuristic, error) {
	switch c.Heuristic {
	case "", config.HeuristicBFS:
		return &search.BFSHeuristic{}, nil
	case config.HeuristicDFS:
		return &search.DFSHeuristic{}, nil
	case config.HeuristicTime:
		return search.TimeHeuristic{}, nil
	case config.HeuristicNumWords:
		return search.NumWordsHeuristic{}, nil
	case config.HeuristicPreferEnvironment:
		return search.NewPreferEnvironmentActionHeuristic(environmentActions), nil
	case config.HeuristicRandom:
		return search.NewRandomHeuristic(c.RandomSeed), nil
	case config.HeuristicComposite:
		return search.NewCompositeHeuristic(
			search.WeightedHeuristic{Weight: c.Weights.Time, Heuristic: search.TimeHeuristic{}},
			search.WeightedHeuristic{Weight: c.Weights.NumWords, Heuristic: search.NumWordsHeuristic{}},
			search.WeightedHeuristic{Weight: c.Weights.PreferEnvironment,
				Heuristic: search.NewPreferEnvironmentActionHeuristic(environmentActions)},
		), nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", c.Heuristic)
	}
}

func writeController(ctrl *automata.TimedAutomaton, c config.Config) error {
	if c.ControllerXML != "" || c.ControllerXTA != "" {
		system := uppaal.FromTimedAutomaton(ctrl, "controller")
		if c.ControllerXML != "" {
			if err := writeFile(c.ControllerXML, system.AsXML()); err != nil {
				return err
			}
		}
		if c.ControllerXTA != "" {
			if err := writeFile(c.ControllerXTA, system.AsXTA()); err != nil {
				return err
			}
		}
	}
	if c.ControllerDOT != "" {
		graph, err := visualization.TAToGraphviz(ctrl)
		if err != nil {
			return err
		}
		if err := visualization.WriteDOT(graph, c.ControllerDOT); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path, text string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	defer file.Close()
	if _, err := fmt.Fprintln(file, text); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// subtract returns the alphabet symbols the controller does not own.
func subtract(alphabet, controllerActions []string) []string {
	owned := make(map[string]bool, len(controllerActions))
	for _, a := range controllerActions {
		owned[a] = true
	}
	var rest []string
	for _, a := range alphabet {
		if !owned[a] {
			rest = append(rest, a)
		}
	}
	return rest
}
