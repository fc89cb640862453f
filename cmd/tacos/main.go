// The tacos command synthesizes a controller for a timed-automaton plant
// against an MTL specification and reports TOP or BOTTOM through its exit
// code.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/api"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/config"
)

func main() {
	l := newLauncher()
	if err := l.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if l.exitCode == 0 {
			l.exitCode = api.ExitInputError
		}
	}
	os.Exit(l.exitCode)
}

// launcher binds the command line to a run configuration and keeps the
// exit code of the run.
type launcher struct {
	flags        config.Config
	scenarioPath string
	exitCode     int
	cmd          *cobra.Command
}

func newLauncher() *launcher {
	l := &launcher{flags: config.Default()}
	l.cmd = &cobra.Command{
		Use:   "tacos",
		Short: "Synthesize timed-automata controllers against MTL specifications",
		Long: `tacos reads a plant from an UPPAAL XML file, translates an MTL
specification into an alternating timed automaton, and searches the
two-player game between controller and environment. When the controller
wins, the winning strategy is written as a timed automaton.

Exit codes: 0 when a controller exists, 1 when none does, 2 on input
errors, 3 when the input needs an unsupported feature.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          l.run,
	}
	flags := l.cmd.Flags()
	flags.StringVarP(&l.flags.Plant, "plant", "p", "", "path of the UPPAAL XML file holding the plant")
	flags.StringVarP(&l.flags.Specification, "specification", "s", "", "MTL formula of desired behavior")
	flags.StringArrayVarP(&l.flags.ControllerActions, "controller-action", "c", nil, "action owned by the controller (repeatable)")
	flags.StringArrayVar(&l.flags.FinalLocations, "final", nil, "accepting plant location (repeatable; default: the initial location)")
	flags.StringVarP(&l.flags.ControllerXML, "output", "o", "", "write the controller as UPPAAL XML to this path")
	flags.StringVar(&l.flags.ControllerXTA, "output-xta", "", "write the controller as XTA to this path")
	flags.StringVar(&l.flags.TreeDOT, "visualize-tree", "", "write a Graphviz rendering of the search tree to this path")
	flags.StringVar(&l.flags.ControllerDOT, "visualize-controller", "", "write a Graphviz rendering of the controller to this path")
	flags.StringVar(&l.flags.PlantDOT, "visualize-plant", "", "write a Graphviz rendering of the plant to this path")
	flags.StringVar(&l.flags.Heuristic, "heuristic", l.flags.Heuristic, "expansion order: bfs, dfs, time, num-words, prefer-environment, random, or composite")
	flags.Int64Var(&l.flags.RandomSeed, "random-seed", 0, "seed of the random heuristic")
	flags.IntVar(&l.flags.Workers, "workers", l.flags.Workers, "number of concurrent search workers")
	flags.StringVar(&l.scenarioPath, "scenario", "", "YAML scenario document supplying any of the above")
	flags.BoolVarP(&l.flags.Verbose, "verbose", "v", false, "enable debug logging")
	return l
}

func (l *launcher) run(cmd *cobra.Command, args []string) error {
	c, err := l.configure(cmd)
	if err != nil {
		l.exitCode = api.ExitCode(api.Result{}, err)
		return err
	}

	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := api.Run(ctx, c)
	l.exitCode = api.ExitCode(result, err)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d nodes, %d words)\n",
		result.Verdict, result.Statistics.Nodes, result.Statistics.Words)
	return nil
}

// configure merges the scenario document and the command line. Flags set
// explicitly take precedence over the document.
func (l *launcher) configure(cmd *cobra.Command) (config.Config, error) {
	if l.scenarioPath == "" {
		return l.flags, nil
	}
	c, err := config.Load(l.scenarioPath, config.Default())
	if err != nil {
		return config.Config{}, err
	}
	set := cmd.Flags().Changed
	if set("plant") {
		c.Plant = l.flags.Plant
	}
	if set("specification") {
		c.Specification = l.flags.Specification
	}
	if set("controller-action") {
		c.ControllerActions = l.flags.ControllerActions
	}
	if set("final") {
		c.FinalLocations = l.flags.FinalLocations
	}
	if set("output") {
		c.ControllerXML = l.flags.ControllerXML
	}
	if set("output-xta") {
		c.ControllerXTA = l.flags.ControllerXTA
	}
	if set("visualize-tree") {
		c.TreeDOT = l.flags.TreeDOT
	}
	if set("visualize-controller") {
		c.ControllerDOT = l.flags.ControllerDOT
	}
	if set("visualize-plant") {
		c.PlantDOT = l.flags.PlantDOT
	}
	if set("heuristic") {
		c.Heuristic = l.flags.Heuristic
	}
	if set("random-seed") {
		c.RandomSeed = l.flags.RandomSeed
	}
	if set("workers") {
		c.Workers = l.flags.Workers
	}
	if set("verbose") {
		c.Verbose = l.flags.Verbose
	}
	return c, nil
}
