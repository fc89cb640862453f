// Package config holds the parameters of a synthesis run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Heuristic names accepted by Config.Heuristic. An empty name falls back
// to breadth-first order.
const (
	HeuristicBFS               = "bfs"
	HeuristicDFS               = "dfs"
	HeuristicTime              = "time"
	HeuristicNumWords          = "num-words"
	HeuristicPreferEnvironment = "prefer-environment"
	HeuristicRandom            = "random"
	HeuristicComposite         = "composite"
)

// Weights scales the components of the composite heuristic.
type Weights struct {
	Time              int64 `yaml:"time"`
	NumWords          int64 `yaml:"num-words"`
	PreferEnvironment int64 `yaml:"prefer-environment"`
}

// Config holds parameters for the Run function.
type Config struct {
	// Plant is the path of an UPPAAL XML file holding the plant automaton.
	Plant string `yaml:"plant"`
	// Specification is the MTL formula of desired behavior, in textual
	// form.
	Specification string `yaml:"specification"`
	// ControllerActions lists the plant actions the controller owns. Every
	// other action belongs to the environment.
	ControllerActions []string `yaml:"controller-actions"`
	// FinalLocations lists the accepting plant locations. Empty means the
	// plant accepts exactly in its initial location.
	FinalLocations []string `yaml:"final-locations"`

	// Heuristic selects the expansion order of the search.
	Heuristic string `yaml:"heuristic"`
	// Weights applies when Heuristic is "composite".
	Weights Weights `yaml:"weights"`
	// RandomSeed seeds the "random" heuristic.
	RandomSeed int64 `yaml:"random-seed"`
	// Workers is the number of concurrent search workers.
	Workers int `yaml:"workers"`

	// ControllerXML and ControllerXTA are the output paths for the
	// synthesized controller; empty paths are skipped.
	ControllerXML string `yaml:"controller-xml"`
	ControllerXTA string `yaml:"controller-xta"`
	// TreeDOT, ControllerDOT, and PlantDOT take Graphviz renderings of the
	// search tree, the controller, and the plant.
	TreeDOT       string `yaml:"tree-dot"`
	ControllerDOT string `yaml:"controller-dot"`
	PlantDOT      string `yaml:"plant-dot"`

	// Verbose lowers the log level to debug.
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration a run starts from before flags or a
// scenario document apply.
func Default() Config {
	return Config{
		Heuristic: HeuristicBFS,
		Weights:   Weights{Time: 1, NumWords: 1, PreferEnvironment: 1},
		Workers:   runtime.NumCPU(),
	}
}

// Load reads a YAML scenario document and applies it over base. Fields
// the document does not mention keep their base values.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read scenario: %w", err)
	}
	c := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("could not decode scenario %q: %w", path, err)
	}
	return c, nil
}

// Validate checks the parts every run needs.
func (c Config) Validate() error {
	if c.Plant == "" {
		return fmt.Errorf("no plant given")
	}
	if c.Specification == "" {
		return fmt.Errorf("no specification given")
	}
	switch c.Heuristic {
	case "", HeuristicBFS, HeuristicDFS, HeuristicTime, HeuristicNumWords,
		HeuristicPreferEnvironment, HeuristicRandom, HeuristicComposite:
	default:
		return fmt.Errorf("unknown heuristic %q", c.Heuristic)
	}
	return nil
}
