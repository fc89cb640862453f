package search

import (
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// Plant is the system model the synthesized controller plays against. The
// search only needs configurations, symbol steps after a time advance, and
// the largest constant of the model; timed automata and program shells both
// qualify.
type Plant interface {
	// InitialConfiguration returns the configuration the plant starts in.
	InitialConfiguration() automata.Configuration
	// IsAccepting reports whether the configuration is accepting. Plants
	// without a decidable acceptance condition wrap automata.ErrUnsupported.
	IsAccepting(c automata.Configuration) (bool, error)
	// Step advances the configuration by delta time units and then takes
	// every enabled transition for the symbol.
	Step(c automata.Configuration, symbol string, delta automata.Time) ([]automata.Configuration, error)
	// Actions returns the plant's alphabet.
	Actions() []string
	// Clocks returns the names of the plant's clocks.
	Clocks() []string
	// LargestConstant returns the largest constant appearing in the plant's
	// guards.
	LargestConstant() automata.Endpoint
}

// TAPlant adapts a timed automaton to the Plant interface.
type TAPlant struct {
	*automata.TimedAutomaton
}

// NewTAPlant wraps a timed automaton for the search.
func NewTAPlant(ta *automata.TimedAutomaton) TAPlant {
	return TAPlant{TimedAutomaton: ta}
}

func (p TAPlant) IsAccepting(c automata.Configuration) (bool, error) {
	return p.IsAcceptingConfiguration(c), nil
}

func (p TAPlant) Step(c automata.Configuration, symbol string, delta automata.Time) ([]automata.Configuration, error) {
	advanced, err := p.MakeTimeStep(c, delta)
	if err != nil {
		return nil, err
	}
	return p.MakeSymbolStep(advanced, symbol), nil
}

func (p TAPlant) Actions() []string {
	return p.Alphabet()
}
