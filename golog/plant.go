package golog

import (
	"fmt"
	"sort"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// Plant adapts a Program to the search's plant interface. Regular
// actions delegate to the engine and reset the golog clock. The
// terminate actions end the program without an engine step: they become
// enabled once the golog clock has passed the largest constant, and only
// while the opposing player still owns an enabled program action.
type Plant struct {
	program     *Program
	controller  map[string]bool
	environment map[string]bool
	actions     []string
	k           automata.Endpoint
}

// NewPlant builds the search adapter for a program. The action sets
// partition the program's regular actions by owner; the terminate
// actions are added to the respective sides. k is the largest constant
// the search regionalizes against.
func NewPlant(program *Program, controllerActions, environmentActions []string, k automata.Endpoint) *Plant {
	p := &Plant{
		program:     program,
		controller:  make(map[string]bool, len(controllerActions)+1),
		environment: make(map[string]bool, len(environmentActions)+1),
		k:           k,
	}
	for _, a := range controllerActions {
		p.controller[a] = true
	}
	for _, a := range environmentActions {
		p.environment[a] = true
	}
	p.controller[ControllerTerminateAction] = true
	p.environment[EnvironmentTerminateAction] = true
	for a := range p.controller {
		p.actions = append(p.actions, a)
	}
	for a := range p.environment {
		if !p.controller[a] {
			p.actions = append(p.actions, a)
		}
	}
	sort.Strings(p.actions)
	return p
}

// InitialConfiguration returns the program's initial configuration.
func (p *Plant) InitialConfiguration() automata.Configuration {
	return p.program.InitialConfiguration()
}

// IsAccepting reports whether the configuration is accepting. Only the
// fully executed program is decidable; acceptance of a partially
// executed program is an open question of the Golog semantics.
func (p *Plant) IsAccepting(c automata.Configuration) (bool, error) {
	if c.Location == EmptyProgram {
		return true, nil
	}
	return false, fmt.Errorf("cannot decide acceptance of remaining program %q: %w", c.Location, automata.ErrUnsupported)
}

// Step advances the golog clock by delta and then takes every enabled
// step for the symbol.
func (p *Plant) Step(c automata.Configuration, symbol string, delta automata.Time) ([]automata.Configuration, error) {
	if delta < 0 {
		return nil, &automata.NegativeTimeDeltaError{Delta: delta}
	}
	advanced := c.Copy()
	for name, clock := range advanced.ClockValuations {
		clock.Tick(delta)
		advanced.ClockValuations[name] = clock
	}
	switch symbol {
	case ControllerTerminateAction:
		return p.terminate(advanced, p.environment)
	case EnvironmentTerminateAction:
		return p.terminate(advanced, p.controller)
	}
	successors, err := p.program.Successors(advanced.Location)
	if err != nil {
		return nil, err
	}
	var result []automata.Configuration
	for _, successor := range successors {
		if successor.Action != symbol {
			continue
		}
		next := advanced.Copy()
		next.Location = successor.Remaining
		clock := next.ClockValuations[ClockName]
		clock.Reset()
		next.ClockValuations[ClockName] = clock
		result = append(result, next)
	}
	return result, nil
}

// terminate ends the program if the opposing player still owns an
// enabled action. The clock keeps its valuation: terminating takes no
// program step.
func (p *Plant) terminate(c automata.Configuration, opposing map[string]bool) ([]automata.Configuration, error) {
	valuation := c.ClockValuations[ClockName].Valuation()
	if automata.GetRegionIndex(valuation, p.k) != automata.GetMaxRegionIndex(p.k) {
		return nil, nil
	}
	successors, err := p.program.Successors(c.Location)
	if err != nil {
		return nil, err
	}
	for _, successor := range successors {
		if opposing[successor.Action] {
			next := c.Copy()
			next.Location = EmptyProgram
			return []automata.Configuration{next}, nil
		}
	}
	return nil, nil
}

// Actions returns the regular actions of both players plus the two
// terminate actions, sorted.
func (p *Plant) Actions() []string {
	actions := make([]string, len(p.actions))
	copy(actions, p.actions)
	return actions
}

// ControllerActions returns the controller's actions including
// ControllerTerminateAction, sorted.
func (p *Plant) ControllerActions() []string {
	return sortedActions(p.controller)
}

// EnvironmentActions returns the environment's actions including
// EnvironmentTerminateAction, sorted.
func (p *Plant) EnvironmentActions() []string {
	return sortedActions(p.environment)
}

// Clocks returns the single golog clock.
func (p *Plant) Clocks() []string {
	return []string{ClockName}
}

// LargestConstant returns 0: a program text constrains no clocks.
func (p *Plant) LargestConstant() automata.Endpoint {
	return 0
}

func sortedActions(set map[string]bool) []string {
	actions := make([]string, 0, len(set))
	for a := range set {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	return actions
}
