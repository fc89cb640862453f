// Package scenarios provides the plant models used throughout the test
// suites: a conveyor belt with a sticking item and Fischer's mutual
// exclusion protocol.
package scenarios

import (
	"fmt"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

// Scenario bundles a plant with the partition of its alphabet into
// controller and environment actions.
type Scenario struct {
	Plant              *automata.TimedAutomaton
	ControllerActions  []string
	EnvironmentActions []string
}

// ConveyorBelt models a belt moving items past a picker. The belt normally
// advances one slot per time unit; an item can get stuck, after which the
// environment eventually releases it into an occupied position, and the
// belt must stop before resuming. The belt rests in NO (normal operation).
func ConveyorBelt() (Scenario, error) {
	ta, err := automata.NewTimedAutomaton(
		[]string{"move", "release", "resume", "stop", "stuck"},
		[]string{"NO", "ST", "OP", "SP"},
		"NO",
		[]string{"NO"},
		[]string{"move_timer", "stuck_timer"},
		[]automata.Transition{
			automata.NewTransition("NO", "move", "NO",
				[]automata.ClockGuard{{
					Clock:      "move_timer",
					Constraint: automata.ClockConstraint{Comparison: automata.GreaterEqual, Comparand: 1},
				}},
				[]string{"move_timer"}),
			automata.NewTransition("NO", "stuck", "ST", nil, []string{"stuck_timer"}),
			automata.NewTransition("NO", "stop", "SP", nil, nil),
			automata.NewTransition("ST", "release", "OP", nil, nil),
			automata.NewTransition("OP", "stop", "SP", nil, nil),
			automata.NewTransition("SP", "resume", "NO", nil, nil),
		},
	)
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{
		Plant:              ta,
		ControllerActions:  []string{"move", "stop"},
		EnvironmentActions: []string{"release", "resume", "stuck"},
	}, nil
}

// Fischer builds the product of n processes running Fischer's mutual
// exclusion protocol. A process requests entry, writes its id to the shared
// variable within delaySelfAssign time units, waits longer than
// delayEnterCritical, and may then enter the critical section before
// clearing the variable again. Requesting, writing, and clearing belong to
// the environment; entering is up to the controller.
func Fischer(n int, delaySelfAssign, delayEnterCritical automata.Endpoint) (Scenario, error) {
	if n < 1 {
		return Scenario{}, fmt.Errorf("fischer scenario needs at least one process, got %d", n)
	}
	components := make([]*automata.TimedAutomaton, 0, n)
	scenario := Scenario{}
	for i := 1; i <= n; i++ {
		clock := fmt.Sprintf("c_%d", i)
		ta, err := automata.NewTimedAutomaton(
			[]string{
				fmt.Sprintf("try_enter_%d", i),
				fmt.Sprintf("retry_%d", i),
				fmt.Sprintf("set_var_%d", i),
				fmt.Sprintf("enter_%d", i),
				fmt.Sprintf("zero_var_%d", i),
			},
			[]string{"IDLE", "REQUEST", "WAIT", "CRITICAL"},
			"IDLE",
			[]string{"IDLE"},
			[]string{clock},
			[]automata.Transition{
				automata.NewTransition("IDLE", fmt.Sprintf("try_enter_%d", i), "REQUEST", nil, []string{clock}),
				automata.NewTransition("REQUEST", fmt.Sprintf("set_var_%d", i), "WAIT",
					[]automata.ClockGuard{{
						Clock:      clock,
						Constraint: automata.ClockConstraint{Comparison: automata.Less, Comparand: delaySelfAssign},
					}},
					[]string{clock}),
				automata.NewTransition("WAIT", fmt.Sprintf("enter_%d", i), "CRITICAL",
					[]automata.ClockGuard{{
						Clock:      clock,
						Constraint: automata.ClockConstraint{Comparison: automata.Greater, Comparand: delayEnterCritical},
					}},
					nil),
				automata.NewTransition("CRITICAL", fmt.Sprintf("zero_var_%d", i), "IDLE", nil, nil),
			},
		)
		if err != nil {
			return Scenario{}, err
		}
		components = append(components, ta)
		scenario.ControllerActions = append(scenario.ControllerActions,
			fmt.Sprintf("retry_%d", i), fmt.Sprintf("enter_%d", i))
		scenario.EnvironmentActions = append(scenario.EnvironmentActions,
			fmt.Sprintf("try_enter_%d", i), fmt.Sprintf("set_var_%d", i), fmt.Sprintf("zero_var_%d", i))
	}
	product, err := automata.GetProduct(components, nil)
	if err != nil {
		return Scenario{}, err
	}
	scenario.Plant = product
	return scenario, nil
}
