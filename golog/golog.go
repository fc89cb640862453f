// Package golog lets a Golog program play the plant role in controller
// synthesis. The program semantics live in an external engine; this
// package only holds the process-wide environment handle and the adapter
// that exposes program configurations to the search.
package golog

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

const (
	// ClockName is the single clock of every Golog plant. It is reset on
	// every program action.
	ClockName = "golog"

	// EmptyProgram is the location of a fully executed program.
	EmptyProgram = "[]"

	// ControllerTerminateAction ends the program on behalf of the
	// controller while the environment could still act, and
	// EnvironmentTerminateAction the other way around.
	ControllerTerminateAction  = "ctl_terminate"
	EnvironmentTerminateAction = "env_terminate"
)

// Successor is one engine step: the action taken and the program
// remaining afterwards.
type Successor struct {
	Action    string
	Remaining string
}

// Engine computes the one-step successors of a remaining program.
// Implementations wrap an external Golog interpreter.
type Engine interface {
	Successors(remaining string) ([]Successor, error)
}

var (
	environmentMu     sync.Mutex
	environmentActive bool
)

var mainProcedurePattern = regexp.MustCompile(`\bprocedure\s+main\s*\(`)

// Program is an exclusive handle on the Golog environment. The
// environment is global to the process, so at most one Program may be
// live at a time; NewProgram fails while another handle exists.
type Program struct {
	source string
	engine Engine

	mu     sync.Mutex
	closed bool
}

// NewProgram acquires the Golog environment for the given program
// source. The source must declare a main procedure.
func NewProgram(source string, engine Engine) (*Program, error) {
	if engine == nil {
		return nil, fmt.Errorf("golog program needs an engine")
	}
	if !mainProcedurePattern.MatchString(source) {
		return nil, fmt.Errorf("golog program does not contain a main procedure")
	}
	environmentMu.Lock()
	defer environmentMu.Unlock()
	if environmentActive {
		return nil, fmt.Errorf("golog environment has already been initialized")
	}
	environmentActive = true
	return &Program{source: source, engine: engine}, nil
}

// Close releases the Golog environment so a new Program can be created.
// Closing an already closed handle is a no-op.
func (p *Program) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	environmentMu.Lock()
	environmentActive = false
	environmentMu.Unlock()
}

// Source returns the program text the handle was created with.
func (p *Program) Source() string {
	return p.source
}

// InitialConfiguration starts at the call to main with the golog clock
// at zero.
func (p *Program) InitialConfiguration() automata.Configuration {
	return automata.Configuration{
		Location:        "main()",
		ClockValuations: automata.ClockSetValuation{ClockName: automata.NewClock(0)},
	}
}

// Successors delegates one program step to the engine. The empty program
// has no successors.
func (p *Program) Successors(remaining string) ([]Successor, error) {
	if remaining == EmptyProgram {
		return nil, nil
	}
	return p.engine.Successors(remaining)
}
