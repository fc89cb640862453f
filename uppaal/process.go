package uppaal

import (
	"fmt"
	"sort"
	"strings"
)

// Process represents a process in Uppaal.
type Process struct {
	name string

	decls Declarations

	states      map[string]*State
	init        string
	transitions []*Trans
}

func newProcess(name string) *Process {
	p := new(Process)
	p.name = name
	p.decls.initDeclarations("Place local declarations here.")
	p.states = make(map[string]*State)

	return p
}

// Name returns the name of the process.
func (p *Process) Name() string {
	return p.name
}

// Declarations returns the declarations that are part of the process.
func (p *Process) Declarations() *Declarations {
	return &p.decls
}

// States returns all states of the process, sorted by name.
func (p *Process) States() []*State {
	states := make([]*State, 0, len(p.states))
	for _, state := range p.states {
		states = append(states, state)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].name < states[j].name
	})
	return states
}

// GetStateWithName returns the state with the given name (if present).
func (p *Process) GetStateWithName(name string) *State {
	return p.states[name]
}

// AddState adds a state with the given name (after possible renaming to
// avoid naming conflicts) to the process and returns the new state.
func (p *Process) AddState(name string, opt RenamingOption) *State {
	if opt == NoRenaming {
		if _, ok := p.states[name]; ok {
			panic("naming collision when adding state")
		}

	} else if opt == Renaming {
		baseName := name
		if baseName == "" {
			baseName = "L"
		}
		for i := 0; ; i++ {
			name = fmt.Sprintf("%s%d", baseName, i)
			if _, ok := p.states[name]; !ok {
				break
			}
		}
	}

	s := newState(name)
	p.states[name] = s
	return s
}

// InitialState returns the initial state of the process.
func (p *Process) InitialState() *State {
	return p.states[p.init]
}

// SetInitialState changes the initial state of the process to the given
// state.
func (p *Process) SetInitialState(s *State) {
	t := p.states[s.Name()]
	if s != t {
		panic("tried to set state as initial that is outside of process")
	}
	p.init = s.Name()
}

// Transitions returns all transitions of the process in insertion order.
func (p *Process) Transitions() []*Trans {
	return p.transitions
}

// AddTrans adds a transition between the given start and end state to the
// process and returns the new transition.
func (p *Process) AddTrans(startState, endState *State) *Trans {
	t := newTrans(startState, endState)
	p.transitions = append(p.transitions, t)
	return t
}

// AsXTA returns the xta (file format) representation of the process.
func (p *Process) AsXTA() string {
	s := "process " + p.name + "() {\n"
	s += p.decls.AsXTA() + "\n\n"
	s += "state\n"
	first := true
	for _, state := range p.States() {
		if first {
			first = false
		} else {
			s += ",\n"
		}
		s += "    " + state.Name()
	}
	s += ";\n"
	s += "init\n"
	s += "    " + p.init + ";\n"
	s += "trans\n"
	for i, transition := range p.transitions {
		s += "    " + transition.AsXTA()
		if i < len(p.transitions)-1 {
			s += ",\n"
		} else {
			s += ";\n"
		}
	}
	s += "}"
	return s
}

// AsUGI returns the ugi (file format) representation of the process.
func (p *Process) AsUGI() string {
	s := "process " + p.name + " graphinfo {\n"
	for _, state := range p.States() {
		s += state.AsUGI()
	}
	indices := make(map[[2]string]int)
	for _, trans := range p.transitions {
		pair := [2]string{trans.start.name, trans.end.name}
		indices[pair]++
		s += trans.AsUGI(trans.start.location, trans.end.location, indices[pair])
	}
	s += "}"
	return s
}

// asXML writes the xml (file format) representation of the process to the
// builder. State ids are assigned by sorted state order.
func (p *Process) asXML(b *strings.Builder, indent string) {
	ids := make(map[string]string)
	states := p.States()
	for i, state := range states {
		ids[state.name] = fmt.Sprintf("id%d", i)
	}

	b.WriteString(indent + "<template>\n")
	b.WriteString(indent + "    <name>" + escapeForXML(p.name) + "</name>\n")
	b.WriteString(indent + "    <declaration>" + escapeForXML(p.decls.AsXTA()) + "</declaration>\n")
	for _, state := range states {
		fmt.Fprintf(b, "%s    <location id=\"%s\" x=\"%d\" y=\"%d\">\n",
			indent, ids[state.name], state.location[0], state.location[1])
		fmt.Fprintf(b, "%s        <name x=\"%d\" y=\"%d\">%s</name>\n",
			indent, state.nameLocation[0], state.nameLocation[1], escapeForXML(state.name))
		b.WriteString(indent + "    </location>\n")
	}
	fmt.Fprintf(b, "%s    <init ref=\"%s\"/>\n", indent, ids[p.init])
	for _, trans := range p.transitions {
		b.WriteString(indent + "    <transition>\n")
		fmt.Fprintf(b, "%s        <source ref=\"%s\"/>\n", indent, ids[trans.start.name])
		fmt.Fprintf(b, "%s        <target ref=\"%s\"/>\n", indent, ids[trans.end.name])
		if trans.guardExpr != "" {
			fmt.Fprintf(b, "%s        <label kind=\"guard\" x=\"%d\" y=\"%d\">%s</label>\n",
				indent, trans.guardLocation[0], trans.guardLocation[1], escapeForXML(trans.guardExpr))
		}
		if trans.syncStmt != "" {
			fmt.Fprintf(b, "%s        <label kind=\"synchronisation\" x=\"%d\" y=\"%d\">%s</label>\n",
				indent, trans.syncLocation[0], trans.syncLocation[1], escapeForXML(trans.syncStmt))
		}
		if trans.updateStmts != "" {
			fmt.Fprintf(b, "%s        <label kind=\"assignment\" x=\"%d\" y=\"%d\">%s</label>\n",
				indent, trans.updateLocation[0], trans.updateLocation[1], escapeForXML(trans.updateStmts))
		}
		b.WriteString(indent + "    </transition>\n")
	}
	b.WriteString(indent + "</template>")
}
