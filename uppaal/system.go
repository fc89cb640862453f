package uppaal

import (
	"sort"
	"strings"
)

// System represents a complete collection of global declarations, processes,
// and process instances.
type System struct {
	decls Declarations

	processes map[string]*Process
	instances map[string]*ProcessInstance
}

// NewSystem creates a new system.
func NewSystem() *System {
	s := new(System)
	s.decls.initDeclarations("Place global declarations here.")
	s.processes = make(map[string]*Process)
	s.instances = make(map[string]*ProcessInstance)

	return s
}

// Declarations returns all global declarations of the system.
func (s *System) Declarations() *Declarations {
	return &s.decls
}

// Processes returns all processes in the system, sorted by name.
func (s *System) Processes() []*Process {
	processes := make([]*Process, 0, len(s.processes))
	for _, proc := range s.processes {
		processes = append(processes, proc)
	}
	sort.Slice(processes, func(i, j int) bool {
		return processes[i].name < processes[j].name
	})
	return processes
}

// AddProcess adds a process with the given name to the system and returns
// the new process.
func (s *System) AddProcess(name string) *Process {
	if _, ok := s.processes[name]; ok {
		panic("naming collision when adding process")
	}
	if _, ok := s.instances[name]; ok {
		panic("naming collision when adding process")
	}

	proc := newProcess(name)
	s.processes[name] = proc
	return proc
}

// ProcessInstances returns all process instances in the system, sorted by
// name.
func (s *System) ProcessInstances() []*ProcessInstance {
	instances := make([]*ProcessInstance, 0, len(s.instances))
	for _, inst := range s.instances {
		instances = append(instances, inst)
	}
	sort.Slice(instances, func(i, j int) bool {
		return instances[i].Name() < instances[j].Name()
	})
	return instances
}

// AddProcessInstance adds an instance of the given process to the system and
// returns the new instance.
func (s *System) AddProcessInstance(proc *Process, name string) *ProcessInstance {
	if _, ok := s.instances[name]; ok {
		panic("naming collision when adding process instance")
	}
	if _, ok := s.processes[proc.Name()]; !ok {
		panic("tried to instantiate non-existent process")
	}

	inst := newProcessInstance(proc, name)
	s.instances[name] = inst
	return inst
}

// AsXTA returns the xta (file format) representation of the system.
func (s *System) AsXTA() string {
	str := s.decls.AsXTA() + "\n\n"

	for _, proc := range s.Processes() {
		str += proc.AsXTA() + "\n\n"
	}

	instances := s.ProcessInstances()
	for _, inst := range instances {
		if inst.CanSkipDeclaration() {
			continue
		}
		str += inst.AsXTA() + "\n"
	}
	if len(instances) > 0 {
		str += "system "
		first := true
		for _, inst := range instances {
			if first {
				first = false
			} else {
				str += ", "
			}
			str += inst.Name()
		}
		str += ";\n"
	}

	return str
}

// AsUGI returns the ugi (file format) representation of the system.
func (s *System) AsUGI() string {
	var str string
	for _, proc := range s.Processes() {
		str += proc.AsUGI() + "\n\n"
	}
	return str
}

// AsXML returns the xml (file format) representation of the system.
func (s *System) AsXML() string {
	var b strings.Builder

	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n")
	b.WriteString("<!DOCTYPE nta PUBLIC '-//Uppaal Team//DTD Flat System 1.1//EN' 'http://www.it.uu.se/research/group/darts/uppaal/flat-1_2.dtd'>\n")
	b.WriteString("<nta>\n")

	b.WriteString("    <declaration>" + escapeForXML(s.decls.AsXTA()) + "</declaration>\n")

	for _, proc := range s.Processes() {
		proc.asXML(&b, "    ")
		b.WriteString("\n")
	}

	b.WriteString("    <system>")
	instances := s.ProcessInstances()
	var sys strings.Builder
	for _, inst := range instances {
		if inst.CanSkipDeclaration() {
			continue
		}
		sys.WriteString(inst.AsXTA() + "\n")
	}
	if len(instances) > 0 {
		sys.WriteString("system ")
		first := true
		for _, inst := range instances {
			if first {
				first = false
			} else {
				sys.WriteString(", ")
			}
			sys.WriteString(inst.Name())
		}
		sys.WriteString(";\n")
	}
	b.WriteString(escapeForXML(sys.String()))
	b.WriteString("</system>\n")

	b.WriteString("</nta>\n")
	return b.String()
}
