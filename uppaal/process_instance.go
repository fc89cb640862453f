package uppaal

import "fmt"

// ProcessInstance represents a process instance in System declarations.
type ProcessInstance struct {
	proc *Process
	name string
}

func newProcessInstance(proc *Process, instName string) *ProcessInstance {
	i := new(ProcessInstance)
	i.proc = proc
	i.name = instName

	return i
}

// Name returns the name of the process instance.
func (i *ProcessInstance) Name() string {
	return i.name
}

// CanSkipDeclaration returns whether the process needs to be explicitly
// instantiated or if it can be instantiated implicitly with the system
// statement at the end of System declarations.
func (i *ProcessInstance) CanSkipDeclaration() bool {
	return i.proc.name == i.name
}

// AsXTA returns the xta (file format) representation of the process
// instance.
func (i *ProcessInstance) AsXTA() string {
	return fmt.Sprintf("%s = %s();", i.name, i.proc.name)
}
