package uppaal

import "fmt"

// Trans represents a transition between two states in a process.
type Trans struct {
	start, end *State

	guardExpr   string
	syncStmt    string
	updateStmts string

	// All locations are absolute. AsUGI() translates to relative coordinates.
	guardLocation  Location
	syncLocation   Location
	updateLocation Location
}

func newTrans(start, end *State) *Trans {
	t := new(Trans)
	t.start = start
	t.end = end
	return t
}

// Start returns the start state of the transition.
func (t *Trans) Start() *State {
	return t.start
}

// End returns the end state of the transition.
func (t *Trans) End() *State {
	return t.end
}

// Guard returns the guard of the transition that has to be fulfilled to
// enable the transition.
func (t *Trans) Guard() string {
	return t.guardExpr
}

// SetGuard sets the guard of the transition.
func (t *Trans) SetGuard(guardExpr string) {
	t.guardExpr = guardExpr
}

// AddGuard conjoins another condition to the guard of the transition.
func (t *Trans) AddGuard(guardExpr string) {
	if t.guardExpr == "" {
		t.guardExpr = guardExpr
	} else {
		t.guardExpr += " && " + guardExpr
	}
}

// Sync returns the sync statement (on a Uppaal channel) of the transition.
func (t *Trans) Sync() string {
	return t.syncStmt
}

// SetSync sets the sync statement (on a Uppaal channel) of the transition.
func (t *Trans) SetSync(syncStmt string) {
	t.syncStmt = syncStmt
}

// Update returns all update statements that are executed when the transition
// gets taken.
func (t *Trans) Update() string {
	return t.updateStmts
}

// AddUpdate adds an update statement to the transition that gets executed
// when the transition gets taken.
func (t *Trans) AddUpdate(updateStmt string) {
	if t.updateStmts == "" {
		t.updateStmts = updateStmt
	} else {
		t.updateStmts += ", " + updateStmt
	}
}

// SetGuardLocation sets the location of the guard label.
func (t *Trans) SetGuardLocation(guardLocation Location) {
	t.guardLocation = guardLocation
}

// SetSyncLocation sets the location of the sync label.
func (t *Trans) SetSyncLocation(syncLocation Location) {
	t.syncLocation = syncLocation
}

// SetUpdateLocation sets the location of the update label.
func (t *Trans) SetUpdateLocation(updateLocation Location) {
	t.updateLocation = updateLocation
}

// AsXTA returns the xta (file format) representation of the transition.
func (t *Trans) AsXTA() string {
	s := t.start.Name() + " -> " + t.end.Name()
	s += " { "
	if t.guardExpr != "" {
		s += "guard " + t.guardExpr + "; "
	}
	if t.syncStmt != "" {
		s += "sync " + t.syncStmt + "; "
	}
	if t.updateStmts != "" {
		s += "assign " + t.updateStmts + "; "
	}
	s += "}"
	return s
}

// AsUGI returns the ugi (file format) representation of the transition,
// given the locations of the start and end state of the transition. The
// locations are necessary to compute relative label positions.
func (t *Trans) AsUGI(startLocation, endLocation Location, index int) string {
	id := fmt.Sprintf("%s %s %d", t.start.name, t.end.name, index)
	var s string
	if t.guardExpr != "" {
		p := absoluteToTransRelative(t.guardLocation, startLocation, endLocation)
		s += "guard " + id + " " + p.AsUGI() + ";\n"
	}
	if t.syncStmt != "" {
		p := absoluteToTransRelative(t.syncLocation, startLocation, endLocation)
		s += "sync " + id + " " + p.AsUGI() + ";\n"
	}
	if t.updateStmts != "" {
		p := absoluteToTransRelative(t.updateLocation, startLocation, endLocation)
		s += "assign " + id + " " + p.AsUGI() + ";\n"
	}
	return s
}
