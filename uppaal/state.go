package uppaal

// State represents a state that is part of a process.
type State struct {
	name    string
	comment string

	// All locations are absolute. AsUGI() translates to relative coordinates.
	location     Location
	nameLocation Location
}

func newState(name string) *State {
	s := new(State)
	s.name = name
	return s
}

// Name returns the name of the state.
func (s *State) Name() string {
	return s.name
}

// Comment returns the comment for the state.
func (s *State) Comment() string {
	return s.comment
}

// SetComment sets the comment for the state.
func (s *State) SetComment(comment string) {
	s.comment = comment
}

// Location returns the location of the state.
func (s *State) Location() Location {
	return s.location
}

// SetLocation sets the location of the state.
func (s *State) SetLocation(location Location) {
	s.location = location
}

// SetNameLocation sets the location of the name label of the state.
func (s *State) SetNameLocation(nameLocation Location) {
	s.nameLocation = nameLocation
}

// SetLocationAndResetNameLocation sets the location of the state and moves
// the name label to its default below the state.
func (s *State) SetLocationAndResetNameLocation(location Location) {
	s.location = location
	s.nameLocation = location.Add(Location{4, 16})
}

// AsUGI returns the ugi (file format) representation of the state.
func (s *State) AsUGI() string {
	relNameLocation := s.nameLocation.Sub(s.location)

	str := "location " + s.name + " " + s.location.AsUGI() + ";\n"
	str += "locationName " + s.name + " " + relNameLocation.AsUGI() + ";\n"
	return str
}
