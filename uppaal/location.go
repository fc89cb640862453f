package uppaal

import "fmt"

// Location represents the 2D coordinates of a state or a transition label.
type Location [2]int

// Add returns a new location with the given offset from the existing location
// added.
func (l Location) Add(offset Location) Location {
	return Location{l[0] + offset[0], l[1] + offset[1]}
}

// Sub returns a new location with the given offset from the existing location
// subtracted.
func (l Location) Sub(offset Location) Location {
	return Location{l[0] - offset[0], l[1] - offset[1]}
}

// Mid returns the point halfway between the two locations.
func Mid(a, b Location) Location {
	return Location{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

// AsUGI returns the ugi (file format) representation of the point.
func (l Location) AsUGI() string {
	return fmt.Sprintf("(%d,%d)", l[0], l[1])
}

func absoluteToTransRelative(absolute, start, end Location) (relative Location) {
	relative[0] = absolute[0] - (start[0]+end[0])/2
	relative[1] = absolute[1] - (start[1]+end[1])/2
	return
}
