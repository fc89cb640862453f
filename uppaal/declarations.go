package uppaal

import "strings"

// Declarations stores the clock and channel declarations of a System or a
// Process.
type Declarations struct {
	headerComment string
	clocks        []string
	clockLookup   map[string]bool
	channels      []string
	channelLookup map[string]bool
}

func (d *Declarations) initDeclarations(comment string) {
	d.headerComment = comment
	d.clockLookup = make(map[string]bool)
	d.channelLookup = make(map[string]bool)
}

// Clocks returns all declared clocks in declaration order.
func (d *Declarations) Clocks() []string {
	return d.clocks
}

// HasClock returns whether a clock with the given name is declared.
func (d *Declarations) HasClock(name string) bool {
	return d.clockLookup[name]
}

// AddClock adds a clock declaration. Adding the same clock twice has no
// effect.
func (d *Declarations) AddClock(name string) {
	if d.clockLookup[name] {
		return
	}
	d.clocks = append(d.clocks, name)
	d.clockLookup[name] = true
}

// AddChannel adds a channel declaration. Adding the same channel twice has
// no effect.
func (d *Declarations) AddChannel(name string) {
	if d.channelLookup[name] {
		return
	}
	d.channels = append(d.channels, name)
	d.channelLookup[name] = true
}

// AsXTA returns the xta (file format) representation of the declarations.
func (d *Declarations) AsXTA() string {
	var b strings.Builder
	b.WriteString("// " + d.headerComment)
	if len(d.clocks) > 0 {
		b.WriteString("\nclock " + strings.Join(d.clocks, ", ") + ";")
	}
	if len(d.channels) > 0 {
		b.WriteString("\nchan " + strings.Join(d.channels, ", ") + ";")
	}
	return b.String()
}
