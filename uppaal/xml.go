package uppaal

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
)

type xmlNTA struct {
	XMLName     xml.Name      `xml:"nta"`
	Declaration string        `xml:"declaration"`
	Templates   []xmlTemplate `xml:"template"`
	System      string        `xml:"system"`
}

type xmlTemplate struct {
	Name        string          `xml:"name"`
	Declaration string          `xml:"declaration"`
	Locations   []xmlLocation   `xml:"location"`
	Init        xmlRef          `xml:"init"`
	Transitions []xmlTransition `xml:"transition"`
}

type xmlLocation struct {
	ID     string     `xml:"id,attr"`
	X      int        `xml:"x,attr"`
	Y      int        `xml:"y,attr"`
	Name   xmlName    `xml:"name"`
	Labels []xmlLabel `xml:"label"`
}

type xmlName struct {
	X    int    `xml:"x,attr"`
	Y    int    `xml:"y,attr"`
	Text string `xml:",chardata"`
}

type xmlRef struct {
	Ref string `xml:"ref,attr"`
}

type xmlTransition struct {
	Source xmlRef     `xml:"source"`
	Target xmlRef     `xml:"target"`
	Labels []xmlLabel `xml:"label"`
}

type xmlLabel struct {
	Kind string `xml:"kind,attr"`
	X    int    `xml:"x,attr"`
	Y    int    `xml:"y,attr"`
	Text string `xml:",chardata"`
}

// ReadSystem decodes the xml (file format) representation of a system. The
// reader covers templates with clock declarations, locations, an initial
// location, and transitions carrying guard, synchronisation, and assignment
// labels; every template is instantiated once under its own name. Globally
// declared clocks are merged into each template so that a single template
// stays self-contained.
func ReadSystem(data []byte) (*System, error) {
	var doc xmlNTA
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not decode system: %w", err)
	}
	s := NewSystem()
	parseDeclarations(doc.Declaration, &s.decls)
	for _, tmpl := range doc.Templates {
		name := strings.TrimSpace(tmpl.Name)
		if name == "" {
			return nil, fmt.Errorf("template without a name")
		}
		if _, ok := s.processes[name]; ok {
			return nil, fmt.Errorf("duplicate template name %q", name)
		}
		p := s.AddProcess(name)
		parseDeclarations(tmpl.Declaration, &p.decls)
		for _, clock := range s.decls.Clocks() {
			p.decls.AddClock(clock)
		}

		statesByID := make(map[string]*State)
		for _, loc := range tmpl.Locations {
			for _, label := range loc.Labels {
				if label.Kind == "invariant" {
					return nil, fmt.Errorf("location invariants: %w", automata.ErrUnsupported)
				}
			}
			stateName := strings.TrimSpace(loc.Name.Text)
			if stateName == "" {
				stateName = loc.ID
			}
			if p.GetStateWithName(stateName) != nil {
				return nil, fmt.Errorf("duplicate location name %q in template %q", stateName, name)
			}
			state := p.AddState(stateName, NoRenaming)
			state.SetLocation(Location{loc.X, loc.Y})
			state.SetNameLocation(Location{loc.Name.X, loc.Name.Y})
			statesByID[loc.ID] = state
		}

		if tmpl.Init.Ref == "" {
			return nil, fmt.Errorf("template %q has no initial location", name)
		}
		init, ok := statesByID[tmpl.Init.Ref]
		if !ok {
			return nil, fmt.Errorf("unknown initial location ref %q in template %q", tmpl.Init.Ref, name)
		}
		p.SetInitialState(init)

		for _, xt := range tmpl.Transitions {
			start, ok := statesByID[xt.Source.Ref]
			if !ok {
				return nil, fmt.Errorf("unknown source ref %q in template %q", xt.Source.Ref, name)
			}
			end, ok := statesByID[xt.Target.Ref]
			if !ok {
				return nil, fmt.Errorf("unknown target ref %q in template %q", xt.Target.Ref, name)
			}
			t := p.AddTrans(start, end)
			for _, label := range xt.Labels {
				text := strings.TrimSpace(label.Text)
				switch label.Kind {
				case "guard":
					t.AddGuard(text)
					t.SetGuardLocation(Location{label.X, label.Y})
				case "synchronisation":
					t.SetSync(text)
					t.SetSyncLocation(Location{label.X, label.Y})
				case "assignment":
					t.AddUpdate(text)
					t.SetUpdateLocation(Location{label.X, label.Y})
				case "comments":
				default:
					return nil, fmt.Errorf("label kind %q: %w", label.Kind, automata.ErrUnsupported)
				}
			}
		}

		s.AddProcessInstance(p, name)
	}
	return s, nil
}

// parseDeclarations collects clock and channel declarations from an xta
// declaration text. Comments and declarations outside the supported subset
// are skipped.
func parseDeclarations(text string, decls *Declarations) {
	for _, line := range strings.Split(text, "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			switch {
			case strings.HasPrefix(stmt, "clock "):
				for _, name := range strings.Split(strings.TrimPrefix(stmt, "clock "), ",") {
					if name = strings.TrimSpace(name); name != "" {
						decls.AddClock(name)
					}
				}
			case strings.HasPrefix(stmt, "chan "):
				for _, name := range strings.Split(strings.TrimPrefix(stmt, "chan "), ",") {
					if name = strings.TrimSpace(name); name != "" {
						decls.AddChannel(name)
					}
				}
			}
		}
	}
}
