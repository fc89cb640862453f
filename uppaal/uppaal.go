// Package uppaal models UPPAAL systems of processes with clocks, channels,
// guarded transitions, and graphical layout information, and reads and
// writes the xml, xta, and ugi file formats for them.
package uppaal

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// RenamingOption indicates whether a function should resolve naming conflicts.
type RenamingOption bool

const (
	// NoRenaming indicates that a function should not resolve naming conflicts.
	NoRenaming RenamingOption = false
	// Renaming indicates that a function should resolve naming conflicts.
	Renaming RenamingOption = true
)

func escapeForXML(text string) string {
	buf := new(bytes.Buffer)
	err := xml.EscapeText(buf, []byte(text))
	if err != nil {
		panic(fmt.Errorf("could not escape xml text: %v", err))
	}
	return buf.String()
}
