// Package visualization renders search trees and timed automata as Graphviz
// graphs.
package visualization

import (
	"fmt"
	"os"

	gv "github.com/awalterschulze/gographviz"

	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/automata"
	"github.com/ScienceOfComputerProgramming/SCICO-D-22-00082/search"
)

// SearchTreeToGraphviz returns a graphviz graph representation of the search
// tree under the given root. Every tree node becomes one graph node showing
// its player, label, and word set; edges carry the (action, increment) pair
// that leads to the child. Canceled nodes point at their dominating ancestor
// with a dashed edge.
func SearchTreeToGraphviz(root *search.Node) (*gv.Graph, error) {
	g := gv.NewGraph()
	if err := g.SetName("searchtree"); err != nil {
		return nil, err
	}
	if err := g.SetDir(true); err != nil {
		return nil, err
	}

	ids := make(map[*search.Node]string)
	root.Walk(func(n *search.Node) {
		ids[n] = fmt.Sprintf("n%d", len(ids))
	})

	var err error
	root.Walk(func(n *search.Node) {
		if err != nil {
			return
		}
		label := fmt.Sprintf("%s %s\n%s", n.Kind(), n.Label(), n.WordsKey())
		attrs := map[string]string{"label": fmt.Sprintf("%q", label)}
		if n.Kind() == search.AndNode {
			attrs["shape"] = "box"
		}
		if err = g.AddNode("searchtree", ids[n], attrs); err != nil {
			return
		}
		if parent := n.Parent(); parent != nil {
			key := n.Incoming()
			edgeAttrs := map[string]string{
				"label": fmt.Sprintf("\"(%s, %d)\"", key.Action, key.Increment),
			}
			if err = g.AddEdge(ids[parent], ids[n], true, edgeAttrs); err != nil {
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}

	root.Walk(func(n *search.Node) {
		if err != nil {
			return
		}
		if n.Label() != search.LabelCanceled || n.Dominator() == nil {
			return
		}
		edgeAttrs := map[string]string{"style": "dashed", "constraint": "false"}
		err = g.AddEdge(ids[n], ids[n.Dominator()], true, edgeAttrs)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// TAToGraphviz returns a graphviz graph representation of the timed
// automaton. Final locations are drawn as double circles; edges show the
// symbol, the guards, and the clock resets of each transition.
func TAToGraphviz(ta *automata.TimedAutomaton) (*gv.Graph, error) {
	g := gv.NewGraph()
	if err := g.SetName("ta"); err != nil {
		return nil, err
	}
	if err := g.SetDir(true); err != nil {
		return nil, err
	}

	ids := make(map[string]string, len(ta.Locations()))
	for i, location := range ta.Locations() {
		ids[location] = fmt.Sprintf("l%d", i)
		shape := "circle"
		if ta.IsFinalLocation(location) {
			shape = "doublecircle"
		}
		attrs := map[string]string{
			"label": fmt.Sprintf("%q", location),
			"shape": shape,
		}
		if err := g.AddNode("ta", ids[location], attrs); err != nil {
			return nil, err
		}
	}
	if err := g.AddNode("ta", "init", map[string]string{"shape": "point", "label": "\"\""}); err != nil {
		return nil, err
	}
	if err := g.AddEdge("init", ids[ta.InitialLocation()], true, nil); err != nil {
		return nil, err
	}

	for _, transition := range ta.Transitions() {
		label := transition.Symbol
		for _, guard := range transition.Guards {
			label += fmt.Sprintf("\n%s %s", guard.Clock, guard.Constraint)
		}
		for _, clock := range transition.Resets {
			label += fmt.Sprintf("\n%s := 0", clock)
		}
		edgeAttrs := map[string]string{"label": fmt.Sprintf("%q", label)}
		if err := g.AddEdge(ids[transition.Source], ids[transition.Target], true, edgeAttrs); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// WriteDOT writes the dot representation of the graph to the given path.
func WriteDOT(g *gv.Graph, path string) error {
	return os.WriteFile(path, []byte(g.String()), 0666)
}
