package trace

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/llxisdsh/dinex"
)

// stateColor maps a philosopher's state to its node fill.
func stateColor(s dinex.State) string {
	switch s {
	case dinex.Eating:
		return "green"
	case dinex.Hungry:
		return "yellow"
	default:
		return "cyan"
	}
}

// Dot renders the table as an undirected Graphviz graph: philosophers
// as circles filled by state, forks as points, fork i drawn between
// philosophers i and i+1. An eating philosopher's two fork edges are
// bold. Render ring-shaped with: dot -Kcirco -Tsvg.
func Dot(states []dinex.State) (string, error) {
	g := gographviz.NewEscape()
	if err := g.SetName("table"); err != nil {
		return "", err
	}
	if err := g.SetDir(false); err != nil {
		return "", err
	}

	n := len(states)
	for i, s := range states {
		err := g.AddNode("table", phil(i), map[string]string{
			"label":     fmt.Sprintf("P%d", i),
			"shape":     "circle",
			"style":     "filled",
			"fillcolor": stateColor(s),
		})
		if err != nil {
			return "", err
		}
	}
	for i := range n {
		err := g.AddNode("table", fork(i), map[string]string{
			"shape": "point",
		})
		if err != nil {
			return "", err
		}
	}

	// Fork i sits between philosophers i and i+1; a fork edge is bold
	// while the philosopher on its end is eating.
	for i := range n {
		if err := g.AddEdge(phil(i), fork(i), false, edgeAttrs(states[i])); err != nil {
			return "", err
		}
		next := (i + 1) % n
		if err := g.AddEdge(fork(i), phil(next), false, edgeAttrs(states[next])); err != nil {
			return "", err
		}
	}
	return g.String(), nil
}

func phil(i int) string { return fmt.Sprintf("p%d", i) }
func fork(i int) string { return fmt.Sprintf("f%d", i) }

func edgeAttrs(s dinex.State) map[string]string {
	if s == dinex.Eating {
		return map[string]string{"style": "bold"}
	}
	return nil
}
