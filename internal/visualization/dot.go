// Package visualization renders scenarios in graph output formats.
package visualization

import (
	"fmt"
	"strings"

	"github.com/nvandessel/beliefsim/internal/scenario"
)

// RenderDOT produces a Graphviz DOT representation of a scenario: the
// social network as one rank of agent nodes joined by weighted directed
// friendship edges, and the belief vocabulary as a second rank joined
// by its nonzero pairwise relationships. Output order follows the
// scenario's declaration order, so the same file always renders the
// same text.
func RenderDOT(s *scenario.Scenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", s.Name)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  subgraph cluster_agents {\n")
	b.WriteString("    label=\"agents\";\n")
	b.WriteString("    node [shape=ellipse, style=filled, fillcolor=lightsteelblue];\n")
	for _, a := range s.Agents {
		label := truncate(a.Name, 40)
		if a.Performed != "" {
			label += "\\nperforms " + truncate(a.Performed, 40)
		}
		fmt.Fprintf(&b, "    %q [label=%q];\n", "agent:"+a.Name, label)
	}
	b.WriteString("  }\n\n")

	for _, a := range s.Agents {
		for _, f := range a.Friends {
			style := "solid"
			if f.Weight < 0 {
				style = "dashed"
			}
			fmt.Fprintf(&b, "  %q -> %q [label=\"%.2f\", style=%s];\n",
				"agent:"+a.Name, "agent:"+f.Agent, f.Weight, style)
		}
	}
	b.WriteString("\n")

	b.WriteString("  subgraph cluster_beliefs {\n")
	b.WriteString("    label=\"beliefs\";\n")
	b.WriteString("    node [shape=box, style=filled, fillcolor=wheat];\n")
	for _, bel := range s.Beliefs {
		fmt.Fprintf(&b, "    %q [label=%q];\n", "belief:"+bel.Name, truncate(bel.Name, 40))
	}
	b.WriteString("  }\n\n")

	for _, bel := range s.Beliefs {
		// Iterate targets in declaration order, not map order.
		for _, other := range s.Beliefs {
			w, ok := bel.Relationships[other.Name]
			if !ok || w == 0 {
				continue
			}
			style := "solid"
			if w < 0 {
				style = "dashed"
			}
			fmt.Fprintf(&b, "  %q -> %q [label=\"%.2f\", style=%s, color=gray40];\n",
				"belief:"+bel.Name, "belief:"+other.Name, w, style)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// truncate shortens a string to maxLen runes, appending an ellipsis.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
