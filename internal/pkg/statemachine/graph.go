package statemachine

import (
	"fmt"
	"strings"
)

// DotGraph renders the configuration as a UML style Graphviz digraph.
// It is diagnostic output only.
func (m *Machine[S, T]) DotGraph() string {
	var b strings.Builder

	b.WriteString("digraph {\n")
	b.WriteString("compound=true;\n")
	b.WriteString("node [shape=Mrecord]\n")
	b.WriteString("rankdir=\"LR\"\n\n")

	written := make(map[string]struct{})
	writeNode := func(name string, exits []exitAction) {
		if _, ok := written[name]; ok {
			return
		}
		written[name] = struct{}{}

		label := name
		for _, exit := range exits {
			label += "|exit / " + exit.description
		}
		fmt.Fprintf(&b, "\"%s\" [label=\"%s\"];\n", name, label)
	}

	for _, state := range m.config.order {
		writeNode(state.String(), m.config.states[state].exits)
	}
	for _, state := range m.config.order {
		for _, row := range m.config.states[state].rows {
			writeNode(row.destination.String(), nil)
		}
	}
	b.WriteString("\n")

	for _, state := range m.config.order {
		for _, row := range m.config.states[state].rows {
			label := row.trigger.String()
			if row.guardDescription != "" {
				label += " [" + row.guardDescription + "]"
			}
			fmt.Fprintf(&b, "\"%s\" -> \"%s\" [style=\"solid\", label=\"%s\"];\n",
				state.String(), row.destination.String(), label)
		}
	}

	b.WriteString(" init [label=\"\", shape=point];\n")
	fmt.Fprintf(&b, " init -> \"%s\"[style = \"solid\"]\n", m.State().String())
	b.WriteString("}\n")

	return b.String()
}
