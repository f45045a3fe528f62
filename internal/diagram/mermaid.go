package diagram

import (
	"fmt"
	"strings"
)

// Render produces the fenced Mermaid block for everything the builder has
// accumulated. The direction string is the flowchart direction declaration
// ("TD", "LR"). Method sections are separated by blank lines. Within a
// section the order is node lines, style directives, then edge lines.
func (b *Builder) Render(direction string) string {
	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString("flowchart " + direction + "\n")

	for i, s := range b.sections {
		if len(s.nodes) == 0 && len(s.edges) == 0 {
			continue
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, n := range s.nodes {
			sb.WriteString("    " + nodeDef(n) + "\n")
		}
		for _, n := range s.nodes {
			if n.Style != "" {
				sb.WriteString(fmt.Sprintf("    style %s %s\n", n.ID, n.Style))
			}
		}
		for _, e := range s.edges {
			sb.WriteString("    " + edgeDef(e) + "\n")
		}
	}

	sb.WriteString("```\n")
	return sb.String()
}

// nodeDef returns the Mermaid node definition line for a node, choosing
// shape delimiters by shape kind.
func nodeDef(n Node) string {
	switch n.Shape {
	case ShapeRounded:
		return fmt.Sprintf("%s(%q)", n.ID, n.Label)
	case ShapeDecision:
		return fmt.Sprintf("%s{%q}", n.ID, n.Label)
	case ShapeService:
		return fmt.Sprintf("%s[[%q]]", n.ID, n.Label)
	case ShapeJunction:
		return fmt.Sprintf("%s[\" \"]", n.ID)
	default:
		return fmt.Sprintf("%s[%q]", n.ID, n.Label)
	}
}

// edgeDef returns the Mermaid edge line for an edge. Dashed edges use the
// -.-> arrow variant.
func edgeDef(e Edge) string {
	arrow := "-->"
	if e.Dashed {
		arrow = "-.->"
	}
	if e.Label != "" {
		return fmt.Sprintf("%s %s|%s| %s", e.From, arrow, e.Label, e.To)
	}
	return fmt.Sprintf("%s %s %s", e.From, arrow, e.To)
}
