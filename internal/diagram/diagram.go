// Package diagram accumulates flowchart nodes and edges and renders them as
// a fenced Mermaid block.
//
// The Builder is append-only: nodes and edges are never removed or mutated
// after emission, and node identifiers come from a monotonic counter that is
// never reused within one builder. One builder corresponds to one diagram
// generation run.
package diagram

import "fmt"

// Shape classifies a node's rendered outline.
type Shape string

const (
	// ShapeRounded is used for method start nodes and return nodes.
	ShapeRounded Shape = "rounded"
	// ShapeDecision is the diamond used for conditionals, loops and switches.
	ShapeDecision Shape = "decision"
	// ShapeAction is the plain rectangle used for ordinary statements.
	ShapeAction Shape = "action"
	// ShapeService is the double-bordered rectangle marking service calls.
	ShapeService Shape = "service"
	// ShapeJunction is an unlabeled structural node used to open branches
	// and merge them back together.
	ShapeJunction Shape = "junction"
)

// Node is one emitted diagram node. Style optionally carries a Mermaid
// fill/stroke directive for the node.
type Node struct {
	ID    string
	Label string
	Shape Shape
	Style string
}

// Edge connects two nodes. Dashed edges mark exceptional (catch)
// transitions.
type Edge struct {
	From   string
	To     string
	Label  string
	Dashed bool
}

// section groups the nodes and edges emitted for one method so the
// renderer can separate methods with blank lines.
type section struct {
	nodes []Node
	edges []Edge
}

// Builder accumulates diagram entities for a single generation run.
type Builder struct {
	seq      int
	sections []section
}

// NewBuilder creates an empty builder with one open section.
func NewBuilder() *Builder {
	return &Builder{sections: []section{{}}}
}

// BeginSection starts a new method section. Subsequent nodes and edges are
// grouped under it. An immediately preceding empty section is reused so
// renders never contain empty gaps.
func (b *Builder) BeginSection() {
	last := &b.sections[len(b.sections)-1]
	if len(last.nodes) == 0 && len(last.edges) == 0 {
		return
	}
	b.sections = append(b.sections, section{})
}

// AddNode emits a node with a fresh identifier and returns the id.
func (b *Builder) AddNode(shape Shape, label string) string {
	return b.AddStyledNode(shape, label, "")
}

// AddStyledNode emits a node carrying a fill/stroke style hint.
func (b *Builder) AddStyledNode(shape Shape, label, style string) string {
	b.seq++
	id := fmt.Sprintf("N%d", b.seq)
	cur := &b.sections[len(b.sections)-1]
	cur.nodes = append(cur.nodes, Node{ID: id, Label: label, Shape: shape, Style: style})
	return id
}

// Connect emits an unlabeled edge.
func (b *Builder) Connect(from, to string) {
	b.ConnectLabeled(from, to, "")
}

// ConnectLabeled emits an edge with a label.
func (b *Builder) ConnectLabeled(from, to, label string) {
	cur := &b.sections[len(b.sections)-1]
	cur.edges = append(cur.edges, Edge{From: from, To: to, Label: label})
}

// ConnectDashed emits a dashed edge, used for catch transitions.
func (b *Builder) ConnectDashed(from, to, label string) {
	cur := &b.sections[len(b.sections)-1]
	cur.edges = append(cur.edges, Edge{From: from, To: to, Label: label, Dashed: true})
}

// NodeCount returns the number of nodes emitted so far.
func (b *Builder) NodeCount() int {
	n := 0
	for _, s := range b.sections {
		n += len(s.nodes)
	}
	return n
}

// EdgeCount returns the number of edges emitted so far.
func (b *Builder) EdgeCount() int {
	n := 0
	for _, s := range b.sections {
		n += len(s.edges)
	}
	return n
}

// Nodes returns all emitted nodes in emission order.
func (b *Builder) Nodes() []Node {
	var out []Node
	for _, s := range b.sections {
		out = append(out, s.nodes...)
	}
	return out
}

// Edges returns all emitted edges in emission order.
func (b *Builder) Edges() []Edge {
	var out []Edge
	for _, s := range b.sections {
		out = append(out, s.edges...)
	}
	return out
}
