// Package flow compiles lowered statement trees into Mermaid flowchart
// diagrams.
//
// The generator walks each selected method body with a recursive statement
// visitor. Every statement handler attaches its nodes to the frontier it is
// given (the node representing "control is here") and returns the new
// frontier, so sequential statements chain without any branch-aware logic
// in callers. Branching constructs reconcile their branch frontiers through
// a merge node before returning.
package flow

import (
	"flowgen/internal/diagram"
	"flowgen/internal/stmt"
)

const (
	// maxDepth bounds visitor recursion; statements nested deeper degrade
	// to a single placeholder node.
	maxDepth = 10
	// maxHandlers bounds how many event-handler methods are auto-selected.
	maxHandlers = 10
)

// startStyle is the fill/stroke hint applied to every method start node.
const startStyle = "fill:#b3e6b3,stroke:#2d6a2d"

// DefaultEntryMethod is the conventionally named entry point diagrammed
// first when no explicit target is given.
const DefaultEntryMethod = "Page_Load"

// DefaultHandlerSuffixes is the suffix set identifying UI event-handler
// methods for auto-selection.
var DefaultHandlerSuffixes = []string{"_Click", "_Changed", "_SelectedIndexChanged", "_CheckedChanged"}

// Options configures a Generator. Zero values fall back to the defaults
// above.
type Options struct {
	// EntryMethod is the conventionally named entry method.
	EntryMethod string
	// HandlerSuffixes overrides the event-handler suffix set.
	HandlerSuffixes []string
	// Direction is the Mermaid flowchart direction (default "TD").
	Direction string
	// ServiceCall classifies calls for the service-call shape.
	ServiceCall ServiceCallPolicy
}

func (o Options) withDefaults() Options {
	if o.EntryMethod == "" {
		o.EntryMethod = DefaultEntryMethod
	}
	if o.HandlerSuffixes == nil {
		o.HandlerSuffixes = DefaultHandlerSuffixes
	}
	if o.Direction == "" {
		o.Direction = "TD"
	}
	if o.ServiceCall == nil {
		o.ServiceCall = DefaultServiceCallPolicy
	}
	return o
}

// Generator produces one diagram per Generate call. The node id counter
// and the processed-method set are created fresh at the start of each call,
// so a Generator can be reused and identical input always yields
// byte-identical output.
type Generator struct {
	opts      Options
	b         *diagram.Builder
	processed map[string]bool
}

// NewGenerator creates a generator with the given options.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts.withDefaults()}
}

// Generate compiles the class into a fenced Mermaid block. If target is
// non-empty only the exactly matching method is diagrammed; otherwise the
// entry method and up to maxHandlers event handlers are selected in
// declaration order. A nil class or an unmatched target degrades to a
// one-node placeholder diagram rather than an error.
func (g *Generator) Generate(class *stmt.Class, target string) string {
	g.b = diagram.NewBuilder()
	g.processed = make(map[string]bool)

	if class == nil {
		g.b.AddNode(diagram.ShapeAction, "No class found")
		return g.b.Render(g.opts.Direction)
	}

	roots := g.selectRoots(class, target)
	if target != "" && len(roots) == 0 {
		g.b.AddNode(diagram.ShapeAction, Sanitize("Method "+target+" not found", labelWidth))
		return g.b.Render(g.opts.Direction)
	}

	for _, m := range roots {
		if g.processed[m.Name] {
			continue
		}
		g.processed[m.Name] = true

		g.b.BeginSection()
		start := g.b.AddStyledNode(diagram.ShapeRounded, "Start: "+Sanitize(m.Name, labelWidth), startStyle)
		if m.HasBody {
			g.visitSequence(m.Body, start, 0)
		}
	}

	return g.b.Render(g.opts.Direction)
}

// selectRoots chooses which methods to diagram. With an explicit target it
// returns the single exact-name match or nothing. Otherwise it returns the
// entry method (if present) followed by handler-suffixed methods in
// declaration order, capped at maxHandlers; methods beyond the cap are
// silently omitted.
func (g *Generator) selectRoots(class *stmt.Class, target string) []stmt.Method {
	if target != "" {
		for _, m := range class.Methods {
			if m.Name == target {
				return []stmt.Method{m}
			}
		}
		return nil
	}

	var roots []stmt.Method
	for _, m := range class.Methods {
		if m.Name == g.opts.EntryMethod {
			roots = append(roots, m)
			break
		}
	}

	handlers := 0
	for _, m := range class.Methods {
		if m.Name == g.opts.EntryMethod {
			continue
		}
		if !g.isHandler(m.Name) {
			continue
		}
		if handlers >= maxHandlers {
			break
		}
		roots = append(roots, m)
		handlers++
	}

	return roots
}

func (g *Generator) isHandler(name string) bool {
	for _, suffix := range g.opts.HandlerSuffixes {
		if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}

// NodeCount reports the number of nodes emitted by the last Generate call.
func (g *Generator) NodeCount() int {
	if g.b == nil {
		return 0
	}
	return g.b.NodeCount()
}

// EdgeCount reports the number of edges emitted by the last Generate call.
func (g *Generator) EdgeCount() int {
	if g.b == nil {
		return 0
	}
	return g.b.EdgeCount()
}
