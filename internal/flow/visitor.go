package flow

import (
	"strings"

	"flowgen/internal/diagram"
	"flowgen/internal/stmt"
)

// visitSequence folds visit over a statement sequence left to right,
// threading the frontier, and returns the final frontier.
func (g *Generator) visitSequence(stmts []stmt.Statement, parent string, depth int) string {
	frontier := parent
	for _, s := range stmts {
		frontier = g.visit(s, frontier, depth)
	}
	return frontier
}

// visit emits the diagram nodes and edges for one statement attached to the
// parent frontier and returns the new frontier. Past maxDepth it emits a
// single truncation placeholder and does not descend further, bounding both
// stack growth and diagram size on pathologically nested input.
func (g *Generator) visit(s stmt.Statement, parent string, depth int) string {
	if depth > maxDepth {
		id := g.b.AddNode(diagram.ShapeAction, "Truncated: too deeply nested")
		g.b.Connect(parent, id)
		return id
	}

	switch t := s.(type) {
	case *stmt.If:
		return g.visitIf(t, parent, depth)
	case *stmt.For:
		return g.visitLoop("For: ", t.Cond, t.Body, "Loop", "Exit", parent, depth)
	case *stmt.While:
		return g.visitLoop("While: ", t.Cond, t.Body, "Loop", "Exit", parent, depth)
	case *stmt.ForEach:
		return g.visitLoop("ForEach: ", t.Collection, t.Body, "Each", "Done", parent, depth)
	case *stmt.Switch:
		return g.visitSwitch(t, parent, depth)
	case *stmt.Try:
		return g.visitTry(t, parent, depth)
	case *stmt.Return:
		return g.visitReturn(t, parent)
	case *stmt.Expr:
		return g.visitExpr(t, parent)
	case *stmt.Decl:
		id := g.b.AddNode(diagram.ShapeAction, Sanitize(t.Text, labelWidth))
		g.b.Connect(parent, id)
		return id
	case *stmt.Block:
		// Structurally transparent: same depth, no node of its own.
		return g.visitSequence(t.Body, parent, depth)
	case *stmt.Unknown:
		id := g.b.AddNode(diagram.ShapeAction, Sanitize(t.Kind, labelWidth))
		g.b.Connect(parent, id)
		return id
	default:
		id := g.b.AddNode(diagram.ShapeAction, "unsupported statement")
		g.b.Connect(parent, id)
		return id
	}
}

// visitIf emits a decision node with Yes/No branch junctions and a merge
// node unifying both branch frontiers. An absent else branch contributes an
// empty No junction without recursion.
func (g *Generator) visitIf(t *stmt.If, parent string, depth int) string {
	dec := g.b.AddNode(diagram.ShapeDecision, Sanitize(t.Cond, condWidth))
	g.b.Connect(parent, dec)

	thenJct := g.b.AddNode(diagram.ShapeJunction, "")
	g.b.ConnectLabeled(dec, thenJct, "Yes")
	trueFront := g.visitSequence(t.Then, thenJct, depth+1)

	var falseFront string
	if t.Else != nil {
		elseJct := g.b.AddNode(diagram.ShapeJunction, "")
		g.b.ConnectLabeled(dec, elseJct, "No")
		falseFront = g.visitSequence(t.Else, elseJct, depth+1)
	} else {
		falseFront = g.b.AddNode(diagram.ShapeJunction, "")
		g.b.ConnectLabeled(dec, falseFront, "No")
	}

	merge := g.b.AddNode(diagram.ShapeJunction, "")
	g.b.Connect(trueFront, merge)
	g.b.Connect(falseFront, merge)
	return merge
}

// visitLoop emits a decision-shaped loop head, visits the body once, closes
// the back-edge into the head, and returns a fresh exit node. The diagram
// shows one iteration's flow plus the back-edge, not unrolled iterations.
func (g *Generator) visitLoop(prefix, cond string, body []stmt.Statement, bodyLabel, exitLabel, parent string, depth int) string {
	if cond == "" {
		cond = "loop"
	}
	head := g.b.AddNode(diagram.ShapeDecision, prefix+Sanitize(cond, condWidth))
	g.b.Connect(parent, head)

	bodyJct := g.b.AddNode(diagram.ShapeJunction, "")
	g.b.ConnectLabeled(head, bodyJct, bodyLabel)
	bodyFront := g.visitSequence(body, bodyJct, depth+1)
	g.b.Connect(bodyFront, head)

	exit := g.b.AddNode(diagram.ShapeJunction, "")
	g.b.ConnectLabeled(head, exit, exitLabel)
	return exit
}

// visitSwitch emits a decision node with one labeled edge per case (in
// declaration order) into a fresh junction, visits each case body, and fans
// every case frontier into a single merge node. An empty case still
// contributes its junction to the merge; fallthrough is not modeled.
func (g *Generator) visitSwitch(t *stmt.Switch, parent string, depth int) string {
	dec := g.b.AddNode(diagram.ShapeDecision, "Switch: "+Sanitize(t.Selector, condWidth))
	g.b.Connect(parent, dec)

	var fronts []string
	for _, c := range t.Cases {
		label := "default"
		if !c.Default {
			label = Sanitize(c.Label, labelWidth)
		}
		jct := g.b.AddNode(diagram.ShapeJunction, "")
		g.b.ConnectLabeled(dec, jct, label)
		fronts = append(fronts, g.visitSequence(c.Body, jct, depth+1))
	}

	merge := g.b.AddNode(diagram.ShapeJunction, "")
	if len(fronts) == 0 {
		// Caseless switch: keep the merge reachable.
		g.b.Connect(dec, merge)
	}
	for _, f := range fronts {
		g.b.Connect(f, merge)
	}
	return merge
}

// visitTry emits the try node, visits the protected block, then each
// handler behind a dashed Catch edge. With a finally block present, every
// collected frontier feeds the finally node and the finally block's own
// frontier is returned directly, with no separate merge node; otherwise
// the frontiers fan into a merge node.
func (g *Generator) visitTry(t *stmt.Try, parent string, depth int) string {
	try := g.b.AddNode(diagram.ShapeAction, "Try Block")
	g.b.Connect(parent, try)

	fronts := []string{g.visitSequence(t.Body, try, depth+1)}

	for _, c := range t.Catches {
		typ := c.Type
		if typ == "" {
			typ = "Exception"
		}
		jct := g.b.AddNode(diagram.ShapeJunction, "")
		g.b.ConnectDashed(try, jct, "Catch: "+Sanitize(typ, labelWidth))
		fronts = append(fronts, g.visitSequence(c.Body, jct, depth+1))
	}

	if t.Finally != nil {
		fin := g.b.AddNode(diagram.ShapeAction, "Finally")
		for _, f := range fronts {
			g.b.Connect(f, fin)
		}
		return g.visitSequence(t.Finally, fin, depth+1)
	}

	merge := g.b.AddNode(diagram.ShapeJunction, "")
	for _, f := range fronts {
		g.b.Connect(f, merge)
	}
	return merge
}

// visitReturn emits a terminal-shaped node. Traversal of the surrounding
// sequence is not halted: any following statements attach to the return
// node, so unreachable code still gets drawn.
func (g *Generator) visitReturn(t *stmt.Return, parent string) string {
	expr := t.Expr
	if expr == "" {
		expr = "void"
	}
	id := g.b.AddNode(diagram.ShapeRounded, "Return: "+Sanitize(expr, labelWidth))
	g.b.Connect(parent, id)
	return id
}

// visitExpr emits a call or bare expression. Calls with a dotted resolved
// name, or ones the service-call policy flags, get the double-bordered
// service shape.
func (g *Generator) visitExpr(t *stmt.Expr, parent string) string {
	var id string
	switch {
	case t.IsCall && (strings.Contains(t.CallName, ".") || g.opts.ServiceCall(t.CallName, t.Text)):
		id = g.b.AddNode(diagram.ShapeService, "Service: "+Sanitize(t.CallName, labelWidth))
	case t.IsCall:
		id = g.b.AddNode(diagram.ShapeAction, Sanitize(t.CallName+"()", labelWidth))
	default:
		id = g.b.AddNode(diagram.ShapeAction, Sanitize(t.Text, labelWidth))
	}
	g.b.Connect(parent, id)
	return id
}
