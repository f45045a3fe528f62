package stmt

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"flowgen/internal/parser"
)

// Lowerer converts a parsed C# syntax tree into the statement model.
type Lowerer struct {
	result *parser.ParseResult
}

// NewLowerer creates a lowerer for the given parse result.
func NewLowerer(result *parser.ParseResult) *Lowerer {
	return &Lowerer{result: result}
}

// LowerFile locates the first class declaration in the parsed unit and
// lowers its methods. Returns nil if the unit contains no class declaration.
// Additional classes in the same unit are ignored.
func (l *Lowerer) LowerFile() *Class {
	classNode := l.result.FirstNodeByType("class_declaration")
	if classNode == nil {
		return nil
	}

	class := &Class{Name: l.text(classNode.ChildByFieldName("name"))}

	body := classNode.ChildByFieldName("body")
	if body == nil {
		return class
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() != "method_declaration" {
			continue
		}
		class.Methods = append(class.Methods, l.lowerMethod(child))
	}

	return class
}

// lowerMethod lowers a method_declaration node. Abstract and partial
// declarations have no body block; those produce HasBody=false.
func (l *Lowerer) lowerMethod(node *sitter.Node) Method {
	m := Method{Name: l.text(node.ChildByFieldName("name"))}

	body := node.ChildByFieldName("body")
	if body == nil {
		return m
	}

	m.HasBody = true
	m.Body = l.lowerBlock(body)
	return m
}

// lowerBlock lowers the statements of a block node in order.
func (l *Lowerer) lowerBlock(node *sitter.Node) []Statement {
	stmts := []Statement{}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		stmts = append(stmts, l.lowerStatement(child))
	}
	return stmts
}

// lowerBody lowers a statement position that may be either a block or a
// single statement (loop bodies, if branches without braces).
func (l *Lowerer) lowerBody(node *sitter.Node) []Statement {
	if node == nil {
		return []Statement{}
	}
	if node.Type() == "block" {
		return l.lowerBlock(node)
	}
	return []Statement{l.lowerStatement(node)}
}

// lowerStatement maps one grammar node to a statement variant. Node types
// outside the taxonomy lower to Unknown carrying the raw type name.
func (l *Lowerer) lowerStatement(node *sitter.Node) Statement {
	switch node.Type() {
	case "if_statement":
		return l.lowerIf(node)
	case "for_statement":
		return &For{
			Cond: l.text(node.ChildByFieldName("condition")),
			Body: l.lowerBody(node.ChildByFieldName("body")),
		}
	case "while_statement":
		return &While{
			Cond: l.text(node.ChildByFieldName("condition")),
			Body: l.lowerBody(node.ChildByFieldName("body")),
		}
	case "foreach_statement":
		return &ForEach{
			Collection: l.text(node.ChildByFieldName("right")),
			Body:       l.lowerBody(node.ChildByFieldName("body")),
		}
	case "switch_statement":
		return l.lowerSwitch(node)
	case "try_statement":
		return l.lowerTry(node)
	case "return_statement":
		ret := &Return{}
		if node.NamedChildCount() > 0 {
			ret.Expr = l.text(node.NamedChild(0))
		}
		return ret
	case "expression_statement":
		return l.lowerExpression(node)
	case "local_declaration_statement":
		return &Decl{Text: trimStatement(l.text(node))}
	case "block":
		return &Block{Body: l.lowerBlock(node)}
	default:
		return &Unknown{Kind: node.Type()}
	}
}

// lowerIf handles if/else chains. An `else if` arrives as an if_statement
// in the alternative position and lowers to a single-element else branch.
func (l *Lowerer) lowerIf(node *sitter.Node) Statement {
	out := &If{
		Cond: l.text(node.ChildByFieldName("condition")),
		Then: l.lowerBody(node.ChildByFieldName("consequence")),
	}
	if alt := node.ChildByFieldName("alternative"); alt != nil {
		out.Else = l.lowerBody(alt)
	}
	return out
}

// lowerSwitch lowers switch sections into flat cases. A section with
// multiple labels yields one case per label; the statements attach to the
// section's last label, earlier labels get empty bodies.
func (l *Lowerer) lowerSwitch(node *sitter.Node) Statement {
	out := &Switch{Selector: l.text(node.ChildByFieldName("value"))}

	body := node.ChildByFieldName("body")
	if body == nil {
		return out
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		section := body.NamedChild(i)
		if section.Type() != "switch_section" {
			continue
		}

		var labels []Case
		var stmts []Statement
		for j := 0; j < int(section.ChildCount()); j++ {
			child := section.Child(j)
			if !child.IsNamed() {
				if child.Type() == "default" {
					labels = append(labels, Case{Default: true})
				}
				continue
			}
			switch {
			case strings.HasSuffix(child.Type(), "_pattern"):
				labels = append(labels, Case{Label: l.text(child)})
			case child.Type() == "comment":
				// skip
			case child.Type() == "break_statement":
				// Section terminators carry no flow of their own; each case
				// already routes into the switch merge independently.
			default:
				stmts = append(stmts, l.lowerStatement(child))
			}
		}

		for k := range labels {
			if k == len(labels)-1 {
				labels[k].Body = stmts
			} else {
				labels[k].Body = []Statement{}
			}
			out.Cases = append(out.Cases, labels[k])
		}
	}

	return out
}

// lowerTry lowers a try statement with its catch clauses and optional
// finally clause.
func (l *Lowerer) lowerTry(node *sitter.Node) Statement {
	out := &Try{Body: l.lowerBody(node.ChildByFieldName("body"))}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "catch_clause":
			c := Catch{Body: l.lowerBody(child.ChildByFieldName("body"))}
			if decl := firstChildOfType(child, "catch_declaration"); decl != nil {
				c.Type = l.text(decl.ChildByFieldName("type"))
			}
			out.Catches = append(out.Catches, c)
		case "finally_clause":
			out.Finally = l.lowerBody(firstChildOfType(child, "block"))
		}
	}

	return out
}

// lowerExpression lowers an expression statement, resolving call display
// names for invocations.
func (l *Lowerer) lowerExpression(node *sitter.Node) Statement {
	text := trimStatement(l.text(node))
	if node.NamedChildCount() == 0 {
		return &Expr{Text: text}
	}

	inner := node.NamedChild(0)
	if inner.Type() != "invocation_expression" {
		return &Expr{Text: text}
	}

	return &Expr{Text: text, IsCall: true, CallName: l.callName(inner)}
}

// callName resolves the display name of an invocation: the member name for
// a member-access call, the identifier for a plain call, otherwise the raw
// call text.
func (l *Lowerer) callName(node *sitter.Node) string {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return trimStatement(l.text(node))
	}

	switch fn.Type() {
	case "member_access_expression":
		if name := fn.ChildByFieldName("name"); name != nil {
			return l.text(name)
		}
	case "identifier":
		return l.text(fn)
	}
	return trimStatement(l.text(node))
}

// text returns trimmed source text for a node, with a single enclosing
// parenthesis pair stripped when it wraps the whole expression.
func (l *Lowerer) text(node *sitter.Node) string {
	s := strings.TrimSpace(l.result.NodeText(node))
	if wrappedInParens(s) {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// wrappedInParens reports whether s is one balanced parenthesis group,
// i.e. the opening paren at position 0 closes at the final position.
func wrappedInParens(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

// trimStatement drops a trailing semicolon and surrounding whitespace.
func trimStatement(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
}

// firstChildOfType returns the first named child of the given type, or nil.
func firstChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}
