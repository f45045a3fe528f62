// Package stmt defines the statement model that the flow generator consumes.
//
// The model is a closed set of statement variants lowered from the tree-sitter
// C# syntax tree. Variants the lowerer does not recognize are preserved as
// Unknown rather than dropped, so every source statement surfaces in the
// diagram one way or another. Statements are built once by the lowerer and
// treated as read-only by everything downstream.
package stmt

// Statement is the closed set of statement variants. The unexported marker
// method seals the set to this package; the flow visitor type-switches over
// the concrete types and routes anything else to the Unknown fallback.
type Statement interface {
	stmt()
}

// If is a conditional with a then-branch and an optional else-branch.
// Else is nil when the conditional has no else clause; a present but empty
// else clause is a non-nil empty slice.
type If struct {
	Cond string
	Then []Statement
	Else []Statement
}

// For is a counted loop. Cond is empty when the loop header omits a
// condition (`for (;;)`).
type For struct {
	Cond string
	Body []Statement
}

// While is a condition-tested loop.
type While struct {
	Cond string
	Body []Statement
}

// ForEach is an iteration over a collection expression.
type ForEach struct {
	Collection string
	Body       []Statement
}

// Case is one arm of a Switch. A default label has Default set and an
// empty Label.
type Case struct {
	Label   string
	Default bool
	Body    []Statement
}

// Switch is a multiway branch over a selector expression. Cases appear in
// declaration order.
type Switch struct {
	Selector string
	Cases    []Case
}

// Catch is one handler clause of a Try. Type is empty for an untyped
// catch-all clause.
type Catch struct {
	Type string
	Body []Statement
}

// Try is a protected block with zero or more handler clauses and an
// optional finally block. Finally is nil when absent; a present but empty
// finally block is a non-nil empty slice.
type Try struct {
	Body    []Statement
	Catches []Catch
	Finally []Statement
}

// Return is a return statement. Expr is empty for a bare `return;`.
type Return struct {
	Expr string
}

// Expr is a bare expression statement: a call, an assignment, or anything
// else evaluated for effect. For calls, CallName holds the resolved display
// name: the member name for a member-access call, the identifier for a plain
// call, or the raw call text when neither applies.
type Expr struct {
	Text     string
	IsCall   bool
	CallName string
}

// Decl is a local variable declaration (identifier plus initializer).
type Decl struct {
	Text string
}

// Block is a nested statement sequence with no control semantics of its own.
type Block struct {
	Body []Statement
}

// Unknown preserves a statement kind outside the recognized taxonomy.
// Kind is the raw grammar node type.
type Unknown struct {
	Kind string
}

func (*If) stmt()      {}
func (*For) stmt()     {}
func (*While) stmt()   {}
func (*ForEach) stmt() {}
func (*Switch) stmt()  {}
func (*Try) stmt()     {}
func (*Return) stmt()  {}
func (*Expr) stmt()    {}
func (*Decl) stmt()    {}
func (*Block) stmt()   {}
func (*Unknown) stmt() {}

// Method is a method declaration grouped under a Class. Body is nil when
// the declaration has no body (abstract or partial declarations).
type Method struct {
	Name    string
	HasBody bool
	Body    []Statement
}

// Class is the container the method selector works over: the first
// class-like declaration of a source unit and its methods in declaration
// order.
type Class struct {
	Name    string
	Methods []Method
}
