package flow

import (
	"fmt"
	"strings"
	"testing"

	"flowgen/internal/stmt"
)

func call(name string) *stmt.Expr {
	return &stmt.Expr{Text: name + "()", IsCall: true, CallName: name}
}

func singleMethod(name string, body ...stmt.Statement) *stmt.Class {
	return &stmt.Class{
		Name:    "Fixture",
		Methods: []stmt.Method{{Name: name, HasBody: true, Body: body}},
	}
}

func TestGenerateNoClass(t *testing.T) {
	out := NewGenerator(Options{}).Generate(nil, "")
	if !strings.Contains(out, "No class found") {
		t.Errorf("expected placeholder diagram:\n%s", out)
	}
	if !strings.HasPrefix(out, "```mermaid\nflowchart TD\n") {
		t.Errorf("placeholder diagram must keep the preamble:\n%s", out)
	}
}

func TestGenerateTargetNotFound(t *testing.T) {
	class := singleMethod("Real", call("doWork"))
	out := NewGenerator(Options{}).Generate(class, "Imaginary")
	if !strings.Contains(out, "Method Imaginary not found") {
		t.Errorf("expected not-found placeholder:\n%s", out)
	}
	if strings.Contains(out, "Start:") {
		t.Errorf("no method should be diagrammed:\n%s", out)
	}
}

// Mirrors the canonical shape for a conditional without an else branch:
// decision, Yes junction with the action, empty No junction, and a merge
// fed by both sides.
func TestGenerateIfWithoutElse(t *testing.T) {
	class := singleMethod("Check", &stmt.If{Cond: "!flag", Then: []stmt.Statement{call("doWork")}})
	out := NewGenerator(Options{}).Generate(class, "Check")

	for _, want := range []string{
		`N1("Start: Check")`,
		`N2{"!flag"}`,
		"N2 -->|Yes| N3",
		`N4["doWork#40;#41;"]`,
		"N2 -->|No| N5",
		"N4 --> N6",
		"N5 --> N6",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q:\n%s", want, out)
		}
	}

	if n := strings.Count(out, "-->|No|"); n != 1 {
		t.Errorf("expected exactly one No edge, got %d", n)
	}
}

func TestGenerateReturnOnly(t *testing.T) {
	class := singleMethod("Lookup", &stmt.Return{Expr: "result"})
	out := NewGenerator(Options{}).Generate(class, "Lookup")

	if !strings.Contains(out, `N2("Return: result")`) {
		t.Errorf("expected terminal return node:\n%s", out)
	}
	if !strings.Contains(out, "N1 --> N2") {
		t.Errorf("return must attach to the start node:\n%s", out)
	}
	if strings.Contains(out, `[" "]`) {
		t.Errorf("no junction or merge node expected:\n%s", out)
	}
}

func TestGenerateBareReturn(t *testing.T) {
	class := singleMethod("Bail", &stmt.Return{})
	out := NewGenerator(Options{}).Generate(class, "Bail")
	if !strings.Contains(out, "Return: void") {
		t.Errorf("bare return must render as void:\n%s", out)
	}
}

// A return does not stop the surrounding sequence: statements after it
// attach to the return node, so unreachable code is still drawn.
func TestGenerateStatementsAfterReturn(t *testing.T) {
	class := singleMethod("M", &stmt.Return{Expr: "x"}, call("afterwards"))
	out := NewGenerator(Options{}).Generate(class, "M")
	if !strings.Contains(out, `N3["afterwards#40;#41;"]`) {
		t.Errorf("statement after return must still be drawn:\n%s", out)
	}
	if !strings.Contains(out, "N2 --> N3") {
		t.Errorf("statement after return attaches to the return node:\n%s", out)
	}
}

func TestGenerateLoops(t *testing.T) {
	class := singleMethod("M",
		&stmt.While{Cond: "busy", Body: []stmt.Statement{call("wait")}},
	)
	out := NewGenerator(Options{}).Generate(class, "M")

	for _, want := range []string{
		`N2{"While: busy"}`,
		"N2 -->|Loop| N3",
		"N4 --> N2", // back-edge from the body frontier
		"N2 -->|Exit| N5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateForWithoutCondition(t *testing.T) {
	class := singleMethod("M", &stmt.For{Body: []stmt.Statement{call("step")}})
	out := NewGenerator(Options{}).Generate(class, "M")
	if !strings.Contains(out, `{"For: loop"}`) {
		t.Errorf("condition-less for must use the placeholder literal:\n%s", out)
	}
}

func TestGenerateForEach(t *testing.T) {
	class := singleMethod("M", &stmt.ForEach{Collection: "cart.Items", Body: []stmt.Statement{call("add")}})
	out := NewGenerator(Options{}).Generate(class, "M")

	for _, want := range []string{`{"ForEach: cart.Items"}`, "-->|Each|", "-->|Done|"} {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateSwitch(t *testing.T) {
	class := singleMethod("M", &stmt.Switch{
		Selector: "status",
		Cases: []stmt.Case{
			{Label: "1", Body: []stmt.Statement{call("accept")}},
			{Label: "2", Body: []stmt.Statement{}}, // empty case still reaches the merge
			{Default: true, Body: []stmt.Statement{call("reject")}},
		},
	})
	out := NewGenerator(Options{}).Generate(class, "M")

	// N1 start, N2 switch, N3 case-1 junction, N4 accept, N5 case-2
	// junction, N6 default junction, N7 reject, N8 merge.
	for _, want := range []string{
		`N2{"Switch: status"}`,
		"N2 -->|1| N3",
		"N2 -->|2| N5",
		"N2 -->|default| N6",
		"N4 --> N8",
		"N5 --> N8", // empty case's junction feeds the merge
		"N7 --> N8",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateTryWithFinally(t *testing.T) {
	class := singleMethod("M",
		&stmt.Try{
			Body:    []stmt.Statement{call("save")},
			Catches: []stmt.Catch{{Type: "SqlException", Body: []stmt.Statement{call("rollback")}}},
			Finally: []stmt.Statement{call("close")},
		},
		call("done"),
	)
	out := NewGenerator(Options{}).Generate(class, "M")

	// N1 start, N2 try, N3 save, N4 catch junction, N5 rollback,
	// N6 finally, N7 close, N8 done.
	for _, want := range []string{
		`N2["Try Block"]`,
		"N2 -.->|Catch: SqlException| N4",
		"N3 --> N6",
		"N5 --> N6",
		`N6["Finally"]`,
		"N7 --> N8", // finally's frontier is the try's frontier
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q:\n%s", want, out)
		}
	}

	// With a finally present there is no separate merge node: the only
	// junction in this diagram is the catch entry.
	if n := strings.Count(out, `[" "]`); n != 1 {
		t.Errorf("expected exactly 1 junction node, got %d:\n%s", n, out)
	}
}

func TestGenerateTryWithoutFinally(t *testing.T) {
	class := singleMethod("M", &stmt.Try{
		Body:    []stmt.Statement{call("save")},
		Catches: []stmt.Catch{{Body: []stmt.Statement{call("log")}}},
	})
	out := NewGenerator(Options{}).Generate(class, "M")

	if !strings.Contains(out, "Catch: Exception") {
		t.Errorf("untyped catch must use the generic label:\n%s", out)
	}
	// N3 save and N5 log both fan into the merge N6.
	if !strings.Contains(out, "N3 --> N6") || !strings.Contains(out, "N5 --> N6") {
		t.Errorf("try and catch frontiers must merge:\n%s", out)
	}
}

func TestGenerateServiceCallShapes(t *testing.T) {
	class := singleMethod("M",
		&stmt.Expr{Text: "orderServiceClient.Submit()", IsCall: true, CallName: "SubmitToService"},
		&stmt.Expr{Text: "Helpers.Run(x)", IsCall: true, CallName: "Util.Helpers.Run"},
		&stmt.Expr{Text: "var x = new Builder().Make()", IsCall: true, CallName: "Make"},
		call("plainCall"),
	)
	out := NewGenerator(Options{}).Generate(class, "M")

	for _, want := range []string{
		`[["Service: SubmitToService"]]`, // name hint
		`[["Service: Util.Helpers.Run"]]`, // dotted resolved name
		`[["Service: Make"]]`,             // object construction in call text
		`["plainCall#40;#41;"]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diagram missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateDepthCap(t *testing.T) {
	// Build a chain of nested ifs 14 deep; everything past depth 10 must
	// collapse into a single placeholder per branch point.
	inner := stmt.Statement(call("bottom"))
	for i := 0; i < 14; i++ {
		inner = &stmt.If{Cond: fmt.Sprintf("c%d", i), Then: []stmt.Statement{inner}}
	}
	class := singleMethod("Deep", inner)
	out := NewGenerator(Options{}).Generate(class, "Deep")

	if !strings.Contains(out, "Truncated: too deeply nested") {
		t.Errorf("expected truncation placeholder:\n%s", out)
	}
	if strings.Contains(out, "bottom") {
		t.Errorf("statement below the depth cap must not be visited:\n%s", out)
	}
}

func TestGenerateBlocksAreDepthTransparent(t *testing.T) {
	// Compound blocks delegate at the same depth, so even a deep stack of
	// bare blocks never triggers truncation.
	inner := stmt.Statement(call("bottom"))
	for i := 0; i < 30; i++ {
		inner = &stmt.Block{Body: []stmt.Statement{inner}}
	}
	class := singleMethod("Blocky", inner)
	out := NewGenerator(Options{}).Generate(class, "Blocky")

	if strings.Contains(out, "Truncated") {
		t.Errorf("blocks must not count toward nesting depth:\n%s", out)
	}
	if !strings.Contains(out, "bottom#40;#41;") {
		t.Errorf("innermost statement must be drawn:\n%s", out)
	}
}

func TestGenerateHandlerCap(t *testing.T) {
	class := &stmt.Class{Name: "Page"}
	class.Methods = append(class.Methods, stmt.Method{Name: "Page_Load", HasBody: true})
	for i := 1; i <= 15; i++ {
		class.Methods = append(class.Methods, stmt.Method{
			Name:    fmt.Sprintf("Btn%d_Click", i),
			HasBody: true,
		})
	}

	out := NewGenerator(Options{}).Generate(class, "")

	if n := strings.Count(out, "Start: "); n != 11 {
		t.Errorf("expected 11 start nodes (entry + 10 handlers), got %d", n)
	}
	if !strings.Contains(out, "Start: Btn10_Click") {
		t.Error("handler 10 should be included")
	}
	if strings.Contains(out, "Start: Btn11_Click") {
		t.Error("handlers beyond the cap must be silently omitted")
	}
	if strings.Index(out, "Start: Page_Load") > strings.Index(out, "Start: Btn1_Click") {
		t.Error("the entry method must come first")
	}
}

func TestGenerateSkipsDuplicateMethodNames(t *testing.T) {
	class := &stmt.Class{
		Name: "Page",
		Methods: []stmt.Method{
			{Name: "Save_Click", HasBody: true, Body: []stmt.Statement{call("first")}},
			{Name: "Save_Click", HasBody: true, Body: []stmt.Statement{call("second")}},
		},
	}
	out := NewGenerator(Options{}).Generate(class, "")

	if n := strings.Count(out, "Start: Save_Click"); n != 1 {
		t.Errorf("duplicate method names must be diagrammed once, got %d", n)
	}
	if strings.Contains(out, "second") {
		t.Errorf("second occurrence must be skipped:\n%s", out)
	}
}

func TestGenerateMethodWithoutBody(t *testing.T) {
	class := &stmt.Class{
		Name:    "Svc",
		Methods: []stmt.Method{{Name: "Run_Click", HasBody: false}},
	}
	out := NewGenerator(Options{}).Generate(class, "")

	if !strings.Contains(out, "Start: Run_Click") {
		t.Errorf("bodiless method still gets its start node:\n%s", out)
	}
	if strings.Count(out, "N2") != 0 {
		t.Errorf("bodiless method must emit only the start node:\n%s", out)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	class := singleMethod("M",
		&stmt.If{Cond: "ready", Then: []stmt.Statement{call("go")}},
		&stmt.Return{Expr: "total"},
	)
	g := NewGenerator(Options{})
	first := g.Generate(class, "M")
	second := g.Generate(class, "M")
	if first != second {
		t.Error("identical input must yield byte-identical output")
	}
}

func TestGenerateCountsMatchEmission(t *testing.T) {
	class := singleMethod("M", call("a"), call("b"))
	g := NewGenerator(Options{})
	out := g.Generate(class, "M")

	// Start + two actions; counts exposed for run history must agree with
	// the rendered diagram.
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	for i := 1; i <= 3; i++ {
		if !strings.Contains(out, fmt.Sprintf("N%d", i)) {
			t.Errorf("diagram missing node N%d:\n%s", i, out)
		}
	}
}

func TestGenerateCustomEntryMethod(t *testing.T) {
	class := &stmt.Class{
		Name:    "Job",
		Methods: []stmt.Method{{Name: "Execute", HasBody: true, Body: []stmt.Statement{call("run")}}},
	}
	out := NewGenerator(Options{EntryMethod: "Execute"}).Generate(class, "")
	if !strings.Contains(out, "Start: Execute") {
		t.Errorf("configured entry method must be selected:\n%s", out)
	}
}
