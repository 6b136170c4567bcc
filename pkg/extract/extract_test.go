package extract

import (
	"testing"

	"github.com/augurlabs/augur/pkg/parser"
)

func parseSource(t *testing.T, language parser.Language, source string) *parser.ParseResult {
	t.Helper()
	p := parser.New()
	defer p.Close()
	result, err := p.Parse([]byte(source), language, "test")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return result
}

func TestFunctionsGo(t *testing.T) {
	source := `package main

func add(a int, b int) int {
	return a + b
}

func noArgs() {}
`
	result := parseSource(t, parser.LangGo, source)
	funcs := Functions(result)

	if len(funcs) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(funcs))
	}
	if funcs[0].Name != "add" {
		t.Errorf("expected name add, got %q", funcs[0].Name)
	}
	if len(funcs[0].Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(funcs[0].Parameters))
	}
	if funcs[0].Parameters[0].Name != "a" || funcs[0].Parameters[0].Type != "int" {
		t.Errorf("unexpected first parameter: %+v", funcs[0].Parameters[0])
	}
	if funcs[0].StartLine != 3 || funcs[0].EndLine != 5 {
		t.Errorf("unexpected span: %d-%d", funcs[0].StartLine, funcs[0].EndLine)
	}
	if funcs[1].Name != "noArgs" {
		t.Errorf("expected name noArgs, got %q", funcs[1].Name)
	}
	if len(funcs[1].Parameters) != 0 {
		t.Errorf("expected no parameters, got %d", len(funcs[1].Parameters))
	}
}

func TestFunctionsAnonymous(t *testing.T) {
	source := `const f = function(x) { return x * 2 }
`
	result := parseSource(t, parser.LangJavaScript, source)
	funcs := Functions(result)

	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	if funcs[0].Name != "anonymous" {
		t.Errorf("expected anonymous, got %q", funcs[0].Name)
	}
	if len(funcs[0].Parameters) != 1 || funcs[0].Parameters[0].Name != "x" {
		t.Errorf("unexpected parameters: %+v", funcs[0].Parameters)
	}
}

func TestClassesPython(t *testing.T) {
	source := `class Account:
    def __init__(self, balance):
        self.balance = balance

    def deposit(self, amount):
        self.balance += amount
`
	result := parseSource(t, parser.LangPython, source)
	classes := Classes(result)

	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}
	cls := classes[0]
	if cls.Name != "Account" {
		t.Errorf("expected Account, got %q", cls.Name)
	}
	if len(cls.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(cls.Methods))
	}
	if cls.Methods[1].Name != "deposit" {
		t.Errorf("expected deposit, got %q", cls.Methods[1].Name)
	}
}

func TestClassesGo(t *testing.T) {
	source := `package main

type Point struct {
	X, Y  int
	Label string
}
`
	result := parseSource(t, parser.LangGo, source)
	classes := Classes(result)

	if len(classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes))
	}
	cls := classes[0]
	if cls.Name != "Point" {
		t.Errorf("expected Point, got %q", cls.Name)
	}
	if len(cls.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d: %+v", len(cls.Fields), cls.Fields)
	}
	if cls.Fields[0].Name != "X" || cls.Fields[0].Type != "int" {
		t.Errorf("unexpected first field: %+v", cls.Fields[0])
	}
	if cls.Fields[2].Name != "Label" || cls.Fields[2].Type != "string" {
		t.Errorf("unexpected last field: %+v", cls.Fields[2])
	}
}

func TestFunctionLines(t *testing.T) {
	source := `package main

func span() {
	_ = 1
	_ = 2
}
`
	result := parseSource(t, parser.LangGo, source)
	funcs := Functions(result)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	if got := funcs[0].Lines(); got != 4 {
		t.Errorf("expected 4 lines, got %d", got)
	}
}
