package parser

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/augurlabs/augur/pkg/lang"
)

const walkSource = `package main

func pick(a int, b int) int {
	if a > 10 {
		return a
	}
	if b > 20 {
		return b
	}
	return 0
}
`

func parseWalkSource(t *testing.T) *ParseResult {
	t.Helper()
	p := New()
	defer p.Close()
	result, err := p.Parse([]byte(walkSource), LangGo, "walk.go")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return result
}

func TestWalkVisitsEveryNode(t *testing.T) {
	result := parseWalkSource(t)

	visited := 0
	Walk(result.Tree.RootNode(), result.Source, func(_ *sitter.Node, _ []byte) bool {
		visited++
		return true
	})

	if visited == 0 {
		t.Fatal("expected at least one visited node")
	}
}

func TestWalkTypedSkipsSubtree(t *testing.T) {
	result := parseWalkSource(t)

	returns := 0
	WalkTyped(result.Tree.RootNode(), result.Source, func(_ *sitter.Node, nodeType string, _ []byte) bool {
		if nodeType == "return_statement" {
			returns++
		}
		// Never descend into if statements; their returns stay unseen.
		return nodeType != "if_statement"
	})

	if returns != 1 {
		t.Errorf("visited %d returns, want only the top-level one", returns)
	}
}

func TestCountNodesOfTypes(t *testing.T) {
	result := parseWalkSource(t)
	table := result.Table()

	root := result.Tree.RootNode()
	if got := CountNodesOfTypes(root, table.Return); got != 3 {
		t.Errorf("return count = %d, want 3", got)
	}
	if got := CountNodesOfTypes(root, table.NumberLiteral); got != 3 {
		t.Errorf("number literal count = %d, want 3", got)
	}
	if got := CountNodesOfTypes(root, lang.NewSet("no_such_type")); got != 0 {
		t.Errorf("count for unknown type = %d, want 0", got)
	}
	if got := CountNodesOfTypes(nil, table.Return); got != 0 {
		t.Errorf("count for nil root = %d, want 0", got)
	}
}

func TestFirstChildOfTypes(t *testing.T) {
	result := parseWalkSource(t)
	table := result.Table()

	var fn *sitter.Node
	for node := range NodesOfTypes(result.Tree.RootNode(), table.Function) {
		fn = node
		break
	}
	if fn == nil {
		t.Fatal("no function node found")
	}

	ident := FirstChildOfTypes(fn, table.Identifier)
	if ident == nil {
		t.Fatal("expected an identifier child")
	}
	if got := GetNodeText(ident, result.Source); got != "pick" {
		t.Errorf("identifier = %q, want pick", got)
	}
	if FirstChildOfTypes(fn, lang.NewSet("no_such_type")) != nil {
		t.Error("expected nil for an unmatched type set")
	}
}
