package metrics

import (
	"regexp"
	"strings"

	"github.com/augurlabs/augur/pkg/lang"
	"github.com/augurlabs/augur/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Cyclomatic computes cyclomatic complexity for a function body: 1 plus
// one per branch node, plus one per short-circuit operator found textually
// in the body's source span. Operators inside branch conditions count
// twice on purpose; each additional execution path adds one.
func Cyclomatic(body *sitter.Node, source []byte, table *lang.Table) uint32 {
	if body == nil {
		return 1
	}

	count := uint32(1)
	for range parser.NodesOfTypes(body, table.Branch) {
		count++
	}
	count += CountBoolOperators(parser.GetNodeText(body, source), table)
	return count
}

var wordBoolOp = regexp.MustCompile(`\b(and|or)\b`)

// CountBoolOperators counts short-circuit logical operators in text.
// Word-form operators are only counted for languages where they are
// reserved words.
func CountBoolOperators(text string, table *lang.Table) uint32 {
	count := strings.Count(text, "&&") + strings.Count(text, "||")
	if table.Keywords.Has("and") {
		count += len(wordBoolOp.FindAllString(text, -1))
	}
	return uint32(count)
}

type cognitiveFrame struct {
	node  *sitter.Node
	depth int
}

// Cognitive computes cognitive complexity for a function body. Nesting
// constructs cost 1 plus the current nesting level and deepen it for
// their subtree; jump statements and boolean operators cost a flat 1.
func Cognitive(body *sitter.Node, source []byte, table *lang.Table) uint32 {
	if body == nil {
		return 0
	}

	var total uint32
	stack := []cognitiveFrame{{body, 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := int(f.node.ChildCount()) - 1; i >= 0; i-- {
			child := f.node.Child(i)
			childType := child.Type()

			switch {
			case table.Nesting.Has(childType):
				total += uint32(1 + f.depth)
				stack = append(stack, cognitiveFrame{child, f.depth + 1})
			case table.Jump.Has(childType):
				total++
				stack = append(stack, cognitiveFrame{child, f.depth})
			case isBoolExpr(child, source, table):
				total++
				stack = append(stack, cognitiveFrame{child, f.depth})
			default:
				stack = append(stack, cognitiveFrame{child, f.depth})
			}
		}
	}

	return total
}

// binaryExprTypes covers the node names grammars use for binary and
// boolean expressions.
var binaryExprTypes = lang.NewSet(
	"binary_expression", "logical_expression", "boolean_operator", "binary",
)

// isBoolExpr reports whether node is a binary expression whose operator
// is a short-circuit logical operator.
func isBoolExpr(node *sitter.Node, source []byte, table *lang.Table) bool {
	if !binaryExprTypes.Has(node.Type()) {
		return false
	}
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		if table.BoolOperator.Has(child.Type()) {
			return true
		}
		if child.IsNamed() && child.Type() == "operator" {
			if table.BoolOperator.Has(parser.GetNodeText(child, source)) {
				return true
			}
		}
	}
	return false
}

// MaxNesting returns the maximum nesting depth of block-like nodes in the
// body's subtree.
func MaxNesting(body *sitter.Node, table *lang.Table) int {
	if body == nil {
		return 0
	}

	maxDepth := 0
	stack := []cognitiveFrame{{body, 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := int(f.node.ChildCount()) - 1; i >= 0; i-- {
			child := f.node.Child(i)
			depth := f.depth
			if table.Nesting.Has(child.Type()) || table.Block.Has(child.Type()) {
				depth++
				if depth > maxDepth {
					maxDepth = depth
				}
			}
			stack = append(stack, cognitiveFrame{child, depth})
		}
	}

	return maxDepth
}

// commentPrefixes match lines that hold only a comment.
var commentPrefixes = []string{"//", "#", "/*", "*", "*/", "--"}

// EffectiveLines counts the non-blank, non-comment-only lines in a span
// of source text.
func EffectiveLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		comment := false
		for _, prefix := range commentPrefixes {
			if strings.HasPrefix(trimmed, prefix) {
				comment = true
				break
			}
		}
		if !comment {
			count++
		}
	}
	return count
}
