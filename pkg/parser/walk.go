package parser

import (
	"iter"

	"github.com/augurlabs/augur/pkg/lang"
	sitter "github.com/smacker/go-tree-sitter"
)

// NodeVisitor is a function that visits AST nodes. Returning false skips the
// node's subtree.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// TypedNodeVisitor visits AST nodes with the node type pre-cached to avoid
// repeated CGO calls.
type TypedNodeVisitor func(node *sitter.Node, nodeType string, source []byte) bool

// Walk traverses the AST depth-first in pre-order, calling visitor for each
// node. Traversal uses an explicit work stack so deeply nested real-world
// trees cannot exhaust the goroutine stack.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	WalkTyped(node, source, func(n *sitter.Node, _ string, src []byte) bool {
		return visitor(n, src)
	})
}

// WalkTyped is Walk with the node type cached once per node.
func WalkTyped(node *sitter.Node, source []byte, visitor TypedNodeVisitor) {
	if node == nil {
		return
	}

	stack := make([]*sitter.Node, 0, 64)
	stack = append(stack, node)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visitor(n, n.Type(), source) {
			continue
		}

		// Push children in reverse so the leftmost child is visited first.
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, n.Child(i))
		}
	}
}

// NamedChildren returns the named children of a node, skipping punctuation
// and other trivia.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := range count {
		children = append(children, node.NamedChild(i))
	}
	return children
}

// NodesOfTypes returns a lazy, restartable sequence of nodes in the subtree
// whose type is in the given set. Only named children are descended into, so
// delimiter tokens never produce false matches. The sequence is finite and
// may be iterated multiple times.
func NodesOfTypes(root *sitter.Node, types lang.Set) iter.Seq[*sitter.Node] {
	return func(yield func(*sitter.Node) bool) {
		if root == nil {
			return
		}

		stack := make([]*sitter.Node, 0, 64)
		stack = append(stack, root)

		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if types.Has(n.Type()) {
				if !yield(n) {
					return
				}
			}

			for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
				stack = append(stack, n.NamedChild(i))
			}
		}
	}
}

// FirstChildOfTypes returns the first named child (not descendant) whose type
// is in the set, or nil.
func FirstChildOfTypes(node *sitter.Node, types lang.Set) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := range int(node.NamedChildCount()) {
		child := node.NamedChild(i)
		if types.Has(child.Type()) {
			return child
		}
	}
	return nil
}

// CountNodesOfTypes counts subtree nodes whose type is in the set.
func CountNodesOfTypes(root *sitter.Node, types lang.Set) int {
	count := 0
	for range NodesOfTypes(root, types) {
		count++
	}
	return count
}

// Table returns the node-type table for the parse result's language,
// falling back to the default table for unknown languages.
func (r *ParseResult) Table() *lang.Table {
	return lang.TableFor(string(r.Language))
}
