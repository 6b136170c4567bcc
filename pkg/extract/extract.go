// Package extract turns matched AST nodes into structural function and class
// records. Extraction is a pure function of the parse result and never fails:
// malformed or partial trees degrade to anonymous names and empty parameter
// lists instead of errors.
package extract

import (
	"github.com/augurlabs/augur/pkg/lang"
	"github.com/augurlabs/augur/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Param is a declared parameter or field.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// FunctionRecord describes one function or method definition.
type FunctionRecord struct {
	Name       string
	Parameters []Param
	Node       *sitter.Node
	Body       *sitter.Node
	StartByte  uint32
	EndByte    uint32
	StartLine  uint32
	EndLine    uint32
}

// ClassRecord describes one class/struct/interface definition.
type ClassRecord struct {
	Name      string
	Methods   []FunctionRecord
	Fields    []Param
	Node      *sitter.Node
	StartByte uint32
	EndByte   uint32
	StartLine uint32
	EndLine   uint32
}

// anonymousName is used when no identifier child can be located.
const anonymousName = "anonymous"

// Functions extracts every function definition in the parse result, in
// source order.
func Functions(result *parser.ParseResult) []FunctionRecord {
	table := result.Table()
	var records []FunctionRecord
	for node := range parser.NodesOfTypes(result.Tree.RootNode(), table.Function) {
		records = append(records, Function(node, result.Source, table))
	}
	return records
}

// Classes extracts every class definition in the parse result, in source
// order, including the function records of methods nested inside each class.
func Classes(result *parser.ParseResult) []ClassRecord {
	table := result.Table()
	var records []ClassRecord
	for node := range parser.NodesOfTypes(result.Tree.RootNode(), table.Class) {
		records = append(records, Class(node, result.Source, table))
	}
	return records
}

// Function wraps a single matched node into a FunctionRecord.
func Function(node *sitter.Node, source []byte, table *lang.Table) FunctionRecord {
	rec := FunctionRecord{
		Name:      anonymousName,
		Node:      node,
		StartByte: node.StartByte(),
		EndByte:   node.EndByte(),
		StartLine: node.StartPoint().Row + 1,
		EndLine:   node.EndPoint().Row + 1,
	}

	if name := nameOf(node, source, table); name != "" {
		rec.Name = name
	}
	rec.Parameters = parameters(node, source, table)
	rec.Body = bodyOf(node)

	return rec
}

// Class wraps a single matched node into a ClassRecord.
func Class(node *sitter.Node, source []byte, table *lang.Table) ClassRecord {
	rec := ClassRecord{
		Name:      anonymousName,
		Node:      node,
		StartByte: node.StartByte(),
		EndByte:   node.EndByte(),
		StartLine: node.StartPoint().Row + 1,
		EndLine:   node.EndPoint().Row + 1,
	}

	if name := nameOf(node, source, table); name != "" {
		rec.Name = name
	}

	for method := range parser.NodesOfTypes(node, table.Function) {
		if method == node {
			continue
		}
		rec.Methods = append(rec.Methods, Function(method, source, table))
	}
	rec.Fields = fields(node, source, table)

	return rec
}

// nameOf locates the definition's name: the "name" field when the grammar
// has one, otherwise the first child in the language's identifier set.
func nameOf(node *sitter.Node, source []byte, table *lang.Table) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return parser.GetNodeText(nameNode, source)
	}
	// C-style grammars bury the identifier inside a declarator.
	if decl := node.ChildByFieldName("declarator"); decl != nil {
		if inner := decl.ChildByFieldName("declarator"); inner != nil {
			return parser.GetNodeText(inner, source)
		}
		if ident := parser.FirstChildOfTypes(decl, table.Identifier); ident != nil {
			return parser.GetNodeText(ident, source)
		}
	}
	if ident := parser.FirstChildOfTypes(node, table.Identifier); ident != nil {
		return parser.GetNodeText(ident, source)
	}
	return ""
}

// parameters extracts the formal parameter list. A missing or unparseable
// list yields an empty slice.
func parameters(node *sitter.Node, source []byte, table *lang.Table) []Param {
	list := node.ChildByFieldName("parameters")
	if list == nil {
		list = parser.FirstChildOfTypes(node, table.ParameterList)
	}
	if list == nil {
		// C-style: the parameter list hangs off the declarator.
		if decl := node.ChildByFieldName("declarator"); decl != nil {
			list = parser.FirstChildOfTypes(decl, table.ParameterList)
		}
	}
	if list == nil {
		return nil
	}

	var params []Param
	for _, child := range parser.NamedChildren(list) {
		params = append(params, paramsFrom(child, source, table)...)
	}
	return params
}

// paramsFrom extracts the parameters declared by one list entry. A single
// declaration may bind several names (Go's "a, b int"), so this returns a
// slice.
func paramsFrom(node *sitter.Node, source []byte, table *lang.Table) []Param {
	if table.Identifier.Has(node.Type()) {
		return []Param{{Name: parser.GetNodeText(node, source)}}
	}

	var typeName string
	typeNode := node.ChildByFieldName("type")
	if typeNode != nil {
		typeName = parser.GetNodeText(typeNode, source)
	}

	var params []Param
	for _, child := range parser.NamedChildren(node) {
		// The type annotation may itself be an identifier node; it is not
		// a parameter name.
		if typeNode != nil && child.StartByte() == typeNode.StartByte() && child.EndByte() == typeNode.EndByte() {
			continue
		}
		if table.Identifier.Has(child.Type()) {
			params = append(params, Param{
				Name: parser.GetNodeText(child, source),
				Type: typeName,
			})
		}
	}
	if len(params) > 0 {
		return params
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return []Param{{Name: parser.GetNodeText(nameNode, source), Type: typeName}}
	}
	if typeName != "" {
		return []Param{{Type: typeName}}
	}
	return nil
}

// fieldTypes covers field/property declarations across the supported
// grammars; identifiers inside them become field records.
var fieldTypes = lang.NewSet(
	"field_declaration", "property_declaration", "field_definition",
	"public_field_definition", "property_signature", "class_variable",
	"instance_variable",
)

// fields extracts field/property declarations directly under a class body.
func fields(node *sitter.Node, source []byte, table *lang.Table) []Param {
	var out []Param
	for fieldNode := range parser.NodesOfTypes(node, fieldTypes) {
		for _, p := range paramsFrom(fieldNode, source, table) {
			if p.Name != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// bodyOf returns the function's body node, trying the field names the
// supported grammars use.
func bodyOf(node *sitter.Node) *sitter.Node {
	for _, field := range []string{"body", "block", "body_statement"} {
		if body := node.ChildByFieldName(field); body != nil {
			return body
		}
	}
	return nil
}

// BodyText returns the source span of the record's body, or the whole
// definition when the grammar exposes no body field.
func (f *FunctionRecord) BodyText(source []byte) string {
	if f.Body != nil {
		return parser.GetNodeText(f.Body, source)
	}
	return parser.GetNodeText(f.Node, source)
}

// Lines returns the total line count of the definition.
func (f *FunctionRecord) Lines() int {
	return int(f.EndLine - f.StartLine + 1)
}

// Lines returns the total line count of the definition.
func (c *ClassRecord) Lines() int {
	return int(c.EndLine - c.StartLine + 1)
}
