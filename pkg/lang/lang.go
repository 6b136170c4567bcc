// Package lang centralizes the per-language AST node-type tables used by
// every analyzer. Node-type tags for a structural category (function
// boundary, branch node, numeric literal, ...) live here and nowhere else;
// adding a language means adding one table row.
package lang

// Set is a lookup set of tree-sitter node-type tags.
type Set map[string]bool

// NewSet builds a Set from a list of node-type tags.
func NewSet(tags ...string) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		s[t] = true
	}
	return s
}

// Has reports whether the tag is in the set.
func (s Set) Has(tag string) bool {
	return s[tag]
}

// Union returns a new set containing the members of s and others.
func (s Set) Union(others ...Set) Set {
	out := make(Set, len(s))
	for t := range s {
		out[t] = true
	}
	for _, o := range others {
		for t := range o {
			out[t] = true
		}
	}
	return out
}

// Table maps structural categories to the concrete node-type tags of one
// language's tree-sitter grammar.
type Table struct {
	Language string

	Function      Set // function/method definition boundaries
	Class         Set // class/struct/interface boundaries
	Branch        Set // decision points for cyclomatic complexity
	Nesting       Set // constructs that deepen cognitive nesting
	Jump          Set // break/continue/return/throw style jumps
	Block         Set // block-like nodes for max-nesting depth
	Identifier    Set // name nodes
	ParameterList Set // formal parameter list nodes
	NumberLiteral Set // numeric literal nodes
	StringLiteral Set // string literal nodes
	Call          Set // call expression nodes
	Comment       Set // comment nodes
	Return        Set // return statement nodes
	Variable      Set // variable/lexical declaration nodes
	BoolOperator  Set // short-circuit boolean operator nodes

	// Keywords is the reserved-word set, used by duplicate normalization
	// and by the mirror pipeline's "is this a real function" predicate.
	Keywords Set
}

// Registry holds the registered language tables in registration order.
// The first registered table is the fallback for unknown language tags.
type Registry struct {
	order  []string
	tables map[string]*Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Register adds a table. Re-registering a language replaces its table but
// keeps its position in the fallback order.
func (r *Registry) Register(t *Table) {
	if _, ok := r.tables[t.Language]; !ok {
		r.order = append(r.order, t.Language)
	}
	r.tables[t.Language] = t
}

// Lookup returns the table for a language tag. Unknown tags fall back to the
// first-registered table so that an unsupported language never fails a pass.
func (r *Registry) Lookup(language string) *Table {
	if t, ok := r.tables[language]; ok {
		return t
	}
	if len(r.order) == 0 {
		return nil
	}
	return r.tables[r.order[0]]
}

// Known reports whether the language tag has its own table.
func (r *Registry) Known(language string) bool {
	_, ok := r.tables[language]
	return ok
}

// Languages returns the registered language tags in registration order.
func (r *Registry) Languages() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

var defaultRegistry = buildDefaultRegistry()

// Default returns the process-wide registry with all built-in languages.
func Default() *Registry {
	return defaultRegistry
}

// TableFor is shorthand for Default().Lookup.
func TableFor(language string) *Table {
	return defaultRegistry.Lookup(language)
}
