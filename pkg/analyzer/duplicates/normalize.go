package duplicates

import (
	"strings"
)

// lowSignalPatterns match normalized lines that carry no duplication
// signal on their own.
var lowSignalPrefixes = []string{
	"import ", "from ", "export ", "package ", "use ", "using ", "include ",
	"var ", "let ", "const ",
}

// normalizeLine strips a raw source line down to its comparable form.
// Returns "" for lines that should be dropped: blanks, comments,
// bracket-only lines, very short lines and declaration boilerplate.
func normalizeLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || isComment(trimmed) {
		return ""
	}

	trimmed = strings.TrimSuffix(trimmed, ";")
	trimmed = strings.Join(strings.Fields(trimmed), " ")

	if isBracketOnly(trimmed) || len(trimmed) < 10 {
		return ""
	}
	for _, prefix := range lowSignalPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return ""
		}
	}
	return trimmed
}

// isComment checks if a line is a comment.
func isComment(line string) bool {
	return strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "/*") ||
		strings.HasPrefix(line, "*") ||
		strings.HasPrefix(line, "--")
}

// isBracketOnly reports whether the line holds nothing but brackets and
// punctuation.
func isBracketOnly(line string) bool {
	for _, c := range line {
		switch c {
		case '{', '}', '(', ')', '[', ']', ';', ',', ' ':
		default:
			return false
		}
	}
	return true
}

// stripComments removes whole comment lines from a code span.
func stripComments(code string) string {
	lines := strings.Split(code, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isComment(strings.TrimSpace(line)) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// tokenize splits code into tokens: string literals, numbers, identifiers
// and operator/punctuation characters as standalone tokens.
func tokenize(content string) []string {
	var tokens []string
	runes := []rune(content)
	i := 0

	for i < len(runes) {
		c := runes[i]

		if isWhitespace(c) {
			i++
			continue
		}
		if c == '"' || c == '\'' || c == '`' {
			tokens = append(tokens, collectStringLiteral(runes, &i, c))
			continue
		}
		if isDigit(c) {
			tokens = append(tokens, collectNumber(runes, &i))
			continue
		}
		if isIdentifierStart(c) {
			tokens = append(tokens, collectIdentifier(runes, &i))
			continue
		}
		if op := collectOperator(runes, &i); op != "" {
			tokens = append(tokens, op)
			continue
		}
		tokens = append(tokens, string(c))
		i++
	}

	return tokens
}

// collectStringLiteral collects a string literal including quotes.
func collectStringLiteral(runes []rune, i *int, quote rune) string {
	var sb strings.Builder
	sb.WriteRune(runes[*i])
	*i++

	for *i < len(runes) {
		c := runes[*i]
		sb.WriteRune(c)
		*i++

		if c == quote {
			break
		}
		if c == '\\' && *i < len(runes) {
			sb.WriteRune(runes[*i])
			*i++
		}
	}
	return sb.String()
}

// collectNumber collects a numeric literal.
func collectNumber(runes []rune, i *int) string {
	var sb strings.Builder
	for *i < len(runes) {
		c := runes[*i]
		if isDigit(c) || c == '.' || c == '_' || c == 'x' || c == 'X' ||
			c == 'b' || c == 'B' || c == 'o' || c == 'O' ||
			(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') ||
			c == 'e' || c == 'E' {
			sb.WriteRune(c)
			*i++
		} else {
			break
		}
	}
	return sb.String()
}

// collectIdentifier collects an identifier.
func collectIdentifier(runes []rune, i *int) string {
	var sb strings.Builder
	for *i < len(runes) {
		c := runes[*i]
		if isIdentifierChar(c) {
			sb.WriteRune(c)
			*i++
		} else {
			break
		}
	}
	return sb.String()
}

// collectOperator collects multi-character operators.
func collectOperator(runes []rune, i *int) string {
	if *i >= len(runes) {
		return ""
	}

	if *i+2 < len(runes) {
		op3 := string(runes[*i : *i+3])
		switch op3 {
		case "<<=", ">>=", "...", "===", "!==":
			*i += 3
			return op3
		}
	}
	if *i+1 < len(runes) {
		op2 := string(runes[*i : *i+2])
		switch op2 {
		case "==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
			"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
			"++", "--", "->", "=>", "::", "..", "??", ":=":
			*i += 2
			return op2
		}
	}
	return ""
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentifierStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentifierChar(c rune) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// keywords spans the supported languages; kept verbatim during
// canonicalization so structure survives normalization.
var keywords = map[string]bool{
	// Go
	"func": true, "return": true, "if": true, "else": true, "for": true,
	"range": true, "switch": true, "case": true, "default": true, "break": true,
	"continue": true, "goto": true, "fallthrough": true, "defer": true,
	"go": true, "select": true, "chan": true, "map": true, "struct": true,
	"interface": true, "type": true, "var": true, "const": true, "package": true,
	"import": true, "nil": true, "true": true, "false": true,
	// Rust
	"fn": true, "let": true, "mut": true, "match": true, "loop": true,
	"while": true, "impl": true, "trait": true, "mod": true, "use": true,
	"pub": true, "crate": true, "self": true, "Self": true, "where": true,
	"async": true, "await": true, "static": true, "extern": true, "unsafe": true,
	"enum": true, "move": true, "ref": true, "as": true, "in": true,
	// Python
	"def": true, "class": true, "elif": true, "try": true, "except": true,
	"finally": true, "with": true, "lambda": true, "yield": true, "assert": true,
	"raise": true, "pass": true, "del": true, "global": true, "nonlocal": true,
	"and": true, "or": true, "not": true, "is": true, "from": true,
	// JavaScript/TypeScript
	"function": true, "new": true, "this": true, "super": true,
	"extends": true, "implements": true, "export": true, "throw": true,
	"catch": true, "instanceof": true, "typeof": true, "void": true,
	"delete": true, "debugger": true,
	// Common
	"null": true, "undefined": true,
}

func isKeyword(token string) bool {
	return keywords[token]
}

// isLiteral checks if a token is a string or number literal.
func isLiteral(token string) bool {
	if len(token) == 0 {
		return false
	}
	if token[0] == '"' || token[0] == '\'' || token[0] == '`' {
		return true
	}
	return token[0] >= '0' && token[0] <= '9'
}

// operators is the set of operator and delimiter tokens.
var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"=": true, "==": true, "!=": true, "<": true, ">": true,
	"<=": true, ">=": true, "&&": true, "||": true, "!": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
	"++": true, "--": true, "->": true, "=>": true, "::": true,
	"..": true, "...": true, "?": true, ":": true, ":=": true, "===": true, "!==": true,
	"(": true, ")": true, "[": true, "]": true, "{": true, "}": true,
	",": true, ";": true, ".": true, "??": true,
}

func isOperatorOrDelimiter(token string) bool {
	return operators[token]
}

// canonicalToken maps a token to its canonical form: keywords and
// operators verbatim, literals and identifiers collapsed to placeholders.
func canonicalToken(token string) string {
	switch {
	case token == "":
		return ""
	case isKeyword(token):
		return token
	case isLiteral(token):
		return "LIT"
	case isOperatorOrDelimiter(token):
		return token
	default:
		return "ID"
	}
}

// canonicalTokens canonicalizes a token slice, dropping empties.
func canonicalTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if c := canonicalToken(t); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// semanticToken normalizes a token for set-based comparison: keywords and
// operators lowercased verbatim, literals and identifiers collapsed.
func semanticToken(token string) string {
	switch {
	case token == "":
		return ""
	case isLiteral(token):
		return "LIT"
	case isKeyword(token), isOperatorOrDelimiter(token):
		return strings.ToLower(token)
	default:
		return "ID:" + strings.ToLower(token)
	}
}

// semanticTokenSet builds the normalized token set for Jaccard
// comparison.
func semanticTokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if s := semanticToken(t); s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}

// jaccard computes |A n B| / |A u B| over two token sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
