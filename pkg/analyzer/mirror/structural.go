package mirror

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/augurlabs/augur/pkg/extract"
	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/parser"
)

var (
	callPattern      = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	constDeclPattern = regexp.MustCompile(`\b(const|final|readonly)\b`)
	numberPattern    = regexp.MustCompile(`\b\d[\d_]*(\.\d+)?\b`)
	defPattern       = regexp.MustCompile(`\b(?:func|def|function|fn)\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// checkStructure verifies the candidate actually addresses the flagged
// defect. Each issue kind has its own structural evidence; an unknown
// kind only needs a non-trivial edit.
func checkStructure(req Request, original, candidate *parser.ParseResult) Layer {
	switch req.IssueKind {
	case issue.DuplicateCode:
		origFuncs := functionCount(original, req.Original)
		candFuncs := functionCount(candidate, req.Candidate)
		if candFuncs <= origFuncs {
			return Layer{Passed: false, Message: "no extracted function found"}
		}
		if !hasNewCall(req.Original, req.Candidate) {
			return Layer{Passed: false, Message: "no call site for extracted function"}
		}
		return Layer{Passed: true}

	case issue.MagicNumber:
		origConsts := len(constDeclPattern.FindAllString(req.Original, -1))
		candConsts := len(constDeclPattern.FindAllString(req.Candidate, -1))
		if candConsts <= origConsts {
			return Layer{Passed: false, Message: "no new constant declarations"}
		}
		if numericLiteralCount(candidate, req.Candidate) >= numericLiteralCount(original, req.Original) {
			return Layer{Passed: false, Message: "numeric literal count did not decrease"}
		}
		return Layer{Passed: true}

	case issue.DeepNesting:
		origDepth := maxBraceDepth(req.Original)
		candDepth := maxBraceDepth(req.Candidate)
		if candDepth >= origDepth {
			return Layer{Passed: false, Message: fmt.Sprintf("nesting depth %d did not decrease from %d", candDepth, origDepth)}
		}
		return Layer{Passed: true}

	case issue.LongMethod:
		origLines := lineCount(req.Original)
		candLines := lineCount(req.Candidate)
		if float64(candLines) > 0.8*float64(origLines) {
			return Layer{Passed: false, Message: fmt.Sprintf("%d lines is not a meaningful reduction from %d", candLines, origLines)}
		}
		return Layer{Passed: true}

	default:
		if strings.TrimSpace(req.Candidate) == strings.TrimSpace(req.Original) {
			return Layer{Passed: false, Message: "candidate is identical to original"}
		}
		return Layer{Passed: true}
	}
}

// checkBehavior compares the number of external calls on both sides. A
// call is external when the version does not define a function of that
// name itself. Equal counts are weak evidence that the rewrite still
// calls the same collaborators.
func checkBehavior(originalText, candidateText string, original, candidate *parser.ParseResult) Layer {
	origExternal := externalCallCount(originalText, original)
	candExternal := externalCallCount(candidateText, candidate)
	if origExternal != candExternal {
		return Layer{Passed: false, Message: fmt.Sprintf("external call count changed from %d to %d", origExternal, candExternal)}
	}
	return Layer{Passed: true}
}

// functionCount prefers the parse tree and falls back to counting
// definition keywords in the text.
func functionCount(result *parser.ParseResult, text string) int {
	if result != nil {
		return len(extract.Functions(result))
	}
	return len(defPattern.FindAllString(text, -1))
}

// numericLiteralCount prefers literal nodes from the tree and falls back
// to a digit-sequence scan.
func numericLiteralCount(result *parser.ParseResult, text string) int {
	if result != nil {
		return parser.CountNodesOfTypes(result.Tree.RootNode(), result.Table().NumberLiteral)
	}
	return len(numberPattern.FindAllString(text, -1))
}

// callNames extracts called identifiers textually, skipping control-flow
// keywords that precede parentheses.
func callNames(text string) []string {
	matches := callPattern.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if controlFlowNames[m[1]] {
			continue
		}
		names = append(names, m[1])
	}
	return names
}

// hasNewCall reports whether the candidate calls something the original
// never did.
func hasNewCall(originalText, candidateText string) bool {
	seen := make(map[string]bool)
	for _, name := range callNames(originalText) {
		seen[name] = true
	}
	for _, name := range callNames(candidateText) {
		if !seen[name] {
			return true
		}
	}
	return false
}

// definedNames collects the function names a version defines, from the
// tree when available.
func definedNames(result *parser.ParseResult, text string) map[string]bool {
	names := make(map[string]bool)
	if result != nil {
		for _, fn := range extract.Functions(result) {
			names[fn.Name] = true
		}
		return names
	}
	for _, m := range defPattern.FindAllStringSubmatch(text, -1) {
		names[m[1]] = true
	}
	return names
}

func externalCallCount(text string, result *parser.ParseResult) int {
	defined := definedNames(result, text)
	count := 0
	for _, name := range callNames(text) {
		if !defined[name] {
			count++
		}
	}
	return count
}

// maxBraceDepth tracks the deepest curly-brace nesting in the text.
func maxBraceDepth(text string) int {
	depth, maxDepth := 0, 0
	for _, c := range text {
		switch c {
		case '{':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	return maxDepth
}

func lineCount(text string) int {
	return len(strings.Split(strings.TrimSpace(text), "\n"))
}
