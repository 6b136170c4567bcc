// Package mirror validates proposed refactorings. A candidate rewrite of
// a flagged code block runs through four ordered layers (syntactic,
// signature, structural, behavioral); the first two gate hard, the last
// two only downgrade the verdict. The checks are heuristics over source
// text and parse trees, not equivalence proofs.
package mirror

import (
	"strings"

	"github.com/augurlabs/augur/pkg/issue"
	"github.com/augurlabs/augur/pkg/parser"
)

// Badge is the overall verdict of a validation run.
type Badge string

const (
	BadgeVerified Badge = "verified"
	BadgeWarning  Badge = "warning"
	BadgeFailed   Badge = "failed"
)

// Layer is the outcome of one validation stage. A stage that never ran
// keeps its zero value.
type Layer struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// Layers holds the per-stage outcomes in pipeline order.
type Layers struct {
	Syntactic  Layer `json:"syntactic"`
	Signature  Layer `json:"signature"`
	Structural Layer `json:"structural"`
	Behavioral Layer `json:"behavioral"`
}

// Request is one refactoring candidate to validate.
type Request struct {
	Original  string          `json:"original"`
	Candidate string          `json:"candidate"`
	Language  parser.Language `json:"language"`
	IssueKind issue.Kind      `json:"issue_kind"`
}

// Result is the verdict for one candidate.
type Result struct {
	Verified   bool   `json:"verified"`
	Confidence int    `json:"confidence"`
	Badge      Badge  `json:"badge"`
	Layers     Layers `json:"layers"`
}

// Validator runs the validation pipeline. A Validator owns one parser
// and must not be shared across goroutines; create one per worker.
type Validator struct {
	parser *parser.Parser
}

// New creates a validator.
func New() *Validator {
	return &Validator{parser: parser.New()}
}

// Close releases validator resources.
func (v *Validator) Close() {}

// Validate runs the four stages in order. Stage 1 and 2 failures stop
// the pipeline with a failed badge; a stage 3 failure downgrades to a
// warning and skips stage 4.
func (v *Validator) Validate(req Request) Result {
	res := Result{Badge: BadgeFailed, Confidence: 0}

	candidate := v.parse(req.Candidate, req.Language)
	res.Layers.Syntactic = v.checkSyntax(req.Candidate, candidate)
	if !res.Layers.Syntactic.Passed {
		return res
	}

	original := v.parse(req.Original, req.Language)
	res.Layers.Signature = checkSignatures(original, candidate, req.Candidate)
	if !res.Layers.Signature.Passed {
		return res
	}

	res.Layers.Structural = checkStructure(req, original, candidate)
	if !res.Layers.Structural.Passed {
		res.Badge = BadgeWarning
		res.Confidence = 60
		return res
	}

	res.Layers.Behavioral = checkBehavior(req.Original, req.Candidate, original, candidate)

	res.Verified = true
	res.Badge = BadgeVerified
	if res.Layers.Behavioral.Passed {
		res.Confidence = 95
	} else {
		res.Confidence = 80
	}
	return res
}

// parse attempts to parse a code fragment. Returns nil when no grammar
// is available or parsing itself errors; callers treat nil as "no tree".
func (v *Validator) parse(code string, lang parser.Language) *parser.ParseResult {
	result, err := v.parser.Parse([]byte(code), lang, "fragment")
	if err != nil {
		return nil
	}
	return result
}

// checkSyntax verifies the candidate parses under the language grammar.
// Without a grammar it falls back to a permissive shape check.
func (v *Validator) checkSyntax(code string, result *parser.ParseResult) Layer {
	if result == nil {
		if looksLikeCode(code) {
			return Layer{Passed: true, Message: "no grammar available, shape check only"}
		}
		return Layer{Passed: false, Message: "candidate does not resemble code"}
	}
	if result.Tree.RootNode().HasError() {
		return Layer{Passed: false, Message: "candidate has syntax errors"}
	}
	return Layer{Passed: true}
}

// looksLikeCode checks for any recognizable code construct.
func looksLikeCode(code string) bool {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return false
	}
	return strings.ContainsAny(trimmed, "(){}=;:") ||
		strings.Contains(trimmed, "func ") ||
		strings.Contains(trimmed, "def ") ||
		strings.Contains(trimmed, "class ")
}
