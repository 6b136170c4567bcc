package mirror

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/augurlabs/augur/pkg/extract"
	"github.com/augurlabs/augur/pkg/parser"
)

// funcSignature is the comparable shape of one function: its name, its
// parameter count and the opening of its body text.
type funcSignature struct {
	name       string
	arity      int
	bodyPrefix string
}

// bodyPrefixLen is how much body text counts as evidence that a function
// was moved rather than removed.
const bodyPrefixLen = 50

// controlFlowNames are identifiers that signature extraction can mistake
// for function names.
var controlFlowNames = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "switch": true,
	"case": true, "match": true, "try": true, "catch": true, "return": true,
	"defer": true, "select": true, "range": true,
}

var refactorNamePattern = regexp.MustCompile(`(?i)\b(extract|rename|split|merge|inline|move)`)

// checkSignatures verifies every plausible original function survives
// into the candidate, either verbatim or as a recognizable refactoring.
// The stage is advisory: without trees on both sides it passes.
func checkSignatures(original, candidate *parser.ParseResult, candidateText string) Layer {
	if original == nil || candidate == nil {
		return Layer{Passed: true, Message: "signature extraction unavailable"}
	}

	origSigs := extractSignatures(original)
	candSigs := extractSignatures(candidate)

	if len(origSigs) == 0 {
		return Layer{Passed: true}
	}

	candidateNames := make(map[string][]int, len(candSigs))
	for _, sig := range candSigs {
		candidateNames[sig.name] = append(candidateNames[sig.name], sig.arity)
	}

	for _, sig := range origSigs {
		if len(sig.name) <= 2 || controlFlowNames[sig.name] {
			continue
		}
		if matchesArity(candidateNames[sig.name], sig.arity) {
			continue
		}
		if isLegitimateRefactor(sig, candidateText) {
			continue
		}

		msg := fmt.Sprintf("function %q missing from candidate", sig.name)
		if closest := closestName(sig.name, candSigs); closest != "" {
			msg += fmt.Sprintf(" (closest match: %q)", closest)
		}
		return Layer{Passed: false, Message: msg}
	}

	return Layer{Passed: true}
}

func extractSignatures(result *parser.ParseResult) []funcSignature {
	fns := extract.Functions(result)
	sigs := make([]funcSignature, 0, len(fns))
	for i := range fns {
		body := fns[i].BodyText(result.Source)
		if len(body) > bodyPrefixLen {
			body = body[:bodyPrefixLen]
		}
		sigs = append(sigs, funcSignature{
			name:       fns[i].Name,
			arity:      len(fns[i].Parameters),
			bodyPrefix: body,
		})
	}
	return sigs
}

func matchesArity(arities []int, want int) bool {
	for _, a := range arities {
		if a == want {
			return true
		}
	}
	return false
}

// isLegitimateRefactor looks for evidence that a missing function was
// transformed rather than dropped: its body text surviving verbatim, a
// derived helper name, or an explicit refactor verb in a new name.
func isLegitimateRefactor(sig funcSignature, candidateText string) bool {
	if sig.bodyPrefix != "" && strings.Contains(candidateText, sig.bodyPrefix) {
		return true
	}
	if strings.Contains(candidateText, sig.name+"Helper") ||
		strings.Contains(candidateText, sig.name+"Util") {
		return true
	}
	return refactorNamePattern.MatchString(candidateText)
}

// closestName suggests the candidate function most similar to a missing
// original name.
func closestName(name string, candidates []funcSignature) string {
	best := ""
	var bestScore float32
	for _, c := range candidates {
		score, err := edlib.StringsSimilarity(name, c.name, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = c.name
		}
	}
	if bestScore < 0.7 {
		return ""
	}
	return best
}
