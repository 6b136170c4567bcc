package duplicates

// controlFlowKeywords weight heaviest in the window complexity score.
var controlFlowKeywords = map[string]bool{
	"if": true, "else": true, "elif": true, "for": true, "while": true,
	"switch": true, "case": true, "match": true, "try": true, "catch": true,
	"except": true, "finally": true, "when": true, "unless": true,
	"loop": true, "until": true,
}

// comparisonOperators weight ×2, same as logical operators.
var comparisonOperators = map[string]bool{
	"&&": true, "||": true, "==": true, "!=": true, "<": true, ">": true,
	"<=": true, ">=": true, "===": true, "!==": true, "and": true, "or": true,
}

// complexityScore estimates how much logic a window of normalized lines
// holds. Control flow counts 3, calls 2, logical and relational operators
// 2, brackets and assignments 1, plus half a point per meaningful word.
// Trivial boilerplate windows score too low to be worth reporting.
func complexityScore(lines []string) float64 {
	var score float64

	for _, line := range lines {
		tokens := tokenize(line)
		for i, tok := range tokens {
			switch {
			case controlFlowKeywords[tok]:
				score += 3
			case tok == "(" && i > 0 && isMeaningfulWord(tokens[i-1]):
				score += 2
			case comparisonOperators[tok]:
				score += 2
			case tok == "{" || tok == "[":
				score++
			case tok == "=" || tok == ":=":
				score++
			case isMeaningfulWord(tok):
				score += 0.5
			}
		}
	}

	return score
}

// isMeaningfulWord reports whether a token is an identifier long enough
// to carry meaning.
func isMeaningfulWord(token string) bool {
	return len(token) >= 3 && !isKeyword(token) && !isLiteral(token) &&
		!isOperatorOrDelimiter(token) && isIdentifierStart(rune(token[0]))
}
