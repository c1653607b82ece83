package chunker

// TokensPerChar is the heuristic divisor for estimating tokens (chars/4)
const TokensPerChar = 4

// EstimateTokens approximates the token count of text.
// Empty text is 0 tokens; anything else is at least 1.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return max(1, len(text)/TokensPerChar)
}
