package generation

// charsPerToken is the approximation ratio used when a backend does not
// report exact token counts. Four characters per token tracks English prose
// closely enough for cost estimation; adapters mark results built this way
// as estimated.
const charsPerToken = 4

// EstimateTokens estimates the token count of text from its character
// length. The estimate is deterministic and documented as approximate; it
// exists so adapters without exact usage accounting can still report usage
// rather than fail.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	tokens := len(text) / charsPerToken
	if tokens == 0 {
		tokens = 1
	}

	return tokens
}
