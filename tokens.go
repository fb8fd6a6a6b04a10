package leadchat

// EstimateTokens estimates the token count of an utterance using a
// Unicode-aware heuristic. ASCII characters (English, numbers, punctuation)
// are weighted at ~4 per token; non-ASCII characters (CJK, Cyrillic,
// Arabic, Emoji, etc.) at ~1 per token.
func EstimateTokens(text string) int {
	weight := 0
	for _, r := range text {
		switch {
		case r <= 127: // ASCII
			weight += 1
		default: // Non-ASCII, conservative
			weight += 4
		}
	}
	return (weight + 3) / 4
}
