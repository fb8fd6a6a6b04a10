package leadchat

// TruncateTranscript trims a transcript to the window sent to the scorer,
// based on message and token limits. It applies the message limit first,
// then the token limit, dropping oldest turns as needed. The most recent
// turns are always preserved.
func TruncateTranscript(transcript []Turn, tokenLimit, messageLimit int) []Turn {
	if len(transcript) == 0 {
		return transcript
	}

	if len(transcript) > messageLimit {
		transcript = transcript[len(transcript)-messageLimit:]
	}

	totalTokens := 0
	for _, turn := range transcript {
		totalTokens += turn.TokenCount
	}

	for totalTokens > tokenLimit && len(transcript) > 0 {
		totalTokens -= transcript[0].TokenCount
		transcript = transcript[1:]
	}

	return transcript
}
