package leadchat

import "time"

// Turn is one utterance exchange recorded in a session transcript: the
// content text, whether the caller or the assistant authored it, and a
// timestamp. Turns are immutable once recorded and ordered append-only by
// arrival.
type Turn struct {
	Content    string    `json:"content"`
	FromCaller bool      `json:"from_caller"`
	TokenCount int       `json:"token_count"` // Estimated tokens
	Timestamp  time.Time `json:"timestamp"`
}
