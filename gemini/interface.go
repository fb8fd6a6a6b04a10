// Package gemini implements the scorer/extractor collaborator: an opaque
// generative-AI call that turns an inbound utterance plus transcript
// history into a reply, a partial BANT score, and a partial contact
// profile.
package gemini

import (
	"context"

	"github.com/creastat/leadchat"
)

// Request carries one inbound utterance plus the ordered transcript window
// preceding it.
type Request struct {
	Message      string
	SessionToken string
	History      []leadchat.Turn
}

// Response is the scorer/extractor output. Reply is required; the partial
// score and contact updates are optional and merged into session state by
// the caller.
type Response struct {
	Reply   string
	Score   leadchat.ScoreUpdate
	Contact leadchat.ContactUpdate
}

// Responder generates assistant replies with lead-qualification scoring.
// Implementations may fail; callers are expected to substitute a fallback
// reply and a zero-valued score update so turn processing still completes.
type Responder interface {
	// GenerateReply produces a reply for the given utterance.
	// Returns ErrEmptyReply if the model response lacks the reply text.
	GenerateReply(ctx context.Context, req Request) (*Response, error)
}

// Embedder produces embedding vectors for lead summaries and search
// queries.
type Embedder interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
}
