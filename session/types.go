package session

import (
	"time"

	"github.com/creastat/leadchat"
)

// SessionData represents all serializable state of one conversation session.
// This data is persisted to Redis and can be restored on service failure.
//
// PERSISTED:
// - Token: opaque session identifier (caller-supplied or generated)
// - CreatedAt, UpdatedAt: timestamps
// - Version: for optimistic locking in distributed deployments
// - Transcript: all caller/assistant turns with token counts
// - Score: current BANT score (overall derived from the four sub-scores)
// - Scored: whether any sub-score update has ever been applied
// - Contact: current contact profile
// - Booking: call-booking details, nil until a booking succeeds
// - Status: current qualification status
type SessionData struct {
	Token      string            `json:"token"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Version    int64             `json:"version"` // Monotonically increasing for optimistic locking
	Transcript []leadchat.Turn   `json:"transcript"`
	Score      leadchat.Score    `json:"score"`
	Scored     bool              `json:"scored"`
	Contact    leadchat.Contact  `json:"contact"`
	Booking    *leadchat.Booking `json:"booking,omitempty"`
	Status     leadchat.Status   `json:"status"`
}

// New creates a fresh session for the given token. Sessions start with a
// zero score and in_progress status; the store sets the bookkeeping fields
// on Create.
func New(token string) *SessionData {
	return &SessionData{
		Token:  token,
		Status: leadchat.StatusInProgress,
	}
}
