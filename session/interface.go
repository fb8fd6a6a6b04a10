package session

import "context"

// Store defines the interface for session storage operations. Exactly one
// session exists per session token.
type Store interface {
	// Create creates a new session with Version set to 1.
	Create(ctx context.Context, data *SessionData) error

	// Get retrieves a session by token.
	// Returns nil if the session is not found (not an error).
	Get(ctx context.Context, token string) (*SessionData, error)

	// Update updates an existing session with optimistic locking.
	// Verifies the Version matches the stored version, increments Version,
	// updates UpdatedAt timestamp, and persists the SessionData.
	// Returns ErrVersionConflict if the version does not match.
	// Returns ErrNotFound if the session does not exist.
	Update(ctx context.Context, data *SessionData) error

	// Delete deletes a session by token.
	Delete(ctx context.Context, token string) error

	// Close closes the store and releases any resources.
	Close() error
}
