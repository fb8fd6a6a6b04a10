package vectorstore

import "context"

// VectorStore is a technology-agnostic interface for vector storage and
// similarity search over lead summaries. Implementations can use Qdrant,
// Pinecone, Supabase Vector, Weaviate, etc.
type VectorStore interface {
	// Upsert writes or overwrites points by ID.
	Upsert(ctx context.Context, points []Point) error

	// Search performs vector similarity search with optional filtering.
	Search(ctx context.Context, vector []float32, filter SearchFilter, limit int) ([]SearchResult, error)

	// Close releases any resources held by the vector store.
	Close() error
}

// Point is one stored lead summary with its embedding vector.
type Point struct {
	// ID is the unique identifier of the point (UUID).
	ID string

	// Vector is the embedding of Content.
	Vector []float32

	// Content is the lead summary text.
	Content string

	// SessionToken identifies the conversation session this lead belongs to.
	SessionToken string

	// Metadata contains additional key-value pairs (status, industry, …).
	Metadata map[string]any
}

// SearchFilter defines filtering options for vector search.
type SearchFilter struct {
	// SessionToken filters results to a specific session.
	SessionToken string

	// Metadata filters results by metadata key-value pairs.
	Metadata map[string]any

	// MinScore filters results below this similarity threshold (0.0-1.0).
	MinScore float32
}

// SearchResult represents a single result from vector similarity search.
type SearchResult struct {
	// ID is the unique identifier of the result.
	ID string

	// Score is the similarity score (0.0-1.0, higher is more similar).
	Score float32

	// Content is the lead summary associated with this vector.
	Content string

	// SessionToken identifies the session this lead belongs to.
	SessionToken string

	// Metadata contains additional key-value pairs.
	Metadata map[string]any
}
