package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// EmbedderConfig holds configuration for the embedding client.
type EmbedderConfig struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string

	// Model is the embedding model name. Default: "gemini-embedding-001".
	Model string

	// TaskType hints the embedding use case, e.g. "SEMANTIC_SIMILARITY",
	// "RETRIEVAL_DOCUMENT", "RETRIEVAL_QUERY".
	// Default: "SEMANTIC_SIMILARITY".
	TaskType string
}

// EmbedClient implements Embedder using Gemini embeddings.
type EmbedClient struct {
	client   *genai.Client
	model    string
	taskType string
}

// NewEmbedder creates a new Gemini embedding client.
func NewEmbedder(ctx context.Context, cfg EmbedderConfig) (*EmbedClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gemini-embedding-001"
	}
	if cfg.TaskType == "" {
		cfg.TaskType = "SEMANTIC_SIMILARITY"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &EmbedClient{
		client:   client,
		model:    cfg.Model,
		taskType: cfg.TaskType,
	}, nil
}

// Embed implements Embedder.
func (e *EmbedClient) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := e.client.Models.EmbedContent(ctx,
		e.model,
		contents,
		&genai.EmbedContentConfig{
			TaskType: e.taskType,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini embed failed: %w", err)
	}

	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return result.Embeddings[0].Values, nil
}

// Compile-time check that EmbedClient implements Embedder.
var _ Embedder = (*EmbedClient)(nil)
