package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/creastat/leadchat"
)

// ErrEmptyReply is returned when the model response is missing the required
// reply text.
var ErrEmptyReply = errors.New("empty reply from model")

// Config holds Gemini connection configuration.
type Config struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string

	// Model is the generation model name. Default: "gemini-2.5-flash".
	Model string

	// HistoryTokenLimit caps the estimated token count of the transcript
	// window sent with each request. Default: 3000.
	HistoryTokenLimit int

	// HistoryMessageLimit caps the number of transcript turns sent with
	// each request. Default: 20.
	HistoryMessageLimit int
}

// Client implements Responder using the Google Gemini API.
type Client struct {
	client        *genai.Client
	model         string
	historyTokens int
	historyTurns  int
}

// New creates a new Gemini client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.HistoryTokenLimit <= 0 {
		cfg.HistoryTokenLimit = 3000
	}
	if cfg.HistoryMessageLimit <= 0 {
		cfg.HistoryMessageLimit = 20
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client:        client,
		model:         cfg.Model,
		historyTokens: cfg.HistoryTokenLimit,
		historyTurns:  cfg.HistoryMessageLimit,
	}, nil
}

// wireResponse mirrors the JSON shape requested via the response schema.
type wireResponse struct {
	Response    string                  `json:"response"`
	LeadScore   *leadchat.ScoreUpdate   `json:"leadScore,omitempty"`
	ContactInfo *leadchat.ContactUpdate `json:"contactInfo,omitempty"`
}

// GenerateReply implements Responder.
func (c *Client) GenerateReply(ctx context.Context, req Request) (*Response, error) {
	prompt := c.buildPrompt(req)

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate failed: %w", err)
	}

	return parseWireResponse(result.Text())
}

// parseWireResponse decodes the model's JSON payload into a Response.
// Returns ErrEmptyReply when the payload or its reply text is missing.
func parseWireResponse(raw string) (*Response, error) {
	if raw == "" {
		return nil, ErrEmptyReply
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("malformed gemini response: %w", err)
	}
	if wire.Response == "" {
		return nil, ErrEmptyReply
	}

	resp := &Response{Reply: wire.Response}
	if wire.LeadScore != nil {
		resp.Score = *wire.LeadScore
	}
	if wire.ContactInfo != nil {
		resp.Contact = *wire.ContactInfo
	}
	return resp, nil
}

// buildPrompt assembles the sales prompt, the transcript window, and the
// inbound utterance.
func (c *Client) buildPrompt(req Request) string {
	history := leadchat.TruncateTranscript(req.History, c.historyTokens, c.historyTurns)

	var b strings.Builder
	b.WriteString(salesPrompt)
	b.WriteString("\n\nCurrent conversation:\n")
	for _, turn := range history {
		if turn.FromCaller {
			b.WriteString("User: ")
		} else {
			b.WriteString("Alex: ")
		}
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(req.Message)
	b.WriteString(`

Respond as Alex and provide:
1. A natural, conversational response
2. Lead qualification scores (0-10 for Budget, Authority, Need, Timeline)
3. Any contact information gathered from the conversation`)

	return b.String()
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"response": {Type: genai.TypeString},
			"leadScore": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"budget":    {Type: genai.TypeNumber},
					"authority": {Type: genai.TypeNumber},
					"need":      {Type: genai.TypeNumber},
					"timeline":  {Type: genai.TypeNumber},
				},
			},
			"contactInfo": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":    {Type: genai.TypeString},
					"email":   {Type: genai.TypeString},
					"phone":   {Type: genai.TypeString},
					"company": {Type: genai.TypeString},
					"title":   {Type: genai.TypeString},
				},
			},
		},
		Required: []string{"response"},
	}
}

// Compile-time check that Client implements Responder.
var _ Responder = (*Client)(nil)
