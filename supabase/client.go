package supabase

import (
	"context"
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// Config holds Supabase connection configuration.
type Config struct {
	URL    string
	APIKey string

	// ConversationsTable receives one row per processed turn.
	// Default: "lead_conversations".
	ConversationsTable string

	// BookingsTable receives one row per successful call booking.
	// Default: "lead_bookings".
	BookingsTable string
}

// Client implements the Sink interface using Supabase.
type Client struct {
	client             *supabase.Client
	conversationsTable string
	bookingsTable      string
}

// New creates a new Supabase sink client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	if cfg.ConversationsTable == "" {
		cfg.ConversationsTable = "lead_conversations"
	}
	if cfg.BookingsTable == "" {
		cfg.BookingsTable = "lead_bookings"
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		client:             client,
		conversationsTable: cfg.ConversationsTable,
		bookingsTable:      cfg.BookingsTable,
	}, nil
}

// LogConversation implements Sink.
func (c *Client) LogConversation(ctx context.Context, row ConversationRow) error {
	_, _, err := c.client.From(c.conversationsTable).
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to append conversation row: %w", err)
	}
	return nil
}

// LogBooking implements Sink.
func (c *Client) LogBooking(ctx context.Context, row BookingRow) error {
	_, _, err := c.client.From(c.bookingsTable).
		Insert(row, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to append booking row: %w", err)
	}
	return nil
}

// Close implements Sink.
func (c *Client) Close() error {
	// Supabase client doesn't require explicit close
	return nil
}

// Compile-time check that Client implements Sink.
var _ Sink = (*Client)(nil)
