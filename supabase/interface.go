// Package supabase implements the logging-sink collaborator: an opaque
// append-only store that receives one flat row per conversation turn and
// per call booking. Appends are at-least-once-attempted and fire-and-forget
// with respect to turn processing; failures are logged by the caller, never
// surfaced.
package supabase

import (
	"context"
	"time"
)

// Sink receives flat log rows for conversation turns and call bookings.
type Sink interface {
	// LogConversation appends one conversation-turn row.
	LogConversation(ctx context.Context, row ConversationRow) error

	// LogBooking appends one call-booking row.
	LogBooking(ctx context.Context, row BookingRow) error

	// Close closes the sink and releases resources.
	Close() error
}

// ConversationRow is the flat record appended per processed turn: the turn
// pair, the session's current score and contact fields, and the insight
// annotations derived from the turn text.
type ConversationRow struct {
	LoggedAt         time.Time `json:"logged_at"`
	SessionToken     string    `json:"session_token"`
	CallerMessage    string    `json:"caller_message"`
	AssistantReply   string    `json:"assistant_reply"`
	OverallScore     float64   `json:"overall_score"`
	BudgetScore      float64   `json:"budget_score"`
	AuthorityScore   float64   `json:"authority_score"`
	NeedScore        float64   `json:"need_score"`
	TimelineScore    float64   `json:"timeline_score"`
	Name             string    `json:"name"`
	Company          string    `json:"company"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Title            string    `json:"title"`
	PainPoints       string    `json:"pain_points"`
	BudgetRange      string    `json:"budget_range"`
	DecisionTimeline string    `json:"decision_timeline"`
	Status           string    `json:"qualification_status"`
	KeyInsights      string    `json:"key_insights"`
	NextActions      string    `json:"next_actions"`
	Industry         string    `json:"industry"`
	CompanySize      string    `json:"company_size"`
	LeadSource       string    `json:"lead_source"`
}

// BookingRow is the flat record appended per successful call booking.
type BookingRow struct {
	BookedAt     time.Time `json:"booked_at"`
	SessionToken string    `json:"session_token"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Company      string    `json:"company"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	MeetingType  string    `json:"meeting_type"`
	OverallScore float64   `json:"overall_score"`
	Status       string    `json:"status"`
}
