package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/creastat/leadchat"
	"github.com/creastat/leadchat/insights"
	"github.com/creastat/leadchat/session"
	"github.com/creastat/leadchat/supabase"
)

// BookingConfirmation is returned to the caller after a successful booking,
// independent of whether the logging sink succeeds.
type BookingConfirmation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BookCall books a sales call on an existing session. The contact snapshot
// must carry name and email, and the booking date and time; otherwise a
// *leadchat.ValidationError naming the missing fields is returned. On
// success the session status becomes call_booked, an absorbing state later
// score updates never revert, and a booking row is handed to the sink,
// fire-and-forget. Booking again overwrites the prior booking.
func (s *Service) BookCall(ctx context.Context, token string, contact leadchat.Contact, booking leadchat.Booking) (*BookingConfirmation, error) {
	sess, err := s.mutate(ctx, token, false, func(sess *session.SessionData) error {
		return sess.Book(booking, contact)
	})
	if err != nil {
		return nil, err
	}

	s.logBooking(ctx, sess)
	s.indexLead(ctx, sess, insights.Annotations{
		Industry: insights.Industry(sess.Contact.Company),
	})

	return &BookingConfirmation{
		Success: true,
		Message: "Call booked successfully! You will receive a calendar invitation shortly.",
	}, nil
}

// logBooking appends the booking row to the sink, fire-and-forget.
func (s *Service) logBooking(ctx context.Context, sess *session.SessionData) {
	if s.sink == nil || sess.Booking == nil {
		return
	}

	row := supabase.BookingRow{
		BookedAt:     time.Now(),
		SessionToken: sess.Token,
		Name:         sess.Contact.Name,
		Email:        sess.Contact.Email,
		Phone:        sess.Contact.Phone,
		Company:      sess.Contact.Company,
		Title:        sess.Contact.Title,
		Date:         sess.Booking.Date,
		Time:         sess.Booking.Time,
		MeetingType:  string(sess.Booking.Type),
		OverallScore: sess.Score.DisplayOverall(),
		Status:       string(sess.Status),
	}

	token := sess.Token
	s.detach(ctx, func(ctx context.Context) {
		if err := s.sink.LogBooking(ctx, row); err != nil {
			s.logger.Warn("failed to log booking row",
				zap.String("session_token", token),
				zap.Error(err))
		}
	})
}
