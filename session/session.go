package session

import (
	"time"

	"github.com/creastat/leadchat"
)

// AppendTurn records one utterance on the transcript and returns the
// recorded turn. Timestamps are monotonically increasing within a session;
// a clock tie with the previous turn is broken by nudging the new timestamp
// forward, preserving append order.
func (s *SessionData) AppendTurn(content string, fromCaller bool) leadchat.Turn {
	ts := time.Now()
	if n := len(s.Transcript); n > 0 {
		if last := s.Transcript[n-1].Timestamp; !ts.After(last) {
			ts = last.Add(time.Nanosecond)
		}
	}

	turn := leadchat.Turn{
		Content:    content,
		FromCaller: fromCaller,
		TokenCount: leadchat.EstimateTokens(content),
		Timestamp:  ts,
	}
	s.Transcript = append(s.Transcript, turn)
	return turn
}

// ApplyScore merges a partial BANT score update into the session score and
// reclassifies the qualification status. A non-empty update marks the
// session as scored, which distinguishes "scored low" from "never scored"
// in classification. Returns the merged score.
func (s *SessionData) ApplyScore(update leadchat.ScoreUpdate) leadchat.Score {
	if !update.IsEmpty() {
		s.Scored = true
	}
	s.Score = leadchat.MergeScore(s.Score, update)
	s.Status = leadchat.Classify(s.Score, s.Scored, s.Booking != nil)
	return s.Score
}

// ApplyContact merges a partial contact update into the session profile.
// Contact updates never change the qualification status by themselves.
// Returns the merged profile.
func (s *SessionData) ApplyContact(update leadchat.ContactUpdate) leadchat.Contact {
	s.Contact = leadchat.MergeContact(s.Contact, update)
	return s.Contact
}

// Book validates and stores a call booking. The contact snapshot must carry
// name and email, and the booking date and time; otherwise a
// *leadchat.ValidationError naming the missing fields is returned and the
// session is left untouched. On success the booking and the validated
// contact snapshot are stored and the status is forced to call_booked, an
// absorbing state that later score updates never revert. Calling Book again
// overwrites the prior booking; there is never more than one booking per
// session.
func (s *SessionData) Book(booking leadchat.Booking, contact leadchat.Contact) error {
	if err := leadchat.ValidateBooking(contact, booking); err != nil {
		return err
	}

	b := booking
	s.Booking = &b
	s.Contact = contact
	s.Status = leadchat.StatusCallBooked
	return nil
}
