package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creastat/leadchat"
)

func f(v float64) *float64 { return &v }

func TestNew(t *testing.T) {
	sess := New("tok-1")

	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, leadchat.StatusInProgress, sess.Status)
	assert.False(t, sess.Scored)
	assert.Empty(t, sess.Transcript)
	assert.Nil(t, sess.Booking)
}

func TestAppendTurn(t *testing.T) {
	sess := New("tok-1")

	first := sess.AppendTurn("hello", true)
	second := sess.AppendTurn("hi there, how can I help?", false)
	third := sess.AppendTurn("tell me more", true)

	require.Len(t, sess.Transcript, 3)
	assert.True(t, first.FromCaller)
	assert.False(t, second.FromCaller)
	assert.Greater(t, first.TokenCount, 0)

	// Timestamps are strictly increasing in append order.
	assert.True(t, second.Timestamp.After(first.Timestamp))
	assert.True(t, third.Timestamp.After(second.Timestamp))
}

func TestApplyScore(t *testing.T) {
	t.Run("merges, marks scored, and reclassifies", func(t *testing.T) {
		sess := New("tok-1")

		merged := sess.ApplyScore(leadchat.ScoreUpdate{
			Budget:    f(8),
			Authority: f(6),
			Need:      f(0),
			Timeline:  f(0),
		})

		assert.InDelta(t, 3.5, merged.Overall, 0.001)
		assert.True(t, sess.Scored)
		// Already scored and below the qualified threshold.
		assert.Equal(t, leadchat.StatusUnqualified, sess.Status)
	})

	t.Run("subsequent partial update keeps earlier sub-scores", func(t *testing.T) {
		sess := New("tok-1")
		sess.ApplyScore(leadchat.ScoreUpdate{Budget: f(8), Authority: f(6)})

		merged := sess.ApplyScore(leadchat.ScoreUpdate{Need: f(8), Timeline: f(8)})

		assert.InDelta(t, 7.5, merged.Overall, 0.001)
		assert.Equal(t, leadchat.StatusWarmLead, sess.Status)
	})

	t.Run("empty update does not mark the session scored", func(t *testing.T) {
		sess := New("tok-1")

		sess.ApplyScore(leadchat.ScoreUpdate{})

		assert.False(t, sess.Scored)
		assert.Equal(t, leadchat.StatusInProgress, sess.Status)
	})
}

func TestApplyContact(t *testing.T) {
	sess := New("tok-1")
	sess.ApplyScore(leadchat.ScoreUpdate{Budget: f(9), Authority: f(9), Need: f(9), Timeline: f(9)})
	statusBefore := sess.Status

	merged := sess.ApplyContact(leadchat.ContactUpdate{Name: "Jane", Email: "jane@x.com"})

	assert.Equal(t, "Jane", merged.Name)
	// Contact updates never change status by themselves.
	assert.Equal(t, statusBefore, sess.Status)
}

func TestBook(t *testing.T) {
	contact := leadchat.Contact{Name: "Jane Doe", Email: "jane@x.com"}
	slot := leadchat.Booking{Date: "2024-06-01", Time: "14:00", Type: leadchat.MeetingVideo}

	t.Run("stores booking and contact snapshot, forces call_booked", func(t *testing.T) {
		sess := New("tok-1")

		require.NoError(t, sess.Book(slot, contact))

		require.NotNil(t, sess.Booking)
		assert.Equal(t, "2024-06-01", sess.Booking.Date)
		assert.Equal(t, contact, sess.Contact)
		assert.Equal(t, leadchat.StatusCallBooked, sess.Status)
	})

	t.Run("call_booked is absorbing under later score updates", func(t *testing.T) {
		sess := New("tok-1")
		require.NoError(t, sess.Book(slot, contact))

		sess.ApplyScore(leadchat.ScoreUpdate{
			Budget:    f(0),
			Authority: f(0),
			Need:      f(0),
			Timeline:  f(0),
		})

		assert.Equal(t, leadchat.StatusCallBooked, sess.Status)
	})

	t.Run("booking again overwrites, last call wins", func(t *testing.T) {
		sess := New("tok-1")
		require.NoError(t, sess.Book(slot, contact))

		later := leadchat.Booking{Date: "2024-06-02", Time: "09:30", Type: leadchat.MeetingPhone}
		require.NoError(t, sess.Book(later, contact))

		assert.Equal(t, "2024-06-02", sess.Booking.Date)
		assert.Equal(t, leadchat.MeetingPhone, sess.Booking.Type)
	})

	t.Run("validation failure names the field and leaves state untouched", func(t *testing.T) {
		sess := New("tok-1")

		err := sess.Book(slot, leadchat.Contact{Name: "", Email: "a@b.com"})

		var verr *leadchat.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"name"}, verr.Missing)
		assert.Nil(t, sess.Booking)
		assert.Equal(t, leadchat.StatusInProgress, sess.Status)
	})
}
