package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creastat/leadchat"
	"github.com/creastat/leadchat/gemini"
	"github.com/creastat/leadchat/session"
	"github.com/creastat/leadchat/supabase"
	"github.com/creastat/leadchat/vectorstore"
)

func f(v float64) *float64 { return &v }

// fakeResponder returns canned responses, or fails.
type fakeResponder struct {
	mu        sync.Mutex
	responses []*gemini.Response
	err       error
	requests  []gemini.Request
}

func (r *fakeResponder) GenerateReply(ctx context.Context, req gemini.Request) (*gemini.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	resp := r.responses[0]
	if len(r.responses) > 1 {
		r.responses = r.responses[1:]
	}
	return resp, nil
}

// fakeSink records rows and signals each append on a channel.
type fakeSink struct {
	mu            sync.Mutex
	err           error
	conversations []supabase.ConversationRow
	bookings      []supabase.BookingRow
	appended      chan struct{}
}

func newFakeSink() *fakeSink {
	return &fakeSink{appended: make(chan struct{}, 16)}
}

func (s *fakeSink) LogConversation(ctx context.Context, row supabase.ConversationRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.appended <- struct{}{} }()
	if s.err != nil {
		return s.err
	}
	s.conversations = append(s.conversations, row)
	return nil
}

func (s *fakeSink) LogBooking(ctx context.Context, row supabase.BookingRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.appended <- struct{}{} }()
	if s.err != nil {
		return s.err
	}
	s.bookings = append(s.bookings, row)
	return nil
}

func (s *fakeSink) Close() error { return nil }

func (s *fakeSink) waitForAppend(t *testing.T) {
	t.Helper()
	select {
	case <-s.appended:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sink append")
	}
}

// fakeEmbedder returns a fixed vector.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

// fakeVectorStore records upserts and serves canned search results.
type fakeVectorStore struct {
	mu       sync.Mutex
	points   []vectorstore.Point
	results  []vectorstore.SearchResult
	upserted chan struct{}
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{upserted: make(chan struct{}, 16)}
}

func (v *fakeVectorStore) Upsert(ctx context.Context, points []vectorstore.Point) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.points = append(v.points, points...)
	v.upserted <- struct{}{}
	return nil
}

func (v *fakeVectorStore) Search(ctx context.Context, vector []float32, filter vectorstore.SearchFilter, limit int) ([]vectorstore.SearchResult, error) {
	return v.results, nil
}

func (v *fakeVectorStore) Close() error { return nil }

func newTestService(t *testing.T, ai gemini.Responder, opts ...Option) *Service {
	t.Helper()
	store, err := session.NewStore(session.StoreTypeMemory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store, ai, opts...)
}

func scoredResponse(reply string, budget, authority, need, timeline float64) *gemini.Response {
	return &gemini.Response{
		Reply: reply,
		Score: leadchat.ScoreUpdate{
			Budget:    f(budget),
			Authority: f(authority),
			Need:      f(need),
			Timeline:  f(timeline),
		},
	}
}

func TestProcessTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the session lazily and folds in the response", func(t *testing.T) {
		ai := &fakeResponder{responses: []*gemini.Response{
			scoredResponse("Tell me about your budget.", 8, 6, 0, 0),
		}}
		svc := newTestService(t, ai)

		result, err := svc.ProcessTurn(ctx, "tok-1", "We need a CRM")
		require.NoError(t, err)

		assert.Equal(t, "tok-1", result.SessionToken)
		assert.Equal(t, "Tell me about your budget.", result.Reply)
		assert.InDelta(t, 3.5, result.Score.Overall, 0.001)
		assert.Equal(t, leadchat.StatusUnqualified, result.Status)

		sess, err := svc.Conversation(ctx, "tok-1")
		require.NoError(t, err)
		require.Len(t, sess.Transcript, 2)
		assert.True(t, sess.Transcript[0].FromCaller)
		assert.Equal(t, "We need a CRM", sess.Transcript[0].Content)
		assert.False(t, sess.Transcript[1].FromCaller)
	})

	t.Run("generates a token when none is supplied", func(t *testing.T) {
		ai := &fakeResponder{responses: []*gemini.Response{{Reply: "Hi!"}}}
		svc := newTestService(t, ai)

		result, err := svc.ProcessTurn(ctx, "", "hello")
		require.NoError(t, err)

		assert.NotEmpty(t, result.SessionToken)
		_, err = svc.Conversation(ctx, result.SessionToken)
		assert.NoError(t, err)
	})

	t.Run("accumulates score and contact across turns", func(t *testing.T) {
		second := scoredResponse("Great, let's book a call.", 0, 0, 8, 8)
		second.Score.Budget = nil
		second.Score.Authority = nil
		second.Contact = leadchat.ContactUpdate{Name: "Jane", Email: "jane@x.com"}

		ai := &fakeResponder{responses: []*gemini.Response{
			scoredResponse("Noted.", 8, 6, 0, 0),
			second,
		}}
		svc := newTestService(t, ai)

		_, err := svc.ProcessTurn(ctx, "tok-1", "We have $50k budget and I'm the CTO")
		require.NoError(t, err)

		result, err := svc.ProcessTurn(ctx, "tok-1", "We need it next quarter, I'm jane@x.com")
		require.NoError(t, err)

		assert.InDelta(t, 7.5, result.Score.Overall, 0.001)
		assert.Equal(t, leadchat.StatusWarmLead, result.Status)
		assert.Equal(t, "Jane", result.Contact.Name)

		// The second request carried the first exchange as history.
		require.Len(t, ai.requests, 2)
		assert.Empty(t, ai.requests[0].History)
		assert.Len(t, ai.requests[1].History, 2)
	})

	t.Run("concurrent turns on one session all land", func(t *testing.T) {
		ai := &fakeResponder{responses: []*gemini.Response{{Reply: "Noted."}}}
		svc := newTestService(t, ai)

		_, err := svc.ProcessTurn(ctx, "tok-1", "hello")
		require.NoError(t, err)

		const workers = 8
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.ProcessTurn(ctx, "tok-1", "more detail")
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}

		sess, err := svc.Conversation(ctx, "tok-1")
		require.NoError(t, err)
		assert.Len(t, sess.Transcript, 2+2*workers)
	})

	t.Run("substitutes the fallback reply on collaborator failure", func(t *testing.T) {
		ai := &fakeResponder{err: errors.New("upstream unavailable")}
		svc := newTestService(t, ai)

		result, err := svc.ProcessTurn(ctx, "tok-1", "hello?")
		require.NoError(t, err)

		assert.Equal(t, FallbackReply, result.Reply)
		// The zero-valued fallback score counts as scored.
		assert.Equal(t, leadchat.StatusUnqualified, result.Status)
		assert.InDelta(t, 0, result.Score.Overall, 0.001)

		sess, err := svc.Conversation(ctx, "tok-1")
		require.NoError(t, err)
		assert.Len(t, sess.Transcript, 2)
	})

	t.Run("hands the annotated row to the sink", func(t *testing.T) {
		ai := &fakeResponder{responses: []*gemini.Response{
			{
				Reply:   "Understood.",
				Score:   leadchat.ScoreUpdate{Budget: f(7), Authority: f(7), Need: f(7), Timeline: f(7)},
				Contact: leadchat.ContactUpdate{Email: "jane@x.com", Company: "Acme Software"},
			},
		}}
		sink := newFakeSink()
		svc := newTestService(t, ai, WithSink(sink))

		_, err := svc.ProcessTurn(ctx, "tok-1", "We have a $15k budget and need this next quarter")
		require.NoError(t, err)
		sink.waitForAppend(t)

		sink.mu.Lock()
		defer sink.mu.Unlock()
		require.Len(t, sink.conversations, 1)
		row := sink.conversations[0]
		assert.Equal(t, "tok-1", row.SessionToken)
		assert.Equal(t, 7.0, row.OverallScore)
		assert.Equal(t, string(leadchat.StatusWarmLead), row.Status)
		assert.Equal(t, "quarter", row.DecisionTimeline)
		assert.NotEmpty(t, row.BudgetRange)
		assert.Equal(t, "tech", row.Industry)
		assert.Equal(t, "Send detailed proposal", row.NextActions)
		assert.Equal(t, "Website Chat", row.LeadSource)
	})

	t.Run("sink failure never fails the turn", func(t *testing.T) {
		ai := &fakeResponder{responses: []*gemini.Response{{Reply: "Hi!"}}}
		sink := newFakeSink()
		sink.err = errors.New("sink down")
		svc := newTestService(t, ai, WithSink(sink))

		result, err := svc.ProcessTurn(ctx, "tok-1", "hello")
		require.NoError(t, err)
		assert.Equal(t, "Hi!", result.Reply)
		sink.waitForAppend(t)
	})

	t.Run("indexes the lead summary", func(t *testing.T) {
		ai := &fakeResponder{responses: []*gemini.Response{
			{
				Reply:   "Noted.",
				Score:   leadchat.ScoreUpdate{Budget: f(8), Authority: f(8), Need: f(8), Timeline: f(8)},
				Contact: leadchat.ContactUpdate{Name: "Jane", Company: "Acme Software"},
			},
		}}
		leads := newFakeVectorStore()
		svc := newTestService(t, ai, WithLeadIndex(fakeEmbedder{}, leads))

		_, err := svc.ProcessTurn(ctx, "tok-1", "ready to buy")
		require.NoError(t, err)

		select {
		case <-leads.upserted:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for lead upsert")
		}

		leads.mu.Lock()
		defer leads.mu.Unlock()
		require.Len(t, leads.points, 1)
		point := leads.points[0]
		assert.Equal(t, "tok-1", point.SessionToken)
		assert.Contains(t, point.Content, "Jane")
		assert.Equal(t, string(leadchat.StatusHotLead), point.Metadata["status"])
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, point.Vector)
	})
}

func TestBookCall(t *testing.T) {
	ctx := context.Background()
	contact := leadchat.Contact{Name: "Jane Doe", Email: "jane@x.com"}
	slot := leadchat.Booking{Date: "2024-06-01", Time: "14:00", Type: leadchat.MeetingVideo}

	startSession := func(t *testing.T, svc *Service) {
		t.Helper()
		_, err := svc.ProcessTurn(ctx, "tok-1", "hello")
		require.NoError(t, err)
	}

	t.Run("books and confirms", func(t *testing.T) {
		ai := &fakeResponder{responses: []*gemini.Response{{Reply: "Hi!"}}}
		sink := newFakeSink()
		svc := newTestService(t, ai, WithSink(sink))
		startSession(t, svc)
		sink.waitForAppend(t)

		confirmation, err := svc.BookCall(ctx, "tok-1", contact, slot)
		require.NoError(t, err)
		assert.True(t, confirmation.Success)
		assert.Contains(t, confirmation.Message, "Call booked successfully")

		sess, err := svc.Conversation(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, leadchat.StatusCallBooked, sess.Status)
		require.NotNil(t, sess.Booking)

		sink.waitForAppend(t)
		sink.mu.Lock()
		defer sink.mu.Unlock()
		require.Len(t, sink.bookings, 1)
		assert.Equal(t, "Jane Doe", sink.bookings[0].Name)
		assert.Equal(t, "video", sink.bookings[0].MeetingType)
		assert.Equal(t, string(leadchat.StatusCallBooked), sink.bookings[0].Status)
	})

	t.Run("unknown session", func(t *testing.T) {
		svc := newTestService(t, &fakeResponder{responses: []*gemini.Response{{Reply: "Hi!"}}})

		_, err := svc.BookCall(ctx, "missing", contact, slot)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("validation error names the missing fields", func(t *testing.T) {
		svc := newTestService(t, &fakeResponder{responses: []*gemini.Response{{Reply: "Hi!"}}})
		startSession(t, svc)

		_, err := svc.BookCall(ctx, "tok-1", leadchat.Contact{Email: "a@b.com"}, slot)

		var verr *leadchat.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"name"}, verr.Missing)
	})

	t.Run("status stays call_booked after later turns", func(t *testing.T) {
		ai := &fakeResponder{responses: []*gemini.Response{
			{Reply: "Hi!"},
			scoredResponse("Noted.", 0, 0, 0, 0),
		}}
		svc := newTestService(t, ai)
		startSession(t, svc)

		_, err := svc.BookCall(ctx, "tok-1", contact, slot)
		require.NoError(t, err)

		result, err := svc.ProcessTurn(ctx, "tok-1", "actually never mind")
		require.NoError(t, err)
		assert.Equal(t, leadchat.StatusCallBooked, result.Status)
	})
}

func TestConversation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &fakeResponder{responses: []*gemini.Response{{Reply: "Hi!"}}})

	_, err := svc.Conversation(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSimilarLeads(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without a lead index", func(t *testing.T) {
		svc := newTestService(t, &fakeResponder{responses: []*gemini.Response{{Reply: "Hi!"}}})

		_, err := svc.SimilarLeads(ctx, "fintech CTO with urgent need", 3)
		assert.ErrorIs(t, err, ErrLeadIndexDisabled)
	})

	t.Run("embeds the query and searches", func(t *testing.T) {
		leads := newFakeVectorStore()
		leads.results = []vectorstore.SearchResult{{SessionToken: "tok-9", Score: 0.92}}
		svc := newTestService(t, &fakeResponder{responses: []*gemini.Response{{Reply: "Hi!"}}},
			WithLeadIndex(fakeEmbedder{}, leads))

		results, err := svc.SimilarLeads(ctx, "fintech CTO with urgent need", 3)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "tok-9", results[0].SessionToken)
	})
}
