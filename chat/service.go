// Package chat orchestrates lead-qualification conversations: it owns the
// session aggregate's turn processing, booking, and lookup operations, and
// wires the scorer/extractor and logging-sink collaborators around them.
package chat

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/creastat/leadchat/gemini"
	"github.com/creastat/leadchat/session"
	"github.com/creastat/leadchat/supabase"
	"github.com/creastat/leadchat/vectorstore"
)

// ErrLeadIndexDisabled is returned by SimilarLeads when no embedder and
// vector store were configured.
var ErrLeadIndexDisabled = errors.New("lead index not configured")

// Timeout for detached collaborator calls (sink appends, lead indexing).
const collaboratorTimeout = 10 * time.Second

// Service processes conversation turns and call bookings for one deployment.
// Construct it explicitly and inject it where needed; it is safe for
// concurrent use.
type Service struct {
	store      session.Store
	ai         gemini.Responder
	sink       supabase.Sink
	embedder   gemini.Embedder
	leads      vectorstore.VectorStore
	logger     *zap.Logger
	leadSource string
}

// Option is a functional option for configuring the service.
type Option func(*Service)

// WithSink sets the logging sink. Without it, turn and booking rows are not
// logged anywhere.
func WithSink(sink supabase.Sink) Option {
	return func(s *Service) {
		s.sink = sink
	}
}

// WithLeadIndex enables similar-lead retrieval backed by the given embedder
// and vector store.
func WithLeadIndex(embedder gemini.Embedder, store vectorstore.VectorStore) Option {
	return func(s *Service) {
		s.embedder = embedder
		s.leads = store
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLeadSource sets the lead-source label stamped on conversation log
// rows. Default: "Website Chat".
func WithLeadSource(source string) Option {
	return func(s *Service) {
		s.leadSource = source
	}
}

// NewService creates a conversation service over the given session store
// and scorer/extractor.
func NewService(store session.Store, ai gemini.Responder, opts ...Option) *Service {
	s := &Service{
		store:      store,
		ai:         ai,
		logger:     zap.NewNop(),
		leadSource: "Website Chat",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Conversation looks up a session by token. Returns session.ErrNotFound if
// no session exists for the token; that is a normal negative result, not a
// fault.
func (s *Service) Conversation(ctx context.Context, token string) (*session.SessionData, error) {
	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

// detach runs fn on its own goroutine with a context that survives the
// caller's cancellation. Used for fire-and-forget collaborator calls whose
// failure must never fail the enclosing operation.
func (s *Service) detach(ctx context.Context, fn func(ctx context.Context)) {
	bg := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(bg, collaboratorTimeout)
		defer cancel()
		fn(ctx)
	}()
}

// mutate loads the session for token (creating it when createIfAbsent is
// set), applies fn, and persists the result. Optimistic-locking conflicts
// are retried by re-reading and re-applying: a conflict means another
// writer committed, so the loop makes progress and the last write wins.
// Returns the persisted session.
func (s *Service) mutate(ctx context.Context, token string, createIfAbsent bool, fn func(*session.SessionData) error) (*session.SessionData, error) {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sess, err := s.store.Get(ctx, token)
		if err != nil {
			return nil, err
		}

		created := false
		if sess == nil {
			if !createIfAbsent {
				return nil, session.ErrNotFound
			}
			sess = session.New(token)
			created = true
		}

		if err := fn(sess); err != nil {
			return nil, err
		}

		if created {
			if err := s.store.Create(ctx, sess); err != nil {
				return nil, err
			}
			return sess, nil
		}

		err = s.store.Update(ctx, sess)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, session.ErrVersionConflict) {
			return nil, err
		}
		s.logger.Debug("session version conflict, retrying",
			zap.String("session_token", token),
			zap.Int("attempt", attempt))
	}
}
