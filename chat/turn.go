package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creastat/leadchat"
	"github.com/creastat/leadchat/gemini"
	"github.com/creastat/leadchat/insights"
	"github.com/creastat/leadchat/session"
	"github.com/creastat/leadchat/supabase"
)

// FallbackReply is substituted when the scorer/extractor fails or returns a
// response missing the required reply text.
const FallbackReply = "I apologize, but I'm experiencing some technical difficulties. Let me try to help you another way - could you tell me about your business needs?"

// TurnResult is the caller-visible outcome of one processed turn.
type TurnResult struct {
	SessionToken string           `json:"session_token"`
	Reply        string           `json:"reply"`
	Score        leadchat.Score   `json:"score"`
	Contact      leadchat.Contact `json:"contact"`
	Status       leadchat.Status  `json:"status"`
}

// ProcessTurn handles one inbound caller utterance: it appends the turn to
// the session transcript (creating the session lazily on first turn),
// invokes the scorer/extractor, folds the partial score and contact updates
// into session state, reclassifies the qualification status, and hands the
// turn with its insight annotations to the logging sink. An empty token
// starts a new session under a generated token.
//
// Collaborator failure never fails the turn: the fallback reply and a
// zero-valued score update are substituted, and sink or lead-index errors
// are logged and swallowed.
func (s *Service) ProcessTurn(ctx context.Context, token, message string) (*TurnResult, error) {
	if token == "" {
		token = uuid.NewString()
	}

	// Transcript window preceding this turn, for the scorer.
	var history []leadchat.Turn
	if existing, err := s.store.Get(ctx, token); err != nil {
		return nil, err
	} else if existing != nil {
		history = existing.Transcript
	}

	resp, err := s.ai.GenerateReply(ctx, gemini.Request{
		Message:      message,
		SessionToken: token,
		History:      history,
	})
	if err != nil {
		s.logger.Warn("scorer/extractor failed, using fallback reply",
			zap.String("session_token", token),
			zap.Error(err))
		resp = fallbackResponse()
	}

	sess, err := s.mutate(ctx, token, true, func(sess *session.SessionData) error {
		sess.AppendTurn(message, true)
		sess.AppendTurn(resp.Reply, false)
		sess.ApplyScore(resp.Score)
		sess.ApplyContact(resp.Contact)
		return nil
	})
	if err != nil {
		return nil, err
	}

	annotations := insights.Extract(message, resp.Reply, sess.Contact, sess.Score)
	s.logTurn(ctx, sess, message, resp.Reply, annotations)
	s.indexLead(ctx, sess, annotations)

	return &TurnResult{
		SessionToken: token,
		Reply:        resp.Reply,
		Score:        sess.Score,
		Contact:      sess.Contact,
		Status:       sess.Status,
	}, nil
}

// fallbackResponse carries the fixed reply and a zero-valued partial score
// (all four sub-scores 0), so score merging and classification still run
// deterministically after a collaborator failure.
func fallbackResponse() *gemini.Response {
	zero := 0.0
	return &gemini.Response{
		Reply: FallbackReply,
		Score: leadchat.ScoreUpdate{
			Budget:    &zero,
			Authority: &zero,
			Need:      &zero,
			Timeline:  &zero,
		},
	}
}

// logTurn appends the conversation row to the sink, fire-and-forget.
func (s *Service) logTurn(ctx context.Context, sess *session.SessionData, message, reply string, a insights.Annotations) {
	if s.sink == nil {
		return
	}

	row := supabase.ConversationRow{
		LoggedAt:         time.Now(),
		SessionToken:     sess.Token,
		CallerMessage:    message,
		AssistantReply:   reply,
		OverallScore:     sess.Score.DisplayOverall(),
		BudgetScore:      sess.Score.Budget,
		AuthorityScore:   sess.Score.Authority,
		NeedScore:        sess.Score.Need,
		TimelineScore:    sess.Score.Timeline,
		Name:             sess.Contact.Name,
		Company:          sess.Contact.Company,
		Email:            sess.Contact.Email,
		Phone:            sess.Contact.Phone,
		Title:            sess.Contact.Title,
		PainPoints:       a.PainPoints,
		BudgetRange:      a.BudgetMention,
		DecisionTimeline: a.TimelineMention,
		Status:           string(sess.Status),
		KeyInsights:      a.KeyInsights,
		NextActions:      a.NextAction,
		Industry:         a.Industry,
		CompanySize:      a.CompanySize,
		LeadSource:       s.leadSource,
	}

	token := sess.Token
	s.detach(ctx, func(ctx context.Context) {
		if err := s.sink.LogConversation(ctx, row); err != nil {
			s.logger.Warn("failed to log conversation row",
				zap.String("session_token", token),
				zap.Error(err))
		}
	})
}
