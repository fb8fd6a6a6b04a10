package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creastat/leadchat/insights"
	"github.com/creastat/leadchat/session"
	"github.com/creastat/leadchat/vectorstore"
)

// SimilarLeads embeds a free-text lead description and searches the lead
// index for the closest qualified leads seen so far.
func (s *Service) SimilarLeads(ctx context.Context, description string, limit int) ([]vectorstore.SearchResult, error) {
	if s.embedder == nil || s.leads == nil {
		return nil, ErrLeadIndexDisabled
	}
	if limit <= 0 {
		limit = 5
	}

	vector, err := s.embedder.Embed(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return s.leads.Search(ctx, vector, vectorstore.SearchFilter{}, limit)
}

// indexLead upserts the session's current lead summary into the lead index,
// fire-and-forget. One point per session, keyed on a UUID derived from the
// session token so re-indexing overwrites.
func (s *Service) indexLead(ctx context.Context, sess *session.SessionData, a insights.Annotations) {
	if s.embedder == nil || s.leads == nil {
		return
	}

	summary := leadSummary(sess, a)
	point := vectorstore.Point{
		ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(sess.Token)).String(),
		Content:      summary,
		SessionToken: sess.Token,
		Metadata: map[string]any{
			"status":  string(sess.Status),
			"overall": sess.Score.DisplayOverall(),
		},
	}
	if a.Industry != "" {
		point.Metadata["industry"] = a.Industry
	}

	token := sess.Token
	s.detach(ctx, func(ctx context.Context) {
		vector, err := s.embedder.Embed(ctx, summary)
		if err != nil {
			s.logger.Warn("failed to embed lead summary",
				zap.String("session_token", token),
				zap.Error(err))
			return
		}
		point.Vector = vector

		if err := s.leads.Upsert(ctx, []vectorstore.Point{point}); err != nil {
			s.logger.Warn("failed to index lead",
				zap.String("session_token", token),
				zap.Error(err))
		}
	})
}

// leadSummary composes the text embedded for a session's lead-index point.
func leadSummary(sess *session.SessionData, a insights.Annotations) string {
	var parts []string

	if sess.Contact.Name != "" {
		who := sess.Contact.Name
		if sess.Contact.Title != "" {
			who += " (" + sess.Contact.Title + ")"
		}
		if sess.Contact.Company != "" {
			who += " at " + sess.Contact.Company
		}
		parts = append(parts, who)
	} else if sess.Contact.Company != "" {
		parts = append(parts, sess.Contact.Company)
	}

	parts = append(parts, fmt.Sprintf("status %s, overall score %.1f", sess.Status, sess.Score.DisplayOverall()))

	if a.Industry != "" {
		parts = append(parts, "industry: "+a.Industry)
	}
	if a.PainPoints != "" {
		parts = append(parts, "pain points: "+a.PainPoints)
	}
	if a.BudgetMention != "" {
		parts = append(parts, "budget: "+a.BudgetMention)
	}
	if a.TimelineMention != "" {
		parts = append(parts, "timeline: "+a.TimelineMention)
	}

	return strings.Join(parts, ". ")
}
