// Package insights derives heuristic annotations from raw utterance text
// via keyword and regex matching. The annotations are log-only enrichment
// consumed by the logging sink; nothing here feeds back into scoring or
// qualification status. All extraction is best-effort and resolves ties by
// first-match-in-declared-order.
package insights

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/creastat/leadchat"
)

// Annotations is the bundle produced for one turn pair (caller utterance +
// assistant reply). Empty strings mean "nothing found".
type Annotations struct {
	PainPoints      string
	BudgetMention   string
	TimelineMention string
	Industry        string
	CompanySize     string
	KeyInsights     string
	NextAction      string
}

var painKeywords = []string{
	"problem", "issue", "challenge", "struggle", "difficult",
	"pain", "frustrat", "concern", "worry",
}

var timelineKeywords = []string{
	"asap", "immediately", "urgent", "next month", "quarter",
	"year", "soon", "weeks", "months",
}

// Ordered: first matching category wins.
var industryTable = []struct {
	name     string
	keywords []string
}{
	{"tech", []string{"tech", "software", "app", "digital", "startup"}},
	{"healthcare", []string{"health", "medical", "clinic", "hospital"}},
	{"finance", []string{"bank", "finance", "investment", "capital"}},
	{"retail", []string{"store", "shop", "retail", "commerce"}},
	{"manufacturing", []string{"manufacturing", "factory", "production"}},
	{"education", []string{"school", "university", "education", "learning"}},
	{"real estate", []string{"real estate", "property", "realty"}},
	{"consulting", []string{"consulting", "advisory", "services"}},
}

var (
	budgetRe    = regexp.MustCompile(`(?i)(\$[\d,]+|\d+k|\d+\s*(dollars|k|thousand|million))`)
	sentenceRe  = regexp.MustCompile(`[.!?]+`)
	employeesRe = regexp.MustCompile(`(\d+)\s*(employees|people|staff)`)
)

// Extract derives the full annotation bundle for a turn pair. The contact
// profile supplies the company name for industry lookup; the score and
// contact together drive the recommended next action.
func Extract(callerText, assistantText string, contact leadchat.Contact, score leadchat.Score) Annotations {
	return Annotations{
		PainPoints:      PainPoints(callerText, assistantText),
		BudgetMention:   BudgetMention(callerText, assistantText),
		TimelineMention: TimelineMention(callerText, assistantText),
		Industry:        Industry(contact.Company),
		CompanySize:     CompanySize(callerText, assistantText),
		KeyInsights:     KeyInsights(callerText, assistantText),
		NextAction:      NextAction(score, contact),
	}
}

// PainPoints returns up to the first 2 sentences of the caller utterance
// containing a pain keyword, joined by ". ". The assistant reply only
// gates whether any keyword was mentioned at all.
func PainPoints(callerText, assistantText string) string {
	combined := strings.ToLower(callerText + " " + assistantText)

	found := false
	for _, kw := range painKeywords {
		if strings.Contains(combined, kw) {
			found = true
			break
		}
	}
	if !found {
		return ""
	}

	var matches []string
	for _, sentence := range sentenceRe.Split(callerText, -1) {
		lower := strings.ToLower(sentence)
		for _, kw := range painKeywords {
			if strings.Contains(lower, kw) {
				matches = append(matches, sentence)
				break
			}
		}
		if len(matches) == 2 {
			break
		}
	}

	return strings.TrimSpace(strings.Join(matches, ". "))
}

// BudgetMention returns the first currency or number-with-unit match
// (e.g. "$12,000", "15k", "2 million") across the combined text.
func BudgetMention(callerText, assistantText string) string {
	return budgetRe.FindString(callerText + " " + assistantText)
}

// TimelineMention returns the first hit from the urgency/timeframe
// vocabulary, in declared order.
func TimelineMention(callerText, assistantText string) string {
	combined := strings.ToLower(callerText + " " + assistantText)
	for _, kw := range timelineKeywords {
		if strings.Contains(combined, kw) {
			return kw
		}
	}
	return ""
}

// Industry maps a company name to an industry category by keyword lookup.
// The first matching category in the table wins.
func Industry(company string) string {
	lower := strings.ToLower(company)
	if lower == "" {
		return ""
	}
	for _, entry := range industryTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.name
			}
		}
	}
	return ""
}

// CompanySize buckets the company into Small/Medium/Large tiers. Keyword
// rules are checked first, in order; otherwise an explicit employee count
// mention is bucketed into the same tiers.
func CompanySize(callerText, assistantText string) string {
	combined := strings.ToLower(callerText + " " + assistantText)

	if strings.Contains(combined, "startup") || strings.Contains(combined, "small business") {
		return "Small (1-50)"
	}
	if strings.Contains(combined, "medium") || strings.Contains(combined, "growing") {
		return "Medium (51-200)"
	}
	if strings.Contains(combined, "enterprise") || strings.Contains(combined, "large") {
		return "Large (200+)"
	}

	if m := employeesRe.FindStringSubmatch(combined); m != nil {
		count, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case count <= 50:
				return "Small (1-50)"
			case count <= 200:
				return "Medium (51-200)"
			default:
				return "Large (200+)"
			}
		}
	}

	return ""
}

// KeyInsights returns up to 3 short labels triggered by fixed keyword
// groups (competitor mention, decision-maker language, urgency language,
// price-sensitivity language), checked in that order and joined by ", ".
func KeyInsights(callerText, assistantText string) string {
	combined := strings.ToLower(callerText + " " + assistantText)

	var labels []string
	if strings.Contains(combined, "competitor") || strings.Contains(combined, "alternative") {
		labels = append(labels, "Has alternatives in mind")
	}
	if strings.Contains(combined, "decision maker") || strings.Contains(combined, "ceo") || strings.Contains(combined, "owner") {
		labels = append(labels, "Decision maker")
	}
	if strings.Contains(combined, "urgent") || strings.Contains(combined, "asap") {
		labels = append(labels, "Urgent need")
	}
	if strings.Contains(combined, "budget") || strings.Contains(combined, "price") || strings.Contains(combined, "cost") {
		labels = append(labels, "Price conscious")
	}

	if len(labels) > 3 {
		labels = labels[:3]
	}
	return strings.Join(labels, ", ")
}

// NextAction is a fixed decision table keyed on the overall score bucket
// and the presence of any contact channel.
func NextAction(score leadchat.Score, contact leadchat.Contact) string {
	overall := score.Overall
	hasContact := contact.HasChannel()

	switch {
	case overall >= 8 && hasContact:
		return "Schedule demo call immediately"
	case overall >= 6 && hasContact:
		return "Send detailed proposal"
	case overall >= 4:
		return "Continue qualification, gather contact info"
	case hasContact:
		return "Add to nurture campaign"
	default:
		return "Continue conversation to increase qualification"
	}
}
