package leadchat

// Status enumerates the qualification states of a conversation.
type Status string

const (
	StatusInProgress  Status = "in_progress"
	StatusUnqualified Status = "unqualified"
	StatusQualified   Status = "qualified"
	StatusWarmLead    Status = "warm_lead"
	StatusHotLead     Status = "hot_lead"
	StatusCallBooked  Status = "call_booked"
)

// Classification thresholds on the overall score, inclusive on the lower
// bound.
const (
	hotLeadThreshold   = 8.0
	warmLeadThreshold  = 6.0
	qualifiedThreshold = 4.0
)

// Classify maps an overall score to a qualification status. A booking
// short-circuits all score-based rules: once booked, the status is
// call_booked regardless of score. Below the qualified threshold, a session
// that has never received a sub-score update stays in_progress rather than
// unqualified. Total and deterministic.
func Classify(score Score, scored, hasBooking bool) Status {
	if hasBooking {
		return StatusCallBooked
	}

	switch {
	case score.Overall >= hotLeadThreshold:
		return StatusHotLead
	case score.Overall >= warmLeadThreshold:
		return StatusWarmLead
	case score.Overall >= qualifiedThreshold:
		return StatusQualified
	default:
		if !scored {
			return StatusInProgress
		}
		return StatusUnqualified
	}
}
