package leadchat

import "math"

// Score bounds for each BANT sub-score.
const (
	MinSubScore = 0.0
	MaxSubScore = 10.0
)

// Score holds the four BANT sub-scores plus the derived overall value.
// Overall is always the arithmetic mean of the four sub-scores and is
// recomputed by MergeScore; it is never set independently.
type Score struct {
	Budget    float64 `json:"budget"`
	Authority float64 `json:"authority"`
	Need      float64 `json:"need"`
	Timeline  float64 `json:"timeline"`
	Overall   float64 `json:"overall"`
}

// ScoreUpdate is a partial BANT score update. Nil fields leave the prior
// value untouched.
type ScoreUpdate struct {
	Budget    *float64 `json:"budget,omitempty"`
	Authority *float64 `json:"authority,omitempty"`
	Need      *float64 `json:"need,omitempty"`
	Timeline  *float64 `json:"timeline,omitempty"`
}

// IsEmpty reports whether the update supplies no sub-scores at all.
func (u ScoreUpdate) IsEmpty() bool {
	return u.Budget == nil && u.Authority == nil && u.Need == nil && u.Timeline == nil
}

// MergeScore folds a partial score update into a previous score. Supplied
// sub-scores replace the previous values and are clamped to [0,10];
// out-of-range input is absorbed, not rejected. Overall is recomputed as
// the mean of the four post-clamp sub-scores. Pure function.
func MergeScore(previous Score, update ScoreUpdate) Score {
	merged := previous

	if update.Budget != nil {
		merged.Budget = clampSubScore(*update.Budget)
	}
	if update.Authority != nil {
		merged.Authority = clampSubScore(*update.Authority)
	}
	if update.Need != nil {
		merged.Need = clampSubScore(*update.Need)
	}
	if update.Timeline != nil {
		merged.Timeline = clampSubScore(*update.Timeline)
	}

	merged.Overall = (merged.Budget + merged.Authority + merged.Need + merged.Timeline) / 4

	return merged
}

// DisplayOverall returns the overall score rounded to one decimal place.
// Overall itself is stored at full precision.
func (s Score) DisplayOverall() float64 {
	return math.Round(s.Overall*10) / 10
}

func clampSubScore(v float64) float64 {
	if v < MinSubScore {
		return MinSubScore
	}
	if v > MaxSubScore {
		return MaxSubScore
	}
	return v
}
