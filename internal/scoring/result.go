// Package scoring implements the deterministic relevance scorer: hard
// filters, the weighted multi-factor pre-score, the batch ranking pass and
// the sector-gated amount/agency boosts.
package scoring

import "github.com/tfournier/aides-scout/internal/subsidy"

// Score bounds for the deterministic pass.
const (
	MinScore = -100
	MaxScore = 100

	sectorExclusionScore = -50
	entityMismatchScore  = -100
)

// Result is the outcome of scoring one (profile, subsidy) pair. It is
// ephemeral: recommendation events may be logged externally but the result
// itself is never persisted.
type Result struct {
	// PreScore is clamped to [-100, 100].
	PreScore int `json:"pre_score"`
	// HardFiltered is true when a disqualifying condition short-circuited
	// the soft factors. Reasons is empty in that case.
	HardFiltered bool   `json:"hard_filtered"`
	FilterReason string `json:"filter_reason,omitempty"`
	// Reasons lists the awarded factors in evaluation order.
	Reasons []string `json:"reasons,omitempty"`
}

// Scored pairs a candidate with its result, as returned by the batch pass.
type Scored struct {
	Subsidy *subsidy.Subsidy `json:"subsidy"`
	Result  Result           `json:"result"`
}

func clampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
