// Package ai defines the contract between the deterministic pipeline and
// the external model provider. The pipeline works unmodified when no
// provider is configured: the AI step is a refinement, not a dependency.
package ai

import (
	"context"

	"github.com/tfournier/aides-scout/internal/profile"
	"github.com/tfournier/aides-scout/internal/subsidy"
)

// MinConfidence is the floor under which a positive validity verdict is not
// trusted: the model's own optimism past this point is ignored.
const MinConfidence = 70

// Assessment is the re-ranking result for one candidate.
type Assessment struct {
	// Score replaces the deterministic score when Adjusted is true.
	Score    int
	Adjusted bool
	Reasons  []string
	Raw      string
}

// Verdict is the validation result for a proposed criteria transfer.
type Verdict struct {
	Valid bool
	// Confidence is 0-100.
	Confidence      int
	AdaptedCriteria string
	Reason          string
	Raw             string
}

// Normalized downgrades a positive verdict whose confidence is below the
// trust floor. No write may happen on a non-normalized verdict.
func (v Verdict) Normalized() Verdict {
	if v.Valid && v.Confidence < MinConfidence {
		v.Valid = false
		if v.Reason == "" {
			v.Reason = "confidence below threshold"
		}
	}
	return v
}

// Reranker re-scores a deterministic shortlist candidate with richer
// context.
type Reranker interface {
	Rerank(ctx context.Context, p *profile.AnalyzedProfile, s *subsidy.Subsidy, preScore int) (*Assessment, error)
}

// Validator judges a proposed template-to-candidate criteria transfer. The
// adapted text must derive from the template's existing criteria; the
// validator never invents eligibility conditions.
type Validator interface {
	Validate(ctx context.Context, incomplete, template *subsidy.Subsidy, matchReasons []string) (*Verdict, error)
}
