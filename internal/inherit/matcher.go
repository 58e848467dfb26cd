// Package inherit implements the offline template-inheritance tool: it
// finds subsidies with rich eligibility text and propagates adapted
// criteria to similar subsidies lacking it, gated by an AI validation step.
package inherit

import (
	"fmt"
	"strings"

	"github.com/tfournier/aides-scout/internal/subsidy"
	"github.com/tfournier/aides-scout/internal/textutil"
)

// Composite similarity weights. The sum of all factors caps at 1.05 in
// theory; the practical ceiling is around 1.0.
const (
	sameAgencyWeight    = 0.35
	titleWeight         = 0.25
	fundingTypeWeight   = 0.10
	regionOverlapWeight = 0.10
	sameSectorWeight    = 0.10
	categoryWeight      = 0.05
	entityOverlapWeight = 0.10
	descriptionWeight   = 0.10

	titleSimilarityFloor       = 0.4
	descriptionSimilarityFloor = 0.25
	minDescriptionLength       = 20

	// DefaultThreshold is the minimum composite score for a usable match.
	DefaultThreshold = 0.6

	// MinTemplateCriteriaLength is the minimum French criteria length for a
	// subsidy to qualify as a template.
	MinTemplateCriteriaLength = 50
)

// Match is the best template found for an incomplete subsidy.
type Match struct {
	Template *subsidy.Subsidy
	Score    float64
	Reasons  []string
}

// IsTemplate reports whether a subsidy qualifies as a criteria template.
func IsTemplate(s *subsidy.Subsidy) bool {
	if s == nil || !s.Active || !s.ForBusinesses {
		return false
	}
	return len([]rune(strings.TrimSpace(s.EligibilityCriteria.In(subsidy.DefaultLanguage)))) > MinTemplateCriteriaLength
}

// IsIncomplete reports whether a subsidy lacks eligibility criteria.
func IsIncomplete(s *subsidy.Subsidy) bool {
	if s == nil || !s.Active || !s.ForBusinesses {
		return false
	}
	return s.EligibilityCriteria.IsEmpty()
}

// FindBestMatch scores every template against the incomplete subsidy and
// returns the best one when it clears the threshold. Same-agency templates
// are tried first as an ordering hint; scores decide, ties keep the earlier
// candidate.
func FindBestMatch(incomplete *subsidy.Subsidy, templates []*subsidy.Subsidy, threshold float64) (*Match, bool) {
	if incomplete == nil || len(templates) == 0 {
		return nil, false
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	ordered := make([]*subsidy.Subsidy, 0, len(templates))
	var others []*subsidy.Subsidy
	for _, template := range templates {
		if template == nil || template.ID == incomplete.ID {
			continue
		}
		if strings.EqualFold(template.Agency, incomplete.Agency) {
			ordered = append(ordered, template)
		} else {
			others = append(others, template)
		}
	}
	ordered = append(ordered, others...)

	var best *Match
	for _, template := range ordered {
		score, reasons := compositeScore(incomplete, template)
		if best == nil || score > best.Score {
			best = &Match{Template: template, Score: score, Reasons: reasons}
		}
	}

	if best == nil || best.Score < threshold {
		return nil, false
	}
	return best, true
}

func compositeScore(incomplete, template *subsidy.Subsidy) (float64, []string) {
	score := 0.0
	var reasons []string

	if incomplete.Agency != "" && strings.EqualFold(incomplete.Agency, template.Agency) {
		score += sameAgencyWeight
		reasons = append(reasons, "même organisme: "+template.Agency)
	}

	titleSim := maxFloat(
		textutil.LevenshteinSimilarity(
			textutil.Normalize(incomplete.Title.Value()),
			textutil.Normalize(template.Title.Value()),
		),
		textutil.JaccardSimilarity(incomplete.Title.Value(), template.Title.Value()),
	)
	if titleSim > titleSimilarityFloor {
		score += titleSim * titleWeight
		reasons = append(reasons, fmt.Sprintf("titres similaires (%.2f)", titleSim))
	}

	if incomplete.FundingType != "" && strings.EqualFold(incomplete.FundingType, template.FundingType) {
		score += fundingTypeWeight
		reasons = append(reasons, "même type de financement: "+template.FundingType)
	}

	if regionsOverlap(incomplete.Regions, template.Regions) {
		score += regionOverlapWeight
		reasons = append(reasons, "régions communes")
	}

	if incomplete.PrimarySector != "" && strings.EqualFold(incomplete.PrimarySector, template.PrimarySector) {
		score += sameSectorWeight
		reasons = append(reasons, "même secteur: "+template.PrimarySector)
	}

	if stringsOverlap(incomplete.Categories, template.Categories) {
		score += categoryWeight
		reasons = append(reasons, "catégories communes")
	}

	if ratio := entityOverlapRatio(incomplete.LegalEntities, template.LegalEntities); ratio > 0 {
		score += ratio * entityOverlapWeight
		reasons = append(reasons, fmt.Sprintf("statuts éligibles communs (%.2f)", ratio))
	}

	if sim, ok := descriptionSimilarity(incomplete, template); ok {
		score += sim * descriptionWeight
		reasons = append(reasons, fmt.Sprintf("descriptions similaires (%.2f)", sim))
	}

	return score, reasons
}

func descriptionSimilarity(a, b *subsidy.Subsidy) (float64, bool) {
	descA := textutil.Normalize(a.Description.Value())
	descB := textutil.Normalize(b.Description.Value())
	if len([]rune(descA)) <= minDescriptionLength || len([]rune(descB)) <= minDescriptionLength {
		return 0, false
	}

	sim := textutil.JaccardSimilarity(descA, descB)
	if sim <= descriptionSimilarityFloor {
		return 0, false
	}
	return sim, true
}

func regionsOverlap(a, b []string) bool {
	for _, ra := range a {
		for _, rb := range b {
			if strings.EqualFold(strings.TrimSpace(ra), strings.TrimSpace(rb)) {
				return true
			}
		}
	}
	return false
}

func stringsOverlap(a, b []string) bool {
	for _, va := range a {
		for _, vb := range b {
			if strings.EqualFold(strings.TrimSpace(va), strings.TrimSpace(vb)) {
				return true
			}
		}
	}
	return false
}

// entityOverlapRatio is shared entities over the larger of the two lists.
func entityOverlapRatio(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	shared := 0
	for _, va := range a {
		for _, vb := range b {
			if strings.EqualFold(strings.TrimSpace(va), strings.TrimSpace(vb)) {
				shared++
				break
			}
		}
	}

	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(shared) / float64(larger)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
