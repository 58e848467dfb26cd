package scoring

import (
	"strings"

	"github.com/tfournier/aides-scout/internal/profile"
	"github.com/tfournier/aides-scout/internal/subsidy"
	"github.com/tfournier/aides-scout/internal/taxonomy"
)

// Amount boost tiers, monotonic in the declared maximum award.
const (
	amountTier1 = 10_000_000
	amountTier2 = 1_000_000
	amountTier3 = 500_000
	amountTier4 = 100_000

	amountTier1Boost = 12
	amountTier2Boost = 8
	amountTier3Boost = 5
	amountTier4Boost = 3
)

// SectorAwareAmountBoost rewards high-value programs, but only when the
// candidate already shows sector relevance: a large unrelated grant must
// never outrank a small relevant one. Irrelevant candidates get exactly 0
// whatever the amount.
func SectorAwareAmountBoost(s *subsidy.Subsidy, p *profile.AnalyzedProfile) int {
	if !hasSectorRelevance(s, p) {
		return 0
	}

	switch {
	case s.AmountMax >= amountTier1:
		return amountTier1Boost
	case s.AmountMax >= amountTier2:
		return amountTier2Boost
	case s.AmountMax >= amountTier3:
		return amountTier3Boost
	case s.AmountMax >= amountTier4:
		return amountTier4Boost
	default:
		return 0
	}
}

func hasSectorRelevance(s *subsidy.Subsidy, p *profile.AnalyzedProfile) bool {
	if s.IsUniversalSector {
		return true
	}

	if p.Sector != "" && s.PrimarySector != "" {
		profileSector := strings.ToLower(p.Sector)
		subsidySector := strings.ToLower(s.PrimarySector)
		if strings.Contains(profileSector, subsidySector) || strings.Contains(subsidySector, profileSector) {
			return true
		}
	}

	text := s.SearchableText()
	for _, keyword := range p.ThematicKeywords {
		if keyword != "" && strings.Contains(text, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}

// AgencyBoost returns the issuing agency's prestige boost, from +5 for
// national strategic agencies and EU programs down to +1 for municipal
// bodies.
func AgencyBoost(agencyName string) int {
	return taxonomy.AgencyBoost(agencyName)
}
