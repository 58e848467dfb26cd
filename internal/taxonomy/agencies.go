package taxonomy

import "strings"

// AgencyTier associates an agency-name pattern with its prestige boost.
// The list is ordered from most to least specific: the first matching
// pattern wins, so specific agency names must appear before the generic
// territorial patterns that could also match them.
type AgencyTier struct {
	Pattern string
	Boost   int
}

var agencyTiers = []AgencyTier{
	// National strategic agencies and EU programs.
	{Pattern: "bpifrance", Boost: 5},
	{Pattern: "france 2030", Boost: 5},
	{Pattern: "horizon europe", Boost: 5},
	{Pattern: "commission européenne", Boost: 5},
	{Pattern: "feder", Boost: 5},
	{Pattern: "feader", Boost: 5},
	// National sectoral operators.
	{Pattern: "ademe", Boost: 4},
	{Pattern: "franceagrimer", Boost: 4},
	{Pattern: "france num", Boost: 4},
	{Pattern: "agence de l'eau", Boost: 4},
	{Pattern: "anr", Boost: 4},
	// Regional councils.
	{Pattern: "conseil régional", Boost: 3},
	{Pattern: "région", Boost: 3},
	{Pattern: "region", Boost: 3},
	// Departmental bodies and chambers.
	{Pattern: "conseil départemental", Boost: 2},
	{Pattern: "département", Boost: 2},
	{Pattern: "chambre de commerce", Boost: 2},
	{Pattern: "chambre d'agriculture", Boost: 2},
	{Pattern: "chambre de métiers", Boost: 2},
	// Municipal-level bodies.
	{Pattern: "métropole", Boost: 1},
	{Pattern: "communauté de communes", Boost: 1},
	{Pattern: "communauté d'agglomération", Boost: 1},
	{Pattern: "mairie", Boost: 1},
	{Pattern: "commune", Boost: 1},
	{Pattern: "ville de", Boost: 1},
}

// AgencyBoost returns the prestige boost for an agency name, matching the
// tier patterns in order. Unmatched agencies get no boost.
func AgencyBoost(agencyName string) int {
	lower := strings.ToLower(strings.TrimSpace(agencyName))
	if lower == "" {
		return 0
	}
	for _, tier := range agencyTiers {
		if strings.Contains(lower, tier.Pattern) {
			return tier.Boost
		}
	}
	return 0
}

// NegationMarkers are the phrases that, when found shortly before an
// exclusion keyword in a subsidy title, indicate the keyword is being carved
// out rather than targeted ("ouvert à tous secteurs sauf musique").
var NegationMarkers = []string{
	"sauf", "hors", "à l'exception", "excepté", "exclu", "non éligible",
}
