package taxonomy

import "strings"

// Size category bands, ordinal from smallest to largest. The names follow
// the French administrative vocabulary so they can be matched against the
// entity labels a subsidy declares.
const (
	SizeTPE    = "TPE"
	SizePME    = "PME"
	SizeETI    = "ETI"
	SizeGrande = "Grande entreprise"
)

// SizeCategory buckets an employee count into one of the four bands.
func SizeCategory(employees int) string {
	switch {
	case employees < 10:
		return SizeTPE
	case employees < 250:
		return SizePME
	case employees < 5000:
		return SizeETI
	default:
		return SizeGrande
	}
}

// legalFormEntities maps a normalized legal form to the entity-type labels
// it is compatible with. Forms overlap on purpose: a SAS is at once an
// "Entreprise", a potential "PME" and a potential "Startup".
var legalFormEntities = map[string][]string{
	"sas":  {"Entreprise", "Société", "PME", "TPE", "ETI", "Startup"},
	"sasu": {"Entreprise", "Société", "PME", "TPE", "Startup"},
	"sarl": {"Entreprise", "Société", "PME", "TPE"},
	"eurl": {"Entreprise", "Société", "TPE", "PME"},
	"sa":   {"Entreprise", "Société", "PME", "ETI", "Grande entreprise"},
	"snc":  {"Entreprise", "Société", "TPE", "PME"},

	"ei":               {"Entreprise", "Entreprise individuelle", "TPE", "Indépendant"},
	"eirl":             {"Entreprise", "Entreprise individuelle", "TPE", "Indépendant"},
	"micro-entreprise": {"Entreprise", "Entreprise individuelle", "Micro-entreprise", "TPE", "Indépendant"},
	"auto-entrepreneur": {
		"Entreprise", "Entreprise individuelle", "Micro-entreprise", "TPE", "Indépendant",
	},

	"gaec": {"Exploitation agricole", "Société agricole", "Agriculteur", "Entreprise"},
	"earl": {"Exploitation agricole", "Société agricole", "Agriculteur", "Entreprise"},
	"scea": {"Exploitation agricole", "Société agricole", "Agriculteur", "Entreprise"},

	"scop":        {"Coopérative", "ESS", "Entreprise", "Société", "PME"},
	"scic":        {"Coopérative", "ESS", "Entreprise", "Société"},
	"cooperative": {"Coopérative", "ESS", "Entreprise"},
	"coopérative": {"Coopérative", "ESS", "Entreprise"},

	"association":      {"Association", "ESS", "Organisme à but non lucratif"},
	"association 1901": {"Association", "ESS", "Organisme à but non lucratif"},
	"fondation":        {"Fondation", "ESS", "Organisme à but non lucratif"},

	"collectivité":           {"Collectivité", "Secteur public", "Organisme public"},
	"collectivite":           {"Collectivité", "Secteur public", "Organisme public"},
	"établissement public":   {"Organisme public", "Secteur public"},
	"etablissement public":   {"Organisme public", "Secteur public"},
	"epic":                   {"Organisme public", "Secteur public", "Entreprise"},
	"groupement d'intérêt public": {"Organisme public", "Secteur public"},
}

// EntityLabels maps a legal form to its compatible entity-type labels. The
// match is case-insensitive and trims surrounding whitespace; unknown forms
// fall back to the generic company labels so missing data never disqualifies
// a profile on its own.
func EntityLabels(legalForm string) []string {
	normalized := strings.ToLower(strings.TrimSpace(legalForm))
	if labels, ok := legalFormEntities[normalized]; ok {
		return cloned(labels)
	}
	return []string{"Entreprise", "Société"}
}

// GenericEntityLabels marks subsidy entity labels that accept any applicant.
var GenericEntityLabels = []string{"entreprise", "entreprises", "tous", "toutes", "tout public"}

// IsGenericEntityLabel reports whether a subsidy entity label is universal.
func IsGenericEntityLabel(label string) bool {
	lower := strings.ToLower(strings.TrimSpace(label))
	for _, generic := range GenericEntityLabels {
		if lower == generic {
			return true
		}
	}
	return false
}
