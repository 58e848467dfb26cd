package taxonomy

import "strings"

// sectorExclusions lists, per sector, title keywords that signal a subsidy
// aimed at an incompatible activity. A match in a subsidy title hard-filters
// the candidate unless the keyword is negated nearby ("sauf musique", ...).
var sectorExclusions = map[string][]string{
	"Agriculture": {
		"musique", "musical", "cinéma", "audiovisuel", "jeu vidéo",
		"spectacle vivant", "édition littéraire", "mode", "fintech",
	},
	"Agroalimentaire": {
		"musique", "cinéma", "jeu vidéo", "spectacle vivant", "fintech",
		"immobilier locatif",
	},
	"Construction": {
		"musique", "cinéma", "spectacle vivant", "agriculture biologique",
		"aquaculture", "pêche",
	},
	"Numérique": {
		"élevage", "aquaculture", "pêche", "viticulture", "exploitation agricole",
	},
	"Culture": {
		"exploitation agricole", "élevage", "industrie lourde", "btp",
	},
	"Industrie": {
		"spectacle vivant", "musique", "édition littéraire", "exploitation agricole",
	},
	"Tourisme": {
		"industrie lourde", "exploitation agricole", "élevage",
	},
	"Santé": {
		"musique", "spectacle vivant", "élevage", "btp",
	},
	"Transport": {
		"spectacle vivant", "musique", "exploitation agricole",
	},
	"Commerce": {
		"exploitation agricole", "élevage", "spectacle vivant",
	},
}

// sectorIndicators lists, per sector, thematic keywords used for broad
// semantic matching against subsidy text.
var sectorIndicators = map[string][]string{
	"Agriculture": {
		"agricole", "exploitation", "filière", "élevage", "cultures",
		"agroécologie", "rural", "terres",
	},
	"Agroalimentaire": {
		"alimentaire", "transformation", "agroalimentaire", "filière",
		"circuit court", "produits locaux",
	},
	"Construction": {
		"bâtiment", "travaux", "chantier", "btp", "rénovation", "construction",
	},
	"Numérique": {
		"numérique", "digital", "logiciel", "informatique", "données",
		"cybersécurité", "intelligence artificielle",
	},
	"Industrie": {
		"industriel", "production", "usine", "fabrication", "modernisation",
		"industrie du futur",
	},
	"Énergie": {
		"énergie", "énergétique", "renouvelable", "photovoltaïque", "réseaux",
	},
	"Environnement": {
		"environnement", "déchets", "eau", "recyclage", "biodiversité",
	},
	"Culture": {
		"culturel", "création", "artistique", "patrimoine", "diffusion",
	},
	"Tourisme": {
		"touristique", "hébergement", "restauration", "attractivité",
	},
	"Santé": {
		"santé", "médical", "soins", "dispositif médical", "e-santé",
	},
	"Transport": {
		"transport", "logistique", "mobilité", "fret",
	},
	"Commerce": {
		"commerce", "artisanat", "proximité", "centre-ville",
	},
	"Formation": {
		"formation", "compétences", "apprentissage", "qualification",
	},
	"Recherche": {
		"recherche", "innovation", "laboratoire", "développement expérimental",
	},
	"Artisanat": {
		"artisanat", "métiers d'art", "savoir-faire", "atelier",
	},
	"Services": {
		"services", "conseil", "prestations",
	},
}

// frenchStopWords are skipped when extracting search terms from labels and
// free-text descriptions.
var frenchStopWords = map[string]struct{}{
	"avec": {}, "dans": {}, "pour": {}, "sans": {}, "sous": {}, "chez": {},
	"cette": {}, "cettes": {}, "votre": {}, "notre": {}, "leur": {}, "leurs": {},
	"tous": {}, "toutes": {}, "autre": {}, "autres": {}, "ainsi": {}, "alors": {},
	"aussi": {}, "comme": {}, "donc": {}, "encore": {}, "entre": {}, "être": {},
	"elle": {}, "elles": {}, "fait": {}, "faire": {}, "ici": {}, "mais": {},
	"même": {}, "plus": {}, "très": {}, "vous": {}, "nous": {}, "ils": {},
	"une": {}, "des": {}, "les": {}, "qui": {}, "que": {}, "quoi": {},
	"dont": {}, "lors": {}, "afin": {}, "selon": {}, "vers": {}, "par": {},
	"sur": {}, "est": {}, "sont": {}, "ont": {}, "activité": {}, "activités": {},
	"entreprise": {}, "société": {},
}

// IsStopWord reports whether the lowercased word is a French stop word.
func IsStopWord(word string) bool {
	_, ok := frenchStopWords[strings.ToLower(word)]
	return ok
}

// ExclusionKeywords returns the exclusion keyword set for a sector. Unknown
// sectors have no exclusions.
func ExclusionKeywords(sector string) []string {
	return cloned(sectorExclusions[sector])
}

// IndicatorKeywords returns the thematic indicator set for a sector.
func IndicatorKeywords(sector string) []string {
	return cloned(sectorIndicators[sector])
}

func cloned(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// CertificationSynonyms expands a certification string into extra search
// terms. The certification is matched by lowercase substring.
func CertificationSynonyms(certification string) []string {
	lower := strings.ToLower(certification)
	var out []string
	if strings.Contains(lower, "bio") {
		out = append(out, "bio", "biologique")
	}
	if strings.Contains(lower, "hve") {
		out = append(out, "haute valeur environnementale")
	}
	if strings.Contains(lower, "rge") {
		out = append(out, "rénovation énergétique")
	}
	if strings.Contains(lower, "qualiopi") {
		out = append(out, "formation professionnelle")
	}
	return out
}

// CertificationKeywords expands a certification string into thematic keyword
// clusters.
func CertificationKeywords(certification string) []string {
	lower := strings.ToLower(certification)
	var out []string
	if strings.Contains(lower, "bio") {
		out = append(out, "agriculture biologique", "conversion bio", "label bio")
	}
	if strings.Contains(lower, "hve") {
		out = append(out, "haute valeur environnementale", "certification environnementale", "agroécologie")
	}
	if strings.Contains(lower, "iso 14001") || strings.Contains(lower, "iso14001") {
		out = append(out, "management environnemental", "certification iso", "performance environnementale")
	}
	if strings.Contains(lower, "rge") {
		out = append(out, "rénovation énergétique", "efficacité énergétique", "travaux énergétiques")
	}
	return out
}

// DescriptionKeywords derives thematic clusters from trigger words appearing
// in the free-text activity description.
func DescriptionKeywords(description string) []string {
	lower := strings.ToLower(description)
	var out []string
	if strings.Contains(lower, "construction") || strings.Contains(lower, "bâtiment") {
		out = append(out, "bâtiment", "travaux", "construction durable")
	}
	if strings.Contains(lower, "écologique") || strings.Contains(lower, "durable") {
		out = append(out, "transition écologique", "développement durable", "environnement")
	}
	return out
}

// ActivityKeywords derives thematic clusters from enrichment business
// activity phrases.
func ActivityKeywords(activity string) []string {
	lower := strings.ToLower(activity)
	var out []string
	if strings.Contains(lower, "construction") || strings.Contains(lower, "bâtiment") {
		out = append(out, "construction", "bâtiment", "rénovation")
	}
	if strings.Contains(lower, "bois") {
		out = append(out, "filière bois", "construction bois", "matériaux biosourcés")
	}
	if strings.Contains(lower, "énergie") || strings.Contains(lower, "energie") {
		out = append(out, "énergie", "transition énergétique", "énergies renouvelables")
	}
	return out
}

// Enrichment sub-score tiers (§ website intelligence). Each tier adds a
// successively larger cluster once the score crosses its threshold.
var (
	innovationBaseKeywords   = []string{"innovation", "recherche développement", "r&d"}
	innovationStrongKeywords = []string{"innovation de rupture", "deeptech", "propriété industrielle"}

	sustainabilityBaseKeywords   = []string{"développement durable", "transition écologique"}
	sustainabilityMidKeywords    = []string{"décarbonation", "sobriété énergétique", "impact environnemental"}
	sustainabilityStrongKeywords = []string{"économie circulaire", "réemploi", "écoconception"}

	exportKeywords  = []string{"export", "international", "développement à l'international"}
	digitalKeywords = []string{"transformation numérique", "digitalisation"}
)

// InnovationKeywords returns tiered innovation clusters for a 0-100 score.
func InnovationKeywords(score int) []string {
	var out []string
	if score >= 50 {
		out = append(out, innovationBaseKeywords...)
	}
	if score >= 70 {
		out = append(out, innovationStrongKeywords...)
	}
	return out
}

// SustainabilityKeywords returns tiered sustainability clusters for a 0-100
// score. The top tier adds circular-economy terms.
func SustainabilityKeywords(score int) []string {
	var out []string
	if score >= 50 {
		out = append(out, sustainabilityBaseKeywords...)
	}
	if score >= 70 {
		out = append(out, sustainabilityMidKeywords...)
	}
	if score >= 80 {
		out = append(out, sustainabilityStrongKeywords...)
	}
	return out
}

// ExportKeywords returns the export cluster once the score reaches 50.
func ExportKeywords(score int) []string {
	if score >= 50 {
		return cloned(exportKeywords)
	}
	return nil
}

// DigitalKeywords returns the digital cluster once the score reaches 50.
func DigitalKeywords(score int) []string {
	if score >= 50 {
		return cloned(digitalKeywords)
	}
	return nil
}

// projectTypeKeywords maps declared project-interest tags to canonical
// keyword sets.
var projectTypeKeywords = map[string][]string{
	"innovation": {"innovation", "r&d", "prototype"},
	"export":     {"export", "international", "prospection"},
	"embauche":   {"embauche", "recrutement", "création d'emploi"},
	"formation":  {"formation", "compétences", "montée en compétences"},
	"écologie":   {"transition écologique", "environnement", "décarbonation"},
	"ecologie":   {"transition écologique", "environnement", "décarbonation"},
}

// ProjectTypeKeywords expands a declared project tag into its canonical
// keyword set. Unknown tags expand to nothing.
func ProjectTypeKeywords(tag string) []string {
	return cloned(projectTypeKeywords[strings.ToLower(strings.TrimSpace(tag))])
}
