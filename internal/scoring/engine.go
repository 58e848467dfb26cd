package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tfournier/aides-scout/internal/profile"
	"github.com/tfournier/aides-scout/internal/subsidy"
	"github.com/tfournier/aides-scout/internal/taxonomy"
)

// Per-factor caps. Each factor is awarded independently and the sum is
// clamped to [MinScore, MaxScore].
const (
	regionExactPoints     = 30
	regionNationalPoints  = 25
	regionUniversalPoints = 15

	sectorMatchPoints     = 25
	sectorUniversalPoints = 15
	sectorUnknownPoints   = 10

	textMatchFullPoints    = 20
	textMatchPerTermPoints = 7
	textMatchFullThreshold = 3

	thematicPerHitPoints = 5
	thematicMaxPoints    = 15

	keywordPerHitPoints = 3
	keywordMaxPoints    = 10

	certificationPoints = 10

	sizeCategoryBonus = 10

	agedYouthBonus    = 10
	agedYouthPenalty  = -20
	agedMaturityBonus = 5

	defaultYouthLimitYears    = 5
	defaultMaturityLimitYears = 7

	// negationWindow is how far back from an exclusion keyword a negation
	// marker still applies ("ouvert à tous secteurs sauf musique").
	negationWindow = 50
)

var (
	youthLimitPattern    = regexp.MustCompile(`moins de (\d+) ans`)
	youthPattern         = regexp.MustCompile(`jeune entreprise|moins de \d+ ans|startup|start-up`)
	maturityLimitPattern = regexp.MustCompile(`plus de (\d+) ans`)
	maturityPattern      = regexp.MustCompile(`entreprise établie|entreprises établies|plus de \d+ ans`)
)

// CalculatePreScore scores one candidate against an analyzed profile. It is
// pure and deterministic: no I/O, no shared mutable state, so it is safe to
// call concurrently for every (profile, subsidy) pair.
func CalculatePreScore(s *subsidy.Subsidy, p *profile.AnalyzedProfile) Result {
	if filtered, result := applySectorExclusion(s, p); filtered {
		return result
	}

	entityBonus, entityReason, mismatch, mismatchReason := checkEntityTypes(s, p)
	if mismatch {
		return Result{
			PreScore:     entityMismatchScore,
			HardFiltered: true,
			FilterReason: mismatchReason,
		}
	}

	text := s.SearchableText()
	score := 0
	reasons := make([]string, 0, 8)

	if entityBonus > 0 {
		score += entityBonus
		reasons = append(reasons, entityReason)
	}

	if points, reason := scoreRegion(s, p); points > 0 {
		score += points
		reasons = append(reasons, reason)
	}

	if points, reason := scoreSector(s, p); points > 0 {
		score += points
		reasons = append(reasons, reason)
	}

	if points, reason := scoreText(text, p.SearchTerms); points > 0 {
		score += points
		reasons = append(reasons, reason)
	}

	if points, reason := scoreThematic(text, p.ThematicKeywords); points > 0 {
		score += points
		reasons = append(reasons, reason)
	}

	if points, reason := scoreKeywordOverlap(s, p); points > 0 {
		score += points
		reasons = append(reasons, reason)
	}

	if points, reason := scoreCertifications(text, p.Certifications); points > 0 {
		score += points
		reasons = append(reasons, reason)
	}

	if points, reason := scoreCompanyAge(text, p.CompanyAge); points != 0 {
		score += points
		reasons = append(reasons, reason)
	}

	return Result{
		PreScore: clampScore(score),
		Reasons:  reasons,
	}
}

// applySectorExclusion hard-filters candidates whose title carries one of
// the profile's sector exclusion keywords, unless the keyword is negated
// within the preceding window.
func applySectorExclusion(s *subsidy.Subsidy, p *profile.AnalyzedProfile) (bool, Result) {
	title := strings.ToLower(s.Title.Value())
	if title == "" {
		return false, Result{}
	}

	for _, keyword := range p.ExclusionKeywords {
		lower := strings.ToLower(keyword)
		idx := strings.Index(title, lower)
		if idx < 0 {
			continue
		}
		if isNegated(title, idx) {
			continue
		}
		return true, Result{
			PreScore:     sectorExclusionScore,
			HardFiltered: true,
			FilterReason: fmt.Sprintf("secteur exclu: %q dans le titre", keyword),
		}
	}

	return false, Result{}
}

// isNegated scans the negationWindow runes preceding the keyword. The window
// is counted in runes, not bytes, so accented titles keep the full reach.
func isNegated(title string, keywordIndex int) bool {
	preceding := []rune(title[:keywordIndex])
	if len(preceding) > negationWindow {
		preceding = preceding[len(preceding)-negationWindow:]
	}
	window := string(preceding)
	for _, marker := range taxonomy.NegationMarkers {
		if strings.Contains(window, marker) {
			return true
		}
	}
	return false
}

// checkEntityTypes compares the subsidy's declared eligible entity labels
// against the labels mapped from the profile's legal form. A missing
// declaration means the program is open to everyone. An exact size-category
// match earns a small bonus instead of a bare pass.
func checkEntityTypes(s *subsidy.Subsidy, p *profile.AnalyzedProfile) (bonus int, bonusReason string, mismatch bool, mismatchReason string) {
	if len(s.LegalEntities) == 0 {
		return 0, "", false, ""
	}

	matched := false
	for _, declared := range s.LegalEntities {
		declaredLower := strings.ToLower(strings.TrimSpace(declared))
		if declaredLower == "" {
			continue
		}

		if taxonomy.IsGenericEntityLabel(declared) {
			matched = true
			continue
		}

		if strings.EqualFold(declaredLower, strings.ToLower(p.SizeCategory)) {
			return sizeCategoryBonus,
				fmt.Sprintf("Statut: catégorie %s éligible", p.SizeCategory),
				false, ""
		}

		for _, label := range p.EntityLabels {
			labelLower := strings.ToLower(label)
			if strings.Contains(declaredLower, labelLower) || strings.Contains(labelLower, declaredLower) {
				matched = true
				break
			}
		}
	}

	if matched {
		return 0, "", false, ""
	}

	return 0, "", true, fmt.Sprintf(
		"statut juridique incompatible: %s (%s) vs %s",
		p.LegalForm,
		strings.Join(p.EntityLabels, "/"),
		strings.Join(s.LegalEntities, "/"),
	)
}

func scoreRegion(s *subsidy.Subsidy, p *profile.AnalyzedProfile) (int, string) {
	if len(s.Regions) == 0 {
		return regionUniversalPoints, "Région: toutes régions"
	}

	if p.Region != "" {
		for _, region := range s.Regions {
			if strings.EqualFold(strings.TrimSpace(region), strings.TrimSpace(p.Region)) &&
				!strings.EqualFold(region, subsidy.RegionNational) {
				return regionExactPoints, "Région: " + p.Region
			}
		}
	}

	if s.IsNational() {
		return regionNationalPoints, "Région: dispositif national"
	}

	return 0, ""
}

func scoreSector(s *subsidy.Subsidy, p *profile.AnalyzedProfile) (int, string) {
	if p.Sector != "" && s.PrimarySector != "" {
		profileSector := strings.ToLower(p.Sector)
		subsidySector := strings.ToLower(s.PrimarySector)
		if strings.Contains(profileSector, subsidySector) || strings.Contains(subsidySector, profileSector) {
			return sectorMatchPoints, "Secteur: " + p.Sector
		}
	}

	if s.IsUniversalSector {
		return sectorUniversalPoints, "Secteur: tous secteurs"
	}

	// No declared sector is ambiguity, not a mismatch: partial credit.
	if s.PrimarySector == "" {
		return sectorUnknownPoints, "Secteur: non précisé"
	}

	return 0, ""
}

func scoreText(text string, searchTerms []string) (int, string) {
	count := 0
	for _, term := range searchTerms {
		if term != "" && strings.Contains(text, strings.ToLower(term)) {
			count++
		}
	}

	switch {
	case count >= textMatchFullThreshold:
		return textMatchFullPoints, fmt.Sprintf("Texte: %d termes", count)
	case count > 0:
		return textMatchPerTermPoints * count, fmt.Sprintf("Texte: %d terme(s)", count)
	default:
		return 0, ""
	}
}

func scoreThematic(text string, keywords []string) (int, string) {
	count := 0
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(text, strings.ToLower(keyword)) {
			count++
		}
	}
	if count == 0 {
		return 0, ""
	}

	points := thematicPerHitPoints * count
	if points > thematicMaxPoints {
		points = thematicMaxPoints
	}
	return points, fmt.Sprintf("Thématique: %d mot(s)-clé(s)", count)
}

func scoreKeywordOverlap(s *subsidy.Subsidy, p *profile.AnalyzedProfile) (int, string) {
	if len(s.Keywords) == 0 {
		return 0, ""
	}

	count := 0
	for _, declared := range s.Keywords {
		declaredLower := strings.ToLower(strings.TrimSpace(declared))
		if declaredLower == "" {
			continue
		}
		if containsTerm(p.ThematicKeywords, declaredLower) || containsTerm(p.SearchTerms, declaredLower) {
			count++
		}
	}
	if count == 0 {
		return 0, ""
	}

	points := keywordPerHitPoints * count
	if points > keywordMaxPoints {
		points = keywordMaxPoints
	}
	return points, fmt.Sprintf("Mots-clés: %d commun(s)", count)
}

func containsTerm(haystack []string, needle string) bool {
	for _, candidate := range haystack {
		candidateLower := strings.ToLower(candidate)
		if strings.Contains(candidateLower, needle) || strings.Contains(needle, candidateLower) {
			return true
		}
	}
	return false
}

// scoreCertifications awards a flat bonus for the first certification found
// verbatim in the subsidy text.
func scoreCertifications(text string, certifications []string) (int, string) {
	for _, cert := range certifications {
		cert = strings.TrimSpace(cert)
		if cert == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(cert)) {
			return certificationPoints, "Certification: " + cert
		}
	}
	return 0, ""
}

// scoreCompanyAge only applies when the subsidy text targets an age bracket.
// A youth-oriented program penalizes an over-mature applicant; a
// maturity-oriented one rewards an established applicant. Unknown company
// age is missing data, never negative evidence: no adjustment.
func scoreCompanyAge(text string, age *int) (int, string) {
	if age == nil {
		return 0, ""
	}

	if youthPattern.MatchString(text) {
		limit := defaultYouthLimitYears
		if m := youthLimitPattern.FindStringSubmatch(text); len(m) == 2 {
			if parsed, err := strconv.Atoi(m[1]); err == nil {
				limit = parsed
			}
		}
		if *age <= limit {
			return agedYouthBonus, fmt.Sprintf("Ancienneté: jeune entreprise (%d ans)", *age)
		}
		return agedYouthPenalty, fmt.Sprintf("Ancienneté: dispositif jeune entreprise, %d ans > %d ans", *age, limit)
	}

	if maturityPattern.MatchString(text) {
		limit := defaultMaturityLimitYears
		if m := maturityLimitPattern.FindStringSubmatch(text); len(m) == 2 {
			if parsed, err := strconv.Atoi(m[1]); err == nil {
				limit = parsed
			}
		}
		if *age >= limit {
			return agedMaturityBonus, fmt.Sprintf("Ancienneté: entreprise établie (%d ans)", *age)
		}
	}

	return 0, ""
}
