package scoring

import (
	"strings"
	"testing"

	"github.com/tfournier/aides-scout/internal/profile"
	"github.com/tfournier/aides-scout/internal/subsidy"
)

func agriProfile() *profile.AnalyzedProfile {
	return &profile.AnalyzedProfile{
		Sector:            "Agriculture",
		SizeCategory:      "PME",
		LegalForm:         "GAEC",
		EntityLabels:      []string{"Exploitation agricole", "Société agricole", "Agriculteur", "Entreprise"},
		SearchTerms:       []string{"élevage"},
		ExclusionKeywords: []string{"musique", "cinéma"},
		Region:            "Occitanie",
	}
}

func TestCalculatePreScoreRegionSectorText(t *testing.T) {
	s := &subsidy.Subsidy{
		ID:            "agri-occitanie",
		Title:         subsidy.NewText("Soutien aux exploitations d'élevage"),
		Regions:       []string{"Occitanie"},
		PrimarySector: "Agriculture",
		Active:        true,
		ForBusinesses: true,
	}

	result := CalculatePreScore(s, agriProfile())
	if result.HardFiltered {
		t.Fatalf("unexpected hard filter: %s", result.FilterReason)
	}
	// 30 (exact region) + 25 (sector) + 7 (one matched term)
	if result.PreScore != 62 {
		t.Fatalf("PreScore = %d, want 62 (reasons: %v)", result.PreScore, result.Reasons)
	}
	if len(result.Reasons) != 3 {
		t.Fatalf("Reasons = %v, want three awarded factors", result.Reasons)
	}
}

func TestSectorExclusionHardFilter(t *testing.T) {
	s := &subsidy.Subsidy{
		ID:    "festival",
		Title: subsidy.NewText("Aide aux festivals de musique"),
	}

	result := CalculatePreScore(s, agriProfile())
	if !result.HardFiltered {
		t.Fatalf("expected hard filter")
	}
	if result.PreScore != -50 {
		t.Fatalf("PreScore = %d, want -50", result.PreScore)
	}
	if len(result.Reasons) != 0 {
		t.Fatalf("hard-filtered results must carry no soft reasons: %v", result.Reasons)
	}
	if result.FilterReason == "" {
		t.Fatalf("filter reason is required")
	}
}

func TestNegatedExclusionKeywordIsIgnored(t *testing.T) {
	s := &subsidy.Subsidy{
		ID:    "open",
		Title: subsidy.NewText("Aide ouverte à tous les secteurs sauf musique"),
	}

	result := CalculatePreScore(s, agriProfile())
	if result.HardFiltered {
		t.Fatalf("negated keyword must not hard-filter: %s", result.FilterReason)
	}
}

func TestExclusionKeywordOutsideNegationWindow(t *testing.T) {
	// The negation marker sits more than 50 characters before the keyword,
	// so the carve-out no longer applies.
	filler := strings.Repeat("a", 60)
	s := &subsidy.Subsidy{
		ID:    "far-negation",
		Title: subsidy.NewText("sauf " + filler + " musique"),
	}

	result := CalculatePreScore(s, agriProfile())
	if !result.HardFiltered {
		t.Fatalf("marker outside the window must not negate the exclusion")
	}
}

func TestNegationWindowCountsRunes(t *testing.T) {
	// 40 accented runes (80 bytes) between the marker and the keyword: the
	// marker sits within 50 runes, so the carve-out still applies even
	// though it is more than 50 bytes away.
	filler := strings.Repeat("é", 40)
	s := &subsidy.Subsidy{
		ID:    "accented-negation",
		Title: subsidy.NewText("sauf " + filler + " musique"),
	}

	result := CalculatePreScore(s, agriProfile())
	if result.HardFiltered {
		t.Fatalf("marker within 50 runes must negate the exclusion: %s", result.FilterReason)
	}
}

func TestEntityMismatchHardFilter(t *testing.T) {
	s := &subsidy.Subsidy{
		ID:            "asso-only",
		Title:         subsidy.NewText("Fonds associatif"),
		LegalEntities: []string{"Association"},
	}

	result := CalculatePreScore(s, agriProfile())
	if !result.HardFiltered {
		t.Fatalf("expected entity mismatch")
	}
	if result.PreScore != -100 {
		t.Fatalf("PreScore = %d, want -100", result.PreScore)
	}
	if len(result.Reasons) != 0 {
		t.Fatalf("hard-filtered results must carry no soft reasons: %v", result.Reasons)
	}
}

func TestGenericEntityLabelPasses(t *testing.T) {
	s := &subsidy.Subsidy{
		ID:            "open-entities",
		Title:         subsidy.NewText("Dispositif générique"),
		LegalEntities: []string{"Entreprises"},
	}

	result := CalculatePreScore(s, agriProfile())
	if result.HardFiltered {
		t.Fatalf("generic entity label must pass: %s", result.FilterReason)
	}
}

func TestSizeCategoryBonus(t *testing.T) {
	p := agriProfile()
	s := &subsidy.Subsidy{
		ID:            "pme-only",
		Title:         subsidy.NewText("Dispositif dédié"),
		LegalEntities: []string{"PME"},
	}

	result := CalculatePreScore(s, p)
	if result.HardFiltered {
		t.Fatalf("size category match must not filter: %s", result.FilterReason)
	}
	// 10 (size bonus) + 15 (no declared regions) + 10 (no declared sector)
	if result.PreScore != 35 {
		t.Fatalf("PreScore = %d, want 35 (reasons: %v)", result.PreScore, result.Reasons)
	}
	if !containsReason(result.Reasons, "catégorie") {
		t.Fatalf("missing size-category reason: %v", result.Reasons)
	}
}

func TestNationalRegionScoresBelowExactMatch(t *testing.T) {
	p := agriProfile()

	exact := CalculatePreScore(&subsidy.Subsidy{
		ID: "exact", Title: subsidy.NewText("x"), Regions: []string{"Occitanie"},
	}, p)
	national := CalculatePreScore(&subsidy.Subsidy{
		ID: "national", Title: subsidy.NewText("x"), Regions: []string{subsidy.RegionNational},
	}, p)
	other := CalculatePreScore(&subsidy.Subsidy{
		ID: "other", Title: subsidy.NewText("x"), Regions: []string{"Bretagne"},
	}, p)

	if !(exact.PreScore > national.PreScore && national.PreScore > other.PreScore) {
		t.Fatalf("region ordering broken: exact=%d national=%d other=%d",
			exact.PreScore, national.PreScore, other.PreScore)
	}
}

func TestTextMatchTiers(t *testing.T) {
	p := agriProfile()
	p.SearchTerms = []string{"bois", "charpente", "rénovation", "isolation"}

	one := CalculatePreScore(&subsidy.Subsidy{
		ID: "one", Title: subsidy.NewText("Aide bois"), Regions: []string{"Bretagne"}, PrimarySector: "Numérique",
	}, p)
	if one.PreScore != 7 {
		t.Fatalf("single term: PreScore = %d, want 7", one.PreScore)
	}

	three := CalculatePreScore(&subsidy.Subsidy{
		ID: "three", Title: subsidy.NewText("Aide bois charpente rénovation"), Regions: []string{"Bretagne"}, PrimarySector: "Numérique",
	}, p)
	if three.PreScore != 20 {
		t.Fatalf("three terms: PreScore = %d, want the flat 20", three.PreScore)
	}
}

func TestThematicAndKeywordCaps(t *testing.T) {
	p := agriProfile()
	p.SearchTerms = nil
	p.ThematicKeywords = []string{"agricole", "élevage", "filière", "rural", "agroécologie"}

	s := &subsidy.Subsidy{
		ID:            "thematic",
		Title:         subsidy.NewText("Plan agricole élevage filière rural agroécologie"),
		Regions:       []string{"Bretagne"},
		PrimarySector: "Numérique",
		Keywords:      []string{"agricole", "élevage", "filière", "rural", "agroécologie"},
	}

	result := CalculatePreScore(s, p)
	// 15 (thematic, capped) + 10 (keyword overlap, capped)
	if result.PreScore != 25 {
		t.Fatalf("PreScore = %d, want 25 (reasons: %v)", result.PreScore, result.Reasons)
	}
}

func TestCertificationFlatBonus(t *testing.T) {
	p := agriProfile()
	p.SearchTerms = nil
	p.Certifications = []string{"HVE", "RGE"}

	s := &subsidy.Subsidy{
		ID:            "certified",
		Title:         subsidy.NewText("Aide hve et rge pour tous"),
		Regions:       []string{"Bretagne"},
		PrimarySector: "Numérique",
	}

	result := CalculatePreScore(s, p)
	// The bonus is flat: the second certification must not add anything.
	if result.PreScore != 10 {
		t.Fatalf("PreScore = %d, want the flat 10", result.PreScore)
	}
}

func TestCompanyAgeAdjustments(t *testing.T) {
	base := &subsidy.Subsidy{
		ID:      "youth",
		Title:   subsidy.NewText("Aide jeune entreprise innovante"),
		Regions: []string{"Bretagne"}, PrimarySector: "Numérique",
	}

	young := 3
	p := agriProfile()
	p.SearchTerms = nil
	p.CompanyAge = &young
	if got := CalculatePreScore(base, p).PreScore; got != 10 {
		t.Fatalf("young applicant: PreScore = %d, want +10", got)
	}

	old := 12
	p.CompanyAge = &old
	if got := CalculatePreScore(base, p).PreScore; got != -20 {
		t.Fatalf("over-age applicant: PreScore = %d, want -20", got)
	}

	p.CompanyAge = nil
	if got := CalculatePreScore(base, p).PreScore; got != 0 {
		t.Fatalf("unknown age: PreScore = %d, want no adjustment", got)
	}
}

func TestCompanyAgeExplicitLimit(t *testing.T) {
	s := &subsidy.Subsidy{
		ID:      "under-8",
		Title:   subsidy.NewText("Réservé aux entreprises de moins de 8 ans"),
		Regions: []string{"Bretagne"}, PrimarySector: "Numérique",
	}

	age := 7
	p := agriProfile()
	p.SearchTerms = nil
	p.CompanyAge = &age

	if got := CalculatePreScore(s, p).PreScore; got != 10 {
		t.Fatalf("PreScore = %d, the declared limit must override the default", got)
	}
}

func TestMaturityBonus(t *testing.T) {
	s := &subsidy.Subsidy{
		ID:      "established",
		Title:   subsidy.NewText("Aide aux entreprises établies"),
		Regions: []string{"Bretagne"}, PrimarySector: "Numérique",
	}

	age := 9
	p := agriProfile()
	p.SearchTerms = nil
	p.CompanyAge = &age

	if got := CalculatePreScore(s, p).PreScore; got != 5 {
		t.Fatalf("PreScore = %d, want the maturity bonus", got)
	}
}

func TestClampScore(t *testing.T) {
	if got := clampScore(150); got != MaxScore {
		t.Fatalf("clampScore(150) = %d", got)
	}
	if got := clampScore(-150); got != MinScore {
		t.Fatalf("clampScore(-150) = %d", got)
	}
	if got := clampScore(42); got != 42 {
		t.Fatalf("clampScore(42) = %d", got)
	}
}

func containsReason(reasons []string, fragment string) bool {
	for _, r := range reasons {
		if strings.Contains(r, fragment) {
			return true
		}
	}
	return false
}
