package inherit

import (
	"strings"
	"testing"

	"github.com/tfournier/aides-scout/internal/subsidy"
)

func richCriteria() subsidy.LocalizedText {
	return subsidy.NewLocalized(map[string]string{
		"fr": strings.Repeat("critère ", 10),
	})
}

func TestIsTemplate(t *testing.T) {
	base := &subsidy.Subsidy{
		ID:                  "t",
		Active:              true,
		ForBusinesses:       true,
		EligibilityCriteria: richCriteria(),
	}
	if !IsTemplate(base) {
		t.Fatalf("expected a template")
	}

	inactive := *base
	inactive.Active = false
	if IsTemplate(&inactive) {
		t.Fatalf("inactive subsidies are never templates")
	}

	notBusiness := *base
	notBusiness.ForBusinesses = false
	if IsTemplate(&notBusiness) {
		t.Fatalf("non-business subsidies are never templates")
	}

	short := *base
	short.EligibilityCriteria = subsidy.NewLocalized(map[string]string{"fr": strings.Repeat("a", MinTemplateCriteriaLength)})
	if IsTemplate(&short) {
		t.Fatalf("criteria at the length floor must not qualify")
	}

	longEnough := *base
	longEnough.EligibilityCriteria = subsidy.NewLocalized(map[string]string{"fr": strings.Repeat("a", MinTemplateCriteriaLength+1)})
	if !IsTemplate(&longEnough) {
		t.Fatalf("criteria one rune above the floor must qualify")
	}

	if IsTemplate(nil) {
		t.Fatalf("nil is not a template")
	}
}

func TestIsIncomplete(t *testing.T) {
	empty := &subsidy.Subsidy{ID: "i", Active: true, ForBusinesses: true}
	if !IsIncomplete(empty) {
		t.Fatalf("expected incomplete")
	}

	blank := &subsidy.Subsidy{
		ID: "b", Active: true, ForBusinesses: true,
		EligibilityCriteria: subsidy.NewText("   "),
	}
	if !IsIncomplete(blank) {
		t.Fatalf("whitespace-only criteria count as missing")
	}

	filled := &subsidy.Subsidy{
		ID: "f", Active: true, ForBusinesses: true,
		EligibilityCriteria: subsidy.NewText("critères"),
	}
	if IsIncomplete(filled) {
		t.Fatalf("filled criteria are not incomplete")
	}

	inactive := &subsidy.Subsidy{ID: "x", ForBusinesses: true}
	if IsIncomplete(inactive) {
		t.Fatalf("inactive subsidies are out of scope")
	}
}

func TestFindBestMatchAboveThreshold(t *testing.T) {
	incomplete := &subsidy.Subsidy{
		ID:            "inc",
		Title:         subsidy.NewText("Aide aux chantiers durables"),
		Agency:        "Région Occitanie",
		Regions:       []string{"Occitanie"},
		PrimarySector: "Construction",
		FundingType:   "subvention",
		Active:        true,
		ForBusinesses: true,
	}
	template := &subsidy.Subsidy{
		ID:                  "tpl",
		Title:               subsidy.NewText("Programme rénovation bâtiments publics"),
		Agency:              "Région Occitanie",
		Regions:             []string{"Occitanie"},
		PrimarySector:       "Construction",
		FundingType:         "subvention",
		Active:              true,
		ForBusinesses:       true,
		EligibilityCriteria: richCriteria(),
	}

	match, ok := FindBestMatch(incomplete, []*subsidy.Subsidy{template}, 0)
	if !ok {
		t.Fatalf("expected a match")
	}
	if match.Template.ID != "tpl" {
		t.Fatalf("Template = %s", match.Template.ID)
	}
	// same agency (0.35) + funding type (0.10) + regions (0.10) + sector (0.10)
	if match.Score < 0.6 {
		t.Fatalf("Score = %f, want at least the threshold", match.Score)
	}
	if len(match.Reasons) == 0 {
		t.Fatalf("a match must explain itself")
	}
}

func TestFindBestMatchBelowThreshold(t *testing.T) {
	incomplete := &subsidy.Subsidy{
		ID:     "inc",
		Title:  subsidy.NewText("Aide aux chantiers"),
		Agency: "Mairie de Pau",
	}
	template := &subsidy.Subsidy{
		ID:                  "tpl",
		Title:               subsidy.NewText("Programme numérique"),
		Agency:              "Bpifrance",
		EligibilityCriteria: richCriteria(),
	}

	if _, ok := FindBestMatch(incomplete, []*subsidy.Subsidy{template}, 0); ok {
		t.Fatalf("dissimilar subsidies must not match")
	}
}

func TestFindBestMatchIgnoresSelf(t *testing.T) {
	s := &subsidy.Subsidy{
		ID:                  "same",
		Title:               subsidy.NewText("Aide"),
		Agency:              "ADEME",
		EligibilityCriteria: richCriteria(),
	}

	if _, ok := FindBestMatch(s, []*subsidy.Subsidy{s}, 0); ok {
		t.Fatalf("a subsidy must never inherit from itself")
	}
}

func TestFindBestMatchPrefersHigherScore(t *testing.T) {
	incomplete := &subsidy.Subsidy{
		ID:            "inc",
		Title:         subsidy.NewText("Aide construction bois durable"),
		Agency:        "Région Bretagne",
		Regions:       []string{"Bretagne"},
		PrimarySector: "Construction",
		FundingType:   "subvention",
	}

	weak := &subsidy.Subsidy{
		ID:                  "weak",
		Title:               subsidy.NewText("Dispositif export agroalimentaire"),
		Agency:              "Région Bretagne",
		Regions:             []string{"Bretagne"},
		FundingType:         "prêt",
		EligibilityCriteria: richCriteria(),
	}
	strong := &subsidy.Subsidy{
		ID:                  "strong",
		Title:               subsidy.NewText("Aide construction bois régionale"),
		Agency:              "Région Bretagne",
		Regions:             []string{"Bretagne"},
		PrimarySector:       "Construction",
		FundingType:         "subvention",
		EligibilityCriteria: richCriteria(),
	}

	match, ok := FindBestMatch(incomplete, []*subsidy.Subsidy{weak, strong}, 0)
	if !ok {
		t.Fatalf("expected a match")
	}
	if match.Template.ID != "strong" {
		t.Fatalf("Template = %s, want strong", match.Template.ID)
	}
}

func TestEntityOverlapRatio(t *testing.T) {
	ratio := entityOverlapRatio(
		[]string{"PME", "TPE"},
		[]string{"PME", "TPE", "ETI", "Association"},
	)
	if ratio != 0.5 {
		t.Fatalf("ratio = %f, want shared over the larger list", ratio)
	}

	if entityOverlapRatio(nil, []string{"PME"}) != 0 {
		t.Fatalf("empty list must yield 0")
	}
}
