package profile

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/tfournier/aides-scout/internal/taxonomy"
	"github.com/tfournier/aides-scout/internal/textutil"
)

const (
	// maxSearchTerms bounds the search-term list. The cap trades recall for
	// precision: beyond ~25 terms the extra matches are mostly noise.
	maxSearchTerms = 25

	maxDescriptionWords   = 10
	maxAIDescriptionWords = 8
)

// Analyze converts a raw profile into the normalized scoring input. It is a
// pure function: no I/O, no shared state, and the reference time is passed
// in so the company age does not depend on the wall clock.
func Analyze(p *Profile, now time.Time) *AnalyzedProfile {
	if p == nil {
		p = &Profile{}
	}

	sector := resolveSector(p)

	analyzed := &AnalyzedProfile{
		Sector:            sector,
		SizeCategory:      taxonomy.SizeCategory(parseEmployees(p.EmployeeBracket)),
		LegalForm:         p.LegalForm,
		EntityLabels:      taxonomy.EntityLabels(p.LegalForm),
		SearchTerms:       collectSearchTerms(p, sector),
		ThematicKeywords:  collectThematicKeywords(p, sector),
		ExclusionKeywords: taxonomy.ExclusionKeywords(sector),
		ProjectTypes:      append([]string(nil), p.ProjectTypes...),
		Certifications:    append([]string(nil), p.Certifications...),
		Region:            p.Region,
		Turnover:          p.AnnualTurnover,
	}

	if p.FoundingYear > 0 {
		age := now.Year() - p.FoundingYear
		analyzed.CompanyAge = &age
	}

	return analyzed
}

// resolveSector prefers the declared sector and falls back to the NAF
// division table. Unknown codes resolve to the empty sector, never an error.
func resolveSector(p *Profile) string {
	if s := strings.TrimSpace(p.Sector); s != "" {
		return s
	}
	return taxonomy.SectorForNAF(p.NAFCode)
}

// parseEmployees extracts the first integer from an employee bracket such
// as "10-49" or "250 et plus". Missing or unparseable brackets count as 0.
func parseEmployees(bracket string) int {
	start := -1
	for i, r := range bracket {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(bracket[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(bracket[start:])
		return n
	}
	return 0
}

func collectSearchTerms(p *Profile, sector string) []string {
	terms := make([]string, 0, maxSearchTerms)

	// Industry-code label words.
	for _, word := range strings.Fields(taxonomy.LabelForNAF(p.NAFCode)) {
		if len([]rune(word)) > 3 && !taxonomy.IsStopWord(word) {
			terms = append(terms, strings.ToLower(word))
		}
	}

	// Declared sector and sub-sector.
	if sector != "" {
		terms = append(terms, strings.ToLower(sector))
	}
	if p.SubSector != "" {
		terms = append(terms, strings.ToLower(p.SubSector))
	}

	// Declared project-interest tags.
	for _, tag := range p.ProjectTypes {
		if tag = strings.TrimSpace(tag); tag != "" {
			terms = append(terms, strings.ToLower(tag))
		}
	}

	// Certifications plus their synonym expansions.
	for _, cert := range p.Certifications {
		if cert = strings.TrimSpace(cert); cert == "" {
			continue
		}
		terms = append(terms, strings.ToLower(cert))
		terms = append(terms, taxonomy.CertificationSynonyms(cert)...)
	}

	// Salient description words.
	terms = append(terms, salientWords(p.Description, maxDescriptionWords)...)

	// Enrichment activities, kept whole and word-split.
	if p.WebsiteIntel != nil {
		for _, activity := range p.WebsiteIntel.BusinessActivities {
			if activity = strings.TrimSpace(activity); activity == "" {
				continue
			}
			terms = append(terms, strings.ToLower(activity))
			for _, word := range strings.Fields(activity) {
				if len([]rune(word)) > 3 && !taxonomy.IsStopWord(word) {
					terms = append(terms, strings.ToLower(word))
				}
			}
		}
	}

	// AI-generated company description.
	terms = append(terms, salientWords(p.AIDescription, maxAIDescriptionWords)...)

	// Enrichment indicator phrases.
	if p.WebsiteIntel != nil {
		for _, indicator := range p.WebsiteIntel.InnovationIndicators {
			terms = append(terms, strings.ToLower(strings.TrimSpace(indicator)))
		}
		for _, indicator := range p.WebsiteIntel.SustainabilityIndicators {
			terms = append(terms, strings.ToLower(strings.TrimSpace(indicator)))
		}
	}

	deduped := textutil.Dedupe(terms)
	if len(deduped) > maxSearchTerms {
		deduped = deduped[:maxSearchTerms]
	}
	return deduped
}

// salientWords keeps up to limit words longer than four characters, stop
// words removed, in their original order.
func salientWords(text string, limit int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	words := make([]string, 0, limit)
	for _, word := range strings.Fields(text) {
		word = strings.ToLower(strings.Trim(word, ".,;:!?()\"'"))
		if len([]rune(word)) <= 4 || taxonomy.IsStopWord(word) {
			continue
		}
		words = append(words, word)
		if len(words) == limit {
			break
		}
	}
	return words
}

func collectThematicKeywords(p *Profile, sector string) []string {
	var keywords []string

	keywords = append(keywords, taxonomy.IndicatorKeywords(sector)...)

	for _, cert := range p.Certifications {
		keywords = append(keywords, taxonomy.CertificationKeywords(cert)...)
	}

	keywords = append(keywords, taxonomy.DescriptionKeywords(p.Description)...)

	if intel := p.WebsiteIntel; intel != nil {
		keywords = append(keywords, taxonomy.InnovationKeywords(intel.InnovationScore)...)
		keywords = append(keywords, taxonomy.SustainabilityKeywords(intel.SustainabilityScore)...)
		keywords = append(keywords, taxonomy.ExportKeywords(intel.ExportScore)...)
		keywords = append(keywords, taxonomy.DigitalKeywords(intel.DigitalScore)...)

		for _, activity := range intel.BusinessActivities {
			keywords = append(keywords, taxonomy.ActivityKeywords(activity)...)
		}
	}

	for _, tag := range p.ProjectTypes {
		keywords = append(keywords, taxonomy.ProjectTypeKeywords(tag)...)
	}

	return textutil.Dedupe(keywords)
}
