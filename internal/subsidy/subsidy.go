// Package subsidy defines the funding-program candidate model shared by the
// scoring engine, the boost layer and the template inheritance tool.
package subsidy

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Subsidy is a funding program candidate. Records are produced by an
// external ingestion process and are read-only for the scoring pipeline;
// only the template inheritance tool ever writes back, and only to
// EligibilityCriteria.
type Subsidy struct {
	ID          string        `json:"id"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	Agency      string        `json:"agency"`

	// Regions is empty for programs open everywhere. The literal region
	// "National" marks country-wide programs.
	Regions []string `json:"regions,omitempty"`

	PrimarySector string   `json:"primary_sector,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	FundingType   string   `json:"funding_type,omitempty"`

	AmountMin float64    `json:"amount_min,omitempty"`
	AmountMax float64    `json:"amount_max,omitempty"`
	Deadline  *time.Time `json:"deadline,omitempty"`

	// LegalEntities is nil when the program is open to every entity type.
	LegalEntities []string `json:"legal_entities,omitempty"`

	EligibilityCriteria LocalizedText `json:"eligibility_criteria,omitempty"`

	// IsUniversalSector marks programs deliberately open to all sectors.
	IsUniversalSector bool `json:"is_universal_sector,omitempty"`
	// ForBusinesses distinguishes company-facing programs from the ones
	// aimed at individuals or public bodies only.
	ForBusinesses bool `json:"for_businesses"`
	Active        bool `json:"active"`
}

// RegionNational is the region label for country-wide programs.
const RegionNational = "National"

// SearchableText concatenates the preferred title and description,
// lowercased, for substring matching.
func (s *Subsidy) SearchableText() string {
	return strings.ToLower(s.Title.Value() + " " + s.Description.Value())
}

// IsNational reports whether one of the declared regions is the national
// marker.
func (s *Subsidy) IsNational() bool {
	for _, region := range s.Regions {
		if strings.EqualFold(strings.TrimSpace(region), RegionNational) {
			return true
		}
	}
	return false
}

// CoversRegion reports whether the program applies to the given region.
// Programs without declared regions cover everything.
func (s *Subsidy) CoversRegion(region string) bool {
	if len(s.Regions) == 0 {
		return true
	}
	for _, r := range s.Regions {
		if strings.EqualFold(strings.TrimSpace(r), strings.TrimSpace(region)) {
			return true
		}
	}
	return false
}

// Subsidies wraps a candidate list with the reporting helpers the CLI uses.
type Subsidies struct {
	Items []*Subsidy
}

func (s *Subsidies) Len() int {
	return len(s.Items)
}

func (s *Subsidies) FindByID(id string) *Subsidy {
	for _, item := range s.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// ReportByAgency groups candidates per agency for the interactive report.
func (s *Subsidies) ReportByAgency() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range s.Items {
		entry := map[string]string{
			"title":   item.Title.Value(),
			"sector":  item.PrimarySector,
			"regions": strings.Join(item.Regions, ", "),
			"amount":  fmt.Sprintf("%.0f-%.0f", item.AmountMin, item.AmountMax),
		}
		report[item.Agency] = append(report[item.Agency], entry)
	}
	return report
}

// DumpToTmpFile writes the candidate list to a temp JSON file and returns
// its name.
func (s *Subsidies) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "subsidies_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return file.Name(), nil
}
