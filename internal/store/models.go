// Package store is the storage collaborator: a sqlite catalog of subsidies
// and applicant profiles accessed through gorm. Slice and localized fields
// are kept as JSON text columns.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/tfournier/aides-scout/internal/profile"
	"github.com/tfournier/aides-scout/internal/subsidy"
)

// SubsidyRecord is the subsidies table row.
type SubsidyRecord struct {
	ID            string `gorm:"primaryKey"`
	TitleJSON     string
	DescJSON      string
	Agency        string `gorm:"index"`
	RegionsJSON   string
	PrimarySector string
	CategoriesJSON string
	KeywordsJSON   string
	FundingType    string
	AmountMin      float64
	AmountMax      float64
	Deadline       *time.Time
	EntitiesJSON   string
	CriteriaJSON   string
	IsUniversalSector bool
	ForBusinesses     bool `gorm:"index"`
	Active            bool `gorm:"index"`
}

func (SubsidyRecord) TableName() string { return "subsidies" }

// ProfileRecord is the profiles table row. The website-intelligence
// enrichment is a loosely-typed JSON payload decoded through mapstructure.
type ProfileRecord struct {
	ID          string `gorm:"primaryKey"`
	CompanyName string
	SIREN       string
	SIRET       string

	NAFCode   string
	Sector    string
	SubSector string

	Region     string
	Department string
	City       string

	EmployeeBracket string
	AnnualTurnover  float64
	FoundingYear    int
	LegalForm       string

	Description        string
	CertificationsJSON string
	ProjectTypesJSON   string
	AIDescription      string
	WebsiteIntelJSON   string
}

func (ProfileRecord) TableName() string { return "profiles" }

func (r *SubsidyRecord) toDomain() (*subsidy.Subsidy, error) {
	s := &subsidy.Subsidy{
		ID:                r.ID,
		Agency:            r.Agency,
		PrimarySector:     r.PrimarySector,
		FundingType:       r.FundingType,
		AmountMin:         r.AmountMin,
		AmountMax:         r.AmountMax,
		Deadline:          r.Deadline,
		IsUniversalSector: r.IsUniversalSector,
		ForBusinesses:     r.ForBusinesses,
		Active:            r.Active,
	}

	if err := unmarshalColumn(r.TitleJSON, &s.Title); err != nil {
		return nil, fmt.Errorf("subsidy %s title: %w", r.ID, err)
	}
	if err := unmarshalColumn(r.DescJSON, &s.Description); err != nil {
		return nil, fmt.Errorf("subsidy %s description: %w", r.ID, err)
	}
	if err := unmarshalColumn(r.CriteriaJSON, &s.EligibilityCriteria); err != nil {
		return nil, fmt.Errorf("subsidy %s criteria: %w", r.ID, err)
	}
	if err := unmarshalColumn(r.RegionsJSON, &s.Regions); err != nil {
		return nil, fmt.Errorf("subsidy %s regions: %w", r.ID, err)
	}
	if err := unmarshalColumn(r.CategoriesJSON, &s.Categories); err != nil {
		return nil, fmt.Errorf("subsidy %s categories: %w", r.ID, err)
	}
	if err := unmarshalColumn(r.KeywordsJSON, &s.Keywords); err != nil {
		return nil, fmt.Errorf("subsidy %s keywords: %w", r.ID, err)
	}
	if err := unmarshalColumn(r.EntitiesJSON, &s.LegalEntities); err != nil {
		return nil, fmt.Errorf("subsidy %s legal entities: %w", r.ID, err)
	}

	return s, nil
}

func subsidyToRecord(s *subsidy.Subsidy) (*SubsidyRecord, error) {
	record := &SubsidyRecord{
		ID:                s.ID,
		Agency:            s.Agency,
		PrimarySector:     s.PrimarySector,
		FundingType:       s.FundingType,
		AmountMin:         s.AmountMin,
		AmountMax:         s.AmountMax,
		Deadline:          s.Deadline,
		IsUniversalSector: s.IsUniversalSector,
		ForBusinesses:     s.ForBusinesses,
		Active:            s.Active,
	}

	var err error
	if record.TitleJSON, err = marshalColumn(s.Title); err != nil {
		return nil, err
	}
	if record.DescJSON, err = marshalColumn(s.Description); err != nil {
		return nil, err
	}
	if record.CriteriaJSON, err = marshalColumn(s.EligibilityCriteria); err != nil {
		return nil, err
	}
	if record.RegionsJSON, err = marshalColumn(s.Regions); err != nil {
		return nil, err
	}
	if record.CategoriesJSON, err = marshalColumn(s.Categories); err != nil {
		return nil, err
	}
	if record.KeywordsJSON, err = marshalColumn(s.Keywords); err != nil {
		return nil, err
	}
	if record.EntitiesJSON, err = marshalColumn(s.LegalEntities); err != nil {
		return nil, err
	}

	return record, nil
}

func (r *ProfileRecord) toDomain() (*profile.Profile, error) {
	p := &profile.Profile{
		ID:              r.ID,
		CompanyName:     r.CompanyName,
		SIREN:           r.SIREN,
		SIRET:           r.SIRET,
		NAFCode:         r.NAFCode,
		Sector:          r.Sector,
		SubSector:       r.SubSector,
		Region:          r.Region,
		Department:      r.Department,
		City:            r.City,
		EmployeeBracket: r.EmployeeBracket,
		AnnualTurnover:  r.AnnualTurnover,
		FoundingYear:    r.FoundingYear,
		LegalForm:       r.LegalForm,
		Description:     r.Description,
		AIDescription:   r.AIDescription,
	}

	if err := unmarshalColumn(r.CertificationsJSON, &p.Certifications); err != nil {
		return nil, fmt.Errorf("profile %s certifications: %w", r.ID, err)
	}
	if err := unmarshalColumn(r.ProjectTypesJSON, &p.ProjectTypes); err != nil {
		return nil, fmt.Errorf("profile %s project types: %w", r.ID, err)
	}

	if r.WebsiteIntelJSON != "" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(r.WebsiteIntelJSON), &payload); err != nil {
			return nil, fmt.Errorf("profile %s website intel: %w", r.ID, err)
		}
		var intel profile.WebsiteIntelligence
		if err := mapstructure.WeakDecode(payload, &intel); err != nil {
			return nil, fmt.Errorf("profile %s website intel: %w", r.ID, err)
		}
		p.WebsiteIntel = &intel
	}

	return p, nil
}

func profileToRecord(p *profile.Profile) (*ProfileRecord, error) {
	record := &ProfileRecord{
		ID:              p.ID,
		CompanyName:     p.CompanyName,
		SIREN:           p.SIREN,
		SIRET:           p.SIRET,
		NAFCode:         p.NAFCode,
		Sector:          p.Sector,
		SubSector:       p.SubSector,
		Region:          p.Region,
		Department:      p.Department,
		City:            p.City,
		EmployeeBracket: p.EmployeeBracket,
		AnnualTurnover:  p.AnnualTurnover,
		FoundingYear:    p.FoundingYear,
		LegalForm:       p.LegalForm,
		Description:     p.Description,
		AIDescription:   p.AIDescription,
	}

	var err error
	if record.CertificationsJSON, err = marshalColumn(p.Certifications); err != nil {
		return nil, err
	}
	if record.ProjectTypesJSON, err = marshalColumn(p.ProjectTypes); err != nil {
		return nil, err
	}
	if p.WebsiteIntel != nil {
		if record.WebsiteIntelJSON, err = marshalColumn(p.WebsiteIntel); err != nil {
			return nil, err
		}
	}

	return record, nil
}

func unmarshalColumn(raw string, dest any) error {
	if raw == "" || raw == "null" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dest)
}

func marshalColumn(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
