// Package profile holds the applicant business profile and the analyzer
// that normalizes it into the representation the scoring engine consumes.
package profile

// Profile is the applicant record as stored at onboarding and enriched by
// the registry lookup and the website analysis. It is read-only for the
// analyzer.
type Profile struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	SIREN       string `json:"siren,omitempty"`
	SIRET       string `json:"siret,omitempty"`

	NAFCode   string `json:"naf_code,omitempty"`
	Sector    string `json:"sector,omitempty"`
	SubSector string `json:"sub_sector,omitempty"`

	Region     string `json:"region,omitempty"`
	Department string `json:"department,omitempty"`
	City       string `json:"city,omitempty"`

	// EmployeeBracket is a declared bracket such as "10-49"; only the lower
	// bound matters for the size category.
	EmployeeBracket string  `json:"employee_bracket,omitempty"`
	AnnualTurnover  float64 `json:"annual_turnover,omitempty"`
	FoundingYear    int     `json:"founding_year,omitempty"`
	LegalForm       string  `json:"legal_form,omitempty"`

	Description    string   `json:"description,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	ProjectTypes   []string `json:"project_types,omitempty"`

	// AIDescription is the enrichment-generated company summary, when the
	// website analysis produced one.
	AIDescription string `json:"ai_description,omitempty"`

	WebsiteIntel *WebsiteIntelligence `json:"website_intel,omitempty"`
}

// WebsiteIntelligence is the structured output of the website analysis
// enrichment: extracted activities plus 0-100 signal sub-scores with their
// supporting indicators.
type WebsiteIntelligence struct {
	BusinessActivities []string `json:"business_activities,omitempty" mapstructure:"business_activities"`

	InnovationScore     int `json:"innovation_score,omitempty" mapstructure:"innovation_score"`
	SustainabilityScore int `json:"sustainability_score,omitempty" mapstructure:"sustainability_score"`
	ExportScore         int `json:"export_score,omitempty" mapstructure:"export_score"`
	DigitalScore        int `json:"digital_score,omitempty" mapstructure:"digital_score"`
	GrowthScore         int `json:"growth_score,omitempty" mapstructure:"growth_score"`

	InnovationIndicators     []string `json:"innovation_indicators,omitempty" mapstructure:"innovation_indicators"`
	SustainabilityIndicators []string `json:"sustainability_indicators,omitempty" mapstructure:"sustainability_indicators"`
}

// AnalyzedProfile is the derived, per-request scoring input. It is computed
// deterministically from a Profile snapshot: identical input yields an
// identical result, including slice ordering.
type AnalyzedProfile struct {
	Sector       string
	SizeCategory string
	LegalForm    string
	EntityLabels []string

	SearchTerms       []string
	ThematicKeywords  []string
	ExclusionKeywords []string

	ProjectTypes   []string
	Certifications []string

	Region string
	// CompanyAge is nil when the founding year is unknown.
	CompanyAge *int
	Turnover   float64
}
