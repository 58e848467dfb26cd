package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/tfournier/aides-scout/internal/ai"
	"github.com/tfournier/aides-scout/internal/profile"
	"github.com/tfournier/aides-scout/internal/subsidy"
	"github.com/tfournier/aides-scout/internal/utils"
)

// contentGenerator is the narrow interface the reranker and validator need
// from the client, so tests can stub it.
type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompt_rerank.md
var rerankPromptTemplate string

const defaultMaxLogLength = 200

// Reranker adjusts deterministic scores with model-informed context.
type Reranker struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewReranker builds a Reranker over a content generator.
func NewReranker(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Reranker {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reranker{generator: generator, logger: logger, maxLogLen: maxLogLength}
}

// Rerank asks the model for a replacement score for one candidate. Errors
// and unparseable output surface as errors so the caller can fall back to
// the deterministic score.
func (r *Reranker) Rerank(ctx context.Context, p *profile.AnalyzedProfile, s *subsidy.Subsidy, preScore int) (*ai.Assessment, error) {
	if p == nil {
		return nil, fmt.Errorf("analyzed profile is required")
	}
	if s == nil {
		return nil, fmt.Errorf("subsidy is required")
	}

	prompt, err := buildRerankPrompt(p, s, preScore)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini rerank request",
		zap.String("subsidy_id", s.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini rerank response",
		zap.String("subsidy_id", s.ID),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	data, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	score := coerceInt(data["score"])
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &ai.Assessment{
		Score:    score,
		Adjusted: true,
		Reasons:  coerceStrings(data["reasons"]),
		Raw:      raw,
	}, nil
}

func buildRerankPrompt(p *profile.AnalyzedProfile, s *subsidy.Subsidy, preScore int) (string, error) {
	profileJSON, err := json.MarshalIndent(profileSummary(p), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile payload: %w", err)
	}

	subsidyJSON, err := json.MarshalIndent(subsidySummary(s), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal subsidy payload: %w", err)
	}

	prompt := strings.ReplaceAll(rerankPromptTemplate, "{{PROFILE_JSON}}", string(profileJSON))
	prompt = strings.ReplaceAll(prompt, "{{SUBSIDY_JSON}}", string(subsidyJSON))
	prompt = strings.ReplaceAll(prompt, "{{PRE_SCORE}}", fmt.Sprintf("%d", preScore))
	return prompt, nil
}

func profileSummary(p *profile.AnalyzedProfile) map[string]any {
	summary := map[string]any{
		"sector":            p.Sector,
		"size_category":     p.SizeCategory,
		"legal_form":        p.LegalForm,
		"region":            p.Region,
		"search_terms":      p.SearchTerms,
		"thematic_keywords": p.ThematicKeywords,
		"project_types":     p.ProjectTypes,
		"certifications":    p.Certifications,
		"annual_turnover":   p.Turnover,
	}
	if p.CompanyAge != nil {
		summary["company_age_years"] = *p.CompanyAge
	}
	return summary
}

func subsidySummary(s *subsidy.Subsidy) map[string]any {
	return map[string]any{
		"id":             s.ID,
		"title":          s.Title.Value(),
		"description":    s.Description.Value(),
		"agency":         s.Agency,
		"regions":        s.Regions,
		"primary_sector": s.PrimarySector,
		"categories":     s.Categories,
		"keywords":       s.Keywords,
		"funding_type":   s.FundingType,
		"amount_min":     s.AmountMin,
		"amount_max":     s.AmountMax,
		"legal_entities": s.LegalEntities,
	}
}
