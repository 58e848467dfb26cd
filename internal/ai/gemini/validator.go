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
	"github.com/tfournier/aides-scout/internal/subsidy"
	"github.com/tfournier/aides-scout/internal/utils"
)

//go:embed prompt_validate.md
var validatePromptTemplate string

// Validator judges proposed eligibility-criteria transfers between a
// template subsidy and an incomplete one.
type Validator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewValidator builds a Validator over a content generator.
func NewValidator(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Validator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{generator: generator, logger: logger, maxLogLen: maxLogLength}
}

// Validate submits the matched pair and parses the structured verdict. A
// transport error is returned as an error; a malformed response degrades to
// an invalid verdict with confidence 0 so the batch never crashes on model
// output.
func (v *Validator) Validate(ctx context.Context, incomplete, template *subsidy.Subsidy, matchReasons []string) (*ai.Verdict, error) {
	if incomplete == nil || template == nil {
		return nil, fmt.Errorf("both subsidies are required")
	}

	prompt, err := buildValidatePrompt(incomplete, template, matchReasons)
	if err != nil {
		return nil, err
	}

	v.logger.Debug("gemini validate request",
		zap.String("subsidy_id", incomplete.ID),
		zap.String("template_id", template.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, v.maxLogLen)),
	)

	raw, err := v.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	v.logger.Debug("gemini validate response",
		zap.String("subsidy_id", incomplete.ID),
		zap.String("response_preview", utils.TruncateForLog(raw, v.maxLogLen)),
	)

	data, err := parseObject(raw)
	if err != nil {
		v.logger.Warn("unparseable validation response, treating as invalid",
			zap.String("subsidy_id", incomplete.ID),
			zap.Error(err),
		)
		return &ai.Verdict{
			Valid:      false,
			Confidence: 0,
			Reason:     "unparseable model response",
			Raw:        raw,
		}, nil
	}

	confidence := coerceInt(data["confidence"])
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	return &ai.Verdict{
		Valid:           coerceBool(data["valid"]),
		Confidence:      confidence,
		AdaptedCriteria: coerceString(data["adapted_criteria"]),
		Reason:          coerceString(data["reason"]),
		Raw:             raw,
	}, nil
}

func buildValidatePrompt(incomplete, template *subsidy.Subsidy, matchReasons []string) (string, error) {
	incompleteJSON, err := json.MarshalIndent(subsidySummary(incomplete), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal incomplete subsidy payload: %w", err)
	}

	templateJSON, err := json.MarshalIndent(subsidySummary(template), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal template subsidy payload: %w", err)
	}

	prompt := strings.ReplaceAll(validatePromptTemplate, "{{SUBSIDY_JSON}}", string(incompleteJSON))
	prompt = strings.ReplaceAll(prompt, "{{TEMPLATE_JSON}}", string(templateJSON))
	prompt = strings.ReplaceAll(prompt, "{{TEMPLATE_CRITERIA}}", template.EligibilityCriteria.Value())
	prompt = strings.ReplaceAll(prompt, "{{MATCH_REASONS}}", strings.Join(matchReasons, "; "))
	return prompt, nil
}
