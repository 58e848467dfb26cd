package inherit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tfournier/aides-scout/internal/ai"
	"github.com/tfournier/aides-scout/internal/subsidy"
)

// Catalog is the storage collaborator slice the runner needs. Write
// discipline (at most one concurrent write per subsidy id) belongs to the
// implementation.
type Catalog interface {
	TemplateCandidates(ctx context.Context) ([]*subsidy.Subsidy, error)
	IncompleteSubsidies(ctx context.Context, limit int) ([]*subsidy.Subsidy, error)
	UpdateEligibilityCriteria(ctx context.Context, id, criteria string) error
}

// Action labels for run outcomes.
const (
	ActionWritten   = "written"
	ActionValidated = "validated (dry-run)"
	ActionSkipped   = "skipped"
)

// Config tunes a batch run.
type Config struct {
	// Threshold is the minimum composite similarity; zero means the default.
	Threshold float64
	// BatchSize bounds how many incomplete subsidies one run examines.
	// Zero means no bound.
	BatchSize int
	// DryRun performs the full match+validate pipeline without the write.
	DryRun bool
	// ValidationTimeout bounds each AI validation call individually; a
	// timeout on one candidate never aborts the batch.
	ValidationTimeout time.Duration
}

// Outcome records what happened to one incomplete subsidy.
type Outcome struct {
	SubsidyID  string  `json:"subsidy_id"`
	TemplateID string  `json:"template_id,omitempty"`
	Action     string  `json:"action"`
	Reason     string  `json:"reason,omitempty"`
	Score      float64 `json:"score,omitempty"`
	Confidence int     `json:"confidence,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	Examined int       `json:"examined"`
	Matched  int       `json:"matched"`
	Written  int       `json:"written"`
	Skipped  int       `json:"skipped"`
	Outcomes []Outcome `json:"outcomes"`
}

// Runner drives the inheritance batch to completion.
type Runner struct {
	catalog   Catalog
	validator ai.Validator
	logger    *zap.Logger
	config    Config
}

// NewRunner wires a runner. The validator may be nil, in which case every
// match is skipped instead of written: no criteria transfer happens without
// validation.
func NewRunner(catalog Catalog, validator ai.Validator, config Config, logger *zap.Logger) *Runner {
	if config.Threshold <= 0 {
		config.Threshold = DefaultThreshold
	}
	if config.ValidationTimeout <= 0 {
		config.ValidationTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{catalog: catalog, validator: validator, logger: logger, config: config}
}

// Run examines incomplete subsidies, matches each against the templates and
// submits matches to AI validation before persisting anything. Per-candidate
// failures degrade to skips; only catalog-level failures abort the run.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	templates, err := r.catalog.TemplateCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading template subsidies: %w", err)
	}

	incomplete, err := r.catalog.IncompleteSubsidies(ctx, r.config.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("loading incomplete subsidies: %w", err)
	}

	r.logger.Info("starting inheritance run",
		zap.Int("templates", len(templates)),
		zap.Int("incomplete", len(incomplete)),
		zap.Bool("dry_run", r.config.DryRun),
		zap.Float64("threshold", r.config.Threshold),
	)

	summary := &Summary{}
	for _, candidate := range incomplete {
		summary.Examined++
		outcome := r.processOne(ctx, candidate, templates)
		summary.Outcomes = append(summary.Outcomes, outcome)

		switch outcome.Action {
		case ActionWritten:
			summary.Matched++
			summary.Written++
		case ActionValidated:
			summary.Matched++
		default:
			summary.Skipped++
		}
	}

	r.logger.Info("inheritance run finished",
		zap.Int("examined", summary.Examined),
		zap.Int("matched", summary.Matched),
		zap.Int("written", summary.Written),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (r *Runner) processOne(ctx context.Context, candidate *subsidy.Subsidy, templates []*subsidy.Subsidy) Outcome {
	match, ok := FindBestMatch(candidate, templates, r.config.Threshold)
	if !ok {
		return Outcome{
			SubsidyID: candidate.ID,
			Action:    ActionSkipped,
			Reason:    "no template above threshold",
		}
	}

	if r.validator == nil {
		return Outcome{
			SubsidyID:  candidate.ID,
			TemplateID: match.Template.ID,
			Action:     ActionSkipped,
			Reason:     "no validator configured",
			Score:      match.Score,
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, r.config.ValidationTimeout)
	verdict, err := r.validator.Validate(callCtx, candidate, match.Template, match.Reasons)
	cancel()
	if err != nil {
		r.logger.Warn("AI validation failed",
			zap.String("subsidy_id", candidate.ID),
			zap.String("template_id", match.Template.ID),
			zap.Error(err),
		)
		return Outcome{
			SubsidyID:  candidate.ID,
			TemplateID: match.Template.ID,
			Action:     ActionSkipped,
			Reason:     "validation error: " + err.Error(),
			Score:      match.Score,
		}
	}

	normalized := verdict.Normalized()
	if !normalized.Valid {
		r.logger.Info("criteria transfer rejected",
			zap.String("subsidy_id", candidate.ID),
			zap.String("template_id", match.Template.ID),
			zap.Int("confidence", normalized.Confidence),
			zap.String("reason", normalized.Reason),
		)
		return Outcome{
			SubsidyID:  candidate.ID,
			TemplateID: match.Template.ID,
			Action:     ActionSkipped,
			Reason:     normalized.Reason,
			Score:      match.Score,
			Confidence: normalized.Confidence,
		}
	}

	criteria := normalized.AdaptedCriteria
	if criteria == "" {
		// A valid verdict without adapted text falls back to the template's
		// criteria verbatim; the tool never invents eligibility conditions.
		criteria = match.Template.EligibilityCriteria.Value()
	}

	if r.config.DryRun {
		return Outcome{
			SubsidyID:  candidate.ID,
			TemplateID: match.Template.ID,
			Action:     ActionValidated,
			Score:      match.Score,
			Confidence: normalized.Confidence,
		}
	}

	if err := r.catalog.UpdateEligibilityCriteria(ctx, candidate.ID, criteria); err != nil {
		r.logger.Warn("persisting adapted criteria failed",
			zap.String("subsidy_id", candidate.ID),
			zap.Error(err),
		)
		return Outcome{
			SubsidyID:  candidate.ID,
			TemplateID: match.Template.ID,
			Action:     ActionSkipped,
			Reason:     "write failed: " + err.Error(),
			Score:      match.Score,
			Confidence: normalized.Confidence,
		}
	}

	r.logger.Info("adapted criteria written",
		zap.String("subsidy_id", candidate.ID),
		zap.String("template_id", match.Template.ID),
		zap.Float64("score", match.Score),
		zap.Int("confidence", normalized.Confidence),
	)
	return Outcome{
		SubsidyID:  candidate.ID,
		TemplateID: match.Template.ID,
		Action:     ActionWritten,
		Score:      match.Score,
		Confidence: normalized.Confidence,
	}
}
