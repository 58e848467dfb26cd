package scoring

import (
	"sort"

	"github.com/tfournier/aides-scout/internal/profile"
	"github.com/tfournier/aides-scout/internal/subsidy"
)

// Batch defaults.
const (
	DefaultMinScore   = 10
	DefaultMaxResults = 100
)

// Options tunes the batch pre-scoring pass. The zero value of every field
// means its default, so a partially filled Options never loses a default.
type Options struct {
	// MinScore drops candidates scoring below it. Zero means the default.
	MinScore int
	// MaxResults truncates the ranked list. Zero means the default.
	MaxResults int
	// ExcludeUncertain also applies the threshold to candidates without a
	// declared primary sector. By default those are kept even below
	// MinScore, so sector-ambiguous programs are not silently dropped.
	ExcludeUncertain bool
}

// DefaultOptions returns the documented batch defaults.
func DefaultOptions() Options {
	return Options{
		MinScore:   DefaultMinScore,
		MaxResults: DefaultMaxResults,
	}
}

func (o Options) withDefaults() Options {
	if o.MinScore == 0 {
		o.MinScore = DefaultMinScore
	}
	if o.MaxResults == 0 {
		o.MaxResults = DefaultMaxResults
	}
	return o
}

// PreScoreSubsidies scores every candidate against the profile, discards
// hard-filtered results, applies the score threshold, sorts descending by
// score and truncates. The sort is stable so equal scores keep the input
// order.
func PreScoreSubsidies(candidates []*subsidy.Subsidy, p *profile.AnalyzedProfile, opts Options) []Scored {
	opts = opts.withDefaults()

	kept := make([]Scored, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}

		result := CalculatePreScore(candidate, p)
		if result.HardFiltered {
			continue
		}

		if result.PreScore < opts.MinScore {
			if opts.ExcludeUncertain || candidate.PrimarySector != "" {
				continue
			}
		}

		kept = append(kept, Scored{Subsidy: candidate, Result: result})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Result.PreScore > kept[j].Result.PreScore
	})

	if len(kept) > opts.MaxResults {
		kept = kept[:opts.MaxResults]
	}
	return kept
}
