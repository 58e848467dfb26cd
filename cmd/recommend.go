package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tfournier/aides-scout/internal/ai"
	"github.com/tfournier/aides-scout/internal/ai/gemini"
	"github.com/tfournier/aides-scout/internal/logger"
	"github.com/tfournier/aides-scout/internal/profile"
	"github.com/tfournier/aides-scout/internal/scoring"
	"github.com/tfournier/aides-scout/internal/store"
	"github.com/tfournier/aides-scout/internal/subsidy"
)

// Recommendation is one line of the ranked report shown to the caller.
type Recommendation struct {
	SubsidyID string   `json:"subsidy_id"`
	Title     string   `json:"title"`
	Agency    string   `json:"agency"`
	Score     int      `json:"score"`
	PreScore  int      `json:"pre_score"`
	Reasons   []string `json:"reasons,omitempty"`
	AIReasons []string `json:"ai_reasons,omitempty"`
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank the subsidy catalog against one applicant profile",
	Run: func(cmd *cobra.Command, _ []string) {
		recommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("profile", "p", "", "applicant profile id (required)")
	recommendCmd.Flags().Bool("no-ai", false, "skip the AI re-ranking step even when configured")
	recommendCmd.Flags().Bool("report", false, "also print the shortlist grouped by agency")
	recommendCmd.Flags().Bool("dump", false, "dump the ranked list to a temp JSON file")
	recommendCmd.Flags().Int("min-score", 0, "minimum deterministic score to keep a candidate (0 = default)")
	recommendCmd.Flags().Int("max-results", 0, "maximum number of candidates to keep (0 = default)")

	viper.BindPFlag("scoring.min-score", recommendCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("scoring.max-results", recommendCmd.Flags().Lookup("max-results"))

	if err := recommendCmd.MarkFlagRequired("profile"); err != nil {
		log.Fatalf("marking profile flag required: %v", err)
	}
}

func recommend(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.Database == nil || config.Database.Path == "" {
		logger.Fatal("database path is required under database.path")
	}

	catalog, err := store.Open(config.Database.Path)
	if err != nil {
		logger.Fatal("opening the catalog", zap.Error(err))
	}

	profileID := cmd.Flag("profile").Value.String()
	raw, err := catalog.ProfileByID(ctx, profileID)
	if err != nil {
		logger.Fatal("loading the profile", zap.String("profile_id", profileID), zap.Error(err))
	}

	analyzed := profile.Analyze(raw, time.Now())
	logger.Info("profile analyzed",
		zap.String("profile_id", profileID),
		zap.String("sector", analyzed.Sector),
		zap.String("size_category", analyzed.SizeCategory),
		zap.Int("search_terms", len(analyzed.SearchTerms)),
		zap.Int("thematic_keywords", len(analyzed.ThematicKeywords)),
	)

	candidates, err := catalog.ActiveSubsidies(ctx)
	if err != nil {
		logger.Fatal("loading candidate subsidies", zap.Error(err))
	}
	logger.Info("loaded candidates", zap.Int("count", len(candidates)))

	ranked := scoring.PreScoreSubsidies(candidates, analyzed, scoringOptions(config))
	logger.Info("deterministic scoring finished",
		zap.Int("initial", len(candidates)),
		zap.Int("left", len(ranked)),
	)

	recommendations := buildRecommendations(ranked, analyzed)

	if cmd.Flag("no-ai").Value.String() != "true" {
		recommendations = rerankWithAI(ctx, config, logger, analyzed, ranked, recommendations)
	}

	sortRecommendations(recommendations)

	// Even a fully unavailable AI step must leave a best-effort ranked list.
	pretty, _ := json.MarshalIndent(recommendations, "", "  ")
	fmt.Println(string(pretty))
	logger.Info("recommendations ready", zap.Int("count", len(recommendations)))

	list := &subsidy.Subsidies{}
	for _, item := range ranked {
		list.Items = append(list.Items, item.Subsidy)
	}

	if cmd.Flag("report").Value.String() == "true" {
		report, _ := json.MarshalIndent(list.ReportByAgency(), "", "  ")
		fmt.Println(string(report))
	}

	if cmd.Flag("dump").Value.String() == "true" {
		filename, err := list.DumpToTmpFile()
		if err != nil {
			logger.Warn("dumping ranked list failed", zap.Error(err))
		} else {
			logger.Info("ranked list dumped", zap.String("filename", filename))
		}
	}
}

func scoringOptions(config *Config) scoring.Options {
	opts := scoring.DefaultOptions()
	if config.Scoring == nil {
		return opts
	}
	if config.Scoring.MinScore != 0 {
		opts.MinScore = config.Scoring.MinScore
	}
	if config.Scoring.MaxResults != 0 {
		opts.MaxResults = config.Scoring.MaxResults
	}
	if config.Scoring.IncludeUncertain != nil {
		opts.ExcludeUncertain = !*config.Scoring.IncludeUncertain
	}
	return opts
}

func buildRecommendations(ranked []scoring.Scored, analyzed *profile.AnalyzedProfile) []Recommendation {
	recommendations := make([]Recommendation, 0, len(ranked))
	for _, item := range ranked {
		score := item.Result.PreScore +
			scoring.SectorAwareAmountBoost(item.Subsidy, analyzed) +
			scoring.AgencyBoost(item.Subsidy.Agency)

		recommendations = append(recommendations, Recommendation{
			SubsidyID: item.Subsidy.ID,
			Title:     item.Subsidy.Title.Value(),
			Agency:    item.Subsidy.Agency,
			Score:     clampDisplayScore(score),
			PreScore:  item.Result.PreScore,
			Reasons:   item.Result.Reasons,
		})
	}
	return recommendations
}

// rerankWithAI replaces deterministic scores with model-adjusted ones. Any
// failure, per candidate or global, keeps the deterministic result: the AI
// step is a fallback-friendly refinement, never a gate.
func rerankWithAI(ctx context.Context, config *Config, logger *zap.Logger, analyzed *profile.AnalyzedProfile, ranked []scoring.Scored, recommendations []Recommendation) []Recommendation {
	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Info("skipping AI re-ranking", zap.String("reason", err.Error()))
		return recommendations
	}

	reranker := gemini.NewReranker(generator, maxLogLength(config.AI), logger)
	timeout := aiTimeout(config.AI)

	for i := range recommendations {
		assessment, err := rerankOne(ctx, reranker, analyzed, ranked[i].Subsidy, recommendations[i].Score, timeout)
		if err != nil {
			logger.Warn("AI re-ranking failed, keeping deterministic score",
				zap.String("subsidy_id", recommendations[i].SubsidyID),
				zap.Error(err),
			)
			continue
		}

		logger.Debug("AI re-ranked candidate",
			zap.String("subsidy_id", recommendations[i].SubsidyID),
			zap.Int("deterministic_score", recommendations[i].Score),
			zap.Int("ai_score", assessment.Score),
		)
		recommendations[i].Score = assessment.Score
		recommendations[i].AIReasons = assessment.Reasons
	}

	return recommendations
}

func rerankOne(ctx context.Context, reranker ai.Reranker, analyzed *profile.AnalyzedProfile, s *subsidy.Subsidy, score int, timeout time.Duration) (*ai.Assessment, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return reranker.Rerank(callCtx, analyzed, s, score)
}

func sortRecommendations(recommendations []Recommendation) {
	// Stable so equal scores keep the deterministic order.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
}

func clampDisplayScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
