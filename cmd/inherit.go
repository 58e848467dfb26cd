package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tfournier/aides-scout/internal/ai"
	"github.com/tfournier/aides-scout/internal/ai/gemini"
	"github.com/tfournier/aides-scout/internal/inherit"
	"github.com/tfournier/aides-scout/internal/logger"
	"github.com/tfournier/aides-scout/internal/store"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var confirmPrompt = promptui.Select{
	Label: "This run will write adapted criteria to the catalog. Proceed?",
	Items: []string{PromptYes, PromptNo},
}

var inheritCmd = &cobra.Command{
	Use:   "inherit",
	Short: "Propagate eligibility criteria from template subsidies to similar incomplete ones",
	Run: func(cmd *cobra.Command, _ []string) {
		runInherit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(inheritCmd)

	inheritCmd.Flags().Bool("dry-run", true, "match and validate without writing anything")
	inheritCmd.Flags().Int("batch-size", 0, "maximum incomplete subsidies to examine (0 = all)")
	inheritCmd.Flags().Float64("threshold", 0, "minimum composite similarity (0 = default)")
	inheritCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before live writes")

	viper.BindPFlag("inherit.batch-size", inheritCmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("inherit.threshold", inheritCmd.Flags().Lookup("threshold"))
}

func runInherit(cmd *cobra.Command) {
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

	dryRun := cmd.Flag("dry-run").Value.String() == "true"
	if !dryRun && cmd.Flag("yes").Value.String() != "true" {
		_, answer, err := confirmPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if answer != PromptYes {
			logger.Info("exiting", zap.String("reason", "live run not confirmed"))
			return
		}
	}

	catalog, err := store.Open(config.Database.Path)
	if err != nil {
		logger.Fatal("opening the catalog", zap.Error(err))
	}

	validator := prepareValidator(ctx, config, logger)
	if validator == nil && !dryRun {
		logger.Fatal("a configured AI validator is required for live writes",
			zap.String("hint", "enable ai in the configuration file or use --dry-run"),
		)
	}

	runner := inherit.NewRunner(catalog, validator, inherit.Config{
		Threshold:         viper.GetFloat64("inherit.threshold"),
		BatchSize:         viper.GetInt("inherit.batch-size"),
		DryRun:            dryRun,
		ValidationTimeout: aiTimeout(config.AI),
	}, logger)

	summary, err := runner.Run(ctx)
	if err != nil {
		logger.Fatal("inheritance run failed", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(pretty))
}

func prepareValidator(ctx context.Context, config *Config, logger *zap.Logger) ai.Validator {
	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("running without AI validation", zap.String("reason", err.Error()))
		return nil
	}
	return gemini.NewValidator(generator, maxLogLength(config.AI), logger)
}
