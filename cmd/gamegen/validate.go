package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/derekprior/gamegen/internal/config"
	"github.com/derekprior/gamegen/internal/validator"
)

func validateCmd() *cobra.Command {
	var opts settingsOptions
	cmd := &cobra.Command{
		Use:   "validate [stats.csv results.csv | workbook.xlsx]",
		Short: "Validate a generated dataset against config rules",
		Long: heredoc.Doc(`
			Validate checks a dataset against the same settings generate used:
			--config (or config.yaml in the current directory when present),
			then flags. Paths default to the output files named in the
			settings. A single argument is read as a workbook.
		`),
		Example: heredoc.Doc(`
			$ gamegen validate game_stats.csv game_results.csv --teams 6 --games 2 --bias prefer_wip
			$ gamegen validate game_data.xlsx --teams 30 --games 4
		`),
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveValidateConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runValidate(cfg, args)
		},
	}
	addSettingsFlags(cmd, &opts)
	return cmd
}

func resolveValidateConfig(cmd *cobra.Command, opts settingsOptions) (*config.Config, error) {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	if err := applySettings(cmd, cfg, opts); err != nil {
		return nil, err
	}
	if err := validateSettings(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runValidate(cfg *config.Config, args []string) error {
	var (
		violations []validator.Violation
		err        error
	)
	switch {
	case len(args) == 2:
		violations, err = validator.ValidateCSV(cfg, args[0], args[1])
	case len(args) == 1:
		violations, err = validator.ValidateWorkbook(cfg, args[0])
	case cfg.Output.Format == config.FormatXLSX:
		violations, err = validator.ValidateWorkbook(cfg, cfg.Output.WorkbookFile)
	default:
		violations, err = validator.ValidateCSV(cfg, cfg.Output.StatsFile, cfg.Output.ResultsFile)
	}
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Guideline violation: %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d guideline violations\n", errors, warnings)

	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}
