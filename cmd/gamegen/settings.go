package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/derekprior/gamegen/internal/config"
	"github.com/derekprior/gamegen/internal/outcome"
)

// settingsOptions are the config overrides shared by generate and validate.
type settingsOptions struct {
	configFile  string
	teams       int
	games       int
	bias        string
	format      string
	statsOut    string
	resultsOut  string
	workbookOut string
	headers     bool
}

func addSettingsFlags(cmd *cobra.Command, opts *settingsOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to config file (default: config.yaml in current directory, if present)")
	flags.IntVar(&opts.teams, "teams", 0, "Number of teams")
	flags.IntVar(&opts.games, "games", 0, "Number of times each team plays every other team")
	flags.StringVar(&opts.bias, "bias", "", "Winner bias: 0-4 or none, prefer_wip, prefer_rbi, prefer_war, prefer_average")
	flags.StringVar(&opts.format, "format", "", "Dataset format: csv or xlsx")
	flags.StringVar(&opts.statsOut, "stats-out", "", "Game stats CSV path")
	flags.StringVar(&opts.resultsOut, "results-out", "", "Game results CSV path")
	flags.StringVarP(&opts.workbookOut, "workbook-out", "o", "", "Workbook path for xlsx output")
	flags.BoolVar(&opts.headers, "headers", false, "CSV files carry a header row")
}

// applySettings copies explicitly set flags onto cfg. Flags left at their
// defaults keep the config file value.
func applySettings(cmd *cobra.Command, cfg *config.Config, opts settingsOptions) error {
	flags := cmd.Flags()
	if flags.Changed("teams") {
		cfg.Teams = opts.teams
	}
	if flags.Changed("games") {
		cfg.GamesPerTeamPair = opts.games
	}
	if flags.Changed("bias") {
		bias, err := outcome.ParseBias(opts.bias)
		if err != nil {
			return err
		}
		cfg.Bias = bias
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("stats-out") {
		cfg.Output.StatsFile = opts.statsOut
	}
	if flags.Changed("results-out") {
		cfg.Output.ResultsFile = opts.resultsOut
	}
	if flags.Changed("workbook-out") {
		cfg.Output.WorkbookFile = opts.workbookOut
	}
	if flags.Changed("headers") {
		cfg.Output.Headers = opts.headers
	}
	return nil
}

// validateSettings wraps config validation errors for the CLI.
func validateSettings(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
