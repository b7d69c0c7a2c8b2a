package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(outputPath)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", defaultConfigFile, "Output path for the config file")
	return cmd
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

var configTemplate = heredoc.Doc(`
	# Game Dataset Configuration
	# ==========================
	# Every pair of teams plays games_per_team_pair times. Each game gets
	# home-to-away WIP, RBI and WAR ratios and a winner.

	# Number of teams, coded 0 to teams-1.
	teams: 4

	# How many times each team plays every other team.
	games_per_team_pair: 1

	# Upper bound on teams.
	max_teams: 30

	# How the winner is picked. Names or codes are accepted:
	#   0 / none            coin flip, ratios ignored
	#   1 / prefer_wip      home wins when WIP ratio > 1.0
	#   2 / prefer_rbi      home wins when RBI ratio > 1.0
	#   3 / prefer_war      home wins when WAR ratio > 1.0
	#   4 / prefer_average  home wins when the mean of the three > 1.0
	# A ratio of exactly 1.0 is a home loss.
	bias: none

	# Random seed. 0 picks a fresh seed on every run.
	seed: 0

	# Uniform range each ratio is drawn from.
	ratios:
	  wip: {min: 0.75, max: 1.25}
	  rbi: {min: 0.75, max: 1.25}
	  war: {min: 0.75, max: 1.25}

	# Output format: "csv" writes stats_file and results_file,
	# "xlsx" writes a single workbook_file.
	output:
	  format: csv
	  stats_file: game_stats.csv
	  results_file: game_results.csv
	  workbook_file: game_data.xlsx
	  headers: false
`)
