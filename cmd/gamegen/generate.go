package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/derekprior/gamegen/internal/config"
	"github.com/derekprior/gamegen/internal/excel"
	"github.com/derekprior/gamegen/internal/export"
	"github.com/derekprior/gamegen/internal/outcome"
	"github.com/derekprior/gamegen/internal/schedule"
	"github.com/derekprior/gamegen/internal/summary"
)

type generateOptions struct {
	settingsOptions
	seed int64
}

func generateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate [teams] [games-per-team-pair] [bias]",
		Short: "Generate a game dataset",
		Long: heredoc.Doc(`
			Generate schedules every team pair, draws ratios for each game and
			decides winners, then writes the stats and results tables.

			Settings come from --config (or config.yaml in the current directory
			when present), then positional arguments, then flags.
		`),
		Example: heredoc.Doc(`
			$ gamegen generate 10 2 prefer_average
			$ gamegen generate --teams 30 --games 4 --bias 1 --format xlsx
		`),
		Args:         cobra.MaximumNArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			return runGenerate(cfg)
		},
	}

	addSettingsFlags(cmd, &opts.settingsOptions)
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed (0 = non-deterministic)")
	return cmd
}

// resolveGenerateConfig layers the config file, positional arguments and
// explicitly set flags, then validates the result.
func resolveGenerateConfig(cmd *cobra.Command, opts generateOptions, args []string) (*config.Config, error) {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		if cfg.Teams, err = strconv.Atoi(args[0]); err != nil {
			return nil, fmt.Errorf("invalid number of teams %q", args[0])
		}
	}
	if len(args) > 1 {
		if cfg.GamesPerTeamPair, err = strconv.Atoi(args[1]); err != nil {
			return nil, fmt.Errorf("invalid games per team pair %q", args[1])
		}
	}
	if len(args) > 2 {
		if cfg.Bias, err = outcome.ParseBias(args[2]); err != nil {
			return nil, err
		}
	}

	if err := applySettings(cmd, cfg, opts.settingsOptions); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = opts.seed
	}

	if err := validateSettings(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfig reads the given file, falls back to config.yaml when it exists,
// and otherwise returns the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return config.Default(), nil
		}
		path = defaultConfigFile
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logrus.WithField("path", path).Debug("loaded config")
	return cfg, nil
}

func newRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

func runGenerate(cfg *config.Config) error {
	start := time.Now()

	rng, seed := newRand(cfg.Seed)
	logrus.WithFields(logrus.Fields{
		"teams": cfg.Teams,
		"games": cfg.GamesPerTeamPair,
		"bias":  cfg.Bias,
		"seed":  seed,
	}).Debug("generating dataset")

	matchups := schedule.RoundRobin(cfg.Teams, cfg.GamesPerTeamPair, rng)
	records := outcome.Generate(matchups, cfg.Bias, cfg.Ratios, rng)

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		for _, r := range records {
			logrus.WithFields(logrus.Fields{
				"game":    r.Index,
				"home":    r.Home,
				"away":    r.Away,
				"wip":     r.Ratios.WIP,
				"rbi":     r.Ratios.RBI,
				"war":     r.Ratios.WAR,
				"homeWin": r.HomeWin,
			}).Trace("game")
		}
	}

	fmt.Printf("Generated %d games for %d teams (%s bias)\n", len(records), cfg.Teams, cfg.Bias)

	s := summary.Build(cfg.Teams, records)
	fmt.Println("\nPer Team Metrics:")
	summary.RenderTeams(os.Stdout, s)
	fmt.Println("\nRatio Distribution:")
	summary.RenderRatios(os.Stdout, s)
	fmt.Printf("\nHome win rate: %.1f%%\n", s.HomeWinRate()*100)

	if err := writeDataset(cfg, records); err != nil {
		return err
	}

	logrus.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("done")
	return nil
}

func writeDataset(cfg *config.Config, records []outcome.Record) error {
	switch cfg.Output.Format {
	case config.FormatXLSX:
		f, err := excel.Generate(cfg.Teams, records)
		if err != nil {
			return fmt.Errorf("generating Excel: %w", err)
		}
		if err := f.SaveAs(cfg.Output.WorkbookFile); err != nil {
			return fmt.Errorf("saving file: %w", err)
		}
		fmt.Printf("\n✓ Dataset saved to %s\n", cfg.Output.WorkbookFile)
	default:
		if err := export.WriteCSV(cfg.Output.StatsFile, cfg.Output.ResultsFile, records, cfg.Output.Headers); err != nil {
			return err
		}
		fmt.Printf("\n✓ Stats saved to %s\n", cfg.Output.StatsFile)
		fmt.Printf("✓ Results saved to %s\n", cfg.Output.ResultsFile)
	}
	return nil
}
