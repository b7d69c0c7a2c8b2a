package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/gamegen/internal/outcome"
)

// DefaultMaxTeams caps the league size unless max_teams overrides it.
const DefaultMaxTeams = 30

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

type Output struct {
	Format       string `yaml:"format"`
	StatsFile    string `yaml:"stats_file"`
	ResultsFile  string `yaml:"results_file"`
	WorkbookFile string `yaml:"workbook_file"`
	Headers      bool   `yaml:"headers"`
}

type Config struct {
	Teams            int            `yaml:"teams"`
	GamesPerTeamPair int            `yaml:"games_per_team_pair"`
	MaxTeams         int            `yaml:"max_teams"`
	Bias             outcome.Bias   `yaml:"bias"`
	Seed             int64          `yaml:"seed"`
	Ratios           outcome.Ranges `yaml:"ratios"`
	Output           Output         `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Teams:            4,
		GamesPerTeamPair: 1,
		MaxTeams:         DefaultMaxTeams,
		Bias:             outcome.None,
		Ratios:           outcome.DefaultRanges(),
		Output: Output{
			Format:       FormatCSV,
			StatsFile:    "game_stats.csv",
			ResultsFile:  "game_results.csv",
			WorkbookFile: "game_data.xlsx",
		},
	}
}

// LoadFromBytes parses YAML bytes over the defaults and validates the result.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// Validate enforces the bounds the generator itself does not check.
func (c *Config) Validate() error {
	if c.Teams < 2 {
		return fmt.Errorf("at least 2 teams are required, got %d", c.Teams)
	}
	if c.MaxTeams < 2 {
		return fmt.Errorf("max_teams must be at least 2, got %d", c.MaxTeams)
	}
	if c.Teams > c.MaxTeams {
		return fmt.Errorf("%d teams exceeds the maximum of %d", c.Teams, c.MaxTeams)
	}
	if c.GamesPerTeamPair < 1 {
		return fmt.Errorf("games_per_team_pair must be at least 1, got %d", c.GamesPerTeamPair)
	}
	if !c.Bias.Valid() {
		return fmt.Errorf("unknown bias: %d", int(c.Bias))
	}
	if err := c.Ratios.Validate(); err != nil {
		return fmt.Errorf("ratios: %w", err)
	}

	switch c.Output.Format {
	case FormatCSV:
		if c.Output.StatsFile == "" || c.Output.ResultsFile == "" {
			return fmt.Errorf("csv output requires both stats_file and results_file")
		}
		if c.Output.StatsFile == c.Output.ResultsFile {
			return fmt.Errorf("stats_file and results_file must differ, both are %q", c.Output.StatsFile)
		}
	case FormatXLSX:
		if c.Output.WorkbookFile == "" {
			return fmt.Errorf("xlsx output requires workbook_file")
		}
	default:
		return fmt.Errorf("unknown output format: %q", c.Output.Format)
	}

	return nil
}
