package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/derekprior/gamegen/internal/config"
	"github.com/derekprior/gamegen/internal/export"
	"github.com/derekprior/gamegen/internal/outcome"
)

func TestResolveGenerateConfig(t *testing.T) {
	t.Run("positional arguments", func(t *testing.T) {
		cmd := generateCmd()
		cfg, err := resolveGenerateConfig(cmd, generateOptions{}, []string{"10", "3", "4"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Teams != 10 || cfg.GamesPerTeamPair != 3 || cfg.Bias != outcome.PreferAverage {
			t.Errorf("cfg = %d teams, %d games, %s; want 10, 3, prefer_average", cfg.Teams, cfg.GamesPerTeamPair, cfg.Bias)
		}
	})

	t.Run("flags override arguments", func(t *testing.T) {
		cmd := generateCmd()
		if err := cmd.ParseFlags([]string{"--teams", "12", "--bias", "prefer_rbi"}); err != nil {
			t.Fatal(err)
		}
		opts := generateOptions{settingsOptions: settingsOptions{teams: 12, bias: "prefer_rbi"}}
		cfg, err := resolveGenerateConfig(cmd, opts, []string{"10", "2"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Teams != 12 || cfg.GamesPerTeamPair != 2 || cfg.Bias != outcome.PreferRBI {
			t.Errorf("cfg = %d teams, %d games, %s; want 12, 2, prefer_rbi", cfg.Teams, cfg.GamesPerTeamPair, cfg.Bias)
		}
	})

	errorCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bias code out of range", []string{"4", "1", "5"}, "out of range"},
		{"not a number", []string{"four"}, "invalid number of teams"},
		{"one team", []string{"1", "1", "0"}, "at least 2 teams"},
		{"too many teams", []string{"31", "1", "0"}, "exceeds the maximum"},
		{"zero games", []string{"4", "0", "0"}, "games_per_team_pair"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveGenerateConfig(generateCmd(), generateOptions{}, tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateAndValidate(t *testing.T) {
	dir := t.TempDir()
	statsPath := filepath.Join(dir, "stats.csv")
	resultsPath := filepath.Join(dir, "results.csv")

	cmd := rootCmd()
	cmd.SetArgs([]string{"generate", "6", "2", "prefer_wip",
		"--seed", "77", "--stats-out", statsPath, "--results-out", resultsPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate error: %v", err)
	}

	records, err := export.ReadCSV(statsPath, resultsPath, false)
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(records) != 30 {
		t.Errorf("records = %d, want 30", len(records))
	}

	t.Run("matching settings pass", func(t *testing.T) {
		cmd := rootCmd()
		cmd.SetArgs([]string{"validate", statsPath, resultsPath,
			"--teams", "6", "--games", "2", "--bias", "prefer_wip"})
		if err := cmd.Execute(); err != nil {
			t.Errorf("validate error: %v", err)
		}
	})

	t.Run("default settings report violations", func(t *testing.T) {
		cmd := rootCmd()
		cmd.SetArgs([]string{"validate", statsPath, resultsPath})
		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "constraint violations found") {
			t.Errorf("error = %v, want constraint violations", err)
		}
	})
}

func TestGenerateAndValidateWithHeaders(t *testing.T) {
	dir := t.TempDir()
	statsPath := filepath.Join(dir, "stats.csv")
	resultsPath := filepath.Join(dir, "results.csv")
	shared := []string{"--teams", "5", "--games", "3", "--bias", "4", "--headers",
		"--stats-out", statsPath, "--results-out", resultsPath}

	cmd := rootCmd()
	cmd.SetArgs(append([]string{"generate", "--seed", "12"}, shared...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate error: %v", err)
	}

	// No positional paths: validate reads the files named by the flags.
	cmd = rootCmd()
	cmd.SetArgs(append([]string{"validate"}, shared...))
	if err := cmd.Execute(); err != nil {
		t.Errorf("validate error: %v", err)
	}
}

func TestValidateWorkbookFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.xlsx")

	cmd := rootCmd()
	cmd.SetArgs([]string{"generate", "7", "2", "prefer_war", "--format", "xlsx", "-o", path, "--seed", "4"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate error: %v", err)
	}

	cmd = rootCmd()
	cmd.SetArgs([]string{"validate", "--format", "xlsx", "-o", path, "--teams", "7", "--games", "2", "--bias", "prefer_war"})
	if err := cmd.Execute(); err != nil {
		t.Errorf("validate error: %v", err)
	}
}

func TestResolveValidateConfig(t *testing.T) {
	cmd := validateCmd()
	if err := cmd.ParseFlags([]string{"--teams", "9", "--bias", "prefer_rbi", "--headers"}); err != nil {
		t.Fatal(err)
	}
	opts := settingsOptions{teams: 9, bias: "prefer_rbi", headers: true}
	cfg, err := resolveValidateConfig(cmd, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Teams != 9 || cfg.GamesPerTeamPair != 1 || cfg.Bias != outcome.PreferRBI || !cfg.Output.Headers {
		t.Errorf("cfg = %d teams, %d games, %s, headers %t; want 9, 1, prefer_rbi, true",
			cfg.Teams, cfg.GamesPerTeamPair, cfg.Bias, cfg.Output.Headers)
	}

	cmd = validateCmd()
	if err := cmd.ParseFlags([]string{"--bias", "9"}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveValidateConfig(cmd, settingsOptions{bias: "9"}); err == nil {
		t.Error("expected error for out-of-range bias")
	}
}

func TestGenerateWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.xlsx")

	cmd := rootCmd()
	cmd.SetArgs([]string{"generate", "--teams", "5", "--games", "1", "--format", "xlsx", "-o", path, "--seed", "3"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("workbook not written: %v", err)
	}
}

func TestInitWritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := runInit(path); err != nil {
		t.Fatalf("runInit() error: %v", err)
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	if cfg.Teams != 4 || cfg.Bias != outcome.None {
		t.Errorf("cfg = %d teams, %s bias; want 4, none", cfg.Teams, cfg.Bias)
	}

	if err := runInit(path); err == nil {
		t.Error("expected error when config already exists")
	}
}
