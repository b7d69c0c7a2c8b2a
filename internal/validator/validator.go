package validator

import (
	"fmt"
	"math"

	"github.com/derekprior/gamegen/internal/config"
	"github.com/derekprior/gamegen/internal/excel"
	"github.com/derekprior/gamegen/internal/export"
	"github.com/derekprior/gamegen/internal/outcome"
	"github.com/derekprior/gamegen/internal/schedule"
	"github.com/derekprior/gamegen/internal/summary"
)

// Violation represents a problem found during validation.
type Violation struct {
	Row     int    // 1-based data row, 0 when not tied to a row
	Type    string // "error" or "warning"
	Message string
}

// Ratios are written with six decimals, so anything this close to the
// decision boundary can't be checked from the file.
const boundaryTolerance = 1e-6

// Home share and home win rate deviating by more than this many standard
// errors from 0.5 produce a warning.
const balanceSigmas = 4.0

// ValidateCSV reads a stats/results file pair and checks it against cfg.
func ValidateCSV(cfg *config.Config, statsPath, resultsPath string) ([]Violation, error) {
	records, err := export.ReadCSV(statsPath, resultsPath, cfg.Output.Headers)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Check(cfg, records), nil
}

// ValidateWorkbook reads a workbook written by the excel package and checks
// it against cfg.
func ValidateWorkbook(cfg *config.Config, path string) ([]Violation, error) {
	records, err := excel.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	return Check(cfg, records), nil
}

// Check runs every rule and guideline against records.
func Check(cfg *config.Config, records []outcome.Record) []Violation {
	var violations []Violation

	// Rules
	violations = append(violations, checkGameIndexes(records)...)
	violations = append(violations, checkTeamCodes(cfg, records)...)
	violations = append(violations, checkGameCount(cfg, records)...)
	violations = append(violations, checkPairCoverage(cfg, records)...)
	violations = append(violations, checkRatioRanges(cfg, records)...)
	violations = append(violations, checkOutcomes(cfg, records)...)

	// Guidelines
	violations = append(violations, checkHomeBalance(cfg, records)...)
	violations = append(violations, checkCoinFairness(cfg, records)...)

	return violations
}

// Errors counts the violations of type "error".
func Errors(violations []Violation) int {
	n := 0
	for _, v := range violations {
		if v.Type == "error" {
			n++
		}
	}
	return n
}

func checkGameIndexes(records []outcome.Record) []Violation {
	var violations []Violation
	for i, r := range records {
		if r.Index != i {
			violations = append(violations, Violation{
				Row:     i + 1,
				Type:    "error",
				Message: fmt.Sprintf("game index %d at position %d", r.Index, i),
			})
		}
	}
	return violations
}

func checkTeamCodes(cfg *config.Config, records []outcome.Record) []Violation {
	var violations []Violation
	for i, r := range records {
		if r.Home == r.Away {
			violations = append(violations, Violation{
				Row:     i + 1,
				Type:    "error",
				Message: fmt.Sprintf("game %d: team %d plays itself", r.Index, r.Home),
			})
		}
		for _, code := range []int{r.Home, r.Away} {
			if code < 0 || code >= cfg.Teams {
				violations = append(violations, Violation{
					Row:     i + 1,
					Type:    "error",
					Message: fmt.Sprintf("game %d: team code %d outside 0-%d", r.Index, code, cfg.Teams-1),
				})
			}
		}
	}
	return violations
}

func checkGameCount(cfg *config.Config, records []outcome.Record) []Violation {
	want := schedule.ExpectedGames(cfg.Teams, cfg.GamesPerTeamPair)
	if len(records) == want {
		return nil
	}
	return []Violation{{
		Type: "error",
		Message: fmt.Sprintf("%d games for %d teams playing each other %d time(s), want %d",
			len(records), cfg.Teams, cfg.GamesPerTeamPair, want),
	}}
}

func checkPairCoverage(cfg *config.Config, records []outcome.Record) []Violation {
	counts := make(map[schedule.Pair]int)
	for _, r := range records {
		if r.Home != r.Away {
			counts[schedule.Matchup{Home: r.Home, Away: r.Away}.Pair()]++
		}
	}

	var violations []Violation
	for a := 0; a < cfg.Teams; a++ {
		for b := a + 1; b < cfg.Teams; b++ {
			if n := counts[schedule.Pair{A: a, B: b}]; n != cfg.GamesPerTeamPair {
				violations = append(violations, Violation{
					Type:    "error",
					Message: fmt.Sprintf("%d vs %d played %d time(s), want %d", a, b, n, cfg.GamesPerTeamPair),
				})
			}
		}
	}
	return violations
}

func checkRatioRanges(cfg *config.Config, records []outcome.Record) []Violation {
	type bounded struct {
		name  string
		rng   outcome.Range
		value func(outcome.Ratios) float64
	}
	checks := []bounded{
		{"wip", cfg.Ratios.WIP, func(r outcome.Ratios) float64 { return r.WIP }},
		{"rbi", cfg.Ratios.RBI, func(r outcome.Ratios) float64 { return r.RBI }},
		{"war", cfg.Ratios.WAR, func(r outcome.Ratios) float64 { return r.WAR }},
	}

	var violations []Violation
	for i, r := range records {
		for _, c := range checks {
			v := c.value(r.Ratios)
			widened := outcome.Range{Min: c.rng.Min - boundaryTolerance, Max: c.rng.Max + boundaryTolerance}
			if !widened.Contains(v) {
				violations = append(violations, Violation{
					Row:  i + 1,
					Type: "error",
					Message: fmt.Sprintf("game %d: %s ratio %f outside [%g, %g]",
						r.Index, c.name, v, c.rng.Min, c.rng.Max),
				})
			}
		}
	}
	return violations
}

// checkOutcomes re-applies a ratio-based bias. Records whose deciding value
// sits within rounding distance of 1.0 are skipped.
func checkOutcomes(cfg *config.Config, records []outcome.Record) []Violation {
	if !outcome.RatioBased(cfg.Bias) {
		return nil
	}

	var violations []Violation
	for i, r := range records {
		if math.Abs(decidingValue(cfg.Bias, r.Ratios)-1.0) < boundaryTolerance {
			continue
		}
		// The rng is never consulted for ratio-based biases.
		want := outcome.Decide(cfg.Bias, r.Ratios, nil)
		if r.HomeWin != want {
			violations = append(violations, Violation{
				Row:  i + 1,
				Type: "error",
				Message: fmt.Sprintf("game %d: homeWin is %t but %s gives %t",
					r.Index, r.HomeWin, cfg.Bias, want),
			})
		}
	}
	return violations
}

func decidingValue(b outcome.Bias, r outcome.Ratios) float64 {
	switch b {
	case outcome.PreferWIP:
		return r.WIP
	case outcome.PreferRBI:
		return r.RBI
	case outcome.PreferWAR:
		return r.WAR
	default:
		return r.Mean()
	}
}

func checkHomeBalance(cfg *config.Config, records []outcome.Record) []Violation {
	s := summary.Build(cfg.Teams, records)

	var violations []Violation
	for _, m := range s.Teams {
		if m.Games == 0 {
			continue
		}
		share := float64(m.Home) / float64(m.Games)
		if outsideBand(share, m.Games) {
			violations = append(violations, Violation{
				Type: "warning",
				Message: fmt.Sprintf("team %d is home in %d of %d games (%.0f%%)",
					m.Team, m.Home, m.Games, share*100),
			})
		}
	}
	return violations
}

func checkCoinFairness(cfg *config.Config, records []outcome.Record) []Violation {
	if outcome.RatioBased(cfg.Bias) || len(records) == 0 {
		return nil
	}
	s := summary.Build(cfg.Teams, records)
	if !outsideBand(s.HomeWinRate(), s.Games) {
		return nil
	}
	return []Violation{{
		Type: "warning",
		Message: fmt.Sprintf("home side won %d of %d games (%.0f%%) with no bias",
			s.HomeWins, s.Games, s.HomeWinRate()*100),
	}}
}

// outsideBand reports whether an observed share of n fair coin flips is more
// than balanceSigmas standard errors away from 0.5.
func outsideBand(share float64, n int) bool {
	stdErr := math.Sqrt(0.25 / float64(n))
	return math.Abs(share-0.5) > balanceSigmas*stdErr
}
