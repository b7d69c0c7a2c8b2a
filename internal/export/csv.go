package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/derekprior/gamegen/internal/outcome"
)

// Ratio is a float64 written with six decimal places.
type Ratio float64

func (r Ratio) MarshalCSV() (string, error) {
	return strconv.FormatFloat(float64(r), 'f', 6, 64), nil
}

func (r *Ratio) UnmarshalCSV(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid ratio %q: %w", s, err)
	}
	*r = Ratio(v)
	return nil
}

// StatsRow is one line of the game stats table.
type StatsRow struct {
	GameIndex int   `csv:"gameIndex"`
	HomeTeam  int   `csv:"homeTeam"`
	AwayTeam  int   `csv:"awayTeam"`
	WIPRatio  Ratio `csv:"wipRatio"`
	RBIRatio  Ratio `csv:"rbiRatio"`
	WARRatio  Ratio `csv:"warRatio"`
}

// ResultRow is one line of the game results table.
type ResultRow struct {
	GameIndex int  `csv:"gameIndex"`
	HomeTeam  int  `csv:"homeTeam"`
	AwayTeam  int  `csv:"awayTeam"`
	HomeWin   bool `csv:"homeWin"`
}

// Rows splits records into the stats and results tables. Game indexes are
// taken from sequence position.
func Rows(records []outcome.Record) ([]*StatsRow, []*ResultRow) {
	stats := make([]*StatsRow, len(records))
	results := make([]*ResultRow, len(records))
	for i, r := range records {
		stats[i] = &StatsRow{
			GameIndex: i,
			HomeTeam:  r.Home,
			AwayTeam:  r.Away,
			WIPRatio:  Ratio(r.Ratios.WIP),
			RBIRatio:  Ratio(r.Ratios.RBI),
			WARRatio:  Ratio(r.Ratios.WAR),
		}
		results[i] = &ResultRow{
			GameIndex: i,
			HomeTeam:  r.Home,
			AwayTeam:  r.Away,
			HomeWin:   r.HomeWin,
		}
	}
	return stats, results
}

// Records joins the two tables back into records. Both tables must describe
// the same games in the same order.
func Records(stats []*StatsRow, results []*ResultRow) ([]outcome.Record, error) {
	if len(stats) != len(results) {
		return nil, fmt.Errorf("stats has %d rows but results has %d", len(stats), len(results))
	}
	records := make([]outcome.Record, len(stats))
	for i, s := range stats {
		r := results[i]
		if s.GameIndex != r.GameIndex || s.HomeTeam != r.HomeTeam || s.AwayTeam != r.AwayTeam {
			return nil, fmt.Errorf("row %d: stats (%d: %d vs %d) and results (%d: %d vs %d) disagree",
				i+1, s.GameIndex, s.HomeTeam, s.AwayTeam, r.GameIndex, r.HomeTeam, r.AwayTeam)
		}
		records[i] = outcome.Record{
			Index: s.GameIndex,
			Home:  s.HomeTeam,
			Away:  s.AwayTeam,
			Ratios: outcome.Ratios{
				WIP: float64(s.WIPRatio),
				RBI: float64(s.RBIRatio),
				WAR: float64(s.WARRatio),
			},
			HomeWin: r.HomeWin,
		}
	}
	return records, nil
}

// Encode writes rows (a pointer to a slice of row structs) as CSV.
func Encode(w io.Writer, rows interface{}, headers bool) error {
	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if headers {
		return gocsv.MarshalCSV(rows, writer)
	}
	return gocsv.MarshalCSVWithoutHeaders(rows, writer)
}

// Decode reads CSV into rows (a pointer to a slice of row structs).
// Headerless input is mapped by column position.
func Decode(r io.Reader, rows interface{}, headers bool) error {
	var err error
	if headers {
		err = gocsv.Unmarshal(r, rows)
	} else {
		err = gocsv.UnmarshalWithoutHeaders(r, rows)
	}
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil
	}
	return err
}

// WriteCSV writes the stats and results tables to their files.
func WriteCSV(statsPath, resultsPath string, records []outcome.Record, headers bool) error {
	stats, results := Rows(records)
	if err := writeFile(statsPath, &stats, headers); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	if err := writeFile(resultsPath, &results, headers); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// ReadCSV loads a stats/results file pair written by WriteCSV.
func ReadCSV(statsPath, resultsPath string, headers bool) ([]outcome.Record, error) {
	var stats []*StatsRow
	if err := readFile(statsPath, &stats, headers); err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}
	var results []*ResultRow
	if err := readFile(resultsPath, &results, headers); err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	return Records(stats, results)
}

func writeFile(path string, rows interface{}, headers bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, rows, headers); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readFile(path string, rows interface{}, headers bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Decode(f, rows, headers)
}
