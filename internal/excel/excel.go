package excel

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/gamegen/internal/export"
	"github.com/derekprior/gamegen/internal/outcome"
	"github.com/derekprior/gamegen/internal/summary"
)

// Sheet names.
const (
	StatsSheet   = "Game Stats"
	ResultsSheet = "Game Results"
	TeamsSheet   = "Teams"
)

var (
	statsHeaders   = []string{"gameIndex", "homeTeam", "awayTeam", "wipRatio", "rbiRatio", "warRatio"}
	resultsHeaders = []string{"gameIndex", "homeTeam", "awayTeam", "homeWin"}
	teamHeaders    = []string{"Team", "Games", "Home", "Away", "Wins", "Losses", "Home Wins"}
)

// Generate creates a workbook with the stats and results tables and a
// per-team summary sheet.
func Generate(numTeams int, records []outcome.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	stats, results := export.Rows(records)

	if err := writeStatsSheet(f, stats); err != nil {
		return nil, fmt.Errorf("writing stats sheet: %w", err)
	}
	if err := writeResultsSheet(f, results); err != nil {
		return nil, fmt.Errorf("writing results sheet: %w", err)
	}
	if err := writeTeamSheet(f, summary.Build(numTeams, records)); err != nil {
		return nil, fmt.Errorf("writing team sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// Read loads the records back out of a workbook written by Generate.
func Read(path string) ([]outcome.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	stats, err := readStatsSheet(f)
	if err != nil {
		return nil, err
	}
	results, err := readResultsSheet(f)
	if err != nil {
		return nil, err
	}
	return export.Records(stats, results)
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), headerStyle)
	}
	f.SetColWidth(sheet, "A", colLetter(len(headers)), 14)
}

func writeStatsSheet(f *excelize.File, rows []*export.StatsRow) error {
	if _, err := f.NewSheet(StatsSheet); err != nil {
		return err
	}
	writeHeaders(f, StatsSheet, statsHeaders)

	ratioFmt := "0.000000"
	ratioStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &ratioFmt})

	for i, r := range rows {
		row := i + 2
		values := []interface{}{r.GameIndex, r.HomeTeam, r.AwayTeam, float64(r.WIPRatio), float64(r.RBIRatio), float64(r.WARRatio)}
		if err := f.SetSheetRow(StatsSheet, cellRef(1, row), &values); err != nil {
			return err
		}
	}
	if len(rows) > 0 && ratioStyle != 0 {
		f.SetCellStyle(StatsSheet, cellRef(4, 2), cellRef(6, len(rows)+1), ratioStyle)
	}
	return nil
}

func writeResultsSheet(f *excelize.File, rows []*export.ResultRow) error {
	if _, err := f.NewSheet(ResultsSheet); err != nil {
		return err
	}
	writeHeaders(f, ResultsSheet, resultsHeaders)

	for i, r := range rows {
		row := i + 2
		values := []interface{}{r.GameIndex, r.HomeTeam, r.AwayTeam, strconv.FormatBool(r.HomeWin)}
		if err := f.SetSheetRow(ResultsSheet, cellRef(1, row), &values); err != nil {
			return err
		}
	}

	// Highlight home wins
	if len(rows) > 0 {
		greenFill, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#C6EFCE"}},
		})
		cellRange := fmt.Sprintf("D2:D%d", len(rows)+1)
		f.SetConditionalFormat(ResultsSheet, cellRange, []excelize.ConditionalFormatOptions{
			{
				Type:     "cell",
				Criteria: "==",
				Value:    `"true"`,
				Format:   &greenFill,
			},
		})
	}
	return nil
}

func writeTeamSheet(f *excelize.File, s *summary.Summary) error {
	if _, err := f.NewSheet(TeamsSheet); err != nil {
		return err
	}
	writeHeaders(f, TeamsSheet, teamHeaders)

	for i, m := range s.Teams {
		row := i + 2
		values := []interface{}{m.Team, m.Games, m.Home, m.Away, m.Wins, m.Losses, m.HomeWins}
		if err := f.SetSheetRow(TeamsSheet, cellRef(1, row), &values); err != nil {
			return err
		}
	}
	return nil
}

func readStatsSheet(f *excelize.File) ([]*export.StatsRow, error) {
	rows, err := dataRows(f, StatsSheet, len(statsHeaders))
	if err != nil {
		return nil, err
	}

	var stats []*export.StatsRow
	for i, row := range rows {
		ints, err := parseInts(row[:3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", StatsSheet, i+2, err)
		}
		var ratios [3]float64
		for j := range ratios {
			ratios[j], err = strconv.ParseFloat(row[3+j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: invalid ratio %q", StatsSheet, i+2, row[3+j])
			}
		}
		stats = append(stats, &export.StatsRow{
			GameIndex: ints[0],
			HomeTeam:  ints[1],
			AwayTeam:  ints[2],
			WIPRatio:  export.Ratio(ratios[0]),
			RBIRatio:  export.Ratio(ratios[1]),
			WARRatio:  export.Ratio(ratios[2]),
		})
	}
	return stats, nil
}

func readResultsSheet(f *excelize.File) ([]*export.ResultRow, error) {
	rows, err := dataRows(f, ResultsSheet, len(resultsHeaders))
	if err != nil {
		return nil, err
	}

	var results []*export.ResultRow
	for i, row := range rows {
		ints, err := parseInts(row[:3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", ResultsSheet, i+2, err)
		}
		win, err := strconv.ParseBool(row[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid homeWin %q", ResultsSheet, i+2, row[3])
		}
		results = append(results, &export.ResultRow{
			GameIndex: ints[0],
			HomeTeam:  ints[1],
			AwayTeam:  ints[2],
			HomeWin:   win,
		})
	}
	return results, nil
}

// dataRows returns the non-empty rows below the header, each with at least
// width cells.
func dataRows(f *excelize.File, sheet string, width int) ([][]string, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", sheet)
	}

	var data [][]string
	for i, row := range rows[1:] {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if len(row) < width {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", sheet, i+2, width, len(row))
		}
		data = append(data, row)
	}
	return data, nil
}

func parseInts(cells []string) ([]int, error) {
	out := make([]int, len(cells))
	for i, c := range cells {
		v, err := strconv.Atoi(c)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", c)
		}
		out[i] = v
	}
	return out, nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
