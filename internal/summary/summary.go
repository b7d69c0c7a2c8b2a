package summary

import (
	"fmt"
	"io"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"

	"github.com/derekprior/gamegen/internal/outcome"
)

// TeamMetrics holds per-team dataset statistics.
type TeamMetrics struct {
	Team     int
	Games    int
	Home     int
	Away     int
	Wins     int
	Losses   int
	HomeWins int
}

// RatioStats describes the drawn values of one ratio across all games.
type RatioStats struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary is the output of Build.
type Summary struct {
	Teams    []TeamMetrics
	Ratios   []RatioStats
	Games    int
	HomeWins int
}

// HomeWinRate is the fraction of games won by the home side.
func (s *Summary) HomeWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.HomeWins) / float64(s.Games)
}

// Build tallies records for teams 0..numTeams-1. Records naming a team
// outside that range are counted in the totals only.
func Build(numTeams int, records []outcome.Record) *Summary {
	if numTeams < 0 {
		numTeams = 0
	}
	s := &Summary{
		Teams: make([]TeamMetrics, numTeams),
		Games: len(records),
	}
	for i := range s.Teams {
		s.Teams[i].Team = i
	}

	var wip, rbi, war []float64
	for _, r := range records {
		wip = append(wip, r.Ratios.WIP)
		rbi = append(rbi, r.Ratios.RBI)
		war = append(war, r.Ratios.WAR)

		if r.HomeWin {
			s.HomeWins++
		}
		if home := s.team(r.Home); home != nil {
			home.Games++
			home.Home++
			if r.HomeWin {
				home.Wins++
				home.HomeWins++
			} else {
				home.Losses++
			}
		}
		if away := s.team(r.Away); away != nil {
			away.Games++
			away.Away++
			if r.HomeWin {
				away.Losses++
			} else {
				away.Wins++
			}
		}
	}

	s.Ratios = []RatioStats{
		describe("wip", wip),
		describe("rbi", rbi),
		describe("war", war),
	}
	return s
}

func (s *Summary) team(code int) *TeamMetrics {
	if code < 0 || code >= len(s.Teams) {
		return nil
	}
	return &s.Teams[code]
}

// describe returns zero values for an empty series.
func describe(name string, values []float64) RatioStats {
	rs := RatioStats{Name: name}
	if len(values) == 0 {
		return rs
	}
	data := stats.Float64Data(values)
	rs.Mean, _ = data.Mean()
	rs.StdDev, _ = data.StandardDeviation()
	rs.Min, _ = data.Min()
	rs.Max, _ = data.Max()
	return rs
}

// RenderTeams writes the per-team table.
func RenderTeams(w io.Writer, s *Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Team", "Games", "Home", "Away", "Wins", "Losses"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, m := range s.Teams {
		table.Append([]string{
			strconv.Itoa(m.Team),
			strconv.Itoa(m.Games),
			strconv.Itoa(m.Home),
			strconv.Itoa(m.Away),
			strconv.Itoa(m.Wins),
			strconv.Itoa(m.Losses),
		})
	}
	table.Render()
}

// RenderRatios writes the ratio distribution table.
func RenderRatios(w io.Writer, s *Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Ratio", "Mean", "StdDev", "Min", "Max"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range s.Ratios {
		table.Append([]string{
			r.Name,
			fmt.Sprintf("%.4f", r.Mean),
			fmt.Sprintf("%.4f", r.StdDev),
			fmt.Sprintf("%.4f", r.Min),
			fmt.Sprintf("%.4f", r.Max),
		})
	}
	table.Render()
}
