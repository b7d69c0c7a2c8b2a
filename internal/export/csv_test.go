package export

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/gamegen/internal/outcome"
	"github.com/derekprior/gamegen/internal/schedule"
)

func sampleRecords() []outcome.Record {
	return []outcome.Record{
		{Index: 0, Home: 1, Away: 0, Ratios: outcome.Ratios{WIP: 1.1, RBI: 0.9, WAR: 1.0}, HomeWin: true},
		{Index: 1, Home: 0, Away: 2, Ratios: outcome.Ratios{WIP: 0.8, RBI: 1.2, WAR: 0.75}, HomeWin: false},
	}
}

func TestEncodeWithoutHeaders(t *testing.T) {
	stats, results := Rows(sampleRecords())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &stats, false))
	assert.Equal(t, "0,1,0,1.100000,0.900000,1.000000\n1,0,2,0.800000,1.200000,0.750000\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, &results, false))
	assert.Equal(t, "0,1,0,true\n1,0,2,false\n", buf.String())
}

func TestEncodeWithHeaders(t *testing.T) {
	stats, results := Rows(sampleRecords())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &stats, true))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "gameIndex,homeTeam,awayTeam,wipRatio,rbiRatio,warRatio", lines[0])

	buf.Reset()
	require.NoError(t, Encode(&buf, &results, true))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "gameIndex,homeTeam,awayTeam,homeWin", lines[0])
}

func TestRowsUsePositionForIndex(t *testing.T) {
	records := sampleRecords()
	records[0].Index = 41
	records[1].Index = 7

	stats, results := Rows(records)
	assert.Equal(t, 0, stats[0].GameIndex)
	assert.Equal(t, 1, stats[1].GameIndex)
	assert.Equal(t, 0, results[0].GameIndex)
	assert.Equal(t, 1, results[1].GameIndex)
}

func TestWriteAndReadCSV(t *testing.T) {
	for _, headers := range []bool{false, true} {
		name := "headerless"
		if headers {
			name = "with headers"
		}
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(17))
			records := outcome.Generate(schedule.RoundRobin(5, 2, rng), outcome.PreferAverage, outcome.DefaultRanges(), rng)

			dir := t.TempDir()
			statsPath := filepath.Join(dir, "game_stats.csv")
			resultsPath := filepath.Join(dir, "game_results.csv")
			require.NoError(t, WriteCSV(statsPath, resultsPath, records, headers))

			got, err := ReadCSV(statsPath, resultsPath, headers)
			require.NoError(t, err)
			require.Len(t, got, len(records))
			for i, r := range got {
				assert.Equal(t, records[i].Index, r.Index)
				assert.Equal(t, records[i].Home, r.Home)
				assert.Equal(t, records[i].Away, r.Away)
				assert.Equal(t, records[i].HomeWin, r.HomeWin)
				assert.InDelta(t, records[i].Ratios.WIP, r.Ratios.WIP, 1e-6)
				assert.InDelta(t, records[i].Ratios.RBI, r.Ratios.RBI, 1e-6)
				assert.InDelta(t, records[i].Ratios.WAR, r.Ratios.WAR, 1e-6)
			}
		})
	}
}

func TestReadCSVMismatchedTables(t *testing.T) {
	dir := t.TempDir()
	statsPath := filepath.Join(dir, "stats.csv")
	resultsPath := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(statsPath, []byte("0,0,1,1.000000,1.000000,1.000000\n"), 0644))
	require.NoError(t, os.WriteFile(resultsPath, []byte("0,1,0,true\n"), 0644))

	_, err := ReadCSV(statsPath, resultsPath, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disagree")
}

func TestReadCSVMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadCSV(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "nope2.csv"), false)
	assert.Error(t, err)
}

func TestRatioUnmarshalInvalid(t *testing.T) {
	var r Ratio
	assert.Error(t, r.UnmarshalCSV("abc"))
	require.NoError(t, r.UnmarshalCSV("1.250000"))
	assert.Equal(t, Ratio(1.25), r)
}
