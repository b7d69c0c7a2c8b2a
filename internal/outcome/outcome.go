package outcome

import (
	"fmt"
	"math/rand"

	"github.com/derekprior/gamegen/internal/schedule"
)

// Range is a closed-open interval [Min, Max) that a ratio is drawn from.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Draw returns a uniform sample from the range.
func (r Range) Draw(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies within the range, inclusive at both ends.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) validate() error {
	if r.Max < r.Min {
		return fmt.Errorf("min %g is greater than max %g", r.Min, r.Max)
	}
	return nil
}

// Ranges holds the draw interval for each statistic.
type Ranges struct {
	WIP Range `yaml:"wip"`
	RBI Range `yaml:"rbi"`
	WAR Range `yaml:"war"`
}

// DefaultRanges returns [0.75, 1.25] for all three statistics.
func DefaultRanges() Ranges {
	r := Range{Min: 0.75, Max: 1.25}
	return Ranges{WIP: r, RBI: r, WAR: r}
}

// Validate checks that every range has Min <= Max.
func (r Ranges) Validate() error {
	if err := r.WIP.validate(); err != nil {
		return fmt.Errorf("wip range: %w", err)
	}
	if err := r.RBI.validate(); err != nil {
		return fmt.Errorf("rbi range: %w", err)
	}
	if err := r.WAR.validate(); err != nil {
		return fmt.Errorf("war range: %w", err)
	}
	return nil
}

// Ratios are the home-to-away performance ratios for one game.
type Ratios struct {
	WIP float64
	RBI float64
	WAR float64
}

// Mean is the average of the three ratios.
func (r Ratios) Mean() float64 {
	return (r.WIP + r.RBI + r.WAR) / 3
}

// Draw samples each ratio independently from its range, in WIP, RBI, WAR
// order.
func (r Ranges) Draw(rng *rand.Rand) Ratios {
	return Ratios{
		WIP: r.WIP.Draw(rng),
		RBI: r.RBI.Draw(rng),
		WAR: r.WAR.Draw(rng),
	}
}

// Record is one fully resolved game. Index is the game's position in the
// generated sequence.
type Record struct {
	Index   int
	Home    int
	Away    int
	Ratios  Ratios
	HomeWin bool
}

// decider maps ratios to "home wins". A ratio of exactly 1.0 is a home loss.
type decider func(Ratios) bool

var deciders = map[Bias]decider{
	PreferWIP:     func(r Ratios) bool { return r.WIP > 1.0 },
	PreferRBI:     func(r Ratios) bool { return r.RBI > 1.0 },
	PreferWAR:     func(r Ratios) bool { return r.WAR > 1.0 },
	PreferAverage: func(r Ratios) bool { return r.Mean() > 1.0 },
}

// RatioBased reports whether the bias decides winners from the ratios. None
// and unrecognized values fall back to a coin flip.
func RatioBased(b Bias) bool {
	_, ok := deciders[b]
	return ok
}

// Decide returns whether the home team wins under bias b. Biases without a
// ratio rule, including unrecognized values, flip a fair coin with rng.
func Decide(b Bias, r Ratios, rng *rand.Rand) bool {
	if decide, ok := deciders[b]; ok {
		return decide(r)
	}
	return rng.Intn(2) == 1
}

// Generate resolves every matchup into a Record. Ratios are drawn before
// the winner is decided, so the coin flip for None consumes rng after them.
func Generate(matchups []schedule.Matchup, bias Bias, ranges Ranges, rng *rand.Rand) []Record {
	records := make([]Record, len(matchups))
	for i, m := range matchups {
		ratios := ranges.Draw(rng)
		records[i] = Record{
			Index:   i,
			Home:    m.Home,
			Away:    m.Away,
			Ratios:  ratios,
			HomeWin: Decide(bias, ratios, rng),
		}
	}
	return records
}
