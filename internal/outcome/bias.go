package outcome

import (
	"fmt"
	"strconv"
	"strings"
)

// Bias selects the rule that turns a game's ratios into a winner.
type Bias int

const (
	None Bias = iota
	PreferWIP
	PreferRBI
	PreferWAR
	PreferAverage
)

var biasNames = map[Bias]string{
	None:          "none",
	PreferWIP:     "prefer_wip",
	PreferRBI:     "prefer_rbi",
	PreferWAR:     "prefer_war",
	PreferAverage: "prefer_average",
}

// Biases lists the recognized values in code order.
func Biases() []Bias {
	return []Bias{None, PreferWIP, PreferRBI, PreferWAR, PreferAverage}
}

func (b Bias) String() string {
	if name, ok := biasNames[b]; ok {
		return name
	}
	return fmt.Sprintf("bias(%d)", int(b))
}

// Valid reports whether b is one of the recognized bias values.
func (b Bias) Valid() bool {
	_, ok := biasNames[b]
	return ok
}

// ParseBias accepts either a bias name ("prefer_wip") or its numeric code
// ("1"). Unknown names and codes outside 0-4 are rejected.
func ParseBias(s string) (Bias, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if code, err := strconv.Atoi(s); err == nil {
		b := Bias(code)
		if !b.Valid() {
			return None, fmt.Errorf("bias code %d out of range 0-%d", code, len(biasNames)-1)
		}
		return b, nil
	}
	for b, name := range biasNames {
		if name == s {
			return b, nil
		}
	}
	// "prefer_avg" is accepted as shorthand.
	if s == "prefer_avg" {
		return PreferAverage, nil
	}
	return None, fmt.Errorf("unknown bias: %q", s)
}

// MarshalText encodes the bias by name.
func (b Bias) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("unknown bias: %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText lets config files use either names or codes.
func (b *Bias) UnmarshalText(text []byte) error {
	parsed, err := ParseBias(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
