// Package sign maps raw outcome tokens onto the ternary 1/X/2 alphabet.
package sign

import (
	"strconv"
	"strings"
)

// Outcome is a canonical ternary outcome. Unknown means the token could not
// be classified; scoring treats it as a guaranteed miss.
type Outcome string

// Canonical outcomes.
const (
	Home    Outcome = "1"
	Draw    Outcome = "X"
	Away    Outcome = "2"
	Unknown Outcome = ""
)

// abandonedStrength stands in for an "M"/"M+" side of a scoreline. It must
// beat any real goal count.
const abandonedStrength = 1 << 20

// scoreSeparators split a scoreline into home and away parts.
const scoreSeparators = "-:"

// Normalize classifies a raw token. It never fails: malformed input yields
// Unknown.
func Normalize(raw string) Outcome {
	t := strings.ToUpper(strings.TrimSpace(raw))
	switch Outcome(t) {
	case Home, Draw, Away:
		return Outcome(t)
	case Unknown:
		return Unknown
	}

	i := strings.IndexAny(t, scoreSeparators)
	if i < 0 {
		return Unknown
	}
	home, okHome := strength(t[:i])
	away, okAway := strength(t[i+1:])
	if !okHome || !okAway {
		return Unknown
	}
	switch {
	case home > away:
		return Home
	case home < away:
		return Away
	default:
		return Draw
	}
}

// Valid reports whether o is one of 1, X or 2.
func (o Outcome) Valid() bool {
	return o == Home || o == Draw || o == Away
}

// strength evaluates one side of a scoreline.
func strength(part string) (int, bool) {
	part = strings.TrimSpace(part)
	switch part {
	case "M", "M+":
		return abandonedStrength, true
	case "":
		return 0, false
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, false
	}
	return n, true
}
