package scoring

import (
	"fmt"
	"strings"

	"github.com/okian/maulas/internal/domain/model"
	"github.com/okian/maulas/internal/domain/sign"
)

// Match selects how a normalized official sign is compared to a raw pick.
type Match int

const (
	// MatchStrict requires the pick to equal the official sign.
	MatchStrict Match = iota + 1
	// MatchContainment accepts any pick that contains the official sign,
	// so a double chance such as "1X" hits on either 1 or X.
	MatchContainment
)

func (m Match) String() string {
	switch m {
	case MatchStrict:
		return "strict"
	case MatchContainment:
		return "containment"
	default:
		return "unset"
	}
}

// ParseMatch resolves a policy name. There is no default.
func ParseMatch(name string) (Match, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "strict":
		return MatchStrict, nil
	case "containment":
		return MatchContainment, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMatch, name)
	}
}

// Policy is the full rule set used to count hits.
type Policy struct {
	Match Match
	// IncludeTerminal counts an exact Pleno scoreline as a fifteenth hit.
	IncludeTerminal bool
}

// MaxHits is the highest hit count the policy can produce.
func (p Policy) MaxHits() int {
	if p.IncludeTerminal {
		return model.EventCount
	}
	return model.ScoredEvents
}

// Hits counts how many of sel's events agree with official.
func (p Policy) Hits(official model.OfficialResult, sel model.Selection) int {
	hits := 0
	for i := 0; i < model.ScoredEvents; i++ {
		if p.hit(official.Tokens[i], sel[i]) {
			hits++
		}
	}
	if p.IncludeTerminal && terminalHit(official.Tokens[model.TerminalIndex], sel[model.TerminalIndex]) {
		hits++
	}
	return hits
}

func (p Policy) hit(official string, pick model.Pick) bool {
	want := sign.Normalize(official)
	if !want.Valid() || pick.IsAbsent() {
		return false
	}
	got := strings.ToUpper(strings.TrimSpace(pick.String()))
	switch p.Match {
	case MatchStrict:
		return got == string(want)
	case MatchContainment:
		return strings.Contains(got, string(want))
	default:
		return false
	}
}

// terminalHit compares Pleno tokens as scorelines, ignoring case and spaces.
func terminalHit(official string, pick model.Pick) bool {
	want := compact(official)
	return want != "" && want == compact(pick.String())
}

func compact(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
