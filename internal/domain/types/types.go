// Package types contains common types used across the application
package types

// Entry represents one member's line in a round ranking
type Entry struct {
	Rank     int    `json:"rank"`
	MemberID int    `json:"member_id"`
	Name     string `json:"name"`
	Hits     int    `json:"hits"`
	Points   int    `json:"points"`
}

// Before reports whether e ranks ahead of o: more hits first, then the
// lower member id.
func (e Entry) Before(o Entry) bool {
	if e.Hits != o.Hits {
		return e.Hits > o.Hits
	}
	return e.MemberID < o.MemberID
}

// Podium is the winner and runner-up of a round
type Podium struct {
	Round    int    `json:"round"`
	Winner   Entry  `json:"winner"`
	RunnerUp *Entry `json:"runner_up,omitempty"`
}

// Assignment names who bears the forfeit duty for a target round
type Assignment struct {
	Round     int    `json:"round"`
	Source    int    `json:"source_round,omitempty"`
	Member    *Entry `json:"member,omitempty"`
	RunnerUp  *Entry `json:"runner_up,omitempty"`
	Bootstrap bool   `json:"bootstrap,omitempty"`
	Missing   bool   `json:"missing,omitempty"`
	Note      string `json:"note,omitempty"`
}

// SkippedSheet records an input sheet that contributed nothing
type SkippedSheet struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}
