// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"strconv"
)

// Round layout constants. Every sheet and official result carries
// EventCount slots: ScoredEvents ternary matches plus the terminal Pleno.
const (
	EventCount    = 15
	ScoredEvents  = 14
	TerminalIndex = EventCount - 1
)

// Member is a pool participant. IDs are 1-based positions in the roster.
type Member struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Pick is one prediction slot. The zero value is an absent pick, which is
// distinct from any token the member actually wrote.
type Pick string

// Absent marks a slot the member left blank or that failed validation.
const Absent Pick = ""

// IsAbsent reports whether the slot holds no token.
func (p Pick) IsAbsent() bool { return p == Absent }

// String returns the raw token.
func (p Pick) String() string { return string(p) }

// MarshalJSON encodes absent picks as null.
func (p Pick) MarshalJSON() ([]byte, error) {
	if p.IsAbsent() {
		return []byte("null"), nil
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON decodes null back into an absent pick.
func (p *Pick) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Absent
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = Pick(s)
	return nil
}

// Selection is the ordered 15-slot prediction of one member for one round.
type Selection [EventCount]Pick

// Empty reports whether every slot is absent.
func (s Selection) Empty() bool {
	for _, p := range s {
		if !p.IsAbsent() {
			return false
		}
	}
	return true
}

// Prediction is the canonical record of a member's selection for a round.
type Prediction struct {
	Round     int       `json:"round" bson:"round"`
	MemberID  int       `json:"member_id" bson:"member_id"`
	Selection Selection `json:"selection" bson:"selection"`
}

// Key returns the upsert key "<round>_<member>".
func (p Prediction) Key() string {
	return PredictionKey(p.Round, p.MemberID)
}

// PredictionKey builds the identity used by downstream stores.
func PredictionKey(round, memberID int) string {
	return strconv.Itoa(round) + "_" + strconv.Itoa(memberID)
}

// OfficialResult is the hand-maintained outcome of a round: 14 signs plus a
// terminal scoreline or special marker. Blank tokens mean "not known yet".
type OfficialResult struct {
	Round  int                `json:"round"`
	Tokens [EventCount]string `json:"tokens"`
}
