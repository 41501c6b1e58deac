// Package sheet turns per-round prediction sheets into canonical predictions.
//
// Parsing is best effort. Cell-level problems degrade to absent picks and
// sheet-level problems are reported through Result.Status; nothing here
// returns an error for bad sheet content.
package sheet

import (
	"context"

	"github.com/okian/maulas/internal/domain/model"
)

// Sheet is one delimited input artifact, already split into cells.
type Sheet struct {
	// Label identifies the sheet, usually the file base name.
	Label string
	// Rows holds every line of the sheet, blank lines included.
	Rows [][]string
}

// Status is the outcome of parsing one sheet.
type Status int

const (
	// StatusOK means every recognized cell was accepted.
	StatusOK Status = iota
	// StatusPartial means predictions were produced but some cells were
	// discarded or the Pleno row could not be located.
	StatusPartial
	// StatusRejected means the sheet contributes nothing.
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPartial:
		return "partial"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Rejection reasons.
const (
	ReasonNoRound   = "no round number in label"
	ReasonTooShort  = "too few rows"
	ReasonNoMembers = "no member columns"
)

// Result is what an Adapter extracts from a sheet.
type Result struct {
	Label  string
	Round  int
	Status Status
	// Reason explains a rejected or partial status.
	Reason string
	// Predictions holds one entry per recognized member column, by member id.
	Predictions []model.Prediction
	// Discarded counts cells in events 1-14 that held a token outside the
	// whitelist.
	Discarded int
	// TerminalFound reports whether the Pleno row was accepted.
	TerminalFound bool
	// Unmatched lists header cells that named no member.
	Unmatched []string
}

// Adapter isolates sheet layout heuristics from scoring.
type Adapter interface {
	Parse(ctx context.Context, s Sheet) Result
}
