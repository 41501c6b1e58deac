package sheet

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/okian/maulas/internal/domain/model"
)

// Fixed layout of a round sheet: header, 14 event rows, a gap, then Pleno.
const (
	headerRow   = 0
	firstEvent  = 1
	terminalRow = 16
	minRows     = 15
	// A Pleno row with more cells than this looks like data even without a label.
	terminalMinCells = 5
)

// DefaultAcceptedTokens is the whitelist for events 1-14: the three signs,
// double chances, a few scoreline literals and the pending placeholder.
var DefaultAcceptedTokens = []string{
	"1", "X", "2",
	"1X", "X1", "X2", "2X", "12", "21",
	"M", "0", "1-1", "2-1",
	"...",
}

var roundPattern = regexp.MustCompile(`(?i)jornada[ _-]*0*(\d+)`)

// PositionalAdapter reads the fixed row layout used by the pool's sheets.
type PositionalAdapter struct {
	roster   *model.Roster
	accepted map[string]struct{}
	fuzzy    bool
}

var _ Adapter = (*PositionalAdapter)(nil)

// NewPositionalAdapter returns an adapter resolving headers against roster.
func NewPositionalAdapter(roster *model.Roster, opts ...Option) *PositionalAdapter {
	a := &PositionalAdapter{roster: roster}
	WithAcceptedTokens(DefaultAcceptedTokens)(a)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RoundFromLabel extracts the round number from a sheet label.
func RoundFromLabel(label string) (int, bool) {
	m := roundPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Parse implements Adapter.
func (a *PositionalAdapter) Parse(_ context.Context, s Sheet) Result {
	res := Result{Label: s.Label}

	round, ok := RoundFromLabel(s.Label)
	if !ok {
		return reject(res, ReasonNoRound)
	}
	res.Round = round

	if len(s.Rows) < minRows {
		return reject(res, ReasonTooShort)
	}

	columns, unmatched := a.columns(s.Rows[headerRow])
	res.Unmatched = unmatched
	if len(columns) == 0 {
		return reject(res, ReasonNoMembers)
	}

	picks := make(map[int]*model.Selection, len(columns))
	for id := range columns {
		picks[id] = &model.Selection{}
	}

	for event := 0; event < model.ScoredEvents; event++ {
		row := firstEvent + event
		if row >= len(s.Rows) {
			break
		}
		cells := s.Rows[row]
		for id, col := range columns {
			if col >= len(cells) {
				continue
			}
			tok := strings.ToUpper(strings.TrimSpace(cells[col]))
			if tok == "" {
				continue
			}
			if _, ok := a.accepted[tok]; !ok {
				res.Discarded++
				continue
			}
			picks[id][event] = model.Pick(tok)
		}
	}

	if len(s.Rows) > terminalRow && looksLikeTerminal(s.Rows[terminalRow]) {
		res.TerminalFound = true
		cells := s.Rows[terminalRow]
		for id, col := range columns {
			if col >= len(cells) {
				continue
			}
			if tok := strings.TrimSpace(cells[col]); tok != "" {
				picks[id][model.TerminalIndex] = model.Pick(tok)
			}
		}
	}

	ids := make([]int, 0, len(picks))
	for id := range picks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		res.Predictions = append(res.Predictions, model.Prediction{
			Round:     round,
			MemberID:  id,
			Selection: *picks[id],
		})
	}

	switch {
	case res.Discarded > 0:
		res.Status = StatusPartial
		res.Reason = strconv.Itoa(res.Discarded) + " cells discarded"
	case !res.TerminalFound:
		res.Status = StatusPartial
		res.Reason = "pleno row not found"
	default:
		res.Status = StatusOK
	}
	return res
}

// columns maps member id to column index. The first column naming a member
// wins.
func (a *PositionalAdapter) columns(header []string) (map[int]int, []string) {
	out := make(map[int]int)
	var unmatched []string
	for idx, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		id, ok := a.roster.Lookup(name)
		if !ok && a.fuzzy {
			id, ok = a.closest(name)
		}
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}
		if _, taken := out[id]; taken {
			continue
		}
		out[id] = idx
	}
	return out, unmatched
}

// closest resolves name to a roster member when every fuzzy match points
// at that same member.
func (a *PositionalAdapter) closest(name string) (int, bool) {
	id := 0
	for _, r := range fuzzy.RankFindNormalizedFold(name, a.roster.Names()) {
		cand, _ := a.roster.Lookup(r.Target)
		if id != 0 && cand != id {
			return 0, false
		}
		id = cand
	}
	return id, id != 0
}

func looksLikeTerminal(cells []string) bool {
	if len(cells) > terminalMinCells {
		return true
	}
	if len(cells) == 0 {
		return false
	}
	label := strings.ToUpper(cells[0])
	return strings.Contains(label, "15") || strings.Contains(label, "PLENO")
}

func reject(res Result, reason string) Result {
	res.Status = StatusRejected
	res.Reason = reason
	return res
}
