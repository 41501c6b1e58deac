// Package report renders human-readable summaries of a run.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/maulas/internal/domain/types"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Round is a ranked round to print.
type Round struct {
	Round   int
	Entries []types.Entry
}

// Input is everything a full report covers.
type Input struct {
	Policy         string
	MaxHits        int
	Rounds         []Round
	Forfeits       []types.Assignment
	MissingResults []int
	Skipped        []types.SkippedSheet
}

// Write renders the full report.
func Write(w io.Writer, in Input) error {
	var b strings.Builder
	if in.Policy != "" {
		fmt.Fprintf(&b, "Match policy: %s", in.Policy)
		if in.MaxHits > 0 {
			fmt.Fprintf(&b, ", scored out of %d", in.MaxHits)
		}
		b.WriteString("\n\n")
	}
	for _, r := range in.Rounds {
		b.WriteString(Ranking(r.Round, r.Entries))
		b.WriteString("\n")
	}
	if len(in.Forfeits) > 0 {
		b.WriteString(Forfeits(in.Forfeits))
		b.WriteString("\n")
	}
	if len(in.MissingResults) > 0 {
		rounds := make([]string, len(in.MissingResults))
		for i, r := range in.MissingResults {
			rounds[i] = strconv.Itoa(r)
		}
		fmt.Fprintf(&b, "Round results missing: %s\n", strings.Join(rounds, ", "))
	}
	for _, s := range in.Skipped {
		fmt.Fprintf(&b, "Skipped %s: %s\n", s.Label, s.Reason)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Ranking renders one round's ranking table.
func Ranking(round int, entries []types.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Rank),
			strconv.Itoa(e.MemberID),
			e.Name,
			strconv.Itoa(e.Hits),
			strconv.Itoa(e.Points),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "Member", "Hits", "Points").
		Rows(rows...)
	return titleStyle.Render(fmt.Sprintf("Jornada %d", round)) + "\n" + t.String() + "\n"
}

// Forfeits renders forfeit assignments, one per target round.
func Forfeits(assignments []types.Assignment) string {
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, []string{
			strconv.Itoa(a.Round),
			name(a.Member),
			name(a.RunnerUp),
			note(a),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Jornada", "Forfeit", "Runner-up", "Note").
		Rows(rows...)
	return titleStyle.Render("Forfeits") + "\n" + t.String() + "\n"
}

func name(e *types.Entry) string {
	if e == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", e.Name, e.MemberID)
}

func note(a types.Assignment) string {
	switch {
	case a.Bootstrap:
		return "bootstrap"
	case a.Note != "":
		return a.Note
	case a.Source > 0:
		return "winner of " + strconv.Itoa(a.Source)
	default:
		return ""
	}
}
