package report_test

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/maulas/internal/adapters/report"
	"github.com/okian/maulas/internal/domain/types"
)

func TestRanking(t *testing.T) {
	Convey("Given a ranked round", t, func() {
		out := report.Ranking(3, []types.Entry{
			{Rank: 1, MemberID: 13, Name: "Luismi", Hits: 12, Points: 22},
			{Rank: 2, MemberID: 2, Name: "Carlos", Hits: 9, Points: 9},
		})

		Convey("Then the table lists members in rank order", func() {
			So(out, ShouldContainSubstring, "Jornada 3")
			So(out, ShouldContainSubstring, "Luismi")
			So(strings.Index(out, "Luismi"), ShouldBeLessThan, strings.Index(out, "Carlos"))
			So(out, ShouldContainSubstring, "22")
		})
	})
}

func TestWrite(t *testing.T) {
	Convey("Given a full report", t, func() {
		in := report.Input{
			Policy:  "containment",
			MaxHits: 15,
			Rounds:  []report.Round{{Round: 1, Entries: []types.Entry{{Rank: 1, MemberID: 4, Name: "Edu", Hits: 14, Points: 44}}}},
			Forfeits: []types.Assignment{
				{Round: 1, Member: &types.Entry{MemberID: 13, Name: "Luismi"}, Bootstrap: true},
				{Round: 2, Source: 1, Member: &types.Entry{MemberID: 4, Name: "Edu"}},
				{Round: 9, Source: 8, Member: &types.Entry{MemberID: 13, Name: "Luismi"}, Missing: true, Note: "missing round 8"},
			},
			MissingResults: []int{28, 30},
			Skipped:        []types.SkippedSheet{{Label: "Jornada_05.csv", Reason: "too few rows"}},
		}

		var buf bytes.Buffer
		So(report.Write(&buf, in), ShouldBeNil)
		out := buf.String()

		Convey("Then every section is present", func() {
			So(out, ShouldStartWith, "Match policy: containment, scored out of 15\n")
			So(out, ShouldContainSubstring, "Edu (4)")
			So(out, ShouldContainSubstring, "bootstrap")
			So(out, ShouldContainSubstring, "winner of 1")
			So(out, ShouldContainSubstring, "missing round 8")
			So(out, ShouldContainSubstring, "Round results missing: 28, 30")
			So(out, ShouldContainSubstring, "Skipped Jornada_05.csv: too few rows")
		})
	})
}
