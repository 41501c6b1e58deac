package ranking_test

import (
	"sort"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/maulas/internal/domain/model"
	"github.com/okian/maulas/internal/domain/ranking"
	"github.com/okian/maulas/internal/domain/scoring"
)

type results map[int]model.OfficialResult

func (r results) Result(round int) (model.OfficialResult, bool) {
	res, ok := r[round]
	return res, ok
}

// book is a tiny prediction store keyed by round then member.
type book map[int]map[int]model.Selection

func (b book) add(round, member int, tokens ...string) {
	if b[round] == nil {
		b[round] = map[int]model.Selection{}
	}
	var sel model.Selection
	for i, t := range tokens {
		sel[i] = model.Pick(t)
	}
	b[round][member] = sel
}

func (b book) Prediction(round, memberID int) (model.Prediction, bool) {
	sel, ok := b[round][memberID]
	return model.Prediction{Round: round, MemberID: memberID, Selection: sel}, ok
}

func (b book) Rounds() []int {
	var out []int
	for r := range b {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

func (b book) Members(round int) []int {
	var out []int
	for id := range b[round] {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

var roundOne = []string{"2", "1", "1", "2", "X", "2", "1", "1", "1", "X", "2", "1", "X", "X", "1-1"}

func roster() *model.Roster {
	return model.NewRoster([]string{"Alvaro", "Carlos", "David", "Edu", "Emilio"}, nil)
}

func newResolver(res results, b book, opts ...ranking.Option) *ranking.Resolver {
	engine := scoring.NewEngine(res, b, scoring.Policy{Match: scoring.MatchStrict})
	return ranking.NewResolver(engine, res, b, roster(), opts...)
}

func TestRank(t *testing.T) {
	Convey("Given round 1 with several members", t, func() {
		official := model.OfficialResult{Round: 1}
		copy(official.Tokens[:], roundOne)
		res := results{1: official}

		b := book{}
		b.add(1, 4, roundOne[:14]...) // 14 hits, no Pleno
		b.add(1, 2, roundOne[:12]...) // 12 hits
		b.add(1, 5, roundOne[:12]...) // 12 hits, higher id
		b.add(1, 3)                   // submitted nothing
		b.add(2, 1, roundOne[:14]...) // no official result for round 2

		r := newResolver(res, b)

		Convey("Then members are ordered by hits then id", func() {
			ranked := r.Rank(1)
			So(len(ranked), ShouldEqual, 4)
			So(ranked[0].MemberID, ShouldEqual, 4)
			So(ranked[0].Hits, ShouldEqual, 14)
			So(ranked[0].Name, ShouldEqual, "Edu")
			So(ranked[0].Points, ShouldEqual, 44)
			So(ranked[1].MemberID, ShouldEqual, 2)
			So(ranked[2].MemberID, ShouldEqual, 5)
			So(ranked[3].MemberID, ShouldEqual, 3)
			So(ranked[3].Hits, ShouldEqual, 0)
			So(ranked[3].Rank, ShouldEqual, 4)
		})

		Convey("Then members without a sheet entry are left out", func() {
			for _, e := range r.Rank(1) {
				So(e.MemberID, ShouldNotEqual, 1)
			}
		})

		Convey("Then ranking twice yields the same order", func() {
			So(r.Rank(1), ShouldResemble, r.Rank(1))
		})

		Convey("Then every score stays within bounds", func() {
			for _, e := range r.Rank(1) {
				So(e.Hits, ShouldBeBetweenOrEqual, 0, 14)
			}
		})

		Convey("Then a round without results is not ranked and is reported missing", func() {
			So(r.Rank(2), ShouldBeNil)
			So(r.Scoreable(2), ShouldBeFalse)
			So(r.MissingResults(), ShouldResemble, []int{2})
			So(r.RankedRounds(), ShouldResemble, []int{1})
		})

		Convey("Then the podium holds positions 0 and 1", func() {
			p, ok := r.Podium(1)
			So(ok, ShouldBeTrue)
			So(p.Winner.MemberID, ShouldEqual, 4)
			So(p.RunnerUp, ShouldNotBeNil)
			So(p.RunnerUp.MemberID, ShouldEqual, 2)

			_, ok = r.Podium(2)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestForfeits(t *testing.T) {
	Convey("Given two ranked rounds and a bootstrap member", t, func() {
		res := results{}
		for _, round := range []int{1, 2} {
			o := model.OfficialResult{Round: round}
			copy(o.Tokens[:], roundOne)
			res[round] = o
		}
		b := book{}
		b.add(1, 1, roundOne[:14]...) // Alvaro would win round 1
		b.add(2, 2, roundOne[:14]...)
		b.add(2, 3, roundOne[:13]...)
		b.add(2, 5, roundOne[:14]...)

		r := newResolver(res, b, ranking.WithBootstrap(4))

		Convey("Then round 1 always gets the bootstrap member", func() {
			a := r.Forfeits([]int{1})[0]
			So(a.Bootstrap, ShouldBeTrue)
			So(a.Member.MemberID, ShouldEqual, 4)
			So(a.Member.Name, ShouldEqual, "Edu")
		})

		Convey("Then round N takes the podium of round N-1", func() {
			a := r.Forfeits([]int{3})[0]
			So(a.Source, ShouldEqual, 2)
			So(a.Member.MemberID, ShouldEqual, 2)
			So(a.RunnerUp.MemberID, ShouldEqual, 5)
		})

		Convey("Then a target without a ranked predecessor is marked missing", func() {
			a := r.Forfeits([]int{9})[0]
			So(a.Missing, ShouldBeTrue)
			So(a.Note, ShouldEqual, "missing round 8")
			So(a.Member.MemberID, ShouldEqual, 4)
		})

		Convey("Then default targets follow every ranked round", func() {
			all := r.Forfeits(nil)
			So(len(all), ShouldEqual, 3)
			So(all[0].Round, ShouldEqual, 1)
			So(all[1].Round, ShouldEqual, 2)
			So(all[1].Member.MemberID, ShouldEqual, 1)
			So(all[1].RunnerUp, ShouldBeNil)
			So(all[2].Round, ShouldEqual, 3)
		})
	})
}
