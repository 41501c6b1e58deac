package scoring_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/maulas/internal/domain/model"
	scoring "github.com/okian/maulas/internal/domain/scoring"
)

type resultTable map[int]model.OfficialResult

func (r resultTable) Result(round int) (model.OfficialResult, bool) {
	res, ok := r[round]
	return res, ok
}

type predictionTable map[string]model.Prediction

func (p predictionTable) Prediction(round, memberID int) (model.Prediction, bool) {
	pred, ok := p[model.PredictionKey(round, memberID)]
	return pred, ok
}

func official(round int, tokens ...string) model.OfficialResult {
	res := model.OfficialResult{Round: round}
	copy(res.Tokens[:], tokens)
	return res
}

func selection(tokens ...string) model.Selection {
	var sel model.Selection
	for i, t := range tokens {
		sel[i] = model.Pick(t)
	}
	return sel
}

var roundOne = []string{"2", "1", "1", "2", "X", "2", "1", "1", "1", "X", "2", "1", "X", "X", "1-1"}

func TestParseMatch(t *testing.T) {
	Convey("Given policy names", t, func() {
		m, err := scoring.ParseMatch(" Strict")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, scoring.MatchStrict)

		m, err = scoring.ParseMatch("containment")
		So(err, ShouldBeNil)
		So(m.String(), ShouldEqual, "containment")

		_, err = scoring.ParseMatch("")
		So(errors.Is(err, scoring.ErrUnknownMatch), ShouldBeTrue)
	})
}

func TestPolicyHits(t *testing.T) {
	Convey("Given the round 1 official result", t, func() {
		res := official(1, roundOne...)

		Convey("When a member predicts all 14 events and omits the Pleno", func() {
			sel := selection(roundOne[:14]...)

			Convey("Then both policies count 14 hits", func() {
				So(scoring.Policy{Match: scoring.MatchStrict}.Hits(res, sel), ShouldEqual, 14)
				So(scoring.Policy{Match: scoring.MatchContainment}.Hits(res, sel), ShouldEqual, 14)
			})

			Convey("Then including the Pleno does not add a hit for an absent token", func() {
				p := scoring.Policy{Match: scoring.MatchStrict, IncludeTerminal: true}
				So(p.Hits(res, sel), ShouldEqual, 14)
				So(p.MaxHits(), ShouldEqual, 15)
			})
		})

		Convey("When the Pleno is predicted exactly", func() {
			sel := selection(roundOne...)
			sel[model.TerminalIndex] = " 1 - 1"

			Convey("Then it only counts when the terminal is included", func() {
				So(scoring.Policy{Match: scoring.MatchStrict}.Hits(res, sel), ShouldEqual, 14)
				So(scoring.Policy{Match: scoring.MatchStrict, IncludeTerminal: true}.Hits(res, sel), ShouldEqual, 15)
			})
		})

		Convey("When a member plays double chances", func() {
			sel := selection(roundOne[:14]...)
			sel[0] = "X2"
			sel[1] = "x1"
			sel[2] = "2X"

			Convey("Then containment accepts them and strict does not", func() {
				So(scoring.Policy{Match: scoring.MatchContainment}.Hits(res, sel), ShouldEqual, 13)
				So(scoring.Policy{Match: scoring.MatchStrict}.Hits(res, sel), ShouldEqual, 11)
			})
		})

		Convey("When picks are scorelines", func() {
			sel := selection("2-1")

			Convey("Then strict compares the raw token and misses", func() {
				So(scoring.Policy{Match: scoring.MatchStrict}.Hits(official(1, "1"), sel), ShouldEqual, 0)
			})
		})

		Convey("When the official event is blank or malformed", func() {
			sel := selection("1", "1")
			pending := official(26, "", "bogus")

			Convey("Then no pick can hit it", func() {
				So(scoring.Policy{Match: scoring.MatchContainment}.Hits(pending, sel), ShouldEqual, 0)
			})
		})

		Convey("When the official event is a scoreline", func() {
			So(scoring.Policy{Match: scoring.MatchStrict}.Hits(official(9, "M-2"), selection("1")), ShouldEqual, 1)
		})

		Convey("When the policy is unset", func() {
			So(scoring.Policy{}.Hits(res, selection(roundOne...)), ShouldEqual, 0)
		})
	})
}

func TestEngineScore(t *testing.T) {
	Convey("Given an engine over one scored round", t, func() {
		results := resultTable{1: official(1, roundOne...)}
		preds := predictionTable{}
		full := model.Prediction{Round: 1, MemberID: 4, Selection: selection(roundOne[:14]...)}
		preds[full.Key()] = full
		empty := model.Prediction{Round: 1, MemberID: 5}
		preds[empty.Key()] = empty

		engine := scoring.NewEngine(results, preds, scoring.Policy{Match: scoring.MatchStrict})

		Convey("Then a perfect prediction scores 14", func() {
			So(engine.Score(1, 4), ShouldEqual, 14)
		})

		Convey("Then an absent sequence scores 0", func() {
			So(engine.Score(1, 5), ShouldEqual, 0)
			So(engine.Score(1, 6), ShouldEqual, 0)
		})

		Convey("Then a round without results scores 0", func() {
			So(engine.Score(2, 4), ShouldEqual, 0)
		})

		Convey("Then the policy is exposed", func() {
			So(engine.Policy().Match, ShouldEqual, scoring.MatchStrict)
		})
	})
}

func TestPoints(t *testing.T) {
	Convey("Given the default points table", t, func() {
		p := scoring.DefaultPoints()

		So(p.For(14), ShouldEqual, 44)
		So(p.For(13), ShouldEqual, 28)
		So(p.For(10), ShouldEqual, 13)
		So(p.For(7), ShouldEqual, 7)
		So(p.For(0), ShouldEqual, -5)
		So(p.For(3), ShouldEqual, 2)
	})
}
