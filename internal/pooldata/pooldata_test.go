package pooldata_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/maulas/internal/domain/model"
	"github.com/okian/maulas/internal/pooldata"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadEmbedded(t *testing.T) {
	Convey("Given the embedded season table", t, func() {
		pool, err := pooldata.Load(context.Background(), "")
		So(err, ShouldBeNil)

		Convey("Then the roster has every member in order", func() {
			So(pool.Roster().Len(), ShouldEqual, 19)
			So(pool.Roster().Name(1), ShouldEqual, "Alvaro")
			So(pool.Roster().Name(19), ShouldEqual, "Samuel")
		})

		Convey("Then aliases resolve to the same member", func() {
			a, ok := pool.Roster().Lookup("Ramon")
			So(ok, ShouldBeTrue)
			b, _ := pool.Roster().Lookup("Ramón")
			So(a, ShouldEqual, 17)
			So(b, ShouldEqual, 17)
		})

		Convey("Then the results table skips unplayed rounds", func() {
			So(pool.Rounds()[0], ShouldEqual, 1)
			_, ok := pool.Result(28)
			So(ok, ShouldBeFalse)
			r, ok := pool.Result(9)
			So(ok, ShouldBeTrue)
			So(r.Tokens[model.TerminalIndex], ShouldEqual, "M-2")
		})

		Convey("Then pending events stay blank", func() {
			r, ok := pool.Result(26)
			So(ok, ShouldBeTrue)
			So(r.Tokens[5], ShouldEqual, "")
			So(r.Tokens[0], ShouldEqual, "1")
		})

		Convey("Then the bootstrap forfeit is set", func() {
			So(pool.BootstrapForfeit(), ShouldEqual, 13)
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a pool file", t, func() {
		write := func(body string) string {
			f, err := os.CreateTemp(t.TempDir(), "pool-*.yaml")
			So(err, ShouldBeNil)
			_, err = f.WriteString(body)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
			return f.Name()
		}

		Convey("When it is well formed", func() {
			path := write(`
members: [Ana, Bea]
bootstrap_forfeit: 2
results:
  - round: 4
    signs: ["1","x","2","1","1","1","1","1","1","1","1","1","1","1"," 2-0 "]
`)
			pool, err := pooldata.Load(context.Background(), path)

			Convey("Then tokens are trimmed and upper-cased", func() {
				So(err, ShouldBeNil)
				r, ok := pool.Result(4)
				So(ok, ShouldBeTrue)
				So(r.Tokens[1], ShouldEqual, "X")
				So(r.Tokens[14], ShouldEqual, "2-0")
				So(pool.Rounds(), ShouldResemble, []int{4})
			})
		})

		Convey("When a result is short", func() {
			path := write(`
members: [Ana]
bootstrap_forfeit: 1
results:
  - {round: 1, signs: ["1","X"]}
`)
			_, err := pooldata.Load(context.Background(), path)
			So(errors.Is(err, pooldata.ErrInvalidPoolData), ShouldBeTrue)
		})

		Convey("When the file does not exist", func() {
			_, err := pooldata.Load(context.Background(), "/non/existent/pool.yaml")
			So(errors.Is(err, pooldata.ErrLoadPoolData), ShouldBeTrue)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given in-memory pool values", t, func() {
		res := model.OfficialResult{Round: 2}
		for i := range res.Tokens {
			res.Tokens[i] = "1"
		}

		Convey("Then a valid set builds", func() {
			pool, err := pooldata.New([]string{"Ana", "Bea"}, nil, 1, []model.OfficialResult{res})
			So(err, ShouldBeNil)
			So(pool.Rounds(), ShouldResemble, []int{2})
		})

		Convey("Then duplicate names are rejected", func() {
			_, err := pooldata.New([]string{"Ana", " Ana"}, nil, 1, nil)
			So(errors.Is(err, pooldata.ErrInvalidPoolData), ShouldBeTrue)
		})

		Convey("Then a bootstrap outside the roster is rejected", func() {
			_, err := pooldata.New([]string{"Ana"}, nil, 2, nil)
			So(errors.Is(err, pooldata.ErrInvalidPoolData), ShouldBeTrue)
		})

		Convey("Then an alias to an unknown member is rejected", func() {
			_, err := pooldata.New([]string{"Ana"}, map[string]int{"Anita": 5}, 1, nil)
			So(errors.Is(err, pooldata.ErrInvalidPoolData), ShouldBeTrue)
		})

		Convey("Then a repeated round is rejected", func() {
			_, err := pooldata.New([]string{"Ana"}, nil, 1, []model.OfficialResult{res, res})
			So(errors.Is(err, pooldata.ErrInvalidPoolData), ShouldBeTrue)
		})
	})
}
