// Package ranking orders members by hits and derives round winners and
// forfeit assignments.
//
// Rankings are computed on demand and never cached: the same inputs always
// produce the same order.
package ranking

import (
	"fmt"
	"sort"

	"github.com/okian/maulas/internal/domain/model"
	"github.com/okian/maulas/internal/domain/scoring"
	"github.com/okian/maulas/internal/domain/types"
)

// Entry is one ranked member.
type Entry = types.Entry

// Podium is a round's winner and runner-up.
type Podium = types.Podium

// Assignment is the forfeit duty for one target round.
type Assignment = types.Assignment

// Scorer returns a member's hit count for a round.
type Scorer interface {
	Score(round, memberID int) int
}

// Index lists which members submitted predictions for which rounds.
type Index interface {
	Rounds() []int
	Members(round int) []int
}

// Resolver ranks rounds.
type Resolver struct {
	scorer    Scorer
	results   scoring.Results
	index     Index
	roster    *model.Roster
	points    scoring.Points
	bootstrap int
}

// NewResolver returns a resolver over the given sources.
func NewResolver(scorer Scorer, results scoring.Results, index Index, roster *model.Roster, opts ...Option) *Resolver {
	r := &Resolver{
		scorer:  scorer,
		results: results,
		index:   index,
		roster:  roster,
		points:  scoring.DefaultPoints(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Scoreable reports whether round has both an official result and at least
// one prediction.
func (r *Resolver) Scoreable(round int) bool {
	if _, ok := r.results.Result(round); !ok {
		return false
	}
	return len(r.index.Members(round)) > 0
}

// Rank orders the members who predicted round by hits descending, then
// member id ascending. It returns nil when the round is not scoreable.
func (r *Resolver) Rank(round int) []Entry {
	if !r.Scoreable(round) {
		return nil
	}
	members := r.index.Members(round)
	out := make([]Entry, 0, len(members))
	for _, id := range members {
		hits := r.scorer.Score(round, id)
		out = append(out, Entry{
			MemberID: id,
			Name:     r.roster.Name(id),
			Hits:     hits,
			Points:   r.points.For(hits),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(out[j]) })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Podium returns the winner and, when present, the runner-up of round.
func (r *Resolver) Podium(round int) (Podium, bool) {
	ranked := r.Rank(round)
	if len(ranked) == 0 {
		return Podium{}, false
	}
	p := Podium{Round: round, Winner: ranked[0]}
	if len(ranked) > 1 {
		second := ranked[1]
		p.RunnerUp = &second
	}
	return p, true
}

// RankedRounds lists every scoreable round, ascending.
func (r *Resolver) RankedRounds() []int {
	var out []int
	for _, round := range r.index.Rounds() {
		if r.Scoreable(round) {
			out = append(out, round)
		}
	}
	sort.Ints(out)
	return out
}

// MissingResults lists rounds that have predictions but no official result.
func (r *Resolver) MissingResults() []int {
	var out []int
	for _, round := range r.index.Rounds() {
		if _, ok := r.results.Result(round); !ok {
			out = append(out, round)
		}
	}
	sort.Ints(out)
	return out
}

// Forfeits derives the assignment for each target round from the podium of
// the round before it. Round 1 always gets the bootstrap member. With no
// targets, round 1 and the round after every ranked round are used.
func (r *Resolver) Forfeits(targets []int) []Assignment {
	if len(targets) == 0 {
		targets = r.defaultTargets()
	}
	out := make([]Assignment, 0, len(targets))
	for _, target := range targets {
		out = append(out, r.assign(target))
	}
	return out
}

func (r *Resolver) assign(target int) Assignment {
	if target == 1 {
		return Assignment{Round: 1, Member: r.bootstrapEntry(), Bootstrap: true}
	}
	source := target - 1
	podium, ok := r.Podium(source)
	if !ok {
		return Assignment{
			Round:   target,
			Source:  source,
			Member:  r.bootstrapEntry(),
			Missing: true,
			Note:    fmt.Sprintf("missing round %d", source),
		}
	}
	winner := podium.Winner
	return Assignment{Round: target, Source: source, Member: &winner, RunnerUp: podium.RunnerUp}
}

func (r *Resolver) bootstrapEntry() *Entry {
	if r.bootstrap == 0 {
		return nil
	}
	return &Entry{MemberID: r.bootstrap, Name: r.roster.Name(r.bootstrap)}
}

func (r *Resolver) defaultTargets() []int {
	seen := map[int]bool{1: true}
	targets := []int{1}
	for _, round := range r.RankedRounds() {
		if next := round + 1; !seen[next] {
			seen[next] = true
			targets = append(targets, next)
		}
	}
	sort.Ints(targets)
	return targets
}
