// Package pooldata loads the static inputs of a run: the member roster and
// the hand-maintained official results table.
//
// The data is loaded once and is read-only afterwards. A YAML file can be
// supplied; otherwise the embedded season table is used.
package pooldata

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/maulas/internal/domain/model"
)

//go:embed default_pool.yaml
var defaultPool []byte

// document mirrors the YAML layout.
type document struct {
	Members          []string       `koanf:"members"`
	Aliases          map[string]int `koanf:"aliases"`
	BootstrapForfeit int            `koanf:"bootstrap_forfeit"`
	Results          []resultRow    `koanf:"results"`
}

type resultRow struct {
	Round int      `koanf:"round"`
	Signs []string `koanf:"signs"`
}

// Pool holds the roster and official results for a run.
type Pool struct {
	roster    *model.Roster
	results   map[int]model.OfficialResult
	rounds    []int
	bootstrap int
}

// Load reads pool data from path, or the embedded default when path is empty.
func Load(_ context.Context, path string) (*Pool, error) {
	k := koanf.New(".")
	var p koanf.Provider = bytesProvider(defaultPool)
	if path != "" {
		p = file.Provider(path)
	}
	if err := k.Load(p, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadPoolData, err)
	}

	var doc document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadPoolData, err)
	}
	return build(doc)
}

// New assembles a pool from already-parsed values. It applies the same
// validation as Load.
func New(members []string, aliases map[string]int, bootstrap int, results []model.OfficialResult) (*Pool, error) {
	doc := document{Members: members, Aliases: aliases, BootstrapForfeit: bootstrap}
	for _, r := range results {
		doc.Results = append(doc.Results, resultRow{Round: r.Round, Signs: r.Tokens[:]})
	}
	return build(doc)
}

func build(doc document) (*Pool, error) {
	if len(doc.Members) == 0 {
		return nil, fmt.Errorf("%w: no members", ErrInvalidPoolData)
	}
	seen := make(map[string]bool, len(doc.Members))
	for i, name := range doc.Members {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: member %d has an empty name", ErrInvalidPoolData, i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate member %q", ErrInvalidPoolData, name)
		}
		seen[name] = true
	}
	for alias, id := range doc.Aliases {
		if id < 1 || id > len(doc.Members) {
			return nil, fmt.Errorf("%w: alias %q points at unknown member %d", ErrInvalidPoolData, alias, id)
		}
	}
	if doc.BootstrapForfeit < 1 || doc.BootstrapForfeit > len(doc.Members) {
		return nil, fmt.Errorf("%w: bootstrap_forfeit %d is not a member", ErrInvalidPoolData, doc.BootstrapForfeit)
	}

	p := &Pool{
		roster:    model.NewRoster(doc.Members, doc.Aliases),
		results:   make(map[int]model.OfficialResult, len(doc.Results)),
		bootstrap: doc.BootstrapForfeit,
	}
	for _, row := range doc.Results {
		if row.Round < 1 {
			return nil, fmt.Errorf("%w: round %d must be positive", ErrInvalidPoolData, row.Round)
		}
		if _, dup := p.results[row.Round]; dup {
			return nil, fmt.Errorf("%w: round %d listed twice", ErrInvalidPoolData, row.Round)
		}
		if len(row.Signs) != model.EventCount {
			return nil, fmt.Errorf("%w: round %d has %d tokens, want %d",
				ErrInvalidPoolData, row.Round, len(row.Signs), model.EventCount)
		}
		res := model.OfficialResult{Round: row.Round}
		for i, s := range row.Signs {
			res.Tokens[i] = strings.ToUpper(strings.TrimSpace(s))
		}
		p.results[row.Round] = res
		p.rounds = append(p.rounds, row.Round)
	}
	sort.Ints(p.rounds)
	return p, nil
}

// Roster returns the member roster.
func (p *Pool) Roster() *model.Roster { return p.roster }

// BootstrapForfeit returns the member id fixed for round 1.
func (p *Pool) BootstrapForfeit() int { return p.bootstrap }

// Result returns the official result for round.
func (p *Pool) Result(round int) (model.OfficialResult, bool) {
	r, ok := p.results[round]
	return r, ok
}

// Rounds lists rounds with an official result, ascending.
func (p *Pool) Rounds() []int {
	out := make([]int, len(p.rounds))
	copy(out, p.rounds)
	return out
}

// bytesProvider serves an in-memory YAML document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("bytes provider does not support Read")
}
