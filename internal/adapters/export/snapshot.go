// Package export renders the canonical, machine-readable snapshot of a run.
//
// Snapshots are deterministic: the same inputs produce byte-identical output
// and the same content-derived ID, so downstream importers can upsert safely.
package export

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/maulas/internal/domain/model"
	"github.com/okian/maulas/internal/domain/types"
)

// snapshotNamespace scopes content-derived snapshot IDs.
var snapshotNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("maulas/snapshot"))

// Round is one round's parsed predictions and, when scoreable, its ranking.
type Round struct {
	Round int `json:"jornada_num"`
	// Predictions is keyed by member id.
	Predictions map[string]model.Selection `json:"predictions"`
	Ranking     []types.Entry              `json:"ranking,omitempty"`
}

// Snapshot is the full export envelope.
type Snapshot struct {
	ID              string               `json:"id"`
	Season          string               `json:"season,omitempty"`
	Policy          string               `json:"policy"`
	IncludeTerminal bool                 `json:"include_terminal"`
	Members         []model.Member       `json:"members"`
	Rounds          []Round              `json:"rounds"`
	Forfeits        []types.Assignment   `json:"forfeits,omitempty"`
	MissingResults  []int                `json:"missing_results,omitempty"`
	Skipped         []types.SkippedSheet `json:"skipped,omitempty"`
}

// Input collects everything a snapshot is built from.
type Input struct {
	Season          string
	Policy          string
	IncludeTerminal bool
	Members         []model.Member
	Predictions     []model.Prediction
	Rankings        map[int][]types.Entry
	Forfeits        []types.Assignment
	MissingResults  []int
	Skipped         []types.SkippedSheet
}

// Build assembles a snapshot. Rounds are ordered ascending.
func Build(in Input) Snapshot {
	byRound := make(map[int]*Round)
	for _, p := range in.Predictions {
		r, ok := byRound[p.Round]
		if !ok {
			r = &Round{Round: p.Round, Predictions: make(map[string]model.Selection)}
			byRound[p.Round] = r
		}
		r.Predictions[strconv.Itoa(p.MemberID)] = p.Selection
	}

	numbers := make([]int, 0, len(byRound))
	for n := range byRound {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	snap := Snapshot{
		Season:          in.Season,
		Policy:          in.Policy,
		IncludeTerminal: in.IncludeTerminal,
		Members:         in.Members,
		Rounds:          make([]Round, 0, len(numbers)),
		Forfeits:        in.Forfeits,
		MissingResults:  in.MissingResults,
		Skipped:         in.Skipped,
	}
	for _, n := range numbers {
		r := *byRound[n]
		r.Ranking = in.Rankings[n]
		snap.Rounds = append(snap.Rounds, r)
	}
	snap.ID = contentID(snap)
	return snap
}

func contentID(s Snapshot) string {
	s.ID = ""
	b, err := json.Marshal(s)
	if err != nil {
		return uuid.Nil.String()
	}
	return uuid.NewSHA1(snapshotNamespace, b).String()
}
