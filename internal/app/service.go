// Package service wires the pool pipeline: sheets are parsed into canonical
// predictions, scored against the official results and ranked.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/maulas/internal/adapters/export"
	"github.com/okian/maulas/internal/adapters/mq/queue"
	"github.com/okian/maulas/internal/adapters/mq/worker"
	"github.com/okian/maulas/internal/adapters/repository"
	"github.com/okian/maulas/internal/domain/dedupe"
	"github.com/okian/maulas/internal/domain/model"
	"github.com/okian/maulas/internal/domain/ranking"
	"github.com/okian/maulas/internal/domain/scoring"
	"github.com/okian/maulas/internal/domain/sheet"
	"github.com/okian/maulas/internal/domain/types"
	"github.com/okian/maulas/internal/pooldata"
	"github.com/okian/maulas/pkg/logger"
	"github.com/okian/maulas/pkg/metrics"
)

// Default sink fan-out settings.
const (
	defaultSinkQueue   = 256
	defaultSinkWorkers = 4
)

// Service runs the pipeline and keeps the last outcome for readers.
type Service struct {
	mu sync.RWMutex

	// Inputs
	pool       *pooldata.Pool
	policy     scoring.Policy
	points     scoring.Points
	adapter    sheet.Adapter
	sheets     []sheet.Sheet
	sheetsDir  string
	sheetsGlob string
	delim      rune

	// Outputs
	sinks          []worker.Target
	sinkWorkers    int
	forfeitTargets []int
	season         string

	last *Outcome

	// Logging
	logger logger.Logger
}

// Outcome is the result of one pipeline run. It is immutable once returned.
type Outcome struct {
	Policy         scoring.Policy
	Season         string
	Results        []sheet.Result
	Skipped        []types.SkippedSheet
	RankedRounds   []int
	Rankings       map[int][]types.Entry
	Forfeits       []types.Assignment
	MissingResults []int
	Duration       time.Duration

	store    *repository.MemoryStore
	resolver *ranking.Resolver
	pool     *pooldata.Pool
}

// New constructs a Service. The policy must have a resolved match rule.
func New(pool *pooldata.Pool, policy scoring.Policy, opts ...Option) (*Service, error) {
	if pool == nil {
		return nil, ErrNoPool
	}
	if policy.Match != scoring.MatchStrict && policy.Match != scoring.MatchContainment {
		return nil, ErrNoPolicy
	}
	s := &Service{
		pool:        pool,
		policy:      policy,
		points:      scoring.DefaultPoints(),
		delim:       ';',
		sinkWorkers: defaultSinkWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.adapter == nil {
		s.adapter = sheet.NewPositionalAdapter(pool.Roster())
	}
	return s, nil
}

// Run executes one full pass. It is deterministic for a given set of inputs.
func (s *Service) Run(ctx context.Context) (*Outcome, error) {
	start := time.Now()
	log := s.log()

	sheets, err := s.loadSheets(ctx)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Policy:   s.policy,
		Season:   s.season,
		Rankings: make(map[int][]types.Entry),
		store:    repository.NewMemoryStore(),
		pool:     s.pool,
	}
	deduper := dedupe.NewInMemoryDeduper()
	fan := s.startSinks(ctx)
	defer func() { _ = fan.drain(ctx) }()

	for _, sh := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res := s.adapter.Parse(ctx, sh)
		out.Results = append(out.Results, res)
		metrics.RecordSheetParsed(res.Status.String())
		metrics.RecordCellsDiscarded(res.Discarded)

		if res.Status == sheet.StatusRejected {
			log.Warn(ctx, "sheet skipped",
				logger.String("sheet", res.Label),
				logger.String("reason", res.Reason),
			)
			out.Skipped = append(out.Skipped, types.SkippedSheet{Label: res.Label, Reason: res.Reason})
			continue
		}

		if owner, dup := deduper.SeenAndRecord(ctx, res.Round, res.Label); dup {
			metrics.RecordDuplicateSheet()
			log.Warn(ctx, "duplicate round sheet skipped",
				logger.Int("round", res.Round),
				logger.String("sheet", res.Label),
				logger.String("owner", owner),
			)
			out.Skipped = append(out.Skipped, types.SkippedSheet{Label: res.Label, Reason: "duplicate of " + owner})
			continue
		}

		if res.Status == sheet.StatusPartial {
			log.Warn(ctx, "sheet parsed partially",
				logger.Int("round", res.Round),
				logger.String("sheet", res.Label),
				logger.String("reason", res.Reason),
			)
		}
		if len(res.Unmatched) > 0 {
			log.Debug(ctx, "unmatched header cells",
				logger.String("sheet", res.Label),
				logger.Any("cells", res.Unmatched),
			)
		}

		if err := s.persist(ctx, out.store, fan, res); err != nil {
			return nil, err
		}
	}
	if err := fan.drain(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSink, err)
	}

	engine := scoring.NewEngine(s.pool, out.store, s.policy)
	out.resolver = ranking.NewResolver(engine, s.pool, out.store, s.pool.Roster(),
		ranking.WithPoints(s.points),
		ranking.WithBootstrap(s.pool.BootstrapForfeit()),
	)

	out.MissingResults = out.resolver.MissingResults()
	for _, round := range out.MissingResults {
		metrics.RecordRoundMissingResults()
		log.Warn(ctx, "round results missing", logger.Int("round", round))
	}

	out.RankedRounds = out.resolver.RankedRounds()
	for _, round := range out.RankedRounds {
		entries := out.resolver.Rank(round)
		out.Rankings[round] = entries
		metrics.RecordRoundRanked()
		for _, e := range entries {
			metrics.ObserveHits(e.Hits)
		}
		log.Debug(ctx, "round ranked",
			logger.Int("round", round),
			logger.Int("entries", len(entries)),
			logger.Int("winner", entries[0].MemberID),
		)
	}

	out.Forfeits = out.resolver.Forfeits(s.forfeitTargets)
	out.Duration = time.Since(start)

	metrics.UpdateDataset(s.pool.Roster().Len(), len(s.pool.Rounds()), out.store.Count())
	metrics.RecordPipelineDuration(float64(out.Duration.Milliseconds()))

	log.Info(ctx, "pipeline finished",
		logger.Int("sheets", len(sheets)),
		logger.Int("skipped", len(out.Skipped)),
		logger.Int("rounds", deduper.Size()),
		logger.Int("predictions", out.store.Count()),
		logger.Ints("ranked", out.RankedRounds),
		logger.Ints("missing", out.MissingResults),
		logger.String("policy", s.policy.Match.String()),
		logger.Bool("includeTerminal", s.policy.IncludeTerminal),
	)

	s.mu.Lock()
	s.last = out
	s.mu.Unlock()
	return out, nil
}

// Last returns the most recent outcome.
func (s *Service) Last() (*Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, ErrNotRun
	}
	return s.last, nil
}

func (s *Service) persist(ctx context.Context, mem *repository.MemoryStore, fan *fanout, res sheet.Result) error {
	for _, p := range res.Predictions {
		if err := mem.Upsert(ctx, p); err != nil {
			return err
		}
		if err := fan.send(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// fanout mirrors accepted predictions into the external sinks through a
// bounded queue and a worker pool. A nil fanout does nothing.
type fanout struct {
	queue *queue.InMemoryQueue
	pool  *worker.Pool
}

func (s *Service) startSinks(ctx context.Context) *fanout {
	if len(s.sinks) == 0 {
		return nil
	}
	q := queue.NewInMemoryQueue(queue.WithCapacity(defaultSinkQueue))
	pool := worker.NewPool(s.sinkWorkers, q, s.sinks)
	pool.Start(ctx)
	return &fanout{queue: q, pool: pool}
}

func (f *fanout) send(ctx context.Context, p model.Prediction) error {
	if f == nil {
		return nil
	}
	if !f.queue.Enqueue(ctx, p) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w: queue closed", ErrSink)
	}
	return nil
}

func (f *fanout) drain(ctx context.Context) error {
	if f == nil {
		return nil
	}
	return f.pool.Drain(ctx)
}

func (s *Service) loadSheets(ctx context.Context) ([]sheet.Sheet, error) {
	sheets := append([]sheet.Sheet(nil), s.sheets...)
	if s.sheetsDir != "" {
		fromDir, err := sheet.ReadDir(ctx, s.sheetsDir, s.sheetsGlob, s.delim)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadSheets, err)
		}
		sheets = append(sheets, fromDir...)
	}
	sort.SliceStable(sheets, func(i, j int) bool { return sheets[i].Label < sheets[j].Label })
	return sheets, nil
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		s.logger = logger.Named("pipeline")
	}
	return s.logger
}

// Ranking returns the ranking of round, or nil when it is not scoreable.
func (o *Outcome) Ranking(round int) []types.Entry {
	return o.Rankings[round]
}

// Podium returns the winner and runner-up of round.
func (o *Outcome) Podium(round int) (types.Podium, bool) {
	return o.resolver.Podium(round)
}

// Predictions returns how many canonical predictions were accepted.
func (o *Outcome) Predictions() int {
	return o.store.Count()
}

// Snapshot builds the export snapshot for this outcome.
func (o *Outcome) Snapshot() export.Snapshot {
	return export.Build(export.Input{
		Season:          o.Season,
		Policy:          o.Policy.Match.String(),
		IncludeTerminal: o.Policy.IncludeTerminal,
		Members:         o.pool.Roster().Members(),
		Predictions:     o.store.All(),
		Rankings:        o.Rankings,
		Forfeits:        o.Forfeits,
		MissingResults:  o.MissingResults,
		Skipped:         o.Skipped,
	})
}
