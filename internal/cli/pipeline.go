package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/okian/maulas/internal/adapters/repository"
	service "github.com/okian/maulas/internal/app"
	"github.com/okian/maulas/internal/config"
	"github.com/okian/maulas/internal/domain/scoring"
	"github.com/okian/maulas/internal/domain/sheet"
	"github.com/okian/maulas/internal/pooldata"
	"github.com/okian/maulas/pkg/logger"
)

// Flag names.
const (
	flagConfig          = "config"
	flagPolicy          = "policy"
	flagIncludeTerminal = "include-terminal"
	flagSheetsDir       = "sheets-dir"
	flagPoolFile        = "pool-file"
	flagHeaderMatching  = "header-matching"
	flagLogLevel        = "log-level"
	flagSeason          = "season"
	flagFormat          = "format"
	flagOut             = "out"
	flagAddr            = "addr"
)

// configKeys maps flags onto the config keys they override.
var configKeys = map[string]string{
	flagPolicy:          "match_policy",
	flagIncludeTerminal: "include_terminal",
	flagSheetsDir:       "sheets_dir",
	flagPoolFile:        "pool_file",
	flagHeaderMatching:  "header_matching",
	flagLogLevel:        "log_level",
	flagSeason:          "season",
	flagFormat:          "export_format",
	flagOut:             "export_path",
	flagAddr:            "addr",
}

// pipeline is a configured service plus the resources it holds open.
type pipeline struct {
	cfg     *config.Config
	svc     *service.Service
	closers []func(context.Context) error
}

// overrides collects the flags the user actually set.
func overrides(cmd *cobra.Command) map[string]any {
	out := make(map[string]any)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := configKeys[f.Name]
		if !ok || !f.Changed {
			return
		}
		if f.Value.Type() == "bool" {
			v, err := strconv.ParseBool(f.Value.String())
			if err == nil {
				out[key] = v
				return
			}
		}
		out[key] = f.Value.String()
	})
	return out
}

// loadConfig layers the command line over the file and environment.
func loadConfig(cmd *cobra.Command, extra map[string]any) (*config.Config, error) {
	if f := cmd.Flags().Lookup(flagConfig); f != nil && f.Changed {
		if err := os.Setenv(config.EnvFile, f.Value.String()); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(cmd.Context(), overrides(cmd), extra)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

// newPipeline builds the service described by cfg. Close must be called to
// release external sinks.
func newPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	pool, err := pooldata.Load(ctx, cfg.PoolFile)
	if err != nil {
		return nil, err
	}

	match, err := scoring.ParseMatch(cfg.Policy())
	if err != nil {
		return nil, err
	}
	policy := scoring.Policy{Match: match, IncludeTerminal: cfg.IncludeTerminal}

	adapter := sheet.NewPositionalAdapter(pool.Roster(),
		sheet.WithAcceptedTokens(cfg.AcceptedTokens),
		sheet.WithFuzzyHeaders(cfg.HeaderMatching == config.HeaderFuzzy),
	)

	opts := []service.Option{
		service.WithLogger(logger.Named("pipeline")),
		service.WithSheetsDir(cfg.SheetsDir, cfg.SheetsGlob, []rune(cfg.SheetDelimiter)[0]),
		service.WithAdapter(adapter),
		service.WithPoints(points(cfg.Bonus)),
		service.WithForfeitTargets(cfg.ForfeitTargets),
		service.WithSeason(cfg.Season),
		service.WithSinkWorkers(cfg.SinkWorkers),
	}

	p := &pipeline{cfg: cfg}
	if cfg.MongoURI != "" {
		store, err := repository.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection,
			repository.WithWriteTimeout(cfg.MongoWriteTimeout),
		)
		if err != nil {
			return nil, err
		}
		p.closers = append(p.closers, store.Close)
		opts = append(opts, service.WithSink("mongo", store))
	}

	p.svc, err = service.New(pool, policy, opts...)
	if err != nil {
		_ = p.Close(ctx)
		return nil, err
	}
	return p, nil
}

// Close releases every resource the pipeline opened.
func (p *pipeline) Close(ctx context.Context) error {
	var errs []error
	for _, c := range p.closers {
		if err := c(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// run is the common path of every command: load config, build and run the
// pipeline once.
func run(cmd *cobra.Command, extra map[string]any) (*pipeline, *service.Outcome, error) {
	cfg, err := loadConfig(cmd, extra)
	if err != nil {
		return nil, nil, err
	}
	p, err := newPipeline(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	out, err := p.svc.Run(cmd.Context())
	if err != nil {
		_ = p.Close(cmd.Context())
		return nil, nil, err
	}
	return p, out, nil
}

// points turns configured bonus rules into a points table. No rules keeps
// the default table.
func points(rules []config.BonusRule) scoring.Points {
	if len(rules) == 0 {
		return scoring.DefaultPoints()
	}
	p := make(scoring.Points, len(rules))
	for _, r := range rules {
		p[r.Hits] = r.Points
	}
	return p
}

// roundArgs parses positional round numbers.
func roundArgs(args []string) ([]int, error) {
	rounds := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", ErrBadRound, a)
		}
		rounds = append(rounds, n)
	}
	return rounds, nil
}
