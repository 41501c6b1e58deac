package service

import (
	"github.com/okian/maulas/internal/adapters/mq/worker"
	"github.com/okian/maulas/internal/adapters/repository"
	"github.com/okian/maulas/internal/domain/scoring"
	"github.com/okian/maulas/internal/domain/sheet"
	"github.com/okian/maulas/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSheetsDir reads sheets matching glob from dir on every run.
func WithSheetsDir(dir, glob string, delim rune) Option {
	return func(s *Service) {
		s.sheetsDir = dir
		s.sheetsGlob = glob
		s.delim = delim
	}
}

// WithSheets supplies already-decoded sheets instead of reading a directory.
func WithSheets(sheets ...sheet.Sheet) Option {
	return func(s *Service) {
		s.sheets = append(s.sheets, sheets...)
	}
}

// WithAdapter replaces the positional sheet adapter.
func WithAdapter(a sheet.Adapter) Option {
	return func(s *Service) {
		if a != nil {
			s.adapter = a
		}
	}
}

// WithSink mirrors every accepted prediction into an external store.
func WithSink(name string, st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.sinks = append(s.sinks, worker.Target{Name: name, Sink: st})
		}
	}
}

// WithSinkWorkers sets how many workers write to the sinks concurrently.
func WithSinkWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sinkWorkers = n
		}
	}
}

// WithPoints sets the bonus table.
func WithPoints(p scoring.Points) Option {
	return func(s *Service) {
		if len(p) > 0 {
			s.points = p
		}
	}
}

// WithForfeitTargets fixes the rounds forfeits are derived for.
func WithForfeitTargets(targets []int) Option {
	return func(s *Service) {
		s.forfeitTargets = append([]int(nil), targets...)
	}
}

// WithSeason labels the run.
func WithSeason(season string) Option {
	return func(s *Service) {
		s.season = season
	}
}
