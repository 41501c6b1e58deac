package service

import (
	"context"

	"github.com/okian/maulas/internal/domain/types"
)

// Rounds returns the ranked rounds and the rounds lacking official results
// from the last run.
func (s *Service) Rounds(_ context.Context) ([]int, []int, error) {
	out, err := s.Last()
	if err != nil {
		return nil, nil, err
	}
	return out.RankedRounds, out.MissingResults, nil
}

// Ranking returns the ranking of round from the last run.
func (s *Service) Ranking(_ context.Context, round int) ([]types.Entry, bool, error) {
	out, err := s.Last()
	if err != nil {
		return nil, false, err
	}
	entries, ok := out.Rankings[round]
	return entries, ok, nil
}

// Forfeits returns the forfeit assignments from the last run.
func (s *Service) Forfeits(_ context.Context) ([]types.Assignment, error) {
	out, err := s.Last()
	if err != nil {
		return nil, err
	}
	return out.Forfeits, nil
}

// GetStats returns a summary of the last run for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"members":          s.pool.Roster().Len(),
		"policy":           s.policy.Match.String(),
		"include_terminal": s.policy.IncludeTerminal,
	}
	out, err := s.Last()
	if err != nil {
		stats["status"] = "not_run"
		return stats
	}
	stats["status"] = "ready"
	stats["season"] = out.Season
	stats["sheets"] = len(out.Results)
	stats["skipped"] = len(out.Skipped)
	stats["predictions"] = out.Predictions()
	stats["ranked_rounds"] = len(out.RankedRounds)
	stats["missing_results"] = len(out.MissingResults)
	stats["forfeits"] = len(out.Forfeits)
	stats["duration_ms"] = out.Duration.Milliseconds()
	return stats
}
