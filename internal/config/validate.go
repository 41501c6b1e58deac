package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate checks cfg for values that would make a run ambiguous or
// impossible. It is strict: nothing is silently defaulted here.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.MatchPolicy)) {
	case PolicyStrict, PolicyContainment:
	case "":
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingPolicy)
	default:
		return fmt.Errorf("%w: unknown match_policy %q", ErrInvalidConfig, c.MatchPolicy)
	}

	switch c.HeaderMatching {
	case HeaderExact, HeaderFuzzy:
	default:
		return fmt.Errorf("%w: unknown header_matching %q", ErrInvalidConfig, c.HeaderMatching)
	}

	switch c.ExportFormat {
	case FormatJSON, FormatJS:
	default:
		return fmt.Errorf("%w: unknown export_format %q", ErrInvalidConfig, c.ExportFormat)
	}

	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if utf8.RuneCountInString(c.SheetDelimiter) != 1 {
		return fmt.Errorf("%w: sheet_delimiter must be a single character, got %q", ErrInvalidConfig, c.SheetDelimiter)
	}
	if c.MaxRankingLimit < 1 {
		return fmt.Errorf("%w: max_ranking_limit must be positive", ErrInvalidConfig)
	}
	if c.MongoWriteTimeout <= 0 {
		return fmt.Errorf("%w: mongo_write_timeout must be positive", ErrInvalidConfig)
	}
	if c.SinkWorkers < 1 {
		return fmt.Errorf("%w: sink_workers must be positive", ErrInvalidConfig)
	}

	seen := make(map[int]bool, len(c.Bonus))
	for _, b := range c.Bonus {
		if b.Hits < 0 || b.Hits > 15 {
			return fmt.Errorf("%w: bonus hits %d out of range", ErrInvalidConfig, b.Hits)
		}
		if seen[b.Hits] {
			return fmt.Errorf("%w: duplicate bonus rule for %d hits", ErrInvalidConfig, b.Hits)
		}
		seen[b.Hits] = true
	}
	for _, t := range c.ForfeitTargets {
		if t < 1 {
			return fmt.Errorf("%w: forfeit target %d must be positive", ErrInvalidConfig, t)
		}
	}
	return nil
}

// Policy returns the normalized match policy name.
func (c *Config) Policy() string {
	return strings.ToLower(strings.TrimSpace(c.MatchPolicy))
}
