// Package config defines process configuration and its layered loader.
//
// Conventions:
// - Defaults come from New(); files and env only override what they set.
// - Anything that changes who wins a round (match policy) has no default and
//   must be chosen explicitly; Validate rejects a config that leaves it open.
// - Errors wrap this package's sentinels so callers can use errors.Is.
package config

import "time"

// Match policies accepted by match_policy.
const (
	PolicyStrict      = "strict"
	PolicyContainment = "containment"
)

// Header matching modes accepted by header_matching.
const (
	HeaderExact = "exact"
	HeaderFuzzy = "fuzzy"
)

// Export formats accepted by export_format.
const (
	FormatJSON = "json"
	FormatJS   = "js"
)

// BonusRule awards Points on top of the hit count when a member scores Hits.
type BonusRule struct {
	Hits   int `koanf:"hits"`
	Points int `koanf:"points"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address for `serve`.
	Addr string `koanf:"addr"`

	// MaxRankingLimit caps GET /ranking/{round}?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// SheetsDir holds the per-round prediction sheets.
	SheetsDir string `koanf:"sheets_dir"`

	// SheetsGlob selects sheet files inside SheetsDir.
	SheetsGlob string `koanf:"sheets_glob"`

	// SheetDelimiter is the single-character cell separator.
	SheetDelimiter string `koanf:"sheet_delimiter"`

	// HeaderMatching is exact or fuzzy.
	HeaderMatching string `koanf:"header_matching"`

	// AcceptedTokens overrides the event 1-14 whitelist when non-empty.
	AcceptedTokens []string `koanf:"accepted_tokens"`

	// PoolFile points at the roster and official results. Empty uses the
	// embedded season table.
	PoolFile string `koanf:"pool_file"`

	// MatchPolicy is strict or containment. Required.
	MatchPolicy string `koanf:"match_policy"`

	// IncludeTerminal counts the Pleno event towards hits.
	IncludeTerminal bool `koanf:"include_terminal"`

	// Bonus replaces the default points table when non-empty.
	Bonus []BonusRule `koanf:"bonus"`

	// ForfeitTargets lists the rounds to derive forfeit assignments for.
	// Empty means every round following a ranked round, plus round 1.
	ForfeitTargets []int `koanf:"forfeit_targets"`

	// ExportPath is where `export` writes the snapshot; "-" is stdout.
	ExportPath string `koanf:"export_path"`

	// ExportFormat is json or js.
	ExportFormat string `koanf:"export_format"`

	// MongoURI enables the MongoDB prediction sink when set.
	MongoURI        string `koanf:"mongo_uri"`
	MongoDatabase   string `koanf:"mongo_database"`
	MongoCollection string `koanf:"mongo_collection"`

	// MongoWriteTimeout bounds each upsert, e.g. "5s".
	MongoWriteTimeout time.Duration `koanf:"mongo_write_timeout"`

	// SinkWorkers is how many writers mirror predictions into the sinks.
	SinkWorkers int `koanf:"sink_workers"`

	// Season labels metrics and snapshots, e.g. "2025-2026".
	Season string `koanf:"season"`
}

// New returns a Config populated with defaults. MatchPolicy is left empty on
// purpose.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		MaxRankingLimit:   100,
		SheetsDir:         "data",
		SheetsGlob:        "Jornada_*.csv",
		SheetDelimiter:    ";",
		HeaderMatching:    HeaderExact,
		IncludeTerminal:   false,
		ExportPath:        "-",
		ExportFormat:      FormatJSON,
		MongoDatabase:     "maulas",
		MongoCollection:   "pronosticos",
		MongoWriteTimeout: 5 * time.Second,
		SinkWorkers:       4,
	}
}
