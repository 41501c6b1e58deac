// Package cli holds the cobra command tree of the maulas binary.
package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// Version is reported by --version.
var Version = "v0.0.0"

// Root builds the maulas command tree.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "maulas",
		Short: "Score and rank the weekly prediction pool",
		Long: heredoc.Doc(`maulas reads the weekly prediction sheets of the pool, scores
			every member against the official results and ranks each round.

			Configuration is layered: built-in defaults, then the YAML file named
			by --config or MAULAS_CONFIG, then MAULAS_* environment variables,
			then the flags given on the command line.

			The match policy decides who wins a round and has no default. Pass
			--policy strict or --policy containment, or set match_policy.`),

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// global flags
	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "YAML config file (overrides MAULAS_CONFIG)")
	pf.String(flagPolicy, "", "match policy: strict or containment")
	pf.Bool(flagIncludeTerminal, false, "count the Pleno event towards hits")
	pf.String(flagSheetsDir, "", "directory holding the round sheets")
	pf.String(flagPoolFile, "", "roster and official results file (default: embedded season)")
	pf.String(flagHeaderMatching, "", "member header matching: exact or fuzzy")
	pf.String(flagLogLevel, "", "log level: debug, info, warn, error")
	pf.String(flagSeason, "", "season label for exports and stats")

	root.Version = Version
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(Rank())
	root.AddCommand(Forfeits())
	root.AddCommand(Export())
	root.AddCommand(Serve())

	return root
}
