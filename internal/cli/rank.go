package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/okian/maulas/internal/adapters/report"
)

// maulas rank
func Rank() *cobra.Command {
	return &cobra.Command{
		Use:   "rank [round...]",
		Short: "Print the ranking of every scored round",
		Long: heredoc.Doc(`rank runs the pipeline over the sheets directory and prints
			one table per round that has both predictions and official
			results, followed by the forfeit assignments.

			Members are ordered by hits, most first; ties go to the lower
			member id. Give round numbers to print only those rounds.

			Rounds with predictions but no official results and sheets that
			could not be used are listed at the end.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			only, err := roundArgs(args)
			if err != nil {
				return err
			}
			p, out, err := run(cmd, nil)
			if err != nil {
				return err
			}
			defer func() { _ = p.Close(cmd.Context()) }()

			rounds := out.RankedRounds
			if len(only) > 0 {
				rounds = only
			}
			in := report.Input{
				Policy:         out.Policy.Match.String(),
				MaxHits:        out.Policy.MaxHits(),
				MissingResults: out.MissingResults,
				Skipped:        out.Skipped,
			}
			for _, round := range rounds {
				entries := out.Ranking(round)
				if entries == nil {
					return fmt.Errorf("%w: %d", ErrRoundNotRanked, round)
				}
				in.Rounds = append(in.Rounds, report.Round{Round: round, Entries: entries})
			}
			if len(only) == 0 {
				in.Forfeits = out.Forfeits
			}
			return report.Write(cmd.OutOrStdout(), in)
		},
	}
}
