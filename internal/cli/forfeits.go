package cli

import (
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/okian/maulas/internal/adapters/report"
)

// maulas forfeits
func Forfeits() *cobra.Command {
	return &cobra.Command{
		Use:   "forfeits [target-round...]",
		Short: "Print who bears the forfeit for the given rounds",
		Long: heredoc.Doc(`forfeits derives the forfeit assignment of each target round
			from the winner of the round before it. Round 1 has no previous
			round and goes to the configured bootstrap member.

			When the previous round cannot be ranked the assignment is
			reported as missing. Without arguments the targets come from
			forfeit_targets, or else every round after a ranked one.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := roundArgs(args)
			if err != nil {
				return err
			}
			var extra map[string]any
			if len(targets) > 0 {
				extra = map[string]any{"forfeit_targets": targets}
			}
			p, out, err := run(cmd, extra)
			if err != nil {
				return err
			}
			defer func() { _ = p.Close(cmd.Context()) }()

			_, err = io.WriteString(cmd.OutOrStdout(), report.Forfeits(out.Forfeits))
			return err
		},
	}
}
