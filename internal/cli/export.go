package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/okian/maulas/internal/adapters/export"
	"github.com/okian/maulas/pkg/logger"
	"github.com/okian/maulas/pkg/metrics"
)

// maulas export
func Export() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the canonical prediction snapshot",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`export writes every accepted prediction, keyed by round and
			member, together with the rankings and forfeits of the run.

			The json format is the full snapshot. The js format is the data
			file loaded by the browser front-end and only carries the
			predictions. Use --out - for standard output.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, out, err := run(cmd, nil)
			if err != nil {
				return err
			}
			defer func() { _ = p.Close(cmd.Context()) }()

			snap := out.Snapshot()
			path := p.cfg.ExportPath
			if path == "-" || path == "" {
				return export.Write(cmd.OutOrStdout(), snap, p.cfg.ExportFormat)
			}

			err = writeFile(path, func(w io.Writer) error {
				return export.Write(w, snap, p.cfg.ExportFormat)
			})
			metrics.RecordSnapshotWrite("file", err)
			if err != nil {
				return err
			}
			logger.Get().Info(cmd.Context(), "snapshot written",
				logger.String("path", path),
				logger.String("format", p.cfg.ExportFormat),
				logger.String("id", snap.ID),
				logger.Int("rounds", len(snap.Rounds)),
			)
			return nil
		},
	}
	cmd.Flags().String(flagFormat, "", "snapshot format: json or js")
	cmd.Flags().StringP(flagOut, "o", "", "output file, - for stdout")
	return cmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", export.ErrWrite, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", export.ErrWrite, err)
	}
	return nil
}
