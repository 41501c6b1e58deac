package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/okian/maulas/internal/domain/model"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatJS   = "js"
)

// jsGlobal is the variable the browser front-end reads its data from.
const jsGlobal = "window.HISTORICAL_DATA"

// jsRound is the legacy per-round shape expected by the front-end loader.
type jsRound struct {
	Round       int                        `json:"jornada_num"`
	Predictions map[string]model.Selection `json:"predictions"`
}

// Write renders snap to w in the given format.
func Write(w io.Writer, snap Snapshot, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		return nil
	case FormatJS:
		rounds := make([]jsRound, 0, len(snap.Rounds))
		for _, r := range snap.Rounds {
			rounds = append(rounds, jsRound{Round: r.Round, Predictions: r.Predictions})
		}
		b, err := json.MarshalIndent(rounds, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if _, err := fmt.Fprintf(w, "%s = %s;\n", jsGlobal, b); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
