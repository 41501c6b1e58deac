package cli

import "errors"

// Sentinel error kinds for command arguments.
var (
	ErrBadRound       = errors.New("round must be a positive number")
	ErrRoundNotRanked = errors.New("round has no ranking")
)
