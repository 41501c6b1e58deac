package repository

import "errors"

// Sentinel kinds for prediction store errors.
var (
	ErrInvalidRound = errors.New("invalid prediction key")
	ErrSinkWrite    = errors.New("prediction sink write failed")
)
