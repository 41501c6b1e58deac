package scoring

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownMatch = errors.New("unknown match policy")
)
