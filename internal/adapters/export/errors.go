package export

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrWrite         = errors.New("write snapshot failed")
)
