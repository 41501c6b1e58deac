package pooldata

import "errors"

// Sentinel error kinds for this package.
var (
	ErrLoadPoolData    = errors.New("load pool data failed")
	ErrInvalidPoolData = errors.New("invalid pool data")
)
