package sheet

import "errors"

// Sentinel error kinds for reading sheets from disk. Parsing never fails.
var (
	ErrSheetsDir  = errors.New("sheets directory unavailable")
	ErrReadSheet  = errors.New("read sheet failed")
	ErrBadPattern = errors.New("invalid sheets glob")
)
