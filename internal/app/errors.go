package service

import "errors"

// Sentinel error kinds for the pipeline.
var (
	ErrNoPool     = errors.New("pool data is required")
	ErrNoPolicy   = errors.New("match policy is required")
	ErrLoadSheets = errors.New("load sheets failed")
	ErrSink       = errors.New("prediction sink failed")
	ErrNotRun     = errors.New("pipeline has not run")
)
