package repository

import "errors"

// Sentinel kinds for talent-graph store errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrMissingID      = errors.New("record id must not be empty")
	ErrUnknownRef     = errors.New("outcome references an unknown engineer or task")
	ErrInvalidSuccess = errors.New("outcome success metric must lie in [0,1]")
)
