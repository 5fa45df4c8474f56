package filter

import "errors"

// Sentinel kinds for candidate filtering errors.
var (
	ErrInvalidTask = errors.New("task has no skill requirements")
)
