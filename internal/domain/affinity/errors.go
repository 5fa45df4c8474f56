package affinity

import "errors"

// Sentinel kinds for affinity model errors.
var (
	ErrModelNotTrained = errors.New("affinity model not trained")
	ErrNoObservations  = errors.New("outcome history has no observations")
	ErrInvalidTrainer  = errors.New("invalid trainer configuration")
)
