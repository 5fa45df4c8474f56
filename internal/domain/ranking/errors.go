package ranking

import "errors"

// Sentinel kinds for ranking errors.
var (
	ErrInvalidWeightConfig = errors.New("ranking weights must each lie in [0,1] and sum to 1")
)
