package domain

import "errors"

// ErrInvalidParameter marks request parameters rejected before planning
// starts (non-positive range or mpg, malformed route). Callers match it
// with errors.Is to map the failure to a 400 at the API edge.
var ErrInvalidParameter = errors.New("invalid parameter")
