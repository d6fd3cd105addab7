package maturity

import "errors"

var (
	ErrNoSchemes = errors.New("no matured schemes")
)
