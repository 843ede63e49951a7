package rules

import "errors"

var (
	ErrInternal = errors.New("internal error")
)
