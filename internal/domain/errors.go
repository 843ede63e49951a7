package domain

import "errors"

// ErrInvalidPeriod возвращается для интервала нулевой или отрицательной длины
var ErrInvalidPeriod = errors.New("domain: period start must be before period end")
