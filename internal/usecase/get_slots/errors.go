package get_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slots: invalid input data")

	// ErrRangeTooWide возвращается, когда запрошенный диапазон превышает лимит
	ErrRangeTooWide = errors.New("get_slots: date range is too wide")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slots: internal error")
)
