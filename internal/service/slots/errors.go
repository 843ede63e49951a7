package slots

import "errors"

var (
	// ErrSlotNotFound слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal error")
)
