package edit_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда редактируемый слот не найден
	ErrSlotNotFound = errors.New("edit_slot: slot not found")

	// ErrInvalidPeriod возвращается для пустого или вывернутого интервала
	ErrInvalidPeriod = errors.New("edit_slot: invalid slot period")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("edit_slot: invalid input data")

	// ErrConcurrentModification возвращается, когда правка не прошла из-за
	// конкурентного изменения расписания и должна быть повторена клиентом
	ErrConcurrentModification = errors.New("edit_slot: slot was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("edit_slot: internal error")
)
