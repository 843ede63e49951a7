package book_seats

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_seats: slot not found")

	// ErrSlotClosed возвращается при попытке записи в закрытый слот
	ErrSlotClosed = errors.New("book_seats: slot is closed")

	// ErrNotEnoughPlaces возвращается, когда свободных мест меньше запрошенного
	ErrNotEnoughPlaces = errors.New("book_seats: not enough remaining places")

	// ErrTooManyAppointments возвращается при превышении лимита броней пользователя
	ErrTooManyAppointments = errors.New("book_seats: user has too many appointments on this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_seats: invalid input data")

	// ErrConcurrentModification возвращается, когда бронь не прошла из-за
	// конкурентного изменения слота и должна быть повторена клиентом
	ErrConcurrentModification = errors.New("book_seats: slot was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_seats: internal error")
)
