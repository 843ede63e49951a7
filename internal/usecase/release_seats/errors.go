package release_seats

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронь не найдена
	ErrAppointmentNotFound = errors.New("release_seats: appointment not found")

	// ErrAppointmentCancelled возвращается при повторной отмене брони
	ErrAppointmentCancelled = errors.New("release_seats: appointment is already cancelled")

	// ErrForbidden возвращается при попытке отменить чужую бронь
	ErrForbidden = errors.New("release_seats: appointment belongs to another user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("release_seats: invalid input data")

	// ErrConcurrentModification возвращается, когда отмена не прошла из-за
	// конкурентного изменения слота и должна быть повторена клиентом
	ErrConcurrentModification = errors.New("release_seats: slot was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("release_seats: internal error")
)
