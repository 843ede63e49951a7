package slotnotifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("slotnotifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе получателя
	ErrInvalidResponse = errors.New("slotnotifier client: invalid response")
)
