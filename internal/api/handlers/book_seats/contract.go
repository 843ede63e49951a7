package book_seats

import (
	"context"

	bookSeats "github.com/m04kA/SMC-SlotService/internal/usecase/book_seats"
)

type BookSeatsUseCase interface {
	Execute(ctx context.Context, req *bookSeats.Request) (*bookSeats.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
