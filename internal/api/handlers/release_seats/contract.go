package release_seats

import (
	"context"

	releaseSeats "github.com/m04kA/SMC-SlotService/internal/usecase/release_seats"
)

type ReleaseSeatsUseCase interface {
	Execute(ctx context.Context, req *releaseSeats.Request) (*releaseSeats.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
