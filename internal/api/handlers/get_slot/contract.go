package get_slot

import (
	"context"

	getSlot "github.com/m04kA/SMC-SlotService/internal/usecase/get_slot"
)

type GetSlotUseCase interface {
	Execute(ctx context.Context, req *getSlot.Request) (*getSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
