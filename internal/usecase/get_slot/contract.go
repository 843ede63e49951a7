package get_slot

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SlotService интерфейс сервиса слотов
type SlotService interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
