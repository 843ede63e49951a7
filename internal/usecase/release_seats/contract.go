package release_seats

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SlotService интерфейс сервиса слотов
type SlotService interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Save(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
}

// AppointmentRepository интерфейс репозитория броней
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
