package edit_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/rules"
)

// SlotService интерфейс сервиса слотов
type SlotService interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	MaterializeDay(ctx context.Context, formID int64, day time.Time) ([]*domain.Slot, error)
	RangePersisted(ctx context.Context, formID int64, start, end time.Time) ([]*domain.Slot, error)
	IsSpecificSlot(ctx context.Context, slot *domain.Slot) (bool, error)
	GenerateSlotsAfter(ctx context.Context, formID int64, from time.Time) ([]*domain.Slot, error)
	Save(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	Delete(ctx context.Context, slot *domain.Slot) error
}

// RuleResolver интерфейс сервиса разрешения правил планирования
type RuleResolver interface {
	ResolveForDate(ctx context.Context, formID int64, date time.Time) (rules.DayRules, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsCollector интерфейс для сбора метрик сдвигов
type MetricsCollector interface {
	IncSlotShift(direction string)
	IncOverbooked()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
