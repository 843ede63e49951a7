package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/rules"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	GetByFormAndRange(ctx context.Context, formID int64, start, end time.Time) ([]*domain.Slot, error)
	GetSpecificByForm(ctx context.Context, formID int64) ([]*domain.Slot, error)
	GetWithMaxDate(ctx context.Context, formID int64) (*domain.Slot, error)
	Update(ctx context.Context, s *domain.Slot) error
	Delete(ctx context.Context, id int64) error
}

// RuleResolver интерфейс сервиса разрешения правил планирования
type RuleResolver interface {
	Snapshot(ctx context.Context, formID int64, start, end time.Time) (*rules.FormRules, error)
	ResolveForDate(ctx context.Context, formID int64, date time.Time) (rules.DayRules, error)
}

// EventNotifier интерфейс уведомления слушателей об изменениях слотов
type EventNotifier interface {
	NotifySlotCreated(ctx context.Context, slot *domain.Slot)
	NotifySlotUpdated(ctx context.Context, slot *domain.Slot)
	NotifySlotRemoved(ctx context.Context, slot *domain.Slot)
}

// MetricsCollector интерфейс для сбора метрик материализации
type MetricsCollector interface {
	AddSlotsMaterialized(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
