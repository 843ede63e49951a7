package update_form_planning

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// PlanningRepository интерфейс репозитория правил планирования
type PlanningRepository interface {
	CreateWeekDefinition(ctx context.Context, wd *domain.WeekDefinition) (*domain.WeekDefinition, error)
	CreateReservationRule(ctx context.Context, rule *domain.ReservationRule) (*domain.ReservationRule, error)
	ReplaceClosingDays(ctx context.Context, formID int64, start, end time.Time, dates []time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
