package rules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// PlanningRepository интерфейс репозитория правил планирования
type PlanningRepository interface {
	GetWeekDefinitionsByForm(ctx context.Context, formID int64) ([]*domain.WeekDefinition, error)
	GetReservationRulesByForm(ctx context.Context, formID int64) ([]*domain.ReservationRule, error)
	GetClosingDays(ctx context.Context, formID int64, start, end time.Time) ([]time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
