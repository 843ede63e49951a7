package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// GenerateSlotsAfter синтезирует закрытые слоты от момента from до конца
// рабочего дня с шагом минимальной длительности шаблона. Используется для
// заполнения хвоста дня, освободившегося после сжатия слота.
// Слоты возвращаются несохраненными, вызывающий решает, что с ними делать.
func (s *Service) GenerateSlotsAfter(ctx context.Context, formID int64, from time.Time) ([]*domain.Slot, error) {
	day := truncateToDay(from)

	dayRules, err := s.resolver.ResolveForDate(ctx, formID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: GenerateSlotsAfter - resolve rules: %v", ErrInternal, err)
	}
	if dayRules.WeekDefinition == nil || dayRules.ReservationRule == nil {
		return nil, nil
	}

	workingDay := dayRules.WorkingDayFor(day)

	var maxTime types.TimeString
	var duration int
	if workingDay != nil {
		var ok bool
		maxTime, ok = workingDay.MaxEndingTime()
		if !ok {
			return nil, nil
		}
		duration = workingDay.MinSlotDurationMinutes()
	} else {
		var ok bool
		maxTime, ok = dayRules.WeekDefinition.MaxEndingTime()
		if !ok {
			return nil, nil
		}
		duration = dayRules.WeekDefinition.MinSlotDurationMinutes()
	}
	if duration <= 0 {
		return nil, nil
	}

	capacity := dayRules.MaxCapacity()

	var result []*domain.Slot

	current := types.NewTimeString(from)
	for current.IsBefore(maxTime) {
		next, err := current.AddMinutes(duration)
		if err != nil || next.IsAfter(maxTime) {
			// Последний интервал обрезается по границе рабочего дня
			next = maxTime
		}

		slot := closedSlot(formID, current.At(day), next.At(day), capacity)
		slot.IsSpecific = isSpecific(slot, workingDay, capacity)
		result = append(result, slot)

		current = next
	}

	return result, nil
}
