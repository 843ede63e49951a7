package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/rules"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Materialize разворачивает расписание формы в список слотов по дням
// диапазона [startDate, endDate]. Сохраненные слоты подставляются на свои
// места, дыры между ними заполняются слотами из шаблонов с ID = 0.
// Повторный вызов без изменений в БД дает идентичный результат.
func (s *Service) Materialize(ctx context.Context, formID int64, startDate, endDate time.Time) ([]*domain.Slot, error) {
	startDay := truncateToDay(startDate)
	endDay := truncateToDay(endDate)
	if endDay.Before(startDay) {
		return nil, nil
	}

	snapshot, err := s.resolver.Snapshot(ctx, formID, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("%w: Materialize - load rules: %v", ErrInternal, err)
	}

	// До вступления в силу первого правила резервирования слотов не существует
	if earliest, ok := snapshot.EarliestRuleDate(); ok && startDay.Before(earliest) {
		startDay = truncateToDay(earliest)
		if endDay.Before(startDay) {
			return nil, nil
		}
	}

	persisted, err := s.persistedByStart(ctx, formID, startDay, endDay)
	if err != nil {
		return nil, err
	}

	var result []*domain.Slot
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		result = append(result, s.materializeDay(formID, day, snapshot.ForDate(day), persisted)...)
	}

	s.metrics.AddSlotsMaterialized(len(result))
	return result, nil
}

// MaterializeDay разворачивает расписание формы на один день
func (s *Service) MaterializeDay(ctx context.Context, formID int64, day time.Time) ([]*domain.Slot, error) {
	return s.Materialize(ctx, formID, day, day)
}

func (s *Service) persistedByStart(ctx context.Context, formID int64, startDay, endDay time.Time) (map[time.Time]*domain.Slot, error) {
	rangeEnd := endDay.Add(24*time.Hour - time.Minute)
	persistedSlots, err := s.slotRepo.GetByFormAndRange(ctx, formID, startDay, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: Materialize - load persisted slots: %v", ErrInternal, err)
	}

	byStart := make(map[time.Time]*domain.Slot, len(persistedSlots))
	for _, slot := range persistedSlots {
		byStart[slot.Period.StartingDateTime] = slot
	}
	return byStart, nil
}

func (s *Service) materializeDay(formID int64, day time.Time, dayRules rules.DayRules, persisted map[time.Time]*domain.Slot) []*domain.Slot {
	workingDay := dayRules.WorkingDayFor(day)

	if workingDay != nil {
		minTime, okMin := workingDay.MinStartingTime()
		maxTime, okMax := workingDay.MaxEndingTime()
		if !okMin || !okMax {
			return nil
		}

		// Закрытый день покрывается одним закрытым слотом на весь рабочий
		// интервал, сохраненные слоты этого дня игнорируются
		if dayRules.IsClosingDay {
			return []*domain.Slot{closedSlot(formID, minTime.At(day), maxTime.At(day), dayRules.MaxCapacity())}
		}

		return s.walkTemplates(formID, day, workingDay, minTime, maxTime, dayRules.MaxCapacity(), persisted)
	}

	// Нерабочий день: если форма когда-то работала по этому расписанию,
	// день заполняется закрытыми слотами минимальной длительности
	if dayRules.WeekDefinition == nil || dayRules.ReservationRule == nil {
		return nil
	}
	return s.fillNonWorkingDay(formID, day, dayRules, persisted)
}

// walkTemplates идет по дню от первого шаблона к последнему. Сохраненный слот
// с совпадающим временем начала подставляется как есть, и обход продолжается
// с его времени окончания. Иначе берется шаблон, начинающийся ровно в текущей
// точке; отсутствие такого шаблона означает дыру в расписании, и день
// обрывается на ней.
func (s *Service) walkTemplates(formID int64, day time.Time, workingDay *domain.WorkingDay, minTime, maxTime types.TimeString, ruleCapacity int, persisted map[time.Time]*domain.Slot) []*domain.Slot {
	var result []*domain.Slot

	current := minTime
	for current.IsBefore(maxTime) {
		startDateTime := current.At(day)

		if slot, ok := persisted[startDateTime]; ok {
			result = append(result, slot)
			current = slot.EndingTime()
			continue
		}

		template := workingDay.TemplateStartingAt(current)
		if template == nil {
			s.logger.Warn("walkTemplates: form %d day %s has no template starting at %s, day truncated", formID, day.Format(domain.DateFormat), current)
			break
		}

		result = append(result, templateSlot(formID, day, template, ruleCapacity))
		current = template.EndingTime
	}

	return result
}

// fillNonWorkingDay заполняет нерабочий день закрытыми слотами с шагом
// минимальной длительности шаблона недели
func (s *Service) fillNonWorkingDay(formID int64, day time.Time, dayRules rules.DayRules, persisted map[time.Time]*domain.Slot) []*domain.Slot {
	weekDef := dayRules.WeekDefinition

	minTime, okMin := weekDef.MinStartingTime()
	maxTime, okMax := weekDef.MaxEndingTime()
	duration := weekDef.MinSlotDurationMinutes()
	if !okMin || !okMax || duration <= 0 {
		return nil
	}

	var result []*domain.Slot

	current := minTime
	for current.IsBefore(maxTime) {
		startDateTime := current.At(day)

		if slot, ok := persisted[startDateTime]; ok {
			result = append(result, slot)
			current = slot.EndingTime()
			continue
		}

		next, err := current.AddMinutes(duration)
		if err != nil || next.IsAfter(maxTime) {
			next = maxTime
		}

		result = append(result, closedSlot(formID, current.At(day), next.At(day), dayRules.MaxCapacity()))
		current = next
	}

	return result
}

// templateSlot синтезирует несохраненный слот из шаблона рабочего дня
func templateSlot(formID int64, day time.Time, template *domain.TimeSlotTemplate, ruleCapacity int) *domain.Slot {
	capacity := template.MaxCapacity
	if capacity == 0 {
		capacity = ruleCapacity
	}

	period := domain.Period{
		StartingDateTime: template.StartingTime.At(day),
		EndingDateTime:   template.EndingTime.At(day),
	}
	return domain.NewSlot(formID, period, capacity, capacity, capacity, 0, template.IsOpen, false)
}

func closedSlot(formID int64, start, end time.Time, capacity int) *domain.Slot {
	period := domain.Period{StartingDateTime: start, EndingDateTime: end}
	return domain.NewSlot(formID, period, capacity, capacity, capacity, 0, false, false)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
