package edit_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// editWithShift применяет изменение окончания слота с каскадным сдвигом
// остатка дня: все последующие слоты переносятся на дельту изменения,
// сохраняя свою длительность. Удлинение поглощает накрытые слоты и
// выталкивает не влезающие за границу дня, сжатие освобождает хвост дня,
// который достраивается новыми закрытыми слотами.
func (uc *UseCase) editWithShift(ctx context.Context, slot *domain.Slot, previous domain.Period) (*domain.Slot, error) {
	day := slot.Date()
	newEnd := slot.Period.EndingDateTime
	prevEnd := previous.EndingDateTime

	// 1. Граница рабочего дня, за которую сдвиг не выходит
	dayEnd, err := uc.dayEndDateTime(ctx, slot.FormID, day)
	if err != nil {
		return nil, err
	}

	// 2. Разворачиваем день целиком и берем остаток после редактируемого слота
	daySlots, err := uc.slotService.MaterializeDay(ctx, slot.FormID, day)
	if err != nil {
		uc.logger.Error("EditSlot: failed to materialize day: %v", err)
		return nil, fmt.Errorf("%w: failed to materialize day: %v", ErrInternal, err)
	}

	var remainder []*domain.Slot
	for _, s := range daySlots {
		if s.Period.StartingDateTime.After(slot.Period.StartingDateTime) {
			remainder = append(remainder, s)
		}
	}

	// 3. Слоты, целиком накрытые новым интервалом, не переживают правку
	var keep []*domain.Slot
	for _, s := range remainder {
		if !s.Period.EndingDateTime.After(newEnd) {
			if s.IsPersisted() {
				if err := uc.slotService.Delete(ctx, s); err != nil {
					uc.logger.Error("EditSlot: failed to delete swallowed slot id=%d: %v", s.ID, err)
					return nil, fmt.Errorf("%w: failed to delete swallowed slot: %v", ErrInternal, err)
				}
			}
			continue
		}
		keep = append(keep, s)
	}

	// 4. Дельта сдвига в минутах
	extending := newEnd.After(prevEnd)
	var delta time.Duration
	if extending {
		if len(keep) > 0 {
			delta = newEnd.Sub(keep[0].Period.StartingDateTime)
		} else {
			delta = newEnd.Sub(prevEnd)
		}
		uc.metrics.IncSlotShift("extend")
	} else {
		delta = prevEnd.Sub(newEnd)
		uc.metrics.IncSlotShift("compress")
	}

	// 5. Сохраняем сам слот до каскада
	saved, err := uc.slotService.Save(ctx, slot)
	if err != nil {
		uc.logger.Error("EditSlot: failed to save slot: %v", err)
		return nil, fmt.Errorf("%w: failed to save slot: %v", ErrInternal, err)
	}

	// 6. Сдвигаем остаток дня в порядке возрастания времени начала
	if extending {
		err = uc.shiftLater(ctx, keep, delta, dayEnd)
	} else {
		err = uc.shiftEarlier(ctx, keep, delta)
	}
	if err != nil {
		return nil, err
	}

	// 7. Сжатие освобождает хвост дня, достраиваем его новой сеткой
	if !extending {
		if err := uc.refillTail(ctx, slot.FormID, dayEnd.Add(-delta)); err != nil {
			return nil, err
		}
	}

	return saved, nil
}

// shiftLater переносит слоты на delta позже. Слот, чье новое начало
// достигает границы дня, не сдвигается, а удаляется; слот, вылезающий
// за границу частично, обрезается по ней.
func (uc *UseCase) shiftLater(ctx context.Context, keep []*domain.Slot, delta time.Duration, dayEnd time.Time) error {
	for _, s := range keep {
		newStart := s.Period.StartingDateTime.Add(delta)

		if !newStart.Before(dayEnd) {
			if s.IsPersisted() {
				if err := uc.slotService.Delete(ctx, s); err != nil {
					uc.logger.Error("EditSlot: failed to delete pushed-out slot id=%d: %v", s.ID, err)
					return fmt.Errorf("%w: failed to delete pushed-out slot: %v", ErrInternal, err)
				}
			}
			continue
		}

		newEnd := s.Period.EndingDateTime.Add(delta)
		if newEnd.After(dayEnd) {
			newEnd = dayEnd
		}

		if err := uc.saveShifted(ctx, s, newStart, newEnd); err != nil {
			return err
		}
	}
	return nil
}

// shiftEarlier переносит слоты на delta раньше, длительность сохраняется
func (uc *UseCase) shiftEarlier(ctx context.Context, keep []*domain.Slot, delta time.Duration) error {
	for _, s := range keep {
		newStart := s.Period.StartingDateTime.Add(-delta)
		newEnd := s.Period.EndingDateTime.Add(-delta)

		if err := uc.saveShifted(ctx, s, newStart, newEnd); err != nil {
			return err
		}
	}
	return nil
}

// saveShifted сохраняет слот с новыми границами, заново определяя,
// отличается ли он от канона на новом месте
func (uc *UseCase) saveShifted(ctx context.Context, s *domain.Slot, newStart, newEnd time.Time) error {
	s.Period.StartingDateTime = newStart
	s.Period.EndingDateTime = newEnd

	specific, err := uc.slotService.IsSpecificSlot(ctx, s)
	if err != nil {
		uc.logger.Error("EditSlot: failed to classify shifted slot: %v", err)
		return fmt.Errorf("%w: failed to classify shifted slot: %v", ErrInternal, err)
	}
	s.IsSpecific = specific

	if _, err := uc.slotService.Save(ctx, s); err != nil {
		uc.logger.Error("EditSlot: failed to save shifted slot: %v", err)
		return fmt.Errorf("%w: failed to save shifted slot: %v", ErrInternal, err)
	}
	return nil
}

// refillTail достраивает освободившийся хвост дня закрытыми слотами
func (uc *UseCase) refillTail(ctx context.Context, formID int64, from time.Time) error {
	generated, err := uc.slotService.GenerateSlotsAfter(ctx, formID, from)
	if err != nil {
		uc.logger.Error("EditSlot: failed to generate tail slots: %v", err)
		return fmt.Errorf("%w: failed to generate tail slots: %v", ErrInternal, err)
	}
	for _, g := range generated {
		if _, err := uc.slotService.Save(ctx, g); err != nil {
			uc.logger.Error("EditSlot: failed to save tail slot: %v", err)
			return fmt.Errorf("%w: failed to save tail slot: %v", ErrInternal, err)
		}
	}
	return nil
}

// dayEndDateTime возвращает окончание рабочего дня формы на дату
func (uc *UseCase) dayEndDateTime(ctx context.Context, formID int64, day time.Time) (time.Time, error) {
	dayRules, err := uc.resolver.ResolveForDate(ctx, formID, day)
	if err != nil {
		uc.logger.Error("EditSlot: failed to resolve rules: %v", err)
		return time.Time{}, fmt.Errorf("%w: failed to resolve rules: %v", ErrInternal, err)
	}

	if workingDay := dayRules.WorkingDayFor(day); workingDay != nil {
		if maxTime, ok := workingDay.MaxEndingTime(); ok {
			return maxTime.At(day), nil
		}
	}
	if dayRules.WeekDefinition != nil {
		if maxTime, ok := dayRules.WeekDefinition.MaxEndingTime(); ok {
			return maxTime.At(day), nil
		}
	}

	uc.logger.Warn("EditSlot: form %d has no schedule bounds on %s", formID, day.Format(domain.DateFormat))
	return time.Time{}, fmt.Errorf("%w: form has no schedule bounds for this day", ErrInternal)
}
