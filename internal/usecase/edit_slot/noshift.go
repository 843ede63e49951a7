package edit_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// editWithoutShift применяет изменение окончания слота, не трогая сетку
// остатка дня: слоты, накрытые новым интервалом, удаляются, а разрыв до
// следующей границы закрывается отдельным закрытым слотом
func (uc *UseCase) editWithoutShift(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	newEnd := slot.Period.EndingDateTime

	// 1. Удаляем сохраненные слоты, начинающиеся строго внутри нового интервала
	covered, err := uc.slotService.RangePersisted(ctx, slot.FormID,
		slot.Period.StartingDateTime.Add(time.Minute), newEnd.Add(-time.Minute))
	if err != nil {
		uc.logger.Error("EditSlot: failed to load covered slots: %v", err)
		return nil, fmt.Errorf("%w: failed to load covered slots: %v", ErrInternal, err)
	}
	for _, c := range covered {
		if err := uc.slotService.Delete(ctx, c); err != nil {
			uc.logger.Error("EditSlot: failed to delete covered slot id=%d: %v", c.ID, err)
			return nil, fmt.Errorf("%w: failed to delete covered slot: %v", ErrInternal, err)
		}
	}

	// 2. Сохраняем сам слот
	saved, err := uc.slotService.Save(ctx, slot)
	if err != nil {
		uc.logger.Error("EditSlot: failed to save slot: %v", err)
		return nil, fmt.Errorf("%w: failed to save slot: %v", ErrInternal, err)
	}

	// 3. Закрываем разрыв между новым окончанием и следующей границей сетки
	if err := uc.fillGapAfter(ctx, saved); err != nil {
		return nil, err
	}

	return saved, nil
}

// fillGapAfter создает закрытый слот от окончания отредактированного слота
// до начала следующего слота дня, чтобы материализация не оборвала день
// на несуществующей границе
func (uc *UseCase) fillGapAfter(ctx context.Context, slot *domain.Slot) error {
	newEnd := slot.Period.EndingDateTime
	dayEnd := slot.Date().Add(24*time.Hour - time.Minute)

	// Следующий сохраненный слот дня
	following, err := uc.slotService.RangePersisted(ctx, slot.FormID, newEnd, dayEnd)
	if err != nil {
		uc.logger.Error("EditSlot: failed to load following slots: %v", err)
		return fmt.Errorf("%w: failed to load following slots: %v", ErrInternal, err)
	}
	if len(following) > 0 {
		nextStart := following[0].Period.StartingDateTime
		if nextStart.Equal(newEnd) {
			return nil
		}
		return uc.createGapSlot(ctx, slot, newEnd, nextStart)
	}

	dayRules, err := uc.resolver.ResolveForDate(ctx, slot.FormID, slot.Date())
	if err != nil {
		uc.logger.Error("EditSlot: failed to resolve rules: %v", err)
		return fmt.Errorf("%w: failed to resolve rules: %v", ErrInternal, err)
	}

	workingDay := dayRules.WorkingDayFor(slot.Date())
	if workingDay == nil {
		// Нерабочий день: достраиваем сетку закрытых слотов до конца дня
		generated, err := uc.slotService.GenerateSlotsAfter(ctx, slot.FormID, newEnd)
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

	endTime := types.NewTimeString(newEnd)

	// Новое окончание попало на границу шаблона, разрыва нет
	if workingDay.TemplateStartingAt(endTime) != nil {
		return nil
	}

	nextTemplates := workingDay.TemplatesAfter(endTime)
	if len(nextTemplates) == 0 {
		return nil
	}

	nextStart := nextTemplates[0].StartingTime
	for _, t := range nextTemplates[1:] {
		if t.StartingTime.IsBefore(nextStart) {
			nextStart = t.StartingTime
		}
	}

	return uc.createGapSlot(ctx, slot, newEnd, nextStart.At(slot.Date()))
}

// createGapSlot создает закрытый слот-заполнитель между границами
func (uc *UseCase) createGapSlot(ctx context.Context, anchor *domain.Slot, start, end time.Time) error {
	period := domain.Period{StartingDateTime: start, EndingDateTime: end}
	gap := domain.NewSlot(anchor.FormID, period, anchor.MaxCapacity, anchor.MaxCapacity, anchor.MaxCapacity, 0, false, true)

	if _, err := uc.slotService.Save(ctx, gap); err != nil {
		uc.logger.Error("EditSlot: failed to create gap slot: %v", err)
		return fmt.Errorf("%w: failed to create gap slot: %v", ErrInternal, err)
	}
	return nil
}
