package slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// IsSpecificSlot определяет, отличается ли слот от своей канонической формы.
// Только отличающиеся слоты обязаны храниться в БД, остальные
// восстанавливаются из шаблонов при материализации.
func (s *Service) IsSpecificSlot(ctx context.Context, slot *domain.Slot) (bool, error) {
	dayRules, err := s.resolver.ResolveForDate(ctx, slot.FormID, slot.Date())
	if err != nil {
		return false, fmt.Errorf("%w: IsSpecificSlot - resolve rules: %v", ErrInternal, err)
	}

	return isSpecific(slot, dayRules.WorkingDayFor(slot.Date()), dayRules.MaxCapacity()), nil
}

// isSpecific сравнивает слот с шаблонами рабочего дня.
// Для нерабочего дня канон - закрытый слот с вместимостью из правила
// резервирования. Для рабочего дня слот каноничен, если хотя бы один шаблон
// совпадает с ним по началу, окончанию, открытости и вместимости.
func isSpecific(slot *domain.Slot, workingDay *domain.WorkingDay, ruleCapacity int) bool {
	if workingDay == nil {
		canonical := !slot.IsOpen && slot.MaxCapacity == ruleCapacity
		return !canonical
	}

	for i := range workingDay.Templates {
		template := &workingDay.Templates[i]

		capacity := template.MaxCapacity
		if capacity == 0 {
			capacity = ruleCapacity
		}

		if template.StartingTime == slot.StartingTime() &&
			template.EndingTime == slot.EndingTime() &&
			template.IsOpen == slot.IsOpen &&
			capacity == slot.MaxCapacity {
			return false
		}
	}
	return true
}
