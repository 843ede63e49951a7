package update_form_planning

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.FormID <= 0 {
		return fmt.Errorf("%w: formID must be positive", ErrInvalidInput)
	}

	if req.WeekDefinition == nil && req.ReservationRule == nil && req.ClosingDays == nil {
		return fmt.Errorf("%w: at least one planning section is required", ErrInvalidInput)
	}

	if req.WeekDefinition != nil {
		if err := validateWeekDefinition(req.WeekDefinition); err != nil {
			return err
		}
	}

	if req.ReservationRule != nil {
		if err := validateReservationRule(req.ReservationRule); err != nil {
			return err
		}
	}

	if req.ClosingDays != nil {
		if err := validateClosingDays(req.ClosingDays); err != nil {
			return err
		}
	}

	return nil
}

func validateWeekDefinition(wd *WeekDefinitionInput) error {
	if wd.EffectiveFrom.IsZero() {
		return fmt.Errorf("%w: weekDefinition.effectiveFrom is required", ErrInvalidInput)
	}
	if len(wd.WorkingDays) == 0 {
		return fmt.Errorf("%w: weekDefinition must have at least one working day", ErrInvalidInput)
	}

	seen := make(map[int]bool)
	for _, day := range wd.WorkingDays {
		if seen[int(day.DayOfWeek)] {
			return fmt.Errorf("%w: duplicate working day %s", ErrInvalidInput, day.DayOfWeek)
		}
		seen[int(day.DayOfWeek)] = true

		if err := validateTemplates(day); err != nil {
			return err
		}
	}
	return nil
}

func validateTemplates(day WorkingDayInput) error {
	if len(day.Templates) == 0 {
		return fmt.Errorf("%w: working day %s has no templates", ErrInvalidInput, day.DayOfWeek)
	}

	sorted := make([]TemplateInput, len(day.Templates))
	copy(sorted, day.Templates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartingTime.IsBefore(sorted[j].StartingTime)
	})

	for i, t := range sorted {
		startMinutes, err := t.StartingTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		endMinutes, err := t.EndingTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		duration := endMinutes - startMinutes
		if duration < domain.MinTemplateDurationMinutes || duration > domain.MaxTemplateDurationMinutes {
			return fmt.Errorf("%w: template %s-%s duration must be %d..%d minutes",
				ErrInvalidInput, t.StartingTime, t.EndingTime,
				domain.MinTemplateDurationMinutes, domain.MaxTemplateDurationMinutes)
		}

		if t.MaxCapacity < 0 || t.MaxCapacity > domain.MaxCapacityPerSlot {
			return fmt.Errorf("%w: template maxCapacity must be 0..%d", ErrInvalidInput, domain.MaxCapacityPerSlot)
		}

		if i > 0 && t.StartingTime.IsBefore(sorted[i-1].EndingTime) {
			return fmt.Errorf("%w: %s templates %s and %s",
				ErrOverlappingTemplates, day.DayOfWeek, sorted[i-1].StartingTime, t.StartingTime)
		}
	}
	return nil
}

func validateReservationRule(rule *ReservationRuleInput) error {
	if rule.EffectiveFrom.IsZero() {
		return fmt.Errorf("%w: reservationRule.effectiveFrom is required", ErrInvalidInput)
	}
	if rule.MaxCapacityPerSlot < domain.MinCapacityPerSlot || rule.MaxCapacityPerSlot > domain.MaxCapacityPerSlot {
		return fmt.Errorf("%w: maxCapacityPerSlot must be %d..%d",
			ErrInvalidInput, domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot)
	}
	if rule.MaxAppointmentsPerUser < 0 {
		return fmt.Errorf("%w: maxAppointmentsPerUser must be non-negative", ErrInvalidInput)
	}
	if rule.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be non-negative", ErrInvalidInput)
	}
	return nil
}

func validateClosingDays(cd *ClosingDaysInput) error {
	if cd.StartDate.IsZero() || cd.EndDate.IsZero() {
		return fmt.Errorf("%w: closingDays.startDate and endDate are required", ErrInvalidInput)
	}
	if cd.EndDate.Before(cd.StartDate) {
		return fmt.Errorf("%w: closingDays.endDate is before startDate", ErrInvalidInput)
	}
	for _, d := range cd.Dates {
		if d.Before(cd.StartDate) || d.After(cd.EndDate) {
			return fmt.Errorf("%w: closing day %s is outside the replaced range",
				ErrInvalidInput, d.Format(domain.DateFormat))
		}
	}
	return nil
}
