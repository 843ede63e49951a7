package get_form_planning

import (
	"github.com/m04kA/SMC-SlotService/internal/domain"
	getFormPlanning "github.com/m04kA/SMC-SlotService/internal/usecase/get_form_planning"
)

// TemplateResponse HTTP модель шаблона слота
type TemplateResponse struct {
	StartingTime string `json:"startingTime"`
	EndingTime   string `json:"endingTime"`
	IsOpen       bool   `json:"isOpen"`
	MaxCapacity  int    `json:"maxCapacity"`
}

// WorkingDayResponse HTTP модель рабочего дня
type WorkingDayResponse struct {
	DayOfWeek string             `json:"dayOfWeek"`
	Templates []TemplateResponse `json:"templates"`
}

// WeekDefinitionResponse HTTP модель недельного расписания
type WeekDefinitionResponse struct {
	ID            int64                `json:"id"`
	EffectiveFrom string               `json:"effectiveFrom"`
	WorkingDays   []WorkingDayResponse `json:"workingDays"`
}

// ReservationRuleResponse HTTP модель правила резервирования
type ReservationRuleResponse struct {
	ID                      int64  `json:"id"`
	EffectiveFrom           string `json:"effectiveFrom"`
	MaxCapacityPerSlot      int    `json:"maxCapacityPerSlot"`
	MaxAppointmentsPerUser  int    `json:"maxAppointmentsPerUser"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
}

// SpecificSlotResponse HTTP модель отредактированного слота
type SpecificSlotResponse struct {
	ID               int64  `json:"id"`
	StartingDateTime string `json:"startingDateTime"`
	EndingDateTime   string `json:"endingDateTime"`
	MaxCapacity      int    `json:"maxCapacity"`
	IsOpen           bool   `json:"isOpen"`
}

// PlanningResponse HTTP модель планирования формы
type PlanningResponse struct {
	WeekDefinitions  []WeekDefinitionResponse  `json:"weekDefinitions"`
	ReservationRules []ReservationRuleResponse `json:"reservationRules"`
	ClosingDays      []string                  `json:"closingDays"`
	SpecificSlots    []SpecificSlotResponse    `json:"specificSlots"`
	MaxSlotDate      string                    `json:"maxSlotDate,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFormPlanning.Response) *PlanningResponse {
	result := &PlanningResponse{
		WeekDefinitions:  make([]WeekDefinitionResponse, 0, len(resp.WeekDefinitions)),
		ReservationRules: make([]ReservationRuleResponse, 0, len(resp.ReservationRules)),
		ClosingDays:      make([]string, 0, len(resp.ClosingDays)),
		SpecificSlots:    make([]SpecificSlotResponse, 0, len(resp.SpecificSlots)),
	}
	if !resp.MaxSlotDate.IsZero() {
		result.MaxSlotDate = resp.MaxSlotDate.Format(domain.DateFormat)
	}

	for _, wd := range resp.WeekDefinitions {
		days := make([]WorkingDayResponse, 0, len(wd.WorkingDays))
		for _, day := range wd.WorkingDays {
			templates := make([]TemplateResponse, 0, len(day.Templates))
			for _, t := range day.Templates {
				templates = append(templates, TemplateResponse{
					StartingTime: t.StartingTime.String(),
					EndingTime:   t.EndingTime.String(),
					IsOpen:       t.IsOpen,
					MaxCapacity:  t.MaxCapacity,
				})
			}
			days = append(days, WorkingDayResponse{
				DayOfWeek: day.DayOfWeek.String(),
				Templates: templates,
			})
		}
		result.WeekDefinitions = append(result.WeekDefinitions, WeekDefinitionResponse{
			ID:            wd.ID,
			EffectiveFrom: wd.EffectiveFrom.Format(domain.DateFormat),
			WorkingDays:   days,
		})
	}

	for _, rule := range resp.ReservationRules {
		result.ReservationRules = append(result.ReservationRules, ReservationRuleResponse{
			ID:                      rule.ID,
			EffectiveFrom:           rule.EffectiveFrom.Format(domain.DateFormat),
			MaxCapacityPerSlot:      rule.MaxCapacityPerSlot,
			MaxAppointmentsPerUser:  rule.MaxAppointmentsPerUser,
			MinBookingNoticeMinutes: rule.MinBookingNoticeMinutes,
		})
	}

	for _, day := range resp.ClosingDays {
		result.ClosingDays = append(result.ClosingDays, day.Format(domain.DateFormat))
	}

	for _, slot := range resp.SpecificSlots {
		result.SpecificSlots = append(result.SpecificSlots, SpecificSlotResponse{
			ID:               slot.ID,
			StartingDateTime: slot.Period.StartingDateTime.Format(domain.DateTimeFormat),
			EndingDateTime:   slot.Period.EndingDateTime.Format(domain.DateTimeFormat),
			MaxCapacity:      slot.MaxCapacity,
			IsOpen:           slot.IsOpen,
		})
	}

	return result
}
