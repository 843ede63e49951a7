package update_form_planning

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	updateFormPlanning "github.com/m04kA/SMC-SlotService/internal/usecase/update_form_planning"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// TemplateRequest HTTP модель шаблона слота
type TemplateRequest struct {
	StartingTime string `json:"startingTime"` // "09:00"
	EndingTime   string `json:"endingTime"`   // "09:30"
	IsOpen       bool   `json:"isOpen"`
	MaxCapacity  int    `json:"maxCapacity"` // 0 = наследовать из правила
}

// WorkingDayRequest HTTP модель рабочего дня
type WorkingDayRequest struct {
	DayOfWeek string            `json:"dayOfWeek"` // "Monday"
	Templates []TemplateRequest `json:"templates"`
}

// WeekDefinitionRequest HTTP модель новой версии недельного расписания
type WeekDefinitionRequest struct {
	EffectiveFrom string              `json:"effectiveFrom"` // "2026-03-01"
	WorkingDays   []WorkingDayRequest `json:"workingDays"`
}

// ReservationRuleRequest HTTP модель новой версии правила резервирования
type ReservationRuleRequest struct {
	EffectiveFrom           string `json:"effectiveFrom"`
	MaxCapacityPerSlot      int    `json:"maxCapacityPerSlot"`
	MaxAppointmentsPerUser  int    `json:"maxAppointmentsPerUser"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
}

// ClosingDaysRequest HTTP модель замены закрытых дней
type ClosingDaysRequest struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Dates     []string `json:"dates"`
}

// UpdatePlanningRequest HTTP request model
type UpdatePlanningRequest struct {
	WeekDefinition  *WeekDefinitionRequest  `json:"weekDefinition,omitempty"`
	ReservationRule *ReservationRuleRequest `json:"reservationRule,omitempty"`
	ClosingDays     *ClosingDaysRequest     `json:"closingDays,omitempty"`
}

// UpdatePlanningResponse HTTP response model
type UpdatePlanningResponse struct {
	WeekDefinitionID  int64 `json:"weekDefinitionId,omitempty"`
	ReservationRuleID int64 `json:"reservationRuleId,omitempty"`
	ClosingDaysCount  int   `json:"closingDaysCount"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdatePlanningRequest) ToUseCaseRequest(formID int64) (*updateFormPlanning.Request, error) {
	req := &updateFormPlanning.Request{FormID: formID}

	if r.WeekDefinition != nil {
		wd, err := r.WeekDefinition.toInput()
		if err != nil {
			return nil, err
		}
		req.WeekDefinition = wd
	}

	if r.ReservationRule != nil {
		effectiveFrom, err := time.Parse(domain.DateFormat, r.ReservationRule.EffectiveFrom)
		if err != nil {
			return nil, err
		}
		req.ReservationRule = &updateFormPlanning.ReservationRuleInput{
			EffectiveFrom:           effectiveFrom,
			MaxCapacityPerSlot:      r.ReservationRule.MaxCapacityPerSlot,
			MaxAppointmentsPerUser:  r.ReservationRule.MaxAppointmentsPerUser,
			MinBookingNoticeMinutes: r.ReservationRule.MinBookingNoticeMinutes,
		}
	}

	if r.ClosingDays != nil {
		cd, err := r.ClosingDays.toInput()
		if err != nil {
			return nil, err
		}
		req.ClosingDays = cd
	}

	return req, nil
}

func (r *WeekDefinitionRequest) toInput() (*updateFormPlanning.WeekDefinitionInput, error) {
	effectiveFrom, err := time.Parse(domain.DateFormat, r.EffectiveFrom)
	if err != nil {
		return nil, err
	}

	days := make([]updateFormPlanning.WorkingDayInput, 0, len(r.WorkingDays))
	for _, day := range r.WorkingDays {
		weekday, ok := weekdays[strings.ToLower(day.DayOfWeek)]
		if !ok {
			return nil, fmt.Errorf("unknown day of week %q", day.DayOfWeek)
		}

		templates := make([]updateFormPlanning.TemplateInput, 0, len(day.Templates))
		for _, t := range day.Templates {
			startingTime, err := types.NewTimeStringFromString(t.StartingTime)
			if err != nil {
				return nil, err
			}
			endingTime, err := types.NewTimeStringFromString(t.EndingTime)
			if err != nil {
				return nil, err
			}
			templates = append(templates, updateFormPlanning.TemplateInput{
				StartingTime: startingTime,
				EndingTime:   endingTime,
				IsOpen:       t.IsOpen,
				MaxCapacity:  t.MaxCapacity,
			})
		}
		days = append(days, updateFormPlanning.WorkingDayInput{
			DayOfWeek: weekday,
			Templates: templates,
		})
	}

	return &updateFormPlanning.WeekDefinitionInput{
		EffectiveFrom: effectiveFrom,
		WorkingDays:   days,
	}, nil
}

func (r *ClosingDaysRequest) toInput() (*updateFormPlanning.ClosingDaysInput, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(r.Dates))
	for _, raw := range r.Dates {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return &updateFormPlanning.ClosingDaysInput{
		StartDate: startDate,
		EndDate:   endDate,
		Dates:     dates,
	}, nil
}
