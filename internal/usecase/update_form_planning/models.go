package update_form_planning

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// TemplateInput шаблон слота рабочего дня
type TemplateInput struct {
	StartingTime types.TimeString
	EndingTime   types.TimeString
	IsOpen       bool
	MaxCapacity  int // 0 = наследовать из правила резервирования
}

// WorkingDayInput рабочий день недельного шаблона
type WorkingDayInput struct {
	DayOfWeek time.Weekday
	Templates []TemplateInput
}

// WeekDefinitionInput новая версия недельного расписания
type WeekDefinitionInput struct {
	EffectiveFrom time.Time
	WorkingDays   []WorkingDayInput
}

// ReservationRuleInput новая версия политики бронирования
type ReservationRuleInput struct {
	EffectiveFrom           time.Time
	MaxCapacityPerSlot      int
	MaxAppointmentsPerUser  int
	MinBookingNoticeMinutes int
}

// ClosingDaysInput полная замена закрытых дней в диапазоне
type ClosingDaysInput struct {
	StartDate time.Time
	EndDate   time.Time
	Dates     []time.Time
}

// Request модель запроса на изменение планирования формы
// Каждая секция опциональна, все присланные применяются атомарно
type Request struct {
	FormID          int64
	WeekDefinition  *WeekDefinitionInput
	ReservationRule *ReservationRuleInput
	ClosingDays     *ClosingDaysInput
}

// Response модель ответа с идентификаторами созданных версий
type Response struct {
	WeekDefinitionID  int64 // 0, если секция не присылалась
	ReservationRuleID int64 // 0, если секция не присылалась
	ClosingDaysCount  int
}
