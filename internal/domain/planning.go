package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// TimeSlotTemplate каноническая форма неотредактированного слота
// внутри одного рабочего дня
type TimeSlotTemplate struct {
	ID           int64
	WorkingDayID int64
	StartingTime types.TimeString
	EndingTime   types.TimeString
	IsOpen       bool

	// MaxCapacity = 0 означает "наследовать из ReservationRule"
	MaxCapacity int
}

// DurationMinutes возвращает длительность шаблона в минутах
func (t *TimeSlotTemplate) DurationMinutes() int {
	start, err := t.StartingTime.Minutes()
	if err != nil {
		return 0
	}
	end, err := t.EndingTime.Minutes()
	if err != nil {
		return 0
	}
	return end - start
}

// WorkingDay набор шаблонов, определяющий часы работы одного дня недели
// Шаблоны не пересекаются и упорядочены по времени начала
type WorkingDay struct {
	ID               int64
	WeekDefinitionID int64
	DayOfWeek        time.Weekday
	Templates        []TimeSlotTemplate
}

// MinStartingTime возвращает минимальное время начала среди шаблонов дня
func (wd *WorkingDay) MinStartingTime() (types.TimeString, bool) {
	if len(wd.Templates) == 0 {
		return "", false
	}
	min := wd.Templates[0].StartingTime
	for _, t := range wd.Templates[1:] {
		if t.StartingTime.IsBefore(min) {
			min = t.StartingTime
		}
	}
	return min, true
}

// MaxEndingTime возвращает максимальное время окончания среди шаблонов дня
func (wd *WorkingDay) MaxEndingTime() (types.TimeString, bool) {
	if len(wd.Templates) == 0 {
		return "", false
	}
	max := wd.Templates[0].EndingTime
	for _, t := range wd.Templates[1:] {
		if t.EndingTime.IsAfter(max) {
			max = t.EndingTime
		}
	}
	return max, true
}

// MinSlotDurationMinutes возвращает минимальную длительность шаблона дня
func (wd *WorkingDay) MinSlotDurationMinutes() int {
	min := 0
	for _, t := range wd.Templates {
		d := t.DurationMinutes()
		if d > 0 && (min == 0 || d < min) {
			min = d
		}
	}
	return min
}

// TemplateStartingAt возвращает шаблон, начинающийся ровно в указанное время
func (wd *WorkingDay) TemplateStartingAt(t types.TimeString) *TimeSlotTemplate {
	for i := range wd.Templates {
		if wd.Templates[i].StartingTime == t {
			return &wd.Templates[i]
		}
	}
	return nil
}

// TemplatesAfter возвращает шаблоны, начинающиеся строго позже указанного времени
func (wd *WorkingDay) TemplatesAfter(t types.TimeString) []TimeSlotTemplate {
	var result []TimeSlotTemplate
	for _, tpl := range wd.Templates {
		if tpl.StartingTime.IsAfter(t) {
			result = append(result, tpl)
		}
	}
	return result
}

// WeekDefinition датированная версия недельного расписания
// Отсутствие WorkingDay для дня недели означает, что день закрыт
type WeekDefinition struct {
	ID            int64
	FormID        int64
	EffectiveFrom time.Time
	WorkingDays   []WorkingDay
}

// WorkingDayFor возвращает рабочий день для дня недели или nil, если день закрыт
func (w *WeekDefinition) WorkingDayFor(day time.Weekday) *WorkingDay {
	for i := range w.WorkingDays {
		if w.WorkingDays[i].DayOfWeek == day {
			return &w.WorkingDays[i]
		}
	}
	return nil
}

// MinStartingTime возвращает минимальное время начала по всем рабочим дням недели
func (w *WeekDefinition) MinStartingTime() (types.TimeString, bool) {
	var min types.TimeString
	found := false
	for i := range w.WorkingDays {
		if t, ok := w.WorkingDays[i].MinStartingTime(); ok {
			if !found || t.IsBefore(min) {
				min = t
				found = true
			}
		}
	}
	return min, found
}

// MaxEndingTime возвращает максимальное время окончания по всем рабочим дням недели
func (w *WeekDefinition) MaxEndingTime() (types.TimeString, bool) {
	var max types.TimeString
	found := false
	for i := range w.WorkingDays {
		if t, ok := w.WorkingDays[i].MaxEndingTime(); ok {
			if !found || t.IsAfter(max) {
				max = t
				found = true
			}
		}
	}
	return max, found
}

// MinSlotDurationMinutes возвращает минимальную длительность шаблона
// по всем рабочим дням недели
func (w *WeekDefinition) MinSlotDurationMinutes() int {
	min := 0
	for i := range w.WorkingDays {
		d := w.WorkingDays[i].MinSlotDurationMinutes()
		if d > 0 && (min == 0 || d < min) {
			min = d
		}
	}
	return min
}

// ReservationRule датированная версия политики бронирования формы
type ReservationRule struct {
	ID                 int64
	FormID             int64
	EffectiveFrom      time.Time
	MaxCapacityPerSlot int

	// Политики бронирования, не влияющие на арифметику слотов
	MaxAppointmentsPerUser  int // 0 = без ограничения
	MinBookingNoticeMinutes int
}

// ClosingDay принудительное закрытие формы на целый день
type ClosingDay struct {
	ID     int64
	FormID int64
	Date   time.Time
}
