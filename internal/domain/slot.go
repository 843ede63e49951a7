package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Slot конкретный бронируемый (или закрытый) интервал времени формы
// ID = 0 означает, что слот еще не сохранен (синтезирован на лету)
type Slot struct {
	ID     int64
	FormID int64
	Period Period

	MaxCapacity                int
	NbPlacesTaken              int
	NbRemainingPlaces          int
	NbPotentialRemainingPlaces int

	IsOpen bool

	// IsSpecific = true, если атрибуты слота отредактированы и больше не
	// совпадают с шаблоном - такой слот обязан храниться в БД
	IsSpecific bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSlot собирает слот со всеми производными полями сразу,
// не оставляя частично инициализированных состояний
func NewSlot(formID int64, period Period, maxCapacity, nbRemaining, nbPotentialRemaining, nbTaken int, isOpen, isSpecific bool) *Slot {
	return &Slot{
		FormID:                     formID,
		Period:                     period,
		MaxCapacity:                maxCapacity,
		NbRemainingPlaces:          nbRemaining,
		NbPotentialRemainingPlaces: nbPotentialRemaining,
		NbPlacesTaken:              nbTaken,
		IsOpen:                     isOpen,
		IsSpecific:                 isSpecific,
	}
}

// IsPersisted возвращает true, если слот сохранен в БД
func (s *Slot) IsPersisted() bool {
	return s.ID != 0
}

// Date возвращает календарную дату слота
func (s *Slot) Date() time.Time {
	return s.Period.Date()
}

// StartingTime возвращает время начала слота как HH:MM
func (s *Slot) StartingTime() types.TimeString {
	return types.NewTimeString(s.Period.StartingDateTime)
}

// EndingTime возвращает время окончания слота как HH:MM
func (s *Slot) EndingTime() types.TimeString {
	return types.NewTimeString(s.Period.EndingDateTime)
}

// IsFull возвращает true, если свободных мест не осталось
func (s *Slot) IsFull() bool {
	return s.NbRemainingPlaces <= 0
}

// IsOverbooked возвращает true, если занято больше мест, чем вмещает слот
// Такое состояние возможно после уменьшения вместимости и не исправляется
// автоматически - снятие чужой брони является решением оператора
func (s *Slot) IsOverbooked() bool {
	return s.NbPlacesTaken > s.MaxCapacity
}

// HasAppointments возвращает true, если на слот есть активные брони
func (s *Slot) HasAppointments() bool {
	return s.NbPlacesTaken > 0
}
