package domain

import "time"

// Appointment бронь мест на конкретном слоте
// Жизненный цикл брони управляет счётчиками слота через CapacityLedger
type Appointment struct {
	ID            int64
	SlotID        int64
	UserID        int64
	NbBookedSeats int
	IsCancelled   bool

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронь удерживает места на слоте
func (a *Appointment) IsActive() bool {
	return !a.IsCancelled
}
