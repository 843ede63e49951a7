package domain

// Business validation constants
const (
	MinCapacityPerSlot = 1
	MaxCapacityPerSlot = 500

	MinTemplateDurationMinutes = 5
	MaxTemplateDurationMinutes = 720 // 12 hours

	MaxBookedSeatsPerAppointment = 50
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04" // YYYY-MM-DDTHH:MM
)
