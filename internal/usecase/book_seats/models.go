package book_seats

import "time"

// Request модель запроса на бронирование мест в слоте
type Request struct {
	SlotID        int64 // ID сохраненного слота
	UserID        int64 // ID пользователя
	NbBookedSeats int   // Количество бронируемых мест
}

// Response модель ответа с созданной бронью и состоянием слота
type Response struct {
	AppointmentID int64     // ID созданной брони
	SlotID        int64     //
	UserID        int64     //
	NbBookedSeats int       //
	CreatedAt     time.Time //

	// Состояние слота после бронирования
	NbPlacesTaken              int
	NbRemainingPlaces          int
	NbPotentialRemainingPlaces int
}
