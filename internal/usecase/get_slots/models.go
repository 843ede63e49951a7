package get_slots

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// Request модель запроса списка слотов формы
type Request struct {
	FormID    int64     // ID формы записи
	StartDate time.Time // Начало диапазона (включительно)
	EndDate   time.Time // Конец диапазона (включительно)
}

// SlotView представление слота в ответе
type SlotView struct {
	ID                         int64     // 0 для несохраненных слотов
	FormID                     int64     //
	StartingDateTime           time.Time //
	EndingDateTime             time.Time //
	MaxCapacity                int       //
	NbPlacesTaken              int       //
	NbRemainingPlaces          int       //
	NbPotentialRemainingPlaces int       //
	IsOpen                     bool      //
	IsSpecific                 bool      //
}

// Response модель ответа со списком слотов
type Response struct {
	Slots []SlotView
}

func toSlotView(s *domain.Slot) SlotView {
	return SlotView{
		ID:                         s.ID,
		FormID:                     s.FormID,
		StartingDateTime:           s.Period.StartingDateTime,
		EndingDateTime:             s.Period.EndingDateTime,
		MaxCapacity:                s.MaxCapacity,
		NbPlacesTaken:              s.NbPlacesTaken,
		NbRemainingPlaces:          s.NbRemainingPlaces,
		NbPotentialRemainingPlaces: s.NbPotentialRemainingPlaces,
		IsOpen:                     s.IsOpen,
		IsSpecific:                 s.IsSpecific,
	}
}
