package edit_slot

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Request модель запроса на редактирование слота
type Request struct {
	SlotID int64 // 0, если редактируется еще не сохраненный слот
	FormID int64 // ID формы записи

	StartingDateTime time.Time // Начало слота
	EndingDateTime   time.Time // Новое окончание слота
	MaxCapacity      int       // Новая вместимость
	IsOpen           bool      // Открыт ли слот для записи

	// EndingTimeChanged = true, если окончание слота изменено оператором
	EndingTimeChanged bool

	// Shift = true: каскадный сдвиг последующих слотов дня,
	// false: поглощение или заполнение без сдвига
	Shift bool

	// PreviousEndingTime прежнее окончание слота (HH:MM). Для сохраненного
	// слота игнорируется и берется из БД
	PreviousEndingTime types.TimeString
}

// Response модель ответа с отредактированным слотом
type Response struct {
	ID                         int64
	FormID                     int64
	StartingDateTime           time.Time
	EndingDateTime             time.Time
	MaxCapacity                int
	NbPlacesTaken              int
	NbRemainingPlaces          int
	NbPotentialRemainingPlaces int
	IsOpen                     bool
	IsSpecific                 bool
	IsOverbooked               bool
}

func toResponse(s *domain.Slot) *Response {
	return &Response{
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
		IsOverbooked:               s.IsOverbooked(),
	}
}
