package get_slots

import (
	"github.com/m04kA/SMC-SlotService/internal/domain"
	getSlots "github.com/m04kA/SMC-SlotService/internal/usecase/get_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	ID                         int64  `json:"id"`
	FormID                     int64  `json:"formId"`
	StartingDateTime           string `json:"startingDateTime"` // "2026-03-02T10:00"
	EndingDateTime             string `json:"endingDateTime"`
	MaxCapacity                int    `json:"maxCapacity"`
	NbPlacesTaken              int    `json:"nbPlacesTaken"`
	NbRemainingPlaces          int    `json:"nbRemainingPlaces"`
	NbPotentialRemainingPlaces int    `json:"nbPotentialRemainingPlaces"`
	IsOpen                     bool   `json:"isOpen"`
	IsSpecific                 bool   `json:"isSpecific"`
}

// SlotListResponse HTTP модель списка слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotListResponse {
	result := &SlotListResponse{Slots: make([]SlotResponse, 0, len(resp.Slots))}
	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			ID:                         s.ID,
			FormID:                     s.FormID,
			StartingDateTime:           s.StartingDateTime.Format(domain.DateTimeFormat),
			EndingDateTime:             s.EndingDateTime.Format(domain.DateTimeFormat),
			MaxCapacity:                s.MaxCapacity,
			NbPlacesTaken:              s.NbPlacesTaken,
			NbRemainingPlaces:          s.NbRemainingPlaces,
			NbPotentialRemainingPlaces: s.NbPotentialRemainingPlaces,
			IsOpen:                     s.IsOpen,
			IsSpecific:                 s.IsSpecific,
		})
	}
	return result
}
