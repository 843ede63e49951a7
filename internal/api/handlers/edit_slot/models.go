package edit_slot

import (
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	editSlot "github.com/m04kA/SMC-SlotService/internal/usecase/edit_slot"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// EditSlotRequest HTTP request model
type EditSlotRequest struct {
	FormID           int64  `json:"formId"`
	StartingDateTime string `json:"startingDateTime"` // "2026-03-02T10:00"
	EndingDateTime   string `json:"endingDateTime"`
	MaxCapacity      int    `json:"maxCapacity"`
	IsOpen           bool   `json:"isOpen"`

	EndingTimeChanged  bool   `json:"endingTimeChanged"`
	Shift              bool   `json:"shift"`
	PreviousEndingTime string `json:"previousEndingTime,omitempty"` // "10:30"
}

// SlotResponse HTTP модель отредактированного слота
type SlotResponse struct {
	ID                         int64  `json:"id"`
	FormID                     int64  `json:"formId"`
	StartingDateTime           string `json:"startingDateTime"`
	EndingDateTime             string `json:"endingDateTime"`
	MaxCapacity                int    `json:"maxCapacity"`
	NbPlacesTaken              int    `json:"nbPlacesTaken"`
	NbRemainingPlaces          int    `json:"nbRemainingPlaces"`
	NbPotentialRemainingPlaces int    `json:"nbPotentialRemainingPlaces"`
	IsOpen                     bool   `json:"isOpen"`
	IsSpecific                 bool   `json:"isSpecific"`
	IsOverbooked               bool   `json:"isOverbooked"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditSlotRequest) ToUseCaseRequest(slotID int64) (*editSlot.Request, error) {
	start, err := time.Parse(domain.DateTimeFormat, r.StartingDateTime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(domain.DateTimeFormat, r.EndingDateTime)
	if err != nil {
		return nil, err
	}

	var previousEnding types.TimeString
	if r.PreviousEndingTime != "" {
		previousEnding, err = types.NewTimeStringFromString(r.PreviousEndingTime)
		if err != nil {
			return nil, err
		}
	}

	return &editSlot.Request{
		SlotID:             slotID,
		FormID:             r.FormID,
		StartingDateTime:   start,
		EndingDateTime:     end,
		MaxCapacity:        r.MaxCapacity,
		IsOpen:             r.IsOpen,
		EndingTimeChanged:  r.EndingTimeChanged,
		Shift:              r.Shift,
		PreviousEndingTime: previousEnding,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *editSlot.Response) *SlotResponse {
	return &SlotResponse{
		ID:                         resp.ID,
		FormID:                     resp.FormID,
		StartingDateTime:           resp.StartingDateTime.Format(domain.DateTimeFormat),
		EndingDateTime:             resp.EndingDateTime.Format(domain.DateTimeFormat),
		MaxCapacity:                resp.MaxCapacity,
		NbPlacesTaken:              resp.NbPlacesTaken,
		NbRemainingPlaces:          resp.NbRemainingPlaces,
		NbPotentialRemainingPlaces: resp.NbPotentialRemainingPlaces,
		IsOpen:                     resp.IsOpen,
		IsSpecific:                 resp.IsSpecific,
		IsOverbooked:               resp.IsOverbooked,
	}
}
