package get_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/service/slots"
)

// Request модель запроса слота по идентификатору
type Request struct {
	SlotID int64
}

// Response модель ответа с одним слотом
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
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// UseCase use case получения сохраненного слота
type UseCase struct {
	slotService SlotService
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotService SlotService, logger Logger) *UseCase {
	return &UseCase{
		slotService: slotService,
		logger:      logger,
	}
}

// Execute выполняет use case получения слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	slot, err := uc.slotService.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slots.ErrSlotNotFound) {
			uc.logger.Warn("GetSlot: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("GetSlot: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	return &Response{
		ID:                         slot.ID,
		FormID:                     slot.FormID,
		StartingDateTime:           slot.Period.StartingDateTime,
		EndingDateTime:             slot.Period.EndingDateTime,
		MaxCapacity:                slot.MaxCapacity,
		NbPlacesTaken:              slot.NbPlacesTaken,
		NbRemainingPlaces:          slot.NbRemainingPlaces,
		NbPotentialRemainingPlaces: slot.NbPotentialRemainingPlaces,
		IsOpen:                     slot.IsOpen,
		IsSpecific:                 slot.IsSpecific,
		CreatedAt:                  slot.CreatedAt,
		UpdatedAt:                  slot.UpdatedAt,
	}, nil
}
