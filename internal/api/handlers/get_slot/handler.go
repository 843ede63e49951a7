package get_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	getSlot "github.com/m04kA/SMC-SlotService/internal/usecase/get_slot"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "слот не найден"
)

// SlotResponse HTTP модель слота
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
	CreatedAt                  string `json:"createdAt"`
	UpdatedAt                  string `json:"updatedAt"`
}

type Handler struct {
	useCase GetSlotUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlot.Request{SlotID: slotID})
	if err != nil {
		switch {
		case errors.Is(err, getSlot.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, getSlot.ErrInvalidInput):
			h.logger.Warn("GET /slots/{id} - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		default:
			h.logger.Error("GET /slots/{id} - Failed to get slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &SlotResponse{
		ID:                         result.ID,
		FormID:                     result.FormID,
		StartingDateTime:           result.StartingDateTime.Format(domain.DateTimeFormat),
		EndingDateTime:             result.EndingDateTime.Format(domain.DateTimeFormat),
		MaxCapacity:                result.MaxCapacity,
		NbPlacesTaken:              result.NbPlacesTaken,
		NbRemainingPlaces:          result.NbRemainingPlaces,
		NbPotentialRemainingPlaces: result.NbPotentialRemainingPlaces,
		IsOpen:                     result.IsOpen,
		IsSpecific:                 result.IsSpecific,
		CreatedAt:                  result.CreatedAt.Format(domain.DateTimeFormat),
		UpdatedAt:                  result.UpdatedAt.Format(domain.DateTimeFormat),
	})
}
