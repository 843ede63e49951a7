package edit_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	editSlot "github.com/m04kA/SMC-SlotService/internal/usecase/edit_slot"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты-времени, ожидается YYYY-MM-DDTHH:MM"
	msgSlotNotFound       = "слот не найден"
	msgInvalidPeriod      = "некорректный интервал слота"
	msgConcurrentEdit     = "слот изменен параллельным запросом, повторите попытку"
)

type Handler struct {
	useCase EditSlotUseCase
	logger  Logger
}

func NewHandler(useCase EditSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/slots/{slotId}
// slotId = 0 редактирует слот, который еще не сохранялся в БД
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil || slotID < 0 {
		h.logger.Warn("PUT /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req EditSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slotID)
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editSlot.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, editSlot.ErrConcurrentModification):
			h.logger.Warn("PUT /slots/{id} - Concurrent modification: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgConcurrentEdit)

		case errors.Is(err, editSlot.ErrInvalidPeriod):
			h.logger.Warn("PUT /slots/{id} - Invalid period: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, editSlot.ErrInvalidInput):
			h.logger.Warn("PUT /slots/{id} - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /slots/{id} - Failed to edit slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/{id} - Slot edited successfully: slot_id=%d, form_id=%d", result.ID, result.FormID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
