package get_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	getSlots "github.com/m04kA/SMC-SlotService/internal/usecase/get_slots"
)

const (
	msgInvalidFormID = "некорректный ID формы"
	msgInvalidDates  = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgInvalidRange  = "некорректный диапазон дат"
	msgRangeTooWide  = "запрошенный диапазон дат слишком широкий"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/forms/{formId}/slots?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	formID, err := strconv.ParseInt(vars["formId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /forms/{id}/slots - Invalid form ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormID)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /forms/{id}/slots - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, r.URL.Query().Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /forms/{id}/slots - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		FormID:    formID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrRangeTooWide):
			h.logger.Warn("GET /forms/{id}/slots - Range too wide: form_id=%d", formID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /forms/{id}/slots - Invalid input: form_id=%d, error=%v", formID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /forms/{id}/slots - Failed to get slots: form_id=%d, error=%v", formID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
