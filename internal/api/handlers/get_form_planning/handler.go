package get_form_planning

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/domain"
	getFormPlanning "github.com/m04kA/SMC-SlotService/internal/usecase/get_form_planning"
)

const (
	msgInvalidFormID = "некорректный ID формы"
	msgInvalidDates  = "некорректный формат дат, ожидается YYYY-MM-DD"
)

// closingDaysDefaultRangeDays диапазон закрытых дней по умолчанию
const closingDaysDefaultRangeDays = 365

type Handler struct {
	useCase GetFormPlanningUseCase
	logger  Logger
}

func NewHandler(useCase GetFormPlanningUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/forms/{formId}/planning?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
// Диапазон дат ограничивает только список закрытых дней
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	formID, err := strconv.ParseInt(vars["formId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /forms/{id}/planning - Invalid form ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormID)
		return
	}

	startDate, endDate, err := parseRange(r)
	if err != nil {
		h.logger.Warn("GET /forms/{id}/planning - Invalid date range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getFormPlanning.Request{
		FormID:    formID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getFormPlanning.ErrInvalidInput):
			h.logger.Warn("GET /forms/{id}/planning - Invalid input: form_id=%d, error=%v", formID, err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		default:
			h.logger.Error("GET /forms/{id}/planning - Failed to get planning: form_id=%d, error=%v", formID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	startRaw := r.URL.Query().Get("startDate")
	endRaw := r.URL.Query().Get("endDate")

	if startRaw == "" && endRaw == "" {
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 0, closingDaysDefaultRangeDays), nil
	}

	start, err := time.Parse(domain.DateFormat, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(domain.DateFormat, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
