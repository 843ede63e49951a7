package update_form_planning

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	updateFormPlanning "github.com/m04kA/SMC-SlotService/internal/usecase/update_form_planning"
)

const (
	msgInvalidFormID        = "некорректный ID формы"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgOverlappingTemplates = "шаблоны рабочего дня пересекаются"
)

type Handler struct {
	useCase UpdateFormPlanningUseCase
	logger  Logger
}

func NewHandler(useCase UpdateFormPlanningUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/forms/{formId}/planning
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	formID, err := strconv.ParseInt(vars["formId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /forms/{id}/planning - Invalid form ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFormID)
		return
	}

	var req UpdatePlanningRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /forms/{id}/planning - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(formID)
	if err != nil {
		h.logger.Warn("PUT /forms/{id}/planning - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateFormPlanning.ErrOverlappingTemplates):
			h.logger.Warn("PUT /forms/{id}/planning - Overlapping templates: form_id=%d, error=%v", formID, err)
			handlers.RespondBadRequest(w, msgOverlappingTemplates)

		case errors.Is(err, updateFormPlanning.ErrInvalidInput):
			h.logger.Warn("PUT /forms/{id}/planning - Invalid input: form_id=%d, error=%v", formID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /forms/{id}/planning - Failed to update planning: form_id=%d, error=%v", formID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /forms/{id}/planning - Planning updated: form_id=%d, week_definition_id=%d, reservation_rule_id=%d",
		formID, result.WeekDefinitionID, result.ReservationRuleID)
	handlers.RespondJSON(w, http.StatusOK, &UpdatePlanningResponse{
		WeekDefinitionID:  result.WeekDefinitionID,
		ReservationRuleID: result.ReservationRuleID,
		ClosingDaysCount:  result.ClosingDaysCount,
	})
}
