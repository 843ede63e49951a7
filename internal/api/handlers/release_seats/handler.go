package release_seats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	releaseSeats "github.com/m04kA/SMC-SlotService/internal/usecase/release_seats"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgAppointmentNotFound  = "запись не найдена"
	msgAlreadyCancelled     = "запись уже отменена"
	msgForbidden            = "доступ запрещен"
	msgConcurrentCancel     = "слот изменен параллельным запросом, повторите попытку"
)

// CancelResponse HTTP модель результата отмены записи
type CancelResponse struct {
	AppointmentID     int64 `json:"appointmentId"`
	SlotID            int64 `json:"slotId"`
	NbReleasedSeats   int   `json:"nbReleasedSeats"`
	NbPlacesTaken     int   `json:"nbPlacesTaken"`
	NbRemainingPlaces int   `json:"nbRemainingPlaces"`
}

type Handler struct {
	useCase ReleaseSeatsUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseSeatsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &releaseSeats.Request{
		AppointmentID: appointmentID,
		UserID:        userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, releaseSeats.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, releaseSeats.ErrAppointmentCancelled):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Already cancelled: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, releaseSeats.ErrForbidden):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Forbidden: appointment_id=%d, user_id=%d", appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, releaseSeats.ErrConcurrentModification):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Concurrent modification: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgConcurrentCancel)

		case errors.Is(err, releaseSeats.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid input: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel: appointment_id=%d, user_id=%d, error=%v",
				appointmentID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled: appointment_id=%d, slot_id=%d, seats=%d",
		result.AppointmentID, result.SlotID, result.NbReleasedSeats)
	handlers.RespondJSON(w, http.StatusOK, &CancelResponse{
		AppointmentID:     result.AppointmentID,
		SlotID:            result.SlotID,
		NbReleasedSeats:   result.NbReleasedSeats,
		NbPlacesTaken:     result.NbPlacesTaken,
		NbRemainingPlaces: result.NbRemainingPlaces,
	})
}
