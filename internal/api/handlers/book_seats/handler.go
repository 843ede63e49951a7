package book_seats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	bookSeats "github.com/m04kA/SMC-SlotService/internal/usecase/book_seats"
)

const (
	msgInvalidSlotID       = "некорректный ID слота"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotNotFound        = "слот не найден"
	msgSlotClosed          = "слот закрыт для записи"
	msgNotEnoughPlaces     = "недостаточно свободных мест в слоте"
	msgTooManyAppointments = "превышен лимит записей на этот слот"
	msgConcurrentBooking   = "слот изменен параллельным запросом, повторите попытку"
)

// BookSeatsRequest HTTP request model
type BookSeatsRequest struct {
	NbBookedSeats int `json:"nbBookedSeats"`
}

// AppointmentResponse HTTP модель созданной записи
type AppointmentResponse struct {
	AppointmentID     int64 `json:"appointmentId"`
	SlotID            int64 `json:"slotId"`
	UserID            int64 `json:"userId"`
	NbBookedSeats     int   `json:"nbBookedSeats"`
	NbPlacesTaken     int   `json:"nbPlacesTaken"`
	NbRemainingPlaces int   `json:"nbRemainingPlaces"`
}

type Handler struct {
	useCase BookSeatsUseCase
	logger  Logger
}

func NewHandler(useCase BookSeatsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/appointments - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /slots/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookSeatsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &bookSeats.Request{
		SlotID:        slotID,
		UserID:        userID,
		NbBookedSeats: req.NbBookedSeats,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookSeats.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/appointments - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookSeats.ErrSlotClosed):
			h.logger.Warn("POST /slots/{id}/appointments - Slot closed: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotClosed)

		case errors.Is(err, bookSeats.ErrNotEnoughPlaces):
			h.logger.Warn("POST /slots/{id}/appointments - Not enough places: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondConflict(w, msgNotEnoughPlaces)

		case errors.Is(err, bookSeats.ErrTooManyAppointments):
			h.logger.Warn("POST /slots/{id}/appointments - Too many appointments: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondConflict(w, msgTooManyAppointments)

		case errors.Is(err, bookSeats.ErrConcurrentModification):
			h.logger.Warn("POST /slots/{id}/appointments - Concurrent modification: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgConcurrentBooking)

		case errors.Is(err, bookSeats.ErrInvalidInput):
			h.logger.Warn("POST /slots/{id}/appointments - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /slots/{id}/appointments - Failed to book seats: slot_id=%d, user_id=%d, error=%v",
				slotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/appointments - Appointment created: appointment_id=%d, slot_id=%d, user_id=%d",
		result.AppointmentID, result.SlotID, userID)
	handlers.RespondJSON(w, http.StatusCreated, &AppointmentResponse{
		AppointmentID:     result.AppointmentID,
		SlotID:            result.SlotID,
		UserID:            result.UserID,
		NbBookedSeats:     result.NbBookedSeats,
		NbPlacesTaken:     result.NbPlacesTaken,
		NbRemainingPlaces: result.NbRemainingPlaces,
	})
}
