package release_seats

import (
	"context"
	"errors"
	"fmt"

	storage "github.com/m04kA/SMC-SlotService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SlotService/internal/service/slots"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
)

// Request модель запроса на отмену брони
type Request struct {
	AppointmentID int64 // ID брони
	UserID        int64 // ID пользователя, отменяющего бронь
}

// Response модель ответа с состоянием слота после отмены
type Response struct {
	AppointmentID   int64
	SlotID          int64
	NbReleasedSeats int

	NbPlacesTaken              int
	NbRemainingPlaces          int
	NbPotentialRemainingPlaces int
}

// UseCase use case отмены брони с возвратом мест в слот
type UseCase struct {
	slotService     SlotService
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotService SlotService, appointmentRepo AppointmentRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		slotService:     slotService,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case отмены брони
// Отмена и возврат мест выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReleaseSeats: appointment=%d, user=%d", req.AppointmentID, req.UserID)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	var result *Response

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронь с блокировкой строки
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, storage.ErrAppointmentNotFound) {
				uc.logger.Warn("ReleaseSeats: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("ReleaseSeats: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if appointment.UserID != req.UserID {
			uc.logger.Warn("ReleaseSeats: appointment id=%d belongs to user=%d, not user=%d",
				req.AppointmentID, appointment.UserID, req.UserID)
			return ErrForbidden
		}
		if appointment.IsCancelled {
			uc.logger.Warn("ReleaseSeats: appointment id=%d is already cancelled", req.AppointmentID)
			return ErrAppointmentCancelled
		}

		// 2.2. Получаем слот брони с блокировкой строки
		slot, err := uc.slotService.GetByID(txCtx, appointment.SlotID)
		if err != nil {
			uc.logger.Error("ReleaseSeats: failed to get slot id=%d: %v", appointment.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.3. Отменяем бронь
		if err := uc.appointmentRepo.Cancel(txCtx, appointment.ID); err != nil {
			uc.logger.Error("ReleaseSeats: failed to cancel appointment id=%d: %v", appointment.ID, err)
			return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
		}

		// 2.4. Возвращаем места в слот
		slots.ReleaseBooking(slot, appointment.NbBookedSeats)
		if _, err := uc.slotService.Save(txCtx, slot); err != nil {
			uc.logger.Error("ReleaseSeats: failed to save slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to save slot: %v", ErrInternal, err)
		}

		result = &Response{
			AppointmentID:              appointment.ID,
			SlotID:                     slot.ID,
			NbReleasedSeats:            appointment.NbBookedSeats,
			NbPlacesTaken:              slot.NbPlacesTaken,
			NbRemainingPlaces:          slot.NbRemainingPlaces,
			NbPotentialRemainingPlaces: slot.NbPotentialRemainingPlaces,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("ReleaseSeats: appointment=%d cancel lost serialization race", req.AppointmentID)
			return nil, ErrConcurrentModification
		}
		return nil, err
	}

	uc.logger.Info("ReleaseSeats: appointment=%d cancelled, %d seats returned to slot=%d",
		result.AppointmentID, result.NbReleasedSeats, result.SlotID)
	return result, nil
}
