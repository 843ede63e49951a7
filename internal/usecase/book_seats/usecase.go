package book_seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/rules"
	"github.com/m04kA/SMC-SlotService/internal/service/slots"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
)

// RuleResolver интерфейс сервиса разрешения правил планирования
type RuleResolver interface {
	ResolveForDate(ctx context.Context, formID int64, date time.Time) (rules.DayRules, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UseCase use case бронирования мест в слоте
type UseCase struct {
	slotService     SlotService
	appointmentRepo AppointmentRepository
	resolver        RuleResolver
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotService SlotService,
	appointmentRepo AppointmentRepository,
	resolver RuleResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotService:     slotService,
		appointmentRepo: appointmentRepo,
		resolver:        resolver,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case бронирования мест
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка мест и списание выполняются над одним и тем же состоянием слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSeats: slot=%d, user=%d, seats=%d", req.SlotID, req.UserID, req.NbBookedSeats)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSeats: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем слот с блокировкой строки
		slot, err := uc.slotService.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slots.ErrSlotNotFound) {
				uc.logger.Warn("BookSeats: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("BookSeats: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Проверяем доступность слота
		if !slot.IsOpen {
			uc.logger.Warn("BookSeats: slot id=%d is closed", req.SlotID)
			return ErrSlotClosed
		}
		if req.NbBookedSeats > slot.NbRemainingPlaces {
			uc.logger.Warn("BookSeats: slot id=%d has %d remaining places, %d requested",
				req.SlotID, slot.NbRemainingPlaces, req.NbBookedSeats)
			return ErrNotEnoughPlaces
		}

		// 2.3. Проверяем политики бронирования формы
		if err := uc.checkBookingPolicies(txCtx, slot, req); err != nil {
			return err
		}

		// 2.4. Списываем места и сохраняем слот
		slots.ApplyBooking(slot, req.NbBookedSeats)
		if _, err := uc.slotService.Save(txCtx, slot); err != nil {
			uc.logger.Error("BookSeats: failed to save slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to save slot: %v", ErrInternal, err)
		}

		// 2.5. Создаем бронь
		appointment, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			SlotID:        req.SlotID,
			UserID:        req.UserID,
			NbBookedSeats: req.NbBookedSeats,
		})
		if err != nil {
			uc.logger.Error("BookSeats: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = &Response{
			AppointmentID:              appointment.ID,
			SlotID:                     slot.ID,
			UserID:                     req.UserID,
			NbBookedSeats:              req.NbBookedSeats,
			CreatedAt:                  appointment.CreatedAt,
			NbPlacesTaken:              slot.NbPlacesTaken,
			NbRemainingPlaces:          slot.NbRemainingPlaces,
			NbPotentialRemainingPlaces: slot.NbPotentialRemainingPlaces,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("BookSeats: slot=%d booking lost serialization race", req.SlotID)
			return nil, ErrConcurrentModification
		}
		return nil, err
	}

	uc.logger.Info("BookSeats: appointment=%d created on slot=%d, %d places remaining",
		result.AppointmentID, result.SlotID, result.NbRemainingPlaces)
	return result, nil
}

// checkBookingPolicies проверяет ограничения правила резервирования:
// лимит броней пользователя на слот и минимальный интервал до начала
func (uc *UseCase) checkBookingPolicies(ctx context.Context, slot *domain.Slot, req *Request) error {
	dayRules, err := uc.resolver.ResolveForDate(ctx, slot.FormID, slot.Date())
	if err != nil {
		uc.logger.Error("BookSeats: failed to resolve rules for form=%d: %v", slot.FormID, err)
		return fmt.Errorf("%w: failed to resolve rules: %v", ErrInternal, err)
	}
	rule := dayRules.ReservationRule
	if rule == nil {
		return nil
	}

	if rule.MinBookingNoticeMinutes > 0 {
		deadline := slot.Period.StartingDateTime.Add(-time.Duration(rule.MinBookingNoticeMinutes) * time.Minute)
		if uc.timeProvider.Now().After(deadline) {
			uc.logger.Warn("BookSeats: slot=%d booking notice of %d minutes violated", slot.ID, rule.MinBookingNoticeMinutes)
			return fmt.Errorf("%w: booking requires %d minutes notice", ErrInvalidInput, rule.MinBookingNoticeMinutes)
		}
	}

	if rule.MaxAppointmentsPerUser > 0 {
		existing, err := uc.appointmentRepo.GetBySlotID(ctx, slot.ID)
		if err != nil {
			uc.logger.Error("BookSeats: failed to load appointments for slot=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
		}

		active := 0
		for _, a := range existing {
			if a.UserID == req.UserID && a.IsActive() {
				active++
			}
		}
		if active >= rule.MaxAppointmentsPerUser {
			uc.logger.Warn("BookSeats: user=%d reached limit of %d appointments on slot=%d",
				req.UserID, rule.MaxAppointmentsPerUser, slot.ID)
			return ErrTooManyAppointments
		}
	}

	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.NbBookedSeats <= 0 {
		return fmt.Errorf("%w: nbBookedSeats must be positive", ErrInvalidInput)
	}
	return nil
}
