package edit_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/slots"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
)

// UseCase use case редактирования слота: изменение вместимости, открытости
// и окончания с поглощением соседей или каскадным сдвигом остатка дня
type UseCase struct {
	slotService SlotService
	resolver    RuleResolver
	txManager   TransactionManager
	metrics     MetricsCollector
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotService SlotService, resolver RuleResolver, txManager TransactionManager, metrics MetricsCollector, logger Logger) *UseCase {
	return &UseCase{
		slotService: slotService,
		resolver:    resolver,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case редактирования слота
// Вся правка, включая каскадные изменения соседних слотов, выполняется
// в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditSlot: slot=%d, form=%d, start=%s, end=%s, capacity=%d, open=%t, endChanged=%t, shift=%t",
		req.SlotID, req.FormID,
		req.StartingDateTime.Format(domain.DateTimeFormat), req.EndingDateTime.Format(domain.DateTimeFormat),
		req.MaxCapacity, req.IsOpen, req.EndingTimeChanged, req.Shift)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditSlot: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Slot

	// 2. Выполняем правку в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем прежнее состояние слота (с блокировкой строки)
		oldSlot, err := uc.loadOldSlot(txCtx, req)
		if err != nil {
			return err
		}

		// 2.2. Собираем новое состояние слота
		slot := buildSlot(req, oldSlot)

		// 2.3. Пересчитываем счетчики мест от прежнего состояния
		uc.reconcile(slot, oldSlot)

		// 2.4. Определяем, отличается ли слот от канона
		specific, err := uc.slotService.IsSpecificSlot(txCtx, slot)
		if err != nil {
			uc.logger.Error("EditSlot: failed to classify slot: %v", err)
			return fmt.Errorf("%w: failed to classify slot: %v", ErrInternal, err)
		}
		slot.IsSpecific = specific

		// 2.5. Применяем правку
		switch {
		case !req.EndingTimeChanged:
			result, err = uc.slotService.Save(txCtx, slot)
			return err
		case !req.Shift:
			result, err = uc.editWithoutShift(txCtx, slot)
			return err
		default:
			result, err = uc.editWithShift(txCtx, slot, previousEnding(req, oldSlot))
			return err
		}
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("EditSlot: slot=%d edit lost serialization race", req.SlotID)
			return nil, ErrConcurrentModification
		}
		return nil, err
	}

	if result.IsOverbooked() {
		uc.logger.Warn("EditSlot: slot=%d is overbooked: %d places taken with capacity %d",
			result.ID, result.NbPlacesTaken, result.MaxCapacity)
		uc.metrics.IncOverbooked()
	}

	return toResponse(result), nil
}

// loadOldSlot возвращает прежнее состояние сохраненного слота или nil
// для слота, которого еще нет в БД
func (uc *UseCase) loadOldSlot(ctx context.Context, req *Request) (*domain.Slot, error) {
	if req.SlotID == 0 {
		return nil, nil
	}

	oldSlot, err := uc.slotService.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slots.ErrSlotNotFound) {
			uc.logger.Warn("EditSlot: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("EditSlot: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}
	return oldSlot, nil
}

// buildSlot собирает редактируемый слот из запроса
func buildSlot(req *Request, oldSlot *domain.Slot) *domain.Slot {
	period := domain.Period{
		StartingDateTime: req.StartingDateTime,
		EndingDateTime:   req.EndingDateTime,
	}
	slot := domain.NewSlot(req.FormID, period, req.MaxCapacity, req.MaxCapacity, req.MaxCapacity, 0, req.IsOpen, false)
	if oldSlot != nil {
		slot.ID = oldSlot.ID
		slot.CreatedAt = oldSlot.CreatedAt
	}
	return slot
}

// reconcile переносит счетчики мест из прежнего состояния с учетом
// изменения вместимости. Новый слот начинает с полной вместимости.
func (uc *UseCase) reconcile(slot, oldSlot *domain.Slot) {
	if oldSlot == nil {
		return
	}
	slots.ReconcileCapacityChange(slot, oldSlot)
}

// previousEnding возвращает прежнее окончание слота: из БД для
// сохраненного слота, из запроса для синтезированного
func previousEnding(req *Request, oldSlot *domain.Slot) domain.Period {
	if oldSlot != nil {
		return oldSlot.Period
	}
	return domain.Period{
		StartingDateTime: req.StartingDateTime,
		EndingDateTime:   req.PreviousEndingTime.At(req.StartingDateTime),
	}
}
