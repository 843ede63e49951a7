package get_form_planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/slots"
)

// Request модель запроса правил планирования формы
type Request struct {
	FormID    int64     // ID формы записи
	StartDate time.Time // Начало диапазона закрытых дней
	EndDate   time.Time // Конец диапазона закрытых дней
}

// Response модель ответа с полным планированием формы
type Response struct {
	WeekDefinitions  []*domain.WeekDefinition
	ReservationRules []*domain.ReservationRule
	ClosingDays      []time.Time

	// Отредактированные слоты формы и горизонт расписания
	SpecificSlots []*domain.Slot
	MaxSlotDate   time.Time // нулевое время, если сохраненных слотов нет
}

// UseCase use case получения правил планирования формы
type UseCase struct {
	planningRepo PlanningRepository
	slotService  SlotService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(planningRepo PlanningRepository, slotService SlotService, logger Logger) *UseCase {
	return &UseCase{
		planningRepo: planningRepo,
		slotService:  slotService,
		logger:       logger,
	}
}

// Execute выполняет use case получения планирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.FormID <= 0 {
		return nil, fmt.Errorf("%w: formID must be positive", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	weekDefs, err := uc.planningRepo.GetWeekDefinitionsByForm(ctx, req.FormID)
	if err != nil {
		uc.logger.Error("GetFormPlanning: failed to get week definitions for form=%d: %v", req.FormID, err)
		return nil, fmt.Errorf("%w: failed to get week definitions: %v", ErrInternal, err)
	}

	rules, err := uc.planningRepo.GetReservationRulesByForm(ctx, req.FormID)
	if err != nil {
		uc.logger.Error("GetFormPlanning: failed to get reservation rules for form=%d: %v", req.FormID, err)
		return nil, fmt.Errorf("%w: failed to get reservation rules: %v", ErrInternal, err)
	}

	closingDays, err := uc.planningRepo.GetClosingDays(ctx, req.FormID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("GetFormPlanning: failed to get closing days for form=%d: %v", req.FormID, err)
		return nil, fmt.Errorf("%w: failed to get closing days: %v", ErrInternal, err)
	}

	specificSlots, err := uc.slotService.GetSpecificSlots(ctx, req.FormID)
	if err != nil {
		uc.logger.Error("GetFormPlanning: failed to get specific slots for form=%d: %v", req.FormID, err)
		return nil, fmt.Errorf("%w: failed to get specific slots: %v", ErrInternal, err)
	}

	var maxSlotDate time.Time
	maxSlot, err := uc.slotService.FindSlotWithMaxDate(ctx, req.FormID)
	switch {
	case err == nil:
		maxSlotDate = maxSlot.Date()
	case errors.Is(err, slots.ErrSlotNotFound):
		// У формы еще нет сохраненных слотов
	default:
		uc.logger.Error("GetFormPlanning: failed to find max date slot for form=%d: %v", req.FormID, err)
		return nil, fmt.Errorf("%w: failed to find max date slot: %v", ErrInternal, err)
	}

	return &Response{
		WeekDefinitions:  weekDefs,
		ReservationRules: rules,
		ClosingDays:      closingDays,
		SpecificSlots:    specificSlots,
		MaxSlotDate:      maxSlotDate,
	}, nil
}
