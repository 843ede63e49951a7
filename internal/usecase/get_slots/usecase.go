package get_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// maxRangeDays максимальная ширина запрашиваемого диапазона
const maxRangeDays = 366

// UseCase use case получения расписания формы в виде списка слотов
type UseCase struct {
	slotService SlotService
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotService SlotService, logger Logger) *UseCase {
	return &UseCase{
		slotService: slotService,
		logger:      logger,
	}
}

// Execute выполняет use case получения слотов
// Чтение не меняет состояние: несохраненные слоты синтезируются на лету
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlots: form=%d, range=%s..%s",
		req.FormID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Материализуем расписание
	slots, err := uc.slotService.Materialize(ctx, req.FormID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("GetSlots: failed to materialize slots for form=%d: %v", req.FormID, err)
		return nil, fmt.Errorf("%w: failed to materialize slots: %v", ErrInternal, err)
	}

	resp := &Response{Slots: make([]SlotView, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, toSlotView(s))
	}
	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.FormID <= 0 {
		return fmt.Errorf("%w: formID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	if int(req.EndDate.Sub(req.StartDate).Hours()/24) > maxRangeDays {
		return fmt.Errorf("%w: range is limited to %d days", ErrRangeTooWide, maxRangeDays)
	}

	return nil
}
