package update_form_planning

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// UseCase use case изменения планирования формы. Новые версии расписания
// и правил не переписывают историю: прежние версии остаются действовать
// для дат до вступления новых в силу.
type UseCase struct {
	planningRepo PlanningRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(planningRepo PlanningRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		planningRepo: planningRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case изменения планирования
// Все присланные секции применяются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateFormPlanning: form=%d, weekDefinition=%t, reservationRule=%t, closingDays=%t",
		req.FormID, req.WeekDefinition != nil, req.ReservationRule != nil, req.ClosingDays != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateFormPlanning: validation failed: %v", err)
		return nil, err
	}

	result := &Response{}

	// 2. Применяем изменения в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if req.WeekDefinition != nil {
			created, err := uc.planningRepo.CreateWeekDefinition(txCtx, toWeekDefinition(req))
			if err != nil {
				uc.logger.Error("UpdateFormPlanning: failed to create week definition: %v", err)
				return fmt.Errorf("%w: failed to create week definition: %v", ErrInternal, err)
			}
			result.WeekDefinitionID = created.ID
		}

		if req.ReservationRule != nil {
			created, err := uc.planningRepo.CreateReservationRule(txCtx, toReservationRule(req))
			if err != nil {
				uc.logger.Error("UpdateFormPlanning: failed to create reservation rule: %v", err)
				return fmt.Errorf("%w: failed to create reservation rule: %v", ErrInternal, err)
			}
			result.ReservationRuleID = created.ID
		}

		if req.ClosingDays != nil {
			cd := req.ClosingDays
			if err := uc.planningRepo.ReplaceClosingDays(txCtx, req.FormID, cd.StartDate, cd.EndDate, cd.Dates); err != nil {
				uc.logger.Error("UpdateFormPlanning: failed to replace closing days: %v", err)
				return fmt.Errorf("%w: failed to replace closing days: %v", ErrInternal, err)
			}
			result.ClosingDaysCount = len(cd.Dates)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func toWeekDefinition(req *Request) *domain.WeekDefinition {
	input := req.WeekDefinition

	days := make([]domain.WorkingDay, 0, len(input.WorkingDays))
	for _, day := range input.WorkingDays {
		templates := make([]domain.TimeSlotTemplate, 0, len(day.Templates))
		for _, t := range day.Templates {
			templates = append(templates, domain.TimeSlotTemplate{
				StartingTime: t.StartingTime,
				EndingTime:   t.EndingTime,
				IsOpen:       t.IsOpen,
				MaxCapacity:  t.MaxCapacity,
			})
		}
		days = append(days, domain.WorkingDay{
			DayOfWeek: day.DayOfWeek,
			Templates: templates,
		})
	}

	return &domain.WeekDefinition{
		FormID:        req.FormID,
		EffectiveFrom: input.EffectiveFrom,
		WorkingDays:   days,
	}
}

func toReservationRule(req *Request) *domain.ReservationRule {
	input := req.ReservationRule
	return &domain.ReservationRule{
		FormID:                  req.FormID,
		EffectiveFrom:           input.EffectiveFrom,
		MaxCapacityPerSlot:      input.MaxCapacityPerSlot,
		MaxAppointmentsPerUser:  input.MaxAppointmentsPerUser,
		MinBookingNoticeMinutes: input.MinBookingNoticeMinutes,
	}
}
