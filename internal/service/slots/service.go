package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	storage "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
)

// Service сервис работы со слотами: материализация расписания,
// сохранение изменений и рассылка событий слушателям
type Service struct {
	slotRepo SlotRepository
	resolver RuleResolver
	notifier EventNotifier
	metrics  MetricsCollector
	logger   Logger
}

func NewService(slotRepo SlotRepository, resolver RuleResolver, notifier EventNotifier, metrics MetricsCollector, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		resolver: resolver,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetByID возвращает сохраненный слот по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return nil, fmt.Errorf("%w: GetByID - slot %d", ErrSlotNotFound, id)
		}
		return nil, fmt.Errorf("%w: GetByID - get slot: %v", ErrInternal, err)
	}
	return slot, nil
}

// RangePersisted возвращает сохраненные слоты формы, начинающиеся в диапазоне
func (s *Service) RangePersisted(ctx context.Context, formID int64, start, end time.Time) ([]*domain.Slot, error) {
	slots, err := s.slotRepo.GetByFormAndRange(ctx, formID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: RangePersisted - get slots: %v", ErrInternal, err)
	}
	return slots, nil
}

// GetSpecificSlots возвращает все отредактированные слоты формы
func (s *Service) GetSpecificSlots(ctx context.Context, formID int64) ([]*domain.Slot, error) {
	slots, err := s.slotRepo.GetSpecificByForm(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecificSlots - get slots: %v", ErrInternal, err)
	}
	return slots, nil
}

// FindSlotWithMaxDate возвращает слот формы с самой поздней датой начала
func (s *Service) FindSlotWithMaxDate(ctx context.Context, formID int64) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetWithMaxDate(ctx, formID)
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return nil, fmt.Errorf("%w: FindSlotWithMaxDate - form %d", ErrSlotNotFound, formID)
		}
		return nil, fmt.Errorf("%w: FindSlotWithMaxDate - get slot: %v", ErrInternal, err)
	}
	return slot, nil
}

// Save сохраняет слот: создает новый или обновляет существующий.
// Слушатели уведомляются после успешной записи.
func (s *Service) Save(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if !slot.IsPersisted() {
		created, err := s.slotRepo.Create(ctx, slot)
		if err != nil {
			return nil, fmt.Errorf("%w: Save - create slot: %v", ErrInternal, err)
		}
		s.notifier.NotifySlotCreated(ctx, created)
		return created, nil
	}

	if err := s.slotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return nil, fmt.Errorf("%w: Save - slot %d", ErrSlotNotFound, slot.ID)
		}
		return nil, fmt.Errorf("%w: Save - update slot: %v", ErrInternal, err)
	}
	s.notifier.NotifySlotUpdated(ctx, slot)
	return slot, nil
}

// Delete удаляет сохраненный слот вместе с его бронями (каскад в БД)
func (s *Service) Delete(ctx context.Context, slot *domain.Slot) error {
	if !slot.IsPersisted() {
		return nil
	}

	if slot.HasAppointments() {
		s.logger.Warn("Delete: slot %d has %d taken places, appointments will be cancelled", slot.ID, slot.NbPlacesTaken)
	}

	if err := s.slotRepo.Delete(ctx, slot.ID); err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return fmt.Errorf("%w: Delete - slot %d", ErrSlotNotFound, slot.ID)
		}
		return fmt.Errorf("%w: Delete - delete slot: %v", ErrInternal, err)
	}
	s.notifier.NotifySlotRemoved(ctx, slot)
	return nil
}
