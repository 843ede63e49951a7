package listeners

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// SlotEvent тип события жизненного цикла слота
type SlotEvent string

const (
	SlotCreated SlotEvent = "created"
	SlotUpdated SlotEvent = "updated"
	SlotRemoved SlotEvent = "removed"
)

// SlotListener получатель событий слотов
// Вызовы fire-and-forget: ошибка слушателя не прерывает мутацию
type SlotListener interface {
	OnSlotEvent(ctx context.Context, event SlotEvent, slot *domain.Slot) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Manager рассылает события слотов всем зарегистрированным слушателям
type Manager struct {
	listeners []SlotListener
	logger    Logger
}

// NewManager создает новый менеджер слушателей
func NewManager(logger Logger, listeners ...SlotListener) *Manager {
	return &Manager{
		listeners: listeners,
		logger:    logger,
	}
}

// Register добавляет слушателя
func (m *Manager) Register(l SlotListener) {
	m.listeners = append(m.listeners, l)
}

// NotifySlotCreated уведомляет о создании слота
func (m *Manager) NotifySlotCreated(ctx context.Context, slot *domain.Slot) {
	m.notify(ctx, SlotCreated, slot)
}

// NotifySlotUpdated уведомляет об изменении слота
func (m *Manager) NotifySlotUpdated(ctx context.Context, slot *domain.Slot) {
	m.notify(ctx, SlotUpdated, slot)
}

// NotifySlotRemoved уведомляет об удалении слота
func (m *Manager) NotifySlotRemoved(ctx context.Context, slot *domain.Slot) {
	m.notify(ctx, SlotRemoved, slot)
}

func (m *Manager) notify(ctx context.Context, event SlotEvent, slot *domain.Slot) {
	for _, l := range m.listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Error("listeners: listener panicked on %s event for slot id=%d: %v", event, slot.ID, r)
				}
			}()
			if err := l.OnSlotEvent(ctx, event, slot); err != nil {
				m.logger.Warn("listeners: listener failed on %s event for slot id=%d: %v", event, slot.ID, err)
			}
		}()
	}
}
