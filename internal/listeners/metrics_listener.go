package listeners

import (
	"context"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// MetricsSink получатель счётчиков событий слотов
type MetricsSink interface {
	IncSlotEvent(event string)
	IncOverbooked()
}

// MetricsListener инкрементирует prometheus-счётчики по событиям слотов
type MetricsListener struct {
	sink MetricsSink
}

// NewMetricsListener создает слушателя метрик
func NewMetricsListener(sink MetricsSink) *MetricsListener {
	return &MetricsListener{sink: sink}
}

// OnSlotEvent фиксирует событие и отдельно считает перебронированные слоты
func (l *MetricsListener) OnSlotEvent(_ context.Context, event SlotEvent, slot *domain.Slot) error {
	l.sink.IncSlotEvent(string(event))
	if event != SlotRemoved && slot.IsOverbooked() {
		l.sink.IncOverbooked()
	}
	return nil
}
