package get_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSlotService struct {
	slots []*domain.Slot
	calls int
}

func (s *fakeSlotService) Materialize(_ context.Context, _ int64, _, _ time.Time) ([]*domain.Slot, error) {
	s.calls++
	return s.slots, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetSlots(t *testing.T) {
	ctx := context.Background()
	start := date(2026, 1, 5)

	slot := domain.NewSlot(1, domain.Period{
		StartingDateTime: start.Add(9 * time.Hour),
		EndingDateTime:   start.Add(9*time.Hour + 30*time.Minute),
	}, 3, 1, 1, 2, true, true)
	slot.ID = 42

	svc := &fakeSlotService{slots: []*domain.Slot{slot}}
	uc := NewUseCase(svc, nopLogger{})

	resp, err := uc.Execute(ctx, &Request{FormID: 1, StartDate: start, EndDate: start})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	view := resp.Slots[0]
	assert.Equal(t, int64(42), view.ID)
	assert.Equal(t, 2, view.NbPlacesTaken)
	assert.Equal(t, 1, view.NbRemainingPlaces)
	assert.True(t, view.IsOpen)
	assert.True(t, view.IsSpecific)
}

func TestGetSlotsValidation(t *testing.T) {
	ctx := context.Background()
	svc := &fakeSlotService{}
	uc := NewUseCase(svc, nopLogger{})
	start := date(2026, 1, 5)

	t.Run("non-positive form id", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{FormID: 0, StartDate: start, EndDate: start})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing dates", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{FormID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{FormID: 1, StartDate: start, EndDate: start.AddDate(0, 0, -1)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("range too wide", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{FormID: 1, StartDate: start, EndDate: start.AddDate(0, 0, maxRangeDays+1)})
		assert.ErrorIs(t, err, ErrRangeTooWide)
	})

	t.Run("year-long range is allowed", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{FormID: 1, StartDate: start, EndDate: start.AddDate(1, 0, 0)})
		assert.NoError(t, err)
	})

	assert.Equal(t, 1, svc.calls)
}
