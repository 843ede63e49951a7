package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

func testSlot(t *testing.T, maxCapacity, taken, remaining, potential int) *domain.Slot {
	t.Helper()

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	period, err := domain.NewPeriod(start, start.Add(30*time.Minute))
	require.NoError(t, err)

	slot := domain.NewSlot(1, period, maxCapacity, remaining, potential, taken, true, false)
	slot.ID = 42
	return slot
}

func TestApplyBooking(t *testing.T) {
	t.Run("booking one seat in a slot of one", func(t *testing.T) {
		slot := testSlot(t, 1, 0, 1, 1)

		ApplyBooking(slot, 1)

		assert.Equal(t, 1, slot.NbPlacesTaken)
		assert.Equal(t, 0, slot.NbRemainingPlaces)
		assert.Equal(t, 0, slot.NbPotentialRemainingPlaces)
		assert.True(t, slot.IsFull())
	})

	t.Run("booking one seat in a slot of two", func(t *testing.T) {
		slot := testSlot(t, 2, 0, 2, 2)

		ApplyBooking(slot, 1)

		assert.Equal(t, 1, slot.NbPlacesTaken)
		assert.Equal(t, 1, slot.NbRemainingPlaces)
		assert.Equal(t, 1, slot.NbPotentialRemainingPlaces)
		assert.False(t, slot.IsFull())
	})

	t.Run("sequential bookings exhaust a slot of three", func(t *testing.T) {
		slot := testSlot(t, 3, 0, 3, 3)

		ApplyBooking(slot, 2)
		ApplyBooking(slot, 1)

		assert.Equal(t, 3, slot.NbPlacesTaken)
		assert.Equal(t, 0, slot.NbRemainingPlaces)
		assert.Equal(t, 0, slot.NbPotentialRemainingPlaces)
		assert.True(t, slot.IsFull())
	})
}

func TestReleaseBooking(t *testing.T) {
	t.Run("cancellation restores released seats", func(t *testing.T) {
		slot := testSlot(t, 3, 2, 1, 1)

		ReleaseBooking(slot, 2)

		assert.Equal(t, 0, slot.NbPlacesTaken)
		assert.Equal(t, 3, slot.NbRemainingPlaces)
		assert.Equal(t, 3, slot.NbPotentialRemainingPlaces)
	})

	t.Run("book then cancel is a round trip", func(t *testing.T) {
		slot := testSlot(t, 5, 0, 5, 5)

		ApplyBooking(slot, 3)
		ReleaseBooking(slot, 3)

		assert.Equal(t, 0, slot.NbPlacesTaken)
		assert.Equal(t, 5, slot.NbRemainingPlaces)
		assert.Equal(t, 5, slot.NbPotentialRemainingPlaces)
	})

	t.Run("taken places never go negative", func(t *testing.T) {
		slot := testSlot(t, 3, 1, 2, 2)

		ReleaseBooking(slot, 2)

		assert.Equal(t, 0, slot.NbPlacesTaken)
	})
}

func TestReconcileCapacityChange(t *testing.T) {
	t.Run("capacity increase adds the delta to free counters", func(t *testing.T) {
		old := testSlot(t, 3, 2, 1, 1)
		edited := testSlot(t, 5, 0, 5, 5)

		ReconcileCapacityChange(edited, old)

		assert.Equal(t, 2, edited.NbPlacesTaken)
		assert.Equal(t, 3, edited.NbRemainingPlaces)
		assert.Equal(t, 3, edited.NbPotentialRemainingPlaces)
	})

	t.Run("capacity decrease floors free counters at zero", func(t *testing.T) {
		old := testSlot(t, 5, 4, 1, 1)
		edited := testSlot(t, 2, 0, 2, 2)

		ReconcileCapacityChange(edited, old)

		assert.Equal(t, 4, edited.NbPlacesTaken)
		assert.Equal(t, 0, edited.NbRemainingPlaces)
		assert.Equal(t, 0, edited.NbPotentialRemainingPlaces)
		assert.True(t, edited.IsOverbooked())
	})

	t.Run("unchanged capacity carries counters over", func(t *testing.T) {
		old := testSlot(t, 3, 1, 2, 2)
		edited := testSlot(t, 3, 0, 3, 3)

		ReconcileCapacityChange(edited, old)

		assert.Equal(t, 1, edited.NbPlacesTaken)
		assert.Equal(t, 2, edited.NbRemainingPlaces)
		assert.Equal(t, 2, edited.NbPotentialRemainingPlaces)
	})

	t.Run("existing bookings survive a capacity cut", func(t *testing.T) {
		old := testSlot(t, 4, 3, 1, 1)
		edited := testSlot(t, 3, 0, 3, 3)

		ReconcileCapacityChange(edited, old)

		assert.Equal(t, 3, edited.NbPlacesTaken)
		assert.Equal(t, 0, edited.NbRemainingPlaces)
		assert.False(t, edited.IsOverbooked())
	})
}
