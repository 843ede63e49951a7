package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

type fakePlanningRepo struct {
	weekDefinitions  []*domain.WeekDefinition
	reservationRules []*domain.ReservationRule
	closingDays      []time.Time
}

func (f *fakePlanningRepo) GetWeekDefinitionsByForm(_ context.Context, _ int64) ([]*domain.WeekDefinition, error) {
	return f.weekDefinitions, nil
}

func (f *fakePlanningRepo) GetReservationRulesByForm(_ context.Context, _ int64) ([]*domain.ReservationRule, error) {
	return f.reservationRules, nil
}

func (f *fakePlanningRepo) GetClosingDays(_ context.Context, _ int64, _, _ time.Time) ([]time.Time, error) {
	return f.closingDays, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveForDate(t *testing.T) {
	repo := &fakePlanningRepo{
		weekDefinitions: []*domain.WeekDefinition{
			{ID: 1, FormID: 7, EffectiveFrom: date(2026, 1, 1)},
			{ID: 2, FormID: 7, EffectiveFrom: date(2026, 3, 1)},
			{ID: 3, FormID: 7, EffectiveFrom: date(2026, 6, 1)},
		},
		reservationRules: []*domain.ReservationRule{
			{ID: 10, FormID: 7, EffectiveFrom: date(2026, 1, 1), MaxCapacityPerSlot: 2},
			{ID: 11, FormID: 7, EffectiveFrom: date(2026, 4, 15), MaxCapacityPerSlot: 5},
		},
		closingDays: []time.Time{date(2026, 3, 9)},
	}
	resolver := NewResolver(repo, nopLogger{})
	ctx := context.Background()

	t.Run("picks the latest version effective on the date", func(t *testing.T) {
		dayRules, err := resolver.ResolveForDate(ctx, 7, date(2026, 3, 15))
		require.NoError(t, err)

		require.NotNil(t, dayRules.WeekDefinition)
		assert.Equal(t, int64(2), dayRules.WeekDefinition.ID)
		require.NotNil(t, dayRules.ReservationRule)
		assert.Equal(t, int64(10), dayRules.ReservationRule.ID)
		assert.False(t, dayRules.IsClosingDay)
	})

	t.Run("version effective exactly on the date applies", func(t *testing.T) {
		dayRules, err := resolver.ResolveForDate(ctx, 7, date(2026, 6, 1))
		require.NoError(t, err)

		assert.Equal(t, int64(3), dayRules.WeekDefinition.ID)
		assert.Equal(t, int64(11), dayRules.ReservationRule.ID)
	})

	t.Run("no version exists before the first effective date", func(t *testing.T) {
		dayRules, err := resolver.ResolveForDate(ctx, 7, date(2025, 12, 31))
		require.NoError(t, err)

		assert.Nil(t, dayRules.WeekDefinition)
		assert.Nil(t, dayRules.ReservationRule)
		assert.Equal(t, 0, dayRules.MaxCapacity())
	})

	t.Run("closing day is flagged", func(t *testing.T) {
		dayRules, err := resolver.ResolveForDate(ctx, 7, date(2026, 3, 9))
		require.NoError(t, err)

		assert.True(t, dayRules.IsClosingDay)
	})

	t.Run("time of day does not change the resolved version", func(t *testing.T) {
		morning, err := resolver.ResolveForDate(ctx, 7, time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		evening, err := resolver.ResolveForDate(ctx, 7, time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, morning.WeekDefinition.ID, evening.WeekDefinition.ID)
		assert.Equal(t, morning.ReservationRule.ID, evening.ReservationRule.ID)
	})
}

func TestFormRulesEarliestRuleDate(t *testing.T) {
	t.Run("returns the first rule date", func(t *testing.T) {
		fr := &FormRules{
			reservationRules: []*domain.ReservationRule{
				{EffectiveFrom: date(2026, 2, 1)},
				{EffectiveFrom: date(2026, 5, 1)},
			},
		}

		earliest, ok := fr.EarliestRuleDate()
		assert.True(t, ok)
		assert.Equal(t, date(2026, 2, 1), earliest)
	})

	t.Run("reports absence of rules", func(t *testing.T) {
		fr := &FormRules{}

		_, ok := fr.EarliestRuleDate()
		assert.False(t, ok)
	})
}
