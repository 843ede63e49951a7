package update_form_planning

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

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePlanningRepo struct {
	weekDefinitions  []*domain.WeekDefinition
	reservationRules []*domain.ReservationRule
	closingDays      []time.Time
}

func (r *fakePlanningRepo) CreateWeekDefinition(_ context.Context, wd *domain.WeekDefinition) (*domain.WeekDefinition, error) {
	copied := *wd
	copied.ID = int64(len(r.weekDefinitions) + 1)
	r.weekDefinitions = append(r.weekDefinitions, &copied)
	result := copied
	return &result, nil
}

func (r *fakePlanningRepo) CreateReservationRule(_ context.Context, rule *domain.ReservationRule) (*domain.ReservationRule, error) {
	copied := *rule
	copied.ID = int64(len(r.reservationRules) + 1)
	r.reservationRules = append(r.reservationRules, &copied)
	result := copied
	return &result, nil
}

func (r *fakePlanningRepo) ReplaceClosingDays(_ context.Context, _ int64, _, _ time.Time, dates []time.Time) error {
	r.closingDays = dates
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validWeekDefinition() *WeekDefinitionInput {
	return &WeekDefinitionInput{
		EffectiveFrom: date(2026, 2, 1),
		WorkingDays: []WorkingDayInput{{
			DayOfWeek: time.Monday,
			Templates: []TemplateInput{
				{StartingTime: "09:00", EndingTime: "10:00", IsOpen: true},
				{StartingTime: "10:00", EndingTime: "11:00", IsOpen: true, MaxCapacity: 5},
			},
		}},
	}
}

func TestUpdateFormPlanning(t *testing.T) {
	ctx := context.Background()
	repo := &fakePlanningRepo{}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(ctx, &Request{
		FormID:         1,
		WeekDefinition: validWeekDefinition(),
		ReservationRule: &ReservationRuleInput{
			EffectiveFrom:           date(2026, 2, 1),
			MaxCapacityPerSlot:      3,
			MaxAppointmentsPerUser:  1,
			MinBookingNoticeMinutes: 60,
		},
		ClosingDays: &ClosingDaysInput{
			StartDate: date(2026, 2, 1),
			EndDate:   date(2026, 2, 28),
			Dates:     []time.Time{date(2026, 2, 14)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.WeekDefinitionID)
	assert.Equal(t, int64(1), resp.ReservationRuleID)
	assert.Equal(t, 1, resp.ClosingDaysCount)

	require.Len(t, repo.weekDefinitions, 1)
	created := repo.weekDefinitions[0]
	assert.Equal(t, int64(1), created.FormID)
	require.Len(t, created.WorkingDays, 1)
	assert.Len(t, created.WorkingDays[0].Templates, 2)

	require.Len(t, repo.reservationRules, 1)
	assert.Equal(t, 3, repo.reservationRules[0].MaxCapacityPerSlot)

	assert.Equal(t, []time.Time{date(2026, 2, 14)}, repo.closingDays)
}

func TestUpdateFormPlanningPartial(t *testing.T) {
	ctx := context.Background()
	repo := &fakePlanningRepo{}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	resp, err := uc.Execute(ctx, &Request{
		FormID:         1,
		WeekDefinition: validWeekDefinition(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.WeekDefinitionID)
	assert.Zero(t, resp.ReservationRuleID)
	assert.Zero(t, resp.ClosingDaysCount)
	assert.Empty(t, repo.reservationRules)
}

func TestUpdateFormPlanningValidation(t *testing.T) {
	ctx := context.Background()
	uc := NewUseCase(&fakePlanningRepo{}, fakeTxManager{}, nopLogger{})

	t.Run("empty request", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{FormID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing effective date", func(t *testing.T) {
		wd := validWeekDefinition()
		wd.EffectiveFrom = time.Time{}
		_, err := uc.Execute(ctx, &Request{FormID: 1, WeekDefinition: wd})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate working day", func(t *testing.T) {
		wd := validWeekDefinition()
		wd.WorkingDays = append(wd.WorkingDays, wd.WorkingDays[0])
		_, err := uc.Execute(ctx, &Request{FormID: 1, WeekDefinition: wd})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("overlapping templates", func(t *testing.T) {
		wd := validWeekDefinition()
		wd.WorkingDays[0].Templates = []TemplateInput{
			{StartingTime: "09:00", EndingTime: "10:00", IsOpen: true},
			{StartingTime: "09:30", EndingTime: "10:30", IsOpen: true},
		}
		_, err := uc.Execute(ctx, &Request{FormID: 1, WeekDefinition: wd})
		assert.ErrorIs(t, err, ErrOverlappingTemplates)
	})

	t.Run("template too short", func(t *testing.T) {
		wd := validWeekDefinition()
		wd.WorkingDays[0].Templates = []TemplateInput{
			{StartingTime: "09:00", EndingTime: "09:01", IsOpen: true},
		}
		_, err := uc.Execute(ctx, &Request{FormID: 1, WeekDefinition: wd})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rule capacity out of bounds", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{
			FormID: 1,
			ReservationRule: &ReservationRuleInput{
				EffectiveFrom:      date(2026, 2, 1),
				MaxCapacityPerSlot: domain.MaxCapacityPerSlot + 1,
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("closing day outside range", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{
			FormID: 1,
			ClosingDays: &ClosingDaysInput{
				StartDate: date(2026, 2, 1),
				EndDate:   date(2026, 2, 28),
				Dates:     []time.Time{date(2026, 3, 1)},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
