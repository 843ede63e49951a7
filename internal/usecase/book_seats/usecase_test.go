package book_seats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/internal/service/rules"
	"github.com/m04kA/SMC-SlotService/internal/service/slots"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct {
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type fakeSlotService struct {
	slots map[int64]*domain.Slot
}

func (s *fakeSlotService) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := s.slots[id]
	if !ok {
		return nil, slots.ErrSlotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (s *fakeSlotService) Save(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	copied := *slot
	s.slots[slot.ID] = &copied
	result := copied
	return &result, nil
}

type fakeAppointmentRepo struct {
	nextID       int64
	appointments map[int64]*domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{nextID: 1, appointments: map[int64]*domain.Appointment{}}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	copied := *a
	copied.ID = r.nextID
	copied.CreatedAt = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.nextID++
	r.appointments[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeAppointmentRepo) GetBySlotID(_ context.Context, slotID int64) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range r.appointments {
		if a.SlotID == slotID {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}

// fakeResolver возвращает одно и то же правило резервирования на любую дату
type fakeResolver struct {
	rule *domain.ReservationRule
}

func (f *fakeResolver) ResolveForDate(_ context.Context, _ int64, _ time.Time) (rules.DayRules, error) {
	return rules.DayRules{ReservationRule: f.rule}, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type testEnv struct {
	slots        *fakeSlotService
	appointments *fakeAppointmentRepo
	tx           *fakeTxManager
	uc           *UseCase
}

func newTestEnv(rule *domain.ReservationRule) *testEnv {
	slotService := &fakeSlotService{slots: map[int64]*domain.Slot{}}
	appointmentRepo := newFakeAppointmentRepo()
	tx := &fakeTxManager{}
	return &testEnv{
		slots:        slotService,
		appointments: appointmentRepo,
		tx:           tx,
		uc:           NewUseCase(slotService, appointmentRepo, &fakeResolver{rule: rule}, tx, nopLogger{}),
	}
}

func openSlot(id int64, capacity, taken int) *domain.Slot {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	slot := domain.NewSlot(1, domain.Period{
		StartingDateTime: start,
		EndingDateTime:   start.Add(30 * time.Minute),
	}, capacity, capacity-taken, capacity-taken, taken, true, true)
	slot.ID = id
	return slot
}

func TestBookSeats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	env.slots.slots[1] = openSlot(1, 3, 0)

	resp, err := env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 7, NbBookedSeats: 2})
	require.NoError(t, err)

	assert.NotZero(t, resp.AppointmentID)
	assert.Equal(t, int64(1), resp.SlotID)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, 2, resp.NbBookedSeats)
	assert.Equal(t, 2, resp.NbPlacesTaken)
	assert.Equal(t, 1, resp.NbRemainingPlaces)
	assert.Equal(t, 1, resp.NbPotentialRemainingPlaces)

	stored := env.slots.slots[1]
	assert.Equal(t, 2, stored.NbPlacesTaken)
	assert.Equal(t, 1, stored.NbRemainingPlaces)

	created := env.appointments.appointments[resp.AppointmentID]
	require.NotNil(t, created)
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, 2, created.NbBookedSeats)
	assert.False(t, created.IsCancelled)
}

func TestBookSeatsValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)

	for _, req := range []*Request{
		{SlotID: 0, UserID: 7, NbBookedSeats: 1},
		{SlotID: 1, UserID: 0, NbBookedSeats: 1},
		{SlotID: 1, UserID: 7, NbBookedSeats: 0},
		{SlotID: 1, UserID: 7, NbBookedSeats: -1},
	} {
		_, err := env.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestBookSeatsSlotNotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)

	_, err := env.uc.Execute(ctx, &Request{SlotID: 99, UserID: 7, NbBookedSeats: 1})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBookSeatsClosedSlot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	slot := openSlot(1, 3, 0)
	slot.IsOpen = false
	env.slots.slots[1] = slot

	_, err := env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 7, NbBookedSeats: 1})
	assert.ErrorIs(t, err, ErrSlotClosed)
}

func TestBookSeatsNotEnoughPlaces(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	env.slots.slots[1] = openSlot(1, 3, 2)

	_, err := env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 7, NbBookedSeats: 2})
	assert.ErrorIs(t, err, ErrNotEnoughPlaces)

	// Счетчики не тронуты
	assert.Equal(t, 2, env.slots.slots[1].NbPlacesTaken)
}

func TestBookSeatsNoticePolicy(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&domain.ReservationRule{MinBookingNoticeMinutes: 60})
	env.slots.slots[1] = openSlot(1, 3, 0)

	// Слот начинается 09:00, бронировать можно не позднее 08:00
	env.uc.timeProvider = &fixedTime{now: time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC)}
	_, err := env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 7, NbBookedSeats: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	env.uc.timeProvider = &fixedTime{now: time.Date(2026, 1, 5, 7, 30, 0, 0, time.UTC)}
	_, err = env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 7, NbBookedSeats: 1})
	assert.NoError(t, err)
}

func TestBookSeatsUserLimit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&domain.ReservationRule{MaxAppointmentsPerUser: 1})
	env.slots.slots[1] = openSlot(1, 5, 0)
	env.uc.timeProvider = &fixedTime{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	_, err := env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 7, NbBookedSeats: 1})
	require.NoError(t, err)

	// Повторная бронь того же пользователя упирается в лимит
	_, err = env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 7, NbBookedSeats: 1})
	assert.ErrorIs(t, err, ErrTooManyAppointments)

	// Другой пользователь бронирует свободно
	_, err = env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 8, NbBookedSeats: 1})
	assert.NoError(t, err)
}

func TestBookSeatsCancelledDoesNotCount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(&domain.ReservationRule{MaxAppointmentsPerUser: 1})
	env.slots.slots[1] = openSlot(1, 5, 0)
	env.uc.timeProvider = &fixedTime{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	env.appointments.appointments[10] = &domain.Appointment{
		ID: 10, SlotID: 1, UserID: 7, NbBookedSeats: 1, IsCancelled: true,
	}

	_, err := env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 7, NbBookedSeats: 1})
	assert.NoError(t, err)
}

func TestBookSeatsConcurrentModification(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(nil)
	env.slots.slots[1] = openSlot(1, 3, 0)
	env.tx.err = txmanager.ErrSerializationFailure

	_, err := env.uc.Execute(ctx, &Request{SlotID: 1, UserID: 7, NbBookedSeats: 1})
	assert.ErrorIs(t, err, ErrConcurrentModification)
}
