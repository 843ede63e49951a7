package release_seats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	storage "github.com/m04kA/SMC-SlotService/internal/infra/storage/appointment"
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
	copied := *s.slots[id]
	return &copied, nil
}

func (s *fakeSlotService) Save(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	copied := *slot
	s.slots[slot.ID] = &copied
	result := copied
	return &result, nil
}

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, storage.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAppointmentRepo) Cancel(_ context.Context, id int64) error {
	r.appointments[id].IsCancelled = true
	return nil
}

type testEnv struct {
	slots        *fakeSlotService
	appointments *fakeAppointmentRepo
	tx           *fakeTxManager
	uc           *UseCase
}

func newTestEnv() *testEnv {
	slotService := &fakeSlotService{slots: map[int64]*domain.Slot{}}
	appointmentRepo := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{}}
	tx := &fakeTxManager{}
	return &testEnv{
		slots:        slotService,
		appointments: appointmentRepo,
		tx:           tx,
		uc:           NewUseCase(slotService, appointmentRepo, tx, nopLogger{}),
	}
}

func bookedSlot(id int64, capacity, taken int) *domain.Slot {
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	slot := domain.NewSlot(1, domain.Period{
		StartingDateTime: start,
		EndingDateTime:   start.Add(30 * time.Minute),
	}, capacity, capacity-taken, capacity-taken, taken, true, true)
	slot.ID = id
	return slot
}

func TestReleaseSeats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.slots.slots[1] = bookedSlot(1, 3, 2)
	env.appointments.appointments[5] = &domain.Appointment{
		ID: 5, SlotID: 1, UserID: 7, NbBookedSeats: 2,
	}

	resp, err := env.uc.Execute(ctx, &Request{AppointmentID: 5, UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.AppointmentID)
	assert.Equal(t, int64(1), resp.SlotID)
	assert.Equal(t, 2, resp.NbReleasedSeats)
	assert.Equal(t, 0, resp.NbPlacesTaken)
	assert.Equal(t, 3, resp.NbRemainingPlaces)
	assert.Equal(t, 3, resp.NbPotentialRemainingPlaces)

	assert.True(t, env.appointments.appointments[5].IsCancelled)
	assert.Equal(t, 0, env.slots.slots[1].NbPlacesTaken)
}

func TestReleaseSeatsValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.uc.Execute(ctx, &Request{AppointmentID: 0, UserID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.uc.Execute(ctx, &Request{AppointmentID: 5, UserID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReleaseSeatsNotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.uc.Execute(ctx, &Request{AppointmentID: 99, UserID: 7})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestReleaseSeatsForbidden(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.slots.slots[1] = bookedSlot(1, 3, 1)
	env.appointments.appointments[5] = &domain.Appointment{
		ID: 5, SlotID: 1, UserID: 7, NbBookedSeats: 1,
	}

	// Чужую бронь отменить нельзя
	_, err := env.uc.Execute(ctx, &Request{AppointmentID: 5, UserID: 8})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, env.appointments.appointments[5].IsCancelled)
}

func TestReleaseSeatsAlreadyCancelled(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.slots.slots[1] = bookedSlot(1, 3, 1)
	env.appointments.appointments[5] = &domain.Appointment{
		ID: 5, SlotID: 1, UserID: 7, NbBookedSeats: 1, IsCancelled: true,
	}

	_, err := env.uc.Execute(ctx, &Request{AppointmentID: 5, UserID: 7})
	assert.ErrorIs(t, err, ErrAppointmentCancelled)

	// Места не возвращаются повторно
	assert.Equal(t, 1, env.slots.slots[1].NbPlacesTaken)
}

func TestReleaseSeatsConcurrentModification(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.tx.err = txmanager.ErrSerializationFailure

	_, err := env.uc.Execute(ctx, &Request{AppointmentID: 5, UserID: 7})
	assert.ErrorIs(t, err, ErrConcurrentModification)
}
