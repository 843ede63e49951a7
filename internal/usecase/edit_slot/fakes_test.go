package edit_slot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	storage "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotService/internal/service/rules"
	"github.com/m04kA/SMC-SlotService/internal/service/slots"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type nopSlotMetrics struct{}

func (nopSlotMetrics) AddSlotsMaterialized(int) {}

type nopNotifier struct{}

func (nopNotifier) NotifySlotCreated(context.Context, *domain.Slot) {}
func (nopNotifier) NotifySlotUpdated(context.Context, *domain.Slot) {}
func (nopNotifier) NotifySlotRemoved(context.Context, *domain.Slot) {}

// fakeTxManager выполняет транзакционную функцию напрямую либо
// возвращает подставную ошибку, не вызывая ее
type fakeTxManager struct {
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

type fakeMetrics struct {
	shifts     []string
	overbooked int
}

func (m *fakeMetrics) IncSlotShift(direction string) { m.shifts = append(m.shifts, direction) }
func (m *fakeMetrics) IncOverbooked()                { m.overbooked++ }

// fakeSlotRepo репозиторий слотов в памяти
type fakeSlotRepo struct {
	nextID int64
	slots  map[int64]*domain.Slot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{nextID: 1, slots: map[int64]*domain.Slot{}}
}

func (r *fakeSlotRepo) Create(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	copied := *s
	copied.ID = r.nextID
	r.nextID++
	r.slots[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, storage.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) GetByFormAndRange(_ context.Context, formID int64, start, end time.Time) ([]*domain.Slot, error) {
	var result []*domain.Slot
	for _, s := range r.slots {
		if s.FormID != formID {
			continue
		}
		if s.Period.StartingDateTime.Before(start) || s.Period.StartingDateTime.After(end) {
			continue
		}
		copied := *s
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Period.StartingDateTime.Before(result[j].Period.StartingDateTime)
	})
	return result, nil
}

func (r *fakeSlotRepo) GetSpecificByForm(_ context.Context, _ int64) ([]*domain.Slot, error) {
	return nil, nil
}

func (r *fakeSlotRepo) GetWithMaxDate(_ context.Context, _ int64) (*domain.Slot, error) {
	return nil, storage.ErrSlotNotFound
}

func (r *fakeSlotRepo) Update(_ context.Context, s *domain.Slot) error {
	if _, ok := r.slots[s.ID]; !ok {
		return fmt.Errorf("fake: slot %d not found", s.ID)
	}
	copied := *s
	r.slots[s.ID] = &copied
	return nil
}

func (r *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.slots[id]; !ok {
		return fmt.Errorf("fake: slot %d not found", id)
	}
	delete(r.slots, id)
	return nil
}

// all возвращает все слоты формы по возрастанию времени начала
func (r *fakeSlotRepo) all(formID int64) []*domain.Slot {
	result, _ := r.GetByFormAndRange(context.Background(), formID, time.Time{}, date(2100, 1, 1))
	return result
}

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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(day time.Time, clock string) time.Time {
	return types.TimeString(clock).At(day)
}

// standardWeek расписание пн-пт 09:00-12:00 слотами по 30 минут,
// действует с 1 января 2026, вместимость слота 3
func standardWeek() *fakePlanningRepo {
	templates := func() []domain.TimeSlotTemplate {
		var result []domain.TimeSlotTemplate
		starts := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
		ends := []string{"09:30", "10:00", "10:30", "11:00", "11:30", "12:00"}
		for i := range starts {
			result = append(result, domain.TimeSlotTemplate{
				StartingTime: types.TimeString(starts[i]),
				EndingTime:   types.TimeString(ends[i]),
				IsOpen:       true,
			})
		}
		return result
	}

	var days []domain.WorkingDay
	for wd := time.Monday; wd <= time.Friday; wd++ {
		days = append(days, domain.WorkingDay{
			ID:        int64(wd),
			DayOfWeek: wd,
			Templates: templates(),
		})
	}

	return &fakePlanningRepo{
		weekDefinitions: []*domain.WeekDefinition{
			{ID: 1, FormID: 1, EffectiveFrom: date(2026, 1, 1), WorkingDays: days},
		},
		reservationRules: []*domain.ReservationRule{
			{ID: 1, FormID: 1, EffectiveFrom: date(2026, 1, 1), MaxCapacityPerSlot: 3},
		},
	}
}

type testEnv struct {
	repo    *fakeSlotRepo
	metrics *fakeMetrics
	tx      *fakeTxManager
	uc      *UseCase
}

func newTestEnv(planning *fakePlanningRepo) *testEnv {
	repo := newFakeSlotRepo()
	resolver := rules.NewResolver(planning, nopLogger{})
	slotService := slots.NewService(repo, resolver, nopNotifier{}, nopSlotMetrics{}, nopLogger{})
	metrics := &fakeMetrics{}
	tx := &fakeTxManager{}
	return &testEnv{
		repo:    repo,
		metrics: metrics,
		tx:      tx,
		uc:      NewUseCase(slotService, resolver, tx, metrics, nopLogger{}),
	}
}
