package rules

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// DayRules действующие правила планирования для конкретной даты.
// WeekDefinition и ReservationRule могут быть nil, если на дату
// не действует ни одно правило.
type DayRules struct {
	WeekDefinition  *domain.WeekDefinition
	ReservationRule *domain.ReservationRule
	IsClosingDay    bool
}

// WorkingDayFor возвращает рабочий день недельного шаблона для даты.
func (d DayRules) WorkingDayFor(date time.Time) *domain.WorkingDay {
	if d.WeekDefinition == nil {
		return nil
	}
	return d.WeekDefinition.WorkingDayFor(date.Weekday())
}

// MaxCapacity ёмкость слота по правилу резервирования, 0 если правила нет.
func (d DayRules) MaxCapacity() int {
	if d.ReservationRule == nil {
		return 0
	}
	return d.ReservationRule.MaxCapacityPerSlot
}

// FormRules снапшот всех правил формы, загруженный одним обращением к базе.
// Разрешение правил для даты после загрузки не требует запросов и детерминировано:
// одна и та же дата всегда даёт один и тот же результат.
type FormRules struct {
	weekDefinitions  []*domain.WeekDefinition
	reservationRules []*domain.ReservationRule
	closingDays      map[string]struct{}
}

// ForDate возвращает правила, действующие на дату. Для каждого вида правил
// выбирается правило с наибольшей датой вступления в силу, не превышающей date.
func (fr *FormRules) ForDate(date time.Time) DayRules {
	day := truncateToDay(date)
	return DayRules{
		WeekDefinition:  closestWeekDefinition(fr.weekDefinitions, day),
		ReservationRule: closestReservationRule(fr.reservationRules, day),
		IsClosingDay:    fr.isClosingDay(day),
	}
}

// EarliestRuleDate дата вступления в силу самого раннего правила резервирования.
// Возвращает false, если правил нет.
func (fr *FormRules) EarliestRuleDate() (time.Time, bool) {
	if len(fr.reservationRules) == 0 {
		return time.Time{}, false
	}
	return fr.reservationRules[0].EffectiveFrom, true
}

func (fr *FormRules) isClosingDay(day time.Time) bool {
	_, ok := fr.closingDays[day.Format(domain.DateFormat)]
	return ok
}

// closestWeekDefinition бинарный поиск ближайшего в прошлом недельного шаблона.
// Список отсортирован по дате вступления в силу по возрастанию.
func closestWeekDefinition(defs []*domain.WeekDefinition, day time.Time) *domain.WeekDefinition {
	idx := sort.Search(len(defs), func(i int) bool {
		return defs[i].EffectiveFrom.After(day)
	})
	if idx == 0 {
		return nil
	}
	return defs[idx-1]
}

func closestReservationRule(rules []*domain.ReservationRule, day time.Time) *domain.ReservationRule {
	idx := sort.Search(len(rules), func(i int) bool {
		return rules[i].EffectiveFrom.After(day)
	})
	if idx == 0 {
		return nil
	}
	return rules[idx-1]
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Resolver сервис разрешения правил планирования формы
type Resolver struct {
	planningRepo PlanningRepository
	logger       Logger
}

func NewResolver(planningRepo PlanningRepository, logger Logger) *Resolver {
	return &Resolver{
		planningRepo: planningRepo,
		logger:       logger,
	}
}

// Snapshot загружает все правила формы и закрытые дни в диапазоне дат.
// Шаблоны и правила загружаются целиком: правило, действующее на дату,
// могло вступить в силу задолго до начала диапазона.
func (r *Resolver) Snapshot(ctx context.Context, formID int64, start, end time.Time) (*FormRules, error) {
	weekDefs, err := r.planningRepo.GetWeekDefinitionsByForm(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - get week definitions: %v", ErrInternal, err)
	}

	rules, err := r.planningRepo.GetReservationRulesByForm(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - get reservation rules: %v", ErrInternal, err)
	}

	closingDays, err := r.planningRepo.GetClosingDays(ctx, formID, truncateToDay(start), truncateToDay(end))
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - get closing days: %v", ErrInternal, err)
	}

	closed := make(map[string]struct{}, len(closingDays))
	for _, day := range closingDays {
		closed[day.Format(domain.DateFormat)] = struct{}{}
	}

	return &FormRules{
		weekDefinitions:  weekDefs,
		reservationRules: rules,
		closingDays:      closed,
	}, nil
}

// ResolveForDate возвращает правила, действующие для формы на одну дату.
func (r *Resolver) ResolveForDate(ctx context.Context, formID int64, date time.Time) (DayRules, error) {
	snapshot, err := r.Snapshot(ctx, formID, date, date)
	if err != nil {
		return DayRules{}, err
	}
	return snapshot.ForDate(date), nil
}
