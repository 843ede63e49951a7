package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbstore"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
)

// Repository репозиторий правил планирования: недельные расписания,
// правила бронирования и дни закрытия
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория планирования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeekDefinitionsByForm получает все недельные расписания формы
// вместе с рабочими днями и шаблонами, упорядоченные по дате применения
func (r *Repository) GetWeekDefinitionsByForm(ctx context.Context, formID int64) ([]*domain.WeekDefinition, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "form_id", "effective_from").
		From("week_definitions").
		Where(squirrel.Eq{"form_id": formID}).
		OrderBy("effective_from ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekDefinitionsByForm - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekDefinitionsByForm - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	definitions := make([]*domain.WeekDefinition, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var wd domain.WeekDefinition
		if err := rows.Scan(&wd.ID, &wd.FormID, &wd.EffectiveFrom); err != nil {
			return nil, fmt.Errorf("%w: GetWeekDefinitionsByForm - scan row: %v", ErrScanRow, err)
		}
		definitions = append(definitions, &wd)
		ids = append(ids, wd.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekDefinitionsByForm - rows error: %v", ErrScanRow, err)
	}

	if len(definitions) == 0 {
		return definitions, nil
	}

	workingDays, err := r.getWorkingDays(ctx, executor, ids)
	if err != nil {
		return nil, err
	}

	for _, wd := range definitions {
		wd.WorkingDays = workingDays[wd.ID]
	}

	return definitions, nil
}

// getWorkingDays загружает рабочие дни и их шаблоны для набора недельных расписаний
func (r *Repository) getWorkingDays(ctx context.Context, executor DBExecutor, weekDefinitionIDs []int64) (map[int64][]domain.WorkingDay, error) {
	query, args, err := psqlbuilder.Select("id", "week_definition_id", "day_of_week").
		From("working_days").
		Where(squirrel.Eq{"week_definition_id": weekDefinitionIDs}).
		OrderBy("week_definition_id ASC", "day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getWorkingDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	byDefinition := make(map[int64][]domain.WorkingDay)
	dayIDs := make([]int64, 0)
	dayIndex := make(map[int64]*domain.WorkingDay)

	for rows.Next() {
		var day domain.WorkingDay
		var dayOfWeek int
		if err := rows.Scan(&day.ID, &day.WeekDefinitionID, &dayOfWeek); err != nil {
			return nil, fmt.Errorf("%w: getWorkingDays - scan row: %v", ErrScanRow, err)
		}
		day.DayOfWeek = time.Weekday(dayOfWeek)
		byDefinition[day.WeekDefinitionID] = append(byDefinition[day.WeekDefinitionID], day)
		dayIDs = append(dayIDs, day.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getWorkingDays - rows error: %v", ErrScanRow, err)
	}

	for defID := range byDefinition {
		days := byDefinition[defID]
		for i := range days {
			dayIndex[days[i].ID] = &days[i]
		}
		byDefinition[defID] = days
	}

	if len(dayIDs) == 0 {
		return byDefinition, nil
	}

	templates, err := r.getTemplates(ctx, executor, dayIDs)
	if err != nil {
		return nil, err
	}
	for dayID, list := range templates {
		if day, ok := dayIndex[dayID]; ok {
			day.Templates = list
		}
	}

	return byDefinition, nil
}

// getTemplates загружает шаблоны слотов для набора рабочих дней,
// упорядоченные по времени начала
func (r *Repository) getTemplates(ctx context.Context, executor DBExecutor, workingDayIDs []int64) (map[int64][]domain.TimeSlotTemplate, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"working_day_id",
		"starting_time",
		"ending_time",
		"is_open",
		"max_capacity",
	).
		From("time_slot_templates").
		Where(squirrel.Eq{"working_day_id": workingDayIDs}).
		OrderBy("working_day_id ASC", "starting_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.TimeSlotTemplate)
	for rows.Next() {
		var t domain.TimeSlotTemplate
		if err := rows.Scan(&t.ID, &t.WorkingDayID, &t.StartingTime, &t.EndingTime, &t.IsOpen, &t.MaxCapacity); err != nil {
			return nil, fmt.Errorf("%w: getTemplates - scan row: %v", ErrScanRow, err)
		}
		result[t.WorkingDayID] = append(result[t.WorkingDayID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getTemplates - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetReservationRulesByForm получает все правила бронирования формы,
// упорядоченные по дате применения
func (r *Repository) GetReservationRulesByForm(ctx context.Context, formID int64) ([]*domain.ReservationRule, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"form_id",
		"effective_from",
		"max_capacity_per_slot",
		"max_appointments_per_user",
		"min_booking_notice_minutes",
	).
		From("reservation_rules").
		Where(squirrel.Eq{"form_id": formID}).
		OrderBy("effective_from ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetReservationRulesByForm - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservationRulesByForm - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.ReservationRule, 0)
	for rows.Next() {
		var rule domain.ReservationRule
		if err := rows.Scan(
			&rule.ID,
			&rule.FormID,
			&rule.EffectiveFrom,
			&rule.MaxCapacityPerSlot,
			&rule.MaxAppointmentsPerUser,
			&rule.MinBookingNoticeMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: GetReservationRulesByForm - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetReservationRulesByForm - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetClosingDays получает даты закрытия формы внутри периода
func (r *Repository) GetClosingDays(ctx context.Context, formID int64, start, end time.Time) ([]time.Time, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("closing_date").
		From("closing_days").
		Where(squirrel.Eq{"form_id": formID}).
		Where(squirrel.GtOrEq{"closing_date": start}).
		Where(squirrel.LtOrEq{"closing_date": end}).
		OrderBy("closing_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetClosingDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetClosingDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: GetClosingDays - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetClosingDays - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// CreateWeekDefinition сохраняет недельное расписание вместе с рабочими
// днями и шаблонами. Вызывается внутри транзакции сервиса планирования
func (r *Repository) CreateWeekDefinition(ctx context.Context, wd *domain.WeekDefinition) (*domain.WeekDefinition, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("week_definitions").
		Columns("form_id", "effective_from").
		Values(wd.FormID, wd.EffectiveFrom).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWeekDefinition - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&wd.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateWeekDefinition - execute insert: %v", ErrExecQuery, err)
	}

	for i := range wd.WorkingDays {
		day := &wd.WorkingDays[i]
		day.WeekDefinitionID = wd.ID
		if err := r.createWorkingDay(ctx, executor, day); err != nil {
			return nil, err
		}
	}

	return wd, nil
}

func (r *Repository) createWorkingDay(ctx context.Context, executor DBExecutor, day *domain.WorkingDay) error {
	query, args, err := psqlbuilder.Insert("working_days").
		Columns("week_definition_id", "day_of_week").
		Values(day.WeekDefinitionID, int(day.DayOfWeek)).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createWorkingDay - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&day.ID); err != nil {
		return fmt.Errorf("%w: createWorkingDay - execute insert: %v", ErrExecQuery, err)
	}

	for i := range day.Templates {
		tpl := &day.Templates[i]
		tpl.WorkingDayID = day.ID

		query, args, err := psqlbuilder.Insert("time_slot_templates").
			Columns("working_day_id", "starting_time", "ending_time", "is_open", "max_capacity").
			Values(tpl.WorkingDayID, tpl.StartingTime, tpl.EndingTime, tpl.IsOpen, tpl.MaxCapacity).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: createWorkingDay - build template insert: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&tpl.ID); err != nil {
			return fmt.Errorf("%w: createWorkingDay - execute template insert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// DeleteWeekDefinition удаляет недельное расписание
// Рабочие дни и шаблоны удаляются каскадом (FK ON DELETE CASCADE)
func (r *Repository) DeleteWeekDefinition(ctx context.Context, id int64) error {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("week_definitions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteWeekDefinition - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteWeekDefinition - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteWeekDefinition - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrWeekDefinitionNotFound
	}

	return nil
}

// CreateReservationRule сохраняет новое правило бронирования
func (r *Repository) CreateReservationRule(ctx context.Context, rule *domain.ReservationRule) (*domain.ReservationRule, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_rules").
		Columns(
			"form_id",
			"effective_from",
			"max_capacity_per_slot",
			"max_appointments_per_user",
			"min_booking_notice_minutes",
		).
		Values(
			rule.FormID,
			rule.EffectiveFrom,
			rule.MaxCapacityPerSlot,
			rule.MaxAppointmentsPerUser,
			rule.MinBookingNoticeMinutes,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateReservationRule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateReservationRule - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// ReplaceClosingDays заменяет список дат закрытия формы внутри периода
func (r *Repository) ReplaceClosingDays(ctx context.Context, formID int64, start, end time.Time, dates []time.Time) error {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closing_days").
		Where(squirrel.Eq{"form_id": formID}).
		Where(squirrel.GtOrEq{"closing_date": start}).
		Where(squirrel.LtOrEq{"closing_date": end}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceClosingDays - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceClosingDays - execute delete: %v", ErrExecQuery, err)
	}

	if len(dates) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("closing_days").Columns("form_id", "closing_date")
	for _, d := range dates {
		insertBuilder = insertBuilder.Values(formID, d)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceClosingDays - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceClosingDays - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
