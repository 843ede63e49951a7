package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/dbstore"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"form_id",
	"starting_datetime",
	"ending_datetime",
	"max_capacity",
	"nb_places_taken",
	"nb_remaining_places",
	"nb_potential_remaining_places",
	"is_open",
	"is_specific",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый слот
// Первичный ключ выдается базой (BIGSERIAL) - репозиторий сериализует
// назначение идентификаторов при конкурентных вставках
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"form_id",
			"starting_datetime",
			"ending_datetime",
			"max_capacity",
			"nb_places_taken",
			"nb_remaining_places",
			"nb_potential_remaining_places",
			"is_open",
			"is_specific",
		).
		Values(
			s.FormID,
			s.Period.StartingDateTime,
			s.Period.EndingDateTime,
			s.MaxCapacity,
			s.NbPlacesTaken,
			s.NbRemainingPlaces,
			s.NbPotentialRemainingPlaces,
			s.IsOpen,
			s.IsSpecific,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы конкурентные
// бронирования не прочитали одно и то же значение остатка
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbstore.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlotRow(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByFormAndRange получает слоты формы внутри периода,
// упорядоченные по времени начала
func (r *Repository) GetByFormAndRange(ctx context.Context, formID int64, start, end time.Time) ([]*domain.Slot, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"form_id": formID}).
		Where(squirrel.GtOrEq{"starting_datetime": start}).
		Where(squirrel.LtOrEq{"starting_datetime": end}).
		OrderBy("starting_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByFormAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFormAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetSpecificByForm получает все специфичные слоты формы
// (отредактированные вручную, они не восстанавливаются из шаблонов)
func (r *Repository) GetSpecificByForm(ctx context.Context, formID int64) ([]*domain.Slot, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"form_id": formID, "is_specific": true}).
		OrderBy("starting_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecificByForm - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecificByForm - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetWithMaxDate получает слот формы с самой поздней датой начала
func (r *Repository) GetWithMaxDate(ctx context.Context, formID int64) (*domain.Slot, error) {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"form_id": formID}).
		OrderBy("starting_datetime DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWithMaxDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlotRow(executor.QueryRowContext(ctx, query, args...), "GetWithMaxDate")
}

// Update обновляет все изменяемые поля слота
func (r *Repository) Update(ctx context.Context, s *domain.Slot) error {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("starting_datetime", s.Period.StartingDateTime).
		Set("ending_datetime", s.Period.EndingDateTime).
		Set("max_capacity", s.MaxCapacity).
		Set("nb_places_taken", s.NbPlacesTaken).
		Set("nb_remaining_places", s.NbRemainingPlaces).
		Set("nb_potential_remaining_places", s.NbPotentialRemainingPlaces).
		Set("is_open", s.IsOpen).
		Set("is_specific", s.IsSpecific).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotAlreadyExists
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот
// Зависимые брони удаляются каскадом на уровне схемы (FK ON DELETE CASCADE),
// поэтому удаление слота и его броней атомарно
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbstore.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlotRow сканирует одну строку слота
func (r *Repository) scanSlotRow(row *sql.Row, method string) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.FormID,
		&s.Period.StartingDateTime,
		&s.Period.EndingDateTime,
		&s.MaxCapacity,
		&s.NbPlacesTaken,
		&s.NbRemainingPlaces,
		&s.NbPotentialRemainingPlaces,
		&s.IsOpen,
		&s.IsSpecific,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, method, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.FormID,
			&s.Period.StartingDateTime,
			&s.Period.EndingDateTime,
			&s.MaxCapacity,
			&s.NbPlacesTaken,
			&s.NbRemainingPlaces,
			&s.NbPotentialRemainingPlaces,
			&s.IsOpen,
			&s.IsSpecific,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// isUniqueViolation распознает нарушение уникального индекса PostgreSQL
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
