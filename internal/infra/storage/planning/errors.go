package planning

import "errors"

var (
	// ErrWeekDefinitionNotFound возвращается, когда расписание недели не найдено
	ErrWeekDefinitionNotFound = errors.New("planning.repository: week definition not found")

	// ErrReservationRuleNotFound возвращается, когда правило бронирования не найдено
	ErrReservationRuleNotFound = errors.New("planning.repository: reservation rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("planning.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("planning.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("planning.repository: failed to scan row")
)
