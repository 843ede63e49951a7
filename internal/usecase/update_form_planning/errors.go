package update_form_planning

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_form_planning: invalid input data")

	// ErrOverlappingTemplates возвращается, когда шаблоны рабочего дня пересекаются
	ErrOverlappingTemplates = errors.New("update_form_planning: working day templates overlap")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_form_planning: internal error")
)
