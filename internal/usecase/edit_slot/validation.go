package edit_slot

import (
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID < 0 {
		return fmt.Errorf("%w: slotID must be non-negative", ErrInvalidInput)
	}

	if req.FormID <= 0 {
		return fmt.Errorf("%w: formID must be positive", ErrInvalidInput)
	}

	if req.StartingDateTime.IsZero() || req.EndingDateTime.IsZero() {
		return fmt.Errorf("%w: startingDateTime and endingDateTime are required", ErrInvalidInput)
	}

	if !req.StartingDateTime.Before(req.EndingDateTime) {
		return fmt.Errorf("%w: slot must end after it starts", ErrInvalidPeriod)
	}

	// Слот не пересекает границу суток
	startDay := req.StartingDateTime.Format(domain.DateFormat)
	endDay := req.EndingDateTime.Add(-1).Format(domain.DateFormat)
	if startDay != endDay {
		return fmt.Errorf("%w: slot must not cross day boundary", ErrInvalidPeriod)
	}

	if req.MaxCapacity < domain.MinCapacityPerSlot {
		return fmt.Errorf("%w: maxCapacity must be at least %d", ErrInvalidInput, domain.MinCapacityPerSlot)
	}

	// Прежнее окончание нужно для расчета сдвига несохраненного слота
	if req.EndingTimeChanged && req.Shift && req.SlotID == 0 && req.PreviousEndingTime == "" {
		return fmt.Errorf("%w: previousEndingTime is required for shifting an unsaved slot", ErrInvalidInput)
	}

	return nil
}
