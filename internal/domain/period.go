package domain

import "time"

// Period временной интервал слота
// Обе границы - наивные локальные даты-время, без конвертации таймзон
type Period struct {
	StartingDateTime time.Time
	EndingDateTime   time.Time
}

// NewPeriod создает Period с проверкой, что начало строго раньше конца
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{StartingDateTime: start, EndingDateTime: end}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate возвращает ErrInvalidPeriod для пустого или вывернутого интервала
func (p Period) Validate() error {
	if !p.StartingDateTime.Before(p.EndingDateTime) {
		return ErrInvalidPeriod
	}
	return nil
}

// DurationMinutes возвращает длину интервала в минутах
func (p Period) DurationMinutes() int {
	return int(p.EndingDateTime.Sub(p.StartingDateTime) / time.Minute)
}

// Date возвращает календарную дату начала интервала
func (p Period) Date() time.Time {
	return time.Date(p.StartingDateTime.Year(), p.StartingDateTime.Month(), p.StartingDateTime.Day(), 0, 0, 0, 0, p.StartingDateTime.Location())
}
