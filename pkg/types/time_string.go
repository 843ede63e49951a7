package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeString время дня в формате HH:MM ("09:30")
// Хранится в БД как строка, сравнивается лексикографически безопасно,
// т.к. формат фиксированный с ведущими нулями
type TimeString string

const timeStringLayout = "15:04"

// NewTimeString создает TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
// Ведущие нули обязательны: "9:30" не принимается, иначе ломается
// лексикографическое сравнение
func NewTimeStringFromString(s string) (TimeString, error) {
	if len(s) != 5 || s[2] != ':' {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", s)
	}
	t, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM: %v", s, err)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление времени
func (ts TimeString) String() string {
	return string(ts)
}

// Minutes возвращает количество минут с начала суток
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("invalid time string %q: %v", ts, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут
// Возвращает ошибку при выходе за границы суток
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := ts.Minutes()
	if err != nil {
		return "", err
	}
	total := current + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("time %s%+d minutes is out of day bounds", ts, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// At привязывает время к дате, получая полноценный time.Time
// Некорректная строка дает нулевое время - валидация делается раньше
func (ts TimeString) At(date time.Time) time.Time {
	minutes, err := ts.Minutes()
	if err != nil {
		return time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}

// Value реализует driver.Valuer для записи в БД
func (ts TimeString) Value() (driver.Value, error) {
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*ts = TimeString(v)
	case []byte:
		*ts = TimeString(v)
	case time.Time:
		*ts = NewTimeString(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
	return nil
}
