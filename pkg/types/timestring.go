package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// timeFormat формат времени HH:MM
const timeFormat = "15:04"

// minutesPerDay количество минут в сутках
const minutesPerDay = 24 * 60

var (
	// ErrInvalidFormat возвращается при некорректном формате строки времени
	ErrInvalidFormat = errors.New("types: invalid time string format")

	// ErrOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrOutOfRange = errors.New("types: time is out of day range")
)

// TimeString represents a minute-granularity time of day ("HH:MM").
// Stored as a plain string so it survives JSON and SQL round-trips unchanged.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString создает TimeString из строки формата "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return NewTimeString(t), nil
}

// Validate проверяет, что значение соответствует формату "HH:MM"
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeFormat, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(ts))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// String возвращает строковое представление "HH:MM"
func (ts TimeString) String() string {
	return string(ts)
}

// Minutes возвращает количество минут с начала суток
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед.
// Возвращает ErrOutOfRange, если результат выходит за пределы суток.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := ts.Minutes()
	if err != nil {
		return "", err
	}

	total := current + minutes
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrOutOfRange, ts, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err := ts.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(ts)
}

// Value реализует driver.Valuer для записи в БД
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД.
// Колонка TIME приходит из lib/pq как time.Time, из других источников - как строка.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := parseTimeValue(string(v))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case string:
		parsed, err := parseTimeValue(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidFormat, src)
	}
}

// parseTimeValue парсит значение времени из БД ("HH:MM" или "HH:MM:SS")
func parseTimeValue(s string) (TimeString, error) {
	for _, layout := range []string{timeFormat, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeString(t), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}
