package domain

import (
	"fmt"
	"time"
)

// TripRange период аренды (получение и возврат автомобиля)
// Хранимый диапазон всегда нормализован: Start <= End (кроме одиночного обновления начала)
type TripRange struct {
	Start time.Time
	End   time.Time
}

// NewTripRange создает нормализованный диапазон, меняя местами перепутанные границы
func NewTripRange(a, b time.Time) TripRange {
	if b.Before(a) {
		a, b = b, a
	}
	return TripRange{Start: a, End: b}
}

// DefaultTripRange диапазон по умолчанию: с текущего момента на сутки вперед
func DefaultTripRange(now time.Time) TripRange {
	return TripRange{Start: now, End: now.Add(DefaultTripLength)}
}

// UpdateTripRange применяет значения из выбора дат к текущему диапазону
// Два значения нормализуются, одно значение заменяет только начало без проверки порядка
func UpdateTripRange(current TripRange, values []time.Time) (TripRange, error) {
	switch len(values) {
	case 1:
		return TripRange{Start: values[0], End: current.End}, nil
	case 2:
		return NewTripRange(values[0], values[1]), nil
	default:
		return current, fmt.Errorf("%w: expected one or two dates, got %d", ErrValidation, len(values))
	}
}

// DurationHours количество полных часов между началом и концом, 0 если конец не позже начала
func (r TripRange) DurationHours() int {
	if !r.End.After(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start) / time.Hour)
}

// IsZero true, если диапазон не задан
func (r TripRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// ValidateTripRange проверяет, что начало аренды не раньше сегодняшнего дня
func ValidateTripRange(r TripRange, now time.Time) error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: trip start and end are required", ErrValidation)
	}
	if r.Start.Before(StartOfDay(now)) {
		return fmt.Errorf("%w: trip cannot start before %s", ErrValidation, now.Format(DateFormat))
	}
	return nil
}

// StartOfDay начало суток для указанного момента
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
