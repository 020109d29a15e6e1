package ledger

import (
	"fmt"
	"strconv"
	"time"

	myErr "venue-booking/internal/types/errors"
)

const (
	MinHours = 1
	MaxHours = 12

	// DateLayout - календарная дата без часового пояса
	DateLayout = "2006-01-02"

	minutesPerDay  = 24 * 60
	gridStep       = 60
	minutesPerHour = 60
)

// Interval - полуоткрытый интервал [Start, End) в минутах от начала дня
type Interval struct {
	Start int
	End   int
}

// Slot - кандидат на бронирование (дата, время начала, длительность)
type Slot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	Hours     int    `json:"hours"`
}

// ParseDate проверяет строку формата YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", myErr.ErrValidation, s)
	}

	return d, nil
}

// ParseClock переводит HH:MM в минуты от полуночи
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", myErr.ErrValidation, s)
	}

	hh, errH := strconv.Atoi(s[:2])
	mm, errM := strconv.Atoi(s[3:])
	if errH != nil || errM != nil || !isDigits(s[:2]) || !isDigits(s[3:]) {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", myErr.ErrValidation, s)
	}

	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("%w: time %q is out of range", myErr.ErrValidation, s)
	}

	return hh*minutesPerHour + mm, nil
}

// FormatClock - обратное преобразование для ParseClock
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}

// ValidateHours проверяет границы длительности
func ValidateHours(hours int) error {
	if hours < MinHours || hours > MaxHours {
		return fmt.Errorf("%w: hours must be between %d and %d", myErr.ErrValidation, MinHours, MaxHours)
	}

	return nil
}

// NewInterval строит интервал из времени начала и длительности в часах
func NewInterval(start string, hours int) (Interval, error) {
	from, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	if err = ValidateHours(hours); err != nil {
		return Interval{}, err
	}

	return Interval{Start: from, End: from + hours*minutesPerHour}, nil
}

// Interval валидирует слот целиком и возвращает его интервал
func (s Slot) Interval() (Interval, error) {
	if _, err := ParseDate(s.Date); err != nil {
		return Interval{}, err
	}

	return NewInterval(s.StartTime, s.Hours)
}

// Overlaps - стандартная проверка пересечения полуоткрытых интервалов,
// касание концами пересечением не считается
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Grid - сетка времени начала, каждый целый час 00:00..23:00
func Grid() []string {
	grid := make([]string, 0, minutesPerDay/gridStep)
	for m := 0; m < minutesPerDay; m += gridStep {
		grid = append(grid, FormatClock(m))
	}

	return grid
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
