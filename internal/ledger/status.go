package ledger

import (
	"fmt"
	"time"

	myErr "venue-booking/internal/types/errors"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

// StartsAt - момент начала брони в часовом поясе loc
func StartsAt(date, start string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" 15:04", date+" "+start, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad booking moment %s %s", myErr.ErrValidation, date, start)
	}

	return t, nil
}

// StatusAt вычисляет статус брони на момент now. Статус нигде не хранится:
// отмена удаляет запись, поэтому "cancelled" не бывает.
func StatusAt(date, start string, hours int, now time.Time, loc *time.Location) (Status, error) {
	begin, err := StartsAt(date, start, loc)
	if err != nil {
		return "", err
	}

	if now.After(begin.Add(time.Duration(hours) * time.Hour)) {
		return StatusCompleted, nil
	}

	return StatusUpcoming, nil
}
