package booking

import (
	"context"
	"time"

	"venue-booking/internal/ledger"
)

// Booking - бронь площадки пользователем на дату и интервал времени
type Booking struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venue_id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`       // YYYY-MM-DD
	StartTime string    `json:"start_time"` // HH:MM
	Hours     int       `json:"hours"`
	CreatedAt time.Time `json:"created_at"`
}

// UserBooking - бронь вместе с данными площадки и вычисленным статусом
type UserBooking struct {
	Booking
	VenueName     string        `json:"venue_name"`
	VenueLocation string        `json:"venue_location"`
	VenueImageURL string        `json:"venue_image_url,omitempty"`
	Status        ledger.Status `json:"status"`
}

func (b Booking) Slot() ledger.Slot {
	return ledger.Slot{Date: b.Date, StartTime: b.StartTime, Hours: b.Hours}
}

// Intervals переводит брони в интервалы минут. Записи с битым временем пропускаются.
func Intervals(bookings []Booking) []ledger.Interval {
	res := make([]ledger.Interval, 0, len(bookings))
	for _, b := range bookings {
		iv, err := ledger.NewInterval(b.StartTime, b.Hours)
		if err != nil {
			continue
		}
		res = append(res, iv)
	}

	return res
}

// GroupByDate раскладывает брони по датам
func GroupByDate(bookings []Booking) map[string][]ledger.Interval {
	byDate := make(map[string][]Booking)
	for _, b := range bookings {
		byDate[b.Date] = append(byDate[b.Date], b)
	}

	res := make(map[string][]ledger.Interval, len(byDate))
	for date, list := range byDate {
		res[date] = Intervals(list)
	}

	return res
}

// CheckFunc получает снимок броней площадки на дату внутри транзакции.
// Ненулевая ошибка отменяет вставку.
type CheckFunc func(existing []Booking) error

//go:generate mockgen -source=booking.go -destination=../mocks/mock_booking_repo.go -package=mocks
type BookingRepo interface {
	// GetByVenue - брони площадки с датами в [from, to], пустая граница не ограничивает.
	// ErrNotFound, если площадки нет
	GetByVenue(ctx context.Context, venueID, from, to string) ([]Booking, error)
	// GetByID - бронь по id, ErrNotFound если ее нет
	GetByID(ctx context.Context, id string) (*Booking, error)
	// GetByUser - брони пользователя с данными площадок, новые сверху
	GetByUser(ctx context.Context, userID string) ([]UserBooking, error)
	// CreateIfFree - атомарно читает брони площадки на дату, вызывает check и вставляет b
	CreateIfFree(ctx context.Context, b Booking, check CheckFunc) (*Booking, error)
	// Delete - удаляет бронь по id
	Delete(ctx context.Context, id string) error
}
