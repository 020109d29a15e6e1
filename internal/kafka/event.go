package kafka

import "time"

type EventType string

const (
	EventTypeBookingCreated   EventType = "booking_created"
	EventTypeBookingCancelled EventType = "booking_cancelled"
	EventTypeVenueDeleted     EventType = "venue_deleted"
)

// Event - событие жизненного цикла брони, ключ сообщения - VenueID
type Event struct {
	Type      EventType `json:"type"`
	BookingID string    `json:"booking_id,omitempty"`
	VenueID   string    `json:"venue_id"`
	UserID    string    `json:"user_id,omitempty"`
	Date      string    `json:"date,omitempty"`
	StartTime string    `json:"start_time,omitempty"`
	Hours     int       `json:"hours,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
