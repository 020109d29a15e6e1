package booking

// CreateBooking - тело POST /bookings
type CreateBooking struct {
	VenueID   string `json:"venue_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	Hours     int    `json:"hours" validate:"required"`
}

// Filter - фильтры страницы "мои бронирования"
type Filter struct {
	Status string `validate:"omitempty,oneof=all upcoming completed"`
	Query  string
}
