package booking

import (
	"net/http"

	"go.uber.org/zap"

	"venue-booking/internal/booking"
	"venue-booking/internal/contextutil"
	"venue-booking/internal/handlers"
	"venue-booking/internal/ledger"
	types "venue-booking/internal/types/booking"
	myErr "venue-booking/internal/types/errors"
)

type BookingHandler struct {
	Logger *zap.SugaredLogger
	Ledger *booking.Ledger
}

func NewBookingHandler(l *zap.SugaredLogger, lg *booking.Ledger) *BookingHandler {
	return &BookingHandler{
		Logger: l,
		Ledger: lg,
	}
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

type datesResponse struct {
	Dates []string `json:"dates"`
}

type durationsResponse struct {
	Hours []int `json:"hours"`
}

type startTimesResponse struct {
	StartTimes []string `json:"start_times"`
}

// Availability - GET /api/venues/{id}/availability?date=&start=&hours=
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	hours, err := handlers.QueryInt(r, "hours", 0)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	q := r.URL.Query()
	slot := ledger.Slot{Date: q.Get("date"), StartTime: q.Get("start"), Hours: hours}

	free, err := h.Ledger.CheckAvailability(r.Context(), venueID, slot)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, availabilityResponse{Available: free}, h.Logger)
}

// FullyBooked - GET /api/venues/{id}/fully-booked?from=&days=&probe_hours=
func (h *BookingHandler) FullyBooked(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	days, err := handlers.QueryInt(r, "days", 0)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}
	probe, err := handlers.QueryInt(r, "probe_hours", 0)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	dates, err := h.Ledger.FullyBookedDates(r.Context(), venueID, r.URL.Query().Get("from"), days, probe)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, datesResponse{Dates: dates}, h.Logger)
}

// Durations - GET /api/venues/{id}/durations?date=
func (h *BookingHandler) Durations(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	hours, err := h.Ledger.AvailableDurations(r.Context(), venueID, r.URL.Query().Get("date"))
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, durationsResponse{Hours: hours}, h.Logger)
}

// StartTimes - GET /api/venues/{id}/start-times?date=&hours=
func (h *BookingHandler) StartTimes(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	hours, err := handlers.QueryInt(r, "hours", 0)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	starts, err := h.Ledger.AvailableStartTimes(r.Context(), venueID, r.URL.Query().Get("date"), hours)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, startTimesResponse{StartTimes: starts}, h.Logger)
}

// Booked - занятые слоты площадки, без пользователей
func (h *BookingHandler) Booked(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	slots, err := h.Ledger.BookedSlots(r.Context(), venueID)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, slots, h.Logger)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())

	var form types.CreateBooking
	if err := handlers.DecodeJSON(r, &form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}
	if form.VenueID != "" {
		if err := handlers.CheckID(form.VenueID); err != nil {
			myErr.SendError(w, err, h.Logger)
			return
		}
	}

	b, err := h.Ledger.Commit(r.Context(), p, form)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.Logger.Infof("booking %s created for venue %s", b.ID, b.VenueID)
	handlers.SendJSON(w, http.StatusCreated, b, h.Logger)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())
	id, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	if err = h.Ledger.Cancel(r.Context(), p, id); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.Logger.Infof("booking %s cancelled", id)
	handlers.SendOK(w, h.Logger)
}

// Mine - GET /api/bookings/me?status=&q=
func (h *BookingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())
	q := r.URL.Query()

	list, err := h.Ledger.ForUser(r.Context(), p, types.Filter{Status: q.Get("status"), Query: q.Get("q")})
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, list, h.Logger)
}
