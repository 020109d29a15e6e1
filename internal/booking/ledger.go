package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"venue-booking/internal/contextutil"
	"venue-booking/internal/kafka"
	"venue-booking/internal/ledger"
	types "venue-booking/internal/types/booking"
	myErr "venue-booking/internal/types/errors"
	"venue-booking/internal/types/validation"
)

const (
	DefaultHorizonDays = 60
	maxHorizonDays     = 366
)

// Ledger - сервис бронирования: производная доступность и атомарный коммит брони
type Ledger struct {
	Repo     BookingRepo
	Producer kafka.EventProducer
	Logger   *zap.SugaredLogger
	Location *time.Location
	Horizon  int
	Now      func() time.Time
}

func NewLedger(
	repo BookingRepo,
	producer kafka.EventProducer,
	logger *zap.SugaredLogger,
	loc *time.Location,
	horizonDays int,
) *Ledger {
	if loc == nil {
		loc = time.Local
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	return &Ledger{
		Repo:     repo,
		Producer: producer,
		Logger:   logger,
		Location: loc,
		Horizon:  horizonDays,
		Now:      time.Now,
	}
}

func (l *Ledger) today() string {
	return l.Now().In(l.Location).Format(ledger.DateLayout)
}

// CheckAvailability - true, если слот не пересекается ни с одной бронью площадки на эту дату
func (l *Ledger) CheckAvailability(ctx context.Context, venueID string, slot ledger.Slot) (bool, error) {
	candidate, err := slot.Interval()
	if err != nil {
		return false, err
	}

	existing, err := l.Repo.GetByVenue(ctx, venueID, slot.Date, slot.Date)
	if err != nil {
		return false, err
	}

	return ledger.Free(Intervals(existing), candidate), nil
}

// FullyBookedDates - даты горизонта, в которые не помещается ни одна бронь длиной probeHours.
// Пустой from означает сегодня, days = 0 - горизонт по умолчанию, probeHours = 0 - часовая проба.
func (l *Ledger) FullyBookedDates(ctx context.Context, venueID, from string, days, probeHours int) ([]string, error) {
	if from == "" {
		from = l.today()
	}
	start, err := ledger.ParseDate(from)
	if err != nil {
		return nil, err
	}

	if days == 0 {
		days = l.Horizon
	}
	if days < 1 || days > maxHorizonDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", myErr.ErrValidation, maxHorizonDays)
	}

	if probeHours == 0 {
		probeHours = ledger.MinHours
	}
	if err = ledger.ValidateHours(probeHours); err != nil {
		return nil, err
	}

	last := start.AddDate(0, 0, days-1).Format(ledger.DateLayout)
	existing, err := l.Repo.GetByVenue(ctx, venueID, from, last)
	if err != nil {
		return nil, err
	}

	return ledger.FullyBookedDates(GroupByDate(existing), start, days, probeHours), nil
}

// AvailableDurations - длительности, которые можно забронировать хотя бы с одного времени сетки
func (l *Ledger) AvailableDurations(ctx context.Context, venueID, date string) ([]int, error) {
	if _, err := ledger.ParseDate(date); err != nil {
		return nil, err
	}

	existing, err := l.Repo.GetByVenue(ctx, venueID, date, date)
	if err != nil {
		return nil, err
	}

	return ledger.AvailableDurations(Intervals(existing)), nil
}

// AvailableStartTimes - времена сетки, с которых свободны ровно hours часов
func (l *Ledger) AvailableStartTimes(ctx context.Context, venueID, date string, hours int) ([]string, error) {
	if _, err := ledger.ParseDate(date); err != nil {
		return nil, err
	}
	if err := ledger.ValidateHours(hours); err != nil {
		return nil, err
	}

	existing, err := l.Repo.GetByVenue(ctx, venueID, date, date)
	if err != nil {
		return nil, err
	}

	return ledger.AvailableStartTimes(Intervals(existing), hours), nil
}

// BookedSlots - занятые слоты площадки без данных владельцев
func (l *Ledger) BookedSlots(ctx context.Context, venueID string) ([]ledger.Slot, error) {
	existing, err := l.Repo.GetByVenue(ctx, venueID, "", "")
	if err != nil {
		return nil, err
	}

	slots := make([]ledger.Slot, 0, len(existing))
	for _, b := range existing {
		slots = append(slots, b.Slot())
	}

	return slots, nil
}

// Commit повторно проверяет пересечение внутри транзакции и сохраняет бронь
func (l *Ledger) Commit(ctx context.Context, p contextutil.Principal, form types.CreateBooking) (*Booking, error) {
	if !p.Authenticated() {
		return nil, myErr.ErrNoAuth
	}

	candidate, err := l.validate(form)
	if err != nil {
		bookingCommitsTotal.WithLabelValues(resultInvalid).Inc()
		return nil, err
	}

	b := Booking{
		VenueID:   form.VenueID,
		UserID:    p.UserID,
		Date:      form.Date,
		StartTime: form.StartTime,
		Hours:     form.Hours,
	}

	created, err := l.Repo.CreateIfFree(ctx, b, func(existing []Booking) error {
		if !ledger.Free(Intervals(existing), candidate) {
			return myErr.ErrSlotConflict
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, myErr.ErrSlotConflict):
			bookingCommitsTotal.WithLabelValues(resultConflict).Inc()
			l.Logger.Infof("booking conflict on venue %s at %s %s", form.VenueID, form.Date, form.StartTime)
		case errors.Is(err, myErr.ErrNotFound):
			bookingCommitsTotal.WithLabelValues(resultInvalid).Inc()
		default:
			bookingCommitsTotal.WithLabelValues(resultFailed).Inc()
		}
		return nil, err
	}

	bookingCommitsTotal.WithLabelValues(resultCommitted).Inc()
	l.publish(ctx, kafka.Event{
		Type:      kafka.EventTypeBookingCreated,
		BookingID: created.ID,
		VenueID:   created.VenueID,
		UserID:    created.UserID,
		Date:      created.Date,
		StartTime: created.StartTime,
		Hours:     created.Hours,
	})

	return created, nil
}

func (l *Ledger) validate(form types.CreateBooking) (ledger.Interval, error) {
	if err := validation.Struct(form); err != nil {
		return ledger.Interval{}, err
	}

	candidate, err := ledger.Slot{Date: form.Date, StartTime: form.StartTime, Hours: form.Hours}.Interval()
	if err != nil {
		return ledger.Interval{}, err
	}

	// строки YYYY-MM-DD сравниваются лексикографически
	if form.Date < l.today() {
		return ledger.Interval{}, fmt.Errorf("%w: date %s is in the past", myErr.ErrValidation, form.Date)
	}

	return candidate, nil
}

// Cancel удаляет бронь. Отменить может только владелец, ограничений по времени нет.
func (l *Ledger) Cancel(ctx context.Context, p contextutil.Principal, bookingID string) error {
	if !p.Authenticated() {
		return myErr.ErrNoAuth
	}

	b, err := l.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if b.UserID != p.UserID {
		return myErr.ErrNotAuthorized
	}

	if err = l.Repo.Delete(ctx, bookingID); err != nil {
		return err
	}

	bookingCancellationsTotal.Inc()
	l.publish(ctx, kafka.Event{
		Type:      kafka.EventTypeBookingCancelled,
		BookingID: b.ID,
		VenueID:   b.VenueID,
		UserID:    b.UserID,
		Date:      b.Date,
		StartTime: b.StartTime,
		Hours:     b.Hours,
	})

	return nil
}

// ForUser - брони принципала со статусом на текущий момент, с фильтрами по статусу и тексту
func (l *Ledger) ForUser(ctx context.Context, p contextutil.Principal, filter types.Filter) ([]UserBooking, error) {
	if !p.Authenticated() {
		return nil, myErr.ErrNoAuth
	}
	if err := validation.Struct(filter); err != nil {
		return nil, err
	}

	bookings, err := l.Repo.GetByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	now := l.Now()
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	res := make([]UserBooking, 0, len(bookings))
	for _, ub := range bookings {
		status, err := ledger.StatusAt(ub.Date, ub.StartTime, ub.Hours, now, l.Location)
		if err != nil {
			l.Logger.Warnf("skipping booking %s with bad slot: %v", ub.ID, err)
			continue
		}
		ub.Status = status

		if filter.Status != "" && filter.Status != "all" && string(status) != filter.Status {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(ub.VenueName), query) &&
			!strings.Contains(strings.ToLower(ub.VenueLocation), query) {
			continue
		}

		res = append(res, ub)
	}

	return res, nil
}

func (l *Ledger) publish(ctx context.Context, evt kafka.Event) {
	if l.Producer == nil {
		return
	}

	evt.Timestamp = l.Now().UTC()
	if err := l.Producer.SendEvent(ctx, evt); err != nil {
		l.Logger.Warnf("failed to publish %s event for venue %s: %v", evt.Type, evt.VenueID, err)
	}
}
