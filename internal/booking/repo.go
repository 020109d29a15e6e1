package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	myErr "venue-booking/internal/types/errors"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// invalidText - Postgres не привел строку к типу колонки, например не-uuid id
func invalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}

type BookingDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewBookingDBRepository(db *sql.DB, l *zap.SugaredLogger) *BookingDBRepository {
	return &BookingDBRepository{
		DB:     db,
		Logger: l,
	}
}

const selectBooking = `
	SELECT id, venue_id, user_id, to_char(booking_date, 'YYYY-MM-DD'), start_time, hours, created_at
	FROM bookings
	`

func (br *BookingDBRepository) GetByVenue(ctx context.Context, venueID, from, to string) ([]Booking, error) {
	var exists bool
	err := br.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM venues WHERE id = $1)`, venueID).Scan(&exists)
	if err != nil {
		if invalidText(err) {
			return nil, myErr.ErrNotFound
		}
		br.Logger.Errorf("Error checking venue %s: %v", venueID, err)
		return nil, myErr.ErrDBInternal
	}
	if !exists {
		return nil, myErr.ErrNotFound
	}

	return br.listByVenue(ctx, br.DB, venueID, from, to)
}

// listByVenue - брони с booking_date в [from, to], пустая граница не ограничивает
func (br *BookingDBRepository) listByVenue(ctx context.Context, q queryer, venueID, from, to string) ([]Booking, error) {
	query := selectBooking + `WHERE venue_id = $1`
	args := []interface{}{venueID}
	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(` AND booking_date >= $%d`, len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(` AND booking_date <= $%d`, len(args))
	}
	query += ` ORDER BY booking_date, start_time`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		br.Logger.Errorf("Error getting bookings of venue %s: %v", venueID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.VenueID, &b.UserID, &b.Date, &b.StartTime, &b.Hours, &b.CreatedAt); err != nil {
			br.Logger.Errorf("Error scanning booking row: %v", err)
			return nil, myErr.ErrDBInternal
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		br.Logger.Errorf("Error iterating booking rows: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return bookings, nil
}

func (br *BookingDBRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	err := br.DB.QueryRowContext(ctx, selectBooking+`WHERE id = $1`, id).
		Scan(&b.ID, &b.VenueID, &b.UserID, &b.Date, &b.StartTime, &b.Hours, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || invalidText(err) {
			return nil, myErr.ErrNotFound
		}
		br.Logger.Errorf("Error getting booking by ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &b, nil
}

func (br *BookingDBRepository) GetByUser(ctx context.Context, userID string) ([]UserBooking, error) {
	query := `
	SELECT b.id, b.venue_id, b.user_id, to_char(b.booking_date, 'YYYY-MM-DD'), b.start_time, b.hours, b.created_at,
		v.venue_name, v.location, v.image_url
	FROM bookings b
	JOIN venues v ON v.id = b.venue_id
	WHERE b.user_id = $1
	ORDER BY b.booking_date DESC, b.start_time DESC
	`

	rows, err := br.DB.QueryContext(ctx, query, userID)
	if err != nil {
		br.Logger.Errorf("Error getting bookings of user %s: %v", userID, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var bookings []UserBooking
	for rows.Next() {
		var ub UserBooking
		err := rows.Scan(
			&ub.ID, &ub.VenueID, &ub.UserID, &ub.Date, &ub.StartTime, &ub.Hours, &ub.CreatedAt,
			&ub.VenueName, &ub.VenueLocation, &ub.VenueImageURL,
		)
		if err != nil {
			br.Logger.Errorf("Error scanning user booking row: %v", err)
			return nil, myErr.ErrDBInternal
		}
		bookings = append(bookings, ub)
	}

	if err := rows.Err(); err != nil {
		br.Logger.Errorf("Error iterating user booking rows: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return bookings, nil
}

// CreateIfFree - проверка и вставка в одной транзакции.
// FOR SHARE на строке площадки не дает удалить ее параллельно,
// advisory lock на (площадка, дата) выстраивает коммиты в очередь.
func (br *BookingDBRepository) CreateIfFree(ctx context.Context, b Booking, check CheckFunc) (*Booking, error) {
	tx, err := br.DB.BeginTx(ctx, nil)
	if err != nil {
		br.Logger.Errorf("Error starting booking transaction: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	var venueID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = $1 FOR SHARE`, b.VenueID).Scan(&venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || invalidText(err) {
			return nil, myErr.ErrNotFound
		}
		br.Logger.Errorf("Error locking venue %s: %v", b.VenueID, err)
		return nil, myErr.ErrDBInternal
	}

	if _, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`, b.VenueID, b.Date); err != nil {
		br.Logger.Errorf("Error taking booking lock for %s on %s: %v", b.VenueID, b.Date, err)
		return nil, myErr.ErrDBInternal
	}

	existing, err := br.listByVenue(ctx, tx, b.VenueID, b.Date, b.Date)
	if err != nil {
		return nil, err
	}

	if err = check(existing); err != nil {
		return nil, err
	}

	err = tx.QueryRowContext(ctx, `
	INSERT INTO bookings (venue_id, user_id, booking_date, start_time, hours)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at
	`, b.VenueID, b.UserID, b.Date, b.StartTime, b.Hours).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		br.Logger.Errorf("Error inserting booking: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if err = tx.Commit(); err != nil {
		br.Logger.Errorf("Error committing booking: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &b, nil
}

func (br *BookingDBRepository) Delete(ctx context.Context, id string) error {
	res, err := br.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		if invalidText(err) {
			return myErr.ErrNotFound
		}
		br.Logger.Errorf("Error deleting booking %s: %v", id, err)
		return myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		br.Logger.Errorf("Error reading affected rows: %v", err)
		return myErr.ErrDBInternal
	}
	if affected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}
