package venue

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	myErr "venue-booking/internal/types/errors"
)

type VenueDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewVenueDBRepository(db *sql.DB, l *zap.SugaredLogger) *VenueDBRepository {
	return &VenueDBRepository{
		DB:     db,
		Logger: l,
	}
}

const venueColumns = `id, venue_name, type, capacity, location, description, image_id, image_url, created_by, created_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(s scanner) (Venue, error) {
	var v Venue
	err := s.Scan(
		&v.ID,
		&v.Name,
		&v.Type,
		&v.Capacity,
		&v.Location,
		&v.Description,
		&v.ImageID,
		&v.ImageURL,
		&v.CreatedBy,
		&v.CreatedAt,
	)
	return v, err
}

func (vr *VenueDBRepository) Create(ctx context.Context, v Venue) (*Venue, error) {
	query := `
	INSERT INTO venues (
		venue_name,
		type,
		capacity,
		location,
		description,
		image_id,
		image_url,
		created_by
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + venueColumns

	created, err := scanVenue(vr.DB.QueryRowContext(
		ctx,
		query,
		v.Name,
		v.Type,
		v.Capacity,
		v.Location,
		v.Description,
		v.ImageID,
		v.ImageURL,
		v.CreatedBy,
	))
	if err != nil {
		vr.Logger.Errorf("Error creating venue: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &created, nil
}

func (vr *VenueDBRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	v, err := scanVenue(vr.DB.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		vr.Logger.Errorf("Error getting venue by ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &v, nil
}

func (vr *VenueDBRepository) GetByIDs(ctx context.Context, ids []string) ([]Venue, error) {
	if len(ids) == 0 {
		return []Venue{}, nil
	}

	list, err := vr.query(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Venue, len(list))
	for _, v := range list {
		byID[v.ID] = v
	}

	ordered := make([]Venue, 0, len(list))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}

	return ordered, nil
}

func (vr *VenueDBRepository) List(ctx context.Context) ([]Venue, error) {
	return vr.query(ctx, `SELECT `+venueColumns+` FROM venues ORDER BY created_at DESC`)
}

func (vr *VenueDBRepository) Search(ctx context.Context, query string) ([]Venue, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"

	return vr.query(ctx, `
	SELECT `+venueColumns+`
	FROM venues
	WHERE LOWER(venue_name) LIKE $1
		OR LOWER(location) LIKE $1
		OR LOWER(type) LIKE $1
		OR LOWER(description) LIKE $1
	ORDER BY venue_name
	`, pattern)
}

func (vr *VenueDBRepository) query(ctx context.Context, query string, args ...interface{}) ([]Venue, error) {
	rows, err := vr.DB.QueryContext(ctx, query, args...)
	if err != nil {
		vr.Logger.Errorf("Error querying venues: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	venues := make([]Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			vr.Logger.Errorf("Error scanning venue row: %v", err)
			return nil, myErr.ErrDBInternal
		}
		venues = append(venues, v)
	}

	if err := rows.Err(); err != nil {
		vr.Logger.Errorf("Error iterating venue rows: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return venues, nil
}

func (vr *VenueDBRepository) Ratings(ctx context.Context, ids []string) (map[string][]int, error) {
	ratings := make(map[string][]int, len(ids))
	if len(ids) == 0 {
		return ratings, nil
	}

	rows, err := vr.DB.QueryContext(ctx, `SELECT venue_id, rating FROM feedback WHERE venue_id = ANY($1)`, pq.Array(ids))
	if err != nil {
		vr.Logger.Errorf("Error getting venue ratings: %v", err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	for rows.Next() {
		var (
			venueID string
			rating  int
		)
		if err := rows.Scan(&venueID, &rating); err != nil {
			vr.Logger.Errorf("Error scanning rating row: %v", err)
			return nil, myErr.ErrDBInternal
		}
		ratings[venueID] = append(ratings[venueID], rating)
	}

	if err := rows.Err(); err != nil {
		vr.Logger.Errorf("Error iterating rating rows: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return ratings, nil
}

// Delete - каскад в одной транзакции. FOR UPDATE ждет завершения
// коммитов броней, которые держат FOR SHARE на этой площадке.
func (vr *VenueDBRepository) Delete(ctx context.Context, id string) (string, error) {
	tx, err := vr.DB.BeginTx(ctx, nil)
	if err != nil {
		vr.Logger.Errorf("Error starting venue delete: %v", err)
		return "", myErr.ErrDBInternal
	}
	defer tx.Rollback() // nolint:errcheck

	var imageID string
	err = tx.QueryRowContext(ctx, `SELECT image_id FROM venues WHERE id = $1 FOR UPDATE`, id).Scan(&imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", myErr.ErrNotFound
		}
		vr.Logger.Errorf("Error locking venue %s: %v", id, err)
		return "", myErr.ErrDBInternal
	}

	for _, stmt := range []string{
		`DELETE FROM bookings WHERE venue_id = $1`,
		`DELETE FROM feedback WHERE venue_id = $1`,
		`DELETE FROM venues WHERE id = $1`,
	} {
		if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
			vr.Logger.Errorf("Error deleting venue %s: %v", id, err)
			return "", myErr.ErrDBInternal
		}
	}

	if err = tx.Commit(); err != nil {
		vr.Logger.Errorf("Error committing venue delete: %v", err)
		return "", myErr.ErrDBInternal
	}

	return imageID, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
