package etl

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"venue-booking/internal/venue"
)

type PostgresExtractor struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewPostgresExtractor(db *sql.DB, logger *zap.SugaredLogger) *PostgresExtractor {
	return &PostgresExtractor{
		DB:     db,
		Logger: logger,
	}
}

// ExtractNew - площадки, которые еще не попали в полнотекстовый поиск
func (e *PostgresExtractor) ExtractNew(ctx context.Context) ([]venue.Venue, error) {
	query :=
		`
		SELECT id, venue_name, type, location, description
		FROM venues
		WHERE searching = FALSE
		`

	rows, err := e.DB.QueryContext(ctx, query)
	if err != nil {
		e.Logger.Error("Failed to executing query", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []venue.Venue

	for rows.Next() {
		var v venue.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.Location, &v.Description); err != nil {
			e.Logger.Error("Failed to scan rows", zap.Error(err))
			return nil, err
		}
		result = append(result, v)
	}

	if err := rows.Err(); err != nil {
		e.Logger.Error("Error during rows iteration", zap.Error(err))
		return nil, err
	}

	return result, nil
}

// ResetAll - помечает все площадки неиндексированными, следующий проход ETL перезальет индекс
func (e *PostgresExtractor) ResetAll(ctx context.Context) (int64, error) {
	res, err := e.DB.ExecContext(ctx, `UPDATE venues SET searching = FALSE`)
	if err != nil {
		e.Logger.Error("Failed to reset search flags", zap.Error(err))
		return 0, err
	}

	return res.RowsAffected()
}
