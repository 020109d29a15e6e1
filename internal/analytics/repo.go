package analytics

import (
	"context"
	"database/sql"
	"sort"

	"go.uber.org/zap"
)

type Repository struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewRepository(db *sql.DB, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AdjustDemand прибавляет веса к часам площадки одной транзакцией, часы по возрастанию
func (r *Repository) AdjustDemand(ctx context.Context, venueID string, weights map[int]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint:errcheck

	hours := make([]int, 0, len(weights))
	for hour := range weights {
		hours = append(hours, hour)
	}
	sort.Ints(hours)

	for _, hour := range hours {
		weight := weights[hour]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO venue_demand (venue_id, hour, weight)
			VALUES ($1, $2, $3)
			ON CONFLICT (venue_id, hour)
			DO UPDATE SET weight = venue_demand.weight + EXCLUDED.weight
		`, venueID, hour, weight)

		if err != nil {
			r.logger.Errorf("Failed to adjust demand of venue %s at hour %d: %v", venueID, hour, err)
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) RemoveVenue(ctx context.Context, venueID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM venue_demand WHERE venue_id = $1`, venueID)
	if err != nil {
		r.logger.Errorf("Failed to remove demand of venue %s: %v", venueID, err)
	}
	return err
}

// TopHours - самые востребованные часы, часы без спроса не возвращаются
func (r *Repository) TopHours(ctx context.Context, venueID string, limit int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT hour
		FROM venue_demand
		WHERE venue_id = $1 AND weight > 0
		ORDER BY weight DESC, hour
		LIMIT $2
	`, venueID, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hours []int
	for rows.Next() {
		var hour int
		if err := rows.Scan(&hour); err != nil {
			return nil, err
		}
		hours = append(hours, hour)
	}

	return hours, rows.Err()
}
