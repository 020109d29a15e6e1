package notice

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	myErr "venue-booking/internal/types/errors"
)

type NoticeDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewNoticeDBRepository(db *sql.DB, l *zap.SugaredLogger) *NoticeDBRepository {
	return &NoticeDBRepository{
		DB:     db,
		Logger: l,
	}
}

const selectNotice = `
	SELECT n.id, n.author_id, COALESCE(NULLIF(u.name, ''), $1), n.title, n.message, n.created_at
	FROM notices n
	LEFT JOIN users u ON u.id = n.author_id
	`

func (nr *NoticeDBRepository) Create(ctx context.Context, n Notice) (*Notice, error) {
	err := nr.DB.QueryRowContext(ctx, `
	INSERT INTO notices (author_id, title, message)
	VALUES ($1, $2, $3)
	RETURNING id, created_at
	`, n.AuthorID, n.Title, n.Message).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		nr.Logger.Errorf("Error creating notice: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return nr.getByID(ctx, n.ID)
}

func (nr *NoticeDBRepository) GetLatest(ctx context.Context, limit int) ([]Notice, error) {
	rows, err := nr.DB.QueryContext(ctx, selectNotice+`ORDER BY n.created_at DESC LIMIT $2`, fallbackAuthor, limit)
	if err != nil {
		nr.Logger.Errorf("Error getting latest %d notices: %v", limit, err)
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	notices := make([]Notice, 0, limit)
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.AuthorID, &n.AuthorName, &n.Title, &n.Message, &n.CreatedAt); err != nil {
			nr.Logger.Errorf("Error scanning notice row: %v", err)
			return nil, myErr.ErrDBInternal
		}
		notices = append(notices, n)
	}

	if err := rows.Err(); err != nil {
		nr.Logger.Errorf("Error iterating notice rows: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return notices, nil
}

func (nr *NoticeDBRepository) Update(ctx context.Context, id, title, message string) (*Notice, error) {
	res, err := nr.DB.ExecContext(ctx, `UPDATE notices SET title = $1, message = $2 WHERE id = $3`, title, message, id)
	if err != nil {
		nr.Logger.Errorf("Error updating notice %s: %v", id, err)
		return nil, myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		nr.Logger.Errorf("Error reading affected rows: %v", err)
		return nil, myErr.ErrDBInternal
	}
	if affected == 0 {
		return nil, myErr.ErrNotFound
	}

	return nr.getByID(ctx, id)
}

func (nr *NoticeDBRepository) Delete(ctx context.Context, id string) error {
	res, err := nr.DB.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		nr.Logger.Errorf("Error deleting notice %s: %v", id, err)
		return myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		nr.Logger.Errorf("Error reading affected rows: %v", err)
		return myErr.ErrDBInternal
	}
	if affected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}

func (nr *NoticeDBRepository) getByID(ctx context.Context, id string) (*Notice, error) {
	var n Notice
	err := nr.DB.QueryRowContext(ctx, selectNotice+`WHERE n.id = $2`, fallbackAuthor, id).
		Scan(&n.ID, &n.AuthorID, &n.AuthorName, &n.Title, &n.Message, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		nr.Logger.Errorf("Error getting notice by ID: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &n, nil
}
