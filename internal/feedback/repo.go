package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	myErr "venue-booking/internal/types/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type FeedbackDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewFeedbackDBRepository(db *sql.DB, l *zap.SugaredLogger) *FeedbackDBRepository {
	return &FeedbackDBRepository{
		DB:     db,
		Logger: l,
	}
}

const selectFeedback = `
	SELECT f.id, f.venue_id, f.user_id, COALESCE(u.name, ''), v.venue_name, f.rating, f.comment, f.created_at, f.updated_at
	FROM feedback f
	JOIN venues v ON v.id = f.venue_id
	LEFT JOIN users u ON u.id = f.user_id
	`

// Create - создает новый отзыв о площадке
// Возвращает созданный Feedback
func (fr *FeedbackDBRepository) Create(ctx context.Context, f Feedback) (*Feedback, error) {
	query := `
	INSERT INTO feedback (venue_id, user_id, rating, comment)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`

	err := fr.DB.QueryRowContext(ctx, query, f.VenueID, f.UserID, f.Rating, f.Comment).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return nil, myErr.ErrAlreadyExists
			case pqForeignKeyViolation:
				return nil, myErr.ErrNotFound
			}
		}
		fr.Logger.Errorw("Failed save feedback to DB", zap.Error(err), zap.String("venueID", f.VenueID))
		return nil, myErr.ErrDBInternal
	}

	fr.Logger.Info(fmt.Sprintf("Feedback %s for venue %s created successfully", f.ID, f.VenueID))

	return &f, nil
}

// GetByID - получает конкретный отзыв по ID
func (fr *FeedbackDBRepository) GetByID(ctx context.Context, id string) (*Feedback, error) {
	f, err := scanFeedback(fr.DB.QueryRowContext(ctx, selectFeedback+`WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		fr.Logger.Warnf("Error while load feedback info: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return &f, nil
}

// GetByVenueID - последние отзывы площадки
func (fr *FeedbackDBRepository) GetByVenueID(ctx context.Context, venueID string, limit int) ([]Feedback, error) {
	return fr.list(ctx, selectFeedback+`WHERE f.venue_id = $1 ORDER BY f.created_at DESC LIMIT $2`, venueID, limit)
}

// GetByUserID - все отзывы пользователя
func (fr *FeedbackDBRepository) GetByUserID(ctx context.Context, userID string) ([]Feedback, error) {
	return fr.list(ctx, selectFeedback+`WHERE f.user_id = $1 ORDER BY f.created_at DESC`, userID)
}

// Update - обновляет оценку и комментарий
// Возвращает обновленный Feedback
func (fr *FeedbackDBRepository) Update(ctx context.Context, id string, rating int, comment string) (*Feedback, error) {
	res, err := fr.DB.ExecContext(
		ctx,
		`UPDATE feedback SET rating = $1, comment = $2, updated_at = NOW() WHERE id = $3`,
		rating, comment, id,
	)
	if err != nil {
		fr.Logger.Errorw("Failed to update feedback", zap.Error(err), zap.String("feedbackID", id))
		return nil, myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		fr.Logger.Errorw("Failed to read affected rows", zap.Error(err))
		return nil, myErr.ErrDBInternal
	}
	if affected == 0 {
		return nil, myErr.ErrNotFound
	}

	return fr.GetByID(ctx, id)
}

// Delete - удаляет отзыв
func (fr *FeedbackDBRepository) Delete(ctx context.Context, id string) error {
	res, err := fr.DB.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		fr.Logger.Warnf("Ошибка при удалении отзыва: %v", err)
		return myErr.ErrDBInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		fr.Logger.Warnf("Ошибка при проверке удаления отзыва: %v", err)
		return myErr.ErrDBInternal
	}
	if affected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFeedback(s rowScanner) (Feedback, error) {
	var f Feedback
	err := s.Scan(&f.ID, &f.VenueID, &f.UserID, &f.UserName, &f.VenueName, &f.Rating, &f.Comment, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (fr *FeedbackDBRepository) list(ctx context.Context, query string, args ...interface{}) ([]Feedback, error) {
	rows, err := fr.DB.QueryContext(ctx, query, args...)
	if err != nil {
		fr.Logger.Errorw("Failed to get feedback from DB", zap.Error(err))
		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	res := make([]Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			fr.Logger.Errorw("Failed to scan feedback row from DB", zap.Error(err))
			return nil, myErr.ErrDBInternal
		}
		res = append(res, f)
	}

	if err := rows.Err(); err != nil {
		fr.Logger.Errorw("Error during feedback rows iteration", zap.Error(err))
		return nil, myErr.ErrDBInternal
	}

	return res, nil
}
