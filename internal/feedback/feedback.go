package feedback

import (
	"context"
	"time"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000

	DefaultRecentLimit = 5
	maxRecentLimit     = 50
)

// Feedback - отзыв пользователя о площадке, не привязан к конкретной брони
type Feedback struct {
	ID        string    `json:"id"`
	VenueID   string    `json:"venue_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	VenueName string    `json:"venue_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

//go:generate mockgen -source=feedback.go -destination=../mocks/mock_feedback_repo.go -package=mocks
type FeedbackRepo interface {
	// Create - создает отзыв, ErrAlreadyExists если пользователь уже оставил отзыв площадке
	Create(ctx context.Context, f Feedback) (*Feedback, error)
	// GetByID - получает отзыв по ID
	GetByID(ctx context.Context, id string) (*Feedback, error)
	// GetByVenueID - последние limit отзывов площадки, новые сверху
	GetByVenueID(ctx context.Context, venueID string, limit int) ([]Feedback, error)
	// GetByUserID - все отзывы пользователя
	GetByUserID(ctx context.Context, userID string) ([]Feedback, error)
	// Update - меняет оценку и комментарий
	Update(ctx context.Context, id string, rating int, comment string) (*Feedback, error)
	// Delete - удаляет отзыв
	Delete(ctx context.Context, id string) error
}
