package notice

import (
	"context"
	"time"
)

const (
	DefaultLimit = 3
	MinLimit     = 1
	MaxLimit     = 10

	fallbackAuthor = "Admin"
)

// Notice - объявление администратора
type Notice struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

//go:generate mockgen -source=notice.go -destination=../mocks/mock_notice_repo.go -package=mocks
type NoticeRepo interface {
	Create(ctx context.Context, n Notice) (*Notice, error)
	// GetLatest - последние limit объявлений, новые сверху
	GetLatest(ctx context.Context, limit int) ([]Notice, error)
	Update(ctx context.Context, id, title, message string) (*Notice, error)
	Delete(ctx context.Context, id string) error
}

// ClampLimit - limit по умолчанию 3, в пределах 1..10
func ClampLimit(limit *int) int {
	if limit == nil {
		return DefaultLimit
	}
	if *limit < MinLimit {
		return MinLimit
	}
	if *limit > MaxLimit {
		return MaxLimit
	}
	return *limit
}
