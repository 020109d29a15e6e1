package venue

import (
	"context"
	"time"
)

// Venue - площадка для бронирования
type Venue struct {
	ID            string    `json:"id"`
	Name          string    `json:"venue_name"`
	Type          string    `json:"type"`
	Capacity      int       `json:"capacity"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	ImageID       string    `json:"image_id,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating *float64  `json:"average_rating"`
	FeedbackCount int       `json:"feedback_count"`
}

//go:generate mockgen -source=venue.go -destination=../mocks/mock_venue_repo.go -package=mocks
type VenueRepo interface {
	Create(ctx context.Context, v Venue) (*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	// GetByIDs - площадки в порядке ids, отсутствующие пропускаются
	GetByIDs(ctx context.Context, ids []string) ([]Venue, error)
	List(ctx context.Context) ([]Venue, error)
	// Search - поиск подстроки без учета регистра по названию, адресу, типу и описанию
	Search(ctx context.Context, query string) ([]Venue, error)
	// Ratings - оценки отзывов по площадкам
	Ratings(ctx context.Context, ids []string) (map[string][]int, error)
	// Delete - каскадно удаляет брони, отзывы и саму площадку, возвращает id ее изображения
	Delete(ctx context.Context, id string) (string, error)
}
