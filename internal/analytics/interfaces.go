package analytics

import (
	"context"

	"venue-booking/internal/kafka"
)

// AnalyticsRepo - хранилище почасового спроса на площадки.
type AnalyticsRepo interface {
	AdjustDemand(ctx context.Context, venueID string, weights map[int]int) error
	RemoveVenue(ctx context.Context, venueID string) error
	TopHours(ctx context.Context, venueID string, limit int) ([]int, error)
}

// AnalyticsService - сервис аналитики спроса.
type AnalyticsService interface {
	ProcessEvent(ctx context.Context, event kafka.Event) error
	PeakHours(ctx context.Context, venueID string, limit int) ([]int, error)
}
