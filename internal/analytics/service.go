package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"venue-booking/internal/kafka"
	"venue-booking/internal/ledger"
)

const hoursPerDay = 24

type Service struct {
	repo   AnalyticsRepo
	logger *zap.SugaredLogger
}

func NewService(repo AnalyticsRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.VenueID == "" {
		return nil // события без площадки игнорируем
	}

	switch event.Type {
	case kafka.EventTypeBookingCreated:
		return s.adjust(ctx, event, 1)
	case kafka.EventTypeBookingCancelled:
		return s.adjust(ctx, event, -1)
	case kafka.EventTypeVenueDeleted:
		return s.repo.RemoveVenue(ctx, event.VenueID)
	default:
		s.logger.Debugf("skipping event of unknown type %q", event.Type)
		return nil
	}
}

func (s *Service) adjust(ctx context.Context, event kafka.Event, sign int) error {
	weights, err := occupiedHours(event.StartTime, event.Hours)
	if err != nil {
		return fmt.Errorf("event for booking %s: %w", event.BookingID, err)
	}

	for hour := range weights {
		weights[hour] *= sign
	}

	return s.repo.AdjustDemand(ctx, event.VenueID, weights)
}

// occupiedHours - часы, которые задевает бронь [start, start+hours).
// Старт не по сетке (09:30) задевает на один час больше. После полуночи счет идет по кругу.
func occupiedHours(start string, hours int) (map[int]int, error) {
	if err := ledger.ValidateHours(hours); err != nil {
		return nil, err
	}
	minutes, err := ledger.ParseClock(start)
	if err != nil {
		return nil, err
	}

	first := minutes / 60
	last := (minutes + hours*60 - 1) / 60
	weights := make(map[int]int, last-first+1)
	for h := first; h <= last; h++ {
		weights[h%hoursPerDay]++
	}

	return weights, nil
}

func (s *Service) PeakHours(ctx context.Context, venueID string, limit int) ([]int, error) {
	return s.repo.TopHours(ctx, venueID, limit)
}
