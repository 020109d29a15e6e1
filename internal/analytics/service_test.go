package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-booking/internal/kafka"
	myErr "venue-booking/internal/types/errors"
)

// fakeRepo нужен для «подмены» AnalyticsRepo в тестах.
type fakeRepo struct {
	adjusted    bool
	removed     bool
	lastVenueID string
	lastWeights map[int]int

	returnErr error
}

func (f *fakeRepo) AdjustDemand(_ context.Context, venueID string, weights map[int]int) error {
	f.adjusted = true
	f.lastVenueID = venueID
	f.lastWeights = make(map[int]int, len(weights))
	for k, v := range weights {
		f.lastWeights[k] = v
	}
	return f.returnErr
}

func (f *fakeRepo) RemoveVenue(_ context.Context, venueID string) error {
	f.removed = true
	f.lastVenueID = venueID
	return f.returnErr
}

func (f *fakeRepo) TopHours(_ context.Context, _ string, _ int) ([]int, error) {
	return nil, nil
}

func TestService_ProcessEvent(t *testing.T) {
	tests := []struct {
		name        string
		event       kafka.Event
		wantAdjust  bool
		wantRemove  bool
		wantWeights map[int]int
	}{
		{
			name:       "empty venue is ignored",
			event:      kafka.Event{Type: kafka.EventTypeBookingCreated, StartTime: "10:00", Hours: 2},
			wantAdjust: false,
		},
		{
			name:        "created adds each occupied hour",
			event:       kafka.Event{Type: kafka.EventTypeBookingCreated, VenueID: "v-1", StartTime: "10:00", Hours: 3},
			wantAdjust:  true,
			wantWeights: map[int]int{10: 1, 11: 1, 12: 1},
		},
		{
			name:        "hours past midnight wrap around",
			event:       kafka.Event{Type: kafka.EventTypeBookingCreated, VenueID: "v-1", StartTime: "22:00", Hours: 4},
			wantAdjust:  true,
			wantWeights: map[int]int{22: 1, 23: 1, 0: 1, 1: 1},
		},
		{
			name:        "start off the hour touches one more hour",
			event:       kafka.Event{Type: kafka.EventTypeBookingCreated, VenueID: "v-1", StartTime: "09:30", Hours: 2},
			wantAdjust:  true,
			wantWeights: map[int]int{9: 1, 10: 1, 11: 1},
		},
		{
			name:        "off the hour across midnight",
			event:       kafka.Event{Type: kafka.EventTypeBookingCancelled, VenueID: "v-1", StartTime: "23:45", Hours: 1},
			wantAdjust:  true,
			wantWeights: map[int]int{23: -1, 0: -1},
		},
		{
			name:        "cancelled subtracts",
			event:       kafka.Event{Type: kafka.EventTypeBookingCancelled, VenueID: "v-1", StartTime: "09:00", Hours: 2},
			wantAdjust:  true,
			wantWeights: map[int]int{9: -1, 10: -1},
		},
		{
			name:       "venue deleted removes rows",
			event:      kafka.Event{Type: kafka.EventTypeVenueDeleted, VenueID: "v-1"},
			wantRemove: true,
		},
		{
			name:  "unknown type is skipped",
			event: kafka.Event{Type: "venue_viewed", VenueID: "v-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			service := NewService(repo, zapTestLogger(t))

			require.NoError(t, service.ProcessEvent(context.Background(), tt.event))

			assert.Equal(t, tt.wantAdjust, repo.adjusted)
			assert.Equal(t, tt.wantRemove, repo.removed)
			if tt.wantAdjust {
				assert.Equal(t, "v-1", repo.lastVenueID)
				assert.Equal(t, tt.wantWeights, repo.lastWeights)
			}
		})
	}
}

func TestService_ProcessEvent_BadSlot(t *testing.T) {
	tests := []kafka.Event{
		{Type: kafka.EventTypeBookingCreated, VenueID: "v-1", StartTime: "9:00", Hours: 2},
		{Type: kafka.EventTypeBookingCreated, VenueID: "v-1", StartTime: "09:00", Hours: 0},
		{Type: kafka.EventTypeBookingCancelled, VenueID: "v-1", StartTime: "09:00", Hours: 13},
	}

	for _, evt := range tests {
		repo := &fakeRepo{}
		service := NewService(repo, zapTestLogger(t))

		err := service.ProcessEvent(context.Background(), evt)
		assert.True(t, errors.Is(err, myErr.ErrValidation), "event %+v", evt)
		assert.False(t, repo.adjusted)
	}
}

func TestService_ProcessEvent_RepoError(t *testing.T) {
	repo := &fakeRepo{returnErr: errors.New("db error")}
	service := NewService(repo, zapTestLogger(t))

	err := service.ProcessEvent(context.Background(), kafka.Event{
		Type:      kafka.EventTypeBookingCreated,
		VenueID:   "v-5",
		StartTime: "12:00",
		Hours:     1,
	})
	assert.Error(t, err)
}
