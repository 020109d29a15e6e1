package analytics

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"venue-booking/internal/handlers"
	myErr "venue-booking/internal/types/errors"
)

const defaultTopHours = 3

type Handler struct {
	service AnalyticsService
	logger  *zap.SugaredLogger
}

func NewHandler(service AnalyticsService, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// PeakHours - GET /venue/{venue_id}/peak-hours?top=3
func (h *Handler) PeakHours(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venue_id")
	if err != nil {
		myErr.SendError(w, err, h.logger)
		return
	}

	topN := defaultTopHours
	if topParam := r.URL.Query().Get("top"); topParam != "" {
		if n, err := strconv.Atoi(topParam); err == nil && n > 0 && n <= hoursPerDay {
			topN = n
		}
	}

	hours, err := h.service.PeakHours(r.Context(), venueID, topN)
	if err != nil {
		h.logger.Errorf("Failed to get peak hours of venue %s: %v", venueID, err)
		myErr.SendErrorTo(w, myErr.ErrDBInternal, http.StatusInternalServerError, h.logger)
		return
	}

	if len(hours) == 0 {
		hours = []int{} // пустой массив вместо null
	}

	handlers.SendJSON(w, http.StatusOK, map[string]interface{}{
		"venue_id": venueID,
		"hours":    hours,
	}, h.logger)
}
