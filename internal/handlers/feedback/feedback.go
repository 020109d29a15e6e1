package feedback

import (
	"net/http"

	"go.uber.org/zap"

	"venue-booking/internal/contextutil"
	"venue-booking/internal/feedback"
	"venue-booking/internal/handlers"
	myErr "venue-booking/internal/types/errors"
	types "venue-booking/internal/types/feedback"
)

type FeedbackHandler struct {
	Logger  *zap.SugaredLogger
	Service *feedback.Service
}

func NewFeedbackHandler(l *zap.SugaredLogger, s *feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{
		Logger:  l,
		Service: s,
	}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())

	var form types.CreateFeedback
	if err := handlers.DecodeJSON(r, &form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}
	if form.VenueID != "" {
		if err := handlers.CheckID(form.VenueID); err != nil {
			myErr.SendError(w, err, h.Logger)
			return
		}
	}

	f, err := h.Service.Submit(r.Context(), p, form)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.Logger.Infof("feedback %s left on venue %s", f.ID, f.VenueID)
	handlers.SendJSON(w, http.StatusCreated, f, h.Logger)
}

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())
	id, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	var form types.UpdateFeedback
	if err = handlers.DecodeJSON(r, &form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	f, err := h.Service.Update(r.Context(), p, id, form)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, f, h.Logger)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())
	id, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	if err = h.Service.Delete(r.Context(), p, id); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendOK(w, h.Logger)
}

// ForVenue - GET /api/venues/{id}/feedback?limit=
func (h *FeedbackHandler) ForVenue(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	limit, err := handlers.QueryInt(r, "limit", feedback.DefaultRecentLimit)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	list, err := h.Service.ForVenue(r.Context(), venueID, limit)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, list, h.Logger)
}

func (h *FeedbackHandler) Mine(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())

	list, err := h.Service.ForUser(r.Context(), p)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, list, h.Logger)
}
