package notice

import (
	"net/http"

	"go.uber.org/zap"

	"venue-booking/internal/contextutil"
	"venue-booking/internal/handlers"
	"venue-booking/internal/notice"
	myErr "venue-booking/internal/types/errors"
	types "venue-booking/internal/types/notice"
)

type NoticeHandler struct {
	Logger *zap.SugaredLogger
	Board  *notice.Board
}

func NewNoticeHandler(l *zap.SugaredLogger, b *notice.Board) *NoticeHandler {
	return &NoticeHandler{
		Logger: l,
		Board:  b,
	}
}

// Latest - GET /api/notices?limit=
func (h *NoticeHandler) Latest(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if r.URL.Query().Get("limit") != "" {
		v, err := handlers.QueryInt(r, "limit", notice.DefaultLimit)
		if err != nil {
			myErr.SendError(w, err, h.Logger)
			return
		}
		limit = &v
	}

	list, err := h.Board.Latest(r.Context(), limit)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, list, h.Logger)
}

func (h *NoticeHandler) Post(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())

	var form types.NoticeForm
	if err := handlers.DecodeJSON(r, &form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	n, err := h.Board.Post(r.Context(), p, form)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.Logger.Infof("notice %s posted by %s", n.ID, p.UserID)
	handlers.SendJSON(w, http.StatusCreated, n, h.Logger)
}

func (h *NoticeHandler) Edit(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())
	id, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	var form types.NoticeForm
	if err = handlers.DecodeJSON(r, &form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	n, err := h.Board.Edit(r.Context(), p, id, form)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, n, h.Logger)
}

func (h *NoticeHandler) Remove(w http.ResponseWriter, r *http.Request) {
	p, _ := contextutil.PrincipalFromContext(r.Context())
	id, err := handlers.PathID(r, "id")
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	if err = h.Board.Remove(r.Context(), p, id); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendOK(w, h.Logger)
}
