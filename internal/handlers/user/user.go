package user

import (
	"net/http"

	"go.uber.org/zap"

	"venue-booking/internal/contextutil"
	"venue-booking/internal/handlers"
	"venue-booking/internal/middleware"
	"venue-booking/internal/session"
	myErr "venue-booking/internal/types/errors"
	types "venue-booking/internal/types/user"
	"venue-booking/internal/types/validation"
	"venue-booking/internal/user"
)

type UserHandler struct {
	Logger         *zap.SugaredLogger
	UserRepository user.UserRepo
	SessionManager session.SessionRepo
}

func NewUserHandler(l *zap.SugaredLogger, ur user.UserRepo, sr session.SessionRepo) *UserHandler {
	return &UserHandler{
		Logger:         l,
		UserRepository: ur,
		SessionManager: sr,
	}
}

// Register создает пользователя и сразу выдает ему токен сессии
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form types.CreateUser
	if err := handlers.DecodeJSON(r, &form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}
	if err := validation.Struct(form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	u, err := h.UserRepository.CreateUser(r.Context(), form)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	// CreateSession сам пишет токен в ответ
	sess, err := h.SessionManager.CreateSession(r.Context(), w, u.ID, u.Email)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.Logger.Infof("user %s registered, session %s", u.ID, sess.ID)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form types.LoginUser
	if err := handlers.DecodeJSON(r, &form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}
	if err := validation.Struct(form); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	u, err := h.UserRepository.CheckUser(r.Context(), form.Email, form.Password)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	sess, err := h.SessionManager.CreateSession(r.Context(), w, u.ID, u.Email)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.Logger.Infof("created session for %v", sess.ID)
}

// Me - профиль текущего пользователя
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := contextutil.PrincipalFromContext(r.Context())
	if !ok {
		myErr.SendError(w, myErr.ErrNoAuth, h.Logger)
		return
	}

	u, err := h.UserRepository.Info(r.Context(), p.UserID)
	if err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	handlers.SendJSON(w, http.StatusOK, u, h.Logger)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		myErr.SendError(w, myErr.ErrNoAuth, h.Logger)
		return
	}

	if err := h.SessionManager.DestroySession(r.Context(), sess.ID); err != nil {
		myErr.SendError(w, err, h.Logger)
		return
	}

	h.Logger.Infof("session %s closed", sess.ID)
	handlers.SendOK(w, h.Logger)
}
