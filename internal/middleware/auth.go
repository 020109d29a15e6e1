package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"venue-booking/internal/contextutil"
	"venue-booking/internal/session"
	myErr "venue-booking/internal/types/errors"
	"venue-booking/internal/user"
)

type SessKey string

var sessKey SessKey = "sessionKey"

// Auth проверяет сессию, подгружает пользователя и кладет Principal в контекст.
// Без валидной сессии отвечает 401.
func Auth(sessions session.SessionRepo, users user.UserRepo, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.CheckSession(r)
			if err != nil {
				myErr.SendErrorTo(w, authError(err), http.StatusUnauthorized, logger)
				return
			}

			u, err := users.Info(r.Context(), sess.UserID)
			if err != nil {
				if errors.Is(err, myErr.ErrNotFound) {
					myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, logger)
					return
				}
				myErr.SendError(w, err, logger)
				return
			}

			ctx := ContextWithSession(r.Context(), sess)
			ctx = contextutil.WithPrincipal(ctx, contextutil.Principal{
				UserID: u.ID,
				Name:   u.Name,
				Role:   u.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin ставится после Auth
func RequireAdmin(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := contextutil.PrincipalFromContext(r.Context())
			if !ok {
				myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, logger)
				return
			}
			if !p.IsAdmin() {
				myErr.SendErrorTo(w, myErr.ErrNotAuthorized, http.StatusForbidden, logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authError(err error) error {
	if errors.Is(err, myErr.ErrSessionIsExpired) || errors.Is(err, myErr.ErrSessionNotFound) {
		return err
	}
	return myErr.ErrNoAuth
}

func ContextWithSession(ctx context.Context, s *session.Session) context.Context {
	// создаем новый контекст с нашим ключом и сессией
	return context.WithValue(ctx, sessKey, s)
}

func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessKey).(*session.Session)
	return s, ok && s != nil
}
