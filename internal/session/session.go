package session

import (
	"context"
	"net/http"
	"time"
)

// Session - структура сессии
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// SessionRepo - репозиторий для работы с сессиями
//
//go:generate mockgen -source=session.go -destination=../mocks/mock_session_repo.go -package=mocks
type SessionRepo interface {
	// CreateSession - создает новую сессию пользователя в Redis и пишет JWT в ответ
	CreateSession(ctx context.Context, w http.ResponseWriter, userID string, email string) (*Session, error)
	// CheckSession - проверяет Bearer токен запроса и существование сессии в Redis
	// Возвращает *Session в случае успеха, иначе nil
	CheckSession(r *http.Request) (*Session, error)
	// DestroySession - удаляет сессию (выход)
	DestroySession(ctx context.Context, sessionID string) error
}
