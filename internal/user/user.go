package user

import (
	"context"
	"time"

	"venue-booking/internal/contextutil"
	types "venue-booking/internal/types/user"
)

const (
	RoleUser  = contextutil.RoleUser
	RoleAdmin = contextutil.RoleAdmin
)

// User структура пользователя
type User struct {
	ID           string    `json:"user_id"` // uuid
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRepo интерфейс удовлетворяющий методам сущности пользователя
//
//go:generate mockgen -source=user.go -destination=../mocks/mock_user_repo.go -package=mocks
type UserRepo interface {
	// CheckUser - проверяет пользователя по почте и паролю
	CheckUser(ctx context.Context, email, password string) (*User, error)
	// CreateUser создает пользователя с ролью user
	CreateUser(ctx context.Context, u types.CreateUser) (*User, error)
	// Info возвращает информацию о пользователе
	Info(ctx context.Context, userID string) (*User, error)
	// SetRole меняет роль пользователя по почте
	SetRole(ctx context.Context, email, role string) error
}
