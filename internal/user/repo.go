package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	myErr "venue-booking/internal/types/errors"
	types "venue-booking/internal/types/user"
)

type UserDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewUserDBRepository(db *sql.DB, l *zap.SugaredLogger) *UserDBRepository {
	return &UserDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (ur *UserDBRepository) CreateUser(ctx context.Context, form types.CreateUser) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		ur.Logger.Warnf("Ошибка при хешировании пароля: %v", err)
		return nil, myErr.ErrDBInternal
	}

	u := &User{
		Name:         strings.TrimSpace(form.Name),
		Email:        strings.ToLower(strings.TrimSpace(form.Email)),
		Role:         RoleUser,
		PasswordHash: string(hash),
	}

	err = ur.DB.QueryRowContext(ctx, `
	INSERT INTO users (name, email, role, password_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at
	`, u.Name, u.Email, u.Role, u.PasswordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, myErr.ErrAlreadyExists
		}
		ur.Logger.Warnf("Ошибка при создании пользователя: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) CheckUser(ctx context.Context, email, password string) (*User, error) {
	u := &User{}
	err := ur.DB.QueryRowContext(ctx, `
	SELECT id, name, email, role, password_hash, created_at
	FROM users
	WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email))).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при поиске пользователя: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, myErr.ErrBadPassword
	}

	return u, nil
}

func (ur *UserDBRepository) Info(ctx context.Context, userID string) (*User, error) {
	u := &User{}
	err := ur.DB.QueryRowContext(ctx, `
	SELECT id, name, email, role, created_at
	FROM users
	WHERE id = $1
	`, userID).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при получения информации о пользователе: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

func (ur *UserDBRepository) SetRole(ctx context.Context, email, role string) error {
	if role != RoleUser && role != RoleAdmin {
		return fmt.Errorf("%w: role must be %q or %q", myErr.ErrValidation, RoleUser, RoleAdmin)
	}

	res, err := ur.DB.ExecContext(ctx, `UPDATE users SET role = $1 WHERE email = $2`, role, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		ur.Logger.Warnf("Ошибка при смене роли: %v", err)
		return myErr.ErrDBInternal
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		ur.Logger.Warnf("Не удалось получить количество обновлённых строк: %v", err)
		return myErr.ErrDBInternal
	}
	if rowsAffected == 0 {
		return myErr.ErrNotFound
	}

	return nil
}
