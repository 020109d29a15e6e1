package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	myErr "venue-booking/internal/types/errors"
)

const (
	bearerPrefix = "Bearer "
	keyPrefix    = "session:"
)

type claims struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
	jwt.StandardClaims
}

type SessionRepository struct {
	RedisClient  *redis.Client
	Logger       *zap.SugaredLogger
	tokenSecret  string
	baseDuration time.Duration
}

func NewSessionRepository(
	redisClient *redis.Client,
	logger *zap.SugaredLogger,
	tokenSecret string,
	baseDuration time.Duration,
) *SessionRepository {
	return &SessionRepository{
		RedisClient:  redisClient,
		Logger:       logger,
		tokenSecret:  tokenSecret,
		baseDuration: baseDuration,
	}
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (sr *SessionRepository) CreateSession(
	ctx context.Context,
	w http.ResponseWriter,
	userID string,
	email string,
) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartTime: now,
		EndTime:   now.Add(sr.baseDuration),
	}

	if err := sr.save(ctx, sess); err != nil {
		return nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: sess.ID,
		Email:     email,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  sess.StartTime.Unix(),
			ExpiresAt: sess.EndTime.Unix(),
		},
	})

	tokenStr, err := token.SignedString([]byte(sr.tokenSecret))
	if err != nil {
		sr.Logger.Error("Failed to sign JWT token", zap.Error(err))
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(struct {
		Token string `json:"token"`
	}{Token: tokenStr}); err != nil {
		sr.Logger.Error("Failed to write response", zap.Error(err))
		return nil, fmt.Errorf("error writing response: %w", err)
	}

	sr.Logger.Infof("Session %s created for user %s", sess.ID, userID)
	return sess, nil
}

func (sr *SessionRepository) CheckSession(r *http.Request) (*Session, error) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, myErr.ErrNoAuth
	}

	var c claims
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(authHeader, bearerPrefix), &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(sr.tokenSecret), nil
	})
	if err != nil || !token.Valid || c.SessionID == "" {
		sr.Logger.Warnf("Invalid JWT token: %v", err)
		return nil, myErr.ErrNoAuth
	}

	ctx := r.Context()
	sess, err := sr.load(ctx, c.SessionID)
	if err != nil {
		return nil, err
	}

	if time.Now().After(sess.EndTime) {
		sr.dropExpired(ctx, sess.ID)
		return nil, myErr.ErrSessionIsExpired
	}

	return sess, nil
}

// dropExpired удаляет просроченную сессию, ошибка Redis только логируется
func (sr *SessionRepository) dropExpired(ctx context.Context, sessionID string) {
	if err := sr.RedisClient.Del(ctx, key(sessionID)).Err(); err != nil {
		sr.Logger.Warnw("Failed delete expired session from Redis", zap.Error(err), zap.String("sessionID", sessionID))
	}
}

func (sr *SessionRepository) DestroySession(ctx context.Context, sessionID string) error {
	if err := sr.RedisClient.Del(ctx, key(sessionID)).Err(); err != nil {
		sr.Logger.Errorw("Failed delete session from Redis", zap.Error(err), zap.String("sessionID", sessionID))
		return err
	}

	return nil
}

func (sr *SessionRepository) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		sr.Logger.Errorw("Failed encode session to JSON", zap.Error(err), zap.String("sessionID", sess.ID))
		return err
	}

	ttl := time.Until(sess.EndTime)
	if err = sr.RedisClient.Set(ctx, key(sess.ID), data, ttl).Err(); err != nil {
		sr.Logger.Errorw("Failed save session to Redis", zap.Error(err), zap.String("sessionID", sess.ID))
		return err
	}

	return nil
}

func (sr *SessionRepository) load(ctx context.Context, sessionID string) (*Session, error) {
	data, err := sr.RedisClient.Get(ctx, key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, myErr.ErrSessionNotFound
		}
		sr.Logger.Errorw("Failed get session from Redis", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, err
	}

	var sess Session
	if err = json.Unmarshal(data, &sess); err != nil {
		sr.Logger.Errorw("Failed decode session from JSON", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, err
	}

	return &sess, nil
}
