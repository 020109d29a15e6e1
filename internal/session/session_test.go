package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	jwt "github.com/dgrijalva/jwt-go"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	myErr "venue-booking/internal/types/errors"
)

func setupTestRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	logger := zaptest.NewLogger(t).Sugar()

	return NewSessionRepository(rdb, logger, "secret", 15*time.Minute), mr
}

func putSession(t *testing.T, mr *miniredis.Miniredis, sess Session) {
	data, err := json.Marshal(sess)
	require.NoError(t, err)
	require.NoError(t, mr.Set(keyPrefix+sess.ID, string(data)))
}

func signToken(t *testing.T, secret, sessionID, userID string, exp time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: sessionID,
		Email:     "user@example.com",
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: exp.Unix(),
		},
	})
	tokenStr, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return tokenStr
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestCreateSession(t *testing.T) {
	repo, mr := setupTestRepo(t)

	w := httptest.NewRecorder()
	sess, err := repo.CreateSession(context.Background(), w, "user-123", "user@example.com")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user-123", sess.UserID)

	// сессия в Redis с TTL
	val, err := mr.Get(keyPrefix + sess.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, val)
	assert.True(t, mr.TTL(keyPrefix+sess.ID) > 0)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var response struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	require.NotEmpty(t, response.Token)

	// выданный токен сразу проходит проверку
	checked, err := repo.CheckSession(requestWithToken(response.Token))
	require.NoError(t, err)
	assert.Equal(t, sess.ID, checked.ID)
	assert.Equal(t, "user-123", checked.UserID)
}

func TestCheckSession(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, mr *miniredis.Miniredis) string
		wantErr error
	}{
		{
			name: "valid session",
			setup: func(t *testing.T, mr *miniredis.Miniredis) string {
				putSession(t, mr, Session{
					ID:        "session-1",
					UserID:    "user-id",
					StartTime: time.Now().Add(-5 * time.Minute),
					EndTime:   time.Now().Add(10 * time.Minute),
				})
				return signToken(t, "secret", "session-1", "user-id", time.Now().Add(15*time.Minute))
			},
		},
		{
			name: "missing header",
			setup: func(t *testing.T, mr *miniredis.Miniredis) string {
				return ""
			},
			wantErr: myErr.ErrNoAuth,
		},
		{
			name: "garbage token",
			setup: func(t *testing.T, mr *miniredis.Miniredis) string {
				return "invalid.token.value"
			},
			wantErr: myErr.ErrNoAuth,
		},
		{
			name: "foreign secret",
			setup: func(t *testing.T, mr *miniredis.Miniredis) string {
				return signToken(t, "other", "session-1", "user-id", time.Now().Add(15*time.Minute))
			},
			wantErr: myErr.ErrNoAuth,
		},
		{
			name: "expired token",
			setup: func(t *testing.T, mr *miniredis.Miniredis) string {
				return signToken(t, "secret", "session-1", "user-id", time.Now().Add(-time.Minute))
			},
			wantErr: myErr.ErrNoAuth,
		},
		{
			name: "session destroyed",
			setup: func(t *testing.T, mr *miniredis.Miniredis) string {
				return signToken(t, "secret", "gone", "user-id", time.Now().Add(15*time.Minute))
			},
			wantErr: myErr.ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mr := setupTestRepo(t)
			token := tt.setup(t, mr)

			sess, err := repo.CheckSession(requestWithToken(token))
			if tt.wantErr != nil {
				assert.Nil(t, sess)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "session-1", sess.ID)
		})
	}
}

func TestCheckSession_SessionExpired(t *testing.T) {
	repo, mr := setupTestRepo(t)

	putSession(t, mr, Session{
		ID:        "expired-session",
		UserID:    "user-id",
		StartTime: time.Now().Add(-30 * time.Minute),
		EndTime:   time.Now().Add(-10 * time.Minute),
	})
	token := signToken(t, "secret", "expired-session", "user-id", time.Now().Add(15*time.Minute))

	sess, err := repo.CheckSession(requestWithToken(token))
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, myErr.ErrSessionIsExpired)
	assert.False(t, mr.Exists(keyPrefix+"expired-session"))
}

func TestDropExpired_LogsRedisFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	core, logs := observer.New(zap.WarnLevel)
	repo := NewSessionRepository(redis.NewClient(&redis.Options{Addr: mr.Addr()}), zap.New(core).Sugar(), "secret", time.Minute)

	// Redis недоступен
	mr.Close()
	repo.dropExpired(context.Background(), "s-1")

	entries := logs.FilterMessage("Failed delete expired session from Redis").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "s-1", entries[0].ContextMap()["sessionID"])
}

func TestDestroySession(t *testing.T) {
	repo, mr := setupTestRepo(t)

	putSession(t, mr, Session{ID: "s", UserID: "u", EndTime: time.Now().Add(time.Minute)})

	require.NoError(t, repo.DestroySession(context.Background(), "s"))
	assert.False(t, mr.Exists(keyPrefix+"s"))

	// повторный выход не ошибка
	assert.NoError(t, repo.DestroySession(context.Background(), "s"))
}
