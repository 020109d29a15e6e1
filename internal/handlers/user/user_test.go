package user

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"go.uber.org/zap"

	"venue-booking/internal/contextutil"
	"venue-booking/internal/middleware"
	"venue-booking/internal/mocks"
	"venue-booking/internal/session"
	myErr "venue-booking/internal/types/errors"
	types "venue-booking/internal/types/user"
	"venue-booking/internal/user"
)

const (
	invalidJSON = "Invalid JSON"
)

func TestUserHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepo(ctrl)
	mockSessionRepo := mocks.NewMockSessionRepo(ctrl)
	handler := NewUserHandler(zap.NewNop().Sugar(), mockUserRepo, mockSessionRepo)

	tests := []struct {
		name           string
		body           types.LoginUser
		mockBehavior   func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: types.LoginUser{Email: "test@example.com", Password: "123456"},
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CheckUser(gomock.Any(), "test@example.com", "123456").
					Return(&user.User{ID: "1", Email: "test@example.com"}, nil)

				mockSessionRepo.EXPECT().
					CreateSession(gomock.Any(), gomock.Any(), "1", "test@example.com").
					Return(&session.Session{ID: "sess-123"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "User Not Found",
			body: types.LoginUser{Email: "notfound@example.com", Password: "123456"},
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CheckUser(gomock.Any(), "notfound@example.com", "123456").
					Return(nil, myErr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Wrong Password",
			body: types.LoginUser{Email: "test@example.com", Password: "wrongpass"},
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CheckUser(gomock.Any(), "test@example.com", "wrongpass").
					Return(nil, myErr.ErrBadPassword)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Internal Error",
			body: types.LoginUser{Email: "test@example.com", Password: "123456"},
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CheckUser(gomock.Any(), "test@example.com", "123456").
					Return(nil, errors.New("db failure"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "Missing Password",
			body:           types.LoginUser{Email: "test@example.com"},
			mockBehavior:   func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           invalidJSON,
			mockBehavior:   func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			var body io.Reader
			if tt.name == invalidJSON {
				body = strings.NewReader("{invalid-json}")
			} else {
				bodyBytes, _ := json.Marshal(tt.body) // nolint:errcheck
				body = bytes.NewReader(bodyBytes)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/user/login", body)
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()

			handler.Login(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestUserHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepo(ctrl)
	mockSessionRepo := mocks.NewMockSessionRepo(ctrl)
	handler := NewUserHandler(zap.NewNop().Sugar(), mockUserRepo, mockSessionRepo)

	valid := types.CreateUser{Name: "Test", Email: "test@example.com", Password: "123456"}

	tests := []struct {
		name           string
		body           types.CreateUser
		mockBehavior   func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: valid,
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CreateUser(gomock.Any(), valid).
					Return(&user.User{ID: "1", Email: "test@example.com"}, nil)

				mockSessionRepo.EXPECT().
					CreateSession(gomock.Any(), gomock.AssignableToTypeOf(httptest.NewRecorder()), "1", "test@example.com").
					Return(&session.Session{ID: "sess-123"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid Email Format",
			body:           types.CreateUser{Name: "Test", Email: "invalid-email", Password: "123456"},
			mockBehavior:   func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Short Password",
			body:           types.CreateUser{Name: "Test", Email: "test@example.com", Password: "123"},
			mockBehavior:   func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "User Already Exists",
			body: valid,
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(nil, myErr.ErrAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Internal Error",
			body: valid,
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			bodyBytes, _ := json.Marshal(tt.body) // nolint:errcheck
			req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(bodyBytes))
			req.Header.Set("Content-Type", "application/json")

			rr := httptest.NewRecorder()

			handler.Register(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func withPrincipal(req *http.Request, userID string) *http.Request {
	ctx := contextutil.WithPrincipal(req.Context(), contextutil.Principal{UserID: userID, Role: contextutil.RoleUser})
	return req.WithContext(ctx)
}

func TestUserHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepo(ctrl)
	handler := NewUserHandler(zap.NewNop().Sugar(), mockRepo, mocks.NewMockSessionRepo(ctrl))

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().
			Info(gomock.Any(), "u-1").
			Return(&user.User{ID: "u-1", Name: "Test", Email: "test@example.com", PasswordHash: "secret"}, nil)

		rr := httptest.NewRecorder()
		handler.Me(rr, withPrincipal(httptest.NewRequest(http.MethodGet, "/api/user/me", nil), "u-1"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, false, strings.Contains(rr.Body.String(), "secret"))
	})

	t.Run("Anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.Me(rr, httptest.NewRequest(http.MethodGet, "/api/user/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUserHandler_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessionRepo := mocks.NewMockSessionRepo(ctrl)
	handler := NewUserHandler(zap.NewNop().Sugar(), mocks.NewMockUserRepo(ctrl), mockSessionRepo)

	tests := []struct {
		name           string
		sess           *session.Session
		mockBehavior   func()
		expectedStatus int
	}{
		{
			name: "Success",
			sess: &session.Session{ID: "sess-1", UserID: "u-1"},
			mockBehavior: func() {
				mockSessionRepo.EXPECT().DestroySession(gomock.Any(), "sess-1").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "No Session",
			mockBehavior:   func() {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Redis Down",
			sess: &session.Session{ID: "sess-1", UserID: "u-1"},
			mockBehavior: func() {
				mockSessionRepo.EXPECT().DestroySession(gomock.Any(), "sess-1").Return(errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
			if tt.sess != nil {
				req = req.WithContext(middleware.ContextWithSession(context.Background(), tt.sess))
			}

			rr := httptest.NewRecorder()
			handler.Logout(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
