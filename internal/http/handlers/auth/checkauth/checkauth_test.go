package checkauth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/expense-insights/internal/http/middlewarectx"
)

// Мок сервиса с методом ValidateToken
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func TestCheckAuthHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		cookie         *http.Cookie
		setupMock      func(*AuthServiceMock)
		wantStatusCode int
		wantAuth       bool
		wantUserUID    string
	}{
		{
			name:           "cookie отсутствует",
			cookie:         nil,
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantAuth:       false,
		},
		{
			name:           "пустое значение cookie",
			cookie:         &http.Cookie{Name: middlewarectx.TokenCookie, Value: ""},
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantAuth:       false,
		},
		{
			name:   "невалидный токен",
			cookie: &http.Cookie{Name: middlewarectx.TokenCookie, Value: "bad.token"},
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "bad.token").
					Return("", errors.New("token is invalid")).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantAuth:       false,
		},
		{
			name:   "валидный токен",
			cookie: &http.Cookie{Name: middlewarectx.TokenCookie, Value: "good.token"},
			setupMock: func(m *AuthServiceMock) {
				m.On("ValidateToken", mock.Anything, "good.token").
					Return("user-uid-1", nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantAuth:       true,
			wantUserUID:    "user-uid-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			handler := New(logger, authMock)

			req := httptest.NewRequest(http.MethodGet, "/users/check-auth", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantAuth, got["is_authenticated"])
			if tt.wantAuth {
				assert.Equal(t, tt.wantUserUID, got["user_uid"])
			} else {
				assert.Nil(t, got["user_uid"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
