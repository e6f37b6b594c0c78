package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/expense-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-insights/internal/models"
	services "github.com/magabrotheeeer/expense-insights/internal/services/auth"
)

// Мок сервиса с методом Register
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, email, password)
	var user *models.User
	if res := args.Get(0); res != nil {
		user = res.(*models.User)
	}
	return user, args.String(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, authMock, time.Hour)

	user := &models.User{
		UID:      "9f36b6cb-46ae-4a7e-9d5a-7df823f3a9b4",
		Username: "user1",
		Email:    "user1@example.com",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockUser       *models.User
		mockToken      string
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
		wantCookie     bool
	}{
		{
			name: "valid registration",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockUser:       user,
			mockToken:      "signed.jwt.token",
			wantStatusCode: http.StatusCreated,
			wantStatus:     "OK",
			wantCookie:     true,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name: "validation error - missing password",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name: "email already taken",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockErr:        services.ErrUserExists,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "user already exists",
			wantStatus:     "Error",
		},
		{
			name: "registration service error",
			requestBody: Request{
				Username: "user1",
				Email:    "user1@example.com",
				Password: "password123",
			},
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			if tt.mockUser != nil || tt.mockErr != nil {
				authMock.On("Register", mock.Anything,
					"user1", "user1@example.com", "password123",
				).Return(tt.mockUser, tt.mockToken, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/users/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "Registration successful", data["message"])
				gotUser, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, user.UID, gotUser["uid"])
				assert.Equal(t, user.Email, gotUser["email"])
			}

			var tokenCookie *http.Cookie
			for _, c := range rec.Result().Cookies() {
				if c.Name == middlewarectx.TokenCookie {
					tokenCookie = c
				}
			}
			if tt.wantCookie {
				assert.NotNil(t, tokenCookie)
				assert.Equal(t, tt.mockToken, tokenCookie.Value)
				assert.True(t, tokenCookie.HttpOnly)
			} else {
				assert.Nil(t, tokenCookie)
			}

			authMock.AssertExpectations(t)
		})
	}
}
