package history

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
	"github.com/magabrotheeeer/expense-insights/internal/models"
)

// Мок сервиса с методом History
type InsightServiceMock struct {
	mock.Mock
}

func (m *InsightServiceMock) History(ctx context.Context, userUID string) ([]*models.Insight, error) {
	args := m.Called(ctx, userUID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Insight), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHistoryHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	insights := []*models.Insight{
		{ID: 2, TimePeriod: "2026-03-01 to 2026-03-31", Insights: "March summary", TotalSpending: 300},
		{ID: 1, TimePeriod: "2026-02-01 to 2026-02-28", Insights: "February summary", TotalSpending: 250},
	}

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*InsightServiceMock)
		wantStatusCode int
		wantError      string
		wantCount      int
	}{
		{
			name:    "успешное чтение истории",
			userUID: "user-uid-1",
			setupMock: func(m *InsightServiceMock) {
				m.On("History", mock.Anything, "user-uid-1").Return(insights, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCount:      2,
		},
		{
			name:    "пустая история",
			userUID: "user-uid-2",
			setupMock: func(m *InsightServiceMock) {
				m.On("History", mock.Anything, "user-uid-2").Return([]*models.Insight{}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCount:      0,
		},
		{
			name:           "нет пользователя в контексте",
			userUID:        "",
			setupMock:      func(_ *InsightServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "authentication required",
		},
		{
			name:    "ошибка сервиса",
			userUID: "user-uid-1",
			setupMock: func(m *InsightServiceMock) {
				m.On("History", mock.Anything, "user-uid-1").Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not fetch insights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(InsightServiceMock)
			tt.setupMock(serviceMock)

			handler := New(logger, serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/expenses/insights/previous", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				list, ok := data["insights"].([]any)
				assert.True(t, ok)
				assert.Len(t, list, tt.wantCount)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
