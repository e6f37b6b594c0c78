package create

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
	services "github.com/magabrotheeeer/expense-insights/internal/services/expense"
)

// Мок сервиса с методом Create
type ExpenseServiceMock struct {
	mock.Mock
}

func (m *ExpenseServiceMock) Create(ctx context.Context, userUID string, req models.DummyExpense) (*models.Expense, error) {
	args := m.Called(ctx, userUID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Expense), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	validBody := models.DummyExpense{
		Amount:      12.5,
		Description: "Lunch at cafe",
		Date:        "2026-03-01",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		userUID        string
		setupMock      func(*ExpenseServiceMock)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "успешное создание расхода",
			requestBody: validBody,
			userUID:     "user-uid-1",
			setupMock: func(m *ExpenseServiceMock) {
				expense := &models.Expense{
					ID:          42,
					Amount:      12.5,
					Description: "Lunch at cafe",
					Category:    "Food",
					SpentAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				}
				m.On("Create", mock.Anything, "user-uid-1", validBody).Return(expense, nil).Once()
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "некорректный json",
			requestBody:    "not a json",
			userUID:        "user-uid-1",
			setupMock:      func(_ *ExpenseServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "нулевая сумма отклоняется валидатором",
			requestBody:    models.DummyExpense{Amount: 0, Description: "free?"},
			userUID:        "user-uid-1",
			setupMock:      func(_ *ExpenseServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Amount is a required field",
		},
		{
			name:           "отрицательная сумма отклоняется валидатором",
			requestBody:    models.DummyExpense{Amount: -3, Description: "refund"},
			userUID:        "user-uid-1",
			setupMock:      func(_ *ExpenseServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Amount must be greater than 0",
		},
		{
			name:           "нет пользователя в контексте",
			requestBody:    validBody,
			userUID:        "",
			setupMock:      func(_ *ExpenseServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
		},
		{
			name:        "непригодная дата",
			requestBody: models.DummyExpense{Amount: 5, Description: "coffee", Date: "03/01/2026"},
			userUID:     "user-uid-1",
			setupMock: func(m *ExpenseServiceMock) {
				m.On("Create", mock.Anything, "user-uid-1", mock.Anything).
					Return(nil, services.ErrInvalidDate).Once()
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid date, expected format 2006-01-02",
		},
		{
			name:        "сбой классификатора",
			requestBody: validBody,
			userUID:     "user-uid-1",
			setupMock: func(m *ExpenseServiceMock) {
				m.On("Create", mock.Anything, "user-uid-1", validBody).
					Return(nil, services.ErrClassification).Once()
			},
			wantStatusCode: http.StatusBadGateway,
			wantError:      "failed to categorize expense",
		},
		{
			name:        "ошибка хранилища",
			requestBody: validBody,
			userUID:     "user-uid-1",
			setupMock: func(m *ExpenseServiceMock) {
				m.On("Create", mock.Anything, "user-uid-1", validBody).
					Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not create expense",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ExpenseServiceMock)
			tt.setupMock(serviceMock)

			handler := New(logger, serviceMock)

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

			req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewReader(bodyBytes))
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
				assert.Equal(t, "Food", data["category"])
				assert.InDelta(t, 12.5, data["amount"], 0.001)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
