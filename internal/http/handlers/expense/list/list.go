// Package list реализует хендлер для чтения списка трат пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-insights/internal/http/response"
	"github.com/magabrotheeeer/expense-insights/internal/lib/sl"
	"github.com/magabrotheeeer/expense-insights/internal/models"
)

// ExpenseService описывает операции сервисного слоя, необходимые хендлеру.
type ExpenseService interface {
	List(ctx context.Context, userUID string) ([]*models.Expense, error)
}

// Handler обрабатывает запросы на получение списка трат.
type Handler struct {
	log     *slog.Logger
	service ExpenseService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service ExpenseService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает все траты пользователя, отсортированные по дате.
//
// @Summary Список трат
// @Description Возвращает все траты текущего пользователя, новые первыми
// @Tags expenses
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /expenses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.list.New"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	expenses, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list expenses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch expenses"))
		return
	}

	log.Info("expenses listed", slog.Int("count", len(expenses)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"expenses": expenses,
	}))
}
