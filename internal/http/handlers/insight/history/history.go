// Package history реализует хендлер чтения истории аналитики пользователя.
package history

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

// InsightService описывает операции сервисного слоя, необходимые хендлеру.
type InsightService interface {
	History(ctx context.Context, userUID string) ([]*models.Insight, error)
}

// Handler обрабатывает запросы на получение истории аналитики.
type Handler struct {
	log     *slog.Logger
	service InsightService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service InsightService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP возвращает сохранённую аналитику пользователя, новые записи первыми.
//
// @Summary История аналитики
// @Description Возвращает все сохранённые записи аналитики текущего пользователя
// @Tags insights
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /expenses/insights/previous [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.insight.history.New"
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

	insights, err := h.service.History(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list insights", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch insights"))
		return
	}

	log.Info("insights listed", slog.Int("count", len(insights)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"insights": insights,
	}))
}
