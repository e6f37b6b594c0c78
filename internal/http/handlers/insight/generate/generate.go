// Package generate реализует хендлер генерации аналитики расходов за период.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/expense-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-insights/internal/http/response"
	"github.com/magabrotheeeer/expense-insights/internal/lib/sl"
	"github.com/magabrotheeeer/expense-insights/internal/models"
	expensesvc "github.com/magabrotheeeer/expense-insights/internal/services/expense"
	services "github.com/magabrotheeeer/expense-insights/internal/services/insight"
)

// InsightService описывает операции сервисного слоя, необходимые хендлеру.
type InsightService interface {
	Generate(ctx context.Context, userUID string, start, end time.Time, timePeriod string) (*models.Insight, error)
}

// Handler обрабатывает запросы на генерацию аналитики.
type Handler struct {
	log      *slog.Logger
	service  InsightService
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service InsightService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP генерирует аналитику расходов за указанный период и сохраняет её.
//
// @Summary Генерация аналитики
// @Description Считает агрегаты расходов за период и генерирует текстовую аналитику
// @Tags insights
// @Accept json
// @Produce json
// @Param filter body models.DummyInsightFilter true "Границы периода в формате 2006-01-02"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /expenses/insights [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.insight.generate.New"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyInsightFilter
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("empty request"))
			return
		}
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	start, err := time.Parse(expensesvc.DateLayout, req.StartDate)
	if err != nil {
		log.Error("invalid start date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid start_date, expected format 2006-01-02"))
		return
	}
	end, err := time.Parse(expensesvc.DateLayout, req.EndDate)
	if err != nil {
		log.Error("invalid end date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid end_date, expected format 2006-01-02"))
		return
	}
	if end.Before(start) {
		log.Error("end date before start date")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("end_date must not be before start_date"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	timePeriod := fmt.Sprintf("%s to %s", req.StartDate, req.EndDate)
	insight, err := h.service.Generate(r.Context(), userUID, start, end, timePeriod)
	if err != nil {
		if errors.Is(err, services.ErrGeneration) {
			log.Error("failed to generate insights", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("failed to generate insights"))
			return
		}
		log.Error("failed to create insight", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create insight"))
		return
	}

	log.Info("insight generated", slog.Int64("id", insight.ID), slog.String("time_period", timePeriod))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"insight": insight,
	}))
}
