// Package checkauth реализует HTTP-обработчик проверки текущей сессии.
//
// Обработчик сам читает cookie и проверяет токен, не полагаясь на общий
// middleware: при любой проблеме клиент получает 401 с is_authenticated=false
// вместо общего сообщения об ошибке.
package checkauth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-insights/internal/lib/sl"
)

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// Handler обрабатывает HTTP-запросы проверки сессии.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверка сессии
// @Description Проверяет токен из cookie и возвращает идентификатор пользователя.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Сессия действительна"
// @Failure 401 {object} map[string]any "Сессия отсутствует или недействительна"
// @Router /users/check-auth [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.checkauth"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie, err := r.Cookie(middlewarectx.TokenCookie)
	if err != nil || cookie.Value == "" {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, map[string]any{"is_authenticated": false})
		return
	}

	userUID, err := h.service.ValidateToken(r.Context(), cookie.Value)
	if err != nil {
		log.Info("token check failed", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, map[string]any{"is_authenticated": false})
		return
	}

	render.JSON(w, r, map[string]any{
		"is_authenticated": true,
		"user_uid":         userUID,
	})
}
