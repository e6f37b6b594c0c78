// Package logout реализует HTTP-обработчик выхода из системы.
//
// Серверного списка отозванных токенов нет: выход лишь стирает cookie
// у клиента, украденный токен остаётся действительным до истечения срока.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-insights/internal/http/response"
)

// Handler обрабатывает HTTP-запросы на выход из системы.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Стирает httpOnly cookie с токеном сессии.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Успешный выход"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	http.SetCookie(w, middlewarectx.ClearedTokenCookie())

	log.Info("user logged out")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "Logout successful",
	}))
}
