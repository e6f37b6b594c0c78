// Package expenseinsights собирает HTTP-приложение учёта расходов:
// маршруты, сервисы и жизненный цикл сервера.
package expenseinsights

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/expense-insights/internal/http/handlers/auth/checkauth"
	"github.com/magabrotheeeer/expense-insights/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/expense-insights/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/expense-insights/internal/http/handlers/auth/register"
	expensecreate "github.com/magabrotheeeer/expense-insights/internal/http/handlers/expense/create"
	expenselist "github.com/magabrotheeeer/expense-insights/internal/http/handlers/expense/list"
	insightgenerate "github.com/magabrotheeeer/expense-insights/internal/http/handlers/insight/generate"
	insighthistory "github.com/magabrotheeeer/expense-insights/internal/http/handlers/insight/history"
	"github.com/magabrotheeeer/expense-insights/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/expense-insights/internal/services/auth"
	expenseservice "github.com/magabrotheeeer/expense-insights/internal/services/expense"
	insightservice "github.com/magabrotheeeer/expense-insights/internal/services/insight"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authSvc *authservice.AuthService,
	expenseSvc *expenseservice.ExpenseService,
	insightSvc *insightservice.InsightService,
	tokenTTL time.Duration,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/users/register", register.New(logger, authSvc, tokenTTL).ServeHTTP)
		r.Post("/users/login", login.New(logger, authSvc, tokenTTL).ServeHTTP)
		r.Post("/logout", logout.New(logger).ServeHTTP)
		r.Get("/users/check-auth", checkauth.New(logger, authSvc).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authSvc, logger))
			r.Post("/expenses", expensecreate.New(logger, expenseSvc).ServeHTTP)
			r.Get("/expenses", expenselist.New(logger, expenseSvc).ServeHTTP)
			r.Post("/expenses/insights", insightgenerate.New(logger, insightSvc).ServeHTTP)
			r.Get("/expenses/insights/previous", insighthistory.New(logger, insightSvc).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
