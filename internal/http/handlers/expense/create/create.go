// Package create реализует HTTP-обработчик для добавления новых расходов.
//
// Handler принимает JSON-запрос с данными расхода, валидирует их, извлекает
// идентификатор пользователя из контекста, вызывает бизнес-логику создания
// расхода (включая классификацию описания внешним сервисом) и возвращает
// созданную запись в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/expense-insights/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-insights/internal/http/response"
	"github.com/magabrotheeeer/expense-insights/internal/lib/sl"
	"github.com/magabrotheeeer/expense-insights/internal/models"
	services "github.com/magabrotheeeer/expense-insights/internal/services/expense"
)

// Handler управляет HTTP-запросами на добавление расходов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания расходов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания расхода.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyExpense) (*models.Expense, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить новый расход
// @Description Классифицирует описание расхода и сохраняет запись для текущего пользователя.
// @Tags Expenses
// @Accept  json
// @Produce  json
// @Param request body models.DummyExpense true "Данные нового расхода"
// @Success 201 {object} map[string]any "Успешное создание расхода"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Сбой внешнего классификатора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании расхода"
// @Router /expenses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyExpense
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	expense, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			log.Error("invalid expense date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date, expected format 2006-01-02"))
			return
		}
		if errors.Is(err, services.ErrClassification) {
			log.Error("classification failed", sl.Err(err), slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("failed to categorize expense"))
			return
		}
		log.Error("failed to create expense", sl.Err(err), slog.String("user_uid", userUID))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create expense"))
		return
	}

	log.Info("expense created", slog.Int64("id", expense.ID), slog.String("category", expense.Category))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(expense))
}
