// Package services содержит бизнес-логику учёта расходов:
// классификацию новых записей, выдачу списка и агрегаты за период.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/expense-insights/internal/models"
)

// DateLayout формат дат в JSON-запросах.
const DateLayout = "2006-01-02"

// DefaultCategory подставляется, если классификатор вернул пустую категорию.
const DefaultCategory = "Uncategorized"

// ErrClassification возвращается, когда внешний классификатор недоступен
// или его ответ непригоден. Расход при этом не сохраняется.
var ErrClassification = errors.New("classification failed")

// ErrInvalidDate возвращается при непригодной дате в запросе.
var ErrInvalidDate = errors.New("invalid date")

// ExpenseRepository определяет методы для работы с расходами в хранилище.
type ExpenseRepository interface {
	// CreateExpense добавляет новую запись расхода и возвращает её ID.
	CreateExpense(ctx context.Context, expense models.Expense) (int64, error)
	// ListExpenses возвращает все расходы пользователя по дате по убыванию.
	ListExpenses(ctx context.Context, userUID string) ([]*models.Expense, error)
	// ListExpensesByTimePeriod возвращает расходы за период, границы включительно.
	ListExpensesByTimePeriod(ctx context.Context, userUID string, start, end time.Time) ([]*models.Expense, error)
}

// Classifier описывает внешний сервис классификации описания расхода.
type Classifier interface {
	// AnalyzeExpense возвращает категорию для описания расхода.
	AnalyzeExpense(ctx context.Context, description string) (string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ExpenseService реализует бизнес-логику работы с расходами.
type ExpenseService struct {
	repo       ExpenseRepository
	classifier Classifier
	cache      Cache
	log        *slog.Logger
}

// NewExpenseService создает новый экземпляр ExpenseService.
func NewExpenseService(repo ExpenseRepository, classifier Classifier, cache Cache, log *slog.Logger) *ExpenseService {
	return &ExpenseService{
		repo:       repo,
		classifier: classifier,
		cache:      cache,
		log:        log,
	}
}

func listCacheKey(userUID string) string {
	return fmt.Sprintf("expenses:%s", userUID)
}

// Create классифицирует описание расхода и сохраняет запись.
// Классификация выполняется до записи: при сбое классификатора
// расход не сохраняется вовсе, частичного успеха нет.
func (s *ExpenseService) Create(ctx context.Context, userUID string, req models.DummyExpense) (*models.Expense, error) {
	spentAt := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse(DateLayout, req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDate, err)
		}
		spentAt = parsed
	}

	category, err := s.classifier.AnalyzeExpense(ctx, req.Description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}
	if category == "" {
		category = DefaultCategory
	}

	expense := models.Expense{
		UserUID:     userUID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    category,
		SpentAt:     spentAt,
	}
	id, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return nil, err
	}
	expense.ID = id

	s.log.Info("created new expense", slog.Int64("id", id), slog.String("category", category))

	if err := s.cache.Invalidate(listCacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate expenses cache", slog.String("user_uid", userUID), slog.Any("err", err))
	}

	return &expense, nil
}

// List возвращает расходы пользователя по дате по убыванию, используя кеш или репозиторий.
func (s *ExpenseService) List(ctx context.Context, userUID string) ([]*models.Expense, error) {
	var result []*models.Expense
	cacheKey := listCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read expenses cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListExpenses(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache expenses", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// AggregateSpending возвращает общую сумму и суммы по категориям за период.
// Оба агрегата считаются по одной выборке: расходы читаются из хранилища
// один раз, чтобы сумма и разбивка не могли разойтись при параллельной записи.
func (s *ExpenseService) AggregateSpending(ctx context.Context, userUID string, start, end time.Time) (float64, map[string]float64, error) {
	expenses, err := s.repo.ListExpensesByTimePeriod(ctx, userUID, start, end)
	if err != nil {
		return 0, nil, err
	}
	return TotalSpending(expenses), CategorySpending(expenses), nil
}
