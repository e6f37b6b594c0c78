// Package services содержит бизнес-логику генерации и хранения аналитики расходов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/expense-insights/internal/deepseek"
	"github.com/magabrotheeeer/expense-insights/internal/models"
)

// ErrGeneration возвращается, когда внешний сервис не смог сгенерировать
// нарратив. Аналитика при этом не сохраняется: записи без нарратива не бывает.
var ErrGeneration = errors.New("insight generation failed")

// InsightRepository определяет методы для работы с аналитикой в хранилище.
type InsightRepository interface {
	// CreateInsight сохраняет результат анализа и возвращает его ID.
	CreateInsight(ctx context.Context, insight models.Insight) (int64, error)
	// ListInsights возвращает историю аналитики по дате создания по убыванию.
	ListInsights(ctx context.Context, userUID string) ([]*models.Insight, error)
}

// Aggregator считает агрегаты расходов за период по одной выборке.
type Aggregator interface {
	AggregateSpending(ctx context.Context, userUID string, start, end time.Time) (float64, map[string]float64, error)
}

// Generator описывает внешний сервис генерации нарратива по агрегатам.
type Generator interface {
	GenerateInsights(ctx context.Context, data deepseek.SpendingData) (string, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// InsightService реализует генерацию аналитики и доступ к её истории.
type InsightService struct {
	repo       InsightRepository
	aggregator Aggregator
	generator  Generator
	cache      Cache
	log        *slog.Logger
}

// NewInsightService создает новый экземпляр InsightService.
func NewInsightService(repo InsightRepository, aggregator Aggregator, generator Generator, cache Cache, log *slog.Logger) *InsightService {
	return &InsightService{
		repo:       repo,
		aggregator: aggregator,
		generator:  generator,
		cache:      cache,
		log:        log,
	}
}

func historyCacheKey(userUID string) string {
	return fmt.Sprintf("insights:%s", userUID)
}

// Generate строит аналитику расходов за период: одна выборка из леджера,
// оба агрегата по ней, затем нарратив от внешнего сервиса. Сохранённая запись
// связывает нарратив ровно с теми агрегатами, по которым он построен.
func (s *InsightService) Generate(ctx context.Context, userUID string, start, end time.Time, timePeriod string) (*models.Insight, error) {
	totalSpending, categorySpending, err := s.aggregator.AggregateSpending(ctx, userUID, start, end)
	if err != nil {
		return nil, err
	}

	narrative, err := s.generator.GenerateInsights(ctx, deepseek.SpendingData{
		TotalSpending:    totalSpending,
		CategorySpending: categorySpending,
		TimePeriod:       timePeriod,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	insight := models.Insight{
		UserUID:          userUID,
		TimePeriod:       timePeriod,
		Insights:         narrative,
		TotalSpending:    totalSpending,
		CategorySpending: categorySpending,
	}
	id, err := s.repo.CreateInsight(ctx, insight)
	if err != nil {
		return nil, err
	}
	insight.ID = id

	s.log.Info("created new insight", slog.Int64("id", id), slog.String("time_period", timePeriod))

	if err := s.cache.Invalidate(historyCacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate insights cache", slog.String("user_uid", userUID), slog.Any("err", err))
	}

	return &insight, nil
}

// History возвращает историю аналитики пользователя, используя кеш или репозиторий.
func (s *InsightService) History(ctx context.Context, userUID string) ([]*models.Insight, error) {
	var result []*models.Insight
	cacheKey := historyCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read insights cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListInsights(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache insights", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}
