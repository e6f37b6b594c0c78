package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/magabrotheeeer/expense-insights/internal/models"
)

// CreateInsight сохраняет результат анализа расходов и возвращает его ID.
// Карта расходов по категориям хранится в колонке jsonb.
func (s *Storage) CreateInsight(ctx context.Context, insight models.Insight) (int64, error) {
	const op = "storage.CreateInsight"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	categorySpending, err := json.Marshal(insight.CategorySpending)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO insights (user_uid, time_period, insights, total_spending, category_spending)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err = s.DB.QueryRowContext(ctx, query,
		insight.UserUID, insight.TimePeriod, insight.Insights, insight.TotalSpending,
		categorySpending).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListInsights возвращает историю аналитики пользователя,
// отсортированную по дате создания по убыванию.
func (s *Storage) ListInsights(ctx context.Context, userUID string) ([]*models.Insight, error) {
	const op = "storage.ListInsights"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, time_period, insights, total_spending, category_spending, created_at
			  FROM insights
			  WHERE user_uid = $1
			  ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Insight
	for rows.Next() {
		var item models.Insight
		var categorySpending []byte
		if err := rows.Scan(&item.ID, &item.UserUID, &item.TimePeriod, &item.Insights,
			&item.TotalSpending, &categorySpending, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(categorySpending, &item.CategorySpending); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
