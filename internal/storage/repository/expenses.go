package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/expense-insights/internal/models"
)

// CreateExpense вставляет новую запись расхода и возвращает её ID.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (int64, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expenses (user_uid, amount, description, category, spent_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		expense.UserUID, expense.Amount, expense.Description, expense.Category,
		expense.SpentAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListExpenses возвращает все расходы пользователя, отсортированные по дате по убыванию.
func (s *Storage) ListExpenses(ctx context.Context, userUID string) ([]*models.Expense, error) {
	const op = "storage.ListExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, description, category, spent_at, created_at
			  FROM expenses
			  WHERE user_uid = $1
			  ORDER BY spent_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Amount, &item.Description,
			&item.Category, &item.SpentAt, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListExpensesByTimePeriod возвращает расходы пользователя за период,
// границы включительно. Единственная примитивная выборка, на которой
// строятся все агрегаты за период.
func (s *Storage) ListExpensesByTimePeriod(ctx context.Context, userUID string, start, end time.Time) ([]*models.Expense, error) {
	const op = "storage.ListExpensesByTimePeriod"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, description, category, spent_at, created_at
			  FROM expenses
			  WHERE user_uid = $1
			    AND spent_at >= $2
			    AND spent_at <= $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Amount, &item.Description,
			&item.Category, &item.SpentAt, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
