package services

import "github.com/magabrotheeeer/expense-insights/internal/models"

// TotalSpending возвращает сумму расходов по выборке. Пустая выборка даёт 0.
func TotalSpending(expenses []*models.Expense) float64 {
	var total float64
	for _, expense := range expenses {
		total += expense.Amount
	}
	return total
}

// CategorySpending группирует расходы по категории и суммирует каждую группу.
// Категории без расходов в карте отсутствуют.
func CategorySpending(expenses []*models.Expense) map[string]float64 {
	categoryTotals := make(map[string]float64)
	for _, expense := range expenses {
		categoryTotals[expense.Category] += expense.Amount
	}
	return categoryTotals
}
