package models

import "time"

// Insight представляет сохранённый результат анализа расходов:
// нарратив от внешнего сервиса вместе с агрегатами, по которым он построен.
// Записи неизменяемы, история ведётся только на добавление.
type Insight struct {
	ID               int64              `json:"id"`
	UserUID          string             `json:"-"`
	TimePeriod       string             `json:"time_period"` // Отображаемый период, например "2024-01-01 to 2024-01-31"
	Insights         string             `json:"insights"`    // Нарратив от внешнего сервиса
	TotalSpending    float64            `json:"total_spending"`
	CategorySpending map[string]float64 `json:"category_spending"`
	CreatedAt        time.Time          `json:"created_at"`
}
