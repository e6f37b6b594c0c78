// Package models содержит доменные структуры расходов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Expense представляет одну запись расхода пользователя.
// Записи неизменяемы после создания: обновления и удаления не поддерживаются.
type Expense struct {
	ID          int64     `json:"id"`
	UserUID     string    `json:"-"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // Категория от классификатора, "Uncategorized" если пусто
	SpentAt     time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyExpense используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Expense.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyExpense struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"` // Сумма расхода (>0)
	Description string  `json:"description" validate:"required"` // Описание расхода
	Date        string  `json:"date" validate:"omitempty"`       // Дата в формате 2006-01-02, по умолчанию сегодня
}

// DummyInsightFilter используется для приёма периода из JSON-запроса
// при генерации аналитики расходов. Даты приходят строками.
type DummyInsightFilter struct {
	StartDate string `json:"start_date" validate:"required"` // Начало периода в формате 2006-01-02
	EndDate   string `json:"end_date" validate:"required"`   // Конец периода в формате 2006-01-02
}
