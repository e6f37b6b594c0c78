package deepseek

// Сообщение в диалоге с моделью.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Запрос к chat/completions.
type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// Ответ chat/completions. Интересует только текст первого варианта.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Ответ классификатора: модель просят вернуть JSON с полем category.
type analysisResult struct {
	Category string `json:"category"`
}

// SpendingData содержит агрегаты расходов за период для генерации аналитики.
type SpendingData struct {
	TotalSpending    float64            `json:"totalSpending"`
	CategorySpending map[string]float64 `json:"categorySpending"`
	TimePeriod       string             `json:"timePeriod"`
}
