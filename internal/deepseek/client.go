// Package deepseek реализует клиент внешнего сервиса генерации текста.
//
// Клиент решает две задачи: классификацию описания расхода по категории
// и генерацию текстовой аналитики по агрегатам расходов. Ответы модели
// считаются недоверенными: любой непригодный ответ транслируется
// в типизированную ошибку, а не в сырой сбой парсинга.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/magabrotheeeer/expense-insights/internal/config"
)

const systemPrompt = "You are a helpful financial assistant."

// Client инкапсулирует доступ к chat/completions API.
type Client struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient создаёт новый клиент с таймаутом исходящих запросов из конфига.
func NewClient(cfg config.DeepSeek) *Client {
	return &Client{
		apiURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, body any) (*http.Request, error) {
	url := c.apiURL + "/chat/completions"
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// chatCompletion отправляет диалог модели и возвращает текст первого ответа.
func (c *Client) chatCompletion(ctx context.Context, messages []chatMessage) (string, error) {
	const op = "deepseek.chatCompletion"

	req, err := c.newRequest(ctx, chatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%s: empty choices in response", op)
	}
	return completion.Choices[0].Message.Content, nil
}

// AnalyzeExpense классифицирует описание расхода и возвращает категорию.
// Пустая категория в ответе модели — не ошибка: выбор запасного значения
// остаётся за вызывающей стороной.
func (c *Client) AnalyzeExpense(ctx context.Context, description string) (string, error) {
	const op = "deepseek.AnalyzeExpense"

	content, err := c.chatCompletion(ctx, []chatMessage{
		{
			Role:    "system",
			Content: systemPrompt + " Analyze the expense description and provide a category.",
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Categorize this expense: %q. Return a JSON object with a \"category\" field.", description),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var result analysisResult
	if err := json.Unmarshal([]byte(stripJSONFences(content)), &result); err != nil {
		return "", fmt.Errorf("%s: unparseable model reply: %w", op, err)
	}
	return result.Category, nil
}

// GenerateInsights генерирует текстовую аналитику по агрегатам расходов.
func (c *Client) GenerateInsights(ctx context.Context, data SpendingData) (string, error) {
	const op = "deepseek.GenerateInsights"

	categorySpending, err := json.Marshal(data.CategorySpending)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	content, err := c.chatCompletion(ctx, []chatMessage{
		{
			Role:    "system",
			Content: systemPrompt + " Analyze the spending data and provide insights and recommendations.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf(
				"Here is my spending data for %s: Total spending: $%.2f. Category-wise spending: %s. Provide insights and recommendations.",
				data.TimePeriod, data.TotalSpending, categorySpending),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if content == "" {
		content = "No insights available."
	}
	return content, nil
}

// stripJSONFences убирает markdown-обрамление ```json ... ``` вокруг ответа модели.
func stripJSONFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}
