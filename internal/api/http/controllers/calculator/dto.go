package calculator

import (
	"errors"
	"time"
)

// CalculateRequest — запрос на разовое вычисление (POST /api/v1/calculate).
// Числа — указатели: binding:"required" на float64 отверг бы ноль.
type CalculateRequest struct {
	Number1   *float64 `json:"number1" binding:"required"`
	Number2   *float64 `json:"number2" binding:"required"`
	Operation string   `json:"operation" binding:"required"`
}

// Validate проверяет, что операция одна из + - * /.
func (r CalculateRequest) Validate() error {
	switch r.Operation {
	case "+", "-", "*", "/":
		return nil
	}
	return errors.New("operation must be one of + - * /")
}

// CalculateResponse — ответ с результатом.
type CalculateResponse struct {
	Result  float64 `json:"result"`
	Message string  `json:"message,omitempty"`
}

// JournalItem — одна запись журнала (GET /api/v1/journal).
type JournalItem struct {
	ID        int       `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Number1   float64   `json:"number1"`
	Number2   float64   `json:"number2"`
	Operation string    `json:"operation"`
	Result    float64   `json:"result"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// JournalResponse — ответ со списком операций.
type JournalResponse struct {
	Items []JournalItem `json:"items"`
}

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
