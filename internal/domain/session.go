package domain

import "errors"

var (
	// ErrSessionNotFound — сессии нет или она истекла.
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownKey — идентификатор клавиши не из таблицы.
	ErrUnknownKey = errors.New("unknown key")
)

// ErrorDisplay показывается на дисплее, пока сессия держит ошибку.
const ErrorDisplay = "Error"

// SessionView — то, что презентационный слой рисует после каждого вызова.
type SessionView struct {
	ID            string
	State         State
	Display       string
	OperationLine string
	History       []Record
	Error         string
}
