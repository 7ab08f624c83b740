package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrUnknownOperation возвращается, когда операция не поддерживается.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrDivideByZero — единственная арифметическая ошибка: делитель равен нулю.
	ErrDivideByZero = errors.New("division by zero")
	// ErrOverflow — результат вышел за пределы float64 (±Inf или NaN).
	ErrOverflow = errors.New("result is not a finite number")
)

// Operator — закрытое множество операторов калькулятора. Пустая строка означает «оператора нет».
type Operator string

// Константы арифметических операций.
const (
	OpNone   Operator = ""
	OpAdd    Operator = "+"
	OpSub    Operator = "-"
	OpMul    Operator = "*"
	OpDiv    Operator = "/"
	OpEquals Operator = "="
)

// ParseOperator проверяет символ операции на границе (HTTP, gRPC, CLI).
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(s); op {
	case OpAdd, OpSub, OpMul, OpDiv, OpEquals:
		return op, nil
	default:
		return OpNone, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

// Symbol возвращает символ для строки операции на дисплее (−, ×, ÷).
func (o Operator) Symbol() string {
	switch o {
	case OpSub:
		return "−"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	default:
		return string(o)
	}
}

// Apply считает a op b. OpEquals возвращает b без изменений — терминальный оператор цепочки.
func Apply(a, b float64, op Operator) (float64, error) {
	var result float64
	switch op {
	case OpAdd:
		result = a + b
	case OpSub:
		result = a - b
	case OpMul:
		result = a * b
	case OpDiv:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		result = a / b
	case OpEquals:
		result = b
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, string(op))
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, ErrOverflow
	}
	return result, nil
}

// Record — одна завершённая операция в истории калькулятора.
type Record struct {
	Operand1 float64
	Operator Operator
	Operand2 float64
	Result   float64
}

// String форматирует запись как "5 + 3 = 8".
func (r Record) String() string {
	return FormatNumber(r.Operand1) + " " + string(r.Operator) + " " + FormatNumber(r.Operand2) + " = " + FormatNumber(r.Result)
}

// State — снимок скалярных полей машины. PendingOperand имеет смысл, только если PendingOperator != OpNone.
type State struct {
	CurrentEntry     string
	PendingOperand   float64
	PendingOperator  Operator
	AwaitingNewEntry bool
}

// HasPending сообщает, ждёт ли машина второго операнда.
func (s State) HasPending() bool {
	return s.PendingOperator != OpNone
}

// Operation — запись журнала операций (БД, кэш, брокер, аналитика).
type Operation struct {
	ID        int
	SessionID string
	Number1   float64
	Number2   float64
	Operation string
	Result    float64
	Message   string
	Timestamp time.Time
}

// NewOperation собирает запись журнала из записи истории.
func NewOperation(sessionID string, rec Record, at time.Time) Operation {
	return Operation{
		SessionID: sessionID,
		Number1:   rec.Operand1,
		Number2:   rec.Operand2,
		Operation: string(rec.Operator),
		Result:    rec.Result,
		Message:   rec.String(),
		Timestamp: at,
	}
}
