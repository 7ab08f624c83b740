package calculator

import (
	"strings"

	"deskCalc/internal/domain"
)

// InputDigit добавляет цифру к вводу. После оператора цифра начинает новый ввод, "0" заменяется.
// Многосимвольный токен ("10") добавляется целиком; токены не из цифр игнорируются.
func (m *Machine) InputDigit(d string) {
	if !isDigits(d) {
		return
	}
	switch {
	case m.awaiting:
		m.entry = d
		m.awaiting = false
	case m.entry == "0":
		m.entry = d
	default:
		m.entry += d
	}
}

// InputDecimal ставит десятичную точку; повторный вызов ничего не меняет.
func (m *Machine) InputDecimal() {
	if m.awaiting {
		m.entry = "0."
		m.awaiting = false
		return
	}
	if !strings.Contains(m.entry, ".") {
		m.entry += "."
	}
}

// Clear сбрасывает ввод, операнд, оператор и флаг ожидания. История остаётся.
func (m *Machine) Clear() {
	m.entry = "0"
	m.operand = 0
	m.operator = domain.OpNone
	m.awaiting = false
}

// ClearEntry сбрасывает только текущий ввод.
func (m *Machine) ClearEntry() {
	m.entry = "0"
}

// Backspace стирает последний символ ввода. Сразу после оператора не делает ничего.
func (m *Machine) Backspace() {
	if m.awaiting {
		return
	}
	if len(m.entry) <= 1 {
		m.entry = "0"
		return
	}
	m.entry = m.entry[:len(m.entry)-1]
	if m.entry == "-" {
		m.entry = "0"
	}
}

// ToggleSign меняет знак ввода; "0" остаётся как есть.
func (m *Machine) ToggleSign() {
	if m.entry == "0" {
		return
	}
	if strings.HasPrefix(m.entry, "-") {
		m.entry = m.entry[1:]
		return
	}
	m.entry = "-" + m.entry
}

// Percentage делит ввод на 100. Результат всегда в обычной нотации, чтобы к нему можно было дописывать цифры.
func (m *Machine) Percentage() error {
	v, err := domain.ParseEntry(m.entry)
	if err != nil {
		return err
	}
	m.entry = domain.FormatPlain(v / 100)
	return nil
}

// PerformOperation разрешает отложенную операцию против свежего ввода и запоминает op для следующего шага.
// При ошибке (деление на ноль, переполнение) состояние машины не меняется.
func (m *Machine) PerformOperation(op domain.Operator) error {
	if _, err := domain.ParseOperator(string(op)); err != nil {
		return err
	}
	input, err := domain.ParseEntry(m.entry)
	if err != nil {
		return err
	}

	if m.operator == domain.OpNone {
		m.operand = input
	} else {
		result, err := domain.Apply(m.operand, input, m.operator)
		if err != nil {
			return err
		}
		rec := domain.Record{Operand1: m.operand, Operator: m.operator, Operand2: input, Result: result}
		m.entry = domain.FormatNumber(result)
		m.operand = result
		m.addToHistory(rec)
	}

	m.awaiting = true
	m.operator = op
	return nil
}

// State возвращает копию скалярных полей.
func (m *Machine) State() domain.State {
	return domain.State{
		CurrentEntry:     m.entry,
		PendingOperand:   m.operand,
		PendingOperator:  m.operator,
		AwaitingNewEntry: m.awaiting,
	}
}

// History возвращает копию истории, последние сначала.
func (m *Machine) History() []domain.Record {
	out := make([]domain.Record, len(m.history))
	copy(out, m.history)
	return out
}

// ClearHistory очищает историю.
func (m *Machine) ClearHistory() {
	m.history = nil
}

func (m *Machine) addToHistory(rec domain.Record) {
	m.history = append([]domain.Record{rec}, m.history...)
	if len(m.history) > HistoryLimit {
		m.history = m.history[:HistoryLimit]
	}
	if m.onRecord != nil {
		m.onRecord(rec)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
