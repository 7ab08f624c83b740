package calculator

import (
	"fmt"

	"deskCalc/internal/domain"
)

// ErrUnknownKey — идентификатор клавиши или кнопки не из таблицы.
var ErrUnknownKey = domain.ErrUnknownKey

// Action — закрытое множество действий, в которые превращаются события клавиатуры и кнопок.
type Action int

const (
	ActionDigit Action = iota + 1
	ActionDecimal
	ActionOperator
	ActionClear
	ActionClearEntry
	ActionBackspace
	ActionToggleSign
	ActionPercentage
	ActionClearHistory
)

var actionNames = map[Action]string{
	ActionDigit:        "digit",
	ActionDecimal:      "decimal",
	ActionOperator:     "operator",
	ActionClear:        "clear",
	ActionClearEntry:   "clear-entry",
	ActionBackspace:    "backspace",
	ActionToggleSign:   "toggle-sign",
	ActionPercentage:   "percentage",
	ActionClearHistory: "clear-history",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Key — разобранное событие: действие плюс цифра или оператор, если они нужны.
type Key struct {
	Action   Action
	Digit    string
	Operator domain.Operator
}

func digit(d string) Key             { return Key{Action: ActionDigit, Digit: d} }
func operator(op domain.Operator) Key { return Key{Action: ActionOperator, Operator: op} }

// keyTable — клавиатура (e.key из браузера) и data-action кнопок.
var keyTable = map[string]Key{
	"0": digit("0"), "1": digit("1"), "2": digit("2"), "3": digit("3"), "4": digit("4"),
	"5": digit("5"), "6": digit("6"), "7": digit("7"), "8": digit("8"), "9": digit("9"),

	".": {Action: ActionDecimal},
	"+": operator(domain.OpAdd),
	"-": operator(domain.OpSub),
	"*": operator(domain.OpMul),
	"/": operator(domain.OpDiv),
	"=": operator(domain.OpEquals),

	"Enter":     operator(domain.OpEquals),
	"Escape":    {Action: ActionClear},
	"Backspace": {Action: ActionBackspace},
	"Delete":    {Action: ActionClearEntry},

	"clear":         {Action: ActionClear},
	"clear-entry":   {Action: ActionClearEntry},
	"backspace":     {Action: ActionBackspace},
	"decimal":       {Action: ActionDecimal},
	"toggle-sign":   {Action: ActionToggleSign},
	"percentage":    {Action: ActionPercentage},
	"add":           operator(domain.OpAdd),
	"subtract":      operator(domain.OpSub),
	"multiply":      operator(domain.OpMul),
	"divide":        operator(domain.OpDiv),
	"equals":        operator(domain.OpEquals),
	"clear-history": {Action: ActionClearHistory},
}

// ParseKey переводит внешний идентификатор в Key. Неизвестный идентификатор — ошибка, а не тихий no-op.
func ParseKey(id string) (Key, error) {
	k, ok := keyTable[id]
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, id)
	}
	return k, nil
}

// Press выполняет разобранное событие на машине.
func (m *Machine) Press(k Key) error {
	switch k.Action {
	case ActionDigit:
		m.InputDigit(k.Digit)
	case ActionDecimal:
		m.InputDecimal()
	case ActionOperator:
		return m.PerformOperation(k.Operator)
	case ActionClear:
		m.Clear()
	case ActionClearEntry:
		m.ClearEntry()
	case ActionBackspace:
		m.Backspace()
	case ActionToggleSign:
		m.ToggleSign()
	case ActionPercentage:
		return m.Percentage()
	case ActionClearHistory:
		m.ClearHistory()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, k.Action)
	}
	return nil
}
