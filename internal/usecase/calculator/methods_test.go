package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskCalc/internal/domain"
)

// enter нажимает цифры по одной.
func enter(m *Machine, digits ...string) {
	for _, d := range digits {
		m.InputDigit(d)
	}
}

func TestNew_InitialState(t *testing.T) {
	m := New()

	assert.Equal(t, domain.State{CurrentEntry: "0"}, m.State())
	assert.Empty(t, m.History())
}

func TestInputDigit(t *testing.T) {
	tests := []struct {
		name   string
		digits []string
		want   string
	}{
		{name: "ноль заменяется цифрой", digits: []string{"7"}, want: "7"},
		{name: "цифры дописываются", digits: []string{"1", "2", "3"}, want: "123"},
		{name: "ведущие нули не копятся", digits: []string{"0", "0", "5"}, want: "5"},
		{name: "многосимвольный токен целиком", digits: []string{"10"}, want: "10"},
		{name: "токен дописывается к вводу", digits: []string{"1", "23"}, want: "123"},
		{name: "не цифры игнорируются", digits: []string{"4", "x", ""}, want: "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			enter(m, tt.digits...)
			assert.Equal(t, tt.want, m.State().CurrentEntry)
		})
	}
}

func TestInputDigit_AfterOperatorStartsFreshEntry(t *testing.T) {
	m := New()
	m.InputDigit("12")
	require.NoError(t, m.PerformOperation(domain.OpAdd))

	m.InputDigit("3")

	st := m.State()
	assert.Equal(t, "3", st.CurrentEntry)
	assert.False(t, st.AwaitingNewEntry)
	assert.Equal(t, 12.0, st.PendingOperand)
}

func TestInputDecimal(t *testing.T) {
	m := New()
	m.InputDecimal()
	assert.Equal(t, "0.", m.State().CurrentEntry)

	enter(m, "5")
	m.InputDecimal()
	assert.Equal(t, "0.5", m.State().CurrentEntry, "вторая точка не добавляется")

	require.NoError(t, m.PerformOperation(domain.OpMul))
	m.InputDecimal()
	st := m.State()
	assert.Equal(t, "0.", st.CurrentEntry)
	assert.False(t, st.AwaitingNewEntry)
}

func TestInputDecimal_Pi(t *testing.T) {
	m := New()
	enter(m, "3")
	m.InputDecimal()
	enter(m, "1", "4")
	m.InputDecimal()

	assert.Equal(t, "3.14", m.State().CurrentEntry)
}

func TestClear(t *testing.T) {
	m := New()
	m.InputDigit("123")
	require.NoError(t, m.PerformOperation(domain.OpAdd))
	m.InputDigit("456")
	require.NoError(t, m.PerformOperation(domain.OpEquals))

	m.Clear()

	assert.Equal(t, domain.State{CurrentEntry: "0"}, m.State())
	assert.Len(t, m.History(), 1, "clear не трогает историю")
}

func TestClearEntry_KeepsPendingOperation(t *testing.T) {
	m := New()
	enter(m, "9")
	require.NoError(t, m.PerformOperation(domain.OpSub))
	enter(m, "4")

	m.ClearEntry()

	st := m.State()
	assert.Equal(t, "0", st.CurrentEntry)
	assert.Equal(t, domain.OpSub, st.PendingOperator)
	assert.Equal(t, 9.0, st.PendingOperand)
}

func TestBackspace(t *testing.T) {
	m := New()
	enter(m, "1", "2", "3")

	m.Backspace()
	m.Backspace()
	assert.Equal(t, "1", m.State().CurrentEntry)

	m.Backspace()
	assert.Equal(t, "0", m.State().CurrentEntry)

	m.Backspace()
	assert.Equal(t, "0", m.State().CurrentEntry)
}

func TestBackspace_NegativeSingleDigit(t *testing.T) {
	m := New()
	enter(m, "5")
	m.ToggleSign()

	m.Backspace()

	assert.Equal(t, "0", m.State().CurrentEntry)
}

func TestBackspace_IgnoredWhileAwaiting(t *testing.T) {
	m := New()
	enter(m, "4", "2")
	require.NoError(t, m.PerformOperation(domain.OpAdd))

	m.Backspace()

	assert.Equal(t, "42", m.State().CurrentEntry)
}

func TestToggleSign(t *testing.T) {
	m := New()
	m.ToggleSign()
	assert.Equal(t, "0", m.State().CurrentEntry)

	enter(m, "7")
	m.ToggleSign()
	assert.Equal(t, "-7", m.State().CurrentEntry)
	m.ToggleSign()
	assert.Equal(t, "7", m.State().CurrentEntry)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  string
	}{
		{name: "целое", entry: "50", want: "0.5"},
		{name: "ноль", entry: "0", want: "0"},
		{name: "дробный результат", entry: "5", want: "0.05"},
		{name: "отрицательное", entry: "-200", want: "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.entry = tt.entry
			require.NoError(t, m.Percentage())
			assert.Equal(t, tt.want, m.State().CurrentEntry)
		})
	}
}

func TestPerformOperation_FirstOperatorStoresOperand(t *testing.T) {
	m := New()
	m.InputDigit("42")

	require.NoError(t, m.PerformOperation(domain.OpAdd))

	assert.Equal(t, domain.State{
		CurrentEntry:     "42",
		PendingOperand:   42,
		PendingOperator:  domain.OpAdd,
		AwaitingNewEntry: true,
	}, m.State())
	assert.Empty(t, m.History())
}

func TestPerformOperation_AddThenEquals(t *testing.T) {
	m := New()
	enter(m, "5")
	require.NoError(t, m.PerformOperation(domain.OpAdd))
	enter(m, "3")
	require.NoError(t, m.PerformOperation(domain.OpEquals))

	assert.Equal(t, "8", m.State().CurrentEntry)
	history := m.History()
	require.Len(t, history, 1)
	assert.Equal(t, "5 + 3 = 8", history[0].String())
}

func TestPerformOperation_ChainedLeftToRight(t *testing.T) {
	m := New()
	enter(m, "2")
	require.NoError(t, m.PerformOperation(domain.OpAdd))
	enter(m, "3")
	require.NoError(t, m.PerformOperation(domain.OpMul))
	enter(m, "4")
	require.NoError(t, m.PerformOperation(domain.OpEquals))

	assert.Equal(t, "20", m.State().CurrentEntry)
	history := m.History()
	require.Len(t, history, 2)
	assert.Equal(t, "5 * 4 = 20", history[0].String())
	assert.Equal(t, "2 + 3 = 5", history[1].String())
}

func TestPerformOperation_RepeatedEqualsResolvesUnchangedOperand(t *testing.T) {
	m := New()
	enter(m, "5")
	require.NoError(t, m.PerformOperation(domain.OpAdd))
	enter(m, "3")
	require.NoError(t, m.PerformOperation(domain.OpEquals))
	require.NoError(t, m.PerformOperation(domain.OpEquals))

	assert.Equal(t, "8", m.State().CurrentEntry)
	history := m.History()
	require.Len(t, history, 2)
	assert.Equal(t, "8 = 8 = 8", history[0].String())
}

func TestPerformOperation_AfterEqualsNextOperatorPassesThrough(t *testing.T) {
	m := New()
	enter(m, "5")
	require.NoError(t, m.PerformOperation(domain.OpAdd))
	enter(m, "3")
	require.NoError(t, m.PerformOperation(domain.OpEquals))
	enter(m, "1")
	require.NoError(t, m.PerformOperation(domain.OpAdd))

	st := m.State()
	assert.Equal(t, "1", st.CurrentEntry)
	assert.Equal(t, 1.0, st.PendingOperand)
	assert.Equal(t, "8 = 1 = 1", m.History()[0].String())
}

func TestPerformOperation_HistoryLimit(t *testing.T) {
	m := New()
	for i := 0; i < 12; i++ {
		enter(m, "1")
		require.NoError(t, m.PerformOperation(domain.OpAdd))
		enter(m, "1")
		require.NoError(t, m.PerformOperation(domain.OpEquals))
	}

	history := m.History()
	assert.Len(t, history, HistoryLimit)
	assert.Equal(t, "1 + 1 = 2", history[0].String(), "последняя запись первой")
}

func TestPerformOperation_DivideByZeroLeavesStateUnchanged(t *testing.T) {
	m := New()
	enter(m, "5")
	require.NoError(t, m.PerformOperation(domain.OpDiv))
	enter(m, "0")
	before := m.State()

	err := m.PerformOperation(domain.OpEquals)

	assert.ErrorIs(t, err, domain.ErrDivideByZero)
	assert.Equal(t, before, m.State())
	assert.Equal(t, "0", m.State().CurrentEntry)
	assert.Empty(t, m.History())
}

func TestPerformOperation_OverflowLeavesStateUnchanged(t *testing.T) {
	m := New()
	m.entry = "1e308"
	require.NoError(t, m.PerformOperation(domain.OpMul))
	m.InputDigit("10")
	before := m.State()

	err := m.PerformOperation(domain.OpEquals)

	assert.ErrorIs(t, err, domain.ErrOverflow)
	assert.Equal(t, before, m.State())
}

func TestPerformOperation_UnknownOperator(t *testing.T) {
	m := New()
	enter(m, "5")

	err := m.PerformOperation(domain.Operator("%"))

	assert.ErrorIs(t, err, domain.ErrUnknownOperation)
	assert.Equal(t, domain.State{CurrentEntry: "5"}, m.State())
}

func TestPerformOperation_DecimalResults(t *testing.T) {
	m := New()
	m.InputDecimal()
	enter(m, "1")
	require.NoError(t, m.PerformOperation(domain.OpAdd))
	m.InputDecimal()
	enter(m, "2")
	require.NoError(t, m.PerformOperation(domain.OpEquals))

	assert.Equal(t, "0.30000000000000004", m.State().CurrentEntry)
}

func TestPerformOperation_NegativeZeroPrintsAsZero(t *testing.T) {
	m := New()
	enter(m, "0")
	require.NoError(t, m.PerformOperation(domain.OpMul))
	enter(m, "5")
	m.ToggleSign()
	require.NoError(t, m.PerformOperation(domain.OpEquals))

	assert.Equal(t, "0", m.State().CurrentEntry)
}

func TestHistory_ReturnsCopy(t *testing.T) {
	m := New()
	enter(m, "2")
	require.NoError(t, m.PerformOperation(domain.OpMul))
	enter(m, "2")
	require.NoError(t, m.PerformOperation(domain.OpEquals))

	h := m.History()
	h[0].Result = 100

	assert.Equal(t, 4.0, m.History()[0].Result)
}

func TestClearHistory(t *testing.T) {
	m := New()
	enter(m, "2")
	require.NoError(t, m.PerformOperation(domain.OpMul))
	enter(m, "2")
	require.NoError(t, m.PerformOperation(domain.OpEquals))

	m.ClearHistory()

	assert.Empty(t, m.History())
	assert.Equal(t, "4", m.State().CurrentEntry)
}

func TestWithRecordHook(t *testing.T) {
	var got []domain.Record
	m := New(WithRecordHook(func(r domain.Record) { got = append(got, r) }))
	enter(m, "6")
	require.NoError(t, m.PerformOperation(domain.OpDiv))
	enter(m, "3")
	require.NoError(t, m.PerformOperation(domain.OpEquals))

	require.Len(t, got, 1)
	assert.Equal(t, domain.Record{Operand1: 6, Operator: domain.OpDiv, Operand2: 3, Result: 2}, got[0])
}
