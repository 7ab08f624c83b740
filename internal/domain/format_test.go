package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	// Переменные, а не константы: константное 0.1 + 0.2 вычисляется точно и даёт 0.3.
	a, b := 0.1, 0.2

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "целое", in: 8, want: "8"},
		{name: "отрицательное", in: -42.5, want: "-42.5"},
		{name: "классика float", in: a + b, want: "0.30000000000000004"},
		{name: "отрицательный ноль", in: math.Copysign(0, -1), want: "0"},
		{name: "граница малых", in: 0.000002, want: "0.000002"},
		{name: "меньше 1e-6", in: 1e-7, want: "1e-7"},
		{name: "мантисса с дробью", in: 1.5e-7, want: "1.5e-7"},
		{name: "почти 1e21", in: 123456789012345680000, want: "123456789012345680000"},
		{name: "1e21", in: 1e21, want: "1e+21"},
		{name: "большое отрицательное", in: -2.5e30, want: "-2.5e+30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  string
	}{
		{name: "ноль", entry: "0", want: "0"},
		{name: "точка в конце не показывается", entry: "0.", want: "0"},
		{name: "обычное число", entry: "3.14", want: "3.14"},
		{name: "исчезающе малое", entry: "1e-11", want: "0"},
		{name: "граница 1e10", entry: "10000000000", want: "10000000000"},
		{name: "больше 1e10", entry: "12345678901", want: "1.23457e+10"},
		{name: "12 значащих цифр", entry: "0.1234567890123", want: "0.123456789012"},
		{name: "хвост float срезается", entry: "0.30000000000000004", want: "0.3"},
		{name: "не число", entry: "-", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDisplay(tt.entry))
		})
	}
}

func TestParseEntry(t *testing.T) {
	v, err := ParseEntry("-0.")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = ParseEntry("1e400")
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = ParseEntry("abc")
	assert.Error(t, err)
}

func TestOperationLine(t *testing.T) {
	assert.Equal(t, "", OperationLine(State{CurrentEntry: "5"}))
	assert.Equal(t, "8 +", OperationLine(State{PendingOperand: 8, PendingOperator: OpAdd}))
	assert.Equal(t, "2.5 ×", OperationLine(State{PendingOperand: 2.5, PendingOperator: OpMul}))
	assert.Equal(t, "1.23457e+12 ÷", OperationLine(State{PendingOperand: 1234567000000, PendingOperator: OpDiv}))
}
