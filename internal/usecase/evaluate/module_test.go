package evaluate

import (
	"testing"

	"deskCalc/internal/domain"
)

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name    string
		number1 float64
		number2 float64
		op      domain.Operator
		want    string
	}{
		{name: "сложение целых", number1: 10, number2: 5, op: domain.OpAdd, want: "10 + 5"},
		{name: "умножение с дробными", number1: 3.14, number2: 2, op: domain.OpMul, want: "3.14 * 2"},
		{name: "отрицательные числа", number1: -10, number2: -5, op: domain.OpSub, want: "-10 - -5"},
		{name: "очень маленькое дробное", number1: 0.000001, number2: 0.0000001, op: domain.OpAdd, want: "0.000001 + 1e-7"},
		{name: "равно", number1: 1, number2: 3, op: domain.OpEquals, want: "1 = 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cacheKey(tt.number1, tt.number2, tt.op)
			if got != tt.want {
				t.Errorf("cacheKey(%v, %v, %q) = %q, want %q",
					tt.number1, tt.number2, tt.op, got, tt.want)
			}
		})
	}
}
