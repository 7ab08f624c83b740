package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Границы дисплея: мельче — показываем ноль, крупнее — экспоненту.
const (
	displayMin       = 1e-10
	displayMax       = 1e10
	displayPrecision = 12
	displayExpDigits = 5
)

// FormatNumber превращает число в строку так же, как это делает String(number) в JS:
// кратчайшая запись, обычная нотация для 1e-6 ≤ |x| < 1e21, иначе экспонента без ведущих нулей ("1e-7", "1e+21").
// Отрицательный ноль печатается как "0".
func FormatNumber(x float64) string {
	if x == 0 {
		return "0"
	}
	abs := math.Abs(x)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	s := strconv.FormatFloat(x, 'e', -1, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// FormatPlain печатает число без экспоненты — такую строку можно продолжать набирать с клавиатуры.
func FormatPlain(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// ParseEntry переводит строку ввода в число. Ввод, не влезающий в float64, даёт ErrOverflow.
func ParseEntry(entry string) (float64, error) {
	v, err := strconv.ParseFloat(entry, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrOverflow
		}
		return 0, fmt.Errorf("parse entry %q: %w", entry, err)
	}
	return v, nil
}

// FormatDisplay готовит строку ввода для дисплея: 12 значащих цифр, экспонента для больших чисел,
// ноль для исчезающе малых и для нечисловой строки.
func FormatDisplay(entry string) string {
	num, err := strconv.ParseFloat(entry, 64)
	if err != nil || math.IsNaN(num) {
		return "0"
	}
	abs := math.Abs(num)
	if abs < displayMin {
		return "0"
	}
	if abs > displayMax {
		return strconv.FormatFloat(num, 'e', displayExpDigits, 64)
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(num, 'g', displayPrecision, 64), 64)
	if err != nil {
		return "0"
	}
	return FormatNumber(rounded)
}

// OperationLine — строка над дисплеем: "8 +", пока ждём второй операнд.
func OperationLine(s State) string {
	if !s.HasPending() {
		return ""
	}
	return FormatDisplay(FormatNumber(s.PendingOperand)) + " " + s.PendingOperator.Symbol()
}
