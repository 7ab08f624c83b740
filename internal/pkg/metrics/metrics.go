// Package metrics — прикладные метрики калькулятора (Prometheus, регистрируются в default registry).
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"deskCalc/internal/domain"
)

// Источники вычислений для label source.
const (
	SourceSession  = "session"
	SourceEvaluate = "evaluate"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_calculations_total",
			Help: "Completed calculations by source and operator",
		},
		[]string{"source", "operator"},
	)

	CalculationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_calculation_errors_total",
			Help: "Failed calculations by source and reason",
		},
		[]string{"source", "reason"},
	)

	KeysPressedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_keys_pressed_total",
			Help: "Keys applied to session calculators by action",
		},
		[]string{"action"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_sessions_active",
			Help: "Number of open calculator sessions",
		},
	)
)

// ErrorReason — значение label reason для ошибки вычисления.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDivideByZero):
		return "divide_by_zero"
	case errors.Is(err, domain.ErrOverflow):
		return "overflow"
	default:
		return "other"
	}
}
