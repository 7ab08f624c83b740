// Package calculator — машина состояний калькулятора: ввод цифр, аккумулятор, цепочка операций слева направо
// и ограниченная история. Машина однопоточная, владелец вызывает методы по одному.
package calculator

import "deskCalc/internal/domain"

// HistoryLimit — сколько последних вычислений хранит машина.
const HistoryLimit = 10

// Machine — аккумулятор калькулятора. Нулевое значение не готово к работе, создавайте через New.
type Machine struct {
	entry    string
	operand  float64
	operator domain.Operator
	awaiting bool
	history  []domain.Record
	onRecord func(domain.Record)
}

// Option настраивает машину при создании.
type Option func(*Machine)

// WithRecordHook вызывает fn после каждой записи в историю (журнал, брокер, метрики).
func WithRecordHook(fn func(domain.Record)) Option {
	return func(m *Machine) {
		m.onRecord = fn
	}
}

// New создаёт машину в начальном состоянии: "0", без оператора, история пуста.
func New(opts ...Option) *Machine {
	m := &Machine{entry: "0"}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
