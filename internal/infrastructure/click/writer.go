package click

import (
	"context"
	"fmt"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
)

var _ ports.IOperationAnalytics = (*OperationWriter)(nil)

const analyticsTable = "operations_analytics"

// OperationWriter пишет операции в ClickHouse для аналитики (GROUP BY operation, по времени и т.д.).
type OperationWriter struct {
	db *Client
}

// NewOperationWriter создаёт писатель операций.
func NewOperationWriter(db *Client) *OperationWriter {
	return &OperationWriter{db: db}
}

func (w *OperationWriter) table() string {
	return w.db.database + "." + analyticsTable
}

// EnsureTable создаёт таблицу, если её ещё нет. Вызови один раз при старте приложения.
func (w *OperationWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			session_id String,
			number1 Float64,
			number2 Float64,
			operation LowCardinality(String),
			result Float64,
			message String,
			created_at DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (created_at, operation)`,
		w.table(),
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteOperation пишет одну операцию.
func (w *OperationWriter) WriteOperation(ctx context.Context, op domain.Operation) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (session_id, number1, number2, operation, result, message, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		w.table(),
	)
	_, err := w.db.DB().ExecContext(ctx, query,
		op.SessionID, op.Number1, op.Number2, op.Operation, op.Result, op.Message, op.Timestamp)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// CountByOperation возвращает число записанных операций по каждому оператору.
func (w *OperationWriter) CountByOperation(ctx context.Context) (map[string]uint64, error) {
	rows, err := w.db.DB().QueryContext(ctx, fmt.Sprintf(
		"SELECT operation, count() FROM %s GROUP BY operation", w.table()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]uint64)
	for rows.Next() {
		var op string
		var n uint64
		if err := rows.Scan(&op, &n); err != nil {
			return nil, err
		}
		out[op] = n
	}
	return out, rows.Err()
}
