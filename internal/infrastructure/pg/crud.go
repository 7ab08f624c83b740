package pg

import (
	"context"
	"database/sql"
	"log/slog"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
)

var _ ports.IOperationRepository = (*OperationRepo)(nil)

// OperationRepo — журнал операций в PostgreSQL.
type OperationRepo struct {
	db  *DB
	log *slog.Logger
}

// NewOperationRepo возвращает репозиторий операций.
func NewOperationRepo(db *DB, log *slog.Logger) *OperationRepo {
	return &OperationRepo{db: db, log: log}
}

// SaveOperation сохраняет операцию в БД.
func (r *OperationRepo) SaveOperation(ctx context.Context, op domain.Operation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO operations (session_id, number1, number2, operation, result, message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		op.SessionID, op.Number1, op.Number2, op.Operation, op.Result, op.Message, op.Timestamp)
	if err != nil {
		r.log.Debug("SaveOperation failed", "error", err)
		return err
	}
	return nil
}

// GetHistory возвращает журнал (последние сначала). limit <= 0 — все записи.
func (r *OperationRepo) GetHistory(ctx context.Context, limit int) ([]domain.Operation, error) {
	const query = `SELECT id, session_id, number1, number2, operation, result, message, created_at
		 FROM operations ORDER BY created_at DESC, id DESC`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+" LIMIT $1", limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		r.log.Debug("GetHistory failed", "error", err)
		return nil, err
	}
	defer rows.Close()

	var list []domain.Operation
	for rows.Next() {
		var (
			op      domain.Operation
			message sql.NullString
		)
		err := rows.Scan(&op.ID, &op.SessionID, &op.Number1, &op.Number2, &op.Operation, &op.Result, &message, &op.Timestamp)
		if err != nil {
			return nil, err
		}
		op.Message = message.String
		list = append(list, op)
	}
	return list, rows.Err()
}

// Ping проверяет доступность БД (readiness).
func (r *OperationRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
