package evaluate

import (
	"context"
	"encoding/json"
	"fmt"

	"deskCalc/internal/domain"
	"deskCalc/internal/pkg/metrics"
)

// Calculate — проверяет кэш; при промахе считает, пишет в журнал и в кэш, возвращает результат.
func (u *UseCase) Calculate(ctx context.Context, number1, number2 float64, operation string) (*domain.Operation, error) {
	op, err := domain.ParseOperator(operation)
	if err != nil {
		return nil, err
	}

	key := cacheKey(number1, number2, op)
	if u.cache != nil {
		cached, found, err := u.cache.Get(ctx, key)
		if err != nil {
			u.log.Warn("cache get", "key", key, "error", err)
		} else if found {
			res := domain.NewOperation("", domain.Record{Operand1: number1, Operator: op, Operand2: number2, Result: cached}, u.now())
			return &res, nil
		}
	}

	result, err := domain.Apply(number1, number2, op)
	if err != nil {
		metrics.CalculationErrorsTotal.WithLabelValues(metrics.SourceEvaluate, metrics.ErrorReason(err)).Inc()
		return nil, fmt.Errorf("calculate %s: %w", key, err)
	}
	metrics.CalculationsTotal.WithLabelValues(metrics.SourceEvaluate, string(op)).Inc()

	res := domain.NewOperation("", domain.Record{Operand1: number1, Operator: op, Operand2: number2, Result: result}, u.now())
	if err := u.Record(ctx, res); err != nil {
		return nil, err
	}
	if u.cache != nil {
		if err := u.cache.Set(ctx, key, result); err != nil {
			return nil, err
		}
	}

	return &res, nil
}

// Record сохраняет операцию в БД и публикует её в брокер. Ошибка брокера только логируется.
func (u *UseCase) Record(ctx context.Context, op domain.Operation) error {
	if err := u.repo.SaveOperation(ctx, op); err != nil {
		return fmt.Errorf("save operation: %w", err)
	}
	u.log.Info("operation saved", "session", op.SessionID, "message", op.Message)

	if u.broker == nil {
		return nil
	}
	value, err := json.Marshal(op)
	if err != nil {
		return err
	}
	key := []byte(op.Message)
	if err := u.broker.Send(ctx, key, value); err != nil {
		u.log.Warn("broker send", "key", op.Message, "error", err)
	} else {
		u.log.Info("operation published", "key", op.Message, "result", op.Result)
	}
	return nil
}

// History — журнал операций (обвязка над репозиторием). limit <= 0 — без ограничения.
func (u *UseCase) History(ctx context.Context, limit int) ([]domain.Operation, error) {
	return u.repo.GetHistory(ctx, limit)
}

// HandleOperationEvent вызывается консьюмером при получении сообщения из топика операций.
func (u *UseCase) HandleOperationEvent(ctx context.Context, op domain.Operation) error {
	if u.analytics == nil {
		return nil
	}
	if err := u.analytics.WriteOperation(ctx, op); err != nil {
		u.log.Warn("analytics write", "error", err)
		return err
	}
	u.log.Info("operation stored to click", "number1", op.Number1, "operation", op.Operation, "number2", op.Number2, "result", op.Result)

	return nil
}
