package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
)

// Consumer — читает топик операций, декодирует domain.Operation и отдаёт в юзкейс.
type Consumer struct {
	r   *kafka.Reader
	uc  ports.ICalculatorUseCase
	log *slog.Logger

	maxRetries int
	backoff    time.Duration
}

// NewConsumer создаёт консьюмера. После использования вызови Close().
func NewConsumer(cfg *Config, uc ports.ICalculatorUseCase, log *slog.Logger) *Consumer {
	c := New(cfg).Consumer()
	c.uc = uc
	c.log = log
	return c
}

// Run в цикле читает сообщения и коммитит их после обработки.
// FetchMessage уже сдвинул позицию читателя, поэтому повторы делаются здесь же, без перечитывания.
// Битое сообщение и событие, не обработанное за все попытки, коммитятся и выбрасываются.
// Выход по отмене ctx или при ошибке чтения.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		if err := c.process(ctx, msg); err != nil {
			return err
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// process вызывает handle, пока тот не вернёт nil или не кончатся попытки.
// Ошибку возвращает только при отмене ctx во время ожидания.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) error {
	backoff := c.backoff
	for attempt := 1; ; attempt++ {
		err := c.handle(ctx, msg)
		if err == nil {
			return nil
		}
		if attempt > c.maxRetries {
			c.log.Error("kafka handle failed, event dropped", "error", err, "attempts", attempt, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			return nil
		}
		c.log.Warn("kafka handle error, retry", "error", err, "attempt", attempt, "backoff", backoff, "offset", msg.Offset)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
}

// handle разбирает одно сообщение. nil — сообщение можно коммитить.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	var op domain.Operation
	if err := json.Unmarshal(msg.Value, &op); err != nil {
		c.log.Warn("kafka unmarshal error, skip", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		return nil
	}
	return c.uc.HandleOperationEvent(ctx, op)
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
