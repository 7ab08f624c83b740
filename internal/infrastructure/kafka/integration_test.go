//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"deskCalc/internal/domain"
	"deskCalc/internal/mocks"
	"deskCalc/internal/pkg/testutil"
)

var kafkaContainer *testutil.KafkaContainer

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var err error
	kafkaContainer, err = testutil.NewKafkaContainer(ctx)
	if err != nil {
		log.Fatalf("kafka: %v", err)
	}
	code := m.Run()
	if err := kafkaContainer.Terminate(ctx); err != nil {
		log.Printf("kafka terminate: %v", err)
	}
	os.Exit(code)
}

// Продюсер пишет операцию, консьюмер читает её и отдаёт в юзкейс; битое сообщение пропускается.
func TestProducerToConsumer(t *testing.T) {
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
	cfg := &Config{
		Brokers:      kafkaContainer.BrokersString(),
		Topic:        "deskcalc.test." + time.Now().Format("150405.000"),
		GroupID:      "deskcalc-test",
		BatchTimeout: 10 * time.Millisecond,
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	op := domain.Operation{SessionID: "s1", Number1: 5, Number2: 3, Operation: "+", Result: 8, Message: "5 + 3 = 8", Timestamp: time.Now().UTC()}
	payload, err := json.Marshal(op)
	require.NoError(t, err)

	producer := NewProducer(cfg)
	defer producer.Close()
	require.NoError(t, producer.Send(ctx, []byte("garbage"), []byte("{not json")))
	require.NoError(t, producer.Send(ctx, []byte(op.Message), payload))

	uc := mocks.NewMockICalculatorUseCase(gomock.NewController(t))
	received := make(chan domain.Operation, 1)
	uc.EXPECT().HandleOperationEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got domain.Operation) error {
			received <- got
			return nil
		})

	consumer := NewConsumer(cfg, uc, log)
	defer consumer.Close()
	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- consumer.Run(runCtx) }()

	select {
	case got := <-received:
		assert.Equal(t, op.Message, got.Message)
		assert.Equal(t, op.SessionID, got.SessionID)
		assert.True(t, op.Timestamp.Equal(got.Timestamp))
	case <-ctx.Done():
		t.Fatal("сообщение не дошло до юзкейса")
	}

	stop()
	assert.ErrorIs(t, <-done, context.Canceled)
}
