package calculator

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"deskCalc/internal/domain"
	"deskCalc/internal/mocks"
)

// startServer поднимает сервис в памяти и возвращает клиента к нему.
func startServer(t *testing.T) (*Client, *mocks.MockICalculatorUseCase, *mocks.MockISessionUseCase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	calc := mocks.NewMockICalculatorUseCase(ctrl)
	sessions := mocks.NewMockISessionUseCase(ctrl)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterCalculatorServer(srv, New(calc, sessions, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn), calc, sessions
}

func TestCalculate(t *testing.T) {
	client, calc, _ := startServer(t)
	calc.EXPECT().Calculate(gomock.Any(), 10.0, 5.0, "+").
		Return(&domain.Operation{Result: 15, Message: "10 + 5 = 15"}, nil)

	resp, err := client.Calculate(context.Background(), &CalculateRequest{Number1: 10, Number2: 5, Operation: "+"})

	require.NoError(t, err)
	assert.Equal(t, 15.0, resp.Result)
	assert.Equal(t, "10 + 5 = 15", resp.Message)
}

func TestCalculate_DivideByZero(t *testing.T) {
	client, calc, _ := startServer(t)
	calc.EXPECT().Calculate(gomock.Any(), 1.0, 0.0, "/").
		Return(nil, fmt.Errorf("calculate 1 / 0: %w", domain.ErrDivideByZero))

	_, err := client.Calculate(context.Background(), &CalculateRequest{Number1: 1, Number2: 0, Operation: "/"})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestJournal(t *testing.T) {
	client, calc, _ := startServer(t)
	at := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	calc.EXPECT().History(gomock.Any(), 5).Return([]domain.Operation{
		{ID: 1, SessionID: "s1", Number1: 2, Number2: 3, Operation: "*", Result: 6, Message: "2 * 3 = 6", Timestamp: at},
	}, nil)

	resp, err := client.Journal(context.Background(), &JournalRequest{Limit: 5})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "s1", resp.Items[0].SessionID)
	assert.Equal(t, at.UnixNano(), resp.Items[0].TimestampUnixNano)
}

func TestSessionFlow(t *testing.T) {
	client, _, sessions := startServer(t)
	ctx := context.Background()

	sessions.EXPECT().Open(gomock.Any()).Return(domain.SessionView{ID: "s1", State: domain.State{CurrentEntry: "0"}, Display: "0"}, nil)
	sessions.EXPECT().Press(gomock.Any(), "s1", []string{"5", "+", "3", "="}).Return(domain.SessionView{
		ID:            "s1",
		State:         domain.State{CurrentEntry: "8", PendingOperand: 8, PendingOperator: domain.OpEquals, AwaitingNewEntry: true},
		Display:       "8",
		OperationLine: "8 =",
		History:       []domain.Record{{Operand1: 5, Operator: domain.OpAdd, Operand2: 3, Result: 8}},
	}, nil)
	sessions.EXPECT().Close(gomock.Any(), "s1").Return(nil)

	opened, err := client.OpenSession(ctx, &SessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "s1", opened.ID)

	pressed, err := client.Press(ctx, &PressRequest{ID: "s1", Keys: []string{"5", "+", "3", "="}})
	require.NoError(t, err)
	assert.Equal(t, "8", pressed.Display)
	assert.Equal(t, []string{"5 + 3 = 8"}, pressed.History)

	_, err = client.CloseSession(ctx, &SessionRequest{ID: "s1"})
	require.NoError(t, err)
}

func TestSession_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{name: "нет сессии", err: fmt.Errorf("%w: x", domain.ErrSessionNotFound), code: codes.NotFound},
		{name: "неизвестная клавиша", err: domain.ErrUnknownKey, code: codes.InvalidArgument},
		{name: "деление на ноль", err: fmt.Errorf("session x: %w", domain.ErrDivideByZero), code: codes.InvalidArgument},
		{name: "прочее", err: fmt.Errorf("boom"), code: codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, sessions := startServer(t)
			sessions.EXPECT().Press(gomock.Any(), "x", gomock.Any()).Return(domain.SessionView{}, tt.err)

			_, err := client.Press(context.Background(), &PressRequest{ID: "x", Keys: []string{"1"}})

			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}
