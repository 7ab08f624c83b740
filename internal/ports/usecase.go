package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"deskCalc/internal/domain"
)

// ICalculatorUseCase — разовые вычисления a op b, журнал и обработка событий из Kafka.
type ICalculatorUseCase interface {
	Calculate(ctx context.Context, number1, number2 float64, operation string) (*domain.Operation, error)
	History(ctx context.Context, limit int) ([]domain.Operation, error)
	HandleOperationEvent(ctx context.Context, op domain.Operation) error
}

// ISessionUseCase — сессии калькулятора с клавиатурой: каждая сессия владеет своей машиной состояний.
type ISessionUseCase interface {
	Open(ctx context.Context) (domain.SessionView, error)
	Get(ctx context.Context, id string) (domain.SessionView, error)
	Press(ctx context.Context, id string, keys []string) (domain.SessionView, error)
	ClearHistory(ctx context.Context, id string) (domain.SessionView, error)
	Close(ctx context.Context, id string) error
}

// IJournal — запись завершённого вычисления в журнал (БД + брокер). Используется сессиями.
type IJournal interface {
	Record(ctx context.Context, op domain.Operation) error
}
