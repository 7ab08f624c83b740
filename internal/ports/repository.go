package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"deskCalc/internal/domain"
)

// IOperationRepository — журнал завершённых вычислений (PostgreSQL или MongoDB).
// В память калькулятора журнал не возвращается: история сессии живёт только в машине.
type IOperationRepository interface {
	SaveOperation(ctx context.Context, op domain.Operation) error
	GetHistory(ctx context.Context, limit int) ([]domain.Operation, error)
	Ping(ctx context.Context) error
}
