// Package evaluate — разовые вычисления a op b без сессии, журнал операций и обработка событий из Kafka.
package evaluate

import (
	"log/slog"
	"time"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
)

var (
	_ ports.ICalculatorUseCase = (*UseCase)(nil)
	_ ports.IJournal           = (*UseCase)(nil)
)

// cacheKey формирует читаемый ключ операции для кэша, например "1 + 1".
func cacheKey(number1, number2 float64, op domain.Operator) string {
	return domain.FormatNumber(number1) + " " + string(op) + " " + domain.FormatNumber(number2)
}

// UseCase — разовые вычисления и журнал.
type UseCase struct {
	repo      ports.IOperationRepository
	cache     ports.ICache
	broker    ports.IProducer
	analytics ports.IOperationAnalytics
	log       *slog.Logger
	now       func() time.Time
}

// New создаёт юзкейс. cache, broker и analytics могут быть nil, если соответствующая часть не используется.
func New(repo ports.IOperationRepository, cache ports.ICache, broker ports.IProducer, analytics ports.IOperationAnalytics, log *slog.Logger) *UseCase {
	return &UseCase{
		repo:      repo,
		cache:     cache,
		broker:    broker,
		analytics: analytics,
		log:       log,
		now:       time.Now,
	}
}
