package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apigrpc "deskCalc/internal/api/grpc"
	apihttp "deskCalc/internal/api/http"
	calculatorctl "deskCalc/internal/api/http/controllers/calculator"
	sessionctl "deskCalc/internal/api/http/controllers/session"
	"deskCalc/internal/api/http/controllers/system"
	"deskCalc/internal/infrastructure/click"
	"deskCalc/internal/infrastructure/kafka"
	"deskCalc/internal/infrastructure/mongo"
	"deskCalc/internal/infrastructure/pg"
	"deskCalc/internal/infrastructure/redis"
	"deskCalc/internal/pkg/logger"
	"deskCalc/internal/ports"
	"deskCalc/internal/usecase/evaluate"
	"deskCalc/internal/usecase/session"
)

// App — приложение, хранит конфиг и то, что нужно закрыть при выходе.
type App struct {
	cfg     Config
	log     *slog.Logger
	closers []func() error
}

// New создаёт приложение с конфигом (подключения поднимаются в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Run поднимает журнал, кэш, брокер и аналитику, запускает HTTP и gRPC и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	a.log = logger.New(a.cfg.Log)
	slog.SetDefault(a.log)
	defer a.close()

	repo, err := a.openJournal(ctx)
	if err != nil {
		return err
	}

	var cache ports.ICache
	if a.cfg.CacheEnabled {
		rdb, err := redis.New(ctx, &a.cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)
		cache = redis.NewCache(rdb, a.log)
	}

	var (
		producer  ports.IProducer
		analytics ports.IOperationAnalytics
	)
	if a.cfg.EventsEnabled {
		p := kafka.NewProducer(&a.cfg.Kafka)
		a.closers = append(a.closers, p.Close)
		producer = p

		ch, err := click.New(ctx, &a.cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		a.closers = append(a.closers, ch.Close)
		writer := click.NewOperationWriter(ch)
		if err := writer.EnsureTable(ctx); err != nil {
			return fmt.Errorf("clickhouse table: %w", err)
		}
		analytics = writer
	}

	calc := evaluate.New(repo, cache, producer, analytics, a.log)
	sessions := session.New(a.cfg.Session, calc, a.log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cfg.EventsEnabled {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, calc, a.log)
		a.closers = append(a.closers, consumer.Close)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				a.log.Error("kafka consumer failed", "error", err)
			}
		}()
	}

	grpcSrv := apigrpc.NewServer(a.cfg.Grpc.Addr(), calc, sessions, a.log)
	go func() {
		if err := grpcSrv.Start(); err != nil {
			a.log.Error("grpc server failed", "error", err)
			cancel()
		}
	}()

	srv := apihttp.NewServer(a.cfg.Server, a.log)
	srv.AddController(
		system.New(repo, a.log),
		calculatorctl.New(calc, a.log),
		sessionctl.New(sessions, a.log))

	a.log.Info("application started",
		"http", a.cfg.Server.Addr(),
		"grpc", a.cfg.Grpc.Addr(),
		"storage", a.cfg.Storage,
		"cache", a.cfg.CacheEnabled,
		"events", a.cfg.EventsEnabled)

	httpErr := srv.Start(ctx)
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	return errors.Join(httpErr, grpcSrv.Stop(shutdownCtx))
}

// openJournal подключает выбранное хранилище журнала и создаёт схему.
func (a *App) openJournal(ctx context.Context) (ports.IOperationRepository, error) {
	switch a.cfg.Storage {
	case StorageMongo:
		client, err := mongo.New(ctx, &a.cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		a.closers = append(a.closers, func() error { return client.Close(context.Background()) })
		if err := client.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return mongo.NewOperationRepo(client, a.log), nil
	default:
		db, err := pg.New(&a.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := pg.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pg.NewOperationRepo(db, a.log), nil
	}
}

// close закрывает подключения в обратном порядке.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
}
