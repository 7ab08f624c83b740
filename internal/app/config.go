package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	apigrpc "deskCalc/internal/api/grpc"
	apihttp "deskCalc/internal/api/http"
	"deskCalc/internal/infrastructure/click"
	"deskCalc/internal/infrastructure/kafka"
	"deskCalc/internal/infrastructure/mongo"
	"deskCalc/internal/infrastructure/pg"
	"deskCalc/internal/infrastructure/redis"
	"deskCalc/internal/pkg/logger"
	"deskCalc/internal/usecase/session"
)

const AppName = "CALCULATOR"

// Хранилища журнала операций.
const (
	StoragePG    = "pg"
	StorageMongo = "mongo"
)

// Config — конфиг приложения. Заполняется через envconfig с префиксом CALCULATOR.
type Config struct {
	Log     logger.Config `envconfig:"LOG"`
	Storage string        `envconfig:"STORAGE" default:"pg"`
	// Кэш и события можно выключить, чтобы поднять сервис только с журналом.
	CacheEnabled  bool `envconfig:"CACHE_ENABLED" default:"true"`
	EventsEnabled bool `envconfig:"EVENTS_ENABLED" default:"true"`

	Server     apihttp.ServerConfig `envconfig:"SERVER"`
	Grpc       apigrpc.Config       `envconfig:"GRPC"`
	Session    session.Config       `envconfig:"SESSION"`
	DB         pg.Config            `envconfig:"DB"`
	Mongo      mongo.Config         `envconfig:"MONGO"`
	Redis      redis.Config         `envconfig:"REDIS"`
	Kafka      kafka.Config         `envconfig:"KAFKA"`
	ClickHouse click.Config         `envconfig:"CLICKHOUSE"`
}

// Validate проверяет значения, которые envconfig проверить не может.
func (c Config) Validate() error {
	switch c.Storage {
	case StoragePG, StorageMongo:
	default:
		return fmt.Errorf("storage must be %q or %q, got %q", StoragePG, StorageMongo, c.Storage)
	}
	if c.Session.ErrorHold < 0 || c.Session.TTL < 0 {
		return errors.New("session durations must be non-negative")
	}
	return nil
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
func LoadCfg(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("config: .env не найден, используем окружение: %v", err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
