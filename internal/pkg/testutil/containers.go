// Package testutil поднимает инфраструктуру в Docker для интеграционных тестов адаптеров.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartupTimeout — общий таймаут подъёма контейнера.
const StartupTimeout = 2 * time.Minute

// endpoint — хост и проброшенный порт контейнера.
func endpoint(ctx context.Context, c testcontainers.Container, port nat.Port) (string, string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", "", fmt.Errorf("host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return "", "", fmt.Errorf("port %s: %w", port, err)
	}
	return host, mapped.Port(), nil
}

// PostgresContainer — PostgreSQL и параметры подключения.
type PostgresContainer struct {
	*postgres.PostgresContainer
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// NewPostgresContainer поднимает PostgreSQL.
func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	const (
		user     = "test"
		password = "test"
		dbName   = "deskcalc"
	)

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres container: %w", err)
	}
	host, port, err := endpoint(ctx, container, "5432")
	if err != nil {
		return nil, fmt.Errorf("postgres %w", err)
	}
	return &PostgresContainer{
		PostgresContainer: container,
		Host:              host,
		Port:              port,
		User:              user,
		Password:          password,
		DBName:            dbName,
	}, nil
}

// RedisContainer — Redis и его адрес.
type RedisContainer struct {
	*redis.RedisContainer
	Host string
	Port string
}

// NewRedisContainer поднимает Redis.
func NewRedisContainer(ctx context.Context) (*RedisContainer, error) {
	container, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("redis container: %w", err)
	}
	host, port, err := endpoint(ctx, container, "6379")
	if err != nil {
		return nil, fmt.Errorf("redis %w", err)
	}
	return &RedisContainer{RedisContainer: container, Host: host, Port: port}, nil
}

// MongoContainer — MongoDB и её адрес.
type MongoContainer struct {
	*mongodb.MongoDBContainer
	Host string
	Port string
}

// NewMongoContainer поднимает MongoDB.
func NewMongoContainer(ctx context.Context) (*MongoContainer, error) {
	container, err := mongodb.Run(ctx,
		"mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithStartupTimeout(StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("mongo container: %w", err)
	}
	host, port, err := endpoint(ctx, container, "27017")
	if err != nil {
		return nil, fmt.Errorf("mongo %w", err)
	}
	return &MongoContainer{MongoDBContainer: container, Host: host, Port: port}, nil
}

// URI возвращает строку подключения для mongo-driver.
func (c *MongoContainer) URI() string {
	return fmt.Sprintf("mongodb://%s:%s", c.Host, c.Port)
}

// ClickHouseContainer — ClickHouse и параметры нативного протокола.
type ClickHouseContainer struct {
	*clickhouse.ClickHouseContainer
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// NewClickHouseContainer поднимает ClickHouse.
func NewClickHouseContainer(ctx context.Context) (*ClickHouseContainer, error) {
	const (
		user     = "default"
		password = ""
		database = "default"
	)

	container, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:24-alpine",
		clickhouse.WithUsername(user),
		clickhouse.WithPassword(password),
		clickhouse.WithDatabase(database),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse container: %w", err)
	}
	host, port, err := endpoint(ctx, container, "9000")
	if err != nil {
		return nil, fmt.Errorf("clickhouse %w", err)
	}
	return &ClickHouseContainer{
		ClickHouseContainer: container,
		Host:                host,
		Port:                port,
		User:                user,
		Password:            password,
		Database:            database,
	}, nil
}

// KafkaContainer — одноузловой Kafka (KRaft) и список брокеров.
type KafkaContainer struct {
	*kafka.KafkaContainer
	Brokers []string
}

// NewKafkaContainer поднимает Kafka.
func NewKafkaContainer(ctx context.Context) (*KafkaContainer, error) {
	container, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafka.WithClusterID("deskcalc-test"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka container: %w", err)
	}
	brokers, err := container.Brokers(ctx)
	if err != nil {
		return nil, fmt.Errorf("kafka brokers: %w", err)
	}
	return &KafkaContainer{KafkaContainer: container, Brokers: brokers}, nil
}

// BrokersString возвращает брокеров через запятую, как в конфиге.
func (c *KafkaContainer) BrokersString() string {
	return strings.Join(c.Brokers, ",")
}
