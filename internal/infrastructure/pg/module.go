package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Config — настройки подключения к PostgreSQL. Переменные: CALCULATOR_DB_*.
type Config struct {
	Host         string        `envconfig:"HOST" default:"localhost"`
	Port         string        `envconfig:"PORT" default:"5433"`
	User         string        `envconfig:"USER" default:"postgres"`
	Password     string        `envconfig:"PASSWORD" default:"postgres"`
	DBName       string        `envconfig:"NAME" default:"deskcalc"`
	SSLMode      string        `envconfig:"SSLMODE" default:"disable"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" default:"10"`
	ConnMaxIdle  time.Duration `envconfig:"CONN_MAX_IDLE" default:"5m"`
}

// DSN возвращает строку подключения для lib/pq.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// DB обёртка над пулом соединений.
type DB struct {
	*sql.DB
}

// New подключается к PostgreSQL по конфигу и проверяет пингом.
func New(cfg *Config) (*DB, error) {
	conn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("pg open: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	conn.SetConnMaxIdleTime(cfg.ConnMaxIdle)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return &DB{conn}, nil
}

// Close закрывает пул.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Ping проверяет соединение с БД (для readiness).
func (db *DB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

const createOperationsTable = `
CREATE TABLE IF NOT EXISTS operations (
	id         SERIAL PRIMARY KEY,
	session_id TEXT NOT NULL DEFAULT '',
	number1    DOUBLE PRECISION NOT NULL,
	number2    DOUBLE PRECISION NOT NULL,
	operation  VARCHAR(10) NOT NULL,
	result     DOUBLE PRECISION NOT NULL,
	message    TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS operations_created_at_idx ON operations (created_at DESC);
`

// Migrate создаёт таблицу operations, если её ещё нет.
func Migrate(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, createOperationsTable)
	return err
}
