package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config — настройки Kafka. Переменные: CALCULATOR_KAFKA_BROKERS, CALCULATOR_KAFKA_TOPIC, CALCULATOR_KAFKA_GROUP_ID.
// MaxRetries — сколько раз консьюмер повторяет обработку события, прежде чем выбросить его.
type Config struct {
	Brokers      string        `envconfig:"BROKERS" default:"localhost:9092"` // через запятую, если несколько
	Topic        string        `envconfig:"TOPIC" default:"deskcalc.operations"`
	GroupID      string        `envconfig:"GROUP_ID" default:"deskcalc-analytics"`
	BatchTimeout time.Duration `envconfig:"BATCH_TIMEOUT" default:"50ms"`
	MaxRetries   int           `envconfig:"MAX_RETRIES" default:"3"`
	RetryBackoff time.Duration `envconfig:"RETRY_BACKOFF" default:"500ms"` // удваивается после каждой попытки
}

// brokersSlice возвращает список брокеров из строки (через запятую).
func (c *Config) brokersSlice() []string {
	if c == nil || c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	parts := strings.Split(c.Brokers, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Client — конфиг и фабрики продюсера/консьюмера. Подключение к брокеру при создании Writer/Reader.
type Client struct {
	cfg *Config
}

// New создаёт клиент по конфигу.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Client{cfg: cfg}
}

// Producer создаёт продюсера топика операций. После использования вызови Close().
func (c *Client) Producer() *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(c.cfg.brokersSlice()...),
		Topic:                  c.cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           c.cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return &Producer{w: w}
}

// Consumer создаёт консьюмера топика операций (consumer group). После использования вызови Close().
func (c *Client) Consumer() *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.cfg.brokersSlice(),
		Topic:   c.cfg.Topic,
		GroupID: c.cfg.GroupID,
	})
	return &Consumer{r: r, maxRetries: c.cfg.MaxRetries, backoff: c.cfg.RetryBackoff}
}
