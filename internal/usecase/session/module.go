// Package session — калькуляторы для сетевых клиентов: у каждой сессии своя машина состояний.
// Машина однопоточная, поэтому вызовы одной сессии сериализуются её мьютексом.
package session

import (
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
	"deskCalc/internal/usecase/calculator"
)

var _ ports.ISessionUseCase = (*UseCase)(nil)

// Config — настройки сессий. Переменные: CALCULATOR_SESSION_TTL, CALCULATOR_SESSION_ERROR_HOLD.
// TTL == 0 — сессии не истекают; ErrorHold == 0 — ошибка на дисплее до следующего нажатия.
type Config struct {
	TTL       time.Duration `envconfig:"TTL" default:"30m"`
	ErrorHold time.Duration `envconfig:"ERROR_HOLD" default:"2s"`
}

type session struct {
	mu       sync.Mutex
	id       string
	m        *calculator.Machine
	records  []domain.Record
	errMsg   string
	errUntil time.Time
	lastSeen time.Time
}

// UseCase — реестр сессий.
type UseCase struct {
	cfg     Config
	journal ports.IJournal
	log     *slog.Logger
	now     func() time.Time
	newID   func() string

	mu       sync.Mutex
	sessions map[string]*session
}

// New создаёт реестр сессий. journal может быть nil — тогда вычисления никуда не пишутся.
func New(cfg Config, journal ports.IJournal, log *slog.Logger) *UseCase {
	return &UseCase{
		cfg:      cfg,
		journal:  journal,
		log:      log,
		now:      time.Now,
		newID:    func() string { return bson.NewObjectID().Hex() },
		sessions: make(map[string]*session),
	}
}

func (u *UseCase) newSession() *session {
	s := &session{id: u.newID(), lastSeen: u.now()}
	s.m = calculator.New(calculator.WithRecordHook(func(r domain.Record) {
		s.records = append(s.records, r)
	}))
	return s
}
