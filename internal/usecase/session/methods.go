package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deskCalc/internal/domain"
	"deskCalc/internal/pkg/metrics"
	"deskCalc/internal/usecase/calculator"
)

// Open создаёт сессию с чистой машиной. Заодно выметает истёкшие сессии.
func (u *UseCase) Open(ctx context.Context) (domain.SessionView, error) {
	s := u.newSession()

	u.mu.Lock()
	u.sweepLocked()
	u.sessions[s.id] = s
	metrics.SessionsActive.Set(float64(len(u.sessions)))
	u.mu.Unlock()

	u.log.Info("session opened", "session", s.id)

	s.mu.Lock()
	defer s.mu.Unlock()
	return u.view(s), nil
}

// Get возвращает текущее состояние. Если удержание ошибки истекло — сначала неявный clear.
func (u *UseCase) Get(ctx context.Context, id string) (domain.SessionView, error) {
	s, err := u.lookup(id)
	if err != nil {
		return domain.SessionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u.settle(s)
	return u.view(s), nil
}

// Press применяет клавиши по порядку и останавливается на первой ошибке.
// Сначала ищется сессия, затем проверяются все идентификаторы: неизвестная клавиша не меняет сессию.
// Деление на ноль оставляет машину как есть и включает удержание ошибки на дисплее.
func (u *UseCase) Press(ctx context.Context, id string, keys []string) (domain.SessionView, error) {
	s, err := u.lookup(id)
	if err != nil {
		return domain.SessionView{}, err
	}

	parsed := make([]calculator.Key, 0, len(keys))
	for _, raw := range keys {
		k, err := calculator.ParseKey(raw)
		if err != nil {
			return domain.SessionView{}, err
		}
		parsed = append(parsed, k)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Нажатие во время удержания ошибки сразу делает clear, как по истечении таймера.
	if s.errMsg != "" {
		u.endHold(s)
	}

	var pressErr error
	for _, k := range parsed {
		metrics.KeysPressedTotal.WithLabelValues(k.Action.String()).Inc()
		if err := s.m.Press(k); err != nil {
			pressErr = err
			break
		}
	}
	u.flush(ctx, s)

	if pressErr != nil {
		if errors.Is(pressErr, domain.ErrDivideByZero) || errors.Is(pressErr, domain.ErrOverflow) {
			metrics.CalculationErrorsTotal.WithLabelValues(metrics.SourceSession, metrics.ErrorReason(pressErr)).Inc()
			s.errMsg = pressErr.Error()
			s.errUntil = u.now().Add(u.cfg.ErrorHold)
		}
		u.log.Warn("session press failed", "session", id, "error", pressErr)
		return u.view(s), fmt.Errorf("session %s: %w", id, pressErr)
	}
	return u.view(s), nil
}

// ClearHistory очищает историю машины сессии.
func (u *UseCase) ClearHistory(ctx context.Context, id string) (domain.SessionView, error) {
	s, err := u.lookup(id)
	if err != nil {
		return domain.SessionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u.settle(s)
	s.m.ClearHistory()
	return u.view(s), nil
}

// Close удаляет сессию.
func (u *UseCase) Close(ctx context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	delete(u.sessions, id)
	metrics.SessionsActive.Set(float64(len(u.sessions)))
	u.log.Info("session closed", "session", id)
	return nil
}

// lookup находит живую сессию и продлевает её. lastSeen охраняется u.mu.
func (u *UseCase) lookup(id string) (*session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	if u.expired(s) {
		delete(u.sessions, id)
		metrics.SessionsActive.Set(float64(len(u.sessions)))
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	s.lastSeen = u.now()
	return s, nil
}

func (u *UseCase) expired(s *session) bool {
	return u.cfg.TTL > 0 && u.now().Sub(s.lastSeen) > u.cfg.TTL
}

func (u *UseCase) sweepLocked() {
	for id, s := range u.sessions {
		if u.expired(s) {
			delete(u.sessions, id)
			u.log.Debug("session expired", "session", id)
		}
	}
}

// settle снимает удержание ошибки, если его время вышло. При ErrorHold == 0 ошибка держится до следующего нажатия.
func (u *UseCase) settle(s *session) {
	if s.errMsg != "" && u.cfg.ErrorHold > 0 && !u.now().Before(s.errUntil) {
		u.endHold(s)
	}
}

func (u *UseCase) endHold(s *session) {
	s.m.Clear()
	s.errMsg = ""
	s.errUntil = time.Time{}
}

// flush отдаёт накопленные записи истории в журнал. Ошибки журнала машину не трогают.
func (u *UseCase) flush(ctx context.Context, s *session) {
	records := s.records
	s.records = nil
	for _, r := range records {
		metrics.CalculationsTotal.WithLabelValues(metrics.SourceSession, string(r.Operator)).Inc()
		if u.journal == nil {
			continue
		}
		if err := u.journal.Record(ctx, domain.NewOperation(s.id, r, u.now())); err != nil {
			u.log.Warn("journal record", "session", s.id, "error", err)
		}
	}
}

func (u *UseCase) view(s *session) domain.SessionView {
	st := s.m.State()
	display := domain.FormatDisplay(st.CurrentEntry)
	if s.errMsg != "" {
		display = domain.ErrorDisplay
	}
	return domain.SessionView{
		ID:            s.id,
		State:         st,
		Display:       display,
		OperationLine: domain.OperationLine(st),
		History:       s.m.History(),
		Error:         s.errMsg,
	}
}
