package calculator

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"deskCalc/internal/domain"
	"deskCalc/internal/ports"
)

var _ CalculatorServer = (*Server)(nil)

// Server реализует CalculatorServer поверх юзкейсов разовых вычислений и сессий.
type Server struct {
	calc     ports.ICalculatorUseCase
	sessions ports.ISessionUseCase
	log      *slog.Logger
}

// New создаёт gRPC-сервер калькулятора.
func New(calc ports.ICalculatorUseCase, sessions ports.ISessionUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{calc: calc, sessions: sessions, log: log}
}

// Calculate вызывает юзкейс и возвращает результат или gRPC-ошибку.
func (s *Server) Calculate(ctx context.Context, req *CalculateRequest) (*CalculateResponse, error) {
	op, err := s.calc.Calculate(ctx, req.Number1, req.Number2, req.Operation)
	if err != nil {
		return nil, s.toStatus("calculate", err)
	}
	return &CalculateResponse{Result: op.Result, Message: op.Message}, nil
}

// Journal возвращает журнал операций.
func (s *Server) Journal(ctx context.Context, req *JournalRequest) (*JournalResponse, error) {
	if req.Limit < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit must be non-negative")
	}
	list, err := s.calc.History(ctx, req.Limit)
	if err != nil {
		return nil, s.toStatus("journal", err)
	}
	items := make([]JournalItem, len(list))
	for i, op := range list {
		items[i] = JournalItem{
			ID:                op.ID,
			SessionID:         op.SessionID,
			Number1:           op.Number1,
			Number2:           op.Number2,
			Operation:         op.Operation,
			Result:            op.Result,
			Message:           op.Message,
			TimestampUnixNano: op.Timestamp.UnixNano(),
		}
	}
	return &JournalResponse{Items: items}, nil
}

// OpenSession открывает новую сессию. ID в запросе игнорируется.
func (s *Server) OpenSession(ctx context.Context, _ *SessionRequest) (*SessionResponse, error) {
	view, err := s.sessions.Open(ctx)
	if err != nil {
		return nil, s.toStatus("open session", err)
	}
	return toSessionResponse(view), nil
}

// Press применяет клавиши к сессии.
func (s *Server) Press(ctx context.Context, req *PressRequest) (*SessionResponse, error) {
	view, err := s.sessions.Press(ctx, req.ID, req.Keys)
	if err != nil {
		return nil, s.toStatus("press", err)
	}
	return toSessionResponse(view), nil
}

// Session возвращает состояние сессии.
func (s *Server) Session(ctx context.Context, req *SessionRequest) (*SessionResponse, error) {
	view, err := s.sessions.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus("session", err)
	}
	return toSessionResponse(view), nil
}

// CloseSession закрывает сессию.
func (s *Server) CloseSession(ctx context.Context, req *SessionRequest) (*CloseSessionResponse, error) {
	if err := s.sessions.Close(ctx, req.ID); err != nil {
		return nil, s.toStatus("close session", err)
	}
	return &CloseSessionResponse{}, nil
}

func (s *Server) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownOperation),
		errors.Is(err, domain.ErrUnknownKey),
		errors.Is(err, domain.ErrDivideByZero),
		errors.Is(err, domain.ErrOverflow):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	s.log.Error(method+" failed", "error", err)
	return status.Error(codes.Internal, err.Error())
}

func toSessionResponse(v domain.SessionView) *SessionResponse {
	history := make([]string, len(v.History))
	for i, r := range v.History {
		history[i] = r.String()
	}
	return &SessionResponse{
		ID:               v.ID,
		CurrentEntry:     v.State.CurrentEntry,
		PendingOperand:   v.State.PendingOperand,
		PendingOperator:  string(v.State.PendingOperator),
		AwaitingNewEntry: v.State.AwaitingNewEntry,
		Display:          v.Display,
		OperationLine:    v.OperationLine,
		History:          history,
		Error:            v.Error,
	}
}
