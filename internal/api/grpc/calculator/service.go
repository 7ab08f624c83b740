package calculator

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// ServiceName — полное имя gRPC-сервиса.
const ServiceName = "deskcalc.v1.Calculator"

// CodecName — content-subtype, с которым клиент должен звать сервис ("application/grpc+json").
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec кодирует сообщения сервиса в JSON вместо protobuf.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

// CalculateRequest — разовое вычисление a op b.
type CalculateRequest struct {
	Number1   float64 `json:"number1"`
	Number2   float64 `json:"number2"`
	Operation string  `json:"operation"`
}

// CalculateResponse — результат и строка журнала.
type CalculateResponse struct {
	Result  float64 `json:"result"`
	Message string  `json:"message"`
}

// JournalRequest — запрос журнала; Limit == 0 — все записи, отрицательный отвергается.
type JournalRequest struct {
	Limit int `json:"limit"`
}

// JournalItem — одна запись журнала.
type JournalItem struct {
	ID                int     `json:"id"`
	SessionID         string  `json:"session_id,omitempty"`
	Number1           float64 `json:"number1"`
	Number2           float64 `json:"number2"`
	Operation         string  `json:"operation"`
	Result            float64 `json:"result"`
	Message           string  `json:"message"`
	TimestampUnixNano int64   `json:"timestamp_unix_nano"`
}

// JournalResponse — записи журнала, последние сначала.
type JournalResponse struct {
	Items []JournalItem `json:"items"`
}

// SessionRequest адресует сессию. Для OpenSession ID не нужен.
type SessionRequest struct {
	ID string `json:"id"`
}

// PressRequest — клавиши для сессии, применяются по порядку.
type PressRequest struct {
	ID   string   `json:"id"`
	Keys []string `json:"keys"`
}

// SessionResponse — состояние сессии, как его видит клиент. History — последние записи сначала.
type SessionResponse struct {
	ID               string   `json:"id"`
	CurrentEntry     string   `json:"current_entry"`
	PendingOperand   float64  `json:"pending_operand"`
	PendingOperator  string   `json:"pending_operator,omitempty"`
	AwaitingNewEntry bool     `json:"awaiting_new_entry"`
	Display          string   `json:"display"`
	OperationLine    string   `json:"operation_line"`
	History          []string `json:"history"`
	Error            string   `json:"error,omitempty"`
}

// CloseSessionResponse пустой.
type CloseSessionResponse struct{}

// CalculatorServer — серверная сторона сервиса.
type CalculatorServer interface {
	Calculate(context.Context, *CalculateRequest) (*CalculateResponse, error)
	Journal(context.Context, *JournalRequest) (*JournalResponse, error)
	OpenSession(context.Context, *SessionRequest) (*SessionResponse, error)
	Press(context.Context, *PressRequest) (*SessionResponse, error)
	Session(context.Context, *SessionRequest) (*SessionResponse, error)
	CloseSession(context.Context, *SessionRequest) (*CloseSessionResponse, error)
}

// methodHandler совпадает с типом поля grpc.MethodDesc.Handler, который в grpc не экспортирован.
type methodHandler = func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error)

// unary собирает обработчик метода так же, как это делает protoc-gen-go-grpc, но для любого метода.
func unary[Req, Resp any](method string, call func(CalculatorServer, context.Context, *Req) (*Resp, error)) methodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalculatorServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CalculatorServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc — описание сервиса для grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Calculate", Handler: unary("Calculate", CalculatorServer.Calculate)},
		{MethodName: "Journal", Handler: unary("Journal", CalculatorServer.Journal)},
		{MethodName: "OpenSession", Handler: unary("OpenSession", CalculatorServer.OpenSession)},
		{MethodName: "Press", Handler: unary("Press", CalculatorServer.Press)},
		{MethodName: "Session", Handler: unary("Session", CalculatorServer.Session)},
		{MethodName: "CloseSession", Handler: unary("CloseSession", CalculatorServer.CloseSession)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "deskcalc/v1/calculator",
}

// RegisterCalculatorServer регистрирует реализацию на сервере.
func RegisterCalculatorServer(s grpc.ServiceRegistrar, srv CalculatorServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client — клиентская сторона сервиса поверх любого соединения.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient оборачивает соединение. Кодек JSON выбирается на каждый вызов.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Calculate(ctx context.Context, in *CalculateRequest, opts ...grpc.CallOption) (*CalculateResponse, error) {
	return invoke[CalculateResponse](ctx, c, "Calculate", in, opts...)
}

func (c *Client) Journal(ctx context.Context, in *JournalRequest, opts ...grpc.CallOption) (*JournalResponse, error) {
	return invoke[JournalResponse](ctx, c, "Journal", in, opts...)
}

func (c *Client) OpenSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c, "OpenSession", in, opts...)
}

func (c *Client) Press(ctx context.Context, in *PressRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c, "Press", in, opts...)
}

func (c *Client) Session(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c, "Session", in, opts...)
}

func (c *Client) CloseSession(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*CloseSessionResponse, error) {
	return invoke[CloseSessionResponse](ctx, c, "CloseSession", in, opts...)
}
