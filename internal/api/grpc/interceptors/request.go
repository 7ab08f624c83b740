package interceptors

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	grpcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_grpc_requests_total",
			Help: "Total number of unary gRPC requests",
		},
		[]string{"method", "code"},
	)

	grpcRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calculator_grpc_request_duration_seconds",
			Help:    "Unary gRPC request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// LoggingUnaryInterceptor логирует каждый unary RPC (метод, длительность, код) и считает метрики.
// Ошибки клиента (InvalidArgument, NotFound) пишутся в Warn, остальные — в Error.
func LoggingUnaryInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		latency := time.Since(start)

		// status.Code даёт OK для nil и Unknown для не-gRPC ошибок.
		code := status.Code(err)
		grpcRequestsTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
		grpcRequestDuration.WithLabelValues(info.FullMethod).Observe(latency.Seconds())

		attrs := []any{"method", info.FullMethod, "latency_ms", latency.Milliseconds(), "grpc_code", code.String()}
		if err == nil {
			log.Info("grpc request", attrs...)
			return resp, nil
		}
		attrs = append(attrs, "error", status.Convert(err).Message())
		if clientError(code) {
			log.Warn("grpc request", attrs...)
		} else {
			log.Error("grpc request", attrs...)
		}
		return resp, err
	}
}
