package calculator

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"

	"deskCalc/internal/domain"
	"deskCalc/internal/mocks"
)

func decodeFrom(t *testing.T, v any) func(any) error {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return func(in any) error { return json.Unmarshal(data, in) }
}

func methodDesc(t *testing.T, name string) grpc.MethodDesc {
	t.Helper()
	for _, m := range ServiceDesc.Methods {
		if m.MethodName == name {
			return m
		}
	}
	t.Fatalf("method %s not in ServiceDesc", name)
	return grpc.MethodDesc{}
}

func TestServiceDesc_Methods(t *testing.T) {
	var names []string
	for _, m := range ServiceDesc.Methods {
		names = append(names, m.MethodName)
	}
	assert.ElementsMatch(t, []string{"Calculate", "Journal", "OpenSession", "Press", "Session", "CloseSession"}, names)
}

// Обработчик из ServiceDesc вызывается напрямую: и без перехватчика, и через него с полным именем метода.
func TestServiceDesc_PressHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockISessionUseCase(ctrl)
	srv := New(mocks.NewMockICalculatorUseCase(ctrl), sessions, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	handler := methodDesc(t, "Press").Handler
	req := &PressRequest{ID: "s1", Keys: []string{"7"}}

	sessions.EXPECT().Press(gomock.Any(), "s1", []string{"7"}).
		Return(domain.SessionView{ID: "s1", State: domain.State{CurrentEntry: "7"}, Display: "7"}, nil).Times(2)

	out, err := handler(srv, context.Background(), decodeFrom(t, req), nil)
	require.NoError(t, err)
	assert.Equal(t, "7", out.(*SessionResponse).Display)

	var fullMethod string
	interceptor := func(ctx context.Context, in any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		fullMethod = info.FullMethod
		return next(ctx, in)
	}
	out, err = handler(srv, context.Background(), decodeFrom(t, req), interceptor)
	require.NoError(t, err)
	assert.Equal(t, "/deskcalc.v1.Calculator/Press", fullMethod)
	assert.Equal(t, "s1", out.(*SessionResponse).ID)
}
