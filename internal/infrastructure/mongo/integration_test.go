//go:build integration

package mongo

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"deskCalc/internal/domain"
	"deskCalc/internal/pkg/testutil"
)

var mongoContainer *testutil.MongoContainer

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var err error
	mongoContainer, err = testutil.NewMongoContainer(ctx)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	code := m.Run()
	if err := mongoContainer.Terminate(ctx); err != nil {
		log.Printf("mongo terminate: %v", err)
	}
	os.Exit(code)
}

// setupRepo подключается к тестовой базе, чистит коллекцию и создаёт индексы.
func setupRepo(t *testing.T) *OperationRepo {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
	ctx := context.Background()

	client, err := New(ctx, &Config{
		URI:        mongoContainer.URI(),
		Database:   "deskcalc_test",
		Collection: "operations",
	})
	require.NoError(t, err, "не удалось подключиться к MongoDB")
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	_, err = client.Coll().DeleteMany(ctx, bson.M{})
	require.NoError(t, err)
	require.NoError(t, client.EnsureIndexes(ctx))

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewOperationRepo(client, log)
}

func TestOperationRepo_SaveAndGetHistory(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	ops := []domain.Operation{
		{SessionID: "s1", Number1: 1, Number2: 2, Operation: "+", Result: 3, Message: "1 + 2 = 3", Timestamp: now.Add(-2 * time.Second)},
		{SessionID: "s1", Number1: 3, Number2: 3, Operation: "*", Result: 9, Message: "3 * 3 = 9", Timestamp: now.Add(-time.Second)},
		{Number1: 8, Number2: 2, Operation: "/", Result: 4, Message: "8 / 2 = 4", Timestamp: now},
	}
	for _, op := range ops {
		require.NoError(t, repo.SaveOperation(ctx, op))
	}

	all, err := repo.GetHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "8 / 2 = 4", all[0].Message, "новые сначала")
	assert.Empty(t, all[0].SessionID)
	assert.Equal(t, "s1", all[2].SessionID)
	assert.True(t, all[2].Timestamp.Equal(ops[0].Timestamp))

	limited, err := repo.GetHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, 4.0, limited[0].Result)
}

func TestOperationRepo_Ping(t *testing.T) {
	repo := setupRepo(t)

	assert.NoError(t, repo.Ping(context.Background()))
}
