package audit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vcscsvcscs/fitflow/apps/backend/internal/storage"
)

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Write(ctx context.Context, entry Entry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockSink) Recent(ctx context.Context, limit int) ([]Entry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

func TestLogger_FillsIDAndTimestamp(t *testing.T) {
	sink := new(mockSink)
	sink.On("Write", mock.Anything, mock.MatchedBy(func(e Entry) bool {
		return e.ID != "" && !e.Timestamp.IsZero() &&
			e.OperationType == OperationDelete && e.ResourceType == ResourceProfile &&
			e.IPAddress == "10.0.0.1" && e.UserAgent == "curl/8"
	})).Return(nil)

	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewLogger(sink, zap.New(core))

	require.NoError(t, logger.LogDelete(context.Background(), ResourceProfile, "p1", "10.0.0.1", "curl/8"))
	sink.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("audit log entry").Len())
}

func TestLogger_SinkError(t *testing.T) {
	sink := new(mockSink)
	sink.On("Write", mock.Anything, mock.Anything).Return(errors.New("read-only"))

	core, logs := observer.New(zapcore.ErrorLevel)
	logger := NewLogger(sink, zap.New(core))

	err := logger.LogExport(context.Background(), ResourceBackup, "backups/x.json", "", "")
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to write audit log").Len())
}

func TestStoreSink(t *testing.T) {
	ctx := context.Background()
	logger := NewLogger(NewStoreSink(storage.NewMemoryStore()), zap.NewNop())

	require.NoError(t, logger.LogDelete(ctx, ResourceProfile, "p1", "", ""))
	require.NoError(t, logger.LogExport(ctx, ResourceBackup, "backups/a.json", "", ""))

	entries, err := logger.GetAuditLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, OperationExport, entries[0].OperationType)
	assert.Equal(t, OperationDelete, entries[1].OperationType)

	entries, err = logger.GetAuditLogs(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStoreSink_Retention(t *testing.T) {
	ctx := context.Background()
	sink := NewStoreSink(storage.NewMemoryStore())

	for i := 0; i < maxStoredEntries+5; i++ {
		require.NoError(t, sink.Write(ctx, Entry{ID: fmt.Sprint(i), OperationType: OperationDelete}))
	}

	entries, err := sink.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, maxStoredEntries)
	assert.Equal(t, fmt.Sprint(maxStoredEntries+4), entries[0].ID)
}

func TestStoreSink_CorruptTrailRestarts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(ctx, storage.KeyAuditTrail, []byte("garbage")))

	sink := NewStoreSink(store)
	_, err := sink.Recent(ctx, 10)
	assert.Error(t, err)

	require.NoError(t, sink.Write(ctx, Entry{ID: "1"}))
	entries, err := sink.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// setupTestDB creates a PostgreSQL testcontainer and returns the connection pool
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("fitflow_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connString, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return pool, cleanup
}

func TestPostgresSink(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	sink := NewPostgresSink(pool, zap.NewNop())
	require.NoError(t, sink.EnsureSchema(ctx))

	logger := NewLogger(sink, zap.NewNop())
	require.NoError(t, logger.Log(ctx, Entry{
		OperationType:  OperationDelete,
		ResourceType:   ResourceProfile,
		ResourceID:     "p1",
		Timestamp:      time.Now().Add(-time.Minute),
		AdditionalData: map[string]any{"keys": 4},
	}))
	require.NoError(t, logger.LogExport(ctx, ResourceBackup, "backups/a.json", "127.0.0.1", ""))

	entries, err := logger.GetAuditLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, OperationExport, entries[0].OperationType)
	assert.Equal(t, "127.0.0.1", entries[0].IPAddress)
	assert.Equal(t, "p1", entries[1].ResourceID)
}
