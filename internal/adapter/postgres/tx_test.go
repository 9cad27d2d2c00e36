package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/reputation-manager/internal/adapter/postgres"
	"github.com/heartmarshall/reputation-manager/internal/adapter/postgres/testhelper"
)

func entryExists(t *testing.T, pool *pgxpool.Pool, key string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM kv_entries WHERE key = $1)`,
		key,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("entryExists query: %v", err)
	}
	return exists
}

func insertEntry(ctx context.Context, pool *pgxpool.Pool, key string) error {
	q := postgres.QuerierFromCtx(ctx, pool)
	_, err := q.Exec(ctx, `INSERT INTO kv_entries (key, value) VALUES ($1, 'v')`, key)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	key := "commit-" + uuid.NewString()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertEntry(ctx, pool, key)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !entryExists(t, pool, key) {
		t.Fatal("expected entry to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	key := "rollback-" + uuid.NewString()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertEntry(ctx, pool, key); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if entryExists(t, pool, key) {
		t.Fatal("expected entry NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	key := "panic-" + uuid.NewString()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if entryExists(t, pool, key) {
			t.Fatal("expected entry NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertEntry(ctx, pool, key); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	key := "nested-" + uuid.NewString()
	sentinel := errors.New("outer failure")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertEntry(ctx, pool, key)
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if entryExists(t, pool, key) {
		t.Fatal("inner write must roll back with the outer transaction")
	}
}
