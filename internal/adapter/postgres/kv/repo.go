// Package kv implements the connection entry store on top of PostgreSQL.
// Each entry is one row in kv_entries; values are opaque strings.
package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/reputation-manager/internal/adapter/postgres"
)

const table = "kv_entries"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides key-value persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new kv repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

// Get returns the stored value for key. ok is false when no entry exists.
func (r *Repo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := psql.
		Select("value").
		From(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build get query: %w", err)
	}

	var value string
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, postgres.MapError(err, "kv", key)
	}

	return value, true, nil
}

// Set upserts the value for key.
func (r *Repo) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	query, args, err := psql.
		Insert(table).
		Columns("key", "value", "updated_at").
		Values(key, value, now).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build set query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "kv", key)
	}

	return nil
}

// Remove deletes the entry for key. Removing a missing key is not an error.
func (r *Repo) Remove(ctx context.Context, key string) error {
	query, args, err := psql.
		Delete(table).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "kv", key)
	}

	return nil
}

// Keys lists every stored key in lexical order.
func (r *Repo) Keys(ctx context.Context) ([]string, error) {
	query, args, err := psql.
		Select("key").
		From(table).
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build keys query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}

	return keys, nil
}

// RunInTx runs fn inside a transaction; Get/Set/Remove calls made with
// the callback's context share it.
func (r *Repo) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.tx.RunInTx(ctx, fn)
}

// Ping checks that the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
