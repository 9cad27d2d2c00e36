// Package memory provides an in-process key-value store for connection
// entries. It is the default storage driver and the fake used in tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Store is a mutex-guarded map. RunInTx serialises transactions and
// restores the pre-transaction contents when the callback fails.
type Store struct {
	txMu sync.Mutex

	mu   sync.RWMutex
	data map[string]string
}

// New creates an empty store, optionally pre-filled with entries.
func New(entries map[string]string) *Store {
	data := make(map[string]string, len(entries))
	maps.Copy(data, entries)
	return &Store{data: data}
}

// Get returns the value for key and whether it exists.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Remove deletes key. Missing keys are ignored.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// Keys returns every key in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.data)), nil
}

// Ping reports whether the store can serve requests. It only fails for a
// cancelled context.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// txCtxKey marks a context as inside a transaction of one particular store.
type txCtxKey struct{ s *Store }

// RunInTx runs fn with exclusive access to the store for writers using
// RunInTx. If fn returns an error or panics, the contents are rolled back
// to the snapshot taken before fn ran. Nested calls on the same store join
// the outer one; a transaction on another store is independent.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txCtxKey{s}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := maps.Clone(s.data)
	s.mu.RUnlock()

	rollback := func() {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
	}

	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{s}, true)); err != nil {
		rollback()
		return err
	}

	return nil
}
