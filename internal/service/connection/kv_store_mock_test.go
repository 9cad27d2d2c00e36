package connection

import (
	"context"
	"sync"
)

var _ kvStore = &kvStoreMock{}

type kvStoreMock struct {
	GetFunc     func(ctx context.Context, key string) (string, bool, error)
	RemoveFunc  func(ctx context.Context, key string) error
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
	SetFunc     func(ctx context.Context, key string, value string) error

	calls struct {
		Get []struct {
			Ctx context.Context
			Key string
		}
		Remove []struct {
			Ctx context.Context
			Key string
		}
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
		Set []struct {
			Ctx   context.Context
			Key   string
			Value string
		}
	}
	lockGet     sync.RWMutex
	lockRemove  sync.RWMutex
	lockRunInTx sync.RWMutex
	lockSet     sync.RWMutex
}

func (mock *kvStoreMock) Get(ctx context.Context, key string) (string, bool, error) {
	if mock.GetFunc == nil {
		panic("kvStoreMock.GetFunc: method is nil but kvStore.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *kvStoreMock) GetCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *kvStoreMock) Remove(ctx context.Context, key string) error {
	if mock.RemoveFunc == nil {
		panic("kvStoreMock.RemoveFunc: method is nil but kvStore.Remove was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockRemove.Lock()
	mock.calls.Remove = append(mock.calls.Remove, callInfo)
	mock.lockRemove.Unlock()
	return mock.RemoveFunc(ctx, key)
}

func (mock *kvStoreMock) RemoveCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockRemove.RLock()
	calls := mock.calls.Remove
	mock.lockRemove.RUnlock()
	return calls
}

func (mock *kvStoreMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("kvStoreMock.RunInTxFunc: method is nil but kvStore.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *kvStoreMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

func (mock *kvStoreMock) Set(ctx context.Context, key string, value string) error {
	if mock.SetFunc == nil {
		panic("kvStoreMock.SetFunc: method is nil but kvStore.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   string
		Value string
	}{Ctx: ctx, Key: key, Value: value}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, value)
}

func (mock *kvStoreMock) SetCalls() []struct {
	Ctx   context.Context
	Key   string
	Value string
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}
