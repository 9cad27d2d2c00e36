package oauthflow

import (
	"context"
	"sync"

	"github.com/heartmarshall/reputation-manager/internal/service/connection"
)

var _ connector = &connectorMock{}

type connectorMock struct {
	ConnectFunc func(ctx context.Context, in connection.ConnectInput) error

	calls struct {
		Connect []struct {
			Ctx context.Context
			In  connection.ConnectInput
		}
	}
	lockConnect sync.RWMutex
}

func (mock *connectorMock) Connect(ctx context.Context, in connection.ConnectInput) error {
	if mock.ConnectFunc == nil {
		panic("connectorMock.ConnectFunc: method is nil but connector.Connect was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  connection.ConnectInput
	}{Ctx: ctx, In: in}
	mock.lockConnect.Lock()
	mock.calls.Connect = append(mock.calls.Connect, callInfo)
	mock.lockConnect.Unlock()
	return mock.ConnectFunc(ctx, in)
}

func (mock *connectorMock) ConnectCalls() []struct {
	Ctx context.Context
	In  connection.ConnectInput
} {
	mock.lockConnect.RLock()
	calls := mock.calls.Connect
	mock.lockConnect.RUnlock()
	return calls
}
