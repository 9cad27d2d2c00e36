package connection

import (
	"context"
	"github.com/heartmarshall/reputation-manager/internal/domain"
	"sync"
)

var _ locationFetcher = &locationFetcherMock{}

type locationFetcherMock struct {
	FetchLocationsFunc func(ctx context.Context, accessToken string) ([]domain.Location, error)

	calls struct {
		FetchLocations []struct {
			Ctx         context.Context
			AccessToken string
		}
	}
	lockFetchLocations sync.RWMutex
}

func (mock *locationFetcherMock) FetchLocations(ctx context.Context, accessToken string) ([]domain.Location, error) {
	if mock.FetchLocationsFunc == nil {
		panic("locationFetcherMock.FetchLocationsFunc: method is nil but locationFetcher.FetchLocations was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		AccessToken string
	}{Ctx: ctx, AccessToken: accessToken}
	mock.lockFetchLocations.Lock()
	mock.calls.FetchLocations = append(mock.calls.FetchLocations, callInfo)
	mock.lockFetchLocations.Unlock()
	return mock.FetchLocationsFunc(ctx, accessToken)
}

func (mock *locationFetcherMock) FetchLocationsCalls() []struct {
	Ctx         context.Context
	AccessToken string
} {
	mock.lockFetchLocations.RLock()
	calls := mock.calls.FetchLocations
	mock.lockFetchLocations.RUnlock()
	return calls
}
