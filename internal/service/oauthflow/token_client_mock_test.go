package oauthflow

import (
	"context"
	"sync"

	"github.com/heartmarshall/reputation-manager/internal/domain"
)

var _ tokenClient = &tokenClientMock{}

type tokenClientMock struct {
	ExchangeCodeFunc  func(ctx context.Context, code string) (*domain.OAuthToken, error)
	FetchUserinfoFunc func(ctx context.Context, accessToken string) (*domain.Account, error)
	RefreshTokenFunc  func(ctx context.Context, refreshToken string) (*domain.OAuthToken, error)

	calls struct {
		ExchangeCode []struct {
			Ctx  context.Context
			Code string
		}
		FetchUserinfo []struct {
			Ctx         context.Context
			AccessToken string
		}
		RefreshToken []struct {
			Ctx          context.Context
			RefreshToken string
		}
	}
	lockExchangeCode  sync.RWMutex
	lockFetchUserinfo sync.RWMutex
	lockRefreshToken  sync.RWMutex
}

func (mock *tokenClientMock) ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error) {
	if mock.ExchangeCodeFunc == nil {
		panic("tokenClientMock.ExchangeCodeFunc: method is nil but tokenClient.ExchangeCode was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{Ctx: ctx, Code: code}
	mock.lockExchangeCode.Lock()
	mock.calls.ExchangeCode = append(mock.calls.ExchangeCode, callInfo)
	mock.lockExchangeCode.Unlock()
	return mock.ExchangeCodeFunc(ctx, code)
}

func (mock *tokenClientMock) ExchangeCodeCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockExchangeCode.RLock()
	calls := mock.calls.ExchangeCode
	mock.lockExchangeCode.RUnlock()
	return calls
}

func (mock *tokenClientMock) FetchUserinfo(ctx context.Context, accessToken string) (*domain.Account, error) {
	if mock.FetchUserinfoFunc == nil {
		panic("tokenClientMock.FetchUserinfoFunc: method is nil but tokenClient.FetchUserinfo was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		AccessToken string
	}{Ctx: ctx, AccessToken: accessToken}
	mock.lockFetchUserinfo.Lock()
	mock.calls.FetchUserinfo = append(mock.calls.FetchUserinfo, callInfo)
	mock.lockFetchUserinfo.Unlock()
	return mock.FetchUserinfoFunc(ctx, accessToken)
}

func (mock *tokenClientMock) FetchUserinfoCalls() []struct {
	Ctx         context.Context
	AccessToken string
} {
	mock.lockFetchUserinfo.RLock()
	calls := mock.calls.FetchUserinfo
	mock.lockFetchUserinfo.RUnlock()
	return calls
}

func (mock *tokenClientMock) RefreshToken(ctx context.Context, refreshToken string) (*domain.OAuthToken, error) {
	if mock.RefreshTokenFunc == nil {
		panic("tokenClientMock.RefreshTokenFunc: method is nil but tokenClient.RefreshToken was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		RefreshToken string
	}{Ctx: ctx, RefreshToken: refreshToken}
	mock.lockRefreshToken.Lock()
	mock.calls.RefreshToken = append(mock.calls.RefreshToken, callInfo)
	mock.lockRefreshToken.Unlock()
	return mock.RefreshTokenFunc(ctx, refreshToken)
}

func (mock *tokenClientMock) RefreshTokenCalls() []struct {
	Ctx          context.Context
	RefreshToken string
} {
	mock.lockRefreshToken.RLock()
	calls := mock.calls.RefreshToken
	mock.lockRefreshToken.RUnlock()
	return calls
}
