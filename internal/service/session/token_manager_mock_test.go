package session

import (
	"github.com/google/uuid"
	"sync"
)

var _ tokenManager = &tokenManagerMock{}

type tokenManagerMock struct {
	GenerateSessionTokenFunc func(sessionID uuid.UUID) (string, error)
	ValidateSessionTokenFunc func(token string) (uuid.UUID, error)

	calls struct {
		GenerateSessionToken []struct {
			SessionID uuid.UUID
		}
		ValidateSessionToken []struct {
			Token string
		}
	}
	lockGenerateSessionToken sync.RWMutex
	lockValidateSessionToken sync.RWMutex
}

func (mock *tokenManagerMock) GenerateSessionToken(sessionID uuid.UUID) (string, error) {
	if mock.GenerateSessionTokenFunc == nil {
		panic("tokenManagerMock.GenerateSessionTokenFunc: method is nil but tokenManager.GenerateSessionToken was just called")
	}
	callInfo := struct {
		SessionID uuid.UUID
	}{SessionID: sessionID}
	mock.lockGenerateSessionToken.Lock()
	mock.calls.GenerateSessionToken = append(mock.calls.GenerateSessionToken, callInfo)
	mock.lockGenerateSessionToken.Unlock()
	return mock.GenerateSessionTokenFunc(sessionID)
}

func (mock *tokenManagerMock) GenerateSessionTokenCalls() []struct {
	SessionID uuid.UUID
} {
	mock.lockGenerateSessionToken.RLock()
	calls := mock.calls.GenerateSessionToken
	mock.lockGenerateSessionToken.RUnlock()
	return calls
}

func (mock *tokenManagerMock) ValidateSessionToken(token string) (uuid.UUID, error) {
	if mock.ValidateSessionTokenFunc == nil {
		panic("tokenManagerMock.ValidateSessionTokenFunc: method is nil but tokenManager.ValidateSessionToken was just called")
	}
	callInfo := struct {
		Token string
	}{Token: token}
	mock.lockValidateSessionToken.Lock()
	mock.calls.ValidateSessionToken = append(mock.calls.ValidateSessionToken, callInfo)
	mock.lockValidateSessionToken.Unlock()
	return mock.ValidateSessionTokenFunc(token)
}

func (mock *tokenManagerMock) ValidateSessionTokenCalls() []struct {
	Token string
} {
	mock.lockValidateSessionToken.RLock()
	calls := mock.calls.ValidateSessionToken
	mock.lockValidateSessionToken.RUnlock()
	return calls
}
