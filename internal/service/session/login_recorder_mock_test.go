package session

import (
	"sync"
)

var _ loginRecorder = &loginRecorderMock{}

type loginRecorderMock struct {
	LoginAttemptFunc func(success bool)

	calls struct {
		LoginAttempt []struct {
			Success bool
		}
	}
	lockLoginAttempt sync.RWMutex
}

func (mock *loginRecorderMock) LoginAttempt(success bool) {
	if mock.LoginAttemptFunc == nil {
		panic("loginRecorderMock.LoginAttemptFunc: method is nil but loginRecorder.LoginAttempt was just called")
	}
	callInfo := struct {
		Success bool
	}{Success: success}
	mock.lockLoginAttempt.Lock()
	mock.calls.LoginAttempt = append(mock.calls.LoginAttempt, callInfo)
	mock.lockLoginAttempt.Unlock()
	mock.LoginAttemptFunc(success)
}

func (mock *loginRecorderMock) LoginAttemptCalls() []struct {
	Success bool
} {
	mock.lockLoginAttempt.RLock()
	calls := mock.calls.LoginAttempt
	mock.lockLoginAttempt.RUnlock()
	return calls
}
