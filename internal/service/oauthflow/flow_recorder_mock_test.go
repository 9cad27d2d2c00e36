package oauthflow

import (
	"sync"
)

var _ flowRecorder = &flowRecorderMock{}

type flowRecorderMock struct {
	OAuthFlowFunc func(result string)

	calls struct {
		OAuthFlow []struct {
			Result string
		}
	}
	lockOAuthFlow sync.RWMutex
}

func (mock *flowRecorderMock) OAuthFlow(result string) {
	callInfo := struct {
		Result string
	}{Result: result}
	mock.lockOAuthFlow.Lock()
	mock.calls.OAuthFlow = append(mock.calls.OAuthFlow, callInfo)
	mock.lockOAuthFlow.Unlock()
	if mock.OAuthFlowFunc != nil {
		mock.OAuthFlowFunc(result)
	}
}

func (mock *flowRecorderMock) OAuthFlowCalls() []struct {
	Result string
} {
	mock.lockOAuthFlow.RLock()
	calls := mock.calls.OAuthFlow
	mock.lockOAuthFlow.RUnlock()
	return calls
}
