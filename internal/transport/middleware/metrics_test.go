package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	route  string
	status int
}

type requestSpy struct {
	got []recordedRequest
}

func (s *requestSpy) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	s.got = append(s.got, recordedRequest{method: method, route: route, status: status})
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	spy := &requestSpy{}

	r := chi.NewRouter()
	r.Use(Metrics(spy))
	r.Post("/reviews/{id}/reply", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	req := httptest.NewRequest(http.MethodPost, "/reviews/rev1/reply", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, spy.got, 2)
	assert.Equal(t, recordedRequest{method: http.MethodPost, route: "/reviews/{id}/reply", status: http.StatusConflict}, spy.got[0])
	assert.Equal(t, http.StatusNotFound, spy.got[1].status)
}

func TestMetrics_WithoutRouter(t *testing.T) {
	spy := &requestSpy{}
	handler := Metrics(spy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Len(t, spy.got, 1)
	assert.Equal(t, "unmatched", spy.got[0].route)
	assert.Equal(t, http.StatusOK, spy.got[0].status)
}
