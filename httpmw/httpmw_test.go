package httpmw_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asyncgate/bulkhead"
	"github.com/asyncgate/bulkhead/httpmw"
)

func TestMiddlewareAdmitsUnderLimit(t *testing.T) {
	t.Parallel()

	b := bulkhead.New[http.ResponseWriter](2, nil)

	var called bool

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	handler := httpmw.Middleware(b, next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareRejectsOverLimit(t *testing.T) {
	t.Parallel()

	b := bulkhead.New[http.ResponseWriter](1, nil)

	release := make(chan struct{})
	started := make(chan struct{})

	blocking := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
	})

	handler := httpmw.Middleware(b, blocking)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}()

	<-started

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	close(release)
	wg.Wait()
}

func TestMiddlewareNeverInvokesHandlerForRejectedRequest(t *testing.T) {
	t.Parallel()

	b := bulkhead.New[http.ResponseWriter](1, nil)

	release := make(chan struct{})
	started := make(chan struct{})

	var secondCalled bool

	first := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
	})

	handler := httpmw.Middleware(b, first)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}()

	<-started

	secondHandler := httpmw.Middleware(b, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		secondCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	secondHandler.ServeHTTP(rec, req)

	require.False(t, secondCalled)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	close(release)
	wg.Wait()
}
