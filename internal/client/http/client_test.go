package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRequest_SingleAttemptByDefault(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(WithBaseURL(srv.URL))
	resp, err := client.Get(context.Background(), "/thing")
	if resp != nil {
		resp.Body.Close()
	}

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, 1, hits, "no retry config means a single attempt")
}

func TestDoRequest_RetriesRetryableStatus(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(
		WithBaseURL(srv.URL),
		WithRetryConfig(&RetryConfig{
			MaxRetries:           3,
			InitialInterval:      time.Millisecond,
			MaxInterval:          10 * time.Millisecond,
			Multiplier:           2.0,
			MaxElapsedTime:       time.Second,
			RetryableStatusCodes: []int{http.StatusServiceUnavailable},
		}),
	)

	resp, err := client.Get(context.Background(), "/thing")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, hits)
}

func TestDoRequest_AppliesHeadersAndQueryParams(t *testing.T) {
	var gotDefault, gotPerRequest, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDefault = r.Header.Get("X-Custom")
		gotPerRequest = r.Header.Get("X-Per-Request")
		gotQuery = r.URL.Query().Get("page")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(
		WithBaseURL(srv.URL),
		WithDefaultHeader("X-Custom", "yes"),
	)

	resp, err := client.Get(context.Background(), "/thing",
		WithQueryParam("page", "2"),
		WithHeader("X-Per-Request", "also-yes"),
	)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "yes", gotDefault)
	assert.Equal(t, "also-yes", gotPerRequest)
	assert.Equal(t, "2", gotQuery)
}

func TestProcessJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "thing"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(WithBaseURL(srv.URL))
	resp, err := client.Get(context.Background(), "/thing")
	require.NoError(t, err)

	var target struct {
		Name string `json:"name"`
	}
	require.NoError(t, client.ProcessJSONResponse(resp, &target))
	assert.Equal(t, "thing", target.Name)
}
