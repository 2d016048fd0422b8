package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoBody struct {
	Text string `json:"text"`
}

func TestDoRequest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/echo", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "org-1", r.Header.Get("X-Org"))

		var in echoBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		_ = json.NewEncoder(w).Encode(echoBody{Text: in.Text + "!"})
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()},
		WithAuthToken("secret"),
		WithRequestLogging(),
	)

	var out echoBody
	err := c.DoRequest(context.Background(), http.MethodPost, "/echo", echoBody{Text: "hi"}, &out, WithHeader("X-Org", "org-1"))
	require.NoError(t, err)
	assert.Equal(t, "hi!", out.Text)
}

func TestDoRequest_EmptyTokenSendsNoAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()}, WithAuthToken(""))
	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil))
}

func TestDoRequest_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()})
	err := c.DoRequest(context.Background(), http.MethodPost, "/", echoBody{}, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.True(t, httpErr.Retryable())
	assert.Contains(t, httpErr.Message, "rate limited")
}

func TestDoRequest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()}, WithRequestTimeout(20*time.Millisecond))
	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
}

func TestHTTPError_Retryable(t *testing.T) {
	assert.False(t, (&HTTPError{StatusCode: http.StatusUnauthorized}).Retryable())
	assert.False(t, (&HTTPError{StatusCode: http.StatusBadRequest}).Retryable())
	assert.True(t, (&HTTPError{StatusCode: http.StatusBadGateway}).Retryable())
}
