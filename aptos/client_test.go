package aptos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/types"
)

func newTestClient(t *testing.T, url string) *Client {
	lgr, err := zap.NewDevelopment()
	require.NoError(t, err)
	c, err := NewClient(Config{
		Endpoint:   url + "/",
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		Logger:     lgr,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	_, err := NewClient(Config{Endpoint: "ftp://node"})
	assert.Error(t, err)

	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, c.Endpoint())
}

func TestClient_Balance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/view", r.URL.Path)
		var req types.ViewRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "0x1::coin::balance", req.Function)
		assert.Equal(t, []string{"0xa::orion::USDC"}, req.TypeArguments)
		assert.Equal(t, []string{"0xowner"}, req.Arguments)
		_, _ = w.Write([]byte(`["2500000"]`))
	}))
	defer server.Close()

	got, err := newTestClient(t, server.URL).Balance(context.Background(), "0xowner", "0xa::orion::USDC")
	require.NoError(t, err)
	assert.Equal(t, "2500000", got)
}

func TestClient_BalanceShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "Number", body: `[1500000]`, want: "1500000"},
		{name: "Empty", body: `[]`, want: "0"},
		{name: "Null", body: `[null]`, want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()
			got, err := newTestClient(t, server.URL).Balance(context.Background(), "0x1", "0x1::c::C")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_BalanceRequiresArgs(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	_, err := c.Balance(context.Background(), "", "0x1::c::C")
	assert.Error(t, err)
}

func TestClient_Resource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/accounts/0xa/resource/0xa::orion::OracleConfig", r.URL.Path)
		_, _ = w.Write([]byte(`{"type":"0xa::orion::OracleConfig","data":{"xau_usd_6":"120000000","xag_usd_6":"800000"}}`))
	}))
	defer server.Close()

	var oracle types.OracleResource
	err := newTestClient(t, server.URL).Resource(context.Background(), "0xa", "0xa::orion::OracleConfig", &oracle)
	require.NoError(t, err)
	assert.Equal(t, "120000000", oracle.XauUsd6)
	assert.Equal(t, "800000", oracle.XagUsd6)
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"resource not found"}`))
	}))
	defer server.Close()

	var out types.PoolResource
	err := newTestClient(t, server.URL).Resource(context.Background(), "0xa", "0xa::orion::PoolGold", &out)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`["7"]`))
	}))
	defer server.Close()

	got, err := newTestClient(t, server.URL).Balance(context.Background(), "0x1", "0x1::c::C")
	require.NoError(t, err)
	assert.Equal(t, "7", got)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_RetriesExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).Balance(context.Background(), "0x1", "0x1::c::C")
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
}
