package httpclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/usdt-bridge/internal/httpclient"
)

func TestClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/uniswap/quote", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("amount"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amountUSDT":"99"}`))
	}))
	defer srv.Close()

	c, err := httpclient.New(srv.URL + "/")
	require.NoError(t, err)

	var out struct {
		AmountUSDT string `json:"amountUSDT"`
	}
	err = c.GetJSON(context.Background(), "/api/uniswap/quote", url.Values{"amount": {"100"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "99", out.AmountUSDT)
}

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "harness", r.Header.Get("X-Client"))

		var in map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "0xabc", in["recipientAddress"])

		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c, err := httpclient.New(srv.URL, httpclient.WithHeader("X-Client", "harness"))
	require.NoError(t, err)

	var out struct {
		Success bool `json:"success"`
	}
	err = c.PostJSON(context.Background(), "api/uniswap/issue-as-owner",
		map[string]any{"amount": 1, "recipientAddress": "0xabc"}, &out)
	require.NoError(t, err)
	assert.True(t, out.Success)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"bad amount"}`))
	}))
	defer srv.Close()

	c, err := httpclient.New(srv.URL)
	require.NoError(t, err)

	err = c.GetJSON(context.Background(), "/x", nil, nil)

	var statusErr *httpclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, string(statusErr.Body), "bad amount")
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := httpclient.New("not a url")
	assert.Error(t, err)
}
