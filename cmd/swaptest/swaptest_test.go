package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fd1az/usdt-bridge/business/bridge/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestQuote_Local(t *testing.T) {
	out, err := runCmd(t, "quote", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "100 USD → 99 USDT")
	assert.Contains(t, out, "commission 1")
}

func TestQuote_JSONEmitsNumbers(t *testing.T) {
	out, err := runCmd(t, "quote", "100", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(100), got["amountUSD"])
	assert.Equal(t, float64(99), got["amountUSDT"])
	assert.Equal(t, float64(1), got["commission"])
}

func TestQuote_RemoteDecodesNumbers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/uniswap/quote", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("amount"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amountUSD":250,"amountUSDT":247.5,"commission":2.5,"rate":"1 USD = 0.99 USDT"}`))
	}))
	defer server.Close()

	out, err := runCmd(t, "quote", "250", "--server", server.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "250 USD → 247.5 USDT")
	assert.Contains(t, out, "commission 2.5")
}

func TestQuote_InvalidAmount(t *testing.T) {
	_, err := runCmd(t, "quote", "abc")
	assert.Error(t, err)

	out, err := runCmd(t, "quote", "--plain", "--", "-1")
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err))
	assert.Contains(t, out, "Code: INVALID_AMOUNT")
}

func TestQuote_ZeroIsValid(t *testing.T) {
	out, err := runCmd(t, "quote", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "0 USD → 0 USDT")
}

func TestIssue_NonPositiveAmountRejectedBeforeConnecting(t *testing.T) {
	for _, amount := range []string{"0", "abc"} {
		out, err := runCmd(t, "issue", "--plain", "--server", "http://127.0.0.1:1", "--", amount,
			"0x742d35Cc6634C0532925a3b844Bc454e4438f44e")
		require.Error(t, err, amount)
		assert.Equal(t, apperror.CodeInvalidAmount, apperror.GetCode(err), amount)
		assert.Contains(t, out, "Code: INVALID_AMOUNT", amount)
	}
}

func TestSwap_RequiresTwoArgs(t *testing.T) {
	_, err := runCmd(t, "swap", "10")
	assert.Error(t, err)
}

func TestSwap_RemoteModeRejected(t *testing.T) {
	out, err := runCmd(t, "swap", "10", "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		"--server", "http://127.0.0.1:1", "--plain")
	require.Error(t, err)
	assert.Contains(t, out, "local mode only")
}

func TestIssue_Remote(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/uniswap/issue-as-owner", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(domain.BridgeResult{
			Success: true,
			Type:    domain.ResultIssue,
			Message: "issued 25 USDT",
			Transaction: domain.TransactionView{
				Hash:           "0xfeed",
				Method:         "transfer",
				Status:         domain.StatusConfirmed,
				TransactionFee: "0.002 ETH",
			},
			Etherscan: domain.Explorer{Transaction: "https://etherscan.io/tx/0xfeed"},
		})
	}))
	defer server.Close()

	out, err := runCmd(t, "issue", "25", "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		"--server", server.URL, "--plain")
	require.NoError(t, err)

	assert.Equal(t, "25", decimal.RequireFromString(jsonNumber(got["amount"])).String())
	assert.Equal(t, "0x742d35Cc6634C0532925a3b844Bc454e4438f44e", got["recipientAddress"])
	assert.Contains(t, out, "Method: transfer")
	assert.Contains(t, out, "Hash: 0xfeed")
	assert.Contains(t, out, "Gas fee: 0.002 ETH")
}

func TestIssue_RemoteFailureEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(domain.FailureReport{
			Code:            "INSUFFICIENT_FUNDS",
			Error:           "insufficient funds",
			SuggestedAction: "Fund the bridge account with ETH",
		})
	}))
	defer server.Close()

	out, err := runCmd(t, "issue", "25", "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		"--server", server.URL, "--plain")
	require.Error(t, err)
	assert.Contains(t, out, "Code: INSUFFICIENT_FUNDS")
	assert.Contains(t, out, "Fund the bridge account")
}

func TestIssue_RemoteRevertKeepsResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(domain.BridgeResult{
			Success:         false,
			Transaction:     domain.TransactionView{Hash: "0xdead", Status: domain.StatusFailed, TransactionFee: "0.003 ETH"},
			Error:           "transaction reverted",
			SuggestedAction: "Check the token balance",
		})
	}))
	defer server.Close()

	out, err := runCmd(t, "issue", "25", "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		"--server", server.URL, "--json")
	require.Error(t, err)

	var res domain.BridgeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.StatusFailed, res.Transaction.Status)
	assert.Equal(t, "0.003 ETH", res.Transaction.TransactionFee)
}

func TestEventsURL(t *testing.T) {
	for in, want := range map[string]string{
		"http://localhost:3000":   "ws://localhost:3000/api/uniswap/events",
		"https://bridge.example/": "wss://bridge.example/api/uniswap/events",
	} {
		got, err := eventsURL(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := eventsURL("::not a url")
	assert.Error(t, err)
}

func jsonNumber(v any) string {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n).String()
	case string:
		return n
	}
	return ""
}
