package simulation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norwallet/walletcore/internal/rpcclient"
	"github.com/norwallet/walletcore/pkg/models"
)

// Grounded on
// _examples/original_source/packages/wallet-core/core-rust/src/simulation.rs's
// own test module (test_analyze_transaction_high_gas,
// test_analyze_transaction_failed_simulation).

func TestAnalyzeTransaction_FlagsHighGasAsWarningOnly(t *testing.T) {
	sim := &models.SimulationResult{Success: true, GasUsed: 1_500_000}
	report := AnalyzeTransaction(sim)

	assert.True(t, report.IsSafe)
	assert.Len(t, report.Critical, 0)
	assert.Contains(t, report.Warnings, "High gas usage detected")
}

func TestAnalyzeTransaction_FailedSimulationIsCritical(t *testing.T) {
	sim := &models.SimulationResult{Success: false, RevertReason: "execution reverted"}
	report := AnalyzeTransaction(sim)

	assert.False(t, report.IsSafe)
	assert.Equal(t, []string{"Transaction simulation failed"}, report.Critical)
}

func TestAnalyzeTransaction_CleanSimulationIsSafe(t *testing.T) {
	sim := &models.SimulationResult{Success: true, GasUsed: 21_000}
	report := AnalyzeTransaction(sim)

	assert.True(t, report.IsSafe)
	assert.Empty(t, report.Warnings)
	assert.Empty(t, report.Critical)
}

func TestAnalyzeTransaction_NilSimulationIsUnsafe(t *testing.T) {
	report := AnalyzeTransaction(nil)
	assert.False(t, report.IsSafe)
	assert.Len(t, report.Critical, 1)
}

func TestDecodeTokenTransfers_SkipsNonTransferLogsAndDecodesMatches(t *testing.T) {
	logs := []LogEntry{
		{
			Address: "0xtoken",
			Topics: []string{
				erc20TransferTopic0,
				"0x000000000000000000000000000000000000000000000000000000000000aaaa",
				"0x000000000000000000000000000000000000000000000000000000000000bbbb",
			},
			Data: "0x00000000000000000000000000000000000000000000000000000000000001",
		},
		{
			Address: "0xtoken",
			Topics:  []string{"0xsomeothertopic"},
			Data:    "0x01",
		},
	}

	transfers := DecodeTokenTransfers(logs)
	require.Len(t, transfers, 1)
	assert.Equal(t, "0x000000000000000000000000000000000000aaaa", transfers[0].From)
	assert.Equal(t, "0x000000000000000000000000000000000000bbbb", transfers[0].To)
	assert.Equal(t, int64(1), transfers[0].Amount.Int64())
}

func TestDecodeTransfersForTx_FetchesReceiptAndDecodesLogs(t *testing.T) {
	receiptJSON := `{
		"logs": [
			{
				"address": "0xtoken",
				"topics": [
					"` + erc20TransferTopic0 + `",
					"0x000000000000000000000000000000000000000000000000000000000000aaaa",
					"0x000000000000000000000000000000000000000000000000000000000000bbbb"
				],
				"data": "0x00000000000000000000000000000000000000000000000000000000000002"
			},
			{"address": "0xtoken", "topics": ["0xsomeothertopic"], "data": "0x01"}
		]
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.RpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := models.RpcResponse{JSONRPC: "2.0", ID: req.ID, Result: json.RawMessage(receiptJSON)}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	engine := NewEngine(rpcclient.NewClient(srv.URL))
	transfers, err := engine.DecodeTransfersForTx(context.Background(), "0xdeadbeef")
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "0x000000000000000000000000000000000000aaaa", transfers[0].From)
	assert.Equal(t, int64(2), transfers[0].Amount.Int64())
}
