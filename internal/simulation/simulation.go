// Package simulation implements dry-run transaction simulation, rule-based
// safety analysis, ERC-20 allowance inspection, and Transfer-log decoding.
//
// Grounded on
// _examples/original_source/packages/wallet-core/core-rust/src/simulation.rs
// (simulate_transaction/analyze_transaction/check_allowance/
// decode_token_transfers), using the module's own rpcclient.Client instead
// of simulation.rs's ad-hoc reqwest calls.
package simulation

import (
	"context"
	"math/big"
	"strings"

	"github.com/norwallet/walletcore/internal/codec"
	"github.com/norwallet/walletcore/internal/coreerr"
	"github.com/norwallet/walletcore/internal/rpcclient"
	"github.com/norwallet/walletcore/pkg/models"
)

// erc20TransferTopic0 is keccak256("Transfer(address,address,uint256)").
const erc20TransferTopic0 = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

// allowanceSelector is the first 4 bytes of
// keccak256("allowance(address,address)").
const allowanceSelector = "dd62ed3e"

// highGasWarningThreshold flags transactions whose gas estimate looks
// unusually large for a simple transfer, mirroring simulation.rs's
// analyze_transaction gas-limit heuristic.
const highGasWarningThreshold = 1_000_000

// Engine ties transaction simulation to a specific RPC endpoint.
type Engine struct {
	rpc *rpcclient.Client
}

// NewEngine returns a simulation Engine backed by rpc.
func NewEngine(rpc *rpcclient.Client) *Engine {
	return &Engine{rpc: rpc}
}

// SimulateTransaction dry-runs a transaction with eth_call (to detect
// reverts and capture return data) and eth_estimateGas (to project gas
// usage), without broadcasting anything.
func (e *Engine) SimulateTransaction(ctx context.Context, from string, params models.EvmTxParams) (*models.SimulationResult, error) {
	callArgs := map[string]interface{}{
		"from": from,
		"to":   params.To,
		"data": codec.HexEncode(params.Data),
	}
	if params.Value != nil {
		callArgs["value"] = "0x" + params.Value.Text(16)
	}

	var returnDataHex string
	callErr := e.rpc.Call(ctx, "eth_call", []interface{}{callArgs, "latest"}, &returnDataHex)

	result := &models.SimulationResult{Success: callErr == nil}
	if callErr != nil {
		result.RevertReason = callErr.Error()
	} else if returnDataHex != "" {
		data, err := codec.HexDecode(returnDataHex)
		if err == nil {
			result.ReturnData = data
		}
	}

	var gasHex string
	if err := e.rpc.Call(ctx, "eth_estimateGas", []interface{}{callArgs}, &gasHex); err == nil {
		if gas, err := parseHexUint64(gasHex); err == nil {
			result.GasUsed = gas
		}
	}

	return result, nil
}

// AnalyzeTransaction applies an ordered set of rules to a simulation
// result and produces a SafetyReport. A transaction is safe only if no
// critical issue was raised; warnings do not affect IsSafe, matching
// simulation.rs's analyze_transaction.
func AnalyzeTransaction(sim *models.SimulationResult) *models.SafetyReport {
	report := &models.SafetyReport{Simulation: sim}

	if sim == nil {
		report.Critical = append(report.Critical, "no simulation result available")
		report.IsSafe = false
		return report
	}

	if !sim.Success {
		report.Critical = append(report.Critical, "Transaction simulation failed")
	}
	if sim.GasUsed > highGasWarningThreshold {
		report.Warnings = append(report.Warnings, "High gas usage detected")
	}

	report.IsSafe = len(report.Critical) == 0
	return report
}

// CheckAllowance reads an ERC-20 allowance via eth_call using the
// standard allowance(address,address) selector.
func (e *Engine) CheckAllowance(ctx context.Context, token, owner, spender string) (*models.AllowanceChange, error) {
	data := allowanceSelector +
		strings.Repeat("0", 24) + strings.TrimPrefix(owner, "0x") +
		strings.Repeat("0", 24) + strings.TrimPrefix(spender, "0x")

	callArgs := map[string]interface{}{
		"to":   token,
		"data": "0x" + data,
	}

	var resultHex string
	if err := e.rpc.Call(ctx, "eth_call", []interface{}{callArgs, "latest"}, &resultHex); err != nil {
		return nil, coreerr.Wrap(coreerr.RpcError, "Engine.CheckAllowance", err)
	}

	amount, err := parseHexBigInt(resultHex)
	if err != nil {
		return nil, err
	}

	return &models.AllowanceChange{Token: token, Owner: owner, Spender: spender, Amount: amount}, nil
}

// LogEntry is the subset of an eth_getLogs result this package decodes.
type LogEntry struct {
	Address string
	Topics  []string
	Data    string
}

// receiptLog mirrors the shape of one entry in an
// eth_getTransactionReceipt response's logs array.
type receiptLog struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

type receipt struct {
	Logs []receiptLog `json:"logs"`
}

// DecodeTransfersForTx fetches the transaction receipt for txHash via
// eth_getTransactionReceipt and decodes any ERC-20 Transfer events among
// its logs, per spec.md §4.6's decodeTokenTransfers(txHash). Non-Transfer
// logs are skipped silently, matching DecodeTokenTransfers.
func (e *Engine) DecodeTransfersForTx(ctx context.Context, txHash string) ([]models.TokenTransfer, error) {
	var r receipt
	if err := e.rpc.Call(ctx, "eth_getTransactionReceipt", []interface{}{txHash}, &r); err != nil {
		return nil, coreerr.Wrap(coreerr.RpcError, "Engine.DecodeTransfersForTx", err)
	}
	logs := make([]LogEntry, len(r.Logs))
	for i, l := range r.Logs {
		logs[i] = LogEntry{Address: l.Address, Topics: l.Topics, Data: l.Data}
	}
	return DecodeTokenTransfers(logs), nil
}

// DecodeTokenTransfers scans logs for ERC-20 Transfer events and decodes
// the from/to/amount fields out of the indexed topics and data word.
func DecodeTokenTransfers(logs []LogEntry) []models.TokenTransfer {
	var transfers []models.TokenTransfer
	for _, log := range logs {
		if len(log.Topics) < 3 || !strings.EqualFold(log.Topics[0], erc20TransferTopic0) {
			continue
		}
		from := "0x" + strings.TrimPrefix(log.Topics[1], "0x")[24:]
		to := "0x" + strings.TrimPrefix(log.Topics[2], "0x")[24:]
		amount, err := parseHexBigInt(log.Data)
		if err != nil {
			continue
		}
		transfers = append(transfers, models.TokenTransfer{
			Token:  log.Address,
			From:   from,
			To:     to,
			Amount: amount,
		})
	}
	return transfers
}

func parseHexBigInt(s string) (*big.Int, error) {
	v := new(big.Int)
	trimmed := strings.TrimPrefix(s, "0x")
	if trimmed == "" {
		trimmed = "0"
	}
	if _, ok := v.SetString(trimmed, 16); !ok {
		return nil, coreerr.New(coreerr.RpcError, "parseHexBigInt", errBadHex(s))
	}
	return v, nil
}

func parseHexUint64(s string) (uint64, error) {
	v, err := parseHexBigInt(s)
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

type errBadHex string

func (e errBadHex) Error() string { return "simulation: invalid hex quantity: " + string(e) }
