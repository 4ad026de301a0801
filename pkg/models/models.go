// Package models defines the shared data types passed between the wallet
// core's façade managers, signers, and RPC client.
//
// Grounded on
// _examples/original_source/packages/wallet-core/core-rust/src/types.rs,
// translated from serde-tagged Rust structs into json-tagged Go structs;
// numeric wei/gas fields use *big.Int rather than Rust's u64 to avoid the
// overflow bug flagged in evm.rs (value/gas_price parsed as u64).
package models

import (
	"encoding/json"
	"math/big"
)

// Account is one derived key within a Wallet.
type Account struct {
	Index          uint32 `json:"index"`
	Address        string `json:"address"`
	DerivationPath string `json:"derivation_path"`
	PublicKey      string `json:"public_key"`
}

// WalletInfo is the externally-visible view of a Wallet: no secret
// material ever appears in this type.
type WalletInfo struct {
	ID       string    `json:"id"`
	Accounts []Account `json:"accounts"`
}

// EvmTxParams is the caller-supplied input to building an EVM transaction.
type EvmTxParams struct {
	ChainID              int64    `json:"chain_id"`
	Nonce                uint64   `json:"nonce"`
	From                 string   `json:"from,omitempty"`
	To                   string   `json:"to"`
	Value                *big.Int `json:"value"`
	Data                 []byte   `json:"data,omitempty"`
	GasLimit             uint64   `json:"gas_limit"`
	GasPrice             *big.Int `json:"gas_price,omitempty"`              // legacy
	MaxFeePerGas         *big.Int `json:"max_fee_per_gas,omitempty"`        // EIP-1559
	MaxPriorityFeePerGas *big.Int `json:"max_priority_fee_per_gas,omitempty"` // EIP-1559
}

// IsEIP1559 reports whether these params describe a type-2 transaction.
func (p EvmTxParams) IsEIP1559() bool {
	return p.MaxFeePerGas != nil && p.MaxPriorityFeePerGas != nil
}

// EvmTransaction is a signed EVM transaction ready for broadcast.
type EvmTransaction struct {
	Hash      string `json:"hash"`
	RawSigned []byte `json:"raw_signed"`
	From      string `json:"from"`
	V         uint64 `json:"v"`
	R         string `json:"r"`
	S         string `json:"s"`
}

// GasEstimate is the result of a gas estimation call.
type GasEstimate struct {
	GasLimit  uint64   `json:"gas_limit"`
	GasPrice  *big.Int `json:"gas_price"`
	TotalCost *big.Int `json:"total_cost"`
}

// UserOpParams is the caller-supplied input to building an ERC-4337
// UserOperation.
type UserOpParams struct {
	Sender               string   `json:"sender"`
	Nonce                *big.Int `json:"nonce"`
	InitCode             []byte   `json:"init_code,omitempty"`
	CallData             []byte   `json:"call_data"`
	CallGasLimit         *big.Int `json:"call_gas_limit"`
	VerificationGasLimit *big.Int `json:"verification_gas_limit"`
	PreVerificationGas   *big.Int `json:"pre_verification_gas"`
	MaxFeePerGas         *big.Int `json:"max_fee_per_gas"`
	MaxPriorityFeePerGas *big.Int `json:"max_priority_fee_per_gas"`
	PaymasterAndData     []byte   `json:"paymaster_and_data,omitempty"`
	EntryPoint           string   `json:"entry_point"`
}

// UserOperation is a signed ERC-4337 UserOperation.
type UserOperation struct {
	UserOpParams
	Signature []byte `json:"signature"`
	Hash      string `json:"hash"`
}

// SimulationResult is the outcome of a dry-run (eth_call + eth_estimateGas)
// of a transaction against current chain state.
type SimulationResult struct {
	Success        bool            `json:"success"`
	GasUsed        uint64          `json:"gas_used"`
	ReturnData     []byte          `json:"return_data,omitempty"`
	RevertReason   string          `json:"revert_reason,omitempty"`
	StateChanges   []StateChange   `json:"state_changes,omitempty"`
	TokenTransfers []TokenTransfer `json:"token_transfers,omitempty"`
}

// StateChange records a single observed balance delta during simulation.
type StateChange struct {
	Address string   `json:"address"`
	Before  *big.Int `json:"before"`
	After   *big.Int `json:"after"`
}

// AllowanceChange records an ERC-20 allowance observed via eth_call.
type AllowanceChange struct {
	Token   string   `json:"token"`
	Owner   string   `json:"owner"`
	Spender string   `json:"spender"`
	Amount  *big.Int `json:"amount"`
}

// TokenTransfer is a decoded ERC-20 Transfer event log.
type TokenTransfer struct {
	Token  string   `json:"token"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Amount *big.Int `json:"amount"`
}

// SafetyReport is the result of rule-based transaction analysis.
type SafetyReport struct {
	IsSafe     bool     `json:"is_safe"`
	Warnings   []string `json:"warnings,omitempty"`
	Critical   []string `json:"critical_issues,omitempty"`
	Simulation *SimulationResult `json:"simulation,omitempty"`
}

// TronTxParams is the caller-supplied input to building a TRON transfer.
type TronTxParams struct {
	OwnerAddress string   `json:"owner_address"`
	ToAddress    string   `json:"to_address"`
	Amount       *big.Int `json:"amount"`
	RefBlockHash string   `json:"ref_block_hash"`
	RefBlockNum  int64    `json:"ref_block_num"`
	Expiration   int64    `json:"expiration"`
	Timestamp    int64    `json:"timestamp"`
	FeeLimit     int64    `json:"fee_limit,omitempty"`
}

// TronTransaction is a signed TRON transaction envelope.
type TronTransaction struct {
	TxID      string `json:"tx_id"`
	RawData   []byte `json:"raw_data"`
	Signature []byte `json:"signature"`
}

// RpcRequest is a JSON-RPC 2.0 request envelope.
type RpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

// RpcError is a JSON-RPC 2.0 error object.
type RpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RpcError) Error() string { return e.Message }

// RpcResponse is a JSON-RPC 2.0 response envelope.
type RpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RpcError       `json:"error,omitempty"`
}

// LogLevel mirrors the FFI boundary's init_logger(level) argument.
type LogLevel int

const (
	LogTrace LogLevel = iota
	LogDebug
	LogInfo
	LogWarn
	LogError
)
