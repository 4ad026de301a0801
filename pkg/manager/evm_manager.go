package manager

import (
	"context"

	"github.com/norwallet/walletcore/internal/codec"
	"github.com/norwallet/walletcore/internal/evmsigner"
	"github.com/norwallet/walletcore/internal/registry"
	"github.com/norwallet/walletcore/internal/rpcclient"
	"github.com/norwallet/walletcore/pkg/models"
)

// EvmManager signs EVM transactions and messages on behalf of accounts
// held in a shared Registry, without ever handing a raw private key back
// to the caller.
type EvmManager struct {
	reg *registry.Registry
}

// NewEvmManager returns an EvmManager backed by reg.
func NewEvmManager(reg *registry.Registry) *EvmManager {
	return &EvmManager{reg: reg}
}

// SignTransaction signs an EVM transaction using the private key derived
// at (walletID, index).
func (m *EvmManager) SignTransaction(walletID string, index uint32, params models.EvmTxParams) (*models.EvmTransaction, error) {
	key, err := privateKeyFor(m.reg, walletID, index)
	if err != nil {
		return nil, err
	}
	return evmsigner.SignTransaction(params, key)
}

// SignPersonalMessage signs message with EIP-191 personal-sign framing.
func (m *EvmManager) SignPersonalMessage(walletID string, index uint32, message []byte) ([]byte, error) {
	key, err := privateKeyFor(m.reg, walletID, index)
	if err != nil {
		return nil, err
	}
	return evmsigner.SignPersonalMessage(message, key)
}

// RecoverSigner recovers the address that produced sig over hash.
func (m *EvmManager) RecoverSigner(hash, sig []byte) (string, error) {
	return evmsigner.RecoverSigner(hash, sig)
}

// EstimateTotalCost returns gasLimit*gasPrice as a single big.Int-safe
// quantity.
func (m *EvmManager) EstimateTotalCost(params models.EvmTxParams) models.GasEstimate {
	gasPrice := params.GasPrice
	if gasPrice == nil {
		gasPrice = params.MaxFeePerGas
	}
	total := evmsigner.EstimateTotalCost(params.GasLimit, gasPrice)
	return models.GasEstimate{GasLimit: params.GasLimit, GasPrice: gasPrice, TotalCost: total}
}

// EstimateGas calls eth_estimateGas via rpc for params and folds the
// projected gas limit into a GasEstimate using params.GasPrice (or
// MaxFeePerGas for a 1559-shaped request) to compute TotalCost, per
// spec.md §4.2's "Gas estimation" contract.
func (m *EvmManager) EstimateGas(ctx context.Context, rpc *rpcclient.Client, params models.EvmTxParams) (models.GasEstimate, error) {
	callArgs := map[string]interface{}{
		"from": params.From,
		"to":   params.To,
		"data": codec.HexEncode(params.Data),
	}
	if params.Value != nil {
		callArgs["value"] = "0x" + params.Value.Text(16)
	}
	gasLimit, err := rpc.EstimateGas(ctx, callArgs)
	if err != nil {
		return models.GasEstimate{}, err
	}
	gasPrice := params.GasPrice
	if gasPrice == nil {
		gasPrice = params.MaxFeePerGas
	}
	total := evmsigner.EstimateTotalCost(gasLimit, gasPrice)
	return models.GasEstimate{GasLimit: gasLimit, GasPrice: gasPrice, TotalCost: total}, nil
}
