package manager

import (
	"context"
	"math/big"

	"github.com/norwallet/walletcore/internal/network"
	"github.com/norwallet/walletcore/internal/rpcclient"
)

// RpcManager wraps an rpcclient.Client with the network profile it was
// built against, so callers can ask "what chain am I talking to" without
// threading a separate network.Config through every call.
type RpcManager struct {
	client *rpcclient.Client
	cfg    network.Config
}

// NewRpcManager returns an RpcManager for the named chain profile.
func NewRpcManager(cfg network.Config) *RpcManager {
	return &RpcManager{client: rpcclient.NewClient(cfg.RPCURL), cfg: cfg}
}

// Client exposes the underlying JSON-RPC client for components (like
// SimulationManager) that need direct access.
func (m *RpcManager) Client() *rpcclient.Client { return m.client }

// Config returns the chain profile this manager is bound to.
func (m *RpcManager) Config() network.Config { return m.cfg }

// GetBalance returns the wei balance of address.
func (m *RpcManager) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	return m.client.GetBalance(ctx, address)
}

// GetNonce returns the next transaction nonce for address.
func (m *RpcManager) GetNonce(ctx context.Context, address string) (uint64, error) {
	return m.client.GetNonce(ctx, address)
}

// GetChainID returns the connected chain's id, for cross-checking against
// Config.ChainID.
func (m *RpcManager) GetChainID(ctx context.Context) (int64, error) {
	return m.client.GetChainID(ctx)
}

// GetBlockNumber returns the current block height as a "0x"-prefixed hex
// string.
func (m *RpcManager) GetBlockNumber(ctx context.Context) (string, error) {
	return m.client.GetBlockNumber(ctx)
}
