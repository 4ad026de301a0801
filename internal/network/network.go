// Package network holds named chain profiles: RPC endpoint, chain id, and
// display metadata. Grounded on
// _examples/original_source/packages/wallet-core/core-rust/src/config.rs
// (Nor Chain defaults) with a second, test-fixture profile folded in from
// the backup/.../network.rs variant's "Noor Chain" naming — both are
// non-authoritative fixtures, not live networks.
package network

import (
	"math/big"

	"github.com/norwallet/walletcore/internal/coreerr"
)

// Config describes one EVM-compatible chain the wallet core can target.
type Config struct {
	Name        string
	ChainID     int64
	RPCURL      string
	Symbol      string
	Decimals    int
	ExplorerURL string

	DefaultGasLimit uint64
	DefaultGasPrice *big.Int
}

// NorChain is the primary fixture network, grounded on config.rs's
// NetworkConfig::default() (chain id 65001, norchain.org).
var NorChain = Config{
	Name:            "Nor Chain",
	ChainID:         65001,
	RPCURL:          "https://rpc.norchain.org",
	Symbol:          "NOR",
	Decimals:        18,
	ExplorerURL:     "https://explorer.norchain.org",
	DefaultGasLimit: 21_000,
	DefaultGasPrice: big.NewInt(20_000_000_000), // 20 gwei equivalent
}

// TestFixtureChain is a second, low-numbered chain id used by local test
// harnesses; it has no production counterpart.
var TestFixtureChain = Config{
	Name:            "Nor Test Fixture",
	ChainID:         7860,
	RPCURL:          "http://127.0.0.1:8545",
	Symbol:          "tNOR",
	Decimals:        18,
	ExplorerURL:     "",
	DefaultGasLimit: 21_000,
	DefaultGasPrice: big.NewInt(1_000_000_000), // 1 gwei
}

var registry = map[int64]Config{
	NorChain.ChainID:         NorChain,
	TestFixtureChain.ChainID: TestFixtureChain,
}

// ByChainID looks up a registered profile by chain id.
func ByChainID(chainID int64) (Config, error) {
	cfg, ok := registry[chainID]
	if !ok {
		return Config{}, coreerr.New(coreerr.InvalidInput, "network.ByChainID", errUnknownChain(chainID))
	}
	return cfg, nil
}

// Register adds or replaces a named chain profile, for callers wiring in
// their own networks at startup.
func Register(cfg Config) {
	registry[cfg.ChainID] = cfg
}

type errUnknownChain int64

func (e errUnknownChain) Error() string {
	return "network: unknown chain id"
}
