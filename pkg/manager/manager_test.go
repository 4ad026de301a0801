package manager

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norwallet/walletcore/internal/evmsigner"
	"github.com/norwallet/walletcore/internal/registry"
	"github.com/norwallet/walletcore/internal/rpcclient"
	"github.com/norwallet/walletcore/internal/walletcore"
	"github.com/norwallet/walletcore/pkg/models"
)

// End-to-end façade smoke tests: these exercise the same
// mnemonic-import -> derive -> sign -> recover path a CLI/FFI caller
// would, across the WalletManager/EvmManager/TronManager boundary.

func TestWalletManager_ImportMnemonicKnownAddress(t *testing.T) {
	reg := registry.New()
	wm := NewWalletManager(reg)

	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	info, err := wm.ImportMnemonic(walletcore.CoinTypeETH, mnemonic, "")
	require.NoError(t, err)
	require.Len(t, info.Accounts, 1)
	assert.Equal(t, "0x9858effd232b4033e47d90003d41ec34ecaeda94", strings.ToLower(info.Accounts[0].Address))

	defer wm.Close(info.ID)
}

func TestEvmManager_SignsAndRecoversThroughRegistry(t *testing.T) {
	reg := registry.New()
	wm := NewWalletManager(reg)
	em := NewEvmManager(reg)

	info, err := wm.CreateWallet(walletcore.CoinTypeETH)
	require.NoError(t, err)
	defer wm.Close(info.ID)

	sig, err := em.SignPersonalMessage(info.ID, 0, []byte("hello"))
	require.NoError(t, err)
	require.Len(t, sig, 65)

	hash := evmsigner.PersonalMessageHash([]byte("hello"))
	recovered, err := em.RecoverSigner(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(info.Accounts[0].Address), strings.ToLower(recovered))
}

func TestWalletManager_DeriveAccountIsIdempotentAcrossRegistryRoundTrip(t *testing.T) {
	reg := registry.New()
	wm := NewWalletManager(reg)

	info, err := wm.CreateWallet(walletcore.CoinTypeETH)
	require.NoError(t, err)
	defer wm.Close(info.ID)

	a1, err := wm.DeriveAccount(info.ID, 5)
	require.NoError(t, err)
	a2, err := wm.DeriveAccount(info.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, a1.Address, a2.Address)
}

func TestWalletManager_ImportPrivateKeyHex_RoundTrips(t *testing.T) {
	reg := registry.New()
	wm := NewWalletManager(reg)

	key := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	require.Len(t, key, 64)
	info, err := wm.ImportPrivateKeyHex(walletcore.CoinTypeETH, "0x"+key)
	require.NoError(t, err)
	defer wm.Close(info.ID)

	require.Len(t, info.Accounts, 1)
	assert.Equal(t, "imported", info.Accounts[0].DerivationPath)

	exported, err := wm.ExportPrivateKey(info.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "0x"+key, strings.ToLower(exported))
}

func TestTronManager_ValidatesKnownGoodAddress(t *testing.T) {
	reg := registry.New()
	tm := NewTronManager(reg)
	assert.True(t, tm.ValidateAddress("TLsV52sRDL79HXGGm9yzwKibb6BeruhUzy"))
	assert.False(t, tm.ValidateAddress("0x1234567890123456789012345678901234567890"))
}

func TestEvmManager_EstimateTotalCostIgnoresValueAndNeverOverflows(t *testing.T) {
	reg := registry.New()
	em := NewEvmManager(reg)

	hugeGasPrice, ok := new(big.Int).SetString("1000000000000000000000000000000", 10)
	require.True(t, ok)

	est := em.EstimateTotalCost(models.EvmTxParams{
		GasLimit: 21_000,
		GasPrice: hugeGasPrice,
		Value:    big.NewInt(1_000_000_000_000_000_000),
	})
	want := new(big.Int).Mul(big.NewInt(21_000), hugeGasPrice)
	assert.Equal(t, want, est.TotalCost)
}

func TestEvmManager_EstimateGas_CallsRpcAndFoldsTotalCost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.RpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := models.RpcResponse{JSONRPC: "2.0", ID: req.ID, Result: json.RawMessage(`"0x5208"`)} // 21000
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	reg := registry.New()
	em := NewEvmManager(reg)
	client := rpcclient.NewClient(srv.URL)

	est, err := em.EstimateGas(context.Background(), client, models.EvmTxParams{
		From:     "0xfrom",
		To:       "0xto",
		GasPrice: big.NewInt(20_000_000_000),
		Value:    big.NewInt(0),
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(21_000), est.GasLimit)
	assert.Equal(t, big.NewInt(420_000_000_000_000), est.TotalCost)
}
