package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/norwallet/walletcore/internal/walletcore"
)

// Grounded on
// _examples/original_source/backup/wallets/wallet-core/core-rust/src/storage.rs's
// own test module (test_store_and_get_wallet, test_get_nonexistent_wallet).

func TestStoreAndGet_RoundTrips(t *testing.T) {
	reg := New()
	w, err := walletcore.FromEntropy(walletcore.CoinTypeETH, 128)
	require.NoError(t, err)
	defer w.Close()

	reg.Store(w)

	got, err := reg.Get(w.ID)
	require.NoError(t, err)
	defer got.Close()
	assert.Equal(t, w.ID, got.ID)
}

func TestGet_UnknownIDFails(t *testing.T) {
	reg := New()
	_, err := reg.Get("does-not-exist")
	assert.Error(t, err)
}

func TestGet_ReturnsIndependentClone(t *testing.T) {
	reg := New()
	w, err := walletcore.FromEntropy(walletcore.CoinTypeETH, 128)
	require.NoError(t, err)
	defer w.Close()
	reg.Store(w)

	clone, err := reg.Get(w.ID)
	require.NoError(t, err)
	clone.Close()

	// Closing the clone must not zeroize the registry's own copy.
	again, err := reg.Get(w.ID)
	require.NoError(t, err)
	defer again.Close()
	assert.NotEmpty(t, again.Accounts()[0].PrivateKey())
}

func TestConcurrentStoreAndGet_NoRace(t *testing.T) {
	reg := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := walletcore.FromEntropy(walletcore.CoinTypeETH, 128)
			if err != nil {
				return
			}
			reg.Store(w)
			_, _ = reg.Get(w.ID)
			w.Close()
		}()
	}
	wg.Wait()
	assert.NotEmpty(t, reg.List())
}

func TestDelete_RemovesWallet(t *testing.T) {
	reg := New()
	w, err := walletcore.FromEntropy(walletcore.CoinTypeETH, 128)
	require.NoError(t, err)
	reg.Store(w)

	reg.Delete(w.ID)

	_, err = reg.Get(w.ID)
	assert.Error(t, err)
}
