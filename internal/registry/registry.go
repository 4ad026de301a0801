// Package registry implements the concurrent in-process wallet store: a
// mutex-guarded map from wallet id to *walletcore.Wallet, returning clones
// so no caller ever mutates another caller's secret state.
//
// Grounded on
// _examples/original_source/backup/wallets/wallet-core/core-rust/src/storage.rs
// (lazy_static Mutex<HashMap<String, Wallet>>, get_wallet clones,
// store_wallet) and on the teacher's internal/storage.MemoryTxStore
// locking idiom (sync.Mutex held only across the map access, never I/O).
package registry

import (
	"sync"

	"github.com/norwallet/walletcore/internal/coreerr"
	"github.com/norwallet/walletcore/internal/walletcore"
)

// Registry is a concurrency-safe, in-process wallet store. It does not
// persist across process restarts; persistence is explicitly out of
// scope (see SPEC_FULL.md Open Questions).
type Registry struct {
	mu      sync.Mutex
	wallets map[string]*walletcore.Wallet
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{wallets: make(map[string]*walletcore.Wallet)}
}

// Store registers a wallet under its ID, replacing any prior entry with
// the same ID.
func (r *Registry) Store(w *walletcore.Wallet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets[w.ID] = w
}

// Get returns a clone of the wallet registered under id. The clone owns
// independent copies of every secret scalar, so closing it never affects
// the registry's own copy.
func (r *Registry) Get(id string) (*walletcore.Wallet, error) {
	r.mu.Lock()
	w, ok := r.wallets[id]
	r.mu.Unlock()
	if !ok {
		return nil, coreerr.New(coreerr.InvalidInput, "Registry.Get", errNotFound(id))
	}
	return w.Clone(), nil
}

// Delete removes and zeroizes the wallet registered under id, if present.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.wallets[id]; ok {
		w.Close()
		delete(r.wallets, id)
	}
}

// List returns the IDs of every registered wallet.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.wallets))
	for id := range r.wallets {
		ids = append(ids, id)
	}
	return ids
}

type errNotFound string

func (e errNotFound) Error() string { return "registry: wallet not found: " + string(e) }
