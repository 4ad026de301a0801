package manager

import (
	"github.com/norwallet/walletcore/internal/registry"
)

// privateKeyFor derives (if needed) and returns the raw private-key bytes
// for an account, used by the EVM/AA/TRON signing managers so they do not
// each need their own copy of the registry-lookup-then-derive sequence.
func privateKeyFor(reg *registry.Registry, walletID string, index uint32) ([]byte, error) {
	w, err := reg.Get(walletID)
	if err != nil {
		return nil, err
	}
	acc, err := w.DeriveAccount(index)
	if err != nil {
		return nil, err
	}
	return acc.PrivateKey(), nil
}
