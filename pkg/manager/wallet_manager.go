// Package manager provides the stateless façade layer exposed to
// consumers (CLI, FFI boundary): thin handles built from a shared
// *registry.Registry plus whatever collaborators a given operation needs,
// mirroring the teacher's internal/tx.Builder shape (an orchestrator built
// from injected stores/signers rather than a god object) generalized
// across wallet, EVM, AA, TRON, RPC, and simulation concerns.
package manager

import (
	"github.com/norwallet/walletcore/internal/codec"
	"github.com/norwallet/walletcore/internal/registry"
	"github.com/norwallet/walletcore/internal/walletcore"
	"github.com/norwallet/walletcore/pkg/models"
)

// WalletManager creates, imports, and derives accounts from wallets held
// in a shared Registry.
type WalletManager struct {
	reg *registry.Registry
}

// NewWalletManager returns a WalletManager backed by reg.
func NewWalletManager(reg *registry.Registry) *WalletManager {
	return &WalletManager{reg: reg}
}

// CreateWallet generates a fresh wallet (new mnemonic) for coinType and
// registers it.
func (m *WalletManager) CreateWallet(coinType walletcore.CoinType) (*models.WalletInfo, error) {
	w, err := walletcore.FromEntropy(coinType, 128)
	if err != nil {
		return nil, err
	}
	m.reg.Store(w)
	return toWalletInfo(w), nil
}

// ImportMnemonic reconstructs and registers a wallet from an existing
// BIP-39 mnemonic.
func (m *WalletManager) ImportMnemonic(coinType walletcore.CoinType, mnemonic, passphrase string) (*models.WalletInfo, error) {
	w, err := walletcore.FromMnemonic(coinType, mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	m.reg.Store(w)
	return toWalletInfo(w), nil
}

// ImportPrivateKey registers a single-account wallet built directly from
// a raw private key.
func (m *WalletManager) ImportPrivateKey(coinType walletcore.CoinType, privateKey []byte) (*models.WalletInfo, error) {
	w, err := walletcore.FromPrivateKey(coinType, privateKey)
	if err != nil {
		return nil, err
	}
	m.reg.Store(w)
	return toWalletInfo(w), nil
}

// ImportPrivateKeyHex registers a single-account wallet from a hex-encoded
// private key (with or without a "0x" prefix), per spec.md §4.1's
// fromPrivateKey(hexScalar) entry point.
func (m *WalletManager) ImportPrivateKeyHex(coinType walletcore.CoinType, hexScalar string) (*models.WalletInfo, error) {
	w, err := walletcore.FromPrivateKeyHex(coinType, hexScalar)
	if err != nil {
		return nil, err
	}
	m.reg.Store(w)
	return toWalletInfo(w), nil
}

// DeriveAccount derives (or re-derives, idempotently) an account at index
// within wallet walletID, and persists the update.
func (m *WalletManager) DeriveAccount(walletID string, index uint32) (*models.Account, error) {
	w, err := m.reg.Get(walletID)
	if err != nil {
		return nil, err
	}
	acc, err := w.DeriveAccount(index)
	if err != nil {
		return nil, err
	}
	m.reg.Store(w)
	return toAccount(acc), nil
}

// Info returns the public view of a registered wallet.
func (m *WalletManager) Info(walletID string) (*models.WalletInfo, error) {
	w, err := m.reg.Get(walletID)
	if err != nil {
		return nil, err
	}
	return toWalletInfo(w), nil
}

// ExportMnemonic returns the BIP-39 mnemonic for a registered wallet.
func (m *WalletManager) ExportMnemonic(walletID string) (string, error) {
	w, err := m.reg.Get(walletID)
	if err != nil {
		return "", err
	}
	return w.ExportMnemonic()
}

// ExportPrivateKey returns the hex-encoded private key for a derived
// account.
func (m *WalletManager) ExportPrivateKey(walletID string, index uint32) (string, error) {
	w, err := m.reg.Get(walletID)
	if err != nil {
		return "", err
	}
	return w.ExportPrivateKey(index)
}

// Close zeroizes and removes a wallet from the registry.
func (m *WalletManager) Close(walletID string) {
	m.reg.Delete(walletID)
}

func toWalletInfo(w *walletcore.Wallet) *models.WalletInfo {
	accs := w.Accounts()
	out := make([]models.Account, 0, len(accs))
	for _, a := range accs {
		out = append(out, *toAccount(a))
	}
	return &models.WalletInfo{ID: w.ID, Accounts: out}
}

func toAccount(a *walletcore.DerivedAccount) *models.Account {
	return &models.Account{
		Index:          a.Index,
		Address:        a.Address,
		DerivationPath: a.Path,
		PublicKey:      codec.HexEncode(a.PublicKeyBytes),
	}
}
