package manager

import (
	"github.com/norwallet/walletcore/internal/registry"
	"github.com/norwallet/walletcore/internal/tronsigner"
	"github.com/norwallet/walletcore/pkg/models"
)

// TronManager builds and signs TRON transactions and messages on behalf
// of accounts held in a shared Registry.
type TronManager struct {
	reg *registry.Registry
}

// NewTronManager returns a TronManager backed by reg.
func NewTronManager(reg *registry.Registry) *TronManager {
	return &TronManager{reg: reg}
}

// SignTransaction builds and signs a TRON transfer using the private key
// derived at (walletID, index).
func (m *TronManager) SignTransaction(walletID string, index uint32, params models.TronTxParams) (*models.TronTransaction, error) {
	key, err := privateKeyFor(m.reg, walletID, index)
	if err != nil {
		return nil, err
	}
	return tronsigner.SignTransaction(params, key)
}

// SignMessage signs message with TRON's prefixed-message convention.
func (m *TronManager) SignMessage(walletID string, index uint32, message []byte) ([]byte, error) {
	key, err := privateKeyFor(m.reg, walletID, index)
	if err != nil {
		return nil, err
	}
	return tronsigner.SignMessage(message, key)
}

// ValidateAddress reports whether addr is a well-formed TRON address,
// returning false rather than an error on any malformed input.
func (m *TronManager) ValidateAddress(addr string) bool {
	return tronsigner.ValidateAddress(addr) == nil
}
