// AaManager builds and signs ERC-4337 UserOperations. Grounded on aa.rs's
// AccountAbstractionManager surface, split across build/sign/estimate/send
// — this module implements build+sign+hash; estimate/send (which aa.rs
// just forwards to a bundler endpoint) are not implemented here, and
// RpcManager has no bundler call either.
package manager

import (
	"github.com/norwallet/walletcore/internal/evmsigner"
	"github.com/norwallet/walletcore/internal/registry"
	"github.com/norwallet/walletcore/pkg/models"
)

// AaManager signs ERC-4337 UserOperations on behalf of accounts held in a
// shared Registry.
type AaManager struct {
	reg *registry.Registry
}

// NewAaManager returns an AaManager backed by reg.
func NewAaManager(reg *registry.Registry) *AaManager {
	return &AaManager{reg: reg}
}

// SignUserOperation computes the UserOperation hash and signs it with the
// private key derived at (walletID, index).
func (m *AaManager) SignUserOperation(walletID string, index uint32, params models.UserOpParams, chainID int64) (*models.UserOperation, error) {
	key, err := privateKeyFor(m.reg, walletID, index)
	if err != nil {
		return nil, err
	}
	return evmsigner.SignUserOperation(params, chainID, key)
}

// ComputeHash returns the EntryPoint-domain-separated hash for params
// without signing it.
func (m *AaManager) ComputeHash(params models.UserOpParams, chainID int64) []byte {
	return evmsigner.UserOpHash(params, chainID)
}

// CounterfactualAddress returns the CREATE2 address a given factory would
// deploy an account to for (salt, initCode).
func (m *AaManager) CounterfactualAddress(factory string, salt [32]byte, initCode []byte) (string, error) {
	return evmsigner.ComputeCreate2Address(factory, salt, initCode)
}
