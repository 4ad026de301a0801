package manager

import (
	"context"

	"github.com/norwallet/walletcore/internal/simulation"
	"github.com/norwallet/walletcore/pkg/models"
)

// SimulationManager runs dry-run simulations and safety analysis against
// an RpcManager's chain.
type SimulationManager struct {
	engine *simulation.Engine
}

// NewSimulationManager returns a SimulationManager backed by rpc.
func NewSimulationManager(rpc *RpcManager) *SimulationManager {
	return &SimulationManager{engine: simulation.NewEngine(rpc.Client())}
}

// Simulate dry-runs params as if sent from "from", without broadcasting.
func (m *SimulationManager) Simulate(ctx context.Context, from string, params models.EvmTxParams) (*models.SimulationResult, error) {
	return m.engine.SimulateTransaction(ctx, from, params)
}

// Analyze produces a SafetyReport from a previously computed simulation.
func (m *SimulationManager) Analyze(sim *models.SimulationResult) *models.SafetyReport {
	return simulation.AnalyzeTransaction(sim)
}

// SimulateAndAnalyze combines Simulate and Analyze in one call, the
// common path for a pre-send safety check.
func (m *SimulationManager) SimulateAndAnalyze(ctx context.Context, from string, params models.EvmTxParams) (*models.SafetyReport, error) {
	sim, err := m.engine.SimulateTransaction(ctx, from, params)
	if err != nil {
		return nil, err
	}
	return simulation.AnalyzeTransaction(sim), nil
}

// CheckAllowance reads an ERC-20 allowance.
func (m *SimulationManager) CheckAllowance(ctx context.Context, token, owner, spender string) (*models.AllowanceChange, error) {
	return m.engine.CheckAllowance(ctx, token, owner, spender)
}

// DecodeTokenTransfers decodes ERC-20 Transfer logs already in hand.
func (m *SimulationManager) DecodeTokenTransfers(logs []simulation.LogEntry) []models.TokenTransfer {
	return simulation.DecodeTokenTransfers(logs)
}

// DecodeTransfersForTx fetches txHash's receipt and decodes any ERC-20
// Transfer events in its logs, the RPC-driven counterpart to
// DecodeTokenTransfers for a caller that only has a transaction hash.
func (m *SimulationManager) DecodeTransfersForTx(ctx context.Context, txHash string) ([]models.TokenTransfer, error) {
	return m.engine.DecodeTransfersForTx(ctx, txHash)
}
