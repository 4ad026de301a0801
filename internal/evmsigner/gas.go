package evmsigner

import "math/big"

// EstimateTotalCost computes gasLimit*gasPrice using big.Int throughout,
// avoiding the u64 overflow evm.rs's estimate_gas is exposed to when a
// caller supplies a large gas price.
func EstimateTotalCost(gasLimit uint64, gasPrice *big.Int) *big.Int {
	if gasPrice == nil {
		gasPrice = big.NewInt(0)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), gasPrice)
}
