package pricing

import (
	"math/big"

	"github.com/chainfolio/price-indexer/internal/domain"
)

// LpUnitPrice computes the unit price of an LP token from its composition and
// the known unit prices of its underlying tokens:
//
//	sum(reserve_i * price_i) / totalSupply
//
// with reserve and supply amounts scaled by each token's own decimals.
// The dependency is all-or-nothing: if any underlying price is missing, or
// totalSupply is zero, no price is emitted and ok is false.
func LpUnitPrice(comp domain.LpComposition, underlyingPrices map[string]float64) (price float64, ok bool) {
	if comp.TotalSupply == nil || comp.TotalSupply.Sign() == 0 {
		return 0, false
	}

	var reservesValue float64
	for _, underlying := range comp.Underlying {
		unitPrice, known := underlyingPrices[domain.NormalizeAddress(underlying.Address)]
		if !known {
			return 0, false
		}
		reservesValue += humanReadable(underlying.Reserve, underlying.Decimals) * unitPrice
	}

	supply := humanReadable(comp.TotalSupply, comp.LpDecimals)
	if supply == 0 {
		return 0, false
	}

	return reservesValue / supply, true
}

// humanReadable scales a raw on-chain integer amount by the token's decimals
func humanReadable(amount *big.Int, decimals uint8) float64 {
	if amount == nil {
		return 0
	}
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), scale).Float64()
	return value
}
