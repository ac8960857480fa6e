package lp

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/logger"
	"github.com/chainfolio/price-indexer/internal/multicall"
)

// maxPoolAssets caps the multi-asset pool probe; pools with fewer assets
// legitimately revert on the trailing coins(i) indices
const maxPoolAssets = 4

// ClassificationStore persists the structural classification of candidate
// addresses so repeat requests skip re-probing. Negative results are cached too.
//
//go:generate mockgen -source=decomposer.go -destination=../mocks/lp.go -package=mocks -mock_names=ClassificationStore=MockClassificationStore,Decomposer=MockDecomposer
type ClassificationStore interface {
	GetPoolShapes(ctx context.Context, chainID domain.ChainID) (map[string]domain.PoolShape, error)
	PutPoolShapes(ctx context.Context, chainID domain.ChainID, shapes map[string]domain.PoolShape) error
}

// Decomposer detects liquidity-pool tokens and computes their composition
type Decomposer interface {
	// Classify determines, for each candidate address, whether it behaves
	// like a liquidity-pool token. Cached classifications are reused; the
	// rest are probed in a single batch round-trip.
	Classify(ctx context.Context, chainID domain.ChainID, addresses []string) (map[string]domain.PoolShape, error)

	// Decompose batch-reads supply, decimals and reserves for confirmed
	// pools. A pool whose reserve reads do not line up with its underlying
	// list is dropped from this cycle and retried on the next.
	Decompose(ctx context.Context, chainID domain.ChainID, shapes map[string]domain.PoolShape) (map[string]domain.LpComposition, error)
}

// decomposer is the internal implementation of Decomposer
type decomposer struct {
	factory multicall.ClientFactory
	store   ClassificationStore
}

// NewDecomposer creates a decomposer over the given chain clients and
// classification cache
func NewDecomposer(factory multicall.ClientFactory, store ClassificationStore) Decomposer {
	return &decomposer{factory: factory, store: store}
}

// probeCallsPerAddress is the fixed probe layout per candidate:
// token0, token1, coins(0..3)
const probeCallsPerAddress = 2 + maxPoolAssets

// Classify determines for each candidate whether it is a pool token
func (d *decomposer) Classify(ctx context.Context, chainID domain.ChainID, addresses []string) (map[string]domain.PoolShape, error) {
	cached, err := d.store.GetPoolShapes(ctx, chainID)
	if err != nil {
		// A classification cache read failure only means re-probing
		logger.WarnCtx(ctx, "failed to read classification cache, re-probing",
			zap.String("chain", string(chainID)), zap.Error(err))
		cached = make(map[string]domain.PoolShape)
	}

	shapes := make(map[string]domain.PoolShape, len(addresses))
	var unknown []string
	for _, address := range addresses {
		address = domain.NormalizeAddress(address)
		if shape, ok := cached[address]; ok {
			shapes[address] = shape
		} else {
			unknown = append(unknown, address)
		}
	}

	if len(unknown) == 0 {
		return shapes, nil
	}

	caller, err := d.factory.CallerFor(ctx, chainID)
	if err != nil {
		return nil, err
	}

	// All probes for one candidate go out in the same batch round
	calls := make([]multicall.Call, 0, len(unknown)*probeCallsPerAddress)
	for _, address := range unknown {
		target := common.HexToAddress(address)
		calls = append(calls,
			multicall.Call{Target: target, CallData: multicall.PackToken0()},
			multicall.Call{Target: target, CallData: multicall.PackToken1()},
		)
		for i := int64(0); i < maxPoolAssets; i++ {
			calls = append(calls, multicall.Call{Target: target, CallData: multicall.PackCoins(i)})
		}
	}

	results, err := caller.Aggregate(ctx, calls)
	if err != nil {
		return nil, fmt.Errorf("classification probe failed for chain %s: %w", chainID, err)
	}

	probed := make(map[string]domain.PoolShape, len(unknown))
	for i, address := range unknown {
		slot := results[i*probeCallsPerAddress : (i+1)*probeCallsPerAddress]
		shape := classifyProbe(slot)
		probed[address] = shape
		shapes[address] = shape
	}

	// Persist merged classifications, negatives included; a write failure
	// only costs a re-probe next time
	merged := make(map[string]domain.PoolShape, len(cached)+len(probed))
	for address, shape := range cached {
		merged[address] = shape
	}
	for address, shape := range probed {
		merged[address] = shape
	}
	if err := d.store.PutPoolShapes(ctx, chainID, merged); err != nil {
		logger.WarnCtx(ctx, "failed to persist classification cache",
			zap.String("chain", string(chainID)), zap.Error(err))
	}

	return shapes, nil
}

// classifyProbe evaluates one candidate's probe slots: token0/token1 first,
// then coins(0..3). Trailing coins reverts are expected for smaller pools.
func classifyProbe(slot []multicall.Result) domain.PoolShape {
	token0, ok0 := probeAddress(slot[0])
	token1, ok1 := probeAddress(slot[1])
	if ok0 && ok1 {
		return domain.PoolShape{
			Kind:       domain.PoolKindPair,
			Underlying: []string{token0, token1},
		}
	}

	var coins []string
	for _, result := range slot[2:] {
		coin, ok := probeAddress(result)
		if !ok {
			break
		}
		coins = append(coins, coin)
	}
	if len(coins) >= 2 {
		return domain.PoolShape{
			Kind:       domain.PoolKindStable,
			Underlying: coins,
		}
	}

	return domain.PoolShape{Kind: domain.PoolKindNone}
}

// probeAddress extracts a usable token address from a probe result
func probeAddress(result multicall.Result) (string, bool) {
	if !result.Success || len(result.ReturnData) < 32 {
		return "", false
	}
	addr, err := multicall.UnpackAddress(result.ReturnData)
	if err != nil || addr == (common.Address{}) {
		return "", false
	}
	return domain.NormalizeAddress(addr.Hex()), true
}

// Decompose batch-reads the composition of every confirmed pool on a chain
func (d *decomposer) Decompose(ctx context.Context, chainID domain.ChainID, shapes map[string]domain.PoolShape) (map[string]domain.LpComposition, error) {
	type layout struct {
		address string
		shape   domain.PoolShape
		start   int // index of this pool's first call in the batch
		count   int
	}

	var calls []multicall.Call
	var layouts []layout
	for address, shape := range shapes {
		if !shape.IsPool() || len(shape.Underlying) < 2 || len(shape.Underlying) > maxPoolAssets {
			continue
		}

		target := common.HexToAddress(address)
		start := len(calls)
		calls = append(calls,
			multicall.Call{Target: target, CallData: multicall.PackDecimals()},
			multicall.Call{Target: target, CallData: multicall.PackTotalSupply()},
		)
		if shape.Kind == domain.PoolKindPair {
			calls = append(calls, multicall.Call{Target: target, CallData: multicall.PackGetReserves()})
		} else {
			for i := range shape.Underlying {
				calls = append(calls, multicall.Call{Target: target, CallData: multicall.PackBalances(int64(i))})
			}
		}
		for _, underlying := range shape.Underlying {
			calls = append(calls, multicall.Call{
				Target:   common.HexToAddress(underlying),
				CallData: multicall.PackDecimals(),
			})
		}

		layouts = append(layouts, layout{
			address: address,
			shape:   shape,
			start:   start,
			count:   len(calls) - start,
		})
	}

	if len(calls) == 0 {
		return map[string]domain.LpComposition{}, nil
	}

	caller, err := d.factory.CallerFor(ctx, chainID)
	if err != nil {
		return nil, err
	}

	results, err := caller.Aggregate(ctx, calls)
	if err != nil {
		return nil, fmt.Errorf("composition read failed for chain %s: %w", chainID, err)
	}

	compositions := make(map[string]domain.LpComposition, len(layouts))
	for _, l := range layouts {
		comp, ok := parseComposition(l.shape, results[l.start:l.start+l.count])
		if !ok {
			logger.DebugCtx(ctx, "dropping pool from this cycle",
				zap.String("chain", string(chainID)), zap.String("address", l.address))
			continue
		}
		compositions[l.address] = comp
	}
	return compositions, nil
}

// parseComposition turns one pool's result slots into an LpComposition. The
// pool is rejected unless every reserve and decimals read succeeded and the
// reserve count matches the underlying count.
func parseComposition(shape domain.PoolShape, slot []multicall.Result) (domain.LpComposition, bool) {
	n := len(shape.Underlying)

	if !slot[0].Success || !slot[1].Success {
		return domain.LpComposition{}, false
	}
	lpDecimals, err := multicall.UnpackDecimals(slot[0].ReturnData)
	if err != nil {
		return domain.LpComposition{}, false
	}
	totalSupply, err := multicall.UnpackUint(slot[1].ReturnData)
	if err != nil {
		return domain.LpComposition{}, false
	}

	underlying := make([]domain.UnderlyingToken, 0, n)
	if shape.Kind == domain.PoolKindPair {
		if !slot[2].Success {
			return domain.LpComposition{}, false
		}
		reserve0, reserve1, err := multicall.UnpackReserves(slot[2].ReturnData)
		if err != nil {
			return domain.LpComposition{}, false
		}
		underlying = append(underlying,
			domain.UnderlyingToken{Address: shape.Underlying[0], Reserve: reserve0},
			domain.UnderlyingToken{Address: shape.Underlying[1], Reserve: reserve1},
		)
	} else {
		for i := 0; i < n; i++ {
			result := slot[2+i]
			if !result.Success {
				return domain.LpComposition{}, false
			}
			balance, err := multicall.UnpackUint(result.ReturnData)
			if err != nil {
				return domain.LpComposition{}, false
			}
			underlying = append(underlying, domain.UnderlyingToken{
				Address: shape.Underlying[i],
				Reserve: balance,
			})
		}
	}

	// Underlying decimals follow the reserve slots
	decimalsOffset := len(slot) - n
	for i := 0; i < n; i++ {
		result := slot[decimalsOffset+i]
		if !result.Success {
			return domain.LpComposition{}, false
		}
		decimals, err := multicall.UnpackDecimals(result.ReturnData)
		if err != nil {
			return domain.LpComposition{}, false
		}
		underlying[i].Decimals = decimals
	}

	if len(underlying) != n {
		return domain.LpComposition{}, false
	}

	return domain.LpComposition{
		Underlying:  underlying,
		LpDecimals:  lpDecimals,
		TotalSupply: totalSupply,
	}, true
}
