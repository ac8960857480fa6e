package lp_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/logger"
	"github.com/chainfolio/price-indexer/internal/lp"
	"github.com/chainfolio/price-indexer/internal/mocks"
	"github.com/chainfolio/price-indexer/internal/multicall"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const (
	pairAddress   = "0xb4e16d0168e52d35cacd2c6185b44281ec28c9dc"
	stableAddress = "0xbebc44782c7db0a1a60cb6fe97d0b483032ff1c7"
	plainAddress  = "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984"
	token0Address = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	token1Address = "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"
)

type decomposerMocks struct {
	ctrl    *gomock.Controller
	factory *mocks.MockClientFactory
	caller  *mocks.MockCaller
	store   *mocks.MockClassificationStore
}

func newDecomposerMocks(t *testing.T) (*decomposerMocks, lp.Decomposer) {
	ctrl := gomock.NewController(t)
	m := &decomposerMocks{
		ctrl:    ctrl,
		factory: mocks.NewMockClientFactory(ctrl),
		caller:  mocks.NewMockCaller(ctrl),
		store:   mocks.NewMockClassificationStore(ctrl),
	}
	return m, lp.NewDecomposer(m.factory, m.store)
}

// revertedSlot is a failed probe result
var revertedSlot = multicall.Result{Success: false}

func addressSlot(hex string) multicall.Result {
	return multicall.Result{
		Success:    true,
		ReturnData: multicall.PackAddressOutput(common.HexToAddress(hex)),
	}
}

func TestDecomposer_Classify_Pair(t *testing.T) {
	m, decomposer := newDecomposerMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().GetPoolShapes(ctx, domain.ChainID("1")).Return(map[string]domain.PoolShape{}, nil)
	m.factory.EXPECT().CallerFor(ctx, domain.ChainID("1")).Return(m.caller, nil)

	// token0 and token1 answer, every coins(i) probe reverts
	m.caller.EXPECT().
		Aggregate(ctx, gomock.Len(6)).
		Return([]multicall.Result{
			addressSlot(token0Address),
			addressSlot(token1Address),
			revertedSlot, revertedSlot, revertedSlot, revertedSlot,
		}, nil)

	m.store.EXPECT().
		PutPoolShapes(ctx, domain.ChainID("1"), gomock.Any()).
		Return(nil)

	shapes, err := decomposer.Classify(ctx, "1", []string{pairAddress})

	require.NoError(t, err)
	require.Contains(t, shapes, pairAddress)
	assert.Equal(t, domain.PoolKindPair, shapes[pairAddress].Kind)
	assert.Equal(t, []string{token0Address, token1Address}, shapes[pairAddress].Underlying)
}

func TestDecomposer_Classify_StableWithTrailingReverts(t *testing.T) {
	m, decomposer := newDecomposerMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().GetPoolShapes(ctx, domain.ChainID("1")).Return(map[string]domain.PoolShape{}, nil)
	m.factory.EXPECT().CallerFor(ctx, domain.ChainID("1")).Return(m.caller, nil)

	// Three coins answer; coins(3) legitimately reverts for a 3-asset pool
	m.caller.EXPECT().
		Aggregate(ctx, gomock.Len(6)).
		Return([]multicall.Result{
			revertedSlot, revertedSlot,
			addressSlot(token0Address),
			addressSlot(token1Address),
			addressSlot(plainAddress),
			revertedSlot,
		}, nil)

	m.store.EXPECT().
		PutPoolShapes(ctx, domain.ChainID("1"), gomock.Any()).
		Return(nil)

	shapes, err := decomposer.Classify(ctx, "1", []string{stableAddress})

	require.NoError(t, err)
	assert.Equal(t, domain.PoolKindStable, shapes[stableAddress].Kind)
	assert.Len(t, shapes[stableAddress].Underlying, 3)
}

func TestDecomposer_Classify_PlainToken(t *testing.T) {
	m, decomposer := newDecomposerMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().GetPoolShapes(ctx, domain.ChainID("1")).Return(map[string]domain.PoolShape{}, nil)
	m.factory.EXPECT().CallerFor(ctx, domain.ChainID("1")).Return(m.caller, nil)

	// Every probe reverts: not a pool
	m.caller.EXPECT().
		Aggregate(ctx, gomock.Len(6)).
		Return([]multicall.Result{
			revertedSlot, revertedSlot, revertedSlot, revertedSlot, revertedSlot, revertedSlot,
		}, nil)

	// The negative classification is persisted too
	m.store.EXPECT().
		PutPoolShapes(ctx, domain.ChainID("1"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.ChainID, shapes map[string]domain.PoolShape) error {
			assert.Equal(t, domain.PoolKindNone, shapes[plainAddress].Kind)
			return nil
		})

	shapes, err := decomposer.Classify(ctx, "1", []string{plainAddress})

	require.NoError(t, err)
	assert.Equal(t, domain.PoolKindNone, shapes[plainAddress].Kind)
}

func TestDecomposer_Classify_CachedSkipsProbing(t *testing.T) {
	m, decomposer := newDecomposerMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().GetPoolShapes(ctx, domain.ChainID("1")).Return(map[string]domain.PoolShape{
		pairAddress: {Kind: domain.PoolKindPair, Underlying: []string{token0Address, token1Address}},
	}, nil)
	// No CallerFor, no Aggregate: classification comes from the cache

	shapes, err := decomposer.Classify(ctx, "1", []string{pairAddress})

	require.NoError(t, err)
	assert.Equal(t, domain.PoolKindPair, shapes[pairAddress].Kind)
}

func TestDecomposer_Classify_BatchFailure(t *testing.T) {
	m, decomposer := newDecomposerMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.store.EXPECT().GetPoolShapes(ctx, domain.ChainID("1")).Return(map[string]domain.PoolShape{}, nil)
	m.factory.EXPECT().CallerFor(ctx, domain.ChainID("1")).Return(m.caller, nil)
	m.caller.EXPECT().
		Aggregate(ctx, gomock.Any()).
		Return(nil, domain.ErrBatchFailed)

	_, err := decomposer.Classify(ctx, "1", []string{pairAddress})
	assert.ErrorIs(t, err, domain.ErrBatchFailed)
}

func TestDecomposer_Decompose_Pair(t *testing.T) {
	m, decomposer := newDecomposerMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	shape := domain.PoolShape{
		Kind:       domain.PoolKindPair,
		Underlying: []string{token0Address, token1Address},
	}

	m.factory.EXPECT().CallerFor(ctx, domain.ChainID("1")).Return(m.caller, nil)

	// decimals, totalSupply, getReserves, then each underlying's decimals
	m.caller.EXPECT().
		Aggregate(ctx, gomock.Len(5)).
		Return([]multicall.Result{
			{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(18))},
			{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(1_000_000))},
			{Success: true, ReturnData: multicall.PackReservesOutput(big.NewInt(5000), big.NewInt(7000))},
			{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(6))},
			{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(18))},
		}, nil)

	compositions, err := decomposer.Decompose(ctx, "1", map[string]domain.PoolShape{pairAddress: shape})

	require.NoError(t, err)
	require.Contains(t, compositions, pairAddress)

	comp := compositions[pairAddress]
	assert.Equal(t, uint8(18), comp.LpDecimals)
	assert.Equal(t, big.NewInt(1_000_000), comp.TotalSupply)
	require.Len(t, comp.Underlying, 2)
	assert.Equal(t, big.NewInt(5000), comp.Underlying[0].Reserve)
	assert.Equal(t, uint8(6), comp.Underlying[0].Decimals)
	assert.Equal(t, big.NewInt(7000), comp.Underlying[1].Reserve)
	assert.Equal(t, uint8(18), comp.Underlying[1].Decimals)
}

func TestDecomposer_Decompose_ReserveReadFailureDropsPool(t *testing.T) {
	m, decomposer := newDecomposerMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	shape := domain.PoolShape{
		Kind:       domain.PoolKindStable,
		Underlying: []string{token0Address, token1Address},
	}

	m.factory.EXPECT().CallerFor(ctx, domain.ChainID("1")).Return(m.caller, nil)

	// decimals, totalSupply, balances(0), balances(1), then underlying decimals;
	// one balance read fails, so the reserve count cannot match the underlying
	// count and the pool is dropped this cycle
	m.caller.EXPECT().
		Aggregate(ctx, gomock.Len(6)).
		Return([]multicall.Result{
			{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(18))},
			{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(100))},
			{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(1000))},
			revertedSlot,
			{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(18))},
			{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(18))},
		}, nil)

	compositions, err := decomposer.Decompose(ctx, "1", map[string]domain.PoolShape{stableAddress: shape})

	require.NoError(t, err)
	assert.NotContains(t, compositions, stableAddress)
}

func TestDecomposer_Decompose_SkipsNonPools(t *testing.T) {
	m, decomposer := newDecomposerMocks(t)
	defer m.ctrl.Finish()

	// Nothing to read: no CallerFor, no batch
	compositions, err := decomposer.Decompose(context.Background(), "1", map[string]domain.PoolShape{
		plainAddress: {Kind: domain.PoolKindNone},
	})

	require.NoError(t, err)
	assert.Empty(t, compositions)
}

func TestDecomposer_Decompose_BatchFailure(t *testing.T) {
	m, decomposer := newDecomposerMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	shape := domain.PoolShape{
		Kind:       domain.PoolKindPair,
		Underlying: []string{token0Address, token1Address},
	}

	m.factory.EXPECT().CallerFor(ctx, domain.ChainID("1")).Return(m.caller, nil)
	m.caller.EXPECT().
		Aggregate(ctx, gomock.Any()).
		Return(nil, errors.New("node unreachable"))

	_, err := decomposer.Decompose(ctx, "1", map[string]domain.PoolShape{pairAddress: shape})
	assert.Error(t, err)
}
