package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/mocks"
	"github.com/chainfolio/price-indexer/internal/store"
)

type storeMocks struct {
	ctrl  *gomock.Controller
	kv    *mocks.MockRedisClient
	lp    *mocks.MockRedisClient
	clock *mocks.MockClock
}

func newStoreMocks(t *testing.T) (*storeMocks, store.Store) {
	ctrl := gomock.NewController(t)
	m := &storeMocks{
		ctrl:  ctrl,
		kv:    mocks.NewMockRedisClient(ctrl),
		lp:    mocks.NewMockRedisClient(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	return m, store.NewRedisStore(m.kv, m.lp, adapter.NewJSON(), m.clock)
}

func TestRedisStore_ChainPrices_RoundTrip(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	prices := domain.ChainTokenPrices{
		"0x1f9840a85d5af5bf1d1762f925bdaddc4201f984": {
			{Date: "2024-01-01", Price: 6.5},
		},
	}

	var written string
	m.clock.EXPECT().Now().Return(now)
	m.kv.EXPECT().
		Set(ctx, "prices:1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value string) error {
			written = value
			return nil
		})

	require.NoError(t, s.PutChainPrices(ctx, "1", prices))
	require.NotEmpty(t, written)

	m.kv.EXPECT().Get(ctx, "prices:1").Return(written, true, nil)

	got, meta, err := s.GetChainPrices(ctx, "1")

	require.NoError(t, err)
	assert.Equal(t, prices, got)
	require.NotNil(t, meta)
	assert.Equal(t, now, meta.LastUpdated)
}

func TestRedisStore_ChainPrices_SameDateOverwrites(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	history := domain.PriceHistory{{Date: "2024-01-01", Price: 1}}
	updated := history.Upsert(domain.PricePoint{Date: "2024-01-01", Price: 2})

	var written string
	m.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	m.kv.EXPECT().
		Set(ctx, "prices:1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value string) error {
			written = value
			return nil
		})

	require.NoError(t, s.PutChainPrices(ctx, "1", domain.ChainTokenPrices{"0xabc": updated}))

	m.kv.EXPECT().Get(ctx, "prices:1").Return(written, true, nil)

	got, _, err := s.GetChainPrices(ctx, "1")
	require.NoError(t, err)
	require.Len(t, got["0xabc"], 1)
	assert.Equal(t, float64(2), got["0xabc"][0].Price)
}

func TestRedisStore_ChainPrices_ColdKey(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	m.kv.EXPECT().Get(ctx, "prices:42161").Return("", false, nil)

	prices, meta, err := s.GetChainPrices(ctx, "42161")

	// Cold key means "unknown", not an error and not "priced at zero"
	require.NoError(t, err)
	assert.NotNil(t, prices)
	assert.Empty(t, prices)
	assert.Nil(t, meta)
}

func TestRedisStore_ChainPrices_ReadFailure(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	m.kv.EXPECT().Get(ctx, "prices:1").Return("", false, errors.New("connection reset"))

	_, _, err := s.GetChainPrices(ctx, "1")
	assert.Error(t, err)
}

func TestRedisStore_SimplePrices_RoundTrip(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	prices := map[domain.ChainID]domain.PriceHistory{
		"1":   {{Date: "2024-01-01", Price: 2400}},
		"137": {{Date: "2024-01-01", Price: 0.8}},
	}

	var written string
	m.clock.EXPECT().Now().Return(time.Now())
	m.kv.EXPECT().
		Set(ctx, "prices:simple", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value string) error {
			written = value
			return nil
		})

	require.NoError(t, s.PutSimplePrices(ctx, prices))

	m.kv.EXPECT().Get(ctx, "prices:simple").Return(written, true, nil)

	got, _, err := s.GetSimplePrices(ctx)
	require.NoError(t, err)
	assert.Equal(t, prices, got)
}

func TestRedisStore_ExchangeRates_RoundTrip(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	rates := map[string]float64{"EUR": 0.92, "JPY": 148.3}

	var written string
	m.clock.EXPECT().Now().Return(time.Now())
	m.kv.EXPECT().
		Set(ctx, "prices:exchangeRates", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value string) error {
			written = value
			return nil
		})

	require.NoError(t, s.PutExchangeRates(ctx, rates))

	m.kv.EXPECT().Get(ctx, "prices:exchangeRates").Return(written, true, nil)

	got, _, err := s.GetExchangeRates(ctx)
	require.NoError(t, err)
	assert.Equal(t, rates, got)
}

func TestRedisStore_AddKnownAddresses_DeduplicatesAndLowercases(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.kv.EXPECT().
		Get(ctx, "addresses:1").
		Return(`["0xaaa0000000000000000000000000000000000000"]`, true, nil)
	m.kv.EXPECT().
		Set(ctx, "addresses:1", `["0xaaa0000000000000000000000000000000000000","0xbbb0000000000000000000000000000000000000"]`).
		Return(nil)

	err := s.AddKnownAddresses(ctx, "1", []string{
		"0xAAA0000000000000000000000000000000000000", // already known, different case
		"0xBBB0000000000000000000000000000000000000",
	})
	require.NoError(t, err)
}

func TestRedisStore_AddKnownAddresses_NoChangeSkipsWrite(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.kv.EXPECT().
		Get(ctx, "addresses:1").
		Return(`["0xaaa0000000000000000000000000000000000000"]`, true, nil)
	// No Set expected

	err := s.AddKnownAddresses(ctx, "1", []string{"0xaaa0000000000000000000000000000000000000"})
	require.NoError(t, err)
}

func TestRedisStore_PoolShapes_UseClassificationNamespace(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	shapes := map[string]domain.PoolShape{
		"0xpool": {Kind: domain.PoolKindPair, Underlying: []string{"0xaaa", "0xbbb"}},
		"0xnope": {Kind: domain.PoolKindNone},
	}

	var written string
	m.lp.EXPECT().
		Set(ctx, "lp:1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value string) error {
			written = value
			return nil
		})

	require.NoError(t, s.PutPoolShapes(ctx, "1", shapes))

	m.lp.EXPECT().Get(ctx, "lp:1").Return(written, true, nil)

	got, err := s.GetPoolShapes(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, shapes, got)
}

func TestRedisStore_PoolShapes_ColdKey(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()
	m.lp.EXPECT().Get(ctx, "lp:1").Return("", false, nil)

	shapes, err := s.GetPoolShapes(ctx, "1")
	require.NoError(t, err)
	assert.NotNil(t, shapes)
	assert.Empty(t, shapes)
}

func TestRedisStore_Ping(t *testing.T) {
	m, s := newStoreMocks(t)
	defer m.ctrl.Finish()

	ctx := context.Background()

	m.kv.EXPECT().Ping(ctx).Return(nil)
	m.lp.EXPECT().Ping(ctx).Return(nil)
	assert.NoError(t, s.Ping(ctx))

	m.kv.EXPECT().Ping(ctx).Return(errors.New("down"))
	assert.Error(t, s.Ping(ctx))
}
