package store

import (
	"context"
	"time"

	"github.com/chainfolio/price-indexer/internal/domain"
)

// Meta carries the write metadata stored alongside each cached value
type Meta struct {
	LastUpdated time.Time `json:"lastUpdated"`
}

// Store is the durable key-value cache behind the pricing engine. Values are
// partitioned per chain and per price kind. Reads of a cold key return an
// empty value and a nil error: "unknown", never "priced at zero". Writes on
// the request path are issued as deferred background work by the caller.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetChainPrices reads the per-chain token price table (prices:{chainId})
	GetChainPrices(ctx context.Context, chainID domain.ChainID) (domain.ChainTokenPrices, *Meta, error)

	// PutChainPrices overwrites the per-chain token price table
	PutChainPrices(ctx context.Context, chainID domain.ChainID, prices domain.ChainTokenPrices) error

	// GetSimplePrices reads the native/reference-token price table (prices:simple)
	GetSimplePrices(ctx context.Context) (map[domain.ChainID]domain.PriceHistory, *Meta, error)

	// PutSimplePrices overwrites the native/reference-token price table
	PutSimplePrices(ctx context.Context, prices map[domain.ChainID]domain.PriceHistory) error

	// GetExchangeRates reads the fiat conversion table (prices:exchangeRates)
	GetExchangeRates(ctx context.Context) (map[string]float64, *Meta, error)

	// PutExchangeRates overwrites the fiat conversion table
	PutExchangeRates(ctx context.Context, rates map[string]float64) error

	// GetKnownAddresses reads the per-chain known-address registry
	GetKnownAddresses(ctx context.Context, chainID domain.ChainID) ([]string, error)

	// AddKnownAddresses appends addresses to the per-chain registry,
	// deduplicated, lowercased
	AddKnownAddresses(ctx context.Context, chainID domain.ChainID, addresses []string) error

	// GetPoolShapes reads the per-chain LP classification cache
	GetPoolShapes(ctx context.Context, chainID domain.ChainID) (map[string]domain.PoolShape, error)

	// PutPoolShapes overwrites the per-chain LP classification cache
	PutPoolShapes(ctx context.Context, chainID domain.ChainID, shapes map[string]domain.PoolShape) error

	// Ping checks both underlying namespaces are reachable
	Ping(ctx context.Context) error
}
