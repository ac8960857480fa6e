package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/logger"
	"github.com/chainfolio/price-indexer/internal/lp"
	"github.com/chainfolio/price-indexer/internal/pricing"
	"github.com/chainfolio/price-indexer/internal/providers/pricesource"
	"github.com/chainfolio/price-indexer/internal/redirect"
	"github.com/chainfolio/price-indexer/internal/store"
)

// NativeTokenAddress is the pseudo-address under which a chain's gas token is
// requested. The redirect table maps it onto the chain's canonical wrapped token.
const NativeTokenAddress = "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"

// writeTimeout bounds each deferred cache write issued after a response is sent
const writeTimeout = 30 * time.Second

// Report summarizes one full refresh run
type Report struct {
	Succeeded []domain.ChainID
	Failed    map[domain.ChainID]error
}

// Engine composes redirect resolution, LP decomposition, the external price
// source and the cache store behind the request and refresh entry points.
//
//go:generate mockgen -source=engine.go -destination=../mocks/engine.go -package=mocks -mock_names=Engine=MockEngine
type Engine interface {
	// AllPrices returns the latest cached price per token for every configured
	// chain. No on-chain work is triggered; a cache read failure is an error.
	AllPrices(ctx context.Context) (domain.TokenPriceTable, error)

	// ChainPrices returns the latest cached price per token for one chain
	ChainPrices(ctx context.Context, chainID domain.ChainID) (domain.ChainTokenPrices, error)

	// ResolvePrices prices exactly the requested addresses, resolving cache
	// misses live. Results are keyed by the originally requested address.
	// Invalid addresses are silently filtered; unpriceable tokens are omitted.
	// Cache and registry writes are enqueued after the result is assembled.
	ResolvePrices(ctx context.Context, chainID domain.ChainID, addresses []string, includeHistory bool) (domain.ChainTokenPrices, error)

	// RefreshChain reprices every known address on one chain and overwrites
	// the chain's cached price table
	RefreshChain(ctx context.Context, chainID domain.ChainID) error

	// RefreshAll refreshes every configured chain plus the native-token and
	// exchange-rate aggregates. Chain failures are isolated and reported.
	RefreshAll(ctx context.Context) Report

	// WaitForWrites blocks until every deferred cache write enqueued so far
	// has settled
	WaitForWrites()

	// Close drains the worker pool
	Close()
}

// Config wires the engine's collaborators
type Config struct {
	Chains      []domain.ChainID
	Resolver    redirect.Resolver
	Store       store.Store
	Decomposer  lp.Decomposer
	PriceSource pricesource.Client
	Clock       adapter.Clock

	WorkerPoolSize  int
	WorkerQueueSize int
}

// engine is the internal implementation of Engine
type engine struct {
	chains      []domain.ChainID
	supported   map[domain.ChainID]bool
	resolver    redirect.Resolver
	store       store.Store
	decomposer  lp.Decomposer
	priceSource pricesource.Client
	clock       adapter.Clock

	pool    pond.Pool
	writeWG sync.WaitGroup
}

// NewEngine creates the pricing engine over the given collaborators
func NewEngine(cfg Config) Engine {
	supported := make(map[domain.ChainID]bool, len(cfg.Chains))
	for _, chainID := range cfg.Chains {
		supported[chainID] = true
	}

	return &engine{
		chains:      cfg.Chains,
		supported:   supported,
		resolver:    cfg.Resolver,
		store:       cfg.Store,
		decomposer:  cfg.Decomposer,
		priceSource: cfg.PriceSource,
		clock:       cfg.Clock,
		pool: pond.NewPool(
			cfg.WorkerPoolSize,
			pond.WithQueueSize(cfg.WorkerQueueSize),
		),
	}
}

// AllPrices returns the latest cached price per token for every configured chain
func (e *engine) AllPrices(ctx context.Context) (domain.TokenPriceTable, error) {
	table := make(domain.TokenPriceTable, len(e.chains))
	for _, chainID := range e.chains {
		prices, _, err := e.store.GetChainPrices(ctx, chainID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrCacheUnavailable, err)
		}
		if len(prices) > 0 {
			table[chainID] = prices.LatestOnly()
		}
	}
	return table, nil
}

// ChainPrices returns the latest cached price per token for one chain
func (e *engine) ChainPrices(ctx context.Context, chainID domain.ChainID) (domain.ChainTokenPrices, error) {
	if !e.supported[chainID] {
		return nil, fmt.Errorf("%w: %s", domain.ErrChainNotSupported, chainID)
	}

	prices, _, err := e.store.GetChainPrices(ctx, chainID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCacheUnavailable, err)
	}
	return prices.LatestOnly(), nil
}

// target is a redirect-resolved pricing destination
type target struct {
	chain   domain.ChainID
	address string
}

// ResolvePrices prices exactly the requested addresses, resolving misses live
func (e *engine) ResolvePrices(ctx context.Context, chainID domain.ChainID, addresses []string, includeHistory bool) (domain.ChainTokenPrices, error) {
	if !e.supported[chainID] {
		return nil, fmt.Errorf("%w: %s", domain.ErrChainNotSupported, chainID)
	}

	// Invalid addresses are filtered out before any I/O. The native
	// pseudo-address is allowed through; the redirect table maps it onto a
	// real token.
	targets := make(map[string]target)
	for _, address := range addresses {
		address = domain.NormalizeAddress(address)
		if !domain.ValidAddress(address) {
			continue
		}
		targetChain, targetAddress := e.resolver.Resolve(chainID, address)
		targets[address] = target{chain: targetChain, address: targetAddress}
	}
	if len(targets) == 0 {
		return domain.ChainTokenPrices{}, nil
	}

	byChain := make(map[domain.ChainID][]string)
	seen := make(map[target]bool, len(targets))
	for _, t := range targets {
		if seen[t] {
			continue
		}
		seen[t] = true
		byChain[t.chain] = append(byChain[t.chain], t.address)
	}

	// Each target chain is resolved independently; one chain's failure only
	// drops that chain's tokens from the response.
	var mu sync.Mutex
	resolved := make(map[domain.ChainID]domain.ChainTokenPrices, len(byChain))
	group := e.pool.NewGroup()
	for targetChain, targetAddresses := range byChain {
		targetChain, targetAddresses := targetChain, targetAddresses
		group.Submit(func() {
			prices := e.resolveChainTargets(ctx, targetChain, targetAddresses)
			mu.Lock()
			resolved[targetChain] = prices
			mu.Unlock()
		})
	}
	_ = group.Wait()

	out := make(domain.ChainTokenPrices, len(targets))
	for original, t := range targets {
		history, ok := resolved[t.chain][t.address]
		if !ok || len(history) == 0 {
			continue
		}
		if includeHistory {
			out[original] = history
		} else {
			latest, _ := history.Latest()
			out[original] = domain.PriceHistory{latest}
		}
	}

	e.enqueueResolveWrites(chainID, targets, resolved)
	return out, nil
}

// resolveChainTargets prices a set of redirect-resolved addresses on one
// chain: cache hits first, then LP decomposition, then the external source.
// Failures degrade to omissions.
func (e *engine) resolveChainTargets(ctx context.Context, chainID domain.ChainID, addresses []string) domain.ChainTokenPrices {
	cached, _, err := e.store.GetChainPrices(ctx, chainID)
	if err != nil {
		// A per-token cache read failure is just a miss
		logger.WarnCtx(ctx, "cache read failed, resolving live",
			zap.String("chain", string(chainID)), zap.Error(err))
		cached = make(domain.ChainTokenPrices)
	}

	prices := make(domain.ChainTokenPrices, len(addresses))
	var misses []string
	for _, address := range addresses {
		if history, ok := cached[address]; ok && len(history) > 0 {
			prices[address] = history
		} else {
			misses = append(misses, address)
		}
	}
	if len(misses) == 0 {
		return prices
	}

	// The full cached table serves as underlying-price context so a pool's
	// constituents do not have to be requested themselves
	fresh := e.priceMisses(ctx, chainID, misses, cached)
	for address, history := range fresh {
		prices[address] = history
	}
	return prices
}

// priceMisses prices uncached addresses on one chain. known carries already
// resolved prices usable as LP underlying inputs.
func (e *engine) priceMisses(ctx context.Context, chainID domain.ChainID, misses []string, known domain.ChainTokenPrices) domain.ChainTokenPrices {
	fresh := make(domain.ChainTokenPrices)

	shapes, err := e.decomposer.Classify(ctx, chainID, misses)
	if err != nil {
		// Node unreachable or chain unsupported: no on-chain work possible
		// this cycle, but plain tokens can still go to the external source
		logger.WarnCtx(ctx, "classification unavailable, falling back to external source",
			zap.String("chain", string(chainID)), zap.Error(err))
		shapes = make(map[string]domain.PoolShape)
	}

	pools := make(map[string]domain.PoolShape)
	for _, address := range misses {
		if shape, ok := shapes[address]; ok && shape.IsPool() {
			pools[address] = shape
			continue
		}
		history, err := e.priceSource.GetPriceHistory(ctx, chainID, address)
		if err != nil || len(history) == 0 {
			// Unpriceable this cycle, eligible again on the next request
			logger.DebugCtx(ctx, "token omitted from cycle",
				zap.String("chain", string(chainID)), zap.String("address", address), zap.Error(err))
			continue
		}
		fresh[address] = history
	}

	if len(pools) == 0 {
		return fresh
	}

	compositions, err := e.decomposer.Decompose(ctx, chainID, pools)
	if err != nil {
		logger.WarnCtx(ctx, "pool decomposition failed",
			zap.String("chain", string(chainID)), zap.Error(err))
		return fresh
	}

	today := domain.Day(e.clock.Now())
	for address, comp := range compositions {
		underlyingPrices := e.underlyingPrices(ctx, chainID, comp, known, fresh)
		price, ok := pricing.LpUnitPrice(comp, underlyingPrices)
		if !ok {
			continue
		}
		fresh[address] = fresh[address].Upsert(domain.PricePoint{Date: today, Price: price})
	}
	return fresh
}

// underlyingPrices collects the latest unit price per underlying token,
// consulting already resolved prices first and the external source last.
// Externally fetched histories are recorded into fresh so they get cached too.
func (e *engine) underlyingPrices(ctx context.Context, chainID domain.ChainID, comp domain.LpComposition, known, fresh domain.ChainTokenPrices) map[string]float64 {
	out := make(map[string]float64, len(comp.Underlying))
	for _, underlying := range comp.Underlying {
		address := domain.NormalizeAddress(underlying.Address)

		history, ok := fresh[address]
		if !ok {
			history = known[address]
		}
		if len(history) == 0 {
			fetched, err := e.priceSourceHistory(ctx, chainID, address)
			if err != nil {
				continue
			}
			history = fetched
			fresh[address] = fetched
		}

		if latest, ok := history.Latest(); ok {
			out[address] = latest.Price
		}
	}
	return out
}

// priceSourceHistory fetches one token's history, normalizing empty results
// into errors
func (e *engine) priceSourceHistory(ctx context.Context, chainID domain.ChainID, address string) (domain.PriceHistory, error) {
	history, err := e.priceSource.GetPriceHistory(ctx, chainID, address)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("no price history for %s on chain %s", address, chainID)
	}
	return history, nil
}

// enqueueResolveWrites schedules the cache and registry writes that follow an
// on-demand resolution. The response does not wait for them.
func (e *engine) enqueueResolveWrites(requestChain domain.ChainID, targets map[string]target, resolved map[domain.ChainID]domain.ChainTokenPrices) {
	requested := make([]string, 0, len(targets))
	perChainTargets := make(map[domain.ChainID][]string)
	for original, t := range targets {
		requested = append(requested, original)
		perChainTargets[t.chain] = append(perChainTargets[t.chain], t.address)
	}

	e.enqueueWrite("register requested addresses", func(ctx context.Context) error {
		return e.store.AddKnownAddresses(ctx, requestChain, requested)
	})
	for targetChain, targetAddresses := range perChainTargets {
		targetChain, targetAddresses := targetChain, targetAddresses
		if !e.supported[targetChain] {
			continue
		}
		e.enqueueWrite("register redirect targets", func(ctx context.Context) error {
			return e.store.AddKnownAddresses(ctx, targetChain, targetAddresses)
		})
	}

	for targetChain, prices := range resolved {
		targetChain, prices := targetChain, prices
		if len(prices) == 0 {
			continue
		}
		e.enqueueWrite("persist resolved prices", func(ctx context.Context) error {
			current, _, err := e.store.GetChainPrices(ctx, targetChain)
			if err != nil {
				return err
			}
			return e.store.PutChainPrices(ctx, targetChain, current.Merge(prices))
		})
	}
}

// enqueueWrite runs a deferred cache write on the worker pool, detached from
// any request context. Failures are logged and dropped; the data is rebuilt
// by the next request or scheduled refresh.
func (e *engine) enqueueWrite(name string, write func(ctx context.Context) error) {
	e.writeWG.Add(1)
	e.pool.Go(func() {
		defer e.writeWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := write(ctx); err != nil {
			logger.Warn("deferred cache write failed",
				zap.String("write", name), zap.Error(err))
		}
	})
}

// RefreshChain reprices every known address on one chain
func (e *engine) RefreshChain(ctx context.Context, chainID domain.ChainID) error {
	known, err := e.store.GetKnownAddresses(ctx, chainID)
	if err != nil {
		return fmt.Errorf("failed to load address registry for chain %s: %w", chainID, err)
	}
	if len(known) == 0 {
		return nil
	}

	cached, _, err := e.store.GetChainPrices(ctx, chainID)
	if err != nil {
		logger.WarnCtx(ctx, "cache read failed, rebuilding chain prices from scratch",
			zap.String("chain", string(chainID)), zap.Error(err))
		cached = make(domain.ChainTokenPrices)
	}

	shapes, err := e.decomposer.Classify(ctx, chainID, known)
	if err != nil {
		return fmt.Errorf("failed to classify chain %s: %w", chainID, err)
	}

	updated := cached.Merge(nil)
	pools := make(map[string]domain.PoolShape)
	for _, address := range known {
		address = domain.NormalizeAddress(address)
		if shape, ok := shapes[address]; ok && shape.IsPool() {
			pools[address] = shape
			continue
		}
		history, err := e.priceSourceHistory(ctx, chainID, address)
		if err != nil {
			logger.DebugCtx(ctx, "token skipped this refresh",
				zap.String("chain", string(chainID)), zap.String("address", address), zap.Error(err))
			continue
		}
		updated = updated.Merge(domain.ChainTokenPrices{address: history})
	}

	if len(pools) > 0 {
		compositions, err := e.decomposer.Decompose(ctx, chainID, pools)
		if err != nil {
			return fmt.Errorf("failed to decompose pools on chain %s: %w", chainID, err)
		}

		today := domain.Day(e.clock.Now())
		for address, comp := range compositions {
			fetched := make(domain.ChainTokenPrices)
			underlyingPrices := e.underlyingPrices(ctx, chainID, comp, updated, fetched)
			updated = updated.Merge(fetched)

			price, ok := pricing.LpUnitPrice(comp, underlyingPrices)
			if !ok {
				continue
			}
			updated = updated.Merge(domain.ChainTokenPrices{
				address: {domain.PricePoint{Date: today, Price: price}},
			})
		}
	}

	if err := e.store.PutChainPrices(ctx, chainID, updated); err != nil {
		return fmt.Errorf("failed to persist prices for chain %s: %w", chainID, err)
	}
	return nil
}

// RefreshAll refreshes every configured chain and the shared aggregates
func (e *engine) RefreshAll(ctx context.Context) Report {
	report := Report{Failed: make(map[domain.ChainID]error)}

	var mu sync.Mutex
	group := e.pool.NewGroup()
	for _, chainID := range e.chains {
		chainID := chainID
		group.Submit(func() {
			err := e.RefreshChain(ctx, chainID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.ErrorCtx(ctx, err, zap.String("chain", string(chainID)))
				report.Failed[chainID] = err
			} else {
				report.Succeeded = append(report.Succeeded, chainID)
			}
		})
	}
	_ = group.Wait()

	e.refreshSimplePrices(ctx)
	e.refreshExchangeRates(ctx)
	return report
}

// refreshSimplePrices reprices each chain's gas token via its redirect target
func (e *engine) refreshSimplePrices(ctx context.Context) {
	simple := make(map[domain.ChainID]domain.PriceHistory, len(e.chains))
	for _, chainID := range e.chains {
		targetChain, targetAddress := e.resolver.Resolve(chainID, NativeTokenAddress)
		if targetAddress == NativeTokenAddress {
			// No canonical wrapped token configured for this chain
			continue
		}
		history, err := e.priceSourceHistory(ctx, targetChain, targetAddress)
		if err != nil {
			logger.WarnCtx(ctx, "native token price unavailable",
				zap.String("chain", string(chainID)), zap.Error(err))
			continue
		}
		simple[chainID] = history
	}

	if len(simple) == 0 {
		return
	}
	if err := e.store.PutSimplePrices(ctx, simple); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist native token prices: %w", err))
	}
}

// refreshExchangeRates refetches and persists the fiat conversion table
func (e *engine) refreshExchangeRates(ctx context.Context) {
	rates, err := e.priceSource.GetExchangeRates(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "exchange rates unavailable", zap.Error(err))
		return
	}
	if err := e.store.PutExchangeRates(ctx, rates); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist exchange rates: %w", err))
	}
}

// WaitForWrites blocks until every deferred write enqueued so far has settled
func (e *engine) WaitForWrites() {
	e.writeWG.Wait()
}

// Close drains the worker pool
func (e *engine) Close() {
	e.pool.StopAndWait()
}
