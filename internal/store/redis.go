package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/domain"
)

const (
	keySimplePrices  = "prices:simple"
	keyExchangeRates = "prices:exchangeRates"
)

func keyChainPrices(chainID domain.ChainID) string {
	return fmt.Sprintf("prices:%s", chainID)
}

func keyKnownAddresses(chainID domain.ChainID) string {
	return fmt.Sprintf("addresses:%s", chainID)
}

func keyPoolShapes(chainID domain.ChainID) string {
	return fmt.Sprintf("lp:%s", chainID)
}

// envelope wraps every cached value with its write metadata
type envelope struct {
	Value       json.RawMessage `json:"value"`
	LastUpdated string          `json:"lastUpdated"`
}

// redisStore implements Store over two Redis namespaces: one for prices and
// registries, one for the LP classification cache
type redisStore struct {
	kv    adapter.RedisClient // prices, registries
	lp    adapter.RedisClient // pool classifications
	json  adapter.JSON
	clock adapter.Clock
}

// NewRedisStore creates a Store over the given Redis clients
func NewRedisStore(kv, lp adapter.RedisClient, jsonAdapter adapter.JSON, clock adapter.Clock) Store {
	return &redisStore{kv: kv, lp: lp, json: jsonAdapter, clock: clock}
}

// getEnveloped reads and unwraps a cached value. A cold key leaves target
// untouched and returns a nil Meta.
func (s *redisStore) getEnveloped(ctx context.Context, client adapter.RedisClient, key string, target interface{}) (*Meta, error) {
	raw, ok, err := client.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}

	var env envelope
	if err := s.json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	if err := s.json.Unmarshal(env.Value, target); err != nil {
		return nil, fmt.Errorf("failed to decode %s value: %w", key, err)
	}

	meta := &Meta{}
	if env.LastUpdated != "" {
		if t, err := time.Parse(time.RFC3339, env.LastUpdated); err == nil {
			meta.LastUpdated = t
		}
	}
	return meta, nil
}

// putEnveloped wraps and writes a cached value with fresh metadata
func (s *redisStore) putEnveloped(ctx context.Context, client adapter.RedisClient, key string, value interface{}) error {
	payload, err := s.json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s value: %w", key, err)
	}

	env := envelope{
		Value:       payload,
		LastUpdated: s.clock.Now().UTC().Format(time.RFC3339),
	}
	raw, err := s.json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := client.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// GetChainPrices reads the per-chain token price table
func (s *redisStore) GetChainPrices(ctx context.Context, chainID domain.ChainID) (domain.ChainTokenPrices, *Meta, error) {
	prices := make(domain.ChainTokenPrices)
	meta, err := s.getEnveloped(ctx, s.kv, keyChainPrices(chainID), &prices)
	if err != nil {
		return nil, nil, err
	}
	return prices, meta, nil
}

// PutChainPrices overwrites the per-chain token price table
func (s *redisStore) PutChainPrices(ctx context.Context, chainID domain.ChainID, prices domain.ChainTokenPrices) error {
	return s.putEnveloped(ctx, s.kv, keyChainPrices(chainID), prices)
}

// GetSimplePrices reads the native/reference-token price table
func (s *redisStore) GetSimplePrices(ctx context.Context) (map[domain.ChainID]domain.PriceHistory, *Meta, error) {
	prices := make(map[domain.ChainID]domain.PriceHistory)
	meta, err := s.getEnveloped(ctx, s.kv, keySimplePrices, &prices)
	if err != nil {
		return nil, nil, err
	}
	return prices, meta, nil
}

// PutSimplePrices overwrites the native/reference-token price table
func (s *redisStore) PutSimplePrices(ctx context.Context, prices map[domain.ChainID]domain.PriceHistory) error {
	return s.putEnveloped(ctx, s.kv, keySimplePrices, prices)
}

// GetExchangeRates reads the fiat conversion table
func (s *redisStore) GetExchangeRates(ctx context.Context) (map[string]float64, *Meta, error) {
	rates := make(map[string]float64)
	meta, err := s.getEnveloped(ctx, s.kv, keyExchangeRates, &rates)
	if err != nil {
		return nil, nil, err
	}
	return rates, meta, nil
}

// PutExchangeRates overwrites the fiat conversion table
func (s *redisStore) PutExchangeRates(ctx context.Context, rates map[string]float64) error {
	return s.putEnveloped(ctx, s.kv, keyExchangeRates, rates)
}

// GetKnownAddresses reads the per-chain known-address registry
func (s *redisStore) GetKnownAddresses(ctx context.Context, chainID domain.ChainID) ([]string, error) {
	raw, ok, err := s.kv.Get(ctx, keyKnownAddresses(chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to read address registry for chain %s: %w", chainID, err)
	}
	if !ok {
		return nil, nil
	}

	var addresses []string
	if err := s.json.Unmarshal([]byte(raw), &addresses); err != nil {
		return nil, fmt.Errorf("failed to decode address registry for chain %s: %w", chainID, err)
	}
	return addresses, nil
}

// AddKnownAddresses appends addresses to the per-chain registry, deduplicated
func (s *redisStore) AddKnownAddresses(ctx context.Context, chainID domain.ChainID, addresses []string) error {
	existing, err := s.GetKnownAddresses(ctx, chainID)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(addresses))
	for _, address := range existing {
		seen[address] = true
		merged = append(merged, address)
	}

	added := false
	for _, address := range addresses {
		address = domain.NormalizeAddress(address)
		if seen[address] {
			continue
		}
		seen[address] = true
		merged = append(merged, address)
		added = true
	}
	if !added {
		return nil
	}

	raw, err := s.json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode address registry for chain %s: %w", chainID, err)
	}
	if err := s.kv.Set(ctx, keyKnownAddresses(chainID), string(raw)); err != nil {
		return fmt.Errorf("failed to write address registry for chain %s: %w", chainID, err)
	}
	return nil
}

// GetPoolShapes reads the per-chain LP classification cache
func (s *redisStore) GetPoolShapes(ctx context.Context, chainID domain.ChainID) (map[string]domain.PoolShape, error) {
	raw, ok, err := s.lp.Get(ctx, keyPoolShapes(chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to read classifications for chain %s: %w", chainID, err)
	}
	shapes := make(map[string]domain.PoolShape)
	if !ok {
		return shapes, nil
	}

	if err := s.json.Unmarshal([]byte(raw), &shapes); err != nil {
		return nil, fmt.Errorf("failed to decode classifications for chain %s: %w", chainID, err)
	}
	return shapes, nil
}

// PutPoolShapes overwrites the per-chain LP classification cache
func (s *redisStore) PutPoolShapes(ctx context.Context, chainID domain.ChainID, shapes map[string]domain.PoolShape) error {
	raw, err := s.json.Marshal(shapes)
	if err != nil {
		return fmt.Errorf("failed to encode classifications for chain %s: %w", chainID, err)
	}
	if err := s.lp.Set(ctx, keyPoolShapes(chainID), string(raw)); err != nil {
		return fmt.Errorf("failed to write classifications for chain %s: %w", chainID, err)
	}
	return nil
}

// Ping checks both underlying namespaces are reachable
func (s *redisStore) Ping(ctx context.Context) error {
	if err := s.kv.Ping(ctx); err != nil {
		return fmt.Errorf("price namespace unreachable: %w", err)
	}
	if err := s.lp.Ping(ctx); err != nil {
		return fmt.Errorf("classification namespace unreachable: %w", err)
	}
	return nil
}
