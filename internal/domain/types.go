package domain

import (
	"math/big"
	"regexp"
	"strings"
	"time"
)

// DateFormat is the calendar-day key used throughout the price history model
const DateFormat = "2006-01-02"

// ChainID identifies a supported EVM network by its numeric chain ID, e.g. "1" for mainnet
type ChainID string

var chainIDPattern = regexp.MustCompile(`^[0-9]+$`)

// Valid reports whether the chain ID is a well-formed numeric identifier
func (c ChainID) Valid() bool {
	return chainIDPattern.MatchString(string(c))
}

// PricePoint is a single daily price observation in the reference currency
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// PriceHistory is an ordered sequence of PricePoint, descending by date,
// with at most one entry per calendar day
type PriceHistory []PricePoint

// Latest returns the most recent price point, or false when the history is empty
func (h PriceHistory) Latest() (PricePoint, bool) {
	if len(h) == 0 {
		return PricePoint{}, false
	}
	return h[0], true
}

// Upsert inserts a price point keyed by its calendar day. An existing entry for
// the same day is overwritten in place (last writer wins); otherwise the point
// is inserted at its descending-date position. The receiver is not mutated.
func (h PriceHistory) Upsert(p PricePoint) PriceHistory {
	for i, existing := range h {
		if existing.Date == p.Date {
			out := make(PriceHistory, len(h))
			copy(out, h)
			out[i] = p
			return out
		}
	}

	out := make(PriceHistory, 0, len(h)+1)
	inserted := false
	for _, existing := range h {
		if !inserted && existing.Date < p.Date {
			out = append(out, p)
			inserted = true
		}
		out = append(out, existing)
	}
	if !inserted {
		out = append(out, p)
	}
	return out
}

// ChainTokenPrices maps a lowercase token address to its price history.
// A missing key means "not yet priced", never "priced at zero".
type ChainTokenPrices map[string]PriceHistory

// LatestOnly returns a copy trimmed to the most recent price point per token
func (p ChainTokenPrices) LatestOnly() ChainTokenPrices {
	out := make(ChainTokenPrices, len(p))
	for addr, history := range p {
		if latest, ok := history.Latest(); ok {
			out[addr] = PriceHistory{latest}
		}
	}
	return out
}

// Merge upserts every price point of other into a copy of p
func (p ChainTokenPrices) Merge(other ChainTokenPrices) ChainTokenPrices {
	out := make(ChainTokenPrices, len(p)+len(other))
	for addr, history := range p {
		out[addr] = history
	}
	for addr, history := range other {
		merged := out[addr]
		for i := len(history) - 1; i >= 0; i-- {
			merged = merged.Upsert(history[i])
		}
		out[addr] = merged
	}
	return out
}

// TokenPriceTable is the top-level cached object: chain ID to per-chain prices
type TokenPriceTable map[ChainID]ChainTokenPrices

// RedirectEntry maps a token onto the canonical (possibly cross-chain) token
// whose price is used as a stand-in
type RedirectEntry struct {
	SourceChain   ChainID `json:"sourceChain"`
	SourceAddress string  `json:"sourceAddress"`
	TargetChain   ChainID `json:"targetChain"`
	TargetAddress string  `json:"targetAddress"`
}

// UnderlyingToken is one reserve asset of a liquidity pool
type UnderlyingToken struct {
	Address  string
	Decimals uint8
	Reserve  *big.Int
}

// LpComposition is the decomposed structure of a liquidity-pool token.
// Underlying holds between 2 and 4 entries.
type LpComposition struct {
	Underlying  []UnderlyingToken
	LpDecimals  uint8
	TotalSupply *big.Int
}

// PoolKind tags the structural classification of a candidate address
type PoolKind string

const (
	PoolKindNone   PoolKind = "none"   // plain token, not a pool
	PoolKindPair   PoolKind = "pair"   // two-asset AMM pair (token0/token1)
	PoolKindStable PoolKind = "stable" // multi-asset pool (coins(i), 2-4 assets)
)

// PoolShape is the persisted classification of an address: its kind and, for
// pools, the ordered list of underlying token addresses
type PoolShape struct {
	Kind       PoolKind `json:"kind"`
	Underlying []string `json:"underlying,omitempty"`
}

// IsPool reports whether the shape describes a priceable liquidity pool
func (s PoolShape) IsPool() bool {
	return s.Kind == PoolKindPair || s.Kind == PoolKindStable
}

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidAddress reports whether s is a well-formed 20-byte hex address
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// NormalizeAddress lowercases an address so it can be used as a cache key
func NormalizeAddress(s string) string {
	return strings.ToLower(s)
}

// Day formats a point in time as the calendar-day key
func Day(t time.Time) string {
	return t.UTC().Format(DateFormat)
}
