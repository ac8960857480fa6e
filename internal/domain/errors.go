package domain

import "errors"

var (
	// ErrChainNotSupported is returned when a request names a chain with no configured RPC endpoint
	ErrChainNotSupported = errors.New("chain not supported")

	// ErrBatchFailed is returned when a multicall round-trip fails at the transport level,
	// voiding every call in the batch
	ErrBatchFailed = errors.New("batch call failed")

	// ErrCacheUnavailable is returned when the cache store itself cannot be read
	ErrCacheUnavailable = errors.New("cache unavailable")
)
