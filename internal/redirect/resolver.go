package redirect

import (
	"encoding/json"
	"fmt"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/domain"
)

// Resolver maps a (chain, address) pair onto the canonical pair to price
// instead. Absence of a mapping is a normal "no redirect" result.
//
//go:generate mockgen -source=resolver.go -destination=../mocks/redirect_resolver.go -package=mocks -mock_names=Resolver=MockRedirectResolver
type Resolver interface {
	// Resolve returns the canonical (chain, address) for the given token, or
	// the input unchanged when no redirect is configured. Resolution is a
	// single hop: a redirect target is never itself re-resolved.
	Resolve(chainID domain.ChainID, address string) (domain.ChainID, string)
}

// resolver is the internal implementation of Resolver
type resolver struct {
	// Lookup map: "chain:address" -> entry
	entries map[string]domain.RedirectEntry
}

// NewResolver builds a resolver from a redirect table
func NewResolver(entries []domain.RedirectEntry) Resolver {
	r := &resolver{entries: make(map[string]domain.RedirectEntry, len(entries))}
	for _, e := range entries {
		key := redirectKey(e.SourceChain, e.SourceAddress)
		r.entries[key] = e
	}
	return r
}

// LoadTable loads a redirect table from a JSON file holding an array of entries
func LoadTable(fs adapter.FileSystem, filePath string) (Resolver, error) {
	data, err := fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read redirect table: %w", err)
	}

	var entries []domain.RedirectEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse redirect table JSON: %w", err)
	}

	return NewResolver(entries), nil
}

// Resolve returns the canonical (chain, address) for the given token
func (r *resolver) Resolve(chainID domain.ChainID, address string) (domain.ChainID, string) {
	address = domain.NormalizeAddress(address)
	entry, ok := r.entries[redirectKey(chainID, address)]
	if !ok {
		return chainID, address
	}
	return entry.TargetChain, domain.NormalizeAddress(entry.TargetAddress)
}

func redirectKey(chainID domain.ChainID, address string) string {
	return fmt.Sprintf("%s:%s", chainID, domain.NormalizeAddress(address))
}
