package multicall

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/domain"
)

// Endpoint describes one chain's node and aggregator contract
type Endpoint struct {
	RPCURL    string
	Multicall string // empty means DefaultContract
}

// ClientFactory hands out a batch Caller per supported chain
//
//go:generate mockgen -source=factory.go -destination=../mocks/multicall_factory.go -package=mocks -mock_names=ClientFactory=MockClientFactory
type ClientFactory interface {
	// CallerFor returns the batch caller for a chain, dialing the node on
	// first use. Unknown chains return domain.ErrChainNotSupported.
	CallerFor(ctx context.Context, chainID domain.ChainID) (Caller, error)

	// Close closes every dialed client
	Close()
}

// clientFactory lazily dials and caches one client per chain
type clientFactory struct {
	dialer    adapter.EthClientDialer
	endpoints map[domain.ChainID]Endpoint
	timeout   time.Duration

	mu      sync.Mutex
	clients map[domain.ChainID]adapter.EthClient
	callers map[domain.ChainID]Caller
}

// NewClientFactory creates a factory over the configured chain endpoints
func NewClientFactory(dialer adapter.EthClientDialer, endpoints map[domain.ChainID]Endpoint, timeout time.Duration) ClientFactory {
	return &clientFactory{
		dialer:    dialer,
		endpoints: endpoints,
		timeout:   timeout,
		clients:   make(map[domain.ChainID]adapter.EthClient),
		callers:   make(map[domain.ChainID]Caller),
	}
}

// CallerFor returns the batch caller for a chain, dialing the node on first use
func (f *clientFactory) CallerFor(ctx context.Context, chainID domain.ChainID) (Caller, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if caller, ok := f.callers[chainID]; ok {
		return caller, nil
	}

	endpoint, ok := f.endpoints[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrChainNotSupported, chainID)
	}

	client, err := f.dialer.Dial(ctx, endpoint.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain %s: %w", chainID, err)
	}

	contract := endpoint.Multicall
	if contract == "" {
		contract = DefaultContract
	}

	caller := NewCaller(client, common.HexToAddress(contract), f.timeout)
	f.clients[chainID] = client
	f.callers[chainID] = caller
	return caller, nil
}

// Close closes every dialed client
func (f *clientFactory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for chainID, client := range f.clients {
		client.Close()
		delete(f.clients, chainID)
		delete(f.callers, chainID)
	}
}
