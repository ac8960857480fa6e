package pricesource

import (
	"context"
	"fmt"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/ratelimit"
)

const PROVIDER_NAME = "pricesource"

// HistoryResponse is the provider's daily price series for one token
type HistoryResponse struct {
	Chain   string             `json:"chain"`
	Address string             `json:"address"`
	Prices  []domain.PricePoint `json:"prices"`
}

// ExchangeRatesResponse is the provider's fiat conversion table
type ExchangeRatesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Client defines the interface for the external price source to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/pricesource_client.go -package=mocks -mock_names=Client=MockPriceSourceClient
type Client interface {
	// GetPriceHistory fetches the daily price series for a (chain, address)
	// pair, most recent day first
	GetPriceHistory(ctx context.Context, chainID domain.ChainID, address string) (domain.PriceHistory, error)

	// GetExchangeRates fetches the fiat conversion table
	GetExchangeRates(ctx context.Context) (map[string]float64, error)
}

// PriceSourceClient implements the external price source connector
type PriceSourceClient struct {
	httpClient adapter.HTTPClient
	apiURL     string
	json       adapter.JSON
	limiter    ratelimit.Limiter
}

// NewClient creates a new price source client. A nil limiter disables
// outbound throttling.
func NewClient(httpClient adapter.HTTPClient, apiURL string, json adapter.JSON, limiter ratelimit.Limiter) Client {
	return &PriceSourceClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		json:       json,
		limiter:    limiter,
	}
}

// get performs one rate-limited GET against the provider
func (c *PriceSourceClient) get(ctx context.Context, url string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx, PROVIDER_NAME); err != nil {
			return nil, fmt.Errorf("rate limit wait aborted: %w", err)
		}
	}
	return c.httpClient.GetBytes(ctx, url, nil)
}

// GetPriceHistory fetches the daily price series for a (chain, address) pair
func (c *PriceSourceClient) GetPriceHistory(ctx context.Context, chainID domain.ChainID, address string) (domain.PriceHistory, error) {
	url := fmt.Sprintf("%s/prices/%s/%s", c.apiURL, chainID, domain.NormalizeAddress(address))

	respBody, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to call price source: %w", err)
	}

	var response HistoryResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal price source response: %w", err)
	}

	return domain.PriceHistory(response.Prices), nil
}

// GetExchangeRates fetches the fiat conversion table
func (c *PriceSourceClient) GetExchangeRates(ctx context.Context) (map[string]float64, error) {
	url := fmt.Sprintf("%s/exchange-rates", c.apiURL)

	respBody, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to call price source: %w", err)
	}

	var response ExchangeRatesResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exchange rates response: %w", err)
	}

	return response.Rates, nil
}
