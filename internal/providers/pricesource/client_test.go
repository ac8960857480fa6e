package pricesource_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/logger"
	"github.com/chainfolio/price-indexer/internal/mocks"
	"github.com/chainfolio/price-indexer/internal/providers/pricesource"
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

func TestClient_GetPriceHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := pricesource.NewClient(mockHTTPClient, "https://prices.example.com", adapter.NewJSON(), nil)

	ctx := context.Background()
	responseJSON := []byte(`{
		"chain": "1",
		"address": "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984",
		"prices": [
			{"date": "2024-01-02", "price": 6.7},
			{"date": "2024-01-01", "price": 6.5}
		]
	}`)

	// The requested address is lowercased before it reaches the provider
	expectedURL := "https://prices.example.com/prices/1/0x1f9840a85d5af5bf1d1762f925bdaddc4201f984"
	mockHTTPClient.EXPECT().
		GetBytes(ctx, expectedURL, gomock.Nil()).
		Return(responseJSON, nil)

	history, err := client.GetPriceHistory(ctx, "1", "0x1F9840a85d5aF5bf1D1762F925BDADdC4201F984")

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-01-02", history[0].Date)
	assert.Equal(t, 6.7, history[0].Price)
}

func TestClient_GetPriceHistory_ProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := pricesource.NewClient(mockHTTPClient, "https://prices.example.com", adapter.NewJSON(), nil)

	mockHTTPClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil, errors.New("status 503"))

	_, err := client.GetPriceHistory(context.Background(), "1", "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984")
	assert.Error(t, err)
}

func TestClient_GetPriceHistory_MalformedResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := pricesource.NewClient(mockHTTPClient, "https://prices.example.com", adapter.NewJSON(), nil)

	mockHTTPClient.EXPECT().
		GetBytes(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return([]byte("<html>gateway timeout</html>"), nil)

	_, err := client.GetPriceHistory(context.Background(), "1", "0x1f9840a85d5af5bf1d1762f925bdaddc4201f984")
	assert.Error(t, err)
}

func TestClient_GetExchangeRates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHTTPClient := mocks.NewMockHTTPClient(ctrl)
	client := pricesource.NewClient(mockHTTPClient, "https://prices.example.com", adapter.NewJSON(), nil)

	ctx := context.Background()
	responseJSON := []byte(`{"rates": {"EUR": 0.92, "GBP": 0.79}}`)

	mockHTTPClient.EXPECT().
		GetBytes(ctx, "https://prices.example.com/exchange-rates", gomock.Nil()).
		Return(responseJSON, nil)

	rates, err := client.GetExchangeRates(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"EUR": 0.92, "GBP": 0.79}, rates)
}
