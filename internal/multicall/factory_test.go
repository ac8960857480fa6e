package multicall_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/mocks"
	"github.com/chainfolio/price-indexer/internal/multicall"
)

func TestClientFactory_CallerFor_DialsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDialer := mocks.NewMockEthClientDialer(ctrl)
	mockClient := mocks.NewMockEthClient(ctrl)

	factory := multicall.NewClientFactory(mockDialer, map[domain.ChainID]multicall.Endpoint{
		"1": {RPCURL: "https://rpc.example.com"},
	}, 10*time.Second)

	// The node is dialed lazily and exactly once
	mockDialer.EXPECT().
		Dial(gomock.Any(), "https://rpc.example.com").
		Return(mockClient, nil).
		Times(1)

	first, err := factory.CallerFor(context.Background(), "1")
	require.NoError(t, err)
	second, err := factory.CallerFor(context.Background(), "1")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestClientFactory_CallerFor_UnknownChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDialer := mocks.NewMockEthClientDialer(ctrl)
	factory := multicall.NewClientFactory(mockDialer, map[domain.ChainID]multicall.Endpoint{
		"1": {RPCURL: "https://rpc.example.com"},
	}, 10*time.Second)

	_, err := factory.CallerFor(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrChainNotSupported)
}

func TestClientFactory_CallerFor_DialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDialer := mocks.NewMockEthClientDialer(ctrl)
	factory := multicall.NewClientFactory(mockDialer, map[domain.ChainID]multicall.Endpoint{
		"1": {RPCURL: "https://rpc.example.com"},
	}, 10*time.Second)

	mockDialer.EXPECT().
		Dial(gomock.Any(), "https://rpc.example.com").
		Return(nil, errors.New("no route to host"))

	_, err := factory.CallerFor(context.Background(), "1")
	assert.Error(t, err)
}

func TestClientFactory_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDialer := mocks.NewMockEthClientDialer(ctrl)
	mockClient := mocks.NewMockEthClient(ctrl)

	factory := multicall.NewClientFactory(mockDialer, map[domain.ChainID]multicall.Endpoint{
		"1": {RPCURL: "https://rpc.example.com"},
	}, 10*time.Second)

	mockDialer.EXPECT().
		Dial(gomock.Any(), "https://rpc.example.com").
		Return(mockClient, nil).
		Times(2)
	mockClient.EXPECT().Close().Times(1)

	_, err := factory.CallerFor(context.Background(), "1")
	require.NoError(t, err)
	factory.Close()

	// A closed factory redials on the next use
	_, err = factory.CallerFor(context.Background(), "1")
	require.NoError(t, err)
}
