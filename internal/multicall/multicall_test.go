package multicall_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/mocks"
	"github.com/chainfolio/price-indexer/internal/multicall"
)

func TestCaller_Aggregate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockEthClient(ctrl)
	contract := common.HexToAddress(multicall.DefaultContract)
	caller := multicall.NewCaller(mockClient, contract, 10*time.Second)

	token := common.HexToAddress("0x1f9840a85d5af5bf1d1762f925bdaddc4201f984")
	calls := []multicall.Call{
		{Target: token, CallData: multicall.PackDecimals()},
		{Target: token, CallData: multicall.PackTotalSupply()},
	}

	output, err := multicall.PackAggregateOutput([]multicall.Result{
		{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(18))},
		{Success: true, ReturnData: multicall.PackUintOutput(big.NewInt(1000))},
	})
	require.NoError(t, err)

	mockClient.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			assert.Equal(t, &contract, msg.To)
			assert.NotEmpty(t, msg.Data)
			return output, nil
		})

	results, err := caller.Aggregate(context.Background(), calls)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)

	supply, err := multicall.UnpackUint(results[1].ReturnData)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), supply)
}

func TestCaller_Aggregate_PerCallRevert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockEthClient(ctrl)
	caller := multicall.NewCaller(mockClient, common.HexToAddress(multicall.DefaultContract), 10*time.Second)

	token := common.HexToAddress("0x1f9840a85d5af5bf1d1762f925bdaddc4201f984")
	calls := []multicall.Call{
		{Target: token, CallData: multicall.PackToken0()},
		{Target: token, CallData: multicall.PackCoins(3)},
	}

	// One call reverts; its sibling is unaffected
	output, err := multicall.PackAggregateOutput([]multicall.Result{
		{Success: true, ReturnData: multicall.PackAddressOutput(token)},
		{Success: false, ReturnData: nil},
	})
	require.NoError(t, err)

	mockClient.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), nil).
		Return(output, nil)

	results, err := caller.Aggregate(context.Background(), calls)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Empty(t, results[1].ReturnData)
}

func TestCaller_Aggregate_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockEthClient(ctrl)
	caller := multicall.NewCaller(mockClient, common.HexToAddress(multicall.DefaultContract), 10*time.Second)

	mockClient.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), nil).
		Return(nil, errors.New("connection refused"))

	results, err := caller.Aggregate(context.Background(), []multicall.Call{
		{Target: common.HexToAddress("0x1f9840a85d5af5bf1d1762f925bdaddc4201f984"), CallData: multicall.PackDecimals()},
	})

	assert.Nil(t, results)
	assert.ErrorIs(t, err, domain.ErrBatchFailed)
}

func TestCaller_Aggregate_EmptyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockEthClient(ctrl)
	caller := multicall.NewCaller(mockClient, common.HexToAddress(multicall.DefaultContract), 10*time.Second)

	results, err := caller.Aggregate(context.Background(), nil)

	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestUnpackAddress(t *testing.T) {
	addr := common.HexToAddress("0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2")

	decoded, err := multicall.UnpackAddress(multicall.PackAddressOutput(addr))
	require.NoError(t, err)
	assert.Equal(t, addr, decoded)
}

func TestUnpackDecimals(t *testing.T) {
	decimals, err := multicall.UnpackDecimals(multicall.PackUintOutput(big.NewInt(6)))
	require.NoError(t, err)
	assert.Equal(t, uint8(6), decimals)
}

func TestUnpackReserves(t *testing.T) {
	reserve0, reserve1, err := multicall.UnpackReserves(
		multicall.PackReservesOutput(big.NewInt(1000), big.NewInt(2000)))

	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), reserve0)
	assert.Equal(t, big.NewInt(2000), reserve1)
}
