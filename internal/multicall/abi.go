package multicall

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Multicall3 aggregate3((address,bool,bytes)[]) returns ((bool,bytes)[])
const multicallABIJSON = `[{"inputs":[{"components":[{"internalType":"address","name":"target","type":"address"},{"internalType":"bool","name":"allowFailure","type":"bool"},{"internalType":"bytes","name":"callData","type":"bytes"}],"internalType":"struct Multicall3.Call3[]","name":"calls","type":"tuple[]"}],"name":"aggregate3","outputs":[{"components":[{"internalType":"bool","name":"success","type":"bool"},{"internalType":"bytes","name":"returnData","type":"bytes"}],"internalType":"struct Multicall3.Result[]","name":"returnData","type":"tuple[]"}],"stateMutability":"payable","type":"function"}]`

// Read-only fragments of the ERC20, AMM-pair and multi-asset pool ABIs used by
// the classification probes and reserve reads
const probeABIJSON = `[
{"constant":true,"inputs":[],"name":"token0","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"token1","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"i","type":"uint256"}],"name":"coins","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"getReserves","outputs":[{"name":"reserve0","type":"uint112"},{"name":"reserve1","type":"uint112"},{"name":"blockTimestampLast","type":"uint32"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"i","type":"uint256"}],"name":"balances","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var (
	multicallABI abi.ABI
	probeABI     abi.ABI
)

func init() {
	multicallABI = mustABI(multicallABIJSON)
	probeABI = mustABI(probeABIJSON)
}

func mustABI(abiJSON string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded ABI: %v", err))
	}
	return parsed
}

// mustPack packs a call against the static probe ABI. The ABI is embedded and
// argument types are fixed, so packing cannot fail at runtime.
func mustPack(method string, args ...interface{}) []byte {
	data, err := probeABI.Pack(method, args...)
	if err != nil {
		panic(fmt.Sprintf("failed to pack %s: %v", method, err))
	}
	return data
}

// PackToken0 encodes token0()
func PackToken0() []byte { return mustPack("token0") }

// PackToken1 encodes token1()
func PackToken1() []byte { return mustPack("token1") }

// PackCoins encodes coins(i)
func PackCoins(i int64) []byte { return mustPack("coins", big.NewInt(i)) }

// PackDecimals encodes decimals()
func PackDecimals() []byte { return mustPack("decimals") }

// PackTotalSupply encodes totalSupply()
func PackTotalSupply() []byte { return mustPack("totalSupply") }

// PackGetReserves encodes getReserves()
func PackGetReserves() []byte { return mustPack("getReserves") }

// PackBalances encodes balances(i)
func PackBalances(i int64) []byte { return mustPack("balances", big.NewInt(i)) }

// UnpackAddress decodes a single address return value from token0/token1/coins
func UnpackAddress(data []byte) (common.Address, error) {
	var addr common.Address
	if err := probeABI.UnpackIntoInterface(&addr, "token0", data); err != nil {
		return common.Address{}, fmt.Errorf("failed to unpack address: %w", err)
	}
	return addr, nil
}

// UnpackDecimals decodes a decimals() return value
func UnpackDecimals(data []byte) (uint8, error) {
	var decimals uint8
	if err := probeABI.UnpackIntoInterface(&decimals, "decimals", data); err != nil {
		return 0, fmt.Errorf("failed to unpack decimals: %w", err)
	}
	return decimals, nil
}

// UnpackUint decodes a single uint256 return value from totalSupply/balances
func UnpackUint(data []byte) (*big.Int, error) {
	var value *big.Int
	if err := probeABI.UnpackIntoInterface(&value, "totalSupply", data); err != nil {
		return nil, fmt.Errorf("failed to unpack uint256: %w", err)
	}
	return value, nil
}

// UnpackReserves decodes a getReserves() return value into the two reserve amounts
func UnpackReserves(data []byte) (*big.Int, *big.Int, error) {
	values, err := probeABI.Unpack("getReserves", data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unpack getReserves: %w", err)
	}
	reserve0 := *abi.ConvertType(values[0], new(*big.Int)).(**big.Int)
	reserve1 := *abi.ConvertType(values[1], new(*big.Int)).(**big.Int)
	return reserve0, reserve1, nil
}

// PackAddressOutput encodes an address as a call return value; used by tests
func PackAddressOutput(addr common.Address) []byte {
	return common.LeftPadBytes(addr.Bytes(), 32)
}

// PackUintOutput encodes a uint256 as a call return value; used by tests
func PackUintOutput(value *big.Int) []byte {
	return common.LeftPadBytes(value.Bytes(), 32)
}

// PackReservesOutput encodes a getReserves() return value; used by tests
func PackReservesOutput(reserve0, reserve1 *big.Int) []byte {
	out := common.LeftPadBytes(reserve0.Bytes(), 32)
	out = append(out, common.LeftPadBytes(reserve1.Bytes(), 32)...)
	out = append(out, common.LeftPadBytes(big.NewInt(0).Bytes(), 32)...)
	return out
}
