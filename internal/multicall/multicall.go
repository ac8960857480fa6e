package multicall

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/domain"
)

// DefaultContract is the canonical Multicall3 deployment address, identical on
// most EVM chains. Individual chains can override it in configuration.
const DefaultContract = "0xcA11bde05977b3631167028862bE2a173976CA11"

// Call is a single contract read inside a batch
type Call struct {
	Target   common.Address
	CallData []byte
}

// Result is the per-call outcome of a batch. A reverted call has Success=false
// and empty ReturnData; it does not void its siblings.
type Result struct {
	Success    bool
	ReturnData []byte
}

// Caller executes many independent contract reads as one aggregated
// round-trip against a single chain's node
//
//go:generate mockgen -source=multicall.go -destination=../mocks/multicall.go -package=mocks -mock_names=Caller=MockCaller
type Caller interface {
	// Aggregate issues all calls in one request and returns results aligned
	// by index with the input. A transport-level failure fails the whole
	// batch and is reported as an error.
	Aggregate(ctx context.Context, calls []Call) ([]Result, error)
}

// caller implements Caller on top of the Multicall3 aggregate3 entry point
type caller struct {
	client   adapter.EthClient
	contract common.Address
	timeout  time.Duration
}

// NewCaller creates a batch caller for one chain
func NewCaller(client adapter.EthClient, contract common.Address, timeout time.Duration) Caller {
	return &caller{client: client, contract: contract, timeout: timeout}
}

// aggregate3 tuple shapes, field names must match the ABI component names
type aggregateCall struct {
	Target       common.Address
	AllowFailure bool
	CallData     []byte
}

type aggregateResult struct {
	Success    bool
	ReturnData []byte
}

// Aggregate issues all calls in one request
func (c *caller) Aggregate(ctx context.Context, calls []Call) ([]Result, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	packed := make([]aggregateCall, 0, len(calls))
	for _, call := range calls {
		packed = append(packed, aggregateCall{
			Target:       call.Target,
			AllowFailure: true, // per-call reverts only fail their own slot
			CallData:     call.CallData,
		})
	}

	data, err := multicallABI.Pack("aggregate3", packed)
	if err != nil {
		return nil, fmt.Errorf("failed to pack aggregate3 call: %w", err)
	}

	output, err := c.client.CallContract(timeoutCtx, ethereum.CallMsg{
		To:   &c.contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBatchFailed, err)
	}

	unpacked, err := multicallABI.Unpack("aggregate3", output)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack aggregate3 result: %w", err)
	}
	raw := *abi.ConvertType(unpacked[0], new([]aggregateResult)).(*[]aggregateResult)
	if len(raw) != len(calls) {
		return nil, fmt.Errorf("%w: expected %d results, got %d", domain.ErrBatchFailed, len(calls), len(raw))
	}

	results := make([]Result, len(raw))
	for i, r := range raw {
		results[i] = Result{Success: r.Success, ReturnData: r.ReturnData}
	}
	return results, nil
}

// PackAggregateOutput encodes an aggregate3 result set; used by tests to fabricate
// node responses without a live chain.
func PackAggregateOutput(results []Result) ([]byte, error) {
	raw := make([]aggregateResult, len(results))
	for i, r := range results {
		raw[i] = aggregateResult{Success: r.Success, ReturnData: r.ReturnData}
	}
	return multicallABI.Methods["aggregate3"].Outputs.Pack(raw)
}
