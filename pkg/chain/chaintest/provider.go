// Package chaintest provides an in-memory chain.Provider for tests.
package chaintest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrReverted is returned for calls with no registered handler
var ErrReverted = errors.New("execution reverted")

// CallHandler answers one eth_call
type CallHandler func(msg ethereum.CallMsg) ([]byte, error)

type callKey struct {
	to       common.Address
	selector string
}

// Provider is a scripted chain.Provider. Calls are matched on target address
// and 4-byte selector.
type Provider struct {
	mu       sync.Mutex
	handlers map[callKey]CallHandler
	calls    []ethereum.CallMsg

	// EstimateGasFn overrides the default answer of 100000 gas
	EstimateGasFn func(msg ethereum.CallMsg) (uint64, error)
	GasPrice      *big.Int
	GasPriceErr   error
	Balances      map[common.Address]*big.Int
}

// New creates an empty provider with a 20 gwei gas price
func New() *Provider {
	return &Provider{
		handlers: make(map[callKey]CallHandler),
		GasPrice: big.NewInt(20_000_000_000),
		Balances: make(map[common.Address]*big.Int),
	}
}

// Selector returns the hex 4-byte selector of a canonical signature
func Selector(signature string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(signature))[:4])
}

// OnCall registers a handler for calls of signature made to address to
func (p *Provider) OnCall(to common.Address, signature string, h CallHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[callKey{to: to, selector: Selector(signature)}] = h
}

// Returns is a handler that always answers with data
func Returns(data []byte) CallHandler {
	return func(ethereum.CallMsg) ([]byte, error) { return data, nil }
}

// Reverts is a handler that always fails
func Reverts(reason string) CallHandler {
	return func(ethereum.CallMsg) ([]byte, error) {
		return nil, fmt.Errorf("%w: %s", ErrReverted, reason)
	}
}

// Words ABI-encodes a sequence of static uint256 values
func Words(vs ...*big.Int) []byte {
	var out []byte
	for _, v := range vs {
		out = append(out, common.LeftPadBytes(v.Bytes(), 32)...)
	}
	return out
}

// Amounts ABI-encodes a single uint256[] return value
func Amounts(vs ...*big.Int) []byte {
	head := []*big.Int{big.NewInt(32), big.NewInt(int64(len(vs)))}
	return Words(append(head, vs...)...)
}

func (p *Provider) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	p.mu.Lock()
	p.calls = append(p.calls, msg)
	var h CallHandler
	if msg.To != nil && len(msg.Data) >= 4 {
		h = p.handlers[callKey{to: *msg.To, selector: hexutil.Encode(msg.Data[:4])}]
	}
	p.mu.Unlock()

	if h == nil {
		return nil, ErrReverted
	}
	return h(msg)
}

func (p *Provider) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	if p.EstimateGasFn != nil {
		return p.EstimateGasFn(msg)
	}
	return 100000, nil
}

func (p *Provider) SuggestGasPrice(context.Context) (*big.Int, error) {
	if p.GasPriceErr != nil {
		return nil, p.GasPriceErr
	}
	return new(big.Int).Set(p.GasPrice), nil
}

func (p *Provider) BalanceAt(_ context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	if b, ok := p.Balances[account]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

// CallCount returns how many eth_calls hit to with the given signature
func (p *Provider) CallCount(to common.Address, signature string) int {
	sel := Selector(signature)
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, c := range p.calls {
		if c.To != nil && *c.To == to && len(c.Data) >= 4 && hexutil.Encode(c.Data[:4]) == sel {
			n++
		}
	}
	return n
}

// CallsTo returns every recorded eth_call made to address to
func (p *Provider) CallsTo(to common.Address) []ethereum.CallMsg {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []ethereum.CallMsg
	for _, c := range p.calls {
		if c.To != nil && *c.To == to {
			out = append(out, c)
		}
	}
	return out
}
