package chain

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"

	"eth-swap/pkg/amount"
	"eth-swap/pkg/codec"
	"eth-swap/pkg/types"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "chain").Logger()
}

// Provider is the subset of the Ethereum JSON-RPC API the estimator needs.
// *ethclient.Client satisfies it.
type Provider interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// EVMClient wraps a Provider and turns transport failures into typed errors
type EVMClient struct {
	provider Provider
	closer   func()
}

// Dial connects to the RPC endpoint
func Dial(ctx context.Context, rpcURL string) (*EVMClient, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}
	return &EVMClient{provider: client, closer: client.Close}, nil
}

// NewEVMClient creates a new EVM client over an existing provider
func NewEVMClient(p Provider) *EVMClient {
	return &EVMClient{provider: p}
}

// Close releases the underlying connection if the client owns one
func (e *EVMClient) Close() {
	if e.closer != nil {
		e.closer()
	}
}

// Call executes a read-only eth_call against the latest block
func (e *EVMClient) Call(ctx context.Context, from, to common.Address, data []byte, value *big.Int) ([]byte, error) {
	msg := ethereum.CallMsg{From: from, To: &to, Data: data, Value: value}
	out, err := e.provider.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, &types.RemoteCallError{Method: "eth_call", Err: err}
	}
	return out, nil
}

// EstimateGas runs eth_estimateGas for the given call
func (e *EVMClient) EstimateGas(ctx context.Context, from, to common.Address, data []byte, value *big.Int) (uint64, error) {
	msg := ethereum.CallMsg{From: from, To: &to, Data: data, Value: value}
	gas, err := e.provider.EstimateGas(ctx, msg)
	if err != nil {
		return 0, &types.RemoteCallError{Method: "eth_estimateGas", Err: err}
	}
	return gas, nil
}

// GasPrice returns the suggested gas price in wei
func (e *EVMClient) GasPrice(ctx context.Context) (*big.Int, error) {
	price, err := e.provider.SuggestGasPrice(ctx)
	if err != nil {
		return nil, &types.RemoteCallError{Method: "eth_gasPrice", Err: err}
	}
	return price, nil
}

// TokenDecimals reads decimals() from an ERC-20 contract. Tokens that do not
// answer, or answer with garbage, are assumed to use 18 decimals.
func (e *EVMClient) TokenDecimals(ctx context.Context, token types.Token) uint8 {
	if token.Native {
		return types.NativeDecimals
	}

	data, err := codec.PackDecimals()
	if err != nil {
		return types.NativeDecimals
	}

	out, err := e.Call(ctx, common.Address{}, token.Address, data, nil)
	if err != nil {
		log.Warn().Err(err).Str("token", token.Address.Hex()).Msg("decimals lookup failed, assuming 18")
		return types.NativeDecimals
	}

	decimals, err := codec.UnpackDecimals(out)
	if err != nil {
		log.Warn().Err(err).Str("token", token.Address.Hex()).Msg("decimals decode failed, assuming 18")
		return types.NativeDecimals
	}
	return decimals
}

// Balance returns a wallet's ETH balance, or its ERC-20 balance when token is set
func (e *EVMClient) Balance(ctx context.Context, wallet common.Address, token *common.Address) (*types.BalanceReport, error) {
	if token == nil {
		raw, err := e.provider.BalanceAt(ctx, wallet, nil)
		if err != nil {
			return nil, &types.RemoteCallError{Method: "eth_getBalance", Err: err}
		}
		return &types.BalanceReport{
			WalletAddress: wallet.Hex(),
			Balance:       amount.FormatUnits(raw, types.NativeDecimals),
			Decimals:      types.NativeDecimals,
			RawBalance:    raw.String(),
		}, nil
	}

	data, err := codec.PackBalanceOf(wallet)
	if err != nil {
		return nil, err
	}
	out, err := e.Call(ctx, common.Address{}, *token, data, nil)
	if err != nil {
		return nil, err
	}
	raw, err := codec.UnpackBalanceOf(out)
	if err != nil {
		return nil, err
	}

	decimals := e.TokenDecimals(ctx, types.Token{Address: *token})

	return &types.BalanceReport{
		WalletAddress: wallet.Hex(),
		TokenAddress:  token.Hex(),
		Balance:       amount.FormatUnits(raw, decimals),
		Decimals:      decimals,
		RawBalance:    raw.String(),
	}, nil
}
