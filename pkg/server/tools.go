package server

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"eth-swap/pkg/metrics"
	"eth-swap/pkg/parser"
	"eth-swap/pkg/types"
)

// Namespace is the JSON-RPC namespace the tools are registered under
const Namespace = "tools"

// SwapEstimator estimates swaps. *swap.Estimator satisfies it.
type SwapEstimator interface {
	Estimate(ctx context.Context, req *types.SwapRequest) (*types.SwapReport, error)
}

// BalanceReader reads wallet balances. *chain.EVMClient satisfies it.
type BalanceReader interface {
	Balance(ctx context.Context, wallet common.Address, token *common.Address) (*types.BalanceReport, error)
}

// PriceSource looks up token prices. *client.PriceFeedClient satisfies it.
type PriceSource interface {
	GetTokenPrice(ctx context.Context, token string) (*types.PriceReport, error)
}

// ToolService exposes the tools as JSON-RPC methods: tools_swapTokens,
// tools_getBalance, tools_getTokenPrice and tools_listTools.
type ToolService struct {
	estimator SwapEstimator
	balances  BalanceReader
	prices    PriceSource
}

// NewToolService creates a new tool service
func NewToolService(estimator SwapEstimator, balances BalanceReader, prices PriceSource) *ToolService {
	return &ToolService{estimator: estimator, balances: balances, prices: prices}
}

// SwapTokens estimates a swap without submitting it
func (s *ToolService) SwapTokens(ctx context.Context, req types.SwapRequest) (*types.SwapReport, error) {
	start := time.Now()
	report, err := s.estimator.Estimate(ctx, &req)
	observe("swapTokens", start, err)
	if err != nil {
		Logger.Warn().Err(err).
			Str("from", req.FromToken).
			Str("to", req.ToToken).
			Str("amount", req.Amount).
			Msg("swap estimate failed")
		return nil, toRPCError(err)
	}
	return report, nil
}

// GetBalance returns a wallet's ETH or ERC-20 balance
func (s *ToolService) GetBalance(ctx context.Context, req types.BalanceRequest) (*types.BalanceReport, error) {
	start := time.Now()
	report, err := s.balance(ctx, req)
	observe("getBalance", start, err)
	if err != nil {
		return nil, toRPCError(err)
	}
	return report, nil
}

func (s *ToolService) balance(ctx context.Context, req types.BalanceRequest) (*types.BalanceReport, error) {
	if !common.IsHexAddress(req.WalletAddress) {
		return nil, types.InvalidInput("wallet_address", "%q is not an address", req.WalletAddress)
	}
	wallet := common.HexToAddress(req.WalletAddress)

	var token *common.Address
	if req.TokenAddress != "" {
		tok, err := parser.NormalizeToken("token_address", req.TokenAddress)
		if err != nil {
			return nil, err
		}
		if !tok.Native {
			token = &tok.Address
		}
	}

	return s.balances.Balance(ctx, wallet, token)
}

// GetTokenPrice returns the current USD and ETH price of a token
func (s *ToolService) GetTokenPrice(ctx context.Context, req types.PriceRequest) (*types.PriceReport, error) {
	start := time.Now()
	report, err := s.prices.GetTokenPrice(ctx, req.Token)
	observe("getTokenPrice", start, err)
	if err != nil {
		return nil, toRPCError(err)
	}
	return report, nil
}

// ListTools describes the available tools
func (s *ToolService) ListTools() []types.ToolInfo {
	return []types.ToolInfo{
		{
			Name:        "swap_tokens",
			Method:      Namespace + "_swapTokens",
			Description: "Estimate a Uniswap V2 or V3 swap by quoting and simulating it with eth_call. Nothing is submitted on-chain.",
			Params:      []string{"from_token", "to_token", "amount", "slippage_tolerance", "version", "pool_fee"},
		},
		{
			Name:        "get_balance",
			Method:      Namespace + "_getBalance",
			Description: "Get the ETH or ERC-20 balance of a wallet.",
			Params:      []string{"wallet_address", "token_address"},
		},
		{
			Name:        "get_token_price",
			Method:      Namespace + "_getTokenPrice",
			Description: "Get the current USD and ETH price of a token by symbol or contract address.",
			Params:      []string{"token"},
		},
	}
}

func observe(method string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		var ke types.KindError
		if errors.As(err, &ke) {
			status = string(ke.Kind())
		}
	}
	metrics.ToolRequests.WithLabelValues(method, status).Inc()
	Logger.Debug().Str("method", method).Str("status", status).Dur("duration", time.Since(start)).Msg("tool call")
}
