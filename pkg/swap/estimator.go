// Package swap estimates the outcome and cost of a token swap without
// submitting a transaction.
package swap

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"eth-swap/pkg/amount"
	"eth-swap/pkg/metrics"
	"eth-swap/pkg/parser"
	"eth-swap/pkg/quote"
	"eth-swap/pkg/types"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "swap").Logger()
}

// Chain is the upstream access the estimator needs. *chain.EVMClient
// satisfies it.
type Chain interface {
	quote.Caller
	EstimateGas(ctx context.Context, from, to common.Address, data []byte, value *big.Int) (uint64, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	TokenDecimals(ctx context.Context, token types.Token) uint8
}

// Estimator turns swap requests into swap reports. It holds no per-request
// state and is safe for concurrent use.
type Estimator struct {
	chain Chain
}

// NewEstimator creates a new swap estimator
func NewEstimator(c Chain) *Estimator {
	return &Estimator{chain: c}
}

// parsedRequest is a SwapRequest with every locally checkable field resolved
type parsedRequest struct {
	version  types.Version
	from     types.Token
	to       types.Token
	slippage decimal.Decimal
	feeTier  types.FeeTier
}

func parseRequest(req *types.SwapRequest) (*parsedRequest, error) {
	if err := parser.ValidateSwapRequest(req); err != nil {
		return nil, err
	}

	version, err := parser.ParseVersion(req.Version)
	if err != nil {
		return nil, err
	}
	from, err := parser.NormalizeToken("from_token", req.FromToken)
	if err != nil {
		return nil, err
	}
	to, err := parser.NormalizeToken("to_token", req.ToToken)
	if err != nil {
		return nil, err
	}
	if err := quote.CheckPair(from, to); err != nil {
		return nil, err
	}
	slippage, err := parser.ParseSlippage(req.SlippageTolerance)
	if err != nil {
		return nil, err
	}

	p := &parsedRequest{version: version, from: from, to: to, slippage: slippage, feeTier: types.DefaultFeeTier}
	if version == types.V3 {
		if p.feeTier, err = parser.ParseFeeTier(req.PoolFee); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Estimate quotes the swap, probes it with a simulated execution and prices
// its gas. Remote calls are made sequentially on ctx.
func (e *Estimator) Estimate(ctx context.Context, req *types.SwapRequest) (*types.SwapReport, error) {
	start := time.Now()

	p, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		metrics.QuoteDuration.WithLabelValues(p.version.String()).Observe(time.Since(start).Seconds())
	}()

	inDecimals := e.chain.TokenDecimals(ctx, p.from)
	outDecimals := e.chain.TokenDecimals(ctx, p.to)

	amountIn, err := amount.ParseUnits(req.Amount, inDecimals)
	if err != nil {
		return nil, err
	}
	if amountIn.Sign() == 0 {
		return nil, types.InvalidInput("amount", "%q is zero at %d decimals", req.Amount, inDecimals)
	}

	q, err := quote.Quote(ctx, e.chain, quote.Request{
		Version:  p.version,
		From:     p.from,
		To:       p.to,
		AmountIn: amountIn,
		FeeTier:  p.feeTier,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s quote: %w", p.version, err)
	}

	minOut := amount.MinOutput(q.AmountOut, p.slippage)

	call, err := buildSwapCall(p, q, amountIn, minOut)
	if err != nil {
		return nil, err
	}

	sim := e.simulate(ctx, call, q.AmountOut)

	gasPrice, err := e.chain.GasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	log.Debug().
		Str("version", p.version.String()).
		Str("amount_in", amountIn.String()).
		Str("quoted", q.AmountOut.String()).
		Str("simulated", sim.amountOut.String()).
		Uint64("gas", sim.gas).
		Msg("swap estimated")

	return buildReport(p, req, sim, minOut, outDecimals, gasPrice), nil
}
