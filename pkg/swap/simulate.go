package swap

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"eth-swap/pkg/codec"
	"eth-swap/pkg/metrics"
	"eth-swap/pkg/types"
)

// swapCall is a fully encoded router call ready to be simulated
type swapCall struct {
	version types.Version
	router  common.Address
	method  string
	data    []byte
	value   *big.Int
}

type simulation struct {
	amountOut *big.Int
	gas       uint64
	simulated bool
	estimated bool
}

func buildSwapCall(p *parsedRequest, q *types.QuoteResult, amountIn, minOut *big.Int) (*swapCall, error) {
	deadline := new(big.Int).SetUint64(types.SwapDeadline)
	recipient := types.SimulationSender

	value := new(big.Int)
	if p.from.Native {
		value = new(big.Int).Set(amountIn)
	}

	switch p.version {
	case types.V2:
		path := []common.Address{p.from.Address, p.to.Address}

		var (
			method string
			data   []byte
			err    error
		)
		switch {
		case p.from.Native:
			method = codec.MethodSwapExactETHForTokens
			data, err = codec.PackSwapExactETHForTokens(minOut, path, recipient, deadline)
		case p.to.Native:
			method = codec.MethodSwapExactTokensForETH
			data, err = codec.PackSwapExactTokensForETH(amountIn, minOut, path, recipient, deadline)
		default:
			method = codec.MethodSwapExactTokensForTokens
			data, err = codec.PackSwapExactTokensForTokens(amountIn, minOut, path, recipient, deadline)
		}
		if err != nil {
			return nil, err
		}
		return &swapCall{version: types.V2, router: types.UniswapV2Router, method: method, data: data, value: value}, nil

	case types.V3:
		// Swap against the pool that actually produced the quote
		data, err := codec.PackExactInputSingle(codec.ExactInputSingleParams{
			TokenIn:          p.from.Address,
			TokenOut:         p.to.Address,
			Fee:              q.FeeTier.BigInt(),
			Recipient:        recipient,
			Deadline:         deadline,
			AmountIn:         amountIn,
			AmountOutMinimum: minOut,
		})
		if err != nil {
			return nil, err
		}
		return &swapCall{version: types.V3, router: types.UniswapV3Router, method: codec.MethodExactInputSingle, data: data, value: value}, nil
	}

	return nil, types.InvalidInput("version", "%s has no swap call", p.version)
}

func (c *swapCall) decode(data []byte) (*big.Int, error) {
	if c.version == types.V2 {
		return codec.LastAmount(c.method, data)
	}
	return codec.UnpackExactInputSingle(data)
}

func defaultGas(v types.Version) uint64 {
	if v == types.V3 {
		return types.DefaultGasV3
	}
	return types.DefaultGasV2
}

// simulate probes the swap as the simulation sender. A failed or undecodable
// probe keeps the quoted output and a failed gas estimate uses the version's
// default gas limit; neither fails the request.
func (e *Estimator) simulate(ctx context.Context, call *swapCall, quoted *big.Int) simulation {
	sim := simulation{amountOut: quoted, gas: defaultGas(call.version)}
	version := call.version.String()

	out, err := e.chain.Call(ctx, types.SimulationSender, call.router, call.data, call.value)
	if err == nil {
		var simulated *big.Int
		if simulated, err = call.decode(out); err == nil {
			sim.amountOut = simulated
			sim.simulated = true
		}
	}
	if err != nil {
		metrics.SimulationFallbacks.WithLabelValues(version).Inc()
		log.Warn().Err(err).Str("method", call.method).Msg("swap simulation failed, using quoted output")
	}

	gas, err := e.chain.EstimateGas(ctx, types.SimulationSender, call.router, call.data, call.value)
	if err != nil {
		metrics.GasEstimateFallbacks.WithLabelValues(version).Inc()
		log.Warn().Err(err).Uint64("default_gas", sim.gas).Msg("gas estimation failed, using default")
	} else {
		sim.gas = gas
		sim.estimated = true
	}

	return sim
}
