package quote

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"eth-swap/pkg/codec"
	"eth-swap/pkg/types"
)

// QuoteV2 asks the V2 router how much of the last path token amountIn buys
func QuoteV2(ctx context.Context, c Caller, route types.Route, amountIn *big.Int) (*types.QuoteResult, error) {
	data, err := codec.PackGetAmountsOut(amountIn, route)
	if err != nil {
		return nil, err
	}

	out, err := c.Call(ctx, common.Address{}, types.UniswapV2Router, data, nil)
	if err != nil {
		log.Debug().Err(err).Str("route", route.String()).Msg("getAmountsOut failed")
		return nil, &types.UpstreamQuoteUnavailableError{Err: err}
	}

	amountOut, err := codec.LastAmount(codec.MethodGetAmountsOut, out)
	if err != nil {
		return nil, err
	}

	return &types.QuoteResult{AmountOut: amountOut}, nil
}
