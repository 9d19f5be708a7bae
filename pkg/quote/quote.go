// Package quote produces expected swap outputs from the Uniswap V2 router and
// the V3 quoter contracts.
package quote

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"eth-swap/pkg/types"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "quote").Logger()
}

// Caller executes read-only contract calls. *chain.EVMClient satisfies it.
type Caller interface {
	Call(ctx context.Context, from, to common.Address, data []byte, value *big.Int) ([]byte, error)
}

// Request is a validated quote request
type Request struct {
	Version  types.Version
	From     types.Token
	To       types.Token
	AmountIn *big.Int
	FeeTier  types.FeeTier
}

// CheckPair rejects pairs that have no route before any remote call is made
func CheckPair(from, to types.Token) error {
	if from.Native && to.Native {
		return types.InvalidInput("to_token", "cannot swap the native coin for itself")
	}
	if from.Address == to.Address {
		return types.InvalidInput("to_token", "source and destination resolve to the same asset %s", to.Address.Hex())
	}
	return nil
}

// BuildRoute returns the two-token router path. Native endpoints are already
// carried as WETH by the normalized token.
func BuildRoute(from, to types.Token) (types.Route, error) {
	if err := CheckPair(from, to); err != nil {
		return nil, err
	}
	return types.Route{from.Address, to.Address}, nil
}

// Quote dispatches to the strategy for the requested protocol version
func Quote(ctx context.Context, c Caller, req Request) (*types.QuoteResult, error) {
	switch req.Version {
	case types.V2:
		route, err := BuildRoute(req.From, req.To)
		if err != nil {
			return nil, err
		}
		return QuoteV2(ctx, c, route, req.AmountIn)
	case types.V3:
		if err := CheckPair(req.From, req.To); err != nil {
			return nil, err
		}
		return NewLadder(c).Quote(ctx, req.From.Address, req.To.Address, req.AmountIn, req.FeeTier)
	}
	return nil, fmt.Errorf("unsupported version %s", req.Version)
}
