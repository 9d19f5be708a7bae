package quote

import (
	"context"
	"errors"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"eth-swap/pkg/codec"
	"eth-swap/pkg/metrics"
	"eth-swap/pkg/types"
)

type quoter struct {
	name    string
	address common.Address
	pack    func(tokenIn, tokenOut common.Address, fee types.FeeTier, amountIn *big.Int) ([]byte, error)
	unpack  func(data []byte) (*big.Int, error)
}

// Quoters in the order they are tried
var quoters = []quoter{
	{
		name:    "quoter_v2",
		address: types.QuoterV2,
		pack: func(tokenIn, tokenOut common.Address, fee types.FeeTier, amountIn *big.Int) ([]byte, error) {
			return codec.PackQuoteV2(codec.QuoteExactInputSingleParams{
				TokenIn:  tokenIn,
				TokenOut: tokenOut,
				AmountIn: amountIn,
				Fee:      fee.BigInt(),
			})
		},
		unpack: func(data []byte) (*big.Int, error) {
			res, err := codec.UnpackQuoteV2(data)
			if err != nil {
				return nil, err
			}
			return res.AmountOut, nil
		},
	},
	{
		name:    "quoter",
		address: types.LegacyQuoter,
		pack:    codec.PackLegacyQuote,
		unpack:  codec.UnpackLegacyQuote,
	},
}

// Candidate is one (quoter, fee tier) attempt of the ladder
type Candidate struct {
	Quoter common.Address
	Tier   types.FeeTier
	q      *quoter
}

// Tiers returns the requested tier followed by the fallback tiers, without
// duplicates.
func Tiers(requested types.FeeTier) []types.FeeTier {
	tiers := []types.FeeTier{requested}
	for _, t := range types.FallbackFeeTiers {
		dup := false
		for _, seen := range tiers {
			if seen == t {
				dup = true
				break
			}
		}
		if !dup {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// Candidates lists every attempt in order: all tiers on QuoterV2, then all
// tiers on the original Quoter.
func Candidates(requested types.FeeTier) []Candidate {
	tiers := Tiers(requested)
	out := make([]Candidate, 0, len(quoters)*len(tiers))
	for i := range quoters {
		for _, t := range tiers {
			out = append(out, Candidate{Quoter: quoters[i].address, Tier: t, q: &quoters[i]})
		}
	}
	return out
}

// Ladder walks the quote candidates and returns the first success
type Ladder struct {
	caller Caller
}

// NewLadder creates a new fee tier ladder
func NewLadder(c Caller) *Ladder {
	return &Ladder{caller: c}
}

// Quote tries each candidate in order. The result records the tier and quoter
// that answered, which may differ from the requested tier.
func (l *Ladder) Quote(ctx context.Context, tokenIn, tokenOut common.Address, amountIn *big.Int, requested types.FeeTier) (*types.QuoteResult, error) {
	var lastErr error

	for _, c := range Candidates(requested) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		amountOut, err := l.try(ctx, c, tokenIn, tokenOut, amountIn)
		tier := strconv.FormatUint(uint64(c.Tier), 10)
		if err != nil {
			metrics.QuoteAttempts.WithLabelValues(c.q.name, tier, "error").Inc()
			log.Warn().
				Err(err).
				Str("quoter", c.q.name).
				Uint32("fee_tier", uint32(c.Tier)).
				Msg("quote attempt failed, trying next")
			lastErr = err
			continue
		}

		metrics.QuoteAttempts.WithLabelValues(c.q.name, tier, "ok").Inc()
		if c.Tier != requested || c.Quoter != types.QuoterV2 {
			log.Info().
				Str("quoter", c.q.name).
				Uint32("requested_tier", uint32(requested)).
				Uint32("fee_tier", uint32(c.Tier)).
				Msg("quote served by fallback")
		}
		return &types.QuoteResult{AmountOut: amountOut, FeeTier: c.Tier, Quoter: c.Quoter}, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no quote candidates")
	}
	return nil, &types.UpstreamQuoteUnavailableError{Tiers: Tiers(requested), Err: lastErr}
}

func (l *Ladder) try(ctx context.Context, c Candidate, tokenIn, tokenOut common.Address, amountIn *big.Int) (*big.Int, error) {
	data, err := c.q.pack(tokenIn, tokenOut, c.Tier, amountIn)
	if err != nil {
		return nil, err
	}
	out, err := l.caller.Call(ctx, common.Address{}, c.Quoter, data, nil)
	if err != nil {
		return nil, err
	}
	return c.q.unpack(out)
}
