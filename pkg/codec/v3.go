package codec

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"eth-swap/pkg/types"
)

// ExactInputSingleParams mirrors the V3 router's ExactInputSingleParams tuple.
// Field names must match the ABI component names.
type ExactInputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	Fee               *big.Int
	Recipient         common.Address
	Deadline          *big.Int
	AmountIn          *big.Int
	AmountOutMinimum  *big.Int
	SqrtPriceLimitX96 *big.Int
}

// QuoteExactInputSingleParams mirrors the QuoterV2 tuple
type QuoteExactInputSingleParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	AmountIn          *big.Int
	Fee               *big.Int
	SqrtPriceLimitX96 *big.Int
}

// QuoteV2Result is the decoded QuoterV2 return tuple
type QuoteV2Result struct {
	AmountOut               *big.Int
	SqrtPriceX96After       *big.Int
	InitializedTicksCrossed uint32
	GasEstimate             *big.Int
}

// PackExactInputSingle encodes exactInputSingle(params)
func PackExactInputSingle(p ExactInputSingleParams) ([]byte, error) {
	if p.SqrtPriceLimitX96 == nil {
		p.SqrtPriceLimitX96 = new(big.Int)
	}
	return pack(routerV3ABIParsed, MethodExactInputSingle, p)
}

// UnpackExactInputSingle decodes the amountOut returned by exactInputSingle
func UnpackExactInputSingle(data []byte) (*big.Int, error) {
	return unpackBig(routerV3ABIParsed, MethodExactInputSingle, data)
}

// PackQuoteV2 encodes QuoterV2.quoteExactInputSingle(params)
func PackQuoteV2(p QuoteExactInputSingleParams) ([]byte, error) {
	if p.SqrtPriceLimitX96 == nil {
		p.SqrtPriceLimitX96 = new(big.Int)
	}
	return pack(quoterV2ABIParsed, MethodQuoteExactInputSingle, p)
}

// UnpackQuoteV2 decodes the four-value QuoterV2 return tuple
func UnpackQuoteV2(data []byte) (*QuoteV2Result, error) {
	out, err := unpack(quoterV2ABIParsed, MethodQuoteExactInputSingle, data)
	if err != nil {
		return nil, err
	}
	if len(out) != 4 {
		return nil, &types.CodecError{Method: MethodQuoteExactInputSingle, Err: fmt.Errorf("expected 4 outputs, got %d", len(out))}
	}

	res := &QuoteV2Result{}
	var ok1, ok2, ok3, ok4 bool
	res.AmountOut, ok1 = out[0].(*big.Int)
	res.SqrtPriceX96After, ok2 = out[1].(*big.Int)
	res.InitializedTicksCrossed, ok3 = out[2].(uint32)
	res.GasEstimate, ok4 = out[3].(*big.Int)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, &types.CodecError{Method: MethodQuoteExactInputSingle, Err: fmt.Errorf("unexpected output types")}
	}
	return res, nil
}

// PackLegacyQuote encodes the original Quoter's flat-argument
// quoteExactInputSingle.
func PackLegacyQuote(tokenIn, tokenOut common.Address, fee types.FeeTier, amountIn *big.Int) ([]byte, error) {
	return pack(legacyQuoterABIParsed, MethodQuoteExactInputSingle, tokenIn, tokenOut, fee.BigInt(), amountIn, new(big.Int))
}

// UnpackLegacyQuote decodes the single amountOut returned by the original Quoter
func UnpackLegacyQuote(data []byte) (*big.Int, error) {
	return unpackBig(legacyQuoterABIParsed, MethodQuoteExactInputSingle, data)
}
