package codec

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"eth-swap/pkg/types"
)

// PackGetAmountsOut encodes getAmountsOut(amountIn, path)
func PackGetAmountsOut(amountIn *big.Int, path []common.Address) ([]byte, error) {
	return pack(routerV2ABIParsed, MethodGetAmountsOut, amountIn, path)
}

// PackSwapExactETHForTokens encodes the payable native-in swap
func PackSwapExactETHForTokens(amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) ([]byte, error) {
	return pack(routerV2ABIParsed, MethodSwapExactETHForTokens, amountOutMin, path, to, deadline)
}

// PackSwapExactTokensForETH encodes the native-out swap
func PackSwapExactTokensForETH(amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) ([]byte, error) {
	return pack(routerV2ABIParsed, MethodSwapExactTokensForETH, amountIn, amountOutMin, path, to, deadline)
}

// PackSwapExactTokensForTokens encodes the token-to-token swap
func PackSwapExactTokensForTokens(amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) ([]byte, error) {
	return pack(routerV2ABIParsed, MethodSwapExactTokensForTokens, amountIn, amountOutMin, path, to, deadline)
}

// UnpackAmounts decodes the uint256[] returned by getAmountsOut and the V2
// swap functions. method selects which output definition to use.
func UnpackAmounts(method string, data []byte) ([]*big.Int, error) {
	if _, ok := routerV2ABIParsed.Methods[method]; !ok {
		return nil, &types.CodecError{Method: method, Err: fmt.Errorf("not a V2 router method")}
	}
	out, err := unpack(routerV2ABIParsed, method, data)
	if err != nil {
		return nil, err
	}
	amounts, ok := out[0].([]*big.Int)
	if !ok {
		return nil, &types.CodecError{Method: method, Err: fmt.Errorf("unexpected output type %T", out[0])}
	}
	if len(amounts) == 0 {
		return nil, &types.CodecError{Method: method, Err: errEmptyReturn}
	}
	return amounts, nil
}

// LastAmount decodes a V2 amounts array and returns its final element, the
// amount received at the end of the path.
func LastAmount(method string, data []byte) (*big.Int, error) {
	amounts, err := UnpackAmounts(method, data)
	if err != nil {
		return nil, err
	}
	return amounts[len(amounts)-1], nil
}
