package codec

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"eth-swap/pkg/types"
)

// Method names as they appear in the contract ABIs
const (
	MethodDecimals                 = "decimals"
	MethodBalanceOf                = "balanceOf"
	MethodGetAmountsOut            = "getAmountsOut"
	MethodSwapExactETHForTokens    = "swapExactETHForTokens"
	MethodSwapExactTokensForETH    = "swapExactTokensForETH"
	MethodSwapExactTokensForTokens = "swapExactTokensForTokens"
	MethodExactInputSingle         = "exactInputSingle"
	MethodQuoteExactInputSingle    = "quoteExactInputSingle"
)

var errEmptyReturn = errors.New("empty return data")

func pack(parsed abi.ABI, method string, args ...interface{}) ([]byte, error) {
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, &types.CodecError{Method: method, Err: err}
	}
	return data, nil
}

func unpack(parsed abi.ABI, method string, data []byte) ([]interface{}, error) {
	if len(data) == 0 {
		return nil, &types.CodecError{Method: method, Err: errEmptyReturn}
	}
	out, err := parsed.Methods[method].Outputs.Unpack(data)
	if err != nil {
		return nil, &types.CodecError{Method: method, Err: err}
	}
	if len(out) == 0 {
		return nil, &types.CodecError{Method: method, Err: errEmptyReturn}
	}
	return out, nil
}

func unpackBig(parsed abi.ABI, method string, data []byte) (*big.Int, error) {
	out, err := unpack(parsed, method, data)
	if err != nil {
		return nil, err
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, &types.CodecError{Method: method, Err: fmt.Errorf("unexpected output type %T", out[0])}
	}
	return v, nil
}

// PackDecimals encodes ERC-20 decimals()
func PackDecimals() ([]byte, error) {
	return pack(erc20ABIParsed, MethodDecimals)
}

// UnpackDecimals decodes the uint8 returned by decimals()
func UnpackDecimals(data []byte) (uint8, error) {
	out, err := unpack(erc20ABIParsed, MethodDecimals, data)
	if err != nil {
		return 0, err
	}
	d, ok := out[0].(uint8)
	if !ok {
		return 0, &types.CodecError{Method: MethodDecimals, Err: fmt.Errorf("unexpected output type %T", out[0])}
	}
	return d, nil
}

// PackBalanceOf encodes ERC-20 balanceOf(owner)
func PackBalanceOf(owner common.Address) ([]byte, error) {
	return pack(erc20ABIParsed, MethodBalanceOf, owner)
}

// UnpackBalanceOf decodes the uint256 returned by balanceOf
func UnpackBalanceOf(data []byte) (*big.Int, error) {
	return unpackBig(erc20ABIParsed, MethodBalanceOf, data)
}
