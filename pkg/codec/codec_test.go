package codec

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eth-swap/pkg/types"
)

var (
	usdc = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	dai  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
)

func word(v *big.Int) []byte {
	return common.LeftPadBytes(v.Bytes(), 32)
}

func words(vs ...int64) []byte {
	var out []byte
	for _, v := range vs {
		out = append(out, word(big.NewInt(v))...)
	}
	return out
}

func selector(sig string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(sig))[:4])
}

// argWord returns the i-th 32 byte argument word of packed calldata
func argWord(t *testing.T, data []byte, i int) *big.Int {
	t.Helper()
	start := 4 + 32*i
	require.GreaterOrEqual(t, len(data), start+32)
	return new(big.Int).SetBytes(data[start : start+32])
}

func TestSelectors(t *testing.T) {
	path := []common.Address{types.WETH, usdc}
	one := big.NewInt(1)

	tests := []struct {
		sig  string
		want string
		pack func() ([]byte, error)
	}{
		{"decimals()", "0x313ce567", PackDecimals},
		{"balanceOf(address)", "0x70a08231", func() ([]byte, error) { return PackBalanceOf(usdc) }},
		{"getAmountsOut(uint256,address[])", "0xd06ca61f", func() ([]byte, error) { return PackGetAmountsOut(one, path) }},
		{"swapExactETHForTokens(uint256,address[],address,uint256)", "0x7ff36ab5", func() ([]byte, error) {
			return PackSwapExactETHForTokens(one, path, types.SimulationSender, one)
		}},
		{"swapExactTokensForETH(uint256,uint256,address[],address,uint256)", "0x18cbafe5", func() ([]byte, error) {
			return PackSwapExactTokensForETH(one, one, path, types.SimulationSender, one)
		}},
		{"swapExactTokensForTokens(uint256,uint256,address[],address,uint256)", "0x38ed1739", func() ([]byte, error) {
			return PackSwapExactTokensForTokens(one, one, path, types.SimulationSender, one)
		}},
		{"exactInputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))", "", func() ([]byte, error) {
			return PackExactInputSingle(ExactInputSingleParams{Fee: big.NewInt(3000), Deadline: one, AmountIn: one, AmountOutMinimum: one})
		}},
		{"quoteExactInputSingle((address,address,uint256,uint24,uint160))", "", func() ([]byte, error) {
			return PackQuoteV2(QuoteExactInputSingleParams{AmountIn: one, Fee: big.NewInt(500)})
		}},
		{"quoteExactInputSingle(address,address,uint24,uint256,uint160)", "", func() ([]byte, error) {
			return PackLegacyQuote(usdc, dai, types.FeeLow, one)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			data, err := tt.pack()
			require.NoError(t, err)
			got := hexutil.Encode(data[:4])
			assert.Equal(t, selector(tt.sig), got)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPackGetAmountsOutLayout(t *testing.T) {
	amountIn := big.NewInt(100000000000000000)
	data, err := PackGetAmountsOut(amountIn, []common.Address{types.WETH, usdc})
	require.NoError(t, err)

	// selector, amountIn, offset, length, two addresses
	require.Len(t, data, 4+5*32)
	assert.Equal(t, amountIn, argWord(t, data, 0))
	assert.Equal(t, int64(64), argWord(t, data, 1).Int64())
	assert.Equal(t, int64(2), argWord(t, data, 2).Int64())
	assert.Equal(t, types.WETH, common.BytesToAddress(data[4+3*32:4+4*32]))
	assert.Equal(t, usdc, common.BytesToAddress(data[4+4*32:]))
}

func TestPackQuoteArgumentOrder(t *testing.T) {
	amountIn := big.NewInt(1_000_000)

	v2, err := PackQuoteV2(QuoteExactInputSingleParams{TokenIn: usdc, TokenOut: dai, AmountIn: amountIn, Fee: types.FeeLow.BigInt()})
	require.NoError(t, err)
	require.Len(t, v2, 4+5*32)
	assert.Equal(t, amountIn, argWord(t, v2, 2))
	assert.Equal(t, int64(500), argWord(t, v2, 3).Int64())
	assert.Zero(t, argWord(t, v2, 4).Sign())

	legacy, err := PackLegacyQuote(usdc, dai, types.FeeLow, amountIn)
	require.NoError(t, err)
	require.Len(t, legacy, 4+5*32)
	assert.Equal(t, int64(500), argWord(t, legacy, 2).Int64())
	assert.Equal(t, amountIn, argWord(t, legacy, 3))
}

func TestPackExactInputSingleLayout(t *testing.T) {
	deadline := new(big.Int).SetUint64(types.SwapDeadline)
	data, err := PackExactInputSingle(ExactInputSingleParams{
		TokenIn:          types.WETH,
		TokenOut:         usdc,
		Fee:              types.FeeMedium.BigInt(),
		Recipient:        types.SimulationSender,
		Deadline:         deadline,
		AmountIn:         big.NewInt(42),
		AmountOutMinimum: big.NewInt(7),
	})
	require.NoError(t, err)

	require.Len(t, data, 4+8*32)
	assert.Equal(t, int64(3000), argWord(t, data, 2).Int64())
	assert.Equal(t, types.SimulationSender, common.BytesToAddress(data[4+3*32:4+4*32]))
	assert.Equal(t, deadline, argWord(t, data, 4))
	assert.Equal(t, int64(42), argWord(t, data, 5).Int64())
	assert.Equal(t, int64(7), argWord(t, data, 6).Int64())
}

func TestUnpackAmounts(t *testing.T) {
	ret := words(32, 2, 100000000000000000, 312456789)

	amounts, err := UnpackAmounts(MethodGetAmountsOut, ret)
	require.NoError(t, err)
	require.Len(t, amounts, 2)
	assert.Equal(t, "312456789", amounts[1].String())

	last, err := LastAmount(MethodSwapExactETHForTokens, ret)
	require.NoError(t, err)
	assert.Equal(t, "312456789", last.String())

	_, err = UnpackAmounts(MethodGetAmountsOut, words(32, 0))
	assert.Error(t, err)

	_, err = UnpackAmounts(MethodExactInputSingle, ret)
	assert.Error(t, err)
}

func TestUnpackQuoteV2(t *testing.T) {
	res, err := UnpackQuoteV2(words(998877, 79228162514264337, 3, 85000))
	require.NoError(t, err)
	assert.Equal(t, "998877", res.AmountOut.String())
	assert.Equal(t, uint32(3), res.InitializedTicksCrossed)
	assert.Equal(t, "85000", res.GasEstimate.String())
}

func TestUnpackScalars(t *testing.T) {
	d, err := UnpackDecimals(words(6))
	require.NoError(t, err)
	assert.Equal(t, uint8(6), d)

	bal, err := UnpackBalanceOf(words(123456))
	require.NoError(t, err)
	assert.Equal(t, int64(123456), bal.Int64())

	out, err := UnpackLegacyQuote(words(555))
	require.NoError(t, err)
	assert.Equal(t, int64(555), out.Int64())

	out, err = UnpackExactInputSingle(words(777))
	require.NoError(t, err)
	assert.Equal(t, int64(777), out.Int64())
}

func TestDecodeFailuresAreCodecErrors(t *testing.T) {
	short := make([]byte, 31)

	cases := map[string]func() error{
		"empty decimals":    func() error { _, err := UnpackDecimals(nil); return err },
		"short balance":     func() error { _, err := UnpackBalanceOf(short); return err },
		"short amounts":     func() error { _, err := UnpackAmounts(MethodGetAmountsOut, short); return err },
		"short quoter v2":   func() error { _, err := UnpackQuoteV2(words(1, 2)); return err },
		"empty legacy":      func() error { _, err := UnpackLegacyQuote([]byte{}); return err },
		"short exact input": func() error { _, err := UnpackExactInputSingle(short); return err },
	}

	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			err := fn()
			var ce *types.CodecError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.NotEmpty(t, ce.Method)
		})
	}
}
