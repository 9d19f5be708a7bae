package parser

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eth-swap/pkg/types"
)

const usdc = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

func TestParseSwapCommand(t *testing.T) {
	tests := []struct {
		in       string
		amount   string
		from, to string
	}{
		{"swap 0.1 ETH to USDC", "0.1", "ETH", usdc},
		{"0.1 eth to " + usdc, "0.1", "eth", usdc},
		{"SWAP 100 usdc TO dai", "100", usdc, "0x6B175474E89094C44Da98b954EedeAC495271d0F"},
		{"  .5 ethereum to weth ", ".5", "ethereum", types.WETH.Hex()},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			req, err := ParseSwapCommand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.amount, req.Amount)
			assert.Equal(t, tt.from, req.FromToken)
			assert.Equal(t, tt.to, req.ToToken)
		})
	}
}

func TestParseSwapCommandInvalid(t *testing.T) {
	for _, in := range []string{"", "swap", "ETH to USDC", "1 ETH USDC", "-1 ETH to USDC", "1 ETH to"} {
		_, err := ParseSwapCommand(in)
		assert.Error(t, err, in)
	}
}

func TestValidateSwapRequest(t *testing.T) {
	req := &types.SwapRequest{FromToken: "eth", ToToken: usdc, Amount: "1", SlippageTolerance: "0.5"}
	require.NoError(t, ValidateSwapRequest(req))

	missing := *req
	missing.SlippageTolerance = ""
	err := ValidateSwapRequest(&missing)
	var invalid *types.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "slippage_tolerance", invalid.Field)

	assert.Error(t, ValidateSwapRequest(nil))
}

func TestNormalizeTokenNativeAliases(t *testing.T) {
	for _, id := range []string{"eth", "ETH", "Eth", "ethereum", "ETHEREUM", " eThErEuM "} {
		tok, err := NormalizeToken("from_token", id)
		require.NoError(t, err, id)
		assert.True(t, tok.Native, id)
		assert.Equal(t, types.WETH, tok.Address)
		assert.Equal(t, "ETH", tok.Display())
	}
}

func TestNormalizeTokenAddress(t *testing.T) {
	tok, err := NormalizeToken("to_token", "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	require.NoError(t, err)
	assert.False(t, tok.Native)
	assert.Equal(t, common.HexToAddress(usdc), tok.Address)
	assert.Equal(t, usdc, tok.Display())

	// WETH by address is an ordinary token
	tok, err = NormalizeToken("to_token", types.WETH.Hex())
	require.NoError(t, err)
	assert.False(t, tok.Native)
}

func TestNormalizeTokenRejects(t *testing.T) {
	for _, id := range []string{
		"",
		"USDC",
		"ether",
		"a0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb4",
		"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb488",
		"0xg0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
	} {
		_, err := NormalizeToken("from_token", id)
		var invalid *types.InvalidInputError
		require.True(t, errors.As(err, &invalid), id)
		assert.Equal(t, "from_token", invalid.Field)
	}
}

func TestParseSlippage(t *testing.T) {
	for _, s := range []string{"0", "0.5", "100", "100.0", "3"} {
		_, err := ParseSlippage(s)
		assert.NoError(t, err, s)
	}
	for _, s := range []string{"-0.5", "100.01", "abc", "", "1e1"} {
		_, err := ParseSlippage(s)
		assert.Error(t, err, s)
	}
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("")
	require.NoError(t, err)
	assert.Equal(t, types.V2, v)

	v, err = ParseVersion("V3")
	require.NoError(t, err)
	assert.Equal(t, types.V3, v)

	_, err = ParseVersion("v4")
	assert.Error(t, err)
}

func TestParseFeeTier(t *testing.T) {
	tier, err := ParseFeeTier(nil)
	require.NoError(t, err)
	assert.Equal(t, types.FeeMedium, tier)

	fee := uint32(500)
	tier, err = ParseFeeTier(&fee)
	require.NoError(t, err)
	assert.Equal(t, types.FeeLow, tier)

	bad := uint32(2500)
	_, err = ParseFeeTier(&bad)
	assert.Error(t, err)
}
