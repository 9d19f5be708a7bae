package parser

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"eth-swap/pkg/amount"
	"eth-swap/pkg/types"
)

var nativeAliases = map[string]bool{
	"eth":      true,
	"ethereum": true,
}

// Mainnet ERC-20 addresses for the symbols accepted on the command line
var knownTokens = map[string]string{
	"USDC": "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
	"USDT": "0xdAC17F958D2ee523a2206206994597C13D831ec7",
	"DAI":  "0x6B175474E89094C44Da98b954EedeAC495271d0F",
	"WETH": "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
	"WBTC": "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599",
	"LINK": "0x514910771AF9Ca656af840dff83E8264EcF986CA",
	"UNI":  "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984",
}

var maxSlippage = decimal.NewFromInt(100)

// IsNative reports whether id is one of the native coin aliases
func IsNative(id string) bool {
	return nativeAliases[strings.ToLower(strings.TrimSpace(id))]
}

// ResolveSymbol maps a well-known token symbol to its address. Unknown
// symbols, aliases and addresses are returned unchanged.
func ResolveSymbol(id string) string {
	if addr, ok := knownTokens[strings.ToUpper(strings.TrimSpace(id))]; ok {
		return addr
	}
	return id
}

// NormalizeToken resolves a token identifier to an address. Native aliases map
// to WETH with Native set; everything else must be 0x followed by 40 hex digits.
func NormalizeToken(field, id string) (types.Token, error) {
	id = strings.TrimSpace(id)
	if IsNative(id) {
		return types.Token{Address: types.WETH, Native: true}, nil
	}

	if len(id) != 42 || !strings.HasPrefix(id, "0x") && !strings.HasPrefix(id, "0X") {
		return types.Token{}, types.InvalidInput(field, "%q is not a token address", id)
	}
	if !common.IsHexAddress(id) {
		return types.Token{}, types.InvalidInput(field, "%q is not a token address", id)
	}
	return types.Token{Address: common.HexToAddress(id)}, nil
}

// ParseSlippage parses a slippage percentage in the closed range [0, 100]
func ParseSlippage(s string) (decimal.Decimal, error) {
	d, err := amount.ParseDecimal("slippage_tolerance", s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.GreaterThan(maxSlippage) {
		return decimal.Zero, types.InvalidInput("slippage_tolerance", "%s is above 100", s)
	}
	return d, nil
}

// ParseVersion parses the protocol version, defaulting to V2
func ParseVersion(s string) (types.Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "v2":
		return types.V2, nil
	case "v3":
		return types.V3, nil
	}
	return 0, types.InvalidInput("version", "%q must be v2 or v3", s)
}

// ParseFeeTier validates an optional V3 pool fee, defaulting to 3000
func ParseFeeTier(fee *uint32) (types.FeeTier, error) {
	if fee == nil {
		return types.DefaultFeeTier, nil
	}
	tier := types.FeeTier(*fee)
	if !tier.Valid() {
		return 0, types.InvalidInput("pool_fee", "%d must be one of 500, 3000, 10000", *fee)
	}
	return tier, nil
}
