package types

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Version selects the exchange protocol generation used for a quote
type Version int

const (
	V2 Version = iota
	V3
)

func (v Version) String() string {
	switch v {
	case V2:
		return "V2"
	case V3:
		return "V3"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// FeeTier is a V3 pool fee expressed in hundredths of a basis point
type FeeTier uint32

const (
	FeeLow    FeeTier = 500
	FeeMedium FeeTier = 3000
	FeeHigh   FeeTier = 10000

	DefaultFeeTier = FeeMedium
)

// Valid reports whether the tier belongs to the enumerated set
func (f FeeTier) Valid() bool {
	return f == FeeLow || f == FeeMedium || f == FeeHigh
}

// BigInt returns the tier as an ABI uint24 value
func (f FeeTier) BigInt() *big.Int {
	return new(big.Int).SetUint64(uint64(f))
}

// SwapRequest is the inbound swap estimation request
type SwapRequest struct {
	FromToken         string  `json:"from_token"`
	ToToken           string  `json:"to_token"`
	Amount            string  `json:"amount"`
	SlippageTolerance string  `json:"slippage_tolerance"`
	Version           string  `json:"version,omitempty"`
	PoolFee           *uint32 `json:"pool_fee,omitempty"`
}

// Route is the fixed two-token path used by the V2 router
type Route []common.Address

func (r Route) String() string {
	parts := make([]string, len(r))
	for i, a := range r {
		parts[i] = a.Hex()
	}
	return strings.Join(parts, " -> ")
}

// QuoteResult is the outcome of a quote strategy
type QuoteResult struct {
	AmountOut *big.Int
	// FeeTier and Quoter are only set for V3 quotes
	FeeTier FeeTier
	Quoter  common.Address
}

// SwapReport is the final formatted estimate returned to the caller
type SwapReport struct {
	FromToken         string  `json:"from_token"`
	ToToken           string  `json:"to_token"`
	InputAmount       string  `json:"input_amount"`
	EstimatedOutput   string  `json:"estimated_output"`
	MinimumOutput     string  `json:"minimum_output"`
	SlippageTolerance string  `json:"slippage_tolerance"`
	EstimatedGas      string  `json:"estimated_gas"`
	EstimatedGasETH   string  `json:"estimated_gas_eth"`
	PriceImpact       *string `json:"price_impact"`
	InvolvesETH       bool    `json:"involves_eth"`
	Version           string  `json:"version"`
}

// BalanceRequest asks for a wallet's ETH or ERC-20 balance
type BalanceRequest struct {
	WalletAddress string `json:"wallet_address"`
	TokenAddress  string `json:"token_address,omitempty"`
}

// BalanceReport holds a formatted balance
type BalanceReport struct {
	WalletAddress string `json:"wallet_address"`
	TokenAddress  string `json:"token_address,omitempty"`
	Balance       string `json:"balance"`
	Decimals      uint8  `json:"decimals"`
	RawBalance    string `json:"raw_balance"`
}

// PriceRequest asks for the current price of a token by symbol or address
type PriceRequest struct {
	Token string `json:"token"`
}

// PriceReport holds a token's price in USD and ETH
type PriceReport struct {
	Token        string  `json:"token"`
	TokenAddress *string `json:"token_address"`
	PriceUSD     *string `json:"price_usd"`
	PriceETH     *string `json:"price_eth"`
	LastUpdated  *string `json:"last_updated"`
}

// ToolInfo describes one operation exposed by the tool server
type ToolInfo struct {
	Name        string   `json:"name"`
	Method      string   `json:"method"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}

// Token is a normalized token identifier. Native tokens carry the WETH
// address so they can be used directly in router paths.
type Token struct {
	Address common.Address
	Native  bool
}

// Display returns the identifier shown in reports
func (t Token) Display() string {
	if t.Native {
		return "ETH"
	}
	return t.Address.Hex()
}
