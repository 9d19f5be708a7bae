// Package amount converts between human decimal strings and raw on-chain
// integer amounts.
package amount

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"eth-swap/pkg/types"
)

// Only plain non-negative decimals are accepted: no sign, exponent or separators.
var decimalPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

var hundred = decimal.NewFromInt(100)

// ParseDecimal validates s against the decimal grammar and parses it
func ParseDecimal(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return decimal.Zero, types.InvalidInput(field, "%q is not a non-negative decimal number", s)
	}

	// Normalize ".5" and "5." before handing off to the decimal parser
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, types.InvalidInput(field, "%v", err)
	}
	return d, nil
}

// ParseUnits scales a decimal string by 10^decimals. Excess fraction digits
// are truncated, never rounded.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	d, err := ParseDecimal("amount", s)
	if err != nil {
		return nil, err
	}

	raw := d.Shift(int32(decimals)).Truncate(0).BigInt()
	if _, overflow := uint256.FromBig(raw); overflow {
		return nil, types.InvalidInput("amount", "%s does not fit in 256 bits at %d decimals", s, decimals)
	}
	return raw, nil
}

// FormatUnits renders raw / 10^decimals with exactly decimals fraction digits
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		raw = new(big.Int)
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).StringFixed(int32(decimals))
}

// MinOutput returns floor(expected * (100 - slippage) / 100). Slippage is a
// percentage in [0, 100].
func MinOutput(expected *big.Int, slippage decimal.Decimal) *big.Int {
	keep := hundred.Sub(slippage)
	if keep.IsNegative() {
		keep = decimal.Zero
	}
	return decimal.NewFromBigInt(expected, 0).
		Mul(keep).
		Shift(-2).
		Truncate(0).
		BigInt()
}

// GasCost returns gas * gasPrice in wei
func GasCost(gas uint64, gasPrice *big.Int) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(gas), gasPrice)
}
