package parser

import (
	"fmt"
	"regexp"
	"strings"

	"eth-swap/pkg/types"
)

var commandPattern = regexp.MustCompile(`(?i)^(\d+\.?\d*|\.\d+)\s+(\S+)\s+TO\s+(\S+)$`)

// ParseSwapCommand parses a natural language swap command
// Examples:
//   - "swap 0.1 ETH to USDC"
//   - "1.5 eth to 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
//   - "100 USDC to DAI"
//
// Well-known symbols are resolved to their mainnet addresses; anything else is
// passed through untouched for NormalizeToken to judge.
func ParseSwapCommand(command string) (*types.SwapRequest, error) {
	command = strings.TrimSpace(command)

	// Remove the word "swap" if present at the beginning
	if len(command) > 5 && strings.EqualFold(command[:5], "swap ") {
		command = strings.TrimSpace(command[5:])
	}

	matches := commandPattern.FindStringSubmatch(command)
	if matches == nil {
		return nil, fmt.Errorf("invalid swap command format. Expected: '<amount> <token> to <token>' (e.g., '0.1 ETH to USDC')")
	}

	return &types.SwapRequest{
		Amount:    matches[1],
		FromToken: ResolveSymbol(matches[2]),
		ToToken:   ResolveSymbol(matches[3]),
	}, nil
}

// ValidateSwapRequest checks that a swap request has all required fields
func ValidateSwapRequest(req *types.SwapRequest) error {
	if req == nil {
		return types.InvalidInput("request", "missing")
	}
	if strings.TrimSpace(req.Amount) == "" {
		return types.InvalidInput("amount", "is required")
	}
	if strings.TrimSpace(req.FromToken) == "" {
		return types.InvalidInput("from_token", "is required")
	}
	if strings.TrimSpace(req.ToToken) == "" {
		return types.InvalidInput("to_token", "is required")
	}
	if strings.TrimSpace(req.SlippageTolerance) == "" {
		return types.InvalidInput("slippage_tolerance", "is required")
	}
	return nil
}
