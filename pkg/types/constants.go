package types

import (
	"math"

	"github.com/ethereum/go-ethereum/common"
)

// Mainnet contract addresses
var (
	UniswapV2Router = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	UniswapV3Router = common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564")
	QuoterV2        = common.HexToAddress("0x61fFE014bA17989E743c5F6cB21bF9697530B21e")
	LegacyQuoter    = common.HexToAddress("0xb27308f9F90D607463bb33eA1BeBb41C27CE5AB6")
	WETH            = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")

	// SimulationSender is a well-funded account used as from and recipient
	// when probing a swap with eth_call.
	SimulationSender = common.HexToAddress("0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")
)

const (
	NativeDecimals uint8 = 18

	DefaultGasV2 uint64 = 150000
	DefaultGasV3 uint64 = 200000

	// SwapDeadline never expires within a simulation.
	SwapDeadline uint64 = math.MaxUint64
)

// FallbackFeeTiers is the tier order tried after the requested tier
var FallbackFeeTiers = []FeeTier{FeeMedium, FeeLow, FeeHigh}
