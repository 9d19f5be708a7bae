// Package codec encodes contract calls and decodes their return data for the
// ERC-20, Uniswap V2 router, Uniswap V3 router and quoter interfaces.
package codec

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const erc20ABI = `[
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const routerV2ABI = `[
	{"inputs":[{"name":"amountIn","type":"uint256"},{"name":"path","type":"address[]"}],"name":"getAmountsOut","outputs":[{"name":"amounts","type":"uint256[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"name":"swapExactETHForTokens","outputs":[{"name":"amounts","type":"uint256[]"}],"stateMutability":"payable","type":"function"},
	{"inputs":[{"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"name":"swapExactTokensForETH","outputs":[{"name":"amounts","type":"uint256[]"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"amountIn","type":"uint256"},{"name":"amountOutMin","type":"uint256"},{"name":"path","type":"address[]"},{"name":"to","type":"address"},{"name":"deadline","type":"uint256"}],"name":"swapExactTokensForTokens","outputs":[{"name":"amounts","type":"uint256[]"}],"stateMutability":"nonpayable","type":"function"}
]`

const routerV3ABI = `[
	{"inputs":[{"components":[
		{"name":"tokenIn","type":"address"},
		{"name":"tokenOut","type":"address"},
		{"name":"fee","type":"uint24"},
		{"name":"recipient","type":"address"},
		{"name":"deadline","type":"uint256"},
		{"name":"amountIn","type":"uint256"},
		{"name":"amountOutMinimum","type":"uint256"},
		{"name":"sqrtPriceLimitX96","type":"uint160"}
	],"name":"params","type":"tuple"}],"name":"exactInputSingle","outputs":[{"name":"amountOut","type":"uint256"}],"stateMutability":"payable","type":"function"}
]`

const quoterV2ABI = `[
	{"inputs":[{"components":[
		{"name":"tokenIn","type":"address"},
		{"name":"tokenOut","type":"address"},
		{"name":"amountIn","type":"uint256"},
		{"name":"fee","type":"uint24"},
		{"name":"sqrtPriceLimitX96","type":"uint160"}
	],"name":"params","type":"tuple"}],"name":"quoteExactInputSingle","outputs":[
		{"name":"amountOut","type":"uint256"},
		{"name":"sqrtPriceX96After","type":"uint160"},
		{"name":"initializedTicksCrossed","type":"uint32"},
		{"name":"gasEstimate","type":"uint256"}
	],"stateMutability":"nonpayable","type":"function"}
]`

const legacyQuoterABI = `[
	{"inputs":[
		{"name":"tokenIn","type":"address"},
		{"name":"tokenOut","type":"address"},
		{"name":"fee","type":"uint24"},
		{"name":"amountIn","type":"uint256"},
		{"name":"sqrtPriceLimitX96","type":"uint160"}
	],"name":"quoteExactInputSingle","outputs":[{"name":"amountOut","type":"uint256"}],"stateMutability":"nonpayable","type":"function"}
]`

var (
	erc20ABIParsed        = mustParse(erc20ABI)
	routerV2ABIParsed     = mustParse(routerV2ABI)
	routerV3ABIParsed     = mustParse(routerV3ABI)
	quoterV2ABIParsed     = mustParse(quoterV2ABI)
	legacyQuoterABIParsed = mustParse(legacyQuoterABI)
)

func mustParse(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("codec: invalid abi definition: " + err.Error())
	}
	return parsed
}
