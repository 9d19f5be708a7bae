package swap

import (
	"math/big"
	"strconv"

	"eth-swap/pkg/amount"
	"eth-swap/pkg/types"
)

func buildReport(p *parsedRequest, req *types.SwapRequest, sim simulation, minOut *big.Int, outDecimals uint8, gasPrice *big.Int) *types.SwapReport {
	cost := amount.GasCost(sim.gas, gasPrice)

	return &types.SwapReport{
		FromToken:         req.FromToken,
		ToToken:           req.ToToken,
		InputAmount:       req.Amount,
		EstimatedOutput:   amount.FormatUnits(sim.amountOut, outDecimals),
		MinimumOutput:     amount.FormatUnits(minOut, outDecimals),
		SlippageTolerance: req.SlippageTolerance,
		EstimatedGas:      strconv.FormatUint(sim.gas, 10),
		EstimatedGasETH:   amount.FormatUnits(cost, types.NativeDecimals),
		PriceImpact:       nil,
		InvolvesETH:       p.from.Native || p.to.Native,
		Version:           p.version.String(),
	}
}
