package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"eth-swap/config"
	"eth-swap/pkg/chain"
	"eth-swap/pkg/parser"
	"eth-swap/pkg/swap"
	"eth-swap/pkg/types"
)

var (
	quoteVersion  string
	quoteFee      uint32
	quoteSlippage string
)

var quoteCmd = &cobra.Command{
	Use:     "quote <amount> <source-token> to <dest-token>",
	Aliases: []string{"swap"},
	Short:   "Estimate a swap without sending it",
	Long: `Quote a swap on Uniswap, simulate it with eth_call and estimate its gas cost.

Tokens are ETH, a well-known symbol (USDC, USDT, DAI, WETH, WBTC, LINK, UNI)
or a 0x contract address.

Examples:
  eth-swap quote 0.1 ETH to USDC
  eth-swap quote 250 USDC to 0x6B175474E89094C44Da98b954EedeAC495271d0F --slippage 0.1
  eth-swap quote 1 WETH to USDC --version v3 --fee 500`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&quoteVersion, "version", "v2", "Uniswap version: v2 or v3")
	quoteCmd.Flags().Uint32Var(&quoteFee, "fee", uint32(types.DefaultFeeTier), "V3 pool fee tier: 500, 3000 or 10000")
	quoteCmd.Flags().StringVar(&quoteSlippage, "slippage", "0.5", "Slippage tolerance in percent")
}

func runQuote(cmd *cobra.Command, args []string) {
	// Parse the command
	req, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	req.SlippageTolerance = quoteSlippage
	req.Version = quoteVersion
	if cmd.Flags().Changed("fee") {
		fee := quoteFee
		req.PoolFee = &fee
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	evm, err := chain.Dial(ctx, cfg.RPCURL)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer evm.Close()

	// Estimate with spinner
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Simulating swap..."
		s.Start()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "\nDebug: request %+v\n", *req)
	}

	report, err := swap.NewEstimator(evm).Estimate(ctx, req)
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if jsonOutput {
		jsonData, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayReport(report)
}

func displayReport(r *types.SwapReport) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                   SWAP ESTIMATE (%s)", r.Version)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:              %s %s\n", r.InputAmount, color.YellowString(r.FromToken))
	fmt.Printf("  To:                ~%s %s\n", color.CyanString(r.EstimatedOutput), color.YellowString(r.ToToken))
	fmt.Printf("  Minimum Received:  %s\n", r.MinimumOutput)
	fmt.Printf("  Slippage:          %s%%\n", r.SlippageTolerance)
	fmt.Printf("  Estimated Gas:     %s\n", r.EstimatedGas)
	fmt.Printf("  Gas Cost:          %s ETH\n", r.EstimatedGasETH)

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.HiBlack("  Simulated only. No transaction was sent.\n")
}
