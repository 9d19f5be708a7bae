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
	"eth-swap/pkg/server"
	"eth-swap/pkg/types"
)

var balanceToken string

var balanceCmd = &cobra.Command{
	Use:   "balance <wallet-address>",
	Short: "Show the ETH or ERC-20 balance of a wallet",
	Long: `Show a wallet's ETH balance, or its balance of an ERC-20 token with --token.

Examples:
  eth-swap balance 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045
  eth-swap balance 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 --token USDC`,
	Args: cobra.ExactArgs(1),
	Run:  runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().StringVarP(&balanceToken, "token", "t", "", "ERC-20 token symbol or address (default ETH)")
}

func runBalance(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	evm, err := chain.Dial(ctx, cfg.RPCURL)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer evm.Close()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching balance..."
		s.Start()
	}

	// Same validation path as the tool server
	svc := server.NewToolService(nil, evm, nil)
	report, err := svc.GetBalance(ctx, types.BalanceRequest{
		WalletAddress: args[0],
		TokenAddress:  parser.ResolveSymbol(balanceToken),
	})
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

	asset := "ETH"
	if report.TokenAddress != "" {
		asset = report.TokenAddress
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                          BALANCE")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("\n  Wallet:    %s\n", color.CyanString(report.WalletAddress))
	fmt.Printf("  Asset:     %s\n", color.YellowString(asset))
	fmt.Printf("  Balance:   %s\n", report.Balance)
	fmt.Printf("  Raw:       %s (%d decimals)\n", color.HiBlackString(report.RawBalance), report.Decimals)
	fmt.Println("\n" + strings.Repeat("=", 70) + "\n")
}
