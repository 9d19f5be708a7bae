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
	"eth-swap/pkg/client"
)

var priceCmd = &cobra.Command{
	Use:   "price <token>",
	Short: "Show the current USD and ETH price of a token",
	Long: `Look a token's price up on CoinGecko by symbol or contract address.

Examples:
  eth-swap price ETH
  eth-swap price usdc
  eth-swap price 0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984`,
	Args: cobra.ExactArgs(1),
	Run:  runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	feed := client.NewPriceFeedClient(cfg.PriceAPIURL, cfg.PriceTimeout)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Fetching price..."
		s.Start()
	}

	report, err := feed.GetTokenPrice(context.Background(), args[0])
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

	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                    TOKEN PRICE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\n  Token:         %s\n", color.YellowString(report.Token))
	fmt.Printf("  Price (USD):   %s\n", valueOr(report.PriceUSD, "n/a"))
	fmt.Printf("  Price (ETH):   %s\n", valueOr(report.PriceETH, "n/a"))
	if report.LastUpdated != nil {
		fmt.Printf("  Updated:       %s\n", color.HiBlackString(*report.LastUpdated))
	}
	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
