package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"eth-swap/config"
	"eth-swap/pkg/server"
)

var rootCmd = &cobra.Command{
	Use:   "eth-swap",
	Short: "Estimate Uniswap swaps on Ethereum without sending a transaction",
	Long: `eth-swap quotes token swaps against the Uniswap V2 router or the V3 quoters,
simulates the swap with eth_call and prices its gas. Nothing is ever signed or
broadcast.

Run it as a JSON-RPC tool server or use the commands directly.

Examples:
  eth-swap serve
  eth-swap quote 0.1 ETH to USDC
  eth-swap quote 1000 USDC to ETH --version v3 --fee 500 --slippage 1
  eth-swap balance 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 --token USDC
  eth-swap price WBTC`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogging(verbose)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

// setupLogging applies the configured log level. Logs always go to stderr so
// stdout stays clean for the stdio transport and JSON output.
func setupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if cfg, err := config.Load(); err == nil {
		if l, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			level = l
		}
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	server.SetLogger(zerolog.New(out).With().Timestamp().Str("component", "tool-server").Logger())
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
}
