package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eth-swap/config"
	"eth-swap/pkg/chain"
	"eth-swap/pkg/client"
	"eth-swap/pkg/server"
	"eth-swap/pkg/swap"
)

var (
	serveTransport string
	servePort      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON-RPC tool server",
	Long: `Serve the swap, balance and price tools over JSON-RPC 2.0.

By default the server speaks on stdin/stdout. Setting SERVER_PORT (or --port)
switches to a TCP listener; --transport http serves JSON-RPC over HTTP POST
with /health and /metrics routes.

Methods:
  tools_swapTokens      {from_token, to_token, amount, slippage_tolerance, version, pool_fee}
  tools_getBalance      {wallet_address, token_address}
  tools_getTokenPrice   {token}
  tools_listTools`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "Transport: stdio, tcp or http (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port for tcp/http (default from config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	// Flags override config
	if servePort != 0 {
		cfg.ServerPort = servePort
		if serveTransport == "" && cfg.Transport == config.TransportStdio {
			cfg.Transport = config.TransportTCP
		}
	}
	if serveTransport != "" {
		cfg.Transport = serveTransport
	}
	if err := cfg.Validate(); err != nil {
		printError(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	evm, err := chain.Dial(ctx, cfg.RPCURL)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer evm.Close()

	svc := server.NewToolService(
		swap.NewEstimator(evm),
		evm,
		client.NewPriceFeedClient(cfg.PriceAPIURL, cfg.PriceTimeout),
	)
	srv, err := server.New(svc)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer srv.Stop()

	server.Logger.Info().
		Str("rpc_url", cfg.RPCURL).
		Str("transport", cfg.Transport).
		Msg("starting tool server")

	if err := srv.Serve(ctx, server.Transport(cfg.Transport), cfg.ListenAddr()); err != nil {
		server.Logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
