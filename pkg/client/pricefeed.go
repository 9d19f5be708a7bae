package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"eth-swap/pkg/metrics"
	"eth-swap/pkg/types"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "price-feed").Logger()
}

// DefaultPriceAPIURL is the public CoinGecko v3 API
const DefaultPriceAPIURL = "https://api.coingecko.com/api/v3"

// Symbols that differ from their CoinGecko coin id
var coinIDs = map[string]string{
	"usdc": "usd-coin",
	"usdt": "tether",
	"dai":  "dai",
	"weth": "weth",
	"wbtc": "wrapped-bitcoin",
	"link": "chainlink",
	"uni":  "uniswap",
	"aave": "aave",
	"mkr":  "maker",
	"comp": "compound-governance-token",
}

// CoinGecko answers both endpoints with {key: {"usd": n, "eth": n, "last_updated_at": n}}
type priceResponse map[string]map[string]decimal.Decimal

// PriceFeedClient queries a CoinGecko compatible price index
type PriceFeedClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPriceFeedClient creates a new price index client
func NewPriceFeedClient(baseURL string, timeout time.Duration) *PriceFeedClient {
	if baseURL == "" {
		baseURL = DefaultPriceAPIURL
	}
	return &PriceFeedClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CoinID maps a lower-case symbol to its CoinGecko id
func CoinID(symbol string) string {
	if id, ok := coinIDs[symbol]; ok {
		return id
	}
	return symbol
}

// GetTokenPrice looks a token up by contract address, by the eth alias, or by
// symbol, in that order.
func (c *PriceFeedClient) GetTokenPrice(ctx context.Context, token string) (*types.PriceReport, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, types.InvalidInput("token", "is required")
	}

	var (
		report *types.PriceReport
		err    error
	)
	switch {
	case strings.HasPrefix(token, "0x") && len(token) == 42:
		report, err = c.priceByAddress(ctx, token)
	case token == "eth" || token == "ethereum":
		report, err = c.ethPrice(ctx)
	default:
		report, err = c.priceBySymbol(ctx, token)
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.PriceLookups.WithLabelValues(status).Inc()
	return report, err
}

func (c *PriceFeedClient) priceByAddress(ctx context.Context, address string) (*types.PriceReport, error) {
	q := url.Values{}
	q.Set("contract_addresses", address)
	q.Set("vs_currencies", "usd,eth")
	q.Set("include_last_updated_at", "true")

	data, err := c.get(ctx, "/simple/token_price/ethereum", q, address)
	if err != nil {
		return nil, err
	}

	report := newReport(address, data)
	report.TokenAddress = &address
	return report, nil
}

func (c *PriceFeedClient) priceBySymbol(ctx context.Context, symbol string) (*types.PriceReport, error) {
	id := CoinID(symbol)

	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", "usd,eth")
	q.Set("include_last_updated_at", "true")

	data, err := c.get(ctx, "/simple/price", q, id)
	if err != nil {
		return nil, err
	}
	return newReport(symbol, data), nil
}

func (c *PriceFeedClient) ethPrice(ctx context.Context) (*types.PriceReport, error) {
	q := url.Values{}
	q.Set("ids", "ethereum")
	q.Set("vs_currencies", "usd")
	q.Set("include_last_updated_at", "true")

	data, err := c.get(ctx, "/simple/price", q, "ethereum")
	if err != nil {
		return nil, err
	}

	report := newReport("ETH", data)
	one := "1.0"
	report.PriceETH = &one
	return report, nil
}

func (c *PriceFeedClient) get(ctx context.Context, path string, q url.Values, key string) (map[string]decimal.Decimal, error) {
	endpoint := c.baseURL + path + "?" + q.Encode()
	log.Debug().Str("url", endpoint).Msg("fetching price")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &types.RemoteCallError{Method: "price index", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.RemoteCallError{Method: "price index", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &types.RemoteCallError{Method: "price index", Err: fmt.Errorf("API returned status code %d", resp.StatusCode)}
	}

	var parsed priceResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return nil, &types.RemoteCallError{Method: "price index", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	data, ok := parsed[key]
	if !ok {
		return nil, &types.RemoteCallError{Method: "price index", Err: fmt.Errorf("token %s not found", key)}
	}
	return data, nil
}

func newReport(token string, data map[string]decimal.Decimal) *types.PriceReport {
	report := &types.PriceReport{Token: token}

	if usd, ok := data["usd"]; ok {
		s := usd.StringFixed(6)
		report.PriceUSD = &s
	}
	if eth, ok := data["eth"]; ok {
		s := eth.StringFixed(18)
		report.PriceETH = &s
	}
	if ts, ok := data["last_updated_at"]; ok {
		s := time.Unix(ts.IntPart(), 0).UTC().Format(time.RFC3339)
		report.LastUpdated = &s
	}
	return report
}
