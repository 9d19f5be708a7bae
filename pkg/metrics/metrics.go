package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tool server metrics
	ToolRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ethswap_tool_requests_total",
			Help: "Total number of tool requests",
		},
		[]string{"method", "status"},
	)

	// Quote metrics
	QuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ethswap_quote_duration_seconds",
			Help:    "Swap estimate duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"version"},
	)

	QuoteAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ethswap_quote_attempts_total",
			Help: "Quoter calls made by the fee tier ladder",
		},
		[]string{"quoter", "fee_tier", "status"},
	)

	// Simulation fallbacks
	SimulationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ethswap_simulation_fallbacks_total",
			Help: "Swap simulations that fell back to the quoted output",
		},
		[]string{"version"},
	)

	GasEstimateFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ethswap_gas_estimate_fallbacks_total",
			Help: "Gas estimates that fell back to the default gas limit",
		},
		[]string{"version"},
	)

	// Price index
	PriceLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ethswap_price_lookups_total",
			Help: "Price index lookups",
		},
		[]string{"status"},
	)
)
