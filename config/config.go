package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "ETH_SWAP"

// Transports accepted by the tool server
const (
	TransportStdio = "stdio"
	TransportTCP   = "tcp"
	TransportHTTP  = "http"
)

// Config holds the application configuration
type Config struct {
	RPCURL       string
	ServerHost   string
	ServerPort   int
	Transport    string
	LogLevel     string
	PriceAPIURL  string
	PriceTimeout time.Duration
}

var globalConfig *Config

// Keys that keep their historical unprefixed environment names alongside
// the ETH_SWAP_ prefixed ones.
var legacyEnv = map[string]string{
	"rpc_url":       "ETH_RPC_URL",
	"server_host":   "SERVER_HOST",
	"server_port":   "SERVER_PORT",
	"transport":     "SERVER_TRANSPORT",
	"log_level":     "LOG_LEVEL",
	"price_api_url": "PRICE_API_URL",
}

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith reads configuration into v. Tests pass a fresh instance.
func LoadWith(v *viper.Viper) (*Config, error) {
	v.SetConfigName(".eth-swap")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	// Set default values
	v.SetDefault("rpc_url", "https://eth.llamarpc.com")
	v.SetDefault("server_host", "127.0.0.1")
	v.SetDefault("server_port", 0)
	v.SetDefault("transport", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("price_api_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("price_timeout", "10s")

	// Read from environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key), legacy); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		RPCURL:       strings.TrimSpace(v.GetString("rpc_url")),
		ServerHost:   v.GetString("server_host"),
		ServerPort:   v.GetInt("server_port"),
		Transport:    strings.ToLower(strings.TrimSpace(v.GetString("transport"))),
		LogLevel:     strings.ToLower(v.GetString("log_level")),
		PriceAPIURL:  v.GetString("price_api_url"),
		PriceTimeout: v.GetDuration("price_timeout"),
	}

	// A configured port without an explicit transport means tcp
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
		if cfg.ServerPort > 0 {
			cfg.Transport = TransportTCP
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = cfg
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("RPC URL not configured. Please set ETH_RPC_URL or rpc_url in .eth-swap.yaml")
	}
	if _, err := url.ParseRequestURI(c.RPCURL); err != nil {
		return fmt.Errorf("invalid RPC URL %q: %w", c.RPCURL, err)
	}
	if c.ServerPort < 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d", c.ServerPort)
	}

	switch c.Transport {
	case TransportStdio:
	case TransportTCP, TransportHTTP:
		if c.ServerPort == 0 {
			return fmt.Errorf("transport %s requires a server port", c.Transport)
		}
	default:
		return fmt.Errorf("unknown transport %q (expected stdio, tcp or http)", c.Transport)
	}

	if c.PriceAPIURL != "" {
		if _, err := url.ParseRequestURI(c.PriceAPIURL); err != nil {
			return fmt.Errorf("invalid price API URL %q: %w", c.PriceAPIURL, err)
		}
	}
	if c.PriceTimeout <= 0 {
		return fmt.Errorf("price timeout must be positive")
	}
	return nil
}

// ListenAddr returns host:port for the network transports
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
