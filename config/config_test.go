package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at an empty temp dir so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "https://eth.llamarpc.com", cfg.RPCURL)
	assert.Equal(t, "127.0.0.1", cfg.ServerHost)
	assert.Equal(t, 0, cfg.ServerPort)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.PriceTimeout)
}

func TestLoadLegacyEnv(t *testing.T) {
	isolate(t)
	t.Setenv("ETH_RPC_URL", "http://localhost:8545")
	t.Setenv("SERVER_PORT", "9000")

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", cfg.RPCURL)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, TransportTCP, cfg.Transport)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr())
}

func TestLoadPrefixedEnvWins(t *testing.T) {
	isolate(t)
	t.Setenv("ETH_RPC_URL", "http://legacy:8545")
	t.Setenv("ETH_SWAP_RPC_URL", "http://prefixed:8545")
	t.Setenv("ETH_SWAP_TRANSPORT", "HTTP")
	t.Setenv("ETH_SWAP_SERVER_PORT", "8080")

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "http://prefixed:8545", cfg.RPCURL)
	assert.Equal(t, TransportHTTP, cfg.Transport)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	content := "rpc_url: https://rpc.example.org\nlog_level: debug\nprice_timeout: 3s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".eth-swap.yaml"), []byte(content), 0o600))

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example.org", cfg.RPCURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.PriceTimeout)
}

func TestValidate(t *testing.T) {
	base := Config{
		RPCURL:       "https://eth.llamarpc.com",
		Transport:    TransportStdio,
		PriceAPIURL:  "https://api.coingecko.com/api/v3",
		PriceTimeout: time.Second,
	}
	require.NoError(t, base.Validate())

	tests := map[string]func(c *Config){
		"empty rpc":          func(c *Config) { c.RPCURL = "" },
		"relative rpc":       func(c *Config) { c.RPCURL = "not a url" },
		"negative port":      func(c *Config) { c.ServerPort = -1 },
		"port too large":     func(c *Config) { c.ServerPort = 70000 },
		"tcp without port":   func(c *Config) { c.Transport = TransportTCP },
		"unknown transport":  func(c *Config) { c.Transport = "ws" },
		"zero price timeout": func(c *Config) { c.PriceTimeout = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
