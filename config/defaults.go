package config

import (
	"time"

	"github.com/Klingon-tech/helium-wallet/pkg/types"
)

// Public API endpoints.
const (
	MainnetAPIURL = "https://api.helium.io/v1"
	TestnetAPIURL = "https://testnet-api.helium.wtf/v1"
)

// Defaults for the shared settings.
const (
	DefaultWalletFile = "wallet.key"
	DefaultFormat     = "table"
	DefaultTimeout    = 10 * time.Second
	DefaultLogLevel   = "warn"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Files:   []string{DefaultWalletFile},
		Format:  DefaultFormat,
		Timeout: DefaultTimeout,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// DefaultAPIURL returns the public API for network.
func DefaultAPIURL(network types.Network) string {
	if network == types.Testnet {
		return TestnetAPIURL
	}
	return MainnetAPIURL
}
