// Package config handles wallet CLI configuration.
//
// Settings come from, in increasing priority: built-in defaults, an optional
// TOML config file, HELIUM_WALLET_* environment variables and command-line
// flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/Klingon-tech/helium-wallet/pkg/types"
)

// Config holds the settings shared by every command.
type Config struct {
	// APIURL overrides the network's default API. Empty means derive it
	// from the wallet's network.
	APIURL string `mapstructure:"api_url"`

	// Files are the wallet file paths (--file, repeatable).
	Files []string `mapstructure:"file"`

	// Format is the report format: table or json.
	Format string `mapstructure:"format"`

	// Timeout bounds each API request.
	Timeout time.Duration `mapstructure:"timeout"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
	JSON  bool   `mapstructure:"json"`
}

// APIURLFor returns the API root for a wallet on network.
func (c *Config) APIURLFor(network types.Network) string {
	if c.APIURL != "" {
		return c.APIURL
	}
	return DefaultAPIURL(network)
}

// DefaultDataDir returns the platform-specific directory holding the
// optional config file.
//
//	Linux:   ~/.helium-wallet
//	macOS:   ~/Library/Application Support/HeliumWallet
//	Windows: %APPDATA%\HeliumWallet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".helium-wallet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "HeliumWallet")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "HeliumWallet")
		}
		return filepath.Join(home, "AppData", "Roaming", "HeliumWallet")
	default:
		return filepath.Join(home, ".helium-wallet")
	}
}

// DefaultConfigFile returns the config file read when --config is not given.
func DefaultConfigFile() string {
	return filepath.Join(DefaultDataDir(), "config.toml")
}
